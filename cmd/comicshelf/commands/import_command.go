package commands

import (
	"fmt"

	"github.com/danielkitchener/ComicShelf/internal/archive"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	command := &cobra.Command{
		Use:   "import [archive]",
		Short: "Import pictures from a zip, cbz, rar, 7z or tar archive",
		Long:  "Import pictures from a zip, cbz, rar, 7z or tar archive.\nPictures are flattened into the pictures folder, data.xml and playlists.xml can be extracted as well.",
		RunE:  ImportCommand,
		Args:  cobra.ExactArgs(1),
	}
	command.Flags().String("data-dir", "", "Folder receiving data.xml and playlists.xml found in the archive")
	command.Flags().StringSlice("include", nil, "Only import pictures matching these glob patterns (** supported)")

	AddCommand(command)
}

func ImportCommand(cmd *cobra.Command, args []string) error {
	path := args[0]
	if path == "" {
		return fmt.Errorf("archive path is required")
	}

	dataDir, err := cmd.Flags().GetString("data-dir")
	if err != nil {
		return fmt.Errorf("invalid data-dir value")
	}

	include, err := cmd.Flags().GetStringSlice("include")
	if err != nil {
		return fmt.Errorf("invalid include value")
	}

	result, err := archive.Import(commandContext(cmd), path, archive.Options{
		PicturesDir: viper.GetString("pictures"),
		DataDir:     dataDir,
		Include:     include,
	})
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", path, err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d pictures", len(result.Pictures))
	if len(result.DataFiles) > 0 {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), " and %v", result.DataFiles)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout())
	return nil
}
