package commands

import (
	"fmt"
	"path/filepath"

	"github.com/danielkitchener/ComicShelf/internal/epub"
	"github.com/danielkitchener/ComicShelf/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	command := &cobra.Command{
		Use:   "epub [playlist]",
		Short: "Export a playlist as an EPUB book",
		Long:  "Export a playlist as an EPUB book.\nEach comic of the playlist becomes a section holding all of its pictures.",
		RunE:  EpubCommand,
		Args:  cobra.ExactArgs(1),
	}
	command.Flags().StringP("file", "f", "", "EPUB file to write, defaults to <playlist>.epub")

	AddCommand(command)
}

func EpubCommand(cmd *cobra.Command, args []string) error {
	playlist := args[0]

	output, err := cmd.Flags().GetString("file")
	if err != nil {
		return fmt.Errorf("invalid file value")
	}
	if output == "" {
		output = utils.SanitizeFileName(playlist) + ".epub"
	}

	c, err := newLoader().Load(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	if err := epub.WritePlaylist(c, playlist, viper.GetString("pictures"), output); err != nil {
		return err
	}

	abs, err := filepath.Abs(output)
	if err != nil {
		abs = output
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", abs)
	return nil
}
