package commands

import (
	"fmt"

	"github.com/danielkitchener/ComicShelf/internal/site"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	command := &cobra.Command{
		Use:   "build",
		Short: "Write the gallery as a static site",
		Long:  "Write the gallery as a static site.\nEvery playlist, comic and tag gets its own page, pictures and thumbnails are copied next to them.",
		RunE:  BuildCommand,
		Args:  cobra.NoArgs,
	}
	command.Flags().StringP("output", "o", defaultOutput, "Folder the site is written to")

	AddCommand(command)
}

func BuildCommand(cmd *cobra.Command, _ []string) error {
	output := outputDir(cmd)
	if output == "" {
		return fmt.Errorf("output folder is required")
	}

	builder, err := newBuilder(output)
	if err != nil {
		return err
	}
	report, err := builder.Build(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to build site: %w", err)
	}

	log.Info().
		Int("playlists", report.Playlists).
		Int("comics", report.Comics).
		Int("tags", report.Tags).
		Msg("Static site ready")
	return nil
}

func newBuilder(output string) (*site.Builder, error) {
	renderer, err := newRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to prepare renderer: %w", err)
	}
	return &site.Builder{
		Loader:      newLoader(),
		Renderer:    renderer,
		OutputDir:   output,
		PicturesDir: viper.GetString("pictures"),
		ThumbsDir:   thumbsDir(),
	}, nil
}
