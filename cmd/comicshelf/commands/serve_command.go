package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/danielkitchener/ComicShelf/internal/server"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	command := &cobra.Command{
		Use:   "serve",
		Short: "Serve the gallery over HTTP",
		Long:  "Serve the gallery over HTTP.\nEvery page reloads data.xml and playlists.xml, so edits show up on the next request.",
		RunE:  ServeCommand,
		Args:  cobra.NoArgs,
	}
	command.Flags().String("listen", ":8080", "Address to listen on")
	_ = viper.BindPFlag("listen", command.Flags().Lookup("listen"))
	command.Flags().StringSlice("cors-origin", nil, "Origins allowed to embed the gallery, e.g. https://blog.example.com or *")
	_ = viper.BindPFlag("cors_origins", command.Flags().Lookup("cors-origin"))

	AddCommand(command)
}

func ServeCommand(cmd *cobra.Command, _ []string) error {
	renderer, err := newRenderer()
	if err != nil {
		return fmt.Errorf("failed to prepare renderer: %w", err)
	}

	cfg := server.Config{
		Addr:        viper.GetString("listen"),
		PicturesDir: viper.GetString("pictures"),
		ThumbsDir:   thumbsDir(),
		CORSOrigins: viper.GetStringSlice("cors_origins"),
	}
	log.Info().
		Str("listen", cfg.Addr).
		Str("data", viper.GetString("data")).
		Str("playlists", viper.GetString("playlists")).
		Str("pictures", cfg.PicturesDir).
		Str("thumbs", cfg.ThumbsDir).
		Msg("Starting gallery")

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(cfg, newLoader(), renderer).Start(ctx)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
