package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/danielkitchener/ComicShelf/internal/catalog"
	"github.com/danielkitchener/ComicShelf/internal/site"
	"github.com/danielkitchener/ComicShelf/internal/utils"
	"github.com/pablodz/inotifywaitgo/inotifywaitgo"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	if runtime.GOOS != "linux" {
		return
	}
	command := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the static site whenever the catalog changes",
		Long:  "Rebuild the static site whenever the catalog changes.\nIt watches the folder holding data.xml and playlists.xml and rebuilds the site when either is written or moved in.",
		RunE:  WatchCommand,
		Args:  cobra.NoArgs,
	}
	command.Flags().StringP("output", "o", defaultOutput, "Folder the site is written to")

	AddCommand(command)
}

// watchedFiles returns the base names of the local catalog documents living in dir.
func watchedFiles(dir string) map[string]bool {
	files := make(map[string]bool)
	for _, key := range []string{"data", "playlists"} {
		source := catalog.Source(viper.GetString(key))
		if source == "" || source.IsRemote() {
			continue
		}
		if filepath.Clean(filepath.Dir(string(source))) == filepath.Clean(dir) {
			files[filepath.Base(string(source))] = true
		}
	}
	return files
}

// siteBuilder is the part of site.Builder the watch loop needs.
type siteBuilder interface {
	Build(ctx context.Context) (site.Report, error)
}

// WatchCommand rebuilds the site on catalog changes until SIGINT or SIGTERM.
func WatchCommand(cmd *cobra.Command, _ []string) error {
	data := catalog.Source(viper.GetString("data"))
	if data.IsRemote() {
		return fmt.Errorf("watch needs a local data document, got %s", data)
	}
	path := filepath.Dir(string(data))
	if !utils.IsValidFolder(path) {
		return fmt.Errorf("the path needs to be a folder")
	}

	output := outputDir(cmd)
	builder, err := newBuilder(output)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()
	files := watchedFiles(path)

	if _, err := builder.Build(ctx); err != nil {
		log.Error().Err(err).Msg("Initial build failed, waiting for changes")
	}
	log.Info().Str("path", path).Str("output", output).Interface("files", files).Msg("Watching catalog")

	events := make(chan inotifywaitgo.FileEvent)
	errors := make(chan error)

	// WatchPath cannot be cancelled, it stops with the process once the loop below returns.
	go inotifywaitgo.WatchPath(&inotifywaitgo.Settings{
		Dir:        path,
		FileEvents: events,
		ErrorChan:  errors,
		Options: &inotifywaitgo.Options{
			Recursive: false,
			Events: []inotifywaitgo.EVENT{
				inotifywaitgo.MOVE,
				inotifywaitgo.CLOSE_WRITE,
			},
			Monitor: true,
		},
		Verbose: true,
	})

	return watchLoop(ctx, builder, files, events, errors)
}

// watchLoop rebuilds the site for every relevant event until ctx is done or a channel is closed.
func watchLoop(ctx context.Context, builder siteBuilder, files map[string]bool, events <-chan inotifywaitgo.FileEvent, errors <-chan error) error {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Stopping watch")
			return nil
		case err, ok := <-errors:
			if !ok {
				return nil
			}
			log.Error().Err(err).Msg("Watch error")
		case event, ok := <-events:
			if !ok {
				return nil
			}
			log.Debug().Str("file", event.Filename).Interface("events", event.Events).Msg("File event")
			if !files[filepath.Base(event.Filename)] || !isRebuildEvent(event) {
				continue
			}
			report, err := builder.Build(ctx)
			if err != nil {
				log.Error().Err(err).Str("file", event.Filename).Msg("Error rebuilding after change")
				continue
			}
			log.Info().Str("file", event.Filename).Int("pages", report.Pages()).Msg("Site rebuilt")
		}
	}
}

func isRebuildEvent(event inotifywaitgo.FileEvent) bool {
	for _, e := range event.Events {
		switch e {
		case inotifywaitgo.CLOSE_WRITE, inotifywaitgo.MOVE:
			return true
		default:
			// ignored
		}
	}
	return false
}
