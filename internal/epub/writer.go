package epub

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/danielkitchener/ComicShelf/internal/catalog"
	"github.com/go-shiori/go-epub"
	"github.com/rs/zerolog/log"
)

const (
	DefaultAuthor = "ComicShelf"
	DefaultLang   = "en"
)

// WritePlaylist compiles every comic of a playlist into one EPUB file, one section per comic.
func WritePlaylist(c *catalog.Catalog, playlistName, picturesDir, output string) error {
	playlist, ok := c.Playlist(playlistName)
	if !ok {
		return fmt.Errorf("playlist %q not found", playlistName)
	}
	comics := playlist.Resolve(c)
	if len(comics) == 0 {
		return fmt.Errorf("playlist %q has no comics to compile", playlistName)
	}
	log.Debug().Str("playlist", playlist.Name).Int("comics", len(comics)).Str("output", output).Msg("Starting EPUB export")

	e, err := epub.NewEpub(playlist.Name)
	if err != nil {
		return fmt.Errorf("failed to create EPUB: %w", err)
	}
	e.SetAuthor(DefaultAuthor)
	e.SetLang(DefaultLang)
	e.SetDescription(fmt.Sprintf("%s, %d comics", playlist.Name, len(comics)))

	// A comic listed twice reuses the images added the first time.
	added := make(map[string]string)
	for _, comic := range comics {
		if err := addComic(e, comic, picturesDir, added); err != nil {
			return fmt.Errorf("failed to add comic %s: %w", comic.Name, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := e.Write(output); err != nil {
		return fmt.Errorf("failed to write EPUB: %w", err)
	}

	log.Info().Str("playlist", playlist.Name).Int("comics", len(comics)).Int("images", len(added)).Str("output", output).Msg("EPUB written")
	return nil
}

func addComic(e *epub.Epub, comic *catalog.Comic, picturesDir string, added map[string]string) error {
	title := comic.DisplayTitle()

	var body strings.Builder
	fmt.Fprintf(&body, "<h1>%s</h1>\n", html.EscapeString(title))
	if len(comic.Tags) > 0 {
		fmt.Fprintf(&body, "<p class=\"tags\">%s</p>\n", html.EscapeString(strings.Join(comic.Tags, ", ")))
	}

	for i, picture := range comic.Pictures() {
		internalPath, ok := added[picture]
		if !ok {
			source := filepath.Join(picturesDir, picture)
			if _, err := os.Stat(source); err != nil {
				return fmt.Errorf("missing picture %s: %w", picture, err)
			}
			var err error
			internalPath, err = e.AddImage(source, "")
			if err != nil {
				return fmt.Errorf("failed to add image %s: %w", picture, err)
			}
			added[picture] = internalPath
		}
		fmt.Fprintf(&body,
			"<div class=\"page\"><img src=\"%s\" alt=\"%s\" style=\"width:100%%;height:auto;\"/></div>\n",
			html.EscapeString(internalPath), html.EscapeString(fmt.Sprintf("%s_%d", comic.Name, i)),
		)
	}

	if _, err := e.AddSection(body.String(), title, "", ""); err != nil {
		return fmt.Errorf("failed to add section: %w", err)
	}
	return nil
}
