package site

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/danielkitchener/ComicShelf/internal/catalog"
	"github.com/danielkitchener/ComicShelf/internal/render"
	"github.com/danielkitchener/ComicShelf/internal/utils"
	"github.com/rs/zerolog/log"
)

// CatalogLoader provides the catalog a build renders.
type CatalogLoader interface {
	Load(ctx context.Context) (*catalog.Catalog, error)
}

// Builder writes the gallery as a static site, one HTML file per playlist, comic and tag.
type Builder struct {
	Loader    CatalogLoader
	Renderer  *render.Renderer
	OutputDir string
	// PicturesDir is copied to <output>/pictures when set.
	PicturesDir string
	// ThumbsDir is copied to <output>/thumbs when set.
	ThumbsDir string
}

// Report summarizes a build.
type Report struct {
	Playlists int
	Comics    int
	Tags      int
	Pictures  int
	Thumbs    int
}

// Pages returns the number of HTML pages written, the home page included.
func (r Report) Pages() int {
	return 1 + r.Playlists + r.Comics + r.Tags
}

// Build renders every page of the catalog into OutputDir.
func (b *Builder) Build(ctx context.Context) (Report, error) {
	var report Report
	log.Debug().Str("output", b.OutputDir).Msg("Starting site build")

	c, err := b.Loader.Load(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to load catalog: %w", err)
	}

	if err := os.MkdirAll(b.OutputDir, 0o755); err != nil {
		return report, fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := b.writePage("index.html", func(buf *bytes.Buffer) error {
		return b.Renderer.Home(buf, c, render.PathLinker{})
	}); err != nil {
		return report, err
	}

	nested := render.PathLinker{Depth: 1}
	for _, playlist := range c.Playlists() {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := b.writePage(render.PageFile(render.SectionPlaylist, playlist.Name), func(buf *bytes.Buffer) error {
			_, err := b.Renderer.Comics(buf, c, render.ComicQuery{Playlist: playlist.Name}, nested)
			return err
		}); err != nil {
			return report, err
		}
		report.Playlists++
	}

	for _, comic := range c.Comics() {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := b.writePage(render.PageFile(render.SectionComic, comic.Name), func(buf *bytes.Buffer) error {
			_, err := b.Renderer.Comics(buf, c, render.ComicQuery{Comic: comic.Name}, nested)
			return err
		}); err != nil {
			return report, err
		}
		report.Comics++
	}

	for _, tag := range c.Tags() {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := b.writePage(render.PageFile(render.SectionTag, tag), func(buf *bytes.Buffer) error {
			_, err := b.Renderer.Tag(buf, c, tag, nested)
			return err
		}); err != nil {
			return report, err
		}
		report.Tags++
	}

	if err := b.writeAssets(); err != nil {
		return report, err
	}

	if b.PicturesDir != "" {
		report.Pictures, err = b.copyDir(b.PicturesDir, "pictures")
		if err != nil {
			return report, err
		}
	}
	if b.ThumbsDir != "" {
		report.Thumbs, err = b.copyDir(b.ThumbsDir, "thumbs")
		if err != nil {
			return report, err
		}
	}

	log.Info().
		Str("output", b.OutputDir).
		Int("pages", report.Pages()).
		Int("pictures", report.Pictures).
		Int("thumbs", report.Thumbs).
		Msg("Site built")
	return report, nil
}

func (b *Builder) writePage(name string, renderPage func(buf *bytes.Buffer) error) error {
	var buf bytes.Buffer
	if err := renderPage(&buf); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	target := filepath.Join(b.OutputDir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", name, err)
	}
	if err := os.WriteFile(target, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	log.Debug().Str("page", name).Int("size", buf.Len()).Msg("Page written")
	return nil
}

func (b *Builder) writeAssets() error {
	return fs.WalkDir(render.Assets, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		content, err := fs.ReadFile(render.Assets, path)
		if err != nil {
			return fmt.Errorf("failed to read asset %s: %w", path, err)
		}
		target := filepath.Join(b.OutputDir, "static", filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		return os.WriteFile(target, content, 0o644)
	})
}

func (b *Builder) copyDir(src, name string) (int, error) {
	if !utils.IsValidFolder(src) {
		log.Warn().Str("directory", src).Msg("Skipping missing directory")
		return 0, nil
	}
	copied, err := utils.CopyDir(src, filepath.Join(b.OutputDir, name))
	if err != nil {
		return copied, fmt.Errorf("failed to copy %s: %w", name, err)
	}
	return copied, nil
}
