package utils

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/danielkitchener/ComicShelf/internal/catalog"
	"github.com/danielkitchener/ComicShelf/internal/utils/errs"
	"github.com/danielkitchener/ComicShelf/pkg/thumbnail"
	"github.com/rs/zerolog/log"
)

type ThumbnailOptions struct {
	Generator   *thumbnail.Generator
	Comic       *catalog.Comic
	PicturesDir string
	ThumbsDir   string
	// Override regenerates thumbnails that are newer than their cover.
	Override bool
}

// ThumbnailPath returns where the thumbnail of the comic is written.
func (o *ThumbnailOptions) ThumbnailPath() string {
	return filepath.Join(o.ThumbsDir, o.Comic.Thumbnail(o.Generator.Encoder.Format().Extension()))
}

// Thumbnail writes the preview of a comic's cover picture.
// It reports skipped when an up to date thumbnail already exists.
func Thumbnail(ctx context.Context, options *ThumbnailOptions) (skipped bool, err error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	source := filepath.Join(options.PicturesDir, options.Comic.Cover())
	target := options.ThumbnailPath()
	log.Debug().Str("comic", options.Comic.Name).Str("source", source).Str("target", target).Msg("Processing thumbnail")

	sourceInfo, err := os.Stat(source)
	if err != nil {
		return false, fmt.Errorf("failed to stat cover of %s: %w", options.Comic.Name, err)
	}
	if !options.Override {
		if targetInfo, err := os.Stat(target); err == nil && !targetInfo.ModTime().Before(sourceInfo.ModTime()) {
			log.Debug().Str("comic", options.Comic.Name).Str("target", target).Msg("Thumbnail already up to date")
			return true, nil
		}
	}

	in, err := os.Open(source)
	if err != nil {
		return false, fmt.Errorf("failed to open cover of %s: %w", options.Comic.Name, err)
	}
	defer errs.Capture(&err, in.Close, fmt.Sprintf("failed to close %s", source))

	if err := os.MkdirAll(options.ThumbsDir, 0o755); err != nil {
		return false, fmt.Errorf("failed to create thumbnail directory: %w", err)
	}

	// Written next to the target and renamed, so a served thumbnail is never partial.
	tmp, err := os.CreateTemp(options.ThumbsDir, ".thumb-*")
	if err != nil {
		return false, fmt.Errorf("failed to create temporary thumbnail: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = options.Generator.Generate(in, tmp); err != nil {
		_ = tmp.Close()
		return false, fmt.Errorf("failed to generate thumbnail of %s: %w", options.Comic.Name, err)
	}
	if err = tmp.Close(); err != nil {
		return false, fmt.Errorf("failed to write thumbnail of %s: %w", options.Comic.Name, err)
	}
	if err = os.Rename(tmp.Name(), target); err != nil {
		return false, fmt.Errorf("failed to move thumbnail of %s: %w", options.Comic.Name, err)
	}

	log.Debug().Str("comic", options.Comic.Name).Str("target", target).Msg("Thumbnail written")
	return false, nil
}
