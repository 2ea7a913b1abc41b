package webp

import (
	"fmt"
	"image"
	"io"
	"sync"

	"github.com/danielkitchener/ComicShelf/pkg/thumbnail/constant"
)

// Encoder writes thumbnails through the cwebp binary.
type Encoder struct {
	mu         sync.Mutex
	isPrepared bool
}

func New() *Encoder {
	return &Encoder{}
}

func (e *Encoder) Format() constant.ThumbnailFormat {
	return constant.WebP
}

func (e *Encoder) Prepare() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.isPrepared {
		return nil
	}
	if err := PrepareEncoder(); err != nil {
		return fmt.Errorf("failed to prepare cwebp: %w", err)
	}
	e.isPrepared = true
	return nil
}

func (e *Encoder) Encode(w io.Writer, img image.Image, quality uint8) error {
	if err := e.Prepare(); err != nil {
		return err
	}
	return Encode(w, img, uint(quality))
}
