package thumbnail

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"github.com/danielkitchener/ComicShelf/pkg/thumbnail/constant"
	"github.com/danielkitchener/ComicShelf/pkg/thumbnail/webp"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

type Encoder interface {
	// Format of the encoder
	Format() constant.ThumbnailFormat
	// Prepare makes sure the encoder can run, fetching external tools if needed.
	Prepare() error
	Encode(w io.Writer, img image.Image, quality uint8) error
}

var encoders = map[constant.ThumbnailFormat]Encoder{
	constant.JPEG: jpegEncoder{},
	constant.PNG:  pngEncoder{},
	constant.WebP: webp.New(),
}

// Available returns the available thumbnail formats.
func Available() []constant.ThumbnailFormat {
	formats := lo.Keys(encoders)
	slices.Sort(formats)
	return formats
}

// Get returns an encoder by format.
// If the format is not available, an error is returned.
var Get = getEncoder

func getEncoder(format constant.ThumbnailFormat) (Encoder, error) {
	if encoder, ok := encoders[format]; ok {
		return encoder, nil
	}

	return nil, fmt.Errorf("unknown thumbnail format \"%s\", available options are %s", format, strings.Join(lo.Map(Available(), func(item constant.ThumbnailFormat, _ int) string {
		return item.String()
	}), ", "))
}

type jpegEncoder struct{}

func (jpegEncoder) Format() constant.ThumbnailFormat { return constant.JPEG }
func (jpegEncoder) Prepare() error { return nil }
func (jpegEncoder) Encode(w io.Writer, img image.Image, quality uint8) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: int(quality)})
}

// pngEncoder ignores quality, PNG is lossless.
type pngEncoder struct{}

func (pngEncoder) Format() constant.ThumbnailFormat { return constant.PNG }
func (pngEncoder) Prepare() error { return nil }
func (pngEncoder) Encode(w io.Writer, img image.Image, _ uint8) error {
	return png.Encode(w, img)
}
