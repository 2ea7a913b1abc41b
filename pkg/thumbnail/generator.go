package thumbnail

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/oliamb/cutter"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	DefaultWidth   = 200
	DefaultHeight  = 280
	DefaultQuality = 85
)

// Generator turns a cover picture into a fixed size preview.
type Generator struct {
	Width   int
	Height  int
	Quality uint8
	Encoder Encoder
}

func NewGenerator(encoder Encoder) *Generator {
	return &Generator{
		Width:   DefaultWidth,
		Height:  DefaultHeight,
		Quality: DefaultQuality,
		Encoder: encoder,
	}
}

// Generate decodes the picture read from r and writes its thumbnail to w.
func (g *Generator) Generate(r io.Reader, w io.Writer) error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("invalid thumbnail size %dx%d", g.Width, g.Height)
	}
	img, format, err := image.Decode(r)
	if err != nil {
		return fmt.Errorf("failed to decode picture: %w", err)
	}

	thumb, err := Fit(img, g.Width, g.Height)
	if err != nil {
		return fmt.Errorf("failed to resize %s picture: %w", format, err)
	}
	if err := g.Encoder.Encode(w, thumb, g.Quality); err != nil {
		return fmt.Errorf("failed to encode thumbnail as %s: %w", g.Encoder.Format(), err)
	}
	return nil
}

// Fit crops the centre of img to the width:height aspect ratio and scales the result to exactly width x height.
func Fit(img image.Image, width, height int) (image.Image, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("picture has no pixels")
	}

	cropWidth, cropHeight := bounds.Dx(), bounds.Dy()
	if cropWidth*height > cropHeight*width {
		cropWidth = max(1, cropHeight*width/height)
	} else {
		cropHeight = max(1, cropWidth*height/width)
	}

	cropped, err := cutter.Crop(img, cutter.Config{
		Width:  cropWidth,
		Height: cropHeight,
		Mode:   cutter.Centered,
	})
	if err != nil {
		return nil, fmt.Errorf("error cropping picture: %v", err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), cropped, cropped.Bounds(), draw.Over, nil)
	return dst, nil
}
