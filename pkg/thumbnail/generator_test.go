package thumbnail

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/danielkitchener/ComicShelf/pkg/thumbnail/constant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	// Gradient so the encoders have real data to work with
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8((x * 255) / width),
				G: uint8((y * 255) / height),
				B: 100,
				A: 255,
			})
		}
	}
	return img
}

func encodeImage(t *testing.T, img image.Image, format string) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	switch format {
	case "jpeg":
		require.NoError(t, jpeg.Encode(buf, img, &jpeg.Options{Quality: 90}))
	default:
		require.NoError(t, png.Encode(buf, img))
	}
	return buf
}

func TestFit(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{name: "wide source", width: 1200, height: 400},
		{name: "tall source", width: 300, height: 3000},
		{name: "same ratio", width: 400, height: 560},
		{name: "smaller than target", width: 50, height: 30},
		{name: "single pixel", width: 1, height: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			thumb, err := Fit(createTestImage(tt.width, tt.height), DefaultWidth, DefaultHeight)
			require.NoError(t, err)
			assert.Equal(t, DefaultWidth, thumb.Bounds().Dx())
			assert.Equal(t, DefaultHeight, thumb.Bounds().Dy())
		})
	}
}

func TestFitEmptyImage(t *testing.T) {
	_, err := Fit(image.NewRGBA(image.Rect(0, 0, 0, 0)), 10, 10)
	assert.Error(t, err)
}

func TestGenerator_Generate(t *testing.T) {
	tests := []struct {
		name         string
		sourceFormat string
		format       constant.ThumbnailFormat
		expected     string
	}{
		{name: "jpeg to jpeg", sourceFormat: "jpeg", format: constant.JPEG, expected: "jpeg"},
		{name: "png to jpeg", sourceFormat: "png", format: constant.JPEG, expected: "jpeg"},
		{name: "jpeg to png", sourceFormat: "jpeg", format: constant.PNG, expected: "png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoder, err := Get(tt.format)
			require.NoError(t, err)
			g := NewGenerator(encoder)
			g.Width, g.Height = 60, 90

			var out bytes.Buffer
			require.NoError(t, g.Generate(encodeImage(t, createTestImage(640, 480), tt.sourceFormat), &out))

			decoded, format, err := image.Decode(&out)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format)
			assert.Equal(t, image.Rect(0, 0, 60, 90), decoded.Bounds())
		})
	}
}

func TestGenerator_GenerateErrors(t *testing.T) {
	encoder, err := Get(constant.JPEG)
	require.NoError(t, err)

	g := NewGenerator(encoder)
	assert.Error(t, g.Generate(bytes.NewReader([]byte("not a picture")), &bytes.Buffer{}))

	g.Width = 0
	assert.Error(t, g.Generate(encodeImage(t, createTestImage(10, 10), "png"), &bytes.Buffer{}))
}

func TestGet(t *testing.T) {
	assert.Equal(t, []constant.ThumbnailFormat{constant.JPEG, constant.PNG, constant.WebP}, Available())

	for _, format := range Available() {
		encoder, err := Get(format)
		require.NoError(t, err)
		assert.Equal(t, format, encoder.Format())
	}

	_, err := Get(constant.ThumbnailFormat(42))
	assert.ErrorContains(t, err, "available options are jpeg, png, webp")
}
