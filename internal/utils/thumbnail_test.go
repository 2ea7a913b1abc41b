package utils

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielkitchener/ComicShelf/internal/catalog"
	"github.com/danielkitchener/ComicShelf/pkg/thumbnail"
	"github.com/danielkitchener/ComicShelf/pkg/thumbnail/constant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockEncoder records the encoded images instead of compressing them.
type MockEncoder struct {
	err     error
	encoded int
}

func (m *MockEncoder) Format() constant.ThumbnailFormat { return constant.PNG }
func (m *MockEncoder) Prepare() error { return nil }
func (m *MockEncoder) Encode(w io.Writer, img image.Image, _ uint8) error {
	if m.err != nil {
		return m.err
	}
	m.encoded++
	return png.Encode(w, img)
}

func writeCover(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 60))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func newOptions(t *testing.T, encoder thumbnail.Encoder, comic *catalog.Comic) *ThumbnailOptions {
	t.Helper()
	pictures := t.TempDir()
	writeCover(t, filepath.Join(pictures, comic.Cover()))
	g := thumbnail.NewGenerator(encoder)
	g.Width, g.Height = 20, 30
	return &ThumbnailOptions{
		Generator:   g,
		Comic:       comic,
		PicturesDir: pictures,
		ThumbsDir:   filepath.Join(t.TempDir(), "thumbs"),
	}
}

func TestThumbnail(t *testing.T) {
	encoder := &MockEncoder{}
	options := newOptions(t, encoder, &catalog.Comic{Name: "cat", Pics: 3})

	skipped, err := Thumbnail(context.Background(), options)
	require.NoError(t, err)
	assert.False(t, skipped)
	assert.Equal(t, filepath.Join(options.ThumbsDir, "cat.png"), options.ThumbnailPath())

	f, err := os.Open(options.ThumbnailPath())
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Width)
	assert.Equal(t, 30, cfg.Height)

	skipped, err = Thumbnail(context.Background(), options)
	require.NoError(t, err)
	assert.True(t, skipped, "an up to date thumbnail is kept")
	assert.Equal(t, 1, encoder.encoded)

	// A newer cover makes the thumbnail stale.
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(options.PicturesDir, "cat_0.jpg"), future, future))
	skipped, err = Thumbnail(context.Background(), options)
	require.NoError(t, err)
	assert.False(t, skipped)
	assert.Equal(t, 2, encoder.encoded)

	options.Override = true
	skipped, err = Thumbnail(context.Background(), options)
	require.NoError(t, err)
	assert.False(t, skipped)
	assert.Equal(t, 3, encoder.encoded)
}

func TestThumbnail_Errors(t *testing.T) {
	t.Run("missing cover", func(t *testing.T) {
		options := newOptions(t, &MockEncoder{}, &catalog.Comic{Name: "dog", Pics: 1})
		options.Comic = &catalog.Comic{Name: "ghost", Pics: 1}
		_, err := Thumbnail(context.Background(), options)
		assert.ErrorContains(t, err, "ghost")
	})

	t.Run("encoder failure leaves no file behind", func(t *testing.T) {
		failure := errors.New("boom")
		options := newOptions(t, &MockEncoder{err: failure}, &catalog.Comic{Name: "dog", Pics: 1})
		_, err := Thumbnail(context.Background(), options)
		assert.ErrorIs(t, err, failure)

		entries, err := os.ReadDir(options.ThumbsDir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("cancelled context", func(t *testing.T) {
		options := newOptions(t, &MockEncoder{}, &catalog.Comic{Name: "dog", Pics: 1})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Thumbnail(ctx, options)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
