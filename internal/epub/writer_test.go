package epub

import (
	"archive/zip"
	"html"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/danielkitchener/ComicShelf/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestPicture(t *testing.T, dir, name string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 12))
	for y := 0; y < 12; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 20), B: 100, A: 255})
		}
	}
	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(f, img, nil))
	require.NoError(t, f.Close())
}

func testCatalog() *catalog.Catalog {
	return catalog.New(
		[]*catalog.Comic{
			{Name: "cat", Title: "Кот", Pics: 2, Tags: []string{"animals"}},
			{Name: "dog", Pics: 1},
			{Name: "ghost", Pics: 1},
		},
		[]*catalog.Playlist{
			{Name: "Pets", Content: []string{"cat", "missing", "dog", "cat"}},
			{Name: "Haunted", Content: []string{"ghost"}},
			{Name: "Empty", Content: []string{"nobody"}},
		},
	)
}

func readEpub(t *testing.T, path string) map[string]string {
	t.Helper()
	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	files := make(map[string]string)
	for _, f := range r.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		files[f.Name] = string(content)
	}
	return files
}

func TestWritePlaylist(t *testing.T) {
	pictures := t.TempDir()
	for _, name := range []string{"cat_0.jpg", "cat_1.jpg", "dog.jpg"} {
		createTestPicture(t, pictures, name)
	}
	output := filepath.Join(t.TempDir(), "out", "Pets.epub")

	require.NoError(t, WritePlaylist(testCatalog(), "Pets", pictures, output))
	require.FileExists(t, output)

	files := readEpub(t, output)
	var images, sections []string
	for name, content := range files {
		switch {
		case strings.HasSuffix(name, ".jpg"):
			images = append(images, filepath.Base(name))
		case strings.HasSuffix(name, ".xhtml") && strings.Contains(content, `class="page"`):
			sections = append(sections, content)
		}
	}
	assert.ElementsMatch(t, []string{"cat_0.jpg", "cat_1.jpg", "dog.jpg"}, images)
	require.Len(t, sections, 3, "cat is listed twice and the dangling reference is skipped")

	joined := strings.Join(sections, "\n")
	assert.Contains(t, joined, "<h1>Кот</h1>")
	assert.Contains(t, joined, "<h1>dog</h1>")
	assert.Contains(t, joined, `alt="cat_1"`)
}

func TestWritePlaylistEscapesPicturePaths(t *testing.T) {
	pictures := t.TempDir()
	createTestPicture(t, pictures, "tom&jerry.jpg")
	c := catalog.New(
		[]*catalog.Comic{{Name: "tom&jerry", Pics: 1}},
		[]*catalog.Playlist{{Name: "Cartoons", Content: []string{"tom&jerry"}}},
	)
	output := filepath.Join(t.TempDir(), "Cartoons.epub")

	require.NoError(t, WritePlaylist(c, "Cartoons", pictures, output))

	files := readEpub(t, output)
	var sectionName, section string
	for name, content := range files {
		if strings.HasSuffix(name, ".xhtml") && strings.Contains(content, `class="page"`) {
			sectionName, section = name, content
		}
	}
	require.NotEmpty(t, section)
	assert.NotContains(t, section, "tom&jerry")

	match := regexp.MustCompile(`<img src="([^"]*)"`).FindStringSubmatch(section)
	require.Len(t, match, 2)
	picture := path.Join(path.Dir(sectionName), html.UnescapeString(match[1]))
	assert.Contains(t, files, picture)
}

func TestWritePlaylistErrors(t *testing.T) {
	pictures := t.TempDir()
	output := filepath.Join(t.TempDir(), "out.epub")

	tests := []struct {
		name     string
		playlist string
		contains string
	}{
		{name: "unknown playlist", playlist: "Nope", contains: "not found"},
		{name: "no resolvable comics", playlist: "Empty", contains: "no comics"},
		{name: "missing picture", playlist: "Haunted", contains: "missing picture ghost.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WritePlaylist(testCatalog(), tt.playlist, pictures, output)
			assert.ErrorContains(t, err, tt.contains)
			assert.NoFileExists(t, output)
		})
	}
}
