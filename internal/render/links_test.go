package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryLinker(t *testing.T) {
	l := QueryLinker{}
	assert.Equal(t, "index.html", l.Home())
	assert.Equal(t, "comics.html?playlist=Space+Cats", l.Playlist("Space Cats"))
	assert.Equal(t, "comics.html?comic=a%26b", l.Comic("a&b"))
	assert.Equal(t, "tag.html?tag=sci%2Ffi", l.Tag("sci/fi"))
	assert.Equal(t, "search", l.Search())
	assert.Equal(t, "static/style.css", l.Asset("style.css"))
	assert.Equal(t, "pictures/a%23b_0.jpg", l.Picture("a#b_0.jpg"))
	assert.Equal(t, "thumbs/cat.webp", l.Thumbnail("cat.webp"))

	rooted := QueryLinker{Root: "/"}
	assert.Equal(t, "/comics.html?comic=cat", rooted.Comic("cat"))
}

func TestPathLinker(t *testing.T) {
	root := PathLinker{}
	assert.Equal(t, "index.html", root.Home())
	assert.Equal(t, "playlist/Space%20Cats.html", root.Playlist("Space Cats"))
	assert.Equal(t, "tag/sci_fi-baa4b932.html", root.Tag("sci/fi"))
	assert.Equal(t, "pictures/cat_0.jpg", root.Picture("cat_0.jpg"))
	assert.Empty(t, root.Search())

	nested := PathLinker{Depth: 1}
	assert.Equal(t, "../index.html", nested.Home())
	assert.Equal(t, "../comic/cat.html", nested.Comic("cat"))
	assert.Equal(t, "../static/main.js", nested.Asset("main.js"))
	assert.Equal(t, "../thumbs/cat.jpg", nested.Thumbnail("cat.jpg"))
}

func TestPageFile(t *testing.T) {
	assert.Equal(t, "playlist/Space Cats.html", PageFile(SectionPlaylist, "Space Cats"))
	assert.Equal(t, "tag/sci_fi-baa4b932.html", PageFile(SectionTag, "sci/fi"))
	assert.Equal(t, "comic/_-a3d4a70d.html", PageFile(SectionComic, ".."))
}

func TestPageFileDistinctNames(t *testing.T) {
	tests := []struct {
		name string
		a, b string
	}{
		{name: "slash and underscore", a: "a/b", b: "a_b"},
		{name: "question mark", a: "x?", b: "x_"},
		{name: "leading dot", a: ".x", b: "x"},
		{name: "both changed", a: "a/b", b: "a:b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, PageFile(SectionComic, tt.a), PageFile(SectionComic, tt.b))
			assert.NotEqual(t, PathLinker{}.Comic(tt.a), PathLinker{}.Comic(tt.b))
		})
	}
	assert.Equal(t, "comic/a_b-3a8e75c1.html", PageFile(SectionComic, "a/b"))
	assert.Equal(t, "comic/a_b.html", PageFile(SectionComic, "a_b"))
}
