package render

import (
	"fmt"
	"hash/fnv"
	"net/url"
	"path"
	"strings"

	"github.com/danielkitchener/ComicShelf/internal/utils"
)

// Page sections of the static site.
const (
	SectionPlaylist = "playlist"
	SectionComic    = "comic"
	SectionTag      = "tag"
)

// Linker produces the hrefs used by rendered pages.
type Linker interface {
	Home() string
	Playlist(name string) string
	Comic(name string) string
	Tag(tag string) string
	// Search returns the search form action, empty when search is unavailable.
	Search() string
	Asset(name string) string
	Picture(file string) string
	Thumbnail(file string) string
}

// QueryLinker links pages through query parameters, as served by the HTTP server.
type QueryLinker struct {
	// Root is prepended to every link, empty for links relative to the site root.
	Root string
}

func (l QueryLinker) Home() string { return l.Root + "index.html" }

func (l QueryLinker) Playlist(name string) string {
	return l.Root + "comics.html?playlist=" + url.QueryEscape(name)
}

func (l QueryLinker) Comic(name string) string {
	return l.Root + "comics.html?comic=" + url.QueryEscape(name)
}

func (l QueryLinker) Tag(tag string) string {
	return l.Root + "tag.html?tag=" + url.QueryEscape(tag)
}

func (l QueryLinker) Search() string { return l.Root + "search" }

func (l QueryLinker) Asset(name string) string { return l.Root + "static/" + name }

func (l QueryLinker) Picture(file string) string { return l.Root + "pictures/" + url.PathEscape(file) }

func (l QueryLinker) Thumbnail(file string) string { return l.Root + "thumbs/" + url.PathEscape(file) }

// PathLinker links the pages of the static site, one file per playlist, comic and tag.
type PathLinker struct {
	// Depth is the number of directories between the current page and the site root.
	Depth int
}

func (l PathLinker) root() string {
	return strings.Repeat("../", l.Depth)
}

func (l PathLinker) Home() string { return l.root() + "index.html" }

func (l PathLinker) Playlist(name string) string { return l.page(SectionPlaylist, name) }

func (l PathLinker) Comic(name string) string { return l.page(SectionComic, name) }

func (l PathLinker) Tag(tag string) string { return l.page(SectionTag, tag) }

func (l PathLinker) Search() string { return "" }

func (l PathLinker) Asset(name string) string { return l.root() + "static/" + name }

func (l PathLinker) Picture(file string) string { return l.root() + "pictures/" + url.PathEscape(file) }

func (l PathLinker) Thumbnail(file string) string { return l.root() + "thumbs/" + url.PathEscape(file) }

func (l PathLinker) page(section, name string) string {
	return l.root() + section + "/" + url.PathEscape(pageName(name))
}

// PageFile returns the slash separated path of the static page for name in section.
func PageFile(section, name string) string {
	return path.Join(section, pageName(name))
}

// pageName keeps names that are already safe as they are. Any other name gets a hash suffix of the
// raw name, so "a/b" and "a_b" do not share a page.
func pageName(name string) string {
	safe := utils.SanitizeFileName(name)
	if safe != name {
		h := fnv.New32a()
		_, _ = h.Write([]byte(name))
		safe = fmt.Sprintf("%s-%08x", safe, h.Sum32())
	}
	return safe + ".html"
}
