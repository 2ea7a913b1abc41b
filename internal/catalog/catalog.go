package catalog

import (
	"math/rand/v2"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Catalog is the in-memory view of the comics and playlists documents.
// It is rebuilt from scratch on every load and never mutated afterwards.
type Catalog struct {
	comics        map[string]*Comic
	comicOrder    []string
	playlists     map[string]*Playlist
	playlistOrder []string
	tags          map[string]struct{}
}

// New builds a catalog. A duplicate name replaces the earlier entry but keeps its position.
func New(comics []*Comic, playlists []*Playlist) *Catalog {
	c := &Catalog{
		comics:    make(map[string]*Comic, len(comics)),
		playlists: make(map[string]*Playlist, len(playlists)),
		tags:      make(map[string]struct{}),
	}
	for _, comic := range comics {
		if _, ok := c.comics[comic.Name]; !ok {
			c.comicOrder = append(c.comicOrder, comic.Name)
		}
		c.comics[comic.Name] = comic
	}
	for _, playlist := range playlists {
		if _, ok := c.playlists[playlist.Name]; !ok {
			c.playlistOrder = append(c.playlistOrder, playlist.Name)
		}
		c.playlists[playlist.Name] = playlist
	}
	for _, comic := range c.comics {
		for _, tag := range comic.Tags {
			c.tags[tag] = struct{}{}
		}
	}
	return c
}

// Comic returns the comic with the given name.
func (c *Catalog) Comic(name string) (*Comic, bool) {
	comic, ok := c.comics[name]
	return comic, ok
}

// Playlist returns the playlist with the given name.
func (c *Catalog) Playlist(name string) (*Playlist, bool) {
	playlist, ok := c.playlists[name]
	return playlist, ok
}

// Comics returns all comics in document order.
func (c *Catalog) Comics() []*Comic {
	return c.resolve(c.comicOrder)
}

// Playlists returns all playlists in document order.
func (c *Catalog) Playlists() []*Playlist {
	return lo.Map(c.playlistOrder, func(name string, _ int) *Playlist {
		return c.playlists[name]
	})
}

// Tags returns every distinct tag, sorted.
func (c *Catalog) Tags() []string {
	tags := lo.Keys(c.tags)
	slices.Sort(tags)
	return tags
}

// ComicsWithTag returns the comics carrying the tag, in document order.
func (c *Catalog) ComicsWithTag(tag string) []*Comic {
	return lo.Filter(c.Comics(), func(comic *Comic, _ int) bool {
		return comic.HasTag(tag)
	})
}

// PlaylistsContaining returns the playlists referencing the comic, in document order.
func (c *Catalog) PlaylistsContaining(comic string) []*Playlist {
	return lo.Filter(c.Playlists(), func(playlist *Playlist, _ int) bool {
		return playlist.Contains(comic)
	})
}

// RandomTags picks up to n distinct tags in random order.
func (c *Catalog) RandomTags(rng *rand.Rand, n int) []string {
	tags := c.Tags()
	rng.Shuffle(len(tags), func(i, j int) {
		tags[i], tags[j] = tags[j], tags[i]
	})
	if n < 0 {
		n = 0
	}
	if len(tags) > n {
		tags = tags[:n]
	}
	return tags
}

func (c *Catalog) resolve(names []string) []*Comic {
	comics := make([]*Comic, 0, len(names))
	for _, name := range names {
		if comic, ok := c.comics[name]; ok {
			comics = append(comics, comic)
		}
	}
	return comics
}
