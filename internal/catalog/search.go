package catalog

import (
	"strings"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// SearchKind restricts what a search query is matched against.
type SearchKind int

const (
	SearchAll SearchKind = iota
	SearchTag
	SearchPlaylist
	SearchComicName
)

// SearchKinds maps every kind to its accepted names, the first one being canonical.
var SearchKinds = map[SearchKind][]string{
	SearchAll:       {"all"},
	SearchTag:       {"tag"},
	SearchPlaylist:  {"playlist"},
	SearchComicName: {"comic_name", "name", "comic"},
}

func (k SearchKind) String() string {
	if names, ok := SearchKinds[k]; ok {
		return names[0]
	}
	return SearchKinds[SearchAll][0]
}

// ParseSearchKind resolves a kind name, unknown names fall back to SearchAll.
func ParseSearchKind(name string) SearchKind {
	name = strings.ToLower(strings.TrimSpace(name))
	for kind, names := range SearchKinds {
		if lo.Contains(names, name) {
			return kind
		}
	}
	return SearchAll
}

type ComicHit struct {
	Comic *Comic
	// Playlist containing the comic, empty when the comic belongs to no playlist.
	Playlist string
}

type SearchResult struct {
	Query     string
	Kind      SearchKind
	Playlists []*Playlist
	Comics    []ComicHit
}

// Empty reports whether nothing matched.
func (r *SearchResult) Empty() bool {
	return len(r.Playlists) == 0 && len(r.Comics) == 0
}

// Search matches the lowercased query as a substring of playlist names, tags or comic names.
// Comic hits are expanded to one hit per playlist containing the comic.
func (c *Catalog) Search(query string, kind SearchKind) (*SearchResult, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	result := &SearchResult{Query: query, Kind: kind}
	if query == "" {
		return result, ErrEmptyQuery
	}

	if kind == SearchAll || kind == SearchPlaylist {
		result.Playlists = lo.Filter(c.Playlists(), func(p *Playlist, _ int) bool {
			return strings.Contains(strings.ToLower(p.Name), query)
		})
		slices.SortStableFunc(result.Playlists, func(a, b *Playlist) int {
			return strings.Compare(a.Name, b.Name)
		})
	}

	var matched []*Comic
	if kind == SearchAll || kind == SearchTag {
		matched = append(matched, lo.Filter(c.Comics(), func(comic *Comic, _ int) bool {
			return lo.ContainsBy(comic.Tags, func(tag string) bool {
				return strings.Contains(strings.ToLower(tag), query)
			})
		})...)
	}
	if kind == SearchAll || kind == SearchComicName {
		matched = append(matched, lo.Filter(c.Comics(), func(comic *Comic, _ int) bool {
			return strings.Contains(strings.ToLower(comic.Name), query) ||
				strings.Contains(strings.ToLower(comic.Title), query)
		})...)
	}

	var hits []ComicHit
	for _, comic := range matched {
		playlists := c.PlaylistsContaining(comic.Name)
		if len(playlists) == 0 {
			hits = append(hits, ComicHit{Comic: comic})
			continue
		}
		for _, playlist := range playlists {
			hits = append(hits, ComicHit{Comic: comic, Playlist: playlist.Name})
		}
	}
	slices.SortStableFunc(hits, func(a, b ComicHit) int {
		return strings.Compare(a.Comic.DisplayTitle(), b.Comic.DisplayTitle())
	})
	result.Comics = lo.UniqBy(hits, func(hit ComicHit) [2]string {
		return [2]string{hit.Comic.Name, hit.Playlist}
	})
	return result, nil
}
