package catalog

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type hitKey struct {
	comic    string
	playlist string
}

func hitKeys(hits []ComicHit) []hitKey {
	return lo.Map(hits, func(hit ComicHit, _ int) hitKey {
		return hitKey{hit.Comic.Name, hit.Playlist}
	})
}

func TestSearch(t *testing.T) {
	c := newTestCatalog(t)

	tests := []struct {
		name      string
		query     string
		kind      SearchKind
		playlists []string
		hits      []hitKey
	}{
		{
			name:      "tag substring",
			query:     "AN",
			kind:      SearchAll,
			playlists: []string{},
			hits:      []hitKey{{"dog", "Pets"}, {"cat", "Pets"}},
		},
		{
			name:      "comic in two playlists",
			query:     "robot",
			kind:      SearchComicName,
			playlists: []string{},
			hits:      []hitKey{{"robot", "Pets"}, {"robot", "Space"}},
		},
		{
			name:      "playlists only",
			query:     "s",
			kind:      SearchPlaylist,
			playlists: []string{"Pets", "Space"},
			hits:      []hitKey{},
		},
		{
			name:      "tag and name hits are merged",
			query:     "dog",
			kind:      SearchAll,
			playlists: []string{},
			hits:      []hitKey{{"dog", "Pets"}},
		},
		{
			name:      "display title is searched",
			query:     "кот",
			kind:      SearchComicName,
			playlists: []string{},
			hits:      []hitKey{{"cat", "Pets"}},
		},
		{
			name:      "playlist and tag together",
			query:     "space",
			kind:      SearchAll,
			playlists: []string{"Space"},
			hits:      []hitKey{{"moon", "Space"}},
		},
		{
			name:      "tag kind ignores names",
			query:     "moon",
			kind:      SearchTag,
			playlists: []string{},
			hits:      []hitKey{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := c.Search(tt.query, tt.kind)
			require.NoError(t, err)

			playlists := lo.Map(result.Playlists, func(p *Playlist, _ int) string { return p.Name })
			assert.Equal(t, tt.playlists, append([]string{}, playlists...))
			assert.Equal(t, tt.hits, append([]hitKey{}, hitKeys(result.Comics)...))
			assert.Equal(t, len(tt.playlists) == 0 && len(tt.hits) == 0, result.Empty())
		})
	}
}

func TestSearchComicWithoutPlaylist(t *testing.T) {
	c := New([]*Comic{{Name: "lonely", Pics: 1, Tags: []string{"solo"}}}, nil)
	result, err := c.Search("solo", SearchAll)
	require.NoError(t, err)
	assert.Equal(t, []hitKey{{"lonely", ""}}, hitKeys(result.Comics))
}

func TestSearchEmptyQuery(t *testing.T) {
	c := newTestCatalog(t)
	result, err := c.Search("   ", SearchAll)
	assert.ErrorIs(t, err, ErrEmptyQuery)
	assert.True(t, result.Empty())
}

func TestParseSearchKind(t *testing.T) {
	assert.Equal(t, SearchTag, ParseSearchKind("TAG"))
	assert.Equal(t, SearchComicName, ParseSearchKind("comic_name"))
	assert.Equal(t, SearchPlaylist, ParseSearchKind(" playlist "))
	assert.Equal(t, SearchAll, ParseSearchKind("everything"))
	assert.Equal(t, "comic_name", SearchComicName.String())
}
