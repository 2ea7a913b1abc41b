package catalog

import (
	"math/rand/v2"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	return New(loadTestComics(t), loadTestPlaylists(t))
}

func TestComicPictures(t *testing.T) {
	single := &Comic{Name: "dog", Pics: 1}
	assert.Equal(t, []string{"dog.jpg"}, single.Pictures())
	assert.Equal(t, "dog.jpg", single.Cover())

	multi := &Comic{Name: "cat", Pics: 3}
	assert.Equal(t, []string{"cat_0.jpg", "cat_1.jpg", "cat_2.jpg"}, multi.Pictures())
	assert.Equal(t, "cat_0.jpg", multi.Cover())

	zero := &Comic{Name: "broken"}
	assert.Equal(t, []string{"broken.jpg"}, zero.Pictures())
}

func TestCatalogLookups(t *testing.T) {
	c := newTestCatalog(t)

	cat, ok := c.Comic("cat")
	require.True(t, ok)
	assert.Equal(t, 3, cat.Pics)

	_, ok = c.Comic("ghost")
	assert.False(t, ok)

	names := lo.Map(c.Comics(), func(comic *Comic, _ int) string { return comic.Name })
	assert.Equal(t, []string{"cat", "dog", "robot", "moon"}, names)

	assert.Equal(t, []string{"animals", "dogs", "funny", "sad", "scifi", "space"}, c.Tags())

	tagged := lo.Map(c.ComicsWithTag("scifi"), func(comic *Comic, _ int) string { return comic.Name })
	assert.Equal(t, []string{"robot", "moon"}, tagged)
	assert.Empty(t, c.ComicsWithTag("missing"))

	containing := lo.Map(c.PlaylistsContaining("robot"), func(p *Playlist, _ int) string { return p.Name })
	assert.Equal(t, []string{"Pets", "Space"}, containing)
}

func TestPlaylistResolveSkipsDangling(t *testing.T) {
	c := newTestCatalog(t)
	pets, ok := c.Playlist("Pets")
	require.True(t, ok)

	resolved := lo.Map(pets.Resolve(c), func(comic *Comic, _ int) string { return comic.Name })
	assert.Equal(t, []string{"cat", "dog", "robot"}, resolved)

	preview := lo.Map(pets.Preview(c, 3), func(comic *Comic, _ int) string { return comic.Name })
	assert.Equal(t, []string{"cat", "dog"}, preview, "slice happens before dangling entries are dropped")
}

func TestDuplicatesKeepFirstPosition(t *testing.T) {
	c := New(
		[]*Comic{{Name: "a", Pics: 1, Tags: []string{"old"}}, {Name: "b", Pics: 1}, {Name: "a", Pics: 5, Tags: []string{"new"}}},
		[]*Playlist{{Name: "p", Content: []string{"a"}}, {Name: "q"}, {Name: "p", Content: []string{"b"}}},
	)
	a, _ := c.Comic("a")
	assert.Equal(t, 5, a.Pics)
	assert.Equal(t, "a", c.Comics()[0].Name)
	assert.Len(t, c.Comics(), 2)
	assert.Equal(t, []string{"new"}, c.Tags(), "tags of a replaced definition are dropped")

	p, _ := c.Playlist("p")
	assert.Equal(t, []string{"b"}, p.Content)
	assert.Equal(t, "p", c.Playlists()[0].Name)
}

func TestRandomTags(t *testing.T) {
	c := newTestCatalog(t)
	rng := rand.New(rand.NewPCG(1, 2))

	picked := c.RandomTags(rng, 3)
	assert.Len(t, picked, 3)
	assert.Len(t, lo.Uniq(picked), 3)
	for _, tag := range picked {
		assert.Contains(t, c.Tags(), tag)
	}

	assert.Len(t, c.RandomTags(rng, 100), 6)
	assert.Empty(t, c.RandomTags(rng, 0))

	again := c.RandomTags(rand.New(rand.NewPCG(1, 2)), 3)
	assert.Equal(t, picked, again, "same seed gives the same pick")
}
