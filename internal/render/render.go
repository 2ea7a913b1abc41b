package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"math/rand/v2"
	"sync"

	"github.com/danielkitchener/ComicShelf/internal/catalog"
	"github.com/samber/lo"
)

const (
	// DefaultSiteName is used when Options.SiteName is empty.
	DefaultSiteName = "Comics"
	// DefaultRandomTags is the number of random tag groups on the home page.
	DefaultRandomTags = 3

	playlistPreviews = 3
	tagGroupPreviews = 2
)

// Messages shown instead of page content.
const (
	MessageLoadFailed    = "Failed to load data."
	MessageNotFound      = "Comic or playlist not found."
	MessageNoTag         = "No tag specified."
	MessageEmptyQuery    = "Please enter a search query."
	messageNothingFound  = "Nothing found for '%s'."
	messageSearchResults = "Search results for '%s' (type: %s):"
)

//go:embed assets
var assets embed.FS

// Assets holds the stylesheet and script referenced by every page.
var Assets = lo.Must(fs.Sub(assets, "assets"))

type Options struct {
	SiteName string
	// RandomTags is the number of random tag groups on the home page.
	// Zero means DefaultRandomTags, a negative value disables the groups.
	RandomTags int
	// ThumbnailExt enables preview thumbnails stored as thumbs/<comic><ext>.
	ThumbnailExt string
	// Rand drives the random tag groups, seeded randomly when nil.
	Rand *rand.Rand
}

// Renderer turns a catalog into HTML pages.
// It is safe for concurrent use.
type Renderer struct {
	opts Options
	tmpl *template.Template

	randMu sync.Mutex
	rng    *rand.Rand
}

func New(opts Options) (*Renderer, error) {
	if opts.SiteName == "" {
		opts.SiteName = DefaultSiteName
	}
	switch {
	case opts.RandomTags == 0:
		opts.RandomTags = DefaultRandomTags
	case opts.RandomTags < 0:
		opts.RandomTags = 0
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	tmpl := template.New("site")
	for _, text := range []string{layoutTemplate, homeTemplate, comicsTemplate, tagTemplate, searchTemplate, errorTemplate} {
		if _, err := tmpl.Parse(text); err != nil {
			return nil, fmt.Errorf("failed to parse page template: %w", err)
		}
	}
	return &Renderer{opts: opts, tmpl: tmpl, rng: rng}, nil
}

type page struct {
	SiteName string
	Title    string
	Links    Linker
	TagPanel bool
	Query    string
}

type image struct {
	Src string
	Alt string
}

type link struct {
	Label string
	Href  string
}

type entry struct {
	Title  string
	Href   string
	Images []image
}

type homePage struct {
	page
	Playlists []entry
	Tags      []link
	TagGroups []entry
}

type listPage struct {
	page
	Heading string
	Message string
	Items   []entry
}

type kindOption struct {
	Value    string
	Selected bool
}

type searchHit struct {
	entry
	Playlist     string
	PlaylistHref string
}

type searchPage struct {
	page
	Message   string
	Kinds     []kindOption
	Playlists []entry
	Hits      []searchHit
}

func (r *Renderer) newPage(title string, links Linker) page {
	return page{SiteName: r.opts.SiteName, Title: title, Links: links}
}

// Home renders the playlists, the tag panel and the random tag groups.
func (r *Renderer) Home(w io.Writer, c *catalog.Catalog, links Linker) error {
	data := homePage{page: r.newPage("", links)}
	data.TagPanel = true

	for _, playlist := range c.Playlists() {
		data.Playlists = append(data.Playlists, entry{
			Title:  playlist.Name,
			Href:   links.Playlist(playlist.Name),
			Images: r.previews(playlist.Preview(c, playlistPreviews), links),
		})
	}

	data.Tags = lo.Map(c.Tags(), func(tag string, _ int) link {
		return link{Label: tag, Href: links.Tag(tag)}
	})

	for _, tag := range r.randomTags(c) {
		comics := c.ComicsWithTag(tag)
		if len(comics) == 0 {
			continue
		}
		data.TagGroups = append(data.TagGroups, entry{
			Title:  tag,
			Href:   links.Tag(tag),
			Images: r.previews(lo.Slice(comics, 0, tagGroupPreviews), links),
		})
	}

	return r.execute(w, "home", data)
}

// ComicQuery selects what the comic view shows. Playlist wins over Comic.
type ComicQuery struct {
	Playlist string
	Comic    string
}

// Comics renders a playlist with every picture of its comics, or a single comic.
// It reports false when neither the playlist nor the comic exists.
func (r *Renderer) Comics(w io.Writer, c *catalog.Catalog, query ComicQuery, links Linker) (bool, error) {
	if query.Playlist != "" {
		if playlist, ok := c.Playlist(query.Playlist); ok {
			data := listPage{page: r.newPage(playlist.Name, links), Heading: playlist.Name}
			for _, comic := range playlist.Resolve(c) {
				data.Items = append(data.Items, entry{
					Title:  comic.DisplayTitle(),
					Href:   links.Comic(comic.Name),
					Images: r.pictures(comic, links),
				})
			}
			return true, r.execute(w, "comics", data)
		}
	}

	if query.Comic != "" {
		if comic, ok := c.Comic(query.Comic); ok {
			data := listPage{page: r.newPage(comic.DisplayTitle(), links), Heading: comic.DisplayTitle()}
			data.Items = []entry{{Images: r.pictures(comic, links)}}
			return true, r.execute(w, "comics", data)
		}
	}

	data := listPage{page: r.newPage("", links), Message: MessageNotFound}
	return false, r.execute(w, "comics", data)
}

// Tag renders every comic carrying the tag with its cover.
// It reports false when no tag was given.
func (r *Renderer) Tag(w io.Writer, c *catalog.Catalog, tag string, links Linker) (bool, error) {
	if tag == "" {
		data := listPage{page: r.newPage("", links), Message: MessageNoTag}
		return false, r.execute(w, "tag", data)
	}

	heading := "Comics tagged: " + tag
	data := listPage{page: r.newPage(tag, links), Heading: heading}
	for _, comic := range c.ComicsWithTag(tag) {
		data.Items = append(data.Items, entry{
			Title:  comic.DisplayTitle(),
			Href:   links.Comic(comic.Name),
			Images: []image{r.picture(comic.Cover(), comic.Name, links)},
		})
	}
	return true, r.execute(w, "tag", data)
}

// Search renders the search form and the hits for query.
func (r *Renderer) Search(w io.Writer, c *catalog.Catalog, query string, kind catalog.SearchKind, links Linker) error {
	data := searchPage{page: r.newPage("Search", links)}
	data.Query = query
	for _, k := range []catalog.SearchKind{catalog.SearchAll, catalog.SearchTag, catalog.SearchPlaylist, catalog.SearchComicName} {
		data.Kinds = append(data.Kinds, kindOption{Value: k.String(), Selected: k == kind})
	}

	result, err := c.Search(query, kind)
	switch {
	case err != nil:
		data.Message = MessageEmptyQuery
	case result.Empty():
		data.Message = fmt.Sprintf(messageNothingFound, result.Query)
	default:
		data.Message = fmt.Sprintf(messageSearchResults, result.Query, kind)
	}
	if err == nil {
		for _, playlist := range result.Playlists {
			data.Playlists = append(data.Playlists, entry{
				Title:  playlist.Name,
				Href:   links.Playlist(playlist.Name),
				Images: r.previews(playlist.Preview(c, 1), links),
			})
		}
		for _, hit := range result.Comics {
			item := searchHit{
				entry: entry{
					Title:  hit.Comic.DisplayTitle(),
					Href:   links.Comic(hit.Comic.Name),
					Images: r.previews([]*catalog.Comic{hit.Comic}, links),
				},
				Playlist: hit.Playlist,
			}
			if hit.Playlist != "" {
				item.PlaylistHref = links.Playlist(hit.Playlist)
			}
			data.Hits = append(data.Hits, item)
		}
	}
	return r.execute(w, "search", data)
}

// Error renders the catch-all page shown when the catalog cannot be loaded.
func (r *Renderer) Error(w io.Writer, links Linker) error {
	data := listPage{page: r.newPage("", links), Message: MessageLoadFailed}
	return r.execute(w, "error", data)
}

func (r *Renderer) execute(w io.Writer, name string, data any) error {
	if err := r.tmpl.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("failed to render %s page: %w", name, err)
	}
	return nil
}

func (r *Renderer) randomTags(c *catalog.Catalog) []string {
	r.randMu.Lock()
	defer r.randMu.Unlock()
	return c.RandomTags(r.rng, r.opts.RandomTags)
}

func (r *Renderer) previews(comics []*catalog.Comic, links Linker) []image {
	return lo.Map(comics, func(comic *catalog.Comic, _ int) image {
		if r.opts.ThumbnailExt != "" {
			return image{Src: links.Thumbnail(comic.Thumbnail(r.opts.ThumbnailExt)), Alt: comic.Name}
		}
		return r.picture(comic.Cover(), comic.Name, links)
	})
}

func (r *Renderer) pictures(comic *catalog.Comic, links Linker) []image {
	return lo.Map(comic.Pictures(), func(file string, i int) image {
		return r.picture(file, fmt.Sprintf("%s_%d", comic.Name, i), links)
	})
}

func (r *Renderer) picture(file, alt string, links Linker) image {
	return image{Src: links.Picture(file), Alt: alt}
}
