package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/danielkitchener/ComicShelf/internal/utils/errs"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Source locates one catalog document: a local path or an http(s) URL.
type Source string

// IsRemote reports whether the source has to be fetched over HTTP.
func (s Source) IsRemote() bool {
	lower := strings.ToLower(string(s))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func (s Source) String() string {
	return string(s)
}

// Loader fetches the comics and playlists documents and builds a Catalog.
type Loader struct {
	Comics    Source
	Playlists Source
	// Client is used for remote sources, http.DefaultClient when nil.
	Client *http.Client
}

func NewLoader(comics, playlists string) *Loader {
	return &Loader{Comics: Source(comics), Playlists: Source(playlists)}
}

// Load fetches both documents in parallel and builds a fresh catalog.
func (l *Loader) Load(ctx context.Context) (*Catalog, error) {
	var comics []*Comic
	var playlists []*Playlist

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		comics, err = fetch(ctx, l, l.Comics, ParseComics)
		return err
	})
	group.Go(func() error {
		var err error
		playlists, err = fetch(ctx, l, l.Playlists, ParsePlaylists)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	c := New(comics, playlists)
	log.Debug().
		Str("comics_source", l.Comics.String()).
		Str("playlists_source", l.Playlists.String()).
		Int("comics", len(c.comics)).
		Int("playlists", len(c.playlists)).
		Int("tags", len(c.tags)).
		Msg("Catalog loaded")
	return c, nil
}

func fetch[T any](ctx context.Context, l *Loader, source Source, parse func(io.Reader) ([]T, error)) (items []T, err error) {
	if source == "" {
		return nil, &SourceError{Source: source, Err: fmt.Errorf("no location configured")}
	}
	reader, err := l.open(ctx, source)
	if err != nil {
		return nil, &SourceError{Source: source, Err: err}
	}
	defer errs.Capture(&err, reader.Close, fmt.Sprintf("failed to close %s", source))

	items, err = parse(reader)
	if err != nil {
		return nil, &SourceError{Source: source, Err: err}
	}
	return items, nil
}

func (l *Loader) open(ctx context.Context, source Source) (io.ReadCloser, error) {
	if !source.IsRemote() {
		return os.Open(string(source))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, string(source), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return resp.Body, nil
}
