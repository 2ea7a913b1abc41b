package catalog

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

const (
	comicElement    = "comic"
	playlistElement = "playlist"
	contentElement  = "content"
)

// ParseComics reads every <comic> element of a comics document, wherever it is nested.
func ParseComics(r io.Reader) ([]*Comic, error) {
	var comics []*Comic
	err := walkElements(r, func(start xml.StartElement) error {
		if start.Name.Local != comicElement {
			return nil
		}
		name := attr(start, "name")
		if name == "" {
			log.Warn().Int("position", len(comics)).Msg("Skipping comic without name")
			return nil
		}
		pics, clamped := parsePics(attr(start, "pics"))
		if clamped {
			log.Warn().Str("comic", name).Str("pics", attr(start, "pics")).Int("max_pics", MaxPics).Msg("Clamping picture count")
		}
		comic := &Comic{
			Name:  name,
			Title: attr(start, "name_rus"),
			Pics:  pics,
			Tags:  parseTags(attr(start, "tags")),
		}
		if date := attr(start, "date"); date != "" {
			added, err := dateparse.ParseAny(date)
			if err != nil {
				log.Warn().Str("comic", name).Str("date", date).Err(err).Msg("Ignoring unparsable comic date")
			} else {
				comic.Added = added
			}
		}
		comics = append(comics, comic)
		return nil
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse comics: %w", err)
	}
	log.Debug().Int("comics", len(comics)).Msg("Comics parsed")
	return comics, nil
}

// ParsePlaylists reads every <playlist> element of a playlists document.
// A <content> element is added to every playlist enclosing it.
func ParsePlaylists(r io.Reader) ([]*Playlist, error) {
	var playlists []*Playlist
	// nil entries stand for unnamed playlists, which are skipped but still nest.
	var open []*Playlist
	err := walkElements(r, func(start xml.StartElement) error {
		switch start.Name.Local {
		case playlistElement:
			name := attr(start, "name")
			if name == "" {
				log.Warn().Int("position", len(playlists)).Msg("Skipping playlist without name")
				open = append(open, nil)
				return nil
			}
			playlist := &Playlist{Name: name}
			playlists = append(playlists, playlist)
			open = append(open, playlist)
		case contentElement:
			comic := attr(start, "comic")
			if comic == "" {
				comic = attr(start, "name")
			}
			if comic == "" {
				return nil
			}
			for _, playlist := range open {
				if playlist != nil {
					playlist.Content = append(playlist.Content, comic)
				}
			}
		}
		return nil
	}, func(end xml.EndElement) {
		if end.Name.Local == playlistElement && len(open) > 0 {
			open = open[:len(open)-1]
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse playlists: %w", err)
	}
	log.Debug().Int("playlists", len(playlists)).Msg("Playlists parsed")
	return playlists, nil
}

func walkElements(r io.Reader, onStart func(xml.StartElement) error, onEnd func(xml.EndElement)) error {
	decoder := xml.NewDecoder(r)
	seenRoot := false
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			if !seenRoot {
				return errors.New("document has no root element")
			}
			return nil
		}
		if err != nil {
			return err
		}
		switch t := token.(type) {
		case xml.StartElement:
			seenRoot = true
			if err := onStart(t); err != nil {
				return err
			}
		case xml.EndElement:
			if onEnd != nil {
				onEnd(t)
			}
		}
	}
}

func attr(start xml.StartElement, name string) string {
	for _, a := range start.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// parsePics reads the leading integer of value. Anything missing, invalid or below 1 yields 1.
// Counts above MaxPics are clamped and reported.
func parsePics(value string) (int, bool) {
	value = strings.TrimSpace(value)
	end := 0
	if end < len(value) && (value[end] == '+' || value[end] == '-') {
		end++
	}
	for end < len(value) && value[end] >= '0' && value[end] <= '9' {
		end++
	}
	pics, err := strconv.Atoi(value[:end])
	switch {
	case errors.Is(err, strconv.ErrRange) && pics > 0, err == nil && pics > MaxPics:
		return MaxPics, true
	case err != nil || pics < 1:
		return 1, false
	}
	return pics, false
}

func parseTags(value string) []string {
	return lo.Uniq(strings.Fields(value))
}
