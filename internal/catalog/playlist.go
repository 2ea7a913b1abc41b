package catalog

type Playlist struct {
	// Name is the unique key of the playlist.
	Name string `json:"name"`
	// Content holds comic names in playlist order. References are not validated.
	Content []string `json:"content"`
}

// Resolve returns the comics of the playlist that exist in the catalog, in playlist order.
// Dangling references are skipped.
func (p *Playlist) Resolve(c *Catalog) []*Comic {
	return c.resolve(p.Content)
}

// Preview resolves at most limit references of the playlist.
// The references are sliced first, so dangling entries reduce the number of returned comics.
func (p *Playlist) Preview(c *Catalog, limit int) []*Comic {
	content := p.Content
	if limit >= 0 && len(content) > limit {
		content = content[:limit]
	}
	return c.resolve(content)
}

// Contains reports whether the playlist references the comic.
func (p *Playlist) Contains(comic string) bool {
	for _, name := range p.Content {
		if name == comic {
			return true
		}
	}
	return false
}
