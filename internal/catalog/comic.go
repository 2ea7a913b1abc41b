package catalog

import (
	"fmt"
	"time"
)

// PictureExtension is the extension of every picture referenced by the catalog.
const PictureExtension = ".jpg"

// MaxPics bounds the picture count of a single comic.
const MaxPics = 10000

type Comic struct {
	// Name is the unique key of the comic and the stem of its picture files.
	Name string `json:"name"`
	// Title is the display title, falls back to Name when not provided.
	Title string `json:"title"`
	// Pics is the number of pictures of the comic, between 1 and MaxPics.
	Pics int `json:"pics"`
	// Tags attached to the comic, without duplicates, in document order.
	Tags []string `json:"tags"`
	// Added is the optional date of the comic, zero when unknown.
	Added time.Time `json:"added,omitempty"`
}

// DisplayTitle returns the title to show for the comic.
func (c *Comic) DisplayTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return c.Name
}

// Picture returns the file name of the picture at index.
// A single-picture comic is stored as <name>.jpg, otherwise as <name>_<index>.jpg.
func (c *Comic) Picture(index int) string {
	if c.Pics <= 1 {
		return c.Name + PictureExtension
	}
	return fmt.Sprintf("%s_%d%s", c.Name, index, PictureExtension)
}

// Pictures returns every picture file name of the comic in order.
func (c *Comic) Pictures() []string {
	count := min(max(c.Pics, 1), MaxPics)
	pictures := make([]string, count)
	for i := range count {
		pictures[i] = c.Picture(i)
	}
	return pictures
}

// Cover returns the first picture of the comic.
func (c *Comic) Cover() string {
	return c.Picture(0)
}

// HasTag reports whether the comic carries exactly the given tag.
func (c *Comic) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Thumbnail returns the file name of the comic's preview thumbnail for the given extension.
func (c *Comic) Thumbnail(ext string) string {
	return c.Name + ext
}
