package constant

import (
	"fmt"
	"sort"

	"github.com/thediveo/enumflag/v2"
)

type ThumbnailFormat enumflag.Flag

const (
	JPEG ThumbnailFormat = iota
	PNG
	WebP
)

var CommandValue = map[ThumbnailFormat][]string{
	JPEG: {"jpeg", "jpg"},
	PNG:  {"png"},
	WebP: {"webp"},
}

var HelpText = enumflag.Help[ThumbnailFormat]{
	JPEG: "JPEG Image Format",
	PNG:  "PNG Image Format",
	WebP: "WebP Image Format, encoded with cwebp",
}

var extensions = map[ThumbnailFormat]string{
	JPEG: ".jpg",
	PNG:  ".png",
	WebP: ".webp",
}

var DefaultFormat = JPEG

func (f ThumbnailFormat) String() string {
	if names, ok := CommandValue[f]; ok {
		return names[0]
	}
	return fmt.Sprintf("format(%d)", uint(f))
}

// Extension returns the file extension of thumbnails written in this format, dot included.
func (f ThumbnailFormat) Extension() string {
	return extensions[f]
}

func ListAll() []string {
	var formats []string
	for _, names := range CommandValue {
		formats = append(formats, names[0])
	}
	sort.Strings(formats)
	return formats
}

func FindThumbnailFormat(format string) ThumbnailFormat {
	for thumbFormat, names := range CommandValue {
		for _, name := range names {
			if name == format {
				return thumbFormat
			}
		}
	}
	return DefaultFormat
}
