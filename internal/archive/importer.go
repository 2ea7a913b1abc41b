package archive

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/danielkitchener/ComicShelf/internal/utils"
	"github.com/danielkitchener/ComicShelf/internal/utils/errs"
	"github.com/mholt/archives"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// DataFiles are the catalog documents picked up from an archive when Options.DataDir is set.
var DataFiles = []string{"data.xml", "playlists.xml"}

type Options struct {
	// PicturesDir receives every picture of the archive, flattened to its base name.
	PicturesDir string
	// DataDir receives data.xml and playlists.xml when set.
	DataDir string
	// Include restricts the imported pictures to entries matching one of these glob patterns.
	// Patterns support ** and are tried against the entry path and its base name.
	Include []string
}

type Result struct {
	Pictures  []string
	DataFiles []string
}

type entry struct {
	path    string
	target  string
	picture bool
}

// Import copies the pictures, and optionally the catalog documents, out of a zip, cbz, rar, 7z or tar archive.
//
// Every entry is checked before anything is written, so an unsafe archive leaves the destination untouched.
func Import(ctx context.Context, archivePath string, opts Options) (Result, error) {
	var result Result
	if opts.PicturesDir == "" {
		return result, fmt.Errorf("pictures directory is required")
	}
	log.Debug().Str("archive", archivePath).Str("pictures", opts.PicturesDir).Str("data", opts.DataDir).Msg("Starting archive import")

	fsys, err := archives.FileSystem(ctx, archivePath, nil)
	if err != nil {
		log.Error().Str("archive", archivePath).Err(err).Msg("Failed to open archive file system")
		return result, fmt.Errorf("failed to open archive file: %w", err)
	}

	entries, err := plan(fsys, opts)
	if err != nil {
		return result, err
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := extract(fsys, e); err != nil {
			return result, err
		}
		name := filepath.Base(e.target)
		if e.picture {
			result.Pictures = append(result.Pictures, name)
		} else {
			result.DataFiles = append(result.DataFiles, name)
		}
		log.Debug().Str("archive_file", e.path).Str("target", e.target).Msg("Entry extracted")
	}

	log.Info().
		Str("archive", archivePath).
		Int("pictures", len(result.Pictures)).
		Strs("data_files", result.DataFiles).
		Msg("Archive imported")
	return result, nil
}

// plan walks the archive and decides where each wanted entry goes.
func plan(fsys fs.FS, opts Options) ([]entry, error) {
	var entries []entry
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		name, err := EntryName(p)
		if err != nil {
			return err
		}
		if strings.HasPrefix(name, ".") {
			log.Debug().Str("archive_file", p).Msg("Skipping hidden entry")
			return nil
		}

		switch {
		case utils.IsImageFile(name):
			if !included(p, opts.Include) {
				log.Debug().Str("archive_file", p).Msg("Picture not included")
				return nil
			}
			entries = append(entries, entry{path: p, target: filepath.Join(opts.PicturesDir, name), picture: true})
		case opts.DataDir != "" && lo.Contains(DataFiles, strings.ToLower(name)):
			entries = append(entries, entry{path: p, target: filepath.Join(opts.DataDir, strings.ToLower(name))})
		default:
			log.Debug().Str("archive_file", p).Msg("Ignoring entry")
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed during archive walk")
		return nil, err
	}
	return entries, nil
}

// EntryName returns the flattened file name of an archive entry.
// Absolute names and names climbing out with ".." are rejected.
func EntryName(entryPath string) (string, error) {
	normalized := strings.ReplaceAll(entryPath, "\\", "/")
	if normalized == "" {
		return "", &EntryRejectedError{Entry: entryPath, Reason: "empty name"}
	}
	if path.IsAbs(normalized) || (len(normalized) > 1 && normalized[1] == ':') {
		return "", &EntryRejectedError{Entry: entryPath, Reason: "absolute path"}
	}
	if lo.Contains(strings.Split(normalized, "/"), "..") {
		return "", &EntryRejectedError{Entry: entryPath, Reason: "path escapes destination"}
	}
	name := path.Base(normalized)
	if name == "." || name == "/" {
		return "", &EntryRejectedError{Entry: entryPath, Reason: "no file name"}
	}
	return name, nil
}

func included(entryPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	normalized := strings.ReplaceAll(entryPath, "\\", "/")
	return lo.SomeBy(patterns, func(pattern string) bool {
		if matched, err := doublestar.Match(pattern, normalized); err == nil && matched {
			return true
		}
		matched, err := doublestar.Match(pattern, path.Base(normalized))
		return err == nil && matched
	})
}

func extract(fsys fs.FS, e entry) (err error) {
	in, err := fsys.Open(e.path)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", e.path, err)
	}
	defer errs.Capture(&err, in.Close, fmt.Sprintf("failed to close file %s", e.path))

	if err := os.MkdirAll(filepath.Dir(e.target), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", e.target, err)
	}
	out, err := os.Create(e.target)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", e.target, err)
	}
	defer errs.Capture(&err, out.Close, fmt.Sprintf("failed to close %s", e.target))

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to read file contents of %s: %w", e.path, err)
	}
	return nil
}
