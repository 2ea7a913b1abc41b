package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/danielkitchener/ComicShelf/internal/utils/errs"
	"github.com/samber/lo"
)

// ImageExtensions lists the picture extensions handled by the gallery, lowercase.
var ImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// IsValidFolder checks if the provided path is a valid directory
func IsValidFolder(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsImageFile reports whether the file name carries a known picture extension.
func IsImageFile(name string) bool {
	return lo.Contains(ImageExtensions, strings.ToLower(filepath.Ext(name)))
}

// SanitizeFileName replaces characters that cannot appear in a file name.
func SanitizeFileName(name string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	result := strings.Trim(strings.TrimSpace(replacer.Replace(name)), ".")
	if result == "" {
		return "_"
	}
	return result
}

// CopyFile copies src to dst, creating the parent directories of dst.
func CopyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer errs.Capture(&err, in.Close, fmt.Sprintf("failed to close %s", src))

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", dst, err)
	}
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	defer errs.Capture(&err, out.Close, fmt.Sprintf("failed to close %s", dst))

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return nil
}

// CopyDir copies every regular file below src into dst, keeping the relative layout.
func CopyDir(src, dst string) (int, error) {
	copied := 0
	err := filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if err := CopyFile(path, filepath.Join(dst, rel)); err != nil {
			return err
		}
		copied++
		return nil
	})
	return copied, err
}
