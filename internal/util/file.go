package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureDir creates a directory if it doesn't exist.
func EnsureDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}

// BaseName returns the file name of path without its extension. URLs and
// query strings are reduced to something filesystem-safe.
func BaseName(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// OutputFilename builds a deterministic output path for a generated artifact.
func OutputFilename(outputDir, inputName, suffix, ext string) string {
	return filepath.Join(outputDir, fmt.Sprintf("%s_%s.%s", BaseName(inputName), suffix, ext))
}
