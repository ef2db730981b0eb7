// Package fsutil holds file helpers shared by the file-backed stores.
package fsutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// MaxPanelsFileSize caps panel files read from disk.
const MaxPanelsFileSize = 8 << 20

// ReadFileScoped reads a file through a root opened at the file's directory,
// so the name cannot climb out of it, and refuses files over maxBytes.
// A maxBytes of zero or less means no limit.
func ReadFileScoped(path string, maxBytes int64) ([]byte, error) {
	cleaned := filepath.Clean(path)
	dir := filepath.Dir(cleaned)
	base := filepath.Base(cleaned)
	if base == "" || base == "." || base == string(filepath.Separator) {
		return nil, fmt.Errorf("invalid file path: %q", path)
	}

	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, err
	}
	defer root.Close()

	file, err := root.Open(base)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if maxBytes <= 0 {
		return io.ReadAll(file)
	}
	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%s exceeds %d bytes", path, maxBytes)
	}
	return data, nil
}
