// Package fsx holds the filesystem primitives the stores are built on:
// whole-file JSON read/write (pretty-printed UTF-8, snake_case handled by
// struct tags) and directory helpers. Low-level errors are classified into
// the mosaic taxonomy at this point of first detection.
package fsx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"mosaic-go/internal/mosaic"
)

// ReadJSON reads the file at path and unmarshals it into v.
func ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, classify(err))
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w (%w)", path, mosaic.ErrInvalidJSON, err)
	}
	return nil
}

// WriteJSON marshals v as pretty-printed JSON and overwrites the file at
// path, creating parent directories as needed.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w (%w)", path, mosaic.ErrInvalidJSON, err)
	}
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, classify(err))
	}
	return nil
}

// EnsureDir creates the directory and all missing ancestors. Idempotent.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, classify(err))
	}
	return nil
}

// Exists reports whether a file or directory exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ListSubdirs returns the absolute paths of the immediate subdirectories of
// path. A missing directory yields an empty list, not an error.
func ListSubdirs(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing %s: %w", path, classify(err))
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, filepath.Join(path, e.Name()))
		}
	}
	return dirs, nil
}

// classify maps an os error onto the mosaic taxonomy, keeping the original
// error in the chain.
func classify(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w (%w)", mosaic.ErrNotFound, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w (%w)", mosaic.ErrPermissionDenied, err)
	case errors.Is(err, fs.ErrExist):
		return fmt.Errorf("%w (%w)", mosaic.ErrAlreadyExists, err)
	default:
		return fmt.Errorf("%w (%w)", mosaic.ErrIO, err)
	}
}
