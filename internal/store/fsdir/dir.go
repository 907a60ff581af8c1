package fsdir

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"marianails/internal/domain/gallery"
)

// Store reads gallery directories from the local filesystem.
type Store struct {
	readDir func(name string) ([]os.DirEntry, error)
}

func New() *Store {
	return &Store{readDir: os.ReadDir}
}

// FileNames returns the names of the regular entries of dir, skipping subdirectories.
// A missing directory yields gallery.ErrDirectoryNotFound.
func (s *Store) FileNames(ctx context.Context, dir string) ([]string, error) {
	entries, err := s.entries(ctx, dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// RawNames returns every entry name of dir, directories included.
func (s *Store) RawNames(ctx context.Context, dir string) ([]string, error) {
	entries, err := s.entries(ctx, dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

func (s *Store) entries(ctx context.Context, dir string) ([]os.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := s.readDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", dir, gallery.ErrDirectoryNotFound)
		}
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	return entries, nil
}
