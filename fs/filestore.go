// Package fs implements postdoc storage interfaces on the local file system.
package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fwojciec/postdoc"
)

// Ensure FileStore implements postdoc.ExportStore at compile time.
var _ postdoc.ExportStore = (*FileStore)(nil)

// TempSuffix marks files that are saved but not yet committed.
const TempSuffix = ".tmp"

// FileStore implements postdoc.ExportStore with atomic update semantics.
// Exports are written next to their final path with TempSuffix and renamed
// into place on Commit.
//
// FileStore is safe for concurrent use.
type FileStore struct {
	dir string

	mu      sync.Mutex
	pending []string // final paths, in save order
	names   map[string]bool
}

// NewFileStore creates a FileStore writing into dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{
		dir:   dir,
		names: make(map[string]bool),
	}
}

// Dir returns the output directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// Save writes the export to a temporary file and returns the path it will
// have after Commit. A name already saved in this batch gets a _2, _3, ...
// suffix before its extension.
func (s *FileStore) Save(ctx context.Context, export *postdoc.Export) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if export == nil || export.Name == "" {
		return "", postdoc.Errorf(postdoc.EINVALID, "export name required")
	}
	if export.Name != filepath.Base(export.Name) || export.Name == "." || export.Name == ".." {
		return "", postdoc.Errorf(postdoc.EINVALID, "export name %q: path traversal not allowed", export.Name)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", err
	}

	s.mu.Lock()
	name := s.reserve(export.Name)
	s.mu.Unlock()

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path+TempSuffix, export.Body, 0644); err != nil {
		s.mu.Lock()
		delete(s.names, name)
		s.mu.Unlock()
		return "", err
	}

	s.mu.Lock()
	s.pending = append(s.pending, path)
	s.mu.Unlock()
	return path, nil
}

// reserve returns a name unique within the batch. Must be called with mu held.
func (s *FileStore) reserve(name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	candidate := name
	for n := 2; s.names[candidate]; n++ {
		candidate = fmt.Sprintf("%s_%d%s", base, n, ext)
	}
	s.names[candidate] = true
	return candidate
}

// Commit renames every pending file into place, replacing existing files.
func (s *FileStore) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for _, path := range s.pending {
		if err := os.Rename(path+TempSuffix, path); err != nil {
			errs = append(errs, err)
		}
	}
	s.reset()
	return errors.Join(errs...)
}

// Abort removes every pending file.
func (s *FileStore) Abort() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for _, path := range s.pending {
		if err := os.Remove(path + TempSuffix); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
		}
	}
	s.reset()
	return errors.Join(errs...)
}

func (s *FileStore) reset() {
	s.pending = nil
	s.names = make(map[string]bool)
}
