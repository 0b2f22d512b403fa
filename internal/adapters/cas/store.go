// Package cas stores the records of generated files of a build directory.
package cas

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/tupcfg/internal/core/domain"
	"go.trai.ch/tupcfg/internal/core/ports"
	"go.trai.ch/zerr"
)

// ManifestFile is the path of the store, relative to a build directory.
const ManifestFile = ".tupcfg/manifest.json"

var (
	_ ports.GeneratedFileStore       = (*Store)(nil)
	_ ports.GeneratedFileStoreOpener = (*Opener)(nil)
)

// Store implements ports.GeneratedFileStore using a flat JSON file.
type Store struct {
	path   string
	mu     sync.RWMutex
	cache  map[string]domain.GeneratedFile
	loaded []byte
}

// NewStore creates a new GeneratedFileStore backed by the file at the given path.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		cache: make(map[string]domain.GeneratedFile),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to read generated file manifest"), "path", s.path)
	}

	if len(data) == 0 {
		return nil
	}

	var files []domain.GeneratedFile
	if err := json.Unmarshal(data, &files); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to unmarshal generated file manifest"), "path", s.path)
	}
	for _, f := range files {
		s.cache[f.Path] = f
	}
	s.loaded = data

	return nil
}

// Get retrieves the record for path.
func (s *Store) Get(path string) (*domain.GeneratedFile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info, ok := s.cache[path]
	if !ok {
		return nil, nil
	}
	return &info, nil
}

// Put stores the record. It is persisted by Flush.
func (s *Store) Put(file domain.GeneratedFile) error {
	if file.Path == "" {
		return zerr.New("generated file record without path")
	}
	s.mu.Lock()
	s.cache[file.Path] = file
	s.mu.Unlock()
	return nil
}

// Delete forgets the record for path.
func (s *Store) Delete(path string) error {
	s.mu.Lock()
	delete(s.cache, path)
	s.mu.Unlock()
	return nil
}

// List returns every record ordered by path.
func (s *Store) List() []domain.GeneratedFile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	files := make([]domain.GeneratedFile, 0, len(s.cache))
	for _, f := range s.cache {
		files = append(files, f)
	}
	slices.SortFunc(files, func(a, b domain.GeneratedFile) int {
		return strings.Compare(a.Path, b.Path)
	})
	return files
}

// Flush writes the manifest when its content differs from what is on disk.
// An empty manifest that never existed is not created.
func (s *Store) Flush() error {
	files := s.List()

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(files) == 0 && s.loaded == nil {
		return nil
	}

	data, err := json.MarshalIndent(files, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal generated file manifest")
	}
	data = append(data, '\n')
	if bytes.Equal(data, s.loaded) {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return zerr.Wrap(err, "failed to create directory for generated file manifest")
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return zerr.Wrap(err, "failed to write generated file manifest")
	}
	s.loaded = data

	return nil
}

// Opener opens the store of a build directory.
type Opener struct{}

// NewOpener creates a new Opener.
func NewOpener() *Opener {
	return &Opener{}
}

// Open loads the manifest of buildDir.
func (o *Opener) Open(buildDir string) (ports.GeneratedFileStore, error) {
	return NewStore(filepath.Join(buildDir, filepath.FromSlash(ManifestFile)))
}
