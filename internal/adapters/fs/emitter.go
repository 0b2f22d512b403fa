package fs

import (
	"bytes"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/tupcfg/internal/core/domain"
	"go.trai.ch/tupcfg/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.Emitter        = (*Emitter)(nil)
	_ ports.EmitterFactory = (*EmitterFactory)(nil)
)

// EmitterFactory opens emitter sessions backed by the generated-file store of
// a build directory.
type EmitterFactory struct {
	stores ports.GeneratedFileStoreOpener
	hasher ports.Hasher
	logger ports.Logger
}

// NewEmitterFactory creates a new EmitterFactory.
func NewEmitterFactory(
	stores ports.GeneratedFileStoreOpener,
	hasher ports.Hasher,
	logger ports.Logger,
) *EmitterFactory {
	return &EmitterFactory{stores: stores, hasher: hasher, logger: logger}
}

// Open starts an emitter session for buildDir.
func (f *EmitterFactory) Open(buildDir string) (ports.Emitter, error) {
	store, err := f.stores.Open(buildDir)
	if err != nil {
		return nil, err
	}
	return &Emitter{
		root:   filepath.Clean(buildDir),
		store:  store,
		hasher: f.hasher,
		logger: f.logger,
	}, nil
}

// Emitter writes generated files only when their content changes and records
// the digest of every file it is responsible for.
type Emitter struct {
	root   string
	store  ports.GeneratedFileStore
	hasher ports.Hasher
	logger ports.Logger
	stats  ports.EmitStats
}

// Emit writes content to path unless the file already holds exactly that content.
func (e *Emitter) Emit(path string, content []byte, mode iofs.FileMode) (ports.EmitStatus, error) {
	key := e.key(path)
	digest := e.hasher.HashBytes(content)

	existing, err := os.ReadFile(path) //nolint:gosec // Path is controlled by the generator
	switch {
	case err == nil:
		if bytes.Equal(existing, content) {
			e.stats.Unchanged++
			return ports.EmitUnchanged, e.record(key, digest)
		}
		e.warnIfEdited(key, existing)
		//nolint:gosec // Existing files keep their mode
		if err := os.WriteFile(path, content, mode); err != nil {
			return 0, writeFailed(err, path)
		}
		e.stats.Updated++
		return ports.EmitUpdated, e.record(key, digest)

	case errors.Is(err, iofs.ErrNotExist):
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { //nolint:gosec // Build tree is world readable
			return 0, writeFailed(err, path)
		}
		if err := os.WriteFile(path, content, mode); err != nil {
			return 0, writeFailed(err, path)
		}
		// WriteFile is subject to the umask.
		if err := os.Chmod(path, mode); err != nil {
			return 0, writeFailed(err, path)
		}
		e.stats.Created++
		return ports.EmitCreated, e.record(key, digest)

	default:
		return 0, zerr.With(zerr.Wrap(err, "failed to read generated file"), "path", path)
	}
}

func (e *Emitter) warnIfEdited(key string, existing []byte) {
	rec, err := e.store.Get(key)
	if err != nil || rec == nil {
		return
	}
	if e.hasher.HashBytes(existing) != rec.Digest {
		e.logger.Warn("overwriting " + key + ": it was edited after it was generated")
	}
}

func (e *Emitter) record(key, digest string) error {
	return e.store.Put(domain.GeneratedFile{Path: key, Digest: digest})
}

// Remove deletes a generated file and forgets its record.
func (e *Emitter) Remove(path string) error {
	err := os.Remove(path)
	switch {
	case err == nil:
		e.stats.Removed++
	case errors.Is(err, iofs.ErrNotExist):
	default:
		return zerr.With(zerr.Wrap(err, "failed to remove generated file"), "path", path)
	}
	return e.store.Delete(e.key(path))
}

// IsGenerated reports whether path is recorded as generated.
func (e *Emitter) IsGenerated(path string) bool {
	rec, err := e.store.Get(e.key(path))
	return err == nil && rec != nil
}

// Stats returns the counters of this session.
func (e *Emitter) Stats() ports.EmitStats {
	return e.stats
}

// Flush persists the records of generated files.
func (e *Emitter) Flush() error {
	return e.store.Flush()
}

// key returns the manifest key of path: relative to the build directory when
// path lies below it, absolute otherwise.
func (e *Emitter) key(path string) string {
	path = filepath.Clean(path)
	rel, err := filepath.Rel(e.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func writeFailed(err error, path string) error {
	return domain.Fail(domain.ErrGeneration,
		"check that the build directory is writable", "path", path, "cause", err.Error())
}
