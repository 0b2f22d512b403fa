package ports

import "io/fs"

// EmitStatus describes what Emit did to a file.
type EmitStatus uint8

const (
	// EmitUnchanged means the file already held the content and was not touched.
	EmitUnchanged EmitStatus = iota
	// EmitCreated means the file did not exist and was written.
	EmitCreated
	// EmitUpdated means the file existed with other content and was rewritten.
	EmitUpdated
)

// EmitStats counts the outcome of the emissions of one session.
type EmitStats struct {
	Created   int
	Updated   int
	Unchanged int
	Removed   int
}

// Changed reports whether any file was written or removed.
func (s EmitStats) Changed() bool {
	return s.Created+s.Updated+s.Removed > 0
}

// Emitter writes generated files idempotently.
//
//go:generate mockgen -source=emitter.go -destination=mocks/mock_emitter.go -package=mocks
type Emitter interface {
	// Emit writes content to path unless the file already holds exactly that
	// content. A newly created file gets mode; an existing one keeps its mode.
	Emit(path string, content []byte, mode fs.FileMode) (EmitStatus, error)
	// Remove deletes a generated file and forgets its record.
	Remove(path string) error
	// IsGenerated reports whether path is recorded as generated.
	IsGenerated(path string) bool
	// Stats returns the counters of this session.
	Stats() EmitStats
	// Flush persists the records of generated files.
	Flush() error
}

// EmitterFactory opens an emitter session for a build directory.
type EmitterFactory interface {
	Open(buildDir string) (Emitter, error)
}
