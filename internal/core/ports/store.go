package ports

import "go.trai.ch/tupcfg/internal/core/domain"

// GeneratedFileStore records the files written into one build directory.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type GeneratedFileStore interface {
	// Get returns the record for path.
	// Returns nil, nil if not found.
	Get(path string) (*domain.GeneratedFile, error)

	// Put stores the record.
	Put(file domain.GeneratedFile) error

	// Delete forgets the record for path.
	Delete(path string) error

	// List returns every record ordered by path.
	List() []domain.GeneratedFile

	// Flush persists the records if they changed since they were loaded.
	Flush() error
}

// GeneratedFileStoreOpener opens the store of a build directory.
type GeneratedFileStoreOpener interface {
	Open(buildDir string) (GeneratedFileStore, error)
}
