package ports

// Hasher defines the interface for computing content digests.
//
//go:generate mockgen -destination=mocks/hasher_mock.go -package=mocks -source=hasher.go
type Hasher interface {
	// HashFile computes the digest of the file content at path.
	HashFile(path string) (string, error)
	// HashBytes computes the digest of data.
	HashBytes(data []byte) string
}
