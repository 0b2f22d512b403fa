package fs

import (
	"os"

	"go.trai.ch/zerr"
)

// Verifier checks that directories named by a project exist.
type Verifier struct{}

// NewVerifier creates a new Verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// MissingDirs returns the entries of dirs that do not exist or are not
// directories, in the order given.
func (v *Verifier) MissingDirs(dirs ...string) ([]string, error) {
	var missing []string
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		if err != nil {
			if os.IsNotExist(err) {
				missing = append(missing, dir)
				continue
			}
			return nil, zerr.With(zerr.Wrap(err, "failed to stat directory"), "path", dir)
		}
		if !info.IsDir() {
			missing = append(missing, dir)
		}
	}
	return missing, nil
}
