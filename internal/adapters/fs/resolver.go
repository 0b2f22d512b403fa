package fs

import (
	"path/filepath"
	"sort"

	"go.trai.ch/tupcfg/internal/core/domain"
	"go.trai.ch/zerr"
)

// Resolver expands glob patterns into concrete file paths.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve expands every pattern relative to root and returns the matching
// paths relative to root, sorted and without duplicates. A pattern matching
// nothing is a resolution error.
func (r *Resolver) Resolve(patterns []string, root string) ([]string, error) {
	uniquePaths := make(map[string]bool)

	for _, pattern := range patterns {
		path := pattern
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, pattern)
		}

		matches, err := filepath.Glob(path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to glob path"), "path", path)
		}

		if len(matches) == 0 {
			return nil, domain.Fail(domain.ErrResolution,
				"check the pattern or create the files it should match", "pattern", pattern)
		}

		for _, match := range matches {
			rel, err := filepath.Rel(root, match)
			if err != nil {
				rel = match
			}
			uniquePaths[filepath.ToSlash(rel)] = true
		}
	}

	result := make([]string, 0, len(uniquePaths))
	for path := range uniquePaths {
		result = append(result, path)
	}
	sort.Strings(result)

	return result, nil
}
