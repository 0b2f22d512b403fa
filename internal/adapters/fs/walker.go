// Package fs provides file system adapters for walking, hashing and writing
// generated files.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields all files below root, skipping version control and tool
// state directories. An ignore pattern is matched against the entry name,
// unless it is an absolute path, in which case it names one directory to skip.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Unreadable entries are not generated files.
				if d != nil && d.IsDir() && path != root {
					return filepath.SkipDir
				}
				return nil
			}

			if skip, action := w.shouldSkip(path, d, ignores); skip {
				return action
			}

			if d.IsDir() {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}

			return nil
		})
	}
}

// WalkNamed yields the files below root whose name is one of names.
func (w *Walker) WalkNamed(root string, ignores []string, names ...string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for path := range w.WalkFiles(root, ignores) {
			base := filepath.Base(path)
			for _, name := range names {
				if matched, _ := filepath.Match(name, base); matched {
					if !yield(path) {
						return
					}
					break
				}
			}
		}
	}
}

// shouldSkip reports whether an entry is ignored. The returned action is
// filepath.SkipDir for directories and nil for files.
func (w *Walker) shouldSkip(path string, d fs.DirEntry, ignores []string) (bool, error) {
	name := d.Name()

	if d.IsDir() {
		switch name {
		case ".git", ".jj", ".tup", ".tupcfg":
			return true, filepath.SkipDir
		}
	}

	for _, ignore := range ignores {
		var matched bool
		if filepath.IsAbs(ignore) {
			matched = filepath.Clean(ignore) == path
		} else {
			matched, _ = filepath.Match(ignore, name)
		}
		if matched {
			if d.IsDir() {
				return true, filepath.SkipDir
			}
			return true, nil
		}
	}

	return false, nil
}
