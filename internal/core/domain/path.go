package domain

import (
	"path/filepath"
	"strings"
	"unique"
)

// Path is an interned, absolute and cleaned file system path.
// Two Paths compare equal exactly when they name the same location, which makes
// Path the identity key of every Node in the graph.
type Path struct {
	h unique.Handle[string]
}

// NewPath interns p after resolving it against root when it is relative.
func NewPath(root, p string) Path {
	if !filepath.IsAbs(p) {
		p = filepath.Join(root, p)
	}
	return Path{h: unique.Make(filepath.Clean(p))}
}

// String returns the underlying path.
func (p Path) String() string {
	var zero unique.Handle[string]
	if p.h == zero {
		return ""
	}
	return p.h.Value()
}

// IsZero reports whether p was never set.
func (p Path) IsZero() bool {
	var zero unique.Handle[string]
	return p.h == zero
}

// Dir returns the parent directory of p.
func (p Path) Dir() Path {
	return Path{h: unique.Make(filepath.Dir(p.String()))}
}

// Base returns the last element of p.
func (p Path) Base() string {
	return filepath.Base(p.String())
}

// Rel returns p relative to dir, falling back to the absolute path when no
// relative form exists.
func (p Path) Rel(dir string) string {
	rel, err := filepath.Rel(dir, p.String())
	if err != nil {
		return p.String()
	}
	return rel
}

// Within reports whether p is dir itself or located below it.
func (p Path) Within(dir string) bool {
	s := p.String()
	dir = filepath.Clean(dir)
	if s == dir {
		return true
	}
	return strings.HasPrefix(s, dir+string(filepath.Separator))
}

// MarshalText implements encoding.TextMarshaler.
func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Path) UnmarshalText(text []byte) error {
	p.h = unique.Make(string(text))
	return nil
}
