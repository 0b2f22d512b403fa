package domain

// Source is a pre-existing file or directory supplied from outside the build.
// Relative paths are rooted at the project directory.
type Source struct {
	node
}

var _ Node = (*Source)(nil)

// NewSource declares a source file of b.
func NewSource(b *Build, path string) *Source {
	return &Source{node: newNode(b, NewPath(b.ProjectDir(), path), false)}
}

// NewSourceDirectory declares a source directory of b.
func NewSourceDirectory(b *Build, path string) *Source {
	return &Source{node: newNode(b, NewPath(b.ProjectDir(), path), true)}
}

// AddDependency records dep as a dependency of the source, ignoring duplicates by path.
func (s *Source) AddDependency(dep Node) {
	s.addDependency(dep)
}
