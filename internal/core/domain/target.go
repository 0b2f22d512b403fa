package domain

// Target is an artifact produced by the build. Relative paths are rooted at
// the build directory. A Target lives as long as its Build.
type Target struct {
	node
	command *Command
}

var _ Node = (*Target)(nil)

// NewTarget returns the target of b at path, creating and registering it on
// first use. Asking twice for the same resolved path yields the same object.
func NewTarget(b *Build, path string) *Target {
	p := NewPath(b.Directory(), path)
	if t, ok := b.targets[p]; ok {
		return t
	}
	t := &Target{node: newNode(b, p, false)}
	b.register(t)
	return t
}

// Command returns the command producing the target, or nil when the target
// is produced outside of this build.
func (t *Target) Command() *Command { return t.command }

// IsPrimary reports whether the target is the first output of its command.
func (t *Target) IsPrimary() bool {
	return t.command != nil && t.command.Target() == t
}

// AddDependency records dep as a dependency of the target, ignoring duplicates by path.
func (t *Target) AddDependency(dep Node) {
	t.addDependency(dep)
}
