// Package domain contains the build graph model: nodes, sources, targets,
// commands and the Build registry that owns them.
package domain

// Node is a vertex of the build graph.
type Node interface {
	// Path returns the absolute, normalized path identifying the node.
	Path() Path
	// Build returns the build owning the node.
	Build() *Build
	// Dependencies returns the ordered dependency list of the node.
	Dependencies() []Node
	// IsDirectory reports whether the node denotes a directory.
	IsDirectory() bool
	// Base returns the last path element, or "" for a directory node.
	Base() string
	// Shell returns the path formatted as a single shell token.
	Shell() string
}

// node holds the state shared by every Node implementation.
type node struct {
	path   Path
	build  *Build
	dir    bool
	deps   []Node
	depSet map[Path]struct{}
}

func newNode(b *Build, p Path, dir bool) node {
	return node{
		path:   p,
		build:  b,
		dir:    dir,
		depSet: make(map[Path]struct{}),
	}
}

// Path returns the absolute path of the node.
func (n *node) Path() Path { return n.path }

// Build returns the owning build.
func (n *node) Build() *Build { return n.build }

// Dependencies returns the ordered dependency list.
func (n *node) Dependencies() []Node { return n.deps }

// IsDirectory reports whether the node is a directory.
func (n *node) IsDirectory() bool { return n.dir }

// Base returns the file name of the node; directories have none.
func (n *node) Base() string {
	if n.dir {
		return ""
	}
	return n.path.Base()
}

// Shell returns the quoted absolute path.
func (n *node) Shell() string { return ShellQuote(n.path.String()) }

// String implements fmt.Stringer.
func (n *node) String() string { return n.path.String() }

// addDependency appends dep unless a dependency with the same path is
// already recorded. It reports whether dep was added.
func (n *node) addDependency(dep Node) bool {
	p := dep.Path()
	if _, ok := n.depSet[p]; ok {
		return false
	}
	n.depSet[p] = struct{}{}
	n.deps = append(n.deps, dep)
	return true
}

// hasDependency reports whether a dependency with path p is recorded.
func (n *node) hasDependency(p Path) bool {
	_, ok := n.depSet[p]
	return ok
}
