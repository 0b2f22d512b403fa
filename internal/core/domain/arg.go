package domain

import (
	"fmt"
	"iter"
	"slices"
)

// ArgKind tags the variant held by an Arg.
type ArgKind uint8

const (
	argInvalid ArgKind = iota
	// ArgLiteral is a literal shell token.
	ArgLiteral
	// ArgNode references a graph node, flattened to its path.
	ArgNode
	// ArgGroup is a nested sequence of arguments.
	ArgGroup
)

// Arg is an element of a command argument tree. The zero value is invalid.
type Arg struct {
	kind  ArgKind
	text  string
	node  Node
	group []Arg
	// refs are nodes the argument depends on without flattening to a word
	// of their own, such as a node spliced into a string.
	refs []Node
}

// Literal returns a literal token.
func Literal(text string) Arg {
	return Arg{kind: ArgLiteral, text: text}
}

// NodeRef returns a reference to n.
func NodeRef(n Node) Arg {
	return Arg{kind: ArgNode, node: n}
}

// Group returns a nested sequence.
func Group(args ...Arg) Arg {
	return Arg{kind: ArgGroup, group: args}
}

// Mentioning returns a copy of a that also depends on nodes. The nodes count
// as implicit inputs but add nothing to the flattened argument vector.
func (a Arg) Mentioning(nodes ...Node) Arg {
	if len(nodes) == 0 {
		return a
	}
	a.refs = append(slices.Clone(a.refs), nodes...)
	return a
}

// Literals returns a group of literal tokens.
func Literals(texts ...string) Arg {
	args := make([]Arg, len(texts))
	for i, t := range texts {
		args[i] = Literal(t)
	}
	return Group(args...)
}

// ArgOf converts a loosely typed value into an argument tree. Strings become
// literals, nodes become references and slices become groups; any other
// element fails with ErrUnknownCommandElement.
func ArgOf(v any) (Arg, error) {
	switch x := v.(type) {
	case Arg:
		return x, x.validate()
	case string:
		return Literal(x), nil
	case Node:
		return NodeRef(x), nil
	case []string:
		return Literals(x...), nil
	case []Arg:
		g := Group(x...)
		return g, g.validate()
	case []any:
		args := make([]Arg, 0, len(x))
		for _, e := range x {
			a, err := ArgOf(e)
			if err != nil {
				return Arg{}, err
			}
			args = append(args, a)
		}
		return Group(args...), nil
	}
	return Arg{}, Fail(ErrUnknownCommandElement,
		"command arguments may only contain strings, nodes and nested lists",
		"element", fmt.Sprintf("%T", v))
}

// Kind returns the variant tag.
func (a Arg) Kind() ArgKind { return a.kind }

// Text returns the literal token of an ArgLiteral.
func (a Arg) Text() string { return a.text }

// Node returns the referenced node of an ArgNode.
func (a Arg) Node() Node { return a.node }

// Mentions returns the nodes attached through Mentioning.
func (a Arg) Mentions() []Node { return a.refs }

// Children returns the elements of an ArgGroup.
func (a Arg) Children() []Arg { return a.group }

// Flatten returns the argument vector, with nodes replaced by their absolute path.
func (a Arg) Flatten() []string {
	var out []string
	a.flatten(&out)
	return out
}

func (a Arg) flatten(out *[]string) {
	switch a.kind {
	case ArgLiteral:
		*out = append(*out, a.text)
	case ArgNode:
		*out = append(*out, a.node.Path().String())
	case ArgGroup:
		for _, c := range a.group {
			c.flatten(out)
		}
	}
}

// Nodes yields every node referenced or mentioned in the tree, depth first
// and in order, an argument's mentions right after its own node. The same
// node is yielded as often as it appears.
func (a Arg) Nodes() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		a.walkNodes(yield)
	}
}

func (a Arg) walkNodes(yield func(Node) bool) bool {
	if a.kind == ArgNode && !yield(a.node) {
		return false
	}
	for _, n := range a.refs {
		if !yield(n) {
			return false
		}
	}
	for _, c := range a.group {
		if !c.walkNodes(yield) {
			return false
		}
	}
	return true
}

func (a Arg) validate() error {
	if slices.Contains(a.refs, nil) {
		return Fail(ErrUnknownCommandElement, "a mentioned node must not be nil")
	}
	switch a.kind {
	case ArgLiteral:
		return nil
	case ArgNode:
		if a.node == nil {
			return Fail(ErrUnknownCommandElement, "a node reference must not be nil")
		}
		return nil
	case ArgGroup:
		for _, c := range a.group {
			if err := c.validate(); err != nil {
				return err
			}
		}
		return nil
	}
	return Fail(ErrUnknownCommandElement,
		"command arguments may only contain strings, nodes and nested lists",
		"kind", int(a.kind))
}
