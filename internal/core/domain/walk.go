package domain

import "iter"

// Walk yields every node reachable from the registered targets of b, depth
// first, a consumer before its dependencies. A node already present in seen
// is skipped, and every yielded node is added to it, so a seen set shared by
// several walks visits each node once per generation pass. Nodes owned by
// another build are yielded as leaves and not descended into.
func (b *Build) Walk(seen map[Node]struct{}) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for _, t := range b.order {
			if !b.visit(t, seen, yield) {
				return
			}
		}
	}
}

func (b *Build) visit(n Node, seen map[Node]struct{}, yield func(Node) bool) bool {
	if _, ok := seen[n]; ok {
		return true
	}
	seen[n] = struct{}{}
	if !yield(n) {
		return false
	}
	if n.Build() != b {
		return true
	}
	for _, dep := range n.Dependencies() {
		if !b.visit(dep, seen, yield) {
			return false
		}
	}
	return true
}

// ProducersFirst returns targets reordered so that each one comes after
// every target in the list it depends on, directly or through other nodes
// of b. Independent targets keep their relative order.
func (b *Build) ProducersFirst(targets []*Target) []*Target {
	want := make(map[*Target]bool, len(targets))
	for _, t := range targets {
		want[t] = true
	}
	done := make(map[Node]bool)
	out := make([]*Target, 0, len(targets))

	var visit func(n Node)
	visit = func(n Node) {
		if done[n] {
			return
		}
		done[n] = true
		if n.Build() == b {
			for _, dep := range n.Dependencies() {
				visit(dep)
			}
		}
		if t, ok := n.(*Target); ok && want[t] {
			out = append(out, t)
		}
	}

	for _, t := range targets {
		visit(t)
	}
	return out
}
