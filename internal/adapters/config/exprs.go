package config

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"go.trai.ch/tupcfg/internal/core/domain"
)

// isAbsent reports whether an optional attribute was left out. The decoder
// fills missing attributes with a static null expression.
func isAbsent(expr hcl.Expression) bool {
	if expr == nil {
		return true
	}
	if len(expr.Variables()) > 0 {
		return false
	}
	if _, ok := expr.(*hclsyntax.FunctionCallExpr); ok {
		return false
	}
	v, diags := expr.Value(nil)
	return !diags.HasErrors() && v.IsNull()
}

func diagnosticsError(diags hcl.Diagnostics, hint string, kv ...any) error {
	return domain.Fail(domain.ErrConfiguration, hint, append(kv, "cause", diags.Error())...)
}

func evaluate(expr hcl.Expression, ctx *hcl.EvalContext, attr string) (cty.Value, error) {
	if err := checkReferences(expr, ctx); err != nil {
		return cty.NilVal, err
	}
	v, diags := expr.Value(ctx)
	if diags.HasErrors() {
		return cty.NilVal, diagnosticsError(diags, "fix the value of "+attr, "at", expr.Range().String())
	}
	return v, nil
}

func stringValue(expr hcl.Expression, ctx *hcl.EvalContext, attr string) (string, error) {
	v, err := evaluate(expr, ctx, attr)
	if err != nil {
		return "", err
	}
	s, err := convert.Convert(v, cty.String)
	if err != nil || s.IsNull() || !s.IsKnown() {
		return "", domain.Fail(domain.ErrConfiguration, attr+" must be a string",
			"at", expr.Range().String())
	}
	return s.AsString(), nil
}

func optionalString(expr hcl.Expression, ctx *hcl.EvalContext, attr string) (string, error) {
	if isAbsent(expr) {
		return "", nil
	}
	return stringValue(expr, ctx, attr)
}

func boolValue(expr hcl.Expression, ctx *hcl.EvalContext, attr string) (bool, error) {
	if isAbsent(expr) {
		return false, nil
	}
	v, err := evaluate(expr, ctx, attr)
	if err != nil {
		return false, err
	}
	b, err := convert.Convert(v, cty.Bool)
	if err != nil || b.IsNull() || !b.IsKnown() {
		return false, domain.Fail(domain.ErrConfiguration, attr+" must be true or false",
			"at", expr.Range().String())
	}
	return b.True(), nil
}

func stringList(expr hcl.Expression, ctx *hcl.EvalContext, attr string) ([]string, error) {
	v, err := evaluate(expr, ctx, attr)
	if err != nil {
		return nil, err
	}
	ty := v.Type()
	if v.IsNull() || !(ty.IsTupleType() || ty.IsListType() || ty.IsSetType()) {
		return nil, domain.Fail(domain.ErrConfiguration, attr+" must be a list of strings",
			"at", expr.Range().String())
	}
	out := make([]string, 0, v.LengthInt())
	for it := v.ElementIterator(); it.Next(); {
		_, el := it.Element()
		s, err := convert.Convert(el, cty.String)
		if err != nil || s.IsNull() || !s.IsKnown() {
			return nil, domain.Fail(domain.ErrConfiguration, attr+" must be a list of strings",
				"at", expr.Range().String())
		}
		out = append(out, s.AsString())
	}
	return out, nil
}

func stringMap(expr hcl.Expression, ctx *hcl.EvalContext, attr string) (map[string]string, error) {
	if isAbsent(expr) {
		return nil, nil
	}
	v, err := evaluate(expr, ctx, attr)
	if err != nil {
		return nil, err
	}
	ty := v.Type()
	if v.IsNull() || !(ty.IsObjectType() || ty.IsMapType()) {
		return nil, domain.Fail(domain.ErrConfiguration, attr+" must be a map of strings",
			"at", expr.Range().String())
	}
	out := make(map[string]string, v.LengthInt())
	for it := v.ElementIterator(); it.Next(); {
		k, el := it.Element()
		s, err := convert.Convert(el, cty.String)
		if err != nil || s.IsNull() || !s.IsKnown() {
			return nil, domain.Fail(domain.ErrConfiguration, attr+" must be a map of strings",
				"at", expr.Range().String(), "key", k.AsString())
		}
		out[k.AsString()] = s.AsString()
	}
	return out, nil
}

// checkReferences fails when expr references a node that is not declared.
func checkReferences(expr hcl.Expression, ctx *hcl.EvalContext) error {
	for _, t := range expr.Variables() {
		root := t.RootName()
		if !isNodeRoot(root) {
			continue
		}
		if _, diags := t.TraverseAbs(ctx); diags.HasErrors() {
			return unknownReference(t)
		}
	}
	return nil
}

func unknownReference(t hcl.Traversal) error {
	hint := "declare the referenced block"
	switch t.RootName() {
	case "source":
		hint = "add a source block with that name"
	case "sources":
		hint = "add a sources block with that name"
	case "target":
		hint = "add a target block with that name"
	case "dependency":
		hint = "add the dependency block, or the target block inside it"
	}
	return domain.Fail(domain.ErrUnknownNodeReference, hint,
		"reference", traversalString(t), "at", t.SourceRange().String())
}

func traversalString(t hcl.Traversal) string {
	out := t.RootName()
	for _, step := range t[1:] {
		switch s := step.(type) {
		case hcl.TraverseAttr:
			out += "." + s.Name
		case hcl.TraverseIndex:
			out += "[...]"
		}
	}
	return out
}

// resolve returns the nodes a traversal names. It reports false for
// traversals that do not start with a node root.
func (s *scope) resolve(t hcl.Traversal) ([]domain.Node, bool, error) {
	root := t.RootName()
	if !isNodeRoot(root) {
		return nil, false, nil
	}

	var names []string
	for _, step := range t[1:] {
		attr, ok := step.(hcl.TraverseAttr)
		if !ok {
			return nil, true, unknownReference(t)
		}
		names = append(names, attr.Name)
	}

	want := 1
	if root == "dependency" {
		want = 2
	}
	if len(names) != want {
		return nil, true, unknownReference(t)
	}

	switch root {
	case "source":
		if src, ok := s.sources[names[0]]; ok {
			return []domain.Node{src}, true, nil
		}
	case "sources":
		if set, ok := s.sourceSets[names[0]]; ok {
			return set, true, nil
		}
	case "target":
		if tgt, ok := s.targets[names[0]]; ok {
			return []domain.Node{tgt}, true, nil
		}
	case "dependency":
		if dep, ok := s.dependencies[names[0]]; ok {
			if tgt, ok := dep.targets[names[1]]; ok {
				return []domain.Node{tgt}, true, nil
			}
		}
	}
	return nil, true, unknownReference(t)
}

// mentions returns the nodes expr references anywhere inside it, such as a
// target spliced into a template or passed to a function.
func (s *scope) mentions(expr hcl.Expression) ([]domain.Node, error) {
	var out []domain.Node
	for _, t := range expr.Variables() {
		root := t.RootName()
		if !isNodeRoot(root) {
			continue
		}
		want := 2
		if root == "dependency" {
			want = 3
		}
		if len(t) > want {
			t = t[:want]
		}
		nodes, _, err := s.resolve(t)
		if err != nil {
			return nil, err
		}
		out = append(out, nodes...)
	}
	return out, nil
}

// arg converts an expression into an argument tree. Tuples become groups and
// node references become NodeRefs; every other expression is evaluated and
// its value converted, keeping the nodes it references as mentions.
func (s *scope) arg(expr hcl.Expression, ctx *hcl.EvalContext) (domain.Arg, error) {
	switch e := expr.(type) {
	case *hclsyntax.TemplateWrapExpr:
		return s.arg(e.Wrapped, ctx)
	case *hclsyntax.TupleConsExpr:
		args := make([]domain.Arg, 0, len(e.Exprs))
		for _, el := range e.Exprs {
			a, err := s.arg(el, ctx)
			if err != nil {
				return domain.Arg{}, err
			}
			args = append(args, a)
		}
		return domain.Group(args...), nil
	case *hclsyntax.ScopeTraversalExpr:
		nodes, ok, err := s.resolve(e.Traversal)
		if err != nil {
			return domain.Arg{}, err
		}
		if ok {
			if len(nodes) == 1 && e.Traversal.RootName() != "sources" {
				return domain.NodeRef(nodes[0]), nil
			}
			refs := make([]domain.Arg, 0, len(nodes))
			for _, n := range nodes {
				refs = append(refs, domain.NodeRef(n))
			}
			return domain.Group(refs...), nil
		}
	}

	v, err := evaluate(expr, ctx, "args")
	if err != nil {
		return domain.Arg{}, err
	}
	a, err := valueArg(v, expr.Range())
	if err != nil {
		return domain.Arg{}, err
	}
	nodes, err := s.mentions(expr)
	if err != nil {
		return domain.Arg{}, err
	}
	return a.Mentioning(nodes...), nil
}

func valueArg(v cty.Value, rng hcl.Range) (domain.Arg, error) {
	if v.IsNull() || !v.IsKnown() {
		return domain.Arg{}, domain.Fail(domain.ErrUnknownCommandElement,
			"command arguments may not be null", "at", rng.String())
	}
	ty := v.Type()
	switch {
	case ty.IsPrimitiveType():
		s, err := convert.Convert(v, cty.String)
		if err != nil {
			return domain.Arg{}, domain.Fail(domain.ErrUnknownCommandElement,
				"command arguments may only contain strings, numbers, bools, lists and node references",
				"at", rng.String())
		}
		return domain.Literal(s.AsString()), nil
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		args := make([]domain.Arg, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, el := it.Element()
			a, err := valueArg(el, rng)
			if err != nil {
				return domain.Arg{}, err
			}
			args = append(args, a)
		}
		return domain.Group(args...), nil
	}
	return domain.Arg{}, domain.Fail(domain.ErrUnknownCommandElement,
		"command arguments may only contain strings, numbers, bools, lists and node references",
		"at", rng.String(), "type", ty.FriendlyName())
}

// inputs returns the nodes an inputs list names. Plain strings declare
// source files relative to the project directory.
func (s *scope) inputs(expr hcl.Expression, ctx *hcl.EvalContext) ([]domain.Node, error) {
	a, err := s.arg(expr, ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.Node
	collect(a, func(leaf domain.Arg) {
		switch {
		case leaf.Kind() == domain.ArgNode:
			out = append(out, leaf.Node())
		case len(leaf.Mentions()) > 0:
			out = append(out, leaf.Mentions()...)
		case leaf.Kind() == domain.ArgLiteral:
			out = append(out, domain.NewSource(s.build, leaf.Text()))
		}
	})
	return out, nil
}

// outputs returns the extra targets an outputs list names. Plain strings
// declare targets of b relative to dir.
func (s *scope) outputs(expr hcl.Expression, ctx *hcl.EvalContext, b *domain.Build, dir string) ([]*domain.Target, error) {
	a, err := s.arg(expr, ctx)
	if err != nil {
		return nil, err
	}
	var out []*domain.Target
	var failed error
	collect(a, func(leaf domain.Arg) {
		if len(leaf.Mentions()) > 0 {
			if failed == nil {
				failed = domain.Fail(domain.ErrConfiguration,
					"name an extra output by a plain path or a target reference, not a value computed from other nodes",
					"at", expr.Range().String())
			}
			return
		}
		switch leaf.Kind() {
		case domain.ArgLiteral:
			out = append(out, domain.NewTarget(b, domain.NewPath(dir, leaf.Text()).String()))
		case domain.ArgNode:
			t, ok := leaf.Node().(*domain.Target)
			if !ok {
				if failed == nil {
					failed = domain.Fail(domain.ErrConfiguration,
						"outputs may only name targets", "at", expr.Range().String())
				}
				return
			}
			out = append(out, t)
		}
	})
	if failed != nil {
		return nil, failed
	}
	return out, nil
}

// collect calls fn for every leaf of a. A group whose elements were computed
// from node references, such as a list returned by a function, is reported
// as one leaf carrying those mentions.
func collect(a domain.Arg, fn func(domain.Arg)) {
	if a.Kind() == domain.ArgGroup && len(a.Mentions()) == 0 {
		for _, c := range a.Children() {
			collect(c, fn)
		}
		return
	}
	fn(a)
}
