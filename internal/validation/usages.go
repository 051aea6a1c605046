package validation

import (
	language "github.com/hanpama/gqlcore/internal/language"
)

// VariableUsage is a variable reference inside an argument value.
type VariableUsage struct {
	Name     string
	Position *language.Position
}

// FragmentSpreads lists the spreads of a selection set, including those in
// nested fields and inline fragments, without following them.
func (ctx *ValidatorContext) FragmentSpreads(set language.SelectionSet) []*language.FragmentSpread {
	var out []*language.FragmentSpread
	var walk func(language.SelectionSet)
	walk = func(set language.SelectionSet) {
		for _, sel := range set {
			switch s := sel.(type) {
			case *language.Field:
				walk(s.SelectionSet)
			case *language.InlineFragment:
				walk(s.SelectionSet)
			case *language.FragmentSpread:
				out = append(out, s)
			}
		}
	}
	walk(set)
	return out
}

// ReferencedFragments returns every fragment an operation reaches through
// spreads, directly or transitively, in order of first reference. Unknown
// fragment names are skipped.
func (ctx *ValidatorContext) ReferencedFragments(op *language.OperationDefinition) []*language.FragmentDefinition {
	if refs, ok := ctx.operationRefs[op]; ok {
		return refs
	}
	var refs []*language.FragmentDefinition
	seen := map[string]bool{}
	queue := []language.SelectionSet{op.SelectionSet}
	for len(queue) > 0 {
		set := queue[0]
		queue = queue[1:]
		for _, spread := range ctx.FragmentSpreads(set) {
			if seen[spread.Name] {
				continue
			}
			seen[spread.Name] = true
			if f := ctx.Fragment(spread.Name); f != nil {
				refs = append(refs, f)
				queue = append(queue, f.SelectionSet)
			}
		}
	}
	ctx.operationRefs[op] = refs
	return refs
}

// VariableUsages lists the variables referenced by directives and the
// selection set, in document order.
func (ctx *ValidatorContext) VariableUsages(directives language.DirectiveList, set language.SelectionSet) []VariableUsage {
	var out []VariableUsage
	var value func(*language.Value)
	value = func(v *language.Value) {
		if v == nil {
			return
		}
		if v.Kind == language.Variable {
			out = append(out, VariableUsage{Name: v.Raw, Position: v.Position})
			return
		}
		for _, c := range v.Children {
			value(c.Value)
		}
	}
	arguments := func(args language.ArgumentList) {
		for _, a := range args {
			value(a.Value)
		}
	}
	dirs := func(ds language.DirectiveList) {
		for _, d := range ds {
			arguments(d.Arguments)
		}
	}
	var selections func(language.SelectionSet)
	selections = func(set language.SelectionSet) {
		for _, sel := range set {
			switch s := sel.(type) {
			case *language.Field:
				arguments(s.Arguments)
				dirs(s.Directives)
				selections(s.SelectionSet)
			case *language.InlineFragment:
				dirs(s.Directives)
				selections(s.SelectionSet)
			case *language.FragmentSpread:
				dirs(s.Directives)
			}
		}
	}
	dirs(directives)
	selections(set)
	return out
}

// RecursiveVariableUsages lists the variables an operation uses, including
// those used by the fragments it references.
func (ctx *ValidatorContext) RecursiveVariableUsages(op *language.OperationDefinition) []VariableUsage {
	usages := ctx.VariableUsages(op.Directives, op.SelectionSet)
	for _, f := range ctx.ReferencedFragments(op) {
		usages = append(usages, ctx.VariableUsages(f.Directives, f.SelectionSet)...)
	}
	return usages
}
