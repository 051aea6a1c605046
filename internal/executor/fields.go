package executor

import (
	language "github.com/hanpama/gqlcore/internal/language"
	schema "github.com/hanpama/gqlcore/internal/schema"
)

// collectedField is one response key with every field node merged into it.
type collectedField struct {
	ResponseName string
	Fields       []*language.Field
}

// collectedFieldMap keeps response keys in the order they first appear in
// the query, aliases included.
type collectedFieldMap struct {
	fields []collectedField
	index  map[string]int
}

func (m *collectedFieldMap) add(field *language.Field) {
	key := field.Alias
	if key == "" {
		key = field.Name
	}
	if i, ok := m.index[key]; ok {
		m.fields[i].Fields = append(m.fields[i].Fields, field)
		return
	}
	m.index[key] = len(m.fields)
	m.fields = append(m.fields, collectedField{ResponseName: key, Fields: []*language.Field{field}})
}

func (m *collectedFieldMap) orderedFields() []collectedField { return m.fields }

type fieldCollector struct {
	state      *executionState
	objectType *schema.Type
	out        *collectedFieldMap
	spread     map[string]bool
}

// collectFields flattens selectionSet for objectType: skipped nodes are
// dropped, fragments that do not apply are ignored and each named fragment
// is expanded at most once.
func collectFields(state *executionState, objectType *schema.Type, selectionSet language.SelectionSet) *collectedFieldMap {
	c := &fieldCollector{
		state:      state,
		objectType: objectType,
		out:        &collectedFieldMap{index: map[string]int{}},
		spread:     map[string]bool{},
	}
	c.collect(selectionSet)
	return c.out
}

func (c *fieldCollector) collect(selectionSet language.SelectionSet) {
	for _, selection := range selectionSet {
		switch sel := selection.(type) {
		case *language.Field:
			if included(c.state, sel.Directives) {
				c.out.add(sel)
			}
		case *language.InlineFragment:
			if included(c.state, sel.Directives) && fragmentApplies(c.state.schema, c.objectType, sel.TypeCondition) {
				c.collect(sel.SelectionSet)
			}
		case *language.FragmentSpread:
			if c.spread[sel.Name] || !included(c.state, sel.Directives) {
				continue
			}
			c.spread[sel.Name] = true
			def := c.state.document.Fragments.ForName(sel.Name)
			if def != nil && fragmentApplies(c.state.schema, c.objectType, def.TypeCondition) {
				c.collect(def.SelectionSet)
			}
		}
	}
}

// fragmentApplies matches the object type itself, an interface it
// implements or a union containing it. An empty condition always applies.
func fragmentApplies(s *schema.Schema, objectType *schema.Type, typeCondition string) bool {
	return typeCondition == "" || typeCondition == objectType.Name || s.IsPossibleType(typeCondition, objectType.Name)
}

// included evaluates @skip and @include.
func included(state *executionState, directives language.DirectiveList) bool {
	if d := directives.ForName("skip"); d != nil && directiveFlag(state, d) {
		return false
	}
	if d := directives.ForName("include"); d != nil && !directiveFlag(state, d) {
		return false
	}
	return true
}

// directiveFlag coerces the Boolean `if` argument of directive, literal or
// variable. A value that fails to coerce leaves the node included.
func directiveFlag(state *executionState, directive *language.Directive) bool {
	def := state.schema.Directives[directive.Name]
	if def == nil {
		return directive.Name == "include"
	}
	args, err := coerceArgumentValues(state.schema, def.Arguments, directive.Arguments, state.variableValues)
	if err != nil {
		return directive.Name == "include"
	}
	return args.Bool("if")
}
