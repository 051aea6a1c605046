package validation

import (
	"fmt"
	"maps"

	language "github.com/hanpama/gqlcore/internal/language"
	schema "github.com/hanpama/gqlcore/internal/schema"
)

// fieldPair is a pair of field nodes already compared.
type fieldPair struct {
	a, b      *language.Field
	exclusive bool
}

type overlappingFields struct {
	BaseVisitor
	compared map[fieldPair]bool
}

// OverlappingFieldsCanBeMerged requires fields sharing a response name to
// resolve to the same value: same field, same arguments and compatible
// result shapes. Fields of different object types never overlap at
// runtime and only need compatible shapes.
func OverlappingFieldsCanBeMerged() Visitor {
	return &overlappingFields{compared: map[fieldPair]bool{}}
}

// selectedField is a field node with the parent type it is selected on.
type selectedField struct {
	parent *schema.Type
	node   *language.Field
	def    *schema.Field
}

type fieldsByName struct {
	names  []string
	fields map[string][]selectedField
}

func (r *overlappingFields) EnterSelectionSet(ctx *ValidatorContext, set language.SelectionSet) {
	collected := collectSelected(ctx, ctx.ParentType(), set)
	for _, name := range collected.names {
		fields := collected.fields[name]
		for i := 0; i < len(fields); i++ {
			for j := i + 1; j < len(fields); j++ {
				r.report(ctx, name, fields[i], fields[j], false)
			}
		}
	}
}

func (r *overlappingFields) report(ctx *ValidatorContext, name string, a, b selectedField, exclusive bool) {
	reason, positions := r.conflict(ctx, a, b, exclusive)
	if reason == "" {
		return
	}
	ctx.ReportError(fmt.Sprintf("Fields %q conflict because %s. Use different aliases on the fields to fetch both if this was intentional.", name, reason), positions...)
}

// conflict compares two fields with the same response name. It returns an
// empty reason when they can be merged.
func (r *overlappingFields) conflict(ctx *ValidatorContext, a, b selectedField, exclusive bool) (string, []*language.Position) {
	if a.node == b.node {
		return "", nil
	}
	exclusive = exclusive || (a.parent != nil && b.parent != nil && a.parent != b.parent &&
		a.parent.Kind == schema.TypeKindObject && b.parent.Kind == schema.TypeKindObject)
	pair := fieldPair{a.node, b.node, exclusive}
	if r.compared[pair] || r.compared[fieldPair{b.node, a.node, exclusive}] {
		return "", nil
	}
	r.compared[pair] = true

	positions := []*language.Position{a.node.Position, b.node.Position}

	if !exclusive {
		if a.node.Name != b.node.Name {
			return fmt.Sprintf("%q and %q are different fields", a.node.Name, b.node.Name), positions
		}
		if !sameArguments(a.node.Arguments, b.node.Arguments) {
			return "they have differing arguments", positions
		}
	}
	if a.def != nil && b.def != nil && typesConflict(ctx, a.def.Type, b.def.Type) {
		return fmt.Sprintf("they return conflicting types %s and %s", a.def.Type, b.def.Type), positions
	}

	if len(a.node.SelectionSet) == 0 || len(b.node.SelectionSet) == 0 {
		return "", nil
	}
	subA := collectSelected(ctx, childType(ctx, a.def), a.node.SelectionSet)
	subB := collectSelected(ctx, childType(ctx, b.def), b.node.SelectionSet)
	for _, name := range subA.names {
		for _, x := range subA.fields[name] {
			for _, y := range subB.fields[name] {
				reason, sub := r.conflict(ctx, x, y, exclusive)
				if reason != "" {
					return fmt.Sprintf("subfields %q conflict because %s", name, reason), append(positions, sub...)
				}
			}
		}
	}
	return "", nil
}

func childType(ctx *ValidatorContext, def *schema.Field) *schema.Type {
	if def == nil {
		return nil
	}
	return ctx.compositeType(def.Type)
}

// collectSelected gathers the fields of set by response name, expanding
// inline fragments and fragment spreads.
func collectSelected(ctx *ValidatorContext, parent *schema.Type, set language.SelectionSet) fieldsByName {
	out := fieldsByName{fields: map[string][]selectedField{}}
	visited := map[string]bool{}
	var walk func(parent *schema.Type, set language.SelectionSet)
	walk = func(parent *schema.Type, set language.SelectionSet) {
		for _, sel := range set {
			switch s := sel.(type) {
			case *language.Field:
				key := s.Alias
				if key == "" {
					key = s.Name
				}
				var def *schema.Field
				if parent != nil {
					def = ctx.Schema.FieldDef(parent.Name, s.Name)
				}
				if _, seen := out.fields[key]; !seen {
					out.names = append(out.names, key)
				}
				out.fields[key] = append(out.fields[key], selectedField{parent: parent, node: s, def: def})
			case *language.InlineFragment:
				inner := parent
				if s.TypeCondition != "" {
					inner = ctx.compositeNamed(s.TypeCondition)
				}
				walk(inner, s.SelectionSet)
			case *language.FragmentSpread:
				if visited[s.Name] {
					continue
				}
				visited[s.Name] = true
				if frag := ctx.Fragment(s.Name); frag != nil {
					walk(ctx.compositeNamed(frag.TypeCondition), frag.SelectionSet)
				}
			}
		}
	}
	walk(parent, set)
	return out
}

func sameArguments(a, b language.ArgumentList) bool {
	if len(a) != len(b) {
		return false
	}
	return maps.Equal(argumentSource(a), argumentSource(b))
}

func argumentSource(args language.ArgumentList) map[string]string {
	out := make(map[string]string, len(args))
	for _, arg := range args {
		out[arg.Name] = arg.Value.String()
	}
	return out
}

// typesConflict compares result shapes. Composite named types are
// compared through their subfields instead.
func typesConflict(ctx *ValidatorContext, a, b *schema.TypeRef) bool {
	if a.Kind == schema.TypeRefKindList || b.Kind == schema.TypeRefKindList ||
		a.Kind == schema.TypeRefKindNonNull || b.Kind == schema.TypeRefKindNonNull {
		if a.Kind != b.Kind {
			return true
		}
		return typesConflict(ctx, a.OfType, b.OfType)
	}
	if ctx.compositeNamed(a.Named) != nil && ctx.compositeNamed(b.Named) != nil {
		return false
	}
	return a.Named != b.Named
}
