package validation

import (
	"strings"

	language "github.com/hanpama/gqlcore/internal/language"
	schema "github.com/hanpama/gqlcore/internal/schema"
)

// walker drives one visitor through a document depth-first, maintaining the
// type information of the context on the way.
type walker struct {
	ctx *ValidatorContext
	v   Visitor
}

func (w *walker) document(doc *language.QueryDocument) {
	w.ctx.reset()
	w.v.EnterDocument(w.ctx, doc)
	for _, def := range language.Definitions(doc) {
		if op, ok := language.AsOperation(def); ok {
			w.operation(op)
		} else if f, ok := language.AsFragment(def); ok {
			w.fragment(f)
		}
	}
	w.v.ExitDocument(w.ctx, doc)
}

func (w *walker) operation(op *language.OperationDefinition) {
	ctx := w.ctx
	ctx.operation = op
	w.v.EnterOperationDefinition(ctx, op)
	for _, vd := range op.VariableDefinitions {
		w.variableDefinition(vd)
	}
	w.directives(op.Directives, strings.ToUpper(string(op.Operation)))

	push(&ctx.parentTypes, ctx.Schema.RootType(op.Operation))
	w.selectionSet(op.SelectionSet)
	pop(&ctx.parentTypes)

	w.v.ExitOperationDefinition(ctx, op)
	ctx.operation = nil
}

func (w *walker) variableDefinition(vd *language.VariableDefinition) {
	ctx := w.ctx
	w.v.EnterVariableDefinition(ctx, vd)
	if vd.DefaultValue != nil {
		push(&ctx.inputTypes, schema.TypeRefFromAST(vd.Type))
		w.value(vd.DefaultValue)
		pop(&ctx.inputTypes)
	}
	w.directives(vd.Directives, "VARIABLE_DEFINITION")
	w.v.ExitVariableDefinition(ctx, vd)
}

func (w *walker) fragment(f *language.FragmentDefinition) {
	ctx := w.ctx
	w.v.EnterFragmentDefinition(ctx, f)
	w.directives(f.Directives, "FRAGMENT_DEFINITION")
	push(&ctx.parentTypes, ctx.compositeNamed(f.TypeCondition))
	w.selectionSet(f.SelectionSet)
	pop(&ctx.parentTypes)
	w.v.ExitFragmentDefinition(ctx, f)
}

func (w *walker) selectionSet(set language.SelectionSet) {
	if len(set) == 0 {
		return
	}
	w.v.EnterSelectionSet(w.ctx, set)
	for _, sel := range set {
		switch s := sel.(type) {
		case *language.Field:
			w.field(s)
		case *language.FragmentSpread:
			w.v.EnterFragmentSpread(w.ctx, s)
			w.directives(s.Directives, "FRAGMENT_SPREAD")
			w.v.ExitFragmentSpread(w.ctx, s)
		case *language.InlineFragment:
			w.inlineFragment(s)
		}
	}
	w.v.ExitSelectionSet(w.ctx, set)
}

func (w *walker) field(f *language.Field) {
	ctx := w.ctx
	var def *schema.Field
	if parent := ctx.ParentType(); parent != nil {
		def = ctx.Schema.FieldDef(parent.Name, f.Name)
	}
	push(&ctx.fieldDefs, def)
	w.v.EnterField(ctx, f)

	var argDefs []*schema.InputValue
	if def != nil {
		argDefs = def.Arguments
	}
	w.arguments(f.Arguments, argDefs)
	w.directives(f.Directives, "FIELD")

	var child *schema.Type
	if def != nil {
		child = ctx.compositeType(def.Type)
	}
	push(&ctx.parentTypes, child)
	w.selectionSet(f.SelectionSet)
	pop(&ctx.parentTypes)

	w.v.ExitField(ctx, f)
	pop(&ctx.fieldDefs)
}

func (w *walker) inlineFragment(f *language.InlineFragment) {
	ctx := w.ctx
	parent := ctx.ParentType()
	if f.TypeCondition != "" {
		parent = ctx.compositeNamed(f.TypeCondition)
	}
	push(&ctx.parentTypes, parent)
	w.v.EnterInlineFragment(ctx, f)
	w.directives(f.Directives, "INLINE_FRAGMENT")
	w.selectionSet(f.SelectionSet)
	w.v.ExitInlineFragment(ctx, f)
	pop(&ctx.parentTypes)
}

func (w *walker) directives(dirs language.DirectiveList, location string) {
	ctx := w.ctx
	for _, d := range dirs {
		def := ctx.Schema.Directives[d.Name]
		ctx.directive, ctx.directiveLoc = def, location
		w.v.EnterDirective(ctx, d)
		var argDefs []*schema.InputValue
		if def != nil {
			argDefs = def.Arguments
		}
		w.arguments(d.Arguments, argDefs)
		ctx.directive, ctx.directiveLoc = def, location
		w.v.ExitDirective(ctx, d)
		ctx.directive, ctx.directiveLoc = nil, ""
	}
}

func (w *walker) arguments(args language.ArgumentList, defs []*schema.InputValue) {
	ctx := w.ctx
	for _, a := range args {
		var def *schema.InputValue
		for _, d := range defs {
			if d.Name == a.Name {
				def = d
				break
			}
		}
		var typ *schema.TypeRef
		if def != nil {
			typ = def.Type
		}
		ctx.argument = def
		push(&ctx.inputTypes, typ)
		w.v.EnterArgument(ctx, a)
		w.value(a.Value)
		w.v.ExitArgument(ctx, a)
		pop(&ctx.inputTypes)
		ctx.argument = nil
	}
}

func (w *walker) value(v *language.Value) {
	if v == nil {
		return
	}
	ctx := w.ctx
	w.v.EnterValue(ctx, v)
	switch v.Kind {
	case language.ListValue:
		var item *schema.TypeRef
		if t := ctx.InputType(); t != nil {
			if nt := t.Nullable(); nt.IsList() {
				item = nt.OfType
			}
		}
		for _, c := range v.Children {
			push(&ctx.inputTypes, item)
			w.value(c.Value)
			pop(&ctx.inputTypes)
		}
	case language.ObjectValue:
		var obj *schema.Type
		if t := ctx.InputType(); t != nil {
			if nt := ctx.Schema.Type(t.GetNamedType()); nt != nil && nt.Kind == schema.TypeKindInputObject && !t.Nullable().IsList() {
				obj = nt
			}
		}
		for _, c := range v.Children {
			var ft *schema.TypeRef
			if obj != nil {
				if iv := obj.InputField(c.Name); iv != nil {
					ft = iv.Type
				}
			}
			push(&ctx.inputTypes, ft)
			w.value(c.Value)
			pop(&ctx.inputTypes)
		}
	}
	w.v.ExitValue(ctx, v)
}
