package validation

import (
	"fmt"

	language "github.com/hanpama/gqlcore/internal/language"
)

type scalarLeafs struct{ BaseVisitor }

// ScalarLeafs forbids selections on leaf fields and requires them on
// composite fields.
func ScalarLeafs() Visitor { return scalarLeafs{} }

func (scalarLeafs) EnterField(ctx *ValidatorContext, f *language.Field) {
	def := ctx.FieldDef()
	if def == nil {
		return
	}
	t := ctx.Schema.Type(def.Type.GetNamedType())
	if t == nil {
		return
	}
	switch {
	case t.IsLeaf() && len(f.SelectionSet) > 0:
		ctx.ReportError(fmt.Sprintf("Field %q must not have a selection since type %q has no subfields.", f.Name, def.Type), f.Position)
	case !t.IsLeaf() && len(f.SelectionSet) == 0:
		ctx.ReportError(fmt.Sprintf("Field %q of type %q must have a selection of subfields. Did you mean \"%s { ... }\"?", f.Name, def.Type, f.Name), f.Position)
	}
}
