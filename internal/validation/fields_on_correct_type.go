package validation

import (
	"fmt"

	language "github.com/hanpama/gqlcore/internal/language"
)

type fieldsOnCorrectType struct{ BaseVisitor }

// FieldsOnCorrectType requires selected fields to be defined on their
// parent type.
func FieldsOnCorrectType() Visitor { return fieldsOnCorrectType{} }

func (fieldsOnCorrectType) EnterField(ctx *ValidatorContext, f *language.Field) {
	parent := ctx.ParentType()
	if parent == nil || ctx.FieldDef() != nil {
		return
	}
	ctx.ReportError(fmt.Sprintf("Cannot query field %q on type %q.", f.Name, parent.Name), f.Position)
}
