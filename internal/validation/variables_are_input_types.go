package validation

import (
	"fmt"

	language "github.com/hanpama/gqlcore/internal/language"
	schema "github.com/hanpama/gqlcore/internal/schema"
)

type variablesAreInputTypes struct{ BaseVisitor }

// VariablesAreInputTypes requires variables to be declared with scalar, enum
// or input object types.
func VariablesAreInputTypes() Visitor { return variablesAreInputTypes{} }

func (variablesAreInputTypes) EnterVariableDefinition(ctx *ValidatorContext, vd *language.VariableDefinition) {
	ref := schema.TypeRefFromAST(vd.Type)
	if t := ctx.Schema.Type(ref.GetNamedType()); t != nil && !t.IsInputType() {
		ctx.ReportError(fmt.Sprintf("Variable \"$%s\" cannot be non-input type %q.", vd.Variable, ref), vd.Type.Position)
	}
}
