package validation

import (
	"fmt"

	language "github.com/hanpama/gqlcore/internal/language"
)

type noUndefinedVariables struct{ BaseVisitor }

// NoUndefinedVariables requires every variable used by an operation, or by
// the fragments it spreads, to be declared by that operation.
func NoUndefinedVariables() Visitor { return noUndefinedVariables{} }

func (noUndefinedVariables) EnterOperationDefinition(ctx *ValidatorContext, op *language.OperationDefinition) {
	for _, u := range ctx.RecursiveVariableUsages(op) {
		if op.VariableDefinitions.ForName(u.Name) != nil {
			continue
		}
		if op.Name == "" {
			ctx.ReportError(fmt.Sprintf("Variable \"$%s\" is not defined.", u.Name), u.Position, op.Position)
		} else {
			ctx.ReportError(fmt.Sprintf("Variable \"$%s\" is not defined by operation %q.", u.Name, op.Name), u.Position, op.Position)
		}
	}
}
