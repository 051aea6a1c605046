package validation

import (
	"fmt"

	language "github.com/hanpama/gqlcore/internal/language"
)

type noUnusedVariables struct{ BaseVisitor }

// NoUnusedVariables requires every declared variable to be used by the
// operation or the fragments it spreads.
func NoUnusedVariables() Visitor { return noUnusedVariables{} }

func (noUnusedVariables) EnterOperationDefinition(ctx *ValidatorContext, op *language.OperationDefinition) {
	used := map[string]bool{}
	for _, u := range ctx.RecursiveVariableUsages(op) {
		used[u.Name] = true
	}
	for _, vd := range op.VariableDefinitions {
		if used[vd.Variable] {
			continue
		}
		if op.Name == "" {
			ctx.ReportError(fmt.Sprintf("Variable \"$%s\" is never used.", vd.Variable), vd.Position)
		} else {
			ctx.ReportError(fmt.Sprintf("Variable \"$%s\" is never used in operation %q.", vd.Variable, op.Name), vd.Position)
		}
	}
}
