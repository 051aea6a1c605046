package validation

import (
	"fmt"

	language "github.com/hanpama/gqlcore/internal/language"
)

type uniqueVariableNames struct{ BaseVisitor }

// UniqueVariableNames rejects an operation declaring a variable twice.
func UniqueVariableNames() Visitor { return uniqueVariableNames{} }

func (uniqueVariableNames) EnterOperationDefinition(ctx *ValidatorContext, op *language.OperationDefinition) {
	seen := map[string]*language.VariableDefinition{}
	for _, vd := range op.VariableDefinitions {
		if prev, ok := seen[vd.Variable]; ok {
			ctx.ReportError(fmt.Sprintf("There can be only one variable named \"$%s\".", vd.Variable), prev.Position, vd.Position)
			continue
		}
		seen[vd.Variable] = vd
	}
}
