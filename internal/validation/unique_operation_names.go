package validation

import (
	"fmt"

	language "github.com/hanpama/gqlcore/internal/language"
)

type uniqueOperationNames struct {
	BaseVisitor
	seen map[string]*language.OperationDefinition
}

// UniqueOperationNames rejects two operations sharing a name.
func UniqueOperationNames() Visitor {
	return &uniqueOperationNames{seen: map[string]*language.OperationDefinition{}}
}

func (r *uniqueOperationNames) EnterOperationDefinition(ctx *ValidatorContext, op *language.OperationDefinition) {
	if op.Name == "" {
		return
	}
	if prev, ok := r.seen[op.Name]; ok {
		ctx.ReportError(fmt.Sprintf("There can be only one operation named %q.", op.Name), prev.Position, op.Position)
		return
	}
	r.seen[op.Name] = op
}
