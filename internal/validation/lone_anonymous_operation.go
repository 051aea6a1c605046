package validation

import language "github.com/hanpama/gqlcore/internal/language"

type loneAnonymousOperation struct {
	BaseVisitor
	operationCount int
}

// LoneAnonymousOperation requires an anonymous operation to be the only
// operation of its document.
func LoneAnonymousOperation() Visitor { return &loneAnonymousOperation{} }

func (r *loneAnonymousOperation) EnterDocument(_ *ValidatorContext, doc *language.QueryDocument) {
	r.operationCount = len(doc.Operations)
}

func (r *loneAnonymousOperation) EnterOperationDefinition(ctx *ValidatorContext, op *language.OperationDefinition) {
	if r.operationCount > 1 && op.Name == "" {
		ctx.ReportError("This anonymous operation must be the only defined operation", op.Position)
	}
}
