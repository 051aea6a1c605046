package validation

import (
	"fmt"

	language "github.com/hanpama/gqlcore/internal/language"
)

type knownArgumentNames struct {
	BaseVisitor
	inDirective bool
}

// KnownArgumentNames requires arguments to be defined by their field or
// directive.
func KnownArgumentNames() Visitor { return &knownArgumentNames{} }

func (r *knownArgumentNames) EnterDirective(*ValidatorContext, *language.Directive) {
	r.inDirective = true
}

func (r *knownArgumentNames) ExitDirective(*ValidatorContext, *language.Directive) {
	r.inDirective = false
}

func (r *knownArgumentNames) EnterArgument(ctx *ValidatorContext, a *language.Argument) {
	if ctx.Argument() != nil {
		return
	}
	if r.inDirective {
		if d := ctx.Directive(); d != nil {
			ctx.ReportError(fmt.Sprintf("Unknown argument %q on directive \"@%s\".", a.Name, d.Name), a.Position)
		}
		return
	}
	if def, parent := ctx.FieldDef(), ctx.ParentType(); def != nil && parent != nil {
		ctx.ReportError(fmt.Sprintf("Unknown argument %q on field \"%s.%s\".", a.Name, parent.Name, def.Name), a.Position)
	}
}
