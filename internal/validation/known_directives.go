package validation

import (
	"fmt"

	"github.com/samber/lo"

	language "github.com/hanpama/gqlcore/internal/language"
)

type knownDirectives struct{ BaseVisitor }

// KnownDirectives requires directives to be defined and used at one of
// their declared locations.
func KnownDirectives() Visitor { return knownDirectives{} }

func (knownDirectives) EnterDirective(ctx *ValidatorContext, d *language.Directive) {
	def := ctx.Directive()
	if def == nil {
		ctx.ReportError(fmt.Sprintf("Unknown directive \"@%s\".", d.Name), d.Position)
		return
	}
	if loc := ctx.DirectiveLocation(); !lo.Contains(def.Locations, loc) {
		ctx.ReportError(fmt.Sprintf("Directive \"@%s\" may not be used on %s.", d.Name, loc), d.Position)
	}
}
