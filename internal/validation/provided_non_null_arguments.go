package validation

import (
	"fmt"

	language "github.com/hanpama/gqlcore/internal/language"
	schema "github.com/hanpama/gqlcore/internal/schema"
)

type providedNonNullArguments struct{ BaseVisitor }

// ProvidedNonNullArguments requires every non-null argument without a
// default to be given.
func ProvidedNonNullArguments() Visitor { return providedNonNullArguments{} }

func (providedNonNullArguments) EnterField(ctx *ValidatorContext, f *language.Field) {
	def := ctx.FieldDef()
	if def == nil {
		return
	}
	for _, arg := range missingRequired(def.Arguments, f.Arguments) {
		ctx.ReportError(fmt.Sprintf("Field %q argument %q of type %q is required, but it was not provided.", f.Name, arg.Name, arg.Type), f.Position)
	}
}

func (providedNonNullArguments) EnterDirective(ctx *ValidatorContext, d *language.Directive) {
	def := ctx.Directive()
	if def == nil {
		return
	}
	for _, arg := range missingRequired(def.Arguments, d.Arguments) {
		ctx.ReportError(fmt.Sprintf("Directive \"@%s\" argument %q of type %q is required, but it was not provided.", d.Name, arg.Name, arg.Type), d.Position)
	}
}

func missingRequired(defs []*schema.InputValue, given language.ArgumentList) []*schema.InputValue {
	var out []*schema.InputValue
	for _, def := range defs {
		if !def.Type.IsNonNull() || def.DefaultValue != nil {
			continue
		}
		if given.ForName(def.Name) == nil {
			out = append(out, def)
		}
	}
	return out
}
