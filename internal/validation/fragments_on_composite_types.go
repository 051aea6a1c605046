package validation

import (
	"fmt"

	language "github.com/hanpama/gqlcore/internal/language"
)

type fragmentsOnCompositeTypes struct{ BaseVisitor }

// FragmentsOnCompositeTypes requires type conditions to name object,
// interface or union types. Unknown names are left to KnownTypeNames.
func FragmentsOnCompositeTypes() Visitor { return fragmentsOnCompositeTypes{} }

func (fragmentsOnCompositeTypes) EnterFragmentDefinition(ctx *ValidatorContext, f *language.FragmentDefinition) {
	if t := ctx.Schema.Type(f.TypeCondition); t != nil && !t.IsComposite() {
		ctx.ReportError(fmt.Sprintf("Fragment %q cannot condition on non composite type %q.", f.Name, f.TypeCondition), f.Position)
	}
}

func (fragmentsOnCompositeTypes) EnterInlineFragment(ctx *ValidatorContext, f *language.InlineFragment) {
	if f.TypeCondition == "" {
		return
	}
	if t := ctx.Schema.Type(f.TypeCondition); t != nil && !t.IsComposite() {
		ctx.ReportError(fmt.Sprintf("Fragment cannot condition on non composite type %q.", f.TypeCondition), f.Position)
	}
}
