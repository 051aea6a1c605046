package validation

import (
	"fmt"

	language "github.com/hanpama/gqlcore/internal/language"
	schema "github.com/hanpama/gqlcore/internal/schema"
)

type knownTypeNames struct{ BaseVisitor }

// KnownTypeNames requires variable types and type conditions to name types
// of the schema.
func KnownTypeNames() Visitor { return knownTypeNames{} }

func (knownTypeNames) EnterVariableDefinition(ctx *ValidatorContext, vd *language.VariableDefinition) {
	name := schema.TypeRefFromAST(vd.Type).GetNamedType()
	checkTypeName(ctx, name, vd.Type.Position)
}

func (knownTypeNames) EnterFragmentDefinition(ctx *ValidatorContext, f *language.FragmentDefinition) {
	checkTypeName(ctx, f.TypeCondition, f.Position)
}

func (knownTypeNames) EnterInlineFragment(ctx *ValidatorContext, f *language.InlineFragment) {
	if f.TypeCondition != "" {
		checkTypeName(ctx, f.TypeCondition, f.Position)
	}
}

func checkTypeName(ctx *ValidatorContext, name string, pos *language.Position) {
	if ctx.Schema.Type(name) == nil {
		ctx.ReportError(fmt.Sprintf("Unknown type %q.", name), pos)
	}
}
