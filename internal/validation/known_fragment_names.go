package validation

import (
	"fmt"

	language "github.com/hanpama/gqlcore/internal/language"
)

type knownFragmentNames struct{ BaseVisitor }

// KnownFragmentNames requires every spread to name a defined fragment.
func KnownFragmentNames() Visitor { return knownFragmentNames{} }

func (knownFragmentNames) EnterFragmentSpread(ctx *ValidatorContext, s *language.FragmentSpread) {
	if ctx.Fragment(s.Name) == nil {
		ctx.ReportError(fmt.Sprintf("Unknown fragment %q.", s.Name), s.Position)
	}
}
