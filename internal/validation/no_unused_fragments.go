package validation

import (
	"fmt"

	language "github.com/hanpama/gqlcore/internal/language"
)

type noUnusedFragments struct{ BaseVisitor }

// NoUnusedFragments requires every fragment to be reachable from an operation.
func NoUnusedFragments() Visitor { return noUnusedFragments{} }

func (noUnusedFragments) ExitDocument(ctx *ValidatorContext, doc *language.QueryDocument) {
	used := map[*language.FragmentDefinition]bool{}
	for _, op := range doc.Operations {
		for _, f := range ctx.ReferencedFragments(op) {
			used[f] = true
		}
	}
	for _, def := range language.Definitions(doc) {
		f, ok := language.AsFragment(def)
		if !ok || used[f] {
			continue
		}
		// A duplicate definition is never the one spreads resolve to;
		// UniqueFragmentNames reports it instead.
		if ctx.Fragment(f.Name) != f {
			continue
		}
		ctx.ReportError(fmt.Sprintf("Fragment %q is never used.", f.Name), f.Position)
	}
}
