package validation

import (
	"fmt"

	language "github.com/hanpama/gqlcore/internal/language"
)

type uniqueFragmentNames struct {
	BaseVisitor
	seen map[string]*language.FragmentDefinition
}

// UniqueFragmentNames rejects two fragments sharing a name.
func UniqueFragmentNames() Visitor {
	return &uniqueFragmentNames{seen: map[string]*language.FragmentDefinition{}}
}

func (r *uniqueFragmentNames) EnterFragmentDefinition(ctx *ValidatorContext, f *language.FragmentDefinition) {
	if prev, ok := r.seen[f.Name]; ok {
		ctx.ReportError(fmt.Sprintf("There can be only one fragment named %q.", f.Name), prev.Position, f.Position)
		return
	}
	r.seen[f.Name] = f
}
