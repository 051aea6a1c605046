package validation

import (
	"fmt"

	"github.com/samber/lo"

	language "github.com/hanpama/gqlcore/internal/language"
)

type uniqueArgumentNames struct{ BaseVisitor }

// UniqueArgumentNames rejects a field or directive given the same argument
// twice.
func UniqueArgumentNames() Visitor { return uniqueArgumentNames{} }

func (uniqueArgumentNames) EnterField(ctx *ValidatorContext, f *language.Field) {
	checkUniqueArguments(ctx, f.Arguments)
}

func (uniqueArgumentNames) EnterDirective(ctx *ValidatorContext, d *language.Directive) {
	checkUniqueArguments(ctx, d.Arguments)
}

func checkUniqueArguments(ctx *ValidatorContext, args language.ArgumentList) {
	groups := lo.GroupBy(args, func(a *language.Argument) string { return a.Name })
	names := lo.Uniq(lo.Map(args, func(a *language.Argument, _ int) string { return a.Name }))
	for _, name := range names {
		if dups := groups[name]; len(dups) > 1 {
			ctx.ReportError(fmt.Sprintf("There can be only one argument named %q.", name),
				lo.Map(dups, func(a *language.Argument, _ int) *language.Position { return a.Position })...)
		}
	}
}
