package validation

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	language "github.com/hanpama/gqlcore/internal/language"
)

type noFragmentCycles struct {
	BaseVisitor
	visited map[string]bool
}

// NoFragmentCycles rejects fragments that spread themselves, directly or
// through other fragments. Each cycle is reported once.
func NoFragmentCycles() Visitor { return &noFragmentCycles{visited: map[string]bool{}} }

func (r *noFragmentCycles) EnterFragmentDefinition(ctx *ValidatorContext, f *language.FragmentDefinition) {
	if r.visited[f.Name] {
		return
	}
	var path []*language.FragmentSpread
	onPath := map[string]int{f.Name: 0}
	r.detect(ctx, f, &path, onPath)
}

func (r *noFragmentCycles) detect(ctx *ValidatorContext, f *language.FragmentDefinition, path *[]*language.FragmentSpread, onPath map[string]int) {
	r.visited[f.Name] = true
	for _, spread := range ctx.FragmentSpreads(f.SelectionSet) {
		if idx, ok := onPath[spread.Name]; ok {
			cycle := append(append([]*language.FragmentSpread{}, (*path)[idx:]...), spread)
			via := lo.Map(cycle[:len(cycle)-1], func(s *language.FragmentSpread, _ int) string {
				return fmt.Sprintf("%q", s.Name)
			})
			msg := fmt.Sprintf("Cannot spread fragment %q within itself.", spread.Name)
			if len(via) > 0 {
				msg = fmt.Sprintf("Cannot spread fragment %q within itself via %s.", spread.Name, strings.Join(via, ", "))
			}
			ctx.ReportError(msg, lo.Map(cycle, func(s *language.FragmentSpread, _ int) *language.Position { return s.Position })...)
			continue
		}
		next := ctx.Fragment(spread.Name)
		if next == nil || r.visited[spread.Name] {
			continue
		}
		*path = append(*path, spread)
		onPath[spread.Name] = len(*path)
		r.detect(ctx, next, path, onPath)
		delete(onPath, spread.Name)
		*path = (*path)[:len(*path)-1]
	}
}
