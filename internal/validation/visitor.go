package validation

import (
	language "github.com/hanpama/gqlcore/internal/language"
)

// Visitor receives enter and exit callbacks for every node of a query
// document, in document order. Rules implement it by embedding BaseVisitor
// and overriding the hooks they need.
type Visitor interface {
	EnterDocument(ctx *ValidatorContext, doc *language.QueryDocument)
	ExitDocument(ctx *ValidatorContext, doc *language.QueryDocument)

	EnterOperationDefinition(ctx *ValidatorContext, op *language.OperationDefinition)
	ExitOperationDefinition(ctx *ValidatorContext, op *language.OperationDefinition)

	EnterFragmentDefinition(ctx *ValidatorContext, f *language.FragmentDefinition)
	ExitFragmentDefinition(ctx *ValidatorContext, f *language.FragmentDefinition)

	EnterVariableDefinition(ctx *ValidatorContext, v *language.VariableDefinition)
	ExitVariableDefinition(ctx *ValidatorContext, v *language.VariableDefinition)

	EnterSelectionSet(ctx *ValidatorContext, set language.SelectionSet)
	ExitSelectionSet(ctx *ValidatorContext, set language.SelectionSet)

	EnterField(ctx *ValidatorContext, f *language.Field)
	ExitField(ctx *ValidatorContext, f *language.Field)

	EnterFragmentSpread(ctx *ValidatorContext, s *language.FragmentSpread)
	ExitFragmentSpread(ctx *ValidatorContext, s *language.FragmentSpread)

	EnterInlineFragment(ctx *ValidatorContext, f *language.InlineFragment)
	ExitInlineFragment(ctx *ValidatorContext, f *language.InlineFragment)

	EnterDirective(ctx *ValidatorContext, d *language.Directive)
	ExitDirective(ctx *ValidatorContext, d *language.Directive)

	EnterArgument(ctx *ValidatorContext, a *language.Argument)
	ExitArgument(ctx *ValidatorContext, a *language.Argument)

	EnterValue(ctx *ValidatorContext, v *language.Value)
	ExitValue(ctx *ValidatorContext, v *language.Value)
}

// Rule creates a fresh visitor for one validation run.
type Rule func() Visitor

// BaseVisitor implements every Visitor hook as a no-op.
type BaseVisitor struct{}

func (BaseVisitor) EnterDocument(*ValidatorContext, *language.QueryDocument) {}
func (BaseVisitor) ExitDocument(*ValidatorContext, *language.QueryDocument)  {}

func (BaseVisitor) EnterOperationDefinition(*ValidatorContext, *language.OperationDefinition) {}
func (BaseVisitor) ExitOperationDefinition(*ValidatorContext, *language.OperationDefinition)  {}

func (BaseVisitor) EnterFragmentDefinition(*ValidatorContext, *language.FragmentDefinition) {}
func (BaseVisitor) ExitFragmentDefinition(*ValidatorContext, *language.FragmentDefinition)  {}

func (BaseVisitor) EnterVariableDefinition(*ValidatorContext, *language.VariableDefinition) {}
func (BaseVisitor) ExitVariableDefinition(*ValidatorContext, *language.VariableDefinition)  {}

func (BaseVisitor) EnterSelectionSet(*ValidatorContext, language.SelectionSet) {}
func (BaseVisitor) ExitSelectionSet(*ValidatorContext, language.SelectionSet)  {}

func (BaseVisitor) EnterField(*ValidatorContext, *language.Field) {}
func (BaseVisitor) ExitField(*ValidatorContext, *language.Field)  {}

func (BaseVisitor) EnterFragmentSpread(*ValidatorContext, *language.FragmentSpread) {}
func (BaseVisitor) ExitFragmentSpread(*ValidatorContext, *language.FragmentSpread)  {}

func (BaseVisitor) EnterInlineFragment(*ValidatorContext, *language.InlineFragment) {}
func (BaseVisitor) ExitInlineFragment(*ValidatorContext, *language.InlineFragment)  {}

func (BaseVisitor) EnterDirective(*ValidatorContext, *language.Directive) {}
func (BaseVisitor) ExitDirective(*ValidatorContext, *language.Directive)  {}

func (BaseVisitor) EnterArgument(*ValidatorContext, *language.Argument) {}
func (BaseVisitor) ExitArgument(*ValidatorContext, *language.Argument)  {}

func (BaseVisitor) EnterValue(*ValidatorContext, *language.Value) {}
func (BaseVisitor) ExitValue(*ValidatorContext, *language.Value)  {}
