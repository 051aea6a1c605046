// Package validation checks query documents against a schema before they are
// executed. Each rule is a Visitor; the walker runs the rules one after the
// other over the same document and collects their errors.
package validation

import (
	language "github.com/hanpama/gqlcore/internal/language"
	schema "github.com/hanpama/gqlcore/internal/schema"
)

// DefaultRules is the rule catalogue run by Validate, in reporting order.
var DefaultRules = []Rule{
	LoneAnonymousOperation,
	UniqueOperationNames,
	KnownFragmentNames,
	NoUnusedFragments,
	UniqueFragmentNames,
	KnownTypeNames,
	FragmentsOnCompositeTypes,
	FieldsOnCorrectType,
	OverlappingFieldsCanBeMerged,
	ScalarLeafs,
	KnownArgumentNames,
	UniqueArgumentNames,
	ProvidedNonNullArguments,
	NoUndefinedVariables,
	NoUnusedVariables,
	UniqueVariableNames,
	VariablesAreInputTypes,
	KnownDirectives,
	NoFragmentCycles,
}

// Validate runs the default rules. An empty result means the document may
// be executed.
func Validate(sch *schema.Schema, doc *language.QueryDocument) []RuleError {
	return ValidateWith(sch, doc, DefaultRules...)
}

// ValidateWith runs the given rules in order. Errors are grouped by rule and
// follow document order within a rule.
func ValidateWith(sch *schema.Schema, doc *language.QueryDocument, rules ...Rule) []RuleError {
	ctx := newValidatorContext(sch, doc)
	for _, rule := range rules {
		w := &walker{ctx: ctx, v: rule()}
		w.document(doc)
	}
	return ctx.Errors()
}
