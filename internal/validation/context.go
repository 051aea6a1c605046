package validation

import (
	language "github.com/hanpama/gqlcore/internal/language"
	schema "github.com/hanpama/gqlcore/internal/schema"
)

// ValidatorContext is shared by all rules of a validation run. The walker
// keeps its type information in sync with the node being visited.
type ValidatorContext struct {
	Schema   *schema.Schema
	Document *language.QueryDocument

	errors    []RuleError
	fragments map[string]*language.FragmentDefinition

	operation     *language.OperationDefinition
	parentTypes   []*schema.Type
	fieldDefs     []*schema.Field
	inputTypes    []*schema.TypeRef
	directive     *schema.Directive
	directiveLoc  string
	argument      *schema.InputValue
	operationRefs map[*language.OperationDefinition][]*language.FragmentDefinition
}

func newValidatorContext(sch *schema.Schema, doc *language.QueryDocument) *ValidatorContext {
	ctx := &ValidatorContext{
		Schema:        sch,
		Document:      doc,
		fragments:     map[string]*language.FragmentDefinition{},
		operationRefs: map[*language.OperationDefinition][]*language.FragmentDefinition{},
	}
	for _, f := range doc.Fragments {
		// The first definition wins; duplicates are reported by UniqueFragmentNames.
		if _, ok := ctx.fragments[f.Name]; !ok {
			ctx.fragments[f.Name] = f
		}
	}
	return ctx
}

// ReportError records a rule failure located at the given nodes.
func (ctx *ValidatorContext) ReportError(message string, positions ...*language.Position) {
	locs := make([]language.SourcePosition, len(positions))
	for i, p := range positions {
		locs[i] = language.PositionOf(p)
	}
	ctx.errors = append(ctx.errors, RuleError{Message: message, Locations: locs})
}

// Errors returns the errors reported so far.
func (ctx *ValidatorContext) Errors() []RuleError { return ctx.errors }

// Fragment looks up a fragment definition by name.
func (ctx *ValidatorContext) Fragment(name string) *language.FragmentDefinition {
	return ctx.fragments[name]
}

// Operation is the operation being visited, nil inside fragment definitions.
func (ctx *ValidatorContext) Operation() *language.OperationDefinition { return ctx.operation }

// VariableType returns the declared type of a variable of the current
// operation, or nil.
func (ctx *ValidatorContext) VariableType(name string) *schema.TypeRef {
	if ctx.operation == nil {
		return nil
	}
	if vd := ctx.operation.VariableDefinitions.ForName(name); vd != nil {
		return schema.TypeRefFromAST(vd.Type)
	}
	return nil
}

// ParentType is the composite type whose selection set is being visited.
// It is nil when the type is unknown or not composite.
func (ctx *ValidatorContext) ParentType() *schema.Type { return top(ctx.parentTypes) }

// FieldDef is the definition of the field being visited, or nil.
func (ctx *ValidatorContext) FieldDef() *schema.Field { return top(ctx.fieldDefs) }

// InputType is the expected type of the value being visited, or nil.
func (ctx *ValidatorContext) InputType() *schema.TypeRef { return top(ctx.inputTypes) }

// Directive is the definition of the directive being visited, or nil.
func (ctx *ValidatorContext) Directive() *schema.Directive { return ctx.directive }

// DirectiveLocation names where the directives being visited are applied,
// e.g. FIELD or QUERY.
func (ctx *ValidatorContext) DirectiveLocation() string { return ctx.directiveLoc }

// Argument is the definition of the argument being visited, or nil.
func (ctx *ValidatorContext) Argument() *schema.InputValue { return ctx.argument }

func top[T any](stack []*T) *T {
	if len(stack) == 0 {
		return nil
	}
	return stack[len(stack)-1]
}

func push[T any](stack *[]*T, v *T) { *stack = append(*stack, v) }

func pop[T any](stack *[]*T) { *stack = (*stack)[:len(*stack)-1] }

func (ctx *ValidatorContext) reset() {
	ctx.operation = nil
	ctx.parentTypes = ctx.parentTypes[:0]
	ctx.fieldDefs = ctx.fieldDefs[:0]
	ctx.inputTypes = ctx.inputTypes[:0]
	ctx.directive = nil
	ctx.directiveLoc = ""
	ctx.argument = nil
}

// compositeType returns the named type of t when it is composite.
func (ctx *ValidatorContext) compositeType(t *schema.TypeRef) *schema.Type {
	if t == nil {
		return nil
	}
	return ctx.compositeNamed(t.GetNamedType())
}

func (ctx *ValidatorContext) compositeNamed(name string) *schema.Type {
	if nt := ctx.Schema.Type(name); nt != nil && nt.IsComposite() {
		return nt
	}
	return nil
}
