package schema

import (
	"fmt"

	language "github.com/hanpama/gqlcore/internal/language"
	value "github.com/hanpama/gqlcore/internal/value"
)

// AsyncDirective marks a field definition in SDL for batched resolution.
const AsyncDirective = "async"

// BuildFromSDL parses SDL and returns the corresponding closed Schema.
// Type extensions are merged into their base definitions. Without a schema
// definition the roots are the types named Query, Mutation and Subscription.
func BuildFromSDL(sdl string) (*Schema, error) {
	doc, err := language.ParseSchema("schema.graphql", sdl)
	if err != nil {
		return nil, err
	}
	return BuildFromDocument(doc)
}

// BuildFromDocument builds a Schema from an already parsed SDL document.
func BuildFromDocument(doc *language.SchemaDocument) (*Schema, error) {
	reg := NewRegistry()
	built := make(map[string]*Type, len(doc.Definitions))
	for _, def := range doc.Definitions {
		t, err := buildDefinition(def)
		if err != nil {
			return nil, err
		}
		if err := reg.Register(t); err != nil {
			return nil, err
		}
		built[t.Name] = t
	}
	for _, ext := range doc.Extensions {
		t := built[ext.Name]
		if t == nil {
			return nil, fmt.Errorf("extend %s: type is not defined", ext.Name)
		}
		if err := extendType(t, ext); err != nil {
			return nil, err
		}
	}

	query, mutation, subscription := "Query", "", ""
	if reg.Has("Mutation") {
		mutation = "Mutation"
	}
	if reg.Has("Subscription") {
		subscription = "Subscription"
	}
	var description string
	for _, sd := range append(doc.Schema, doc.SchemaExtension...) {
		if sd.Description != "" {
			description = sd.Description
		}
		for _, ot := range sd.OperationTypes {
			switch ot.Operation {
			case language.Query:
				query = ot.Type
			case language.Mutation:
				mutation = ot.Type
			case language.Subscription:
				subscription = ot.Type
			}
		}
	}

	opts := []Option{WithMutation(mutation), WithSubscription(subscription), WithDescription(description)}
	for _, dd := range doc.Directives {
		if dd.Name == AsyncDirective || isBuiltinDirectiveName(dd.Name) {
			continue
		}
		d, err := buildDirective(dd)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithDirective(d))
	}
	return New(reg, query, opts...)
}

func isBuiltinDirectiveName(name string) bool {
	for _, d := range builtinDirectives() {
		if d.Name == name {
			return true
		}
	}
	return false
}

func buildDefinition(def *language.Definition) (*Type, error) {
	var t *Type
	switch def.Kind {
	case language.Scalar:
		t = NewType(def.Name, TypeKindScalar, def.Description)
	case language.Object:
		t = NewType(def.Name, TypeKindObject, def.Description)
	case language.Interface:
		t = NewType(def.Name, TypeKindInterface, def.Description)
	case language.Union:
		t = NewType(def.Name, TypeKindUnion, def.Description)
	case language.Enum:
		t = NewType(def.Name, TypeKindEnum, def.Description)
	case language.InputObject:
		t = NewType(def.Name, TypeKindInputObject, def.Description)
	default:
		return nil, fmt.Errorf("%s: unsupported definition kind %s", def.Name, def.Kind)
	}
	if err := extendType(t, def); err != nil {
		return nil, err
	}
	return t, nil
}

// extendType appends the members of def (a definition or an extension) to t.
func extendType(t *Type, def *language.Definition) error {
	if d := def.Directives.ForName("specifiedBy"); d != nil {
		if arg := d.Arguments.ForName("url"); arg != nil && arg.Value != nil {
			t.SetSpecifiedByURL(arg.Value.Raw)
		}
	}
	if def.Directives.ForName("oneOf") != nil {
		t.SetOneOf(true)
	}
	for _, name := range def.Interfaces {
		t.AddInterface(name)
	}
	for _, name := range def.Types {
		t.AddPossibleType(name)
	}
	for _, ev := range def.EnumValues {
		e := NewEnumValue(ev.Name, ev.Description)
		if reason, ok := deprecation(ev.Directives); ok {
			e.Deprecate(reason)
		}
		t.AddEnumValue(e)
	}
	for _, fd := range def.Fields {
		if t.Kind == TypeKindInputObject {
			iv, err := buildInputValue(fd.Name, fd.Description, fd.Type, fd.DefaultValue, fd.Directives)
			if err != nil {
				return fmt.Errorf("%s.%s: %w", t.Name, fd.Name, err)
			}
			t.AddInputField(iv)
			continue
		}
		f, err := buildField(fd)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", t.Name, fd.Name, err)
		}
		t.AddField(f)
	}
	return nil
}

func buildField(fd *language.FieldDefinition) (*Field, error) {
	f := NewField(fd.Name, fd.Description, TypeRefFromAST(fd.Type)).
		SetAsync(fd.Directives.ForName(AsyncDirective) != nil)
	if reason, ok := deprecation(fd.Directives); ok {
		f.Deprecate(reason)
	}
	for _, ad := range fd.Arguments {
		arg, err := buildInputValue(ad.Name, ad.Description, ad.Type, ad.DefaultValue, ad.Directives)
		if err != nil {
			return nil, fmt.Errorf("argument %s: %w", ad.Name, err)
		}
		f.AddArgument(arg)
	}
	return f, nil
}

func buildInputValue(name, description string, typ *language.Type, def *language.Value, directives language.DirectiveList) (*InputValue, error) {
	iv := NewInputValue(name, description, TypeRefFromAST(typ))
	if def != nil {
		dv, err := value.FromAST(def)
		if err != nil {
			return nil, fmt.Errorf("default value: %w", err)
		}
		if len(dv.ReferencedVariables()) > 0 {
			return nil, fmt.Errorf("default value must not reference variables")
		}
		iv.SetDefault(dv)
	}
	if reason, ok := deprecation(directives); ok {
		iv.Deprecate(reason)
	}
	return iv, nil
}

func buildDirective(dd *language.DirectiveDefinition) (*Directive, error) {
	d := NewDirective(dd.Name, dd.Description).SetRepeatable(dd.IsRepeatable)
	for _, loc := range dd.Locations {
		d.AddLocation(string(loc))
	}
	for _, ad := range dd.Arguments {
		arg, err := buildInputValue(ad.Name, ad.Description, ad.Type, ad.DefaultValue, ad.Directives)
		if err != nil {
			return nil, fmt.Errorf("@%s(%s:): %w", dd.Name, ad.Name, err)
		}
		d.AddArgument(arg)
	}
	return d, nil
}

func deprecation(directives language.DirectiveList) (string, bool) {
	d := directives.ForName("deprecated")
	if d == nil {
		return "", false
	}
	if arg := d.Arguments.ForName("reason"); arg != nil && arg.Value != nil {
		return arg.Value.Raw, true
	}
	return DefaultDeprecationReason, true
}
