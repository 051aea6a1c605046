// Package introspection answers __schema, __type and the fields of the
// introspection types on top of any executor.Runtime.
package introspection

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	executor "github.com/hanpama/gqlcore/internal/executor"
	schema "github.com/hanpama/gqlcore/internal/schema"
	value "github.com/hanpama/gqlcore/internal/value"
)

// Runtime resolves introspection fields and delegates everything else.
type Runtime struct {
	base   executor.Runtime
	schema *schema.Schema
}

// Wrap returns a Runtime that handles GraphQL introspection fields of sch.
func Wrap(base executor.Runtime, sch *schema.Schema) *Runtime {
	return &Runtime{base: base, schema: sch}
}

func (r *Runtime) ResolveSync(ctx context.Context, objectType, field string, source any, args value.Arguments) (any, error) {
	if objectType == r.schema.QueryType {
		switch field {
		case schema.SchemaMetaField.Name:
			return r.schema, nil
		case schema.TypeMetaField.Name:
			// An unknown name is null, not an error.
			if t := r.schema.Type(args.String("name")); t != nil {
				return t, nil
			}
			return nil, nil
		}
	}

	switch objectType {
	case "__Schema":
		if sch, ok := source.(*schema.Schema); ok {
			return r.resolveSchemaField(sch, field)
		}
	case "__Type":
		switch src := source.(type) {
		case *schema.Type:
			return r.resolveTypeField(src, field, args)
		case *schema.TypeRef:
			return r.resolveTypeRefField(src, field, args)
		}
	case "__Field":
		if f, ok := source.(*schema.Field); ok {
			return resolveFieldField(f, field, args)
		}
	case "__InputValue":
		if iv, ok := source.(*schema.InputValue); ok {
			return resolveInputValueField(iv, field)
		}
	case "__EnumValue":
		if ev, ok := source.(*schema.EnumValue); ok {
			return resolveEnumValueField(ev, field)
		}
	case "__Directive":
		if d, ok := source.(*schema.Directive); ok {
			return resolveDirectiveField(d, field, args)
		}
	default:
		return r.base.ResolveSync(ctx, objectType, field, source, args)
	}
	return nil, fmt.Errorf("unexpected %T source for %s.%s", source, objectType, field)
}

func (r *Runtime) BatchResolveAsync(ctx context.Context, tasks []executor.AsyncResolveTask) []executor.AsyncResolveResult {
	return r.base.BatchResolveAsync(ctx, tasks)
}

func (r *Runtime) ResolveType(ctx context.Context, abstractType string, v any) (string, error) {
	return r.base.ResolveType(ctx, abstractType, v)
}

// SerializeLeafValue handles the introspection enums, whose values are
// produced here as plain names.
func (r *Runtime) SerializeLeafValue(ctx context.Context, typ string, v any) (any, error) {
	if t := r.schema.Type(typ); t != nil && t.Kind == schema.TypeKindEnum && schema.IsIntrospectionType(typ) {
		if name, ok := v.(string); ok && t.EnumValue(name) != nil {
			return name, nil
		}
		return nil, fmt.Errorf("enum %s cannot represent value: %v", typ, v)
	}
	return r.base.SerializeLeafValue(ctx, typ, v)
}

func (r *Runtime) resolveSchemaField(sch *schema.Schema, field string) (any, error) {
	switch field {
	case "types":
		return lo.Map(sch.TypeNames(), func(name string, _ int) *schema.Type { return sch.Type(name) }), nil
	case "queryType":
		return sch.GetQueryType(), nil
	case "mutationType":
		return rootOrNil(sch, sch.MutationType), nil
	case "subscriptionType":
		return rootOrNil(sch, sch.SubscriptionType), nil
	case "directives":
		return lo.Map(sch.DirectiveNames(), func(name string, _ int) *schema.Directive { return sch.Directives[name] }), nil
	case "description":
		return optional(sch.Description), nil
	}
	return nil, fmt.Errorf("unknown field __Schema.%s", field)
}

func rootOrNil(sch *schema.Schema, name string) *schema.Type {
	if name == "" {
		return nil
	}
	return sch.Type(name)
}

func (r *Runtime) resolveTypeField(t *schema.Type, field string, args value.Arguments) (any, error) {
	includeDeprecated := args.Bool("includeDeprecated")
	switch field {
	case "kind":
		return string(t.Kind), nil
	case "name":
		return t.Name, nil
	case "description":
		return optional(t.Description), nil
	case "specifiedByURL":
		if t.Kind != schema.TypeKindScalar || t.SpecifiedByURL == nil {
			return nil, nil
		}
		return *t.SpecifiedByURL, nil
	case "fields":
		if t.Kind != schema.TypeKindObject && t.Kind != schema.TypeKindInterface {
			return nil, nil
		}
		return lo.Filter(t.Fields, func(f *schema.Field, _ int) bool {
			return includeDeprecated || !f.IsDeprecated
		}), nil
	case "interfaces":
		if t.Kind != schema.TypeKindObject && t.Kind != schema.TypeKindInterface {
			return nil, nil
		}
		return r.namedTypes(t.Interfaces), nil
	case "possibleTypes":
		if !t.IsAbstract() {
			return nil, nil
		}
		return r.schema.PossibleTypes(t.Name), nil
	case "enumValues":
		if t.Kind != schema.TypeKindEnum {
			return nil, nil
		}
		return lo.Filter(t.EnumValues, func(ev *schema.EnumValue, _ int) bool {
			return includeDeprecated || !ev.IsDeprecated
		}), nil
	case "inputFields":
		if t.Kind != schema.TypeKindInputObject {
			return nil, nil
		}
		return filterInputValues(t.InputFields, includeDeprecated), nil
	case "isOneOf":
		if t.Kind != schema.TypeKindInputObject {
			return nil, nil
		}
		return t.OneOf, nil
	case "ofType":
		// Named types never wrap another type.
		return nil, nil
	}
	return nil, fmt.Errorf("unknown field __Type.%s", field)
}

// resolveTypeRefField serves __Type for a type reference. Wrappers expose
// kind and ofType; a named reference behaves exactly like its definition.
func (r *Runtime) resolveTypeRefField(tr *schema.TypeRef, field string, args value.Arguments) (any, error) {
	if tr.Kind == schema.TypeRefKindNamed {
		t := r.schema.Type(tr.Named)
		if t == nil {
			return nil, fmt.Errorf("unknown type %s", tr.Named)
		}
		return r.resolveTypeField(t, field, args)
	}
	switch field {
	case "kind":
		return string(tr.Kind), nil
	case "ofType":
		return tr.OfType, nil
	case "name", "description", "specifiedByURL", "fields", "interfaces", "possibleTypes", "enumValues", "inputFields", "isOneOf":
		return nil, nil
	}
	return nil, fmt.Errorf("unknown field __Type.%s", field)
}

func (r *Runtime) namedTypes(names []string) []*schema.Type {
	out := make([]*schema.Type, 0, len(names))
	for _, name := range names {
		if t := r.schema.Type(name); t != nil {
			out = append(out, t)
		}
	}
	return out
}

func resolveFieldField(f *schema.Field, field string, args value.Arguments) (any, error) {
	switch field {
	case "name":
		return f.Name, nil
	case "description":
		return optional(f.Description), nil
	case "args":
		return filterInputValues(f.Arguments, args.Bool("includeDeprecated")), nil
	case "type":
		return f.Type, nil
	case "isDeprecated":
		return f.IsDeprecated, nil
	case "deprecationReason":
		return deprecationReason(f.IsDeprecated, f.DeprecationReason), nil
	}
	return nil, fmt.Errorf("unknown field __Field.%s", field)
}

func resolveInputValueField(iv *schema.InputValue, field string) (any, error) {
	switch field {
	case "name":
		return iv.Name, nil
	case "description":
		return optional(iv.Description), nil
	case "type":
		return iv.Type, nil
	case "defaultValue":
		// The literal text of the default, e.g. "123" or "{a: 1}".
		if iv.DefaultValue == nil {
			return nil, nil
		}
		return iv.DefaultValue.String(), nil
	case "isDeprecated":
		return iv.IsDeprecated, nil
	case "deprecationReason":
		return deprecationReason(iv.IsDeprecated, iv.DeprecationReason), nil
	}
	return nil, fmt.Errorf("unknown field __InputValue.%s", field)
}

func resolveEnumValueField(ev *schema.EnumValue, field string) (any, error) {
	switch field {
	case "name":
		return ev.Name, nil
	case "description":
		return optional(ev.Description), nil
	case "isDeprecated":
		return ev.IsDeprecated, nil
	case "deprecationReason":
		return deprecationReason(ev.IsDeprecated, ev.DeprecationReason), nil
	}
	return nil, fmt.Errorf("unknown field __EnumValue.%s", field)
}

func resolveDirectiveField(d *schema.Directive, field string, args value.Arguments) (any, error) {
	switch field {
	case "name":
		return d.Name, nil
	case "description":
		return optional(d.Description), nil
	case "isRepeatable":
		return d.IsRepeatable, nil
	case "locations":
		return d.Locations, nil
	case "args":
		return filterInputValues(d.Arguments, args.Bool("includeDeprecated")), nil
	}
	return nil, fmt.Errorf("unknown field __Directive.%s", field)
}

func filterInputValues(ivs []*schema.InputValue, includeDeprecated bool) []*schema.InputValue {
	return lo.Filter(ivs, func(iv *schema.InputValue, _ int) bool {
		return includeDeprecated || !iv.IsDeprecated
	})
}

func deprecationReason(deprecated bool, reason string) any {
	if !deprecated {
		return nil
	}
	return reason
}

// optional maps an empty description to null.
func optional(s string) any {
	if s == "" {
		return nil
	}
	return s
}
