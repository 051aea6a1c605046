package schema

import value "github.com/hanpama/gqlcore/internal/value"

var stringType = &Type{
	Name:        "String",
	Kind:        TypeKindScalar,
	Description: "The `String` scalar type represents textual data, represented as UTF-8 character sequences.",
}

var intType = &Type{
	Name:        "Int",
	Kind:        TypeKindScalar,
	Description: "The `Int` scalar type represents non-fractional signed whole numeric values.",
}

var floatType = &Type{
	Name:        "Float",
	Kind:        TypeKindScalar,
	Description: "The `Float` scalar type represents signed double-precision fractional values.",
}

var booleanType = &Type{
	Name:        "Boolean",
	Kind:        TypeKindScalar,
	Description: "The `Boolean` scalar type represents `true` or `false`.",
}

var idType = &Type{
	Name:        "ID",
	Kind:        TypeKindScalar,
	Description: "The `ID` scalar type represents a unique identifier, often used to refetch an object or as a key for caching.",
}

func builtinScalars() []*Type {
	return []*Type{stringType, intType, floatType, booleanType, idType}
}

// IsBuiltinScalar reports whether name is one of the five standard scalars.
func IsBuiltinScalar(name string) bool {
	switch name {
	case "String", "Int", "Float", "Boolean", "ID":
		return true
	}
	return false
}

var includeDirective = &Directive{
	Name:        "include",
	Description: "Directs the executor to include this field or fragment only when the `if` argument is true.",
	Arguments: []*InputValue{
		{
			Name:        "if",
			Description: "Included when true.",
			Type:        NonNullType(NamedType("Boolean")),
		},
	},
	Locations:    []string{"FIELD", "FRAGMENT_SPREAD", "INLINE_FRAGMENT"},
	IsRepeatable: false,
}

var skipDirective = &Directive{
	Name:        "skip",
	Description: "Directs the executor to skip this field or fragment when the `if` argument is true.",
	Arguments: []*InputValue{
		{
			Name:        "if",
			Description: "Skipped when true.",
			Type:        NonNullType(NamedType("Boolean")),
		},
	},
	Locations:    []string{"FIELD", "FRAGMENT_SPREAD", "INLINE_FRAGMENT"},
	IsRepeatable: false,
}

// DefaultDeprecationReason is used when @deprecated carries no reason.
const DefaultDeprecationReason = "No longer supported"

var deprecatedDirective = NewDirective("deprecated", "Marks an element of a GraphQL schema as no longer supported.").
	AddLocation("FIELD_DEFINITION", "ARGUMENT_DEFINITION", "INPUT_FIELD_DEFINITION", "ENUM_VALUE").
	AddArgument(NewInputValue("reason", "Explains why this element was deprecated.", NamedType("String")).
		SetDefault(value.StringInput(DefaultDeprecationReason)))

var specifiedByDirective = NewDirective("specifiedBy", "Exposes a URL that specifies the behavior of this scalar.").
	AddLocation("SCALAR").
	AddArgument(NewInputValue("url", "The URL that specifies the behavior of this scalar.", NonNullType(NamedType("String"))))

func builtinDirectives() []*Directive {
	return []*Directive{includeDirective, skipDirective, deprecatedDirective, specifiedByDirective}
}

func isBuiltinDirective(d *Directive) bool {
	switch d {
	case includeDirective, skipDirective, deprecatedDirective, specifiedByDirective:
		return true
	}
	return false
}

// Meta-fields are answered by every schema without being listed among the
// fields of the types that expose them.
var (
	TypeNameMetaField = NewField("__typename", "The name of the current Object type at runtime.", NonNullType(NamedType("String")))

	SchemaMetaField = NewField("__schema", "Access the current type schema of this server.", NonNullType(NamedType("__Schema")))

	TypeMetaField = NewField("__type", "Request the type information of a single type.", NamedType("__Type")).
		AddArgument(NewInputValue("name", "The name of the type to look up.", NonNullType(NamedType("String"))))
)
