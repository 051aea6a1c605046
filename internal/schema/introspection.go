package schema

import value "github.com/hanpama/gqlcore/internal/value"

// introspectionTypes returns fresh definitions of the types that describe a
// schema to itself.
func introspectionTypes() []*Type {
	return []*Type{
		schemaType(),
		typeType(),
		fieldType(),
		inputValueType(),
		enumValueType(),
		directiveType(),
		typeKindEnum(),
		directiveLocationEnum(),
	}
}

func includeDeprecatedArg() *InputValue {
	return NewInputValue("includeDeprecated", "", NamedType("Boolean")).SetDefault(value.BooleanInput(false))
}

// schemaType returns the __Schema introspection type definition
func schemaType() *Type {
	return &Type{
		Name:        "__Schema",
		Kind:        TypeKindObject,
		Description: "A GraphQL Schema defines the capabilities of a GraphQL server.",
		Fields: []*Field{
			{
				Name:        "types",
				Description: "A list of all types supported by this server.",
				Type:        NonNullType(ListType(NonNullType(NamedType("__Type")))),
			},
			{
				Name:        "queryType",
				Description: "The type that query operations will be rooted at.",
				Type:        NonNullType(NamedType("__Type")),
			},
			{
				Name:        "mutationType",
				Description: "If this server supports mutation, the type that mutation operations will be rooted at.",
				Type:        NamedType("__Type"),
			},
			{
				Name:        "subscriptionType",
				Description: "If this server support subscription, the type that subscription operations will be rooted at.",
				Type:        NamedType("__Type"),
			},
			{
				Name:        "directives",
				Description: "A list of all directives supported by this server.",
				Type:        NonNullType(ListType(NonNullType(NamedType("__Directive")))),
			},
			{
				Name:        "description",
				Description: "A description of the schema.",
				Type:        NamedType("String"),
			},
		},
	}
}

// typeType returns the __Type introspection type definition
func typeType() *Type {
	return &Type{
		Name:        "__Type",
		Kind:        TypeKindObject,
		Description: "The fundamental unit of any GraphQL Schema is the type.",
		Fields: []*Field{
			{
				Name:        "kind",
				Description: "The kind of type.",
				Type:        NonNullType(NamedType("__TypeKind")),
			},
			{
				Name:        "name",
				Description: "The name of the type.",
				Type:        NamedType("String"),
			},
			{
				Name:        "description",
				Description: "The description of the type.",
				Type:        NamedType("String"),
			},
			{
				Name:      "fields",
				Arguments: []*InputValue{includeDeprecatedArg()},
				Type:      ListType(NonNullType(NamedType("__Field"))),
			},
			{
				Name: "interfaces",
				Type: ListType(NonNullType(NamedType("__Type"))),
			},
			{
				Name: "possibleTypes",
				Type: ListType(NonNullType(NamedType("__Type"))),
			},
			{
				Name:      "enumValues",
				Arguments: []*InputValue{includeDeprecatedArg()},
				Type:      ListType(NonNullType(NamedType("__EnumValue"))),
			},
			{
				Name:      "inputFields",
				Arguments: []*InputValue{includeDeprecatedArg()},
				Type:      ListType(NonNullType(NamedType("__InputValue"))),
			},
			{
				Name: "ofType",
				Type: NamedType("__Type"),
			},
			{
				Name: "specifiedByURL",
				Type: NamedType("String"),
			},
			{
				Name: "isOneOf",
				Type: NamedType("Boolean"),
			},
		},
	}
}

// fieldType returns the __Field introspection type definition
func fieldType() *Type {
	return &Type{
		Name:        "__Field",
		Kind:        TypeKindObject,
		Description: "Object and Interface types are described by a list of Fields, each of which has a name, potentially a list of arguments, and a return type.",
		Fields: []*Field{
			{Name: "name", Type: NonNullType(NamedType("String"))},
			{Name: "description", Type: NamedType("String")},
			{
				Name:      "args",
				Arguments: []*InputValue{includeDeprecatedArg()},
				Type:      NonNullType(ListType(NonNullType(NamedType("__InputValue")))),
			},
			{Name: "type", Type: NonNullType(NamedType("__Type"))},
			{Name: "isDeprecated", Type: NonNullType(NamedType("Boolean"))},
			{Name: "deprecationReason", Type: NamedType("String")},
		},
	}
}

// inputValueType returns the __InputValue introspection type definition
func inputValueType() *Type {
	return &Type{
		Name:        "__InputValue",
		Kind:        TypeKindObject,
		Description: "Arguments provided to Fields or Directives and the input fields of an InputObject are represented as Input Values which describe their type and optionally a default value.",
		Fields: []*Field{
			{Name: "name", Type: NonNullType(NamedType("String"))},
			{Name: "description", Type: NamedType("String")},
			{Name: "type", Type: NonNullType(NamedType("__Type"))},
			{Name: "defaultValue", Description: "A GraphQL-formatted string representing the default value for this input value.", Type: NamedType("String")},
			{Name: "isDeprecated", Type: NonNullType(NamedType("Boolean"))},
			{Name: "deprecationReason", Type: NamedType("String")},
		},
	}
}

// enumValueType returns the __EnumValue introspection type definition
func enumValueType() *Type {
	return &Type{
		Name:        "__EnumValue",
		Kind:        TypeKindObject,
		Description: "One possible value for a given Enum. Enum values are unique values, not a placeholder for a string or numeric value.",
		Fields: []*Field{
			{Name: "name", Type: NonNullType(NamedType("String"))},
			{Name: "description", Type: NamedType("String")},
			{Name: "isDeprecated", Type: NonNullType(NamedType("Boolean"))},
			{Name: "deprecationReason", Type: NamedType("String")},
		},
	}
}

// directiveType returns the __Directive introspection type definition
func directiveType() *Type {
	return &Type{
		Name:        "__Directive",
		Kind:        TypeKindObject,
		Description: "A Directive provides a way to describe alternate runtime execution and type validation behavior in a GraphQL document.",
		Fields: []*Field{
			{Name: "name", Type: NonNullType(NamedType("String"))},
			{Name: "description", Type: NamedType("String")},
			{Name: "isRepeatable", Type: NonNullType(NamedType("Boolean"))},
			{Name: "locations", Type: NonNullType(ListType(NonNullType(NamedType("__DirectiveLocation"))))},
			{
				Name:      "args",
				Arguments: []*InputValue{includeDeprecatedArg()},
				Type:      NonNullType(ListType(NonNullType(NamedType("__InputValue")))),
			},
		},
	}
}

// typeKindEnum returns the __TypeKind enum type definition
func typeKindEnum() *Type {
	return &Type{
		Name:        "__TypeKind",
		Kind:        TypeKindEnum,
		Description: "An enum describing what kind of type a given `__Type` is.",
		EnumValues: []*EnumValue{
			{Name: "SCALAR"},
			{Name: "OBJECT"},
			{Name: "INTERFACE"},
			{Name: "UNION"},
			{Name: "ENUM"},
			{Name: "INPUT_OBJECT"},
			{Name: "LIST"},
			{Name: "NON_NULL"},
		},
	}
}

// directiveLocationEnum returns the __DirectiveLocation enum type definition
func directiveLocationEnum() *Type {
	return &Type{
		Name:        "__DirectiveLocation",
		Kind:        TypeKindEnum,
		Description: "A Directive can be adjacent to many parts of the GraphQL language, a __DirectiveLocation describes one such possible adjacencies.",
		EnumValues: []*EnumValue{
			{Name: "QUERY"},
			{Name: "MUTATION"},
			{Name: "SUBSCRIPTION"},
			{Name: "FIELD"},
			{Name: "FRAGMENT_DEFINITION"},
			{Name: "FRAGMENT_SPREAD"},
			{Name: "INLINE_FRAGMENT"},
			{Name: "VARIABLE_DEFINITION"},
			{Name: "SCHEMA"},
			{Name: "SCALAR"},
			{Name: "OBJECT"},
			{Name: "FIELD_DEFINITION"},
			{Name: "ARGUMENT_DEFINITION"},
			{Name: "INTERFACE"},
			{Name: "UNION"},
			{Name: "ENUM"},
			{Name: "ENUM_VALUE"},
			{Name: "INPUT_OBJECT"},
			{Name: "INPUT_FIELD_DEFINITION"},
		},
	}
}