package validation

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	language "github.com/hanpama/gqlcore/internal/language"
	schema "github.com/hanpama/gqlcore/internal/schema"
)

const testSDL = `
	interface Pet { name: String }
	type Dog implements Pet {
		name: String
		nickname: String
		barks: Boolean
		doesKnowCommand(dogCommand: DogCommand!): Boolean
		isHousetrained(atOtherHomes: Boolean = true): Boolean
		owner: Human
	}
	type Cat implements Pet { name: String meows: Boolean }
	union CatOrDog = Cat | Dog
	type Human { name(surname: Boolean): String pets: [Pet] relatives: [Human] }
	enum DogCommand { SIT HEEL DOWN }
	input ComplexInput { requiredField: Boolean! intField: Int }
	type Query {
		dog: Dog
		human(id: ID): Human
		pet: Pet
		catOrDog: CatOrDog
		complex(arg: ComplexInput): Boolean
		multiple(req1: Int!, req2: Int!, opt: Int = 0): String
	}
	type Mutation { mutateDog: Dog }
`

func testSchema(t *testing.T) *schema.Schema {
	t.Helper()
	sch, err := schema.BuildFromSDL(testSDL)
	require.NoError(t, err)
	return sch
}

func validate(t *testing.T, query string, rules ...Rule) []RuleError {
	t.Helper()
	doc, err := language.ParseQuery(query)
	require.NoError(t, err)
	return ValidateWith(testSchema(t), doc, rules...)
}

func messages(errs []RuleError) []string {
	return lo.Map(errs, func(e RuleError, _ int) string { return e.Message })
}

func expectPasses(t *testing.T, rule Rule, query string) {
	t.Helper()
	require.Empty(t, validate(t, query, rule))
}

func expectMessages(t *testing.T, rule Rule, query string, want ...string) {
	t.Helper()
	if diff := cmp.Diff(want, messages(validate(t, query, rule)), cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func loc(line, column int) language.SourcePosition {
	return language.SourcePosition{Line: line, Column: column}
}

var ignoreOffset = cmpopts.IgnoreFields(language.SourcePosition{}, "Offset")

func TestLoneAnonymousOperation(t *testing.T) {
	const msg = "This anonymous operation must be the only defined operation"

	t.Run("no operations", func(t *testing.T) {
		expectPasses(t, LoneAnonymousOperation, `
          fragment fragA on Dog {
            name
          }
        `)
	})
	t.Run("one anonymous operation", func(t *testing.T) {
		expectPasses(t, LoneAnonymousOperation, `
          {
            dog { name }
          }
        `)
	})
	t.Run("multiple named operations", func(t *testing.T) {
		expectPasses(t, LoneAnonymousOperation, `
          query Foo { dog { name } }
          query Bar { dog { name } }
        `)
	})
	t.Run("anonymous operation with fragment", func(t *testing.T) {
		expectPasses(t, LoneAnonymousOperation, `
          {
            ...Foo
          }
          fragment Foo on Query {
            dog { name }
          }
        `)
	})

	// Pattern: Result comparison
	t.Run("multiple anonymous operations", func(t *testing.T) {
		got := validate(t, `
          {
            fieldA
          }
          {
            fieldB
          }
        `, LoneAnonymousOperation)
		want := []RuleError{
			{Message: msg, Locations: []language.SourcePosition{{Offset: 11, Line: 2, Column: 11}}},
			{Message: msg, Locations: []language.SourcePosition{{Offset: 54, Line: 5, Column: 11}}},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("errors mismatch (-want +got):\n%s", diff)
		}
	})

	// Pattern: Result comparison
	t.Run("anonymous operation with a mutation", func(t *testing.T) {
		got := validate(t, `
          {
            fieldA
          }
          mutation Foo {
            fieldB
          }
        `, LoneAnonymousOperation)
		want := []RuleError{
			{Message: msg, Locations: []language.SourcePosition{{Offset: 11, Line: 2, Column: 11}}},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("errors mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestUniqueOperationNames(t *testing.T) {
	expectPasses(t, UniqueOperationNames, `query A { dog { name } } query B { dog { name } }`)

	got := validate(t, "query A { dog { name } }\nmutation A { mutateDog { name } }", UniqueOperationNames)
	want := []RuleError{{
		Message:   `There can be only one operation named "A".`,
		Locations: []language.SourcePosition{loc(1, 1), loc(2, 1)},
	}}
	if diff := cmp.Diff(want, got, ignoreOffset); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestFragmentRules(t *testing.T) {
	t.Run("known fragment names", func(t *testing.T) {
		expectMessages(t, KnownFragmentNames, `
			{ dog { ...DogFields ...Missing } }
			fragment DogFields on Dog { name }
		`, `Unknown fragment "Missing".`)
	})
	t.Run("unused fragments", func(t *testing.T) {
		expectMessages(t, NoUnusedFragments, `
			query A { dog { ...Used } }
			fragment Used on Dog { ...Nested }
			fragment Nested on Dog { name }
			fragment Unused on Dog { name }
			fragment AlsoUnused on Cat { meows }
		`, `Fragment "Unused" is never used.`, `Fragment "AlsoUnused" is never used.`)
	})
	t.Run("unique fragment names", func(t *testing.T) {
		expectMessages(t, UniqueFragmentNames, `
			{ dog { ...F } }
			fragment F on Dog { name }
			fragment F on Dog { barks }
		`, `There can be only one fragment named "F".`)
	})
	t.Run("fragments on composite types", func(t *testing.T) {
		expectMessages(t, FragmentsOnCompositeTypes, `
			{ dog { ...OnDog ... on Boolean { name } } }
			fragment OnDog on Dog { name }
			fragment OnEnum on DogCommand { name }
		`,
			`Fragment cannot condition on non composite type "Boolean".`,
			`Fragment "OnEnum" cannot condition on non composite type "DogCommand".`,
		)
	})
	t.Run("fragment cycles", func(t *testing.T) {
		expectMessages(t, NoFragmentCycles, `
			{ dog { ...A } }
			fragment A on Dog { ...B }
			fragment B on Dog { ...C }
			fragment C on Dog { ...A name }
			fragment Self on Dog { ...Self }
		`,
			`Cannot spread fragment "A" within itself via "B", "C".`,
			`Cannot spread fragment "Self" within itself.`,
		)
	})
	t.Run("no cycle through shared fragments", func(t *testing.T) {
		expectPasses(t, NoFragmentCycles, `
			{ dog { ...A ...B } }
			fragment A on Dog { ...B }
			fragment B on Dog { name }
		`)
	})
}

func TestTypeRules(t *testing.T) {
	t.Run("known type names", func(t *testing.T) {
		expectMessages(t, KnownTypeNames, `
			query($a: [Unknown!], $b: ID) { dog { ... on Robot { name } ...F } }
			fragment F on Droid { name }
		`, `Unknown type "Unknown".`, `Unknown type "Robot".`, `Unknown type "Droid".`)
	})
	t.Run("variables are input types", func(t *testing.T) {
		expectMessages(t, VariablesAreInputTypes, `
			query($a: Dog, $b: [Pet!]!, $c: ComplexInput, $d: DogCommand) { dog { name } }
		`, `Variable "$a" cannot be non-input type "Dog".`, `Variable "$b" cannot be non-input type "[Pet!]!".`)
	})
}

func TestFieldRules(t *testing.T) {
	t.Run("fields on correct type", func(t *testing.T) {
		got := validate(t, "{\n  dog { name meowVolume }\n  catOrDog { name __typename ... on Cat { meows } }\n}", FieldsOnCorrectType)
		want := []RuleError{
			{Message: `Cannot query field "meowVolume" on type "Dog".`, Locations: []language.SourcePosition{loc(2, 14)}},
			{Message: `Cannot query field "name" on type "CatOrDog".`, Locations: []language.SourcePosition{loc(3, 14)}},
		}
		if diff := cmp.Diff(want, got, ignoreOffset); diff != "" {
			t.Fatalf("errors mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("meta fields", func(t *testing.T) {
		expectPasses(t, FieldsOnCorrectType, `{ __typename __schema { queryType { name } } __type(name: "Dog") { name } }`)
	})
	t.Run("scalar leafs", func(t *testing.T) {
		expectMessages(t, ScalarLeafs, `{ dog { name { x } } human }`,
			`Field "name" must not have a selection since type "String" has no subfields.`,
			`Field "human" of type "Human" must have a selection of subfields. Did you mean "human { ... }"?`,
		)
	})
}

func TestArgumentRules(t *testing.T) {
	t.Run("known argument names", func(t *testing.T) {
		expectMessages(t, KnownArgumentNames, `{
			dog { isHousetrained(atOtherHomes: true, wrong: 1) @skip(if: false, unless: true) @unknown(x: 1) }
			human(id: 1) { name(surname: true) }
		}`,
			`Unknown argument "wrong" on field "Dog.isHousetrained".`,
			`Unknown argument "unless" on directive "@skip".`,
		)
	})
	t.Run("unique argument names", func(t *testing.T) {
		expectMessages(t, UniqueArgumentNames, `{ multiple(req1: 1, req2: 2, req1: 3) dog @include(if: true, if: false) { name } }`,
			`There can be only one argument named "req1".`,
			`There can be only one argument named "if".`,
		)
	})
	t.Run("provided non-null arguments", func(t *testing.T) {
		expectMessages(t, ProvidedNonNullArguments, `{
			multiple(req2: 1)
			dog { isHousetrained doesKnowCommand(dogCommand: SIT) name @skip }
		}`,
			`Field "multiple" argument "req1" of type "Int!" is required, but it was not provided.`,
			`Directive "@skip" argument "if" of type "Boolean!" is required, but it was not provided.`,
		)
	})
}

func TestVariableRules(t *testing.T) {
	t.Run("no undefined variables", func(t *testing.T) {
		expectMessages(t, NoUndefinedVariables, `
			query Q($a: Int) { multiple(req1: $a, req2: $b) dog { ...F } }
			fragment F on Dog { isHousetrained(atOtherHomes: $c) }
		`, `Variable "$b" is not defined by operation "Q".`, `Variable "$c" is not defined by operation "Q".`)
	})
	t.Run("undefined in anonymous operation", func(t *testing.T) {
		got := validate(t, "{\n  human(id: $id) { name }\n}", NoUndefinedVariables)
		want := []RuleError{{
			Message:   `Variable "$id" is not defined.`,
			Locations: []language.SourcePosition{loc(2, 13), loc(1, 1)},
		}}
		if diff := cmp.Diff(want, got, ignoreOffset); diff != "" {
			t.Fatalf("errors mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("no unused variables", func(t *testing.T) {
		expectMessages(t, NoUnusedVariables, `
			query Q($a: Boolean, $b: Boolean, $c: ID) { dog @include(if: $a) { ...F } }
			fragment F on Dog { isHousetrained(atOtherHomes: $b) }
			query R($d: Int) { dog { name } }
		`, `Variable "$c" is never used in operation "Q".`, `Variable "$d" is never used in operation "R".`)
	})
	t.Run("unique variable names", func(t *testing.T) {
		got := validate(t, "query($x: Int, $x: Int) { multiple(req1: $x, req2: 1) }", UniqueVariableNames)
		want := []RuleError{{
			Message:   `There can be only one variable named "$x".`,
			Locations: []language.SourcePosition{loc(1, 7), loc(1, 16)},
		}}
		if diff := cmp.Diff(want, got, ignoreOffset); diff != "" {
			t.Fatalf("errors mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestKnownDirectives(t *testing.T) {
	expectMessages(t, KnownDirectives, `
		query Q @skip(if: true) { dog @include(if: true) { name @unknown } }
	`, `Directive "@skip" may not be used on QUERY.`, `Unknown directive "@unknown".`)
}

func TestValidate_DefaultCatalogue(t *testing.T) {
	sch := testSchema(t)

	t.Run("valid document", func(t *testing.T) {
		doc, err := language.ParseQuery(`
			query Q($cmd: DogCommand!, $skip: Boolean = false) {
				dog {
					...DogFields
					doesKnowCommand(dogCommand: $cmd)
					owner @skip(if: $skip) { name(surname: true) pets { name ... on Cat { meows } } }
				}
				catOrDog { __typename ... on Dog { barks } }
				complex(arg: {requiredField: true, intField: 3})
			}
			fragment DogFields on Dog { name nickname }
		`)
		require.NoError(t, err)
		require.Empty(t, Validate(sch, doc))
	})

	t.Run("errors are grouped by rule", func(t *testing.T) {
		doc, err := language.ParseQuery(`
			{ dog { unknownA } }
			{ dog { unknownB } }
		`)
		require.NoError(t, err)
		got := messages(Validate(sch, doc))
		require.Equal(t, []string{
			"This anonymous operation must be the only defined operation",
			"This anonymous operation must be the only defined operation",
			`Cannot query field "unknownA" on type "Dog".`,
			`Cannot query field "unknownB" on type "Dog".`,
		}, got)
	})

	t.Run("idempotent", func(t *testing.T) {
		doc, err := language.ParseQuery(`query($v: Int) { dog { ...Missing } } fragment X on Dog { name }`)
		require.NoError(t, err)
		first := Validate(sch, doc)
		require.NotEmpty(t, first)
		require.Equal(t, first, Validate(sch, doc))
	})

	t.Run("gql error conversion", func(t *testing.T) {
		e := RuleError{Message: "boom", Locations: []language.SourcePosition{loc(3, 4)}}
		gqlErr := e.ToGQLError()
		require.Equal(t, "boom", gqlErr.Message)
		require.Len(t, gqlErr.Locations, 1)
		require.Equal(t, 3, gqlErr.Locations[0].Line)
		require.Equal(t, 4, gqlErr.Locations[0].Column)
	})
}

// Pattern: Result comparison
func TestValidatorContext_TypeInfo(t *testing.T) {
	doc, err := language.ParseQuery(`
		query($f: ComplexInput) { dog { doesKnowCommand(dogCommand: SIT) } complex(arg: {requiredField: true, intField: 1}) }
	`)
	require.NoError(t, err)

	rec := &typeInfoRecorder{}
	ValidateWith(testSchema(t), doc, func() Visitor { return rec })

	want := []string{
		"var f: ComplexInput",
		"field dog on Query: Dog",
		"field doesKnowCommand on Dog: Boolean",
		"value SIT: DogCommand!",
		"field complex on Query: Boolean",
		"value {...}: ComplexInput",
		"value true: Boolean!",
		"value 1: Int",
	}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Fatalf("type info mismatch (-want +got):\n%s", diff)
	}
}

type typeInfoRecorder struct {
	BaseVisitor
	events []string
}

func (r *typeInfoRecorder) EnterVariableDefinition(ctx *ValidatorContext, vd *language.VariableDefinition) {
	r.events = append(r.events, "var "+vd.Variable+": "+ctx.VariableType(vd.Variable).String())
}

func (r *typeInfoRecorder) EnterField(ctx *ValidatorContext, f *language.Field) {
	r.events = append(r.events, "field "+f.Name+" on "+ctx.ParentType().Name+": "+ctx.FieldDef().Type.String())
}

func (r *typeInfoRecorder) EnterValue(ctx *ValidatorContext, v *language.Value) {
	text := v.Raw
	if v.Kind == language.ObjectValue {
		text = "{...}"
	}
	r.events = append(r.events, "value "+text+": "+ctx.InputType().String())
}

func TestOverlappingFieldsCanBeMerged(t *testing.T) {
	const suffix = ". Use different aliases on the fields to fetch both if this was intentional."

	t.Run("identical fields", func(t *testing.T) {
		expectPasses(t, OverlappingFieldsCanBeMerged, `{ dog { name name } }`)
	})
	t.Run("identical fields with identical arguments", func(t *testing.T) {
		expectPasses(t, OverlappingFieldsCanBeMerged, `
          { dog { doesKnowCommand(dogCommand: SIT) doesKnowCommand(dogCommand: SIT) } }
        `)
	})
	t.Run("different aliases", func(t *testing.T) {
		expectPasses(t, OverlappingFieldsCanBeMerged, `
          { dog { a: doesKnowCommand(dogCommand: SIT) b: doesKnowCommand(dogCommand: HEEL) } }
        `)
	})
	t.Run("same alias on exclusive object types", func(t *testing.T) {
		expectPasses(t, OverlappingFieldsCanBeMerged, `
          { pet { ... on Dog { label: nickname } ... on Cat { label: name } } }
        `)
	})
	t.Run("fragment and field agree", func(t *testing.T) {
		expectPasses(t, OverlappingFieldsCanBeMerged, `
          { dog { name ...N } }
          fragment N on Dog { name }
        `)
	})

	// Pattern: Result comparison
	t.Run("alias over differing arguments", func(t *testing.T) {
		got := validate(t, "{ dog {\n  a: doesKnowCommand(dogCommand: SIT)\n  a: doesKnowCommand(dogCommand: HEEL)\n} }", OverlappingFieldsCanBeMerged)
		want := []RuleError{{
			Message:   `Fields "a" conflict because they have differing arguments` + suffix,
			Locations: []language.SourcePosition{loc(2, 3), loc(3, 3)},
		}}
		if diff := cmp.Diff(want, got, ignoreOffset); diff != "" {
			t.Fatalf("errors mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("alias over different fields", func(t *testing.T) {
		expectMessages(t, OverlappingFieldsCanBeMerged, `{ dog { n: name n: nickname } }`,
			`Fields "n" conflict because "name" and "nickname" are different fields`+suffix)
	})
	t.Run("conflict through a fragment", func(t *testing.T) {
		expectMessages(t, OverlappingFieldsCanBeMerged, `
          { dog { x: name ...F } }
          fragment F on Dog { x: barks }
        `, `Fields "x" conflict because "name" and "barks" are different fields`+suffix)
	})
	t.Run("conflicting types on exclusive object types", func(t *testing.T) {
		expectMessages(t, OverlappingFieldsCanBeMerged, `
          { pet { ... on Dog { v: barks } ... on Cat { v: name } } }
        `, `Fields "v" conflict because they return conflicting types Boolean and String`+suffix)
	})
	t.Run("conflicting subfields", func(t *testing.T) {
		expectMessages(t, OverlappingFieldsCanBeMerged, `
          { dog { owner { n: name } owner { n: pets { name } } } }
        `, `Fields "owner" conflict because subfields "n" conflict because "name" and "pets" are different fields`+suffix)
	})
}
