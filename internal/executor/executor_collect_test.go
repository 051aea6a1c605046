package executor

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	language "github.com/hanpama/gqlcore/internal/language"
	value "github.com/hanpama/gqlcore/internal/value"
)

func responseNames(fields []collectedField) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.ResponseName
	}
	return out
}

// Pattern: Result comparison
func TestCollectFields_And_Directives_Result(t *testing.T) {
	t.Run("Fragment merging and typename", func(t *testing.T) {
		sch := mustBuildSchema(t, `type Query { a: String }`)
		doc := mustParseQuery(t, `{
			a
			...F1
			...F2
		}
		fragment F1 on Query { a __typename }
		fragment F2 on Query { __typename }
		`)
		state := &executionState{schema: sch, document: doc, variableValues: value.Variables{}}
		got := collectFields(state, sch.Type("Query"), doc.Operations[0].SelectionSet).orderedFields()

		opSel := doc.Operations[0].SelectionSet
		frag1 := doc.Fragments.ForName("F1").SelectionSet
		frag2 := doc.Fragments.ForName("F2").SelectionSet
		want := []collectedField{
			{ResponseName: "a", Fields: []*language.Field{opSel[0].(*language.Field), frag1[0].(*language.Field)}},
			{ResponseName: "__typename", Fields: []*language.Field{frag1[1].(*language.Field), frag2[0].(*language.Field)}},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("collected fields mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Directives with literals and variables", func(t *testing.T) {
		sch := mustBuildSchema(t, `type Query { a: String b: String c: String d: String e: String }`)
		doc := mustParseQuery(t, `query($yes: Boolean!, $no: Boolean!) {
			a
			b @skip(if: true)
			c @include(if: false)
			d @skip(if: $no) @include(if: $yes)
			e @include(if: $no)
		}`)
		state := &executionState{schema: sch, document: doc, variableValues: value.Variables{
			"yes": value.BooleanInput(true),
			"no":  value.BooleanInput(false),
		}}
		got := collectFields(state, sch.Type("Query"), doc.Operations[0].SelectionSet).orderedFields()
		if diff := cmp.Diff([]string{"a", "d"}, responseNames(got)); diff != "" {
			t.Fatalf("collected fields mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Type conditions on abstract types", func(t *testing.T) {
		sch := mustBuildSchema(t, `
			interface Node { id: ID! }
			type User implements Node { id: ID! name: String }
			type Post implements Node { id: ID! title: String }
			union Result = User | Post
			type Query { node: Node }
		`)
		doc := mustParseQuery(t, `{
			node {
				... on Node { id }
				... on Result { alias: id }
				... on Post { title }
				...U
				...P
			}
		}
		fragment U on User { name }
		fragment P on Post { title }
		`)
		state := &executionState{schema: sch, document: doc, variableValues: value.Variables{}}
		node := doc.Operations[0].SelectionSet[0].(*language.Field)
		got := collectFields(state, sch.Type("User"), node.SelectionSet).orderedFields()
		if diff := cmp.Diff([]string{"id", "alias", "name"}, responseNames(got)); diff != "" {
			t.Fatalf("collected fields mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Fragment spread visited once", func(t *testing.T) {
		sch := mustBuildSchema(t, `type Query { a: String b: String }`)
		doc := mustParseQuery(t, `{ ...F b ...F } fragment F on Query { a }`)
		state := &executionState{schema: sch, document: doc, variableValues: value.Variables{}}
		got := collectFields(state, sch.Type("Query"), doc.Operations[0].SelectionSet).orderedFields()
		if diff := cmp.Diff([]string{"a", "b"}, responseNames(got)); diff != "" {
			t.Fatalf("collected fields mismatch (-want +got):\n%s", diff)
		}
		if len(got[0].Fields) != 1 {
			t.Fatalf("fragment fields collected %d times", len(got[0].Fields))
		}
	})
}
