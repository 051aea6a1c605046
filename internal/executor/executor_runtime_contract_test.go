package executor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	value "github.com/hanpama/gqlcore/internal/value"
)

type defaultName struct {
	FieldOne string
	FieldTwo string
}

// Pattern: Calls comparison
func TestRuntimeContract_InputObjectArgument_Calls(t *testing.T) {
	sch := mustBuildSchema(t, `
		input DefaultName { fieldOne: String! fieldTwo: String! }
		type Query { test_field(a1: DefaultName): String }
	`)
	var decoded []defaultName
	rt := NewMockRuntime(map[string]MockResolver{
		"Query.test_field": func(ctx context.Context, source any, args value.Arguments) (any, error) {
			var dn defaultName
			if err := args.Decode("a1", &dn); err != nil {
				return nil, err
			}
			decoded = append(decoded, dn)
			return dn.FieldOne, nil
		},
	})
	exec := NewExecutor(rt, sch)

	gotRes := execute(t, exec, `query($v: DefaultName) {
		lit: test_field(a1: {fieldOne: "x", fieldTwo: "y"})
		byVar: test_field(a1: $v)
	}`, value.Variables{"v": value.ObjectInput(
		value.IF("fieldTwo", value.StringInput("b")),
		value.IF("fieldOne", value.StringInput("a")),
	)})

	assertResult(t, &ExecutionResult{Data: obj(
		value.F("lit", value.String("x")),
		value.F("byVar", value.String("a")),
	)}, gotRes)
	require.Equal(t, []defaultName{{"x", "y"}, {"a", "b"}}, decoded)
	assertCalls(t, []Call{
		{Kind: "sync", ObjectType: "Query", Field: "test_field", Args: map[string]any{"a1": map[string]any{"fieldOne": "x", "fieldTwo": "y"}}},
		{Kind: "sync", ObjectType: "Query", Field: "test_field", Args: map[string]any{"a1": map[string]any{"fieldOne": "a", "fieldTwo": "b"}}},
	}, rt.GetCalls())
}

func TestRuntimeContract_ArgumentCoercion(t *testing.T) {
	sch := mustBuildSchema(t, `
		enum Color { RED GREEN }
		input Filter { name: String limit: Int = 10 tags: [String] }
		type Query {
			f(
				n: Int = 5
				ratio: Float
				id: ID
				color: Color = RED
				filter: Filter
				list: [Int]
			): String
		}
	`)
	var got value.Arguments
	rt := NewMockRuntime(map[string]MockResolver{
		"Query.f": func(ctx context.Context, source any, args value.Arguments) (any, error) {
			got = args
			return "ok", nil
		},
	})
	exec := NewExecutor(rt, sch)

	cases := []struct {
		name  string
		query string
		vars  value.Variables
		want  value.Arguments
	}{
		{
			name:  "argument defaults",
			query: `{ f }`,
			want:  value.Arguments{"n": value.IntInput(5), "color": value.EnumInput("RED")},
		},
		{
			name:  "literal coercion",
			query: `{ f(n: 1, ratio: 2, id: 7, color: GREEN, list: 3) }`,
			want: value.Arguments{
				"n":     value.IntInput(1),
				"ratio": value.FloatInput(2),
				"id":    value.StringInput("7"),
				"color": value.EnumInput("GREEN"),
				"list":  value.ListInput(value.IntInput(3)),
			},
		},
		{
			name:  "input object defaults in declaration order",
			query: `{ f(filter: {tags: "a", name: "x"}) }`,
			want: value.Arguments{
				"n":     value.IntInput(5),
				"color": value.EnumInput("RED"),
				"filter": value.ObjectInput(
					value.IF("name", value.StringInput("x")),
					value.IF("limit", value.IntInput(10)),
					value.IF("tags", value.ListInput(value.StringInput("a"))),
				),
			},
		},
		{
			name:  "unbound nested variables",
			query: `query($x: Int, $s: String) { f(list: [1, $x], filter: {name: $s}) }`,
			want: value.Arguments{
				"n":      value.IntInput(5),
				"color":  value.EnumInput("RED"),
				"list":   value.ListInput(value.IntInput(1), value.NullInput()),
				"filter": value.ObjectInput(value.IF("limit", value.IntInput(10))),
			},
		},
		{
			name:  "variables override defaults",
			query: `query($n: Int, $c: Color) { f(n: $n, color: $c) }`,
			vars:  value.Variables{"n": value.FloatInput(9), "c": value.StringInput("GREEN")},
			want:  value.Arguments{"n": value.IntInput(9), "color": value.EnumInput("GREEN")},
		},
		{
			name:  "explicit null is kept",
			query: `{ f(n: null) }`,
			want:  value.Arguments{"n": value.NullInput(), "color": value.EnumInput("RED")},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got = nil
			res := execute(t, exec, tc.query, tc.vars)
			require.Empty(t, res.Errors)
			require.Equal(t, tc.want.Names(), got.Names())
			for name, want := range tc.want {
				require.True(t, want.Equal(got[name]), "argument %s: want %s, got %s", name, want, got[name])
			}
		})
	}
}
