package value_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	language "github.com/hanpama/gqlcore/internal/language"
	value "github.com/hanpama/gqlcore/internal/value"
)

func TestValue_MarshalJSON_KeepsFieldOrder(t *testing.T) {
	v := value.Object(
		value.F("zeta", value.Int(1)),
		value.F("alpha", value.List(value.String("a"), value.Null())),
		value.F("mid", value.Object(value.F("b", value.Boolean(true)), value.F("a", value.Float(1.5)))),
	)
	got, err := json.Marshal(v)
	require.NoError(t, err)
	want := `{"zeta":1,"alpha":["a",null],"mid":{"b":true,"a":1.5}}`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Fatalf("JSON mismatch (-want +got):\n%s", diff)
	}
}

func TestValue_Equal(t *testing.T) {
	a := value.Object(value.F("a", value.Int(1)), value.F("b", value.Int(2)))
	b := value.Object(value.F("b", value.Int(2)), value.F("a", value.Int(1)))
	require.True(t, a.Equal(a))
	require.False(t, a.Equal(b), "field order is significant")
	require.True(t, value.Scalar(nil).IsNull())
	require.Empty(t, cmp.Diff(value.List(value.Int(1)), value.List(value.Int(1))))
}

func TestObjectBuilder_SetReplacesInPlace(t *testing.T) {
	b := value.NewObjectBuilder(2)
	b.Set("x", value.Int(1)).Set("y", value.Int(2)).Set("x", value.Int(3))
	want := value.Object(value.F("x", value.Int(3)), value.F("y", value.Int(2)))
	if diff := cmp.Diff(want, b.Build()); diff != "" {
		t.Fatalf("Value mismatch (-want +got):\n%s", diff)
	}
}

func parseArgument(t *testing.T, literal string) *language.Value {
	t.Helper()
	doc, err := language.ParseQuery("{ f(a: " + literal + ") }")
	require.NoError(t, err)
	field := doc.Operations[0].SelectionSet[0].(*language.Field)
	return field.Arguments[0].Value
}

// Pattern: Result comparison
func TestInputValue_FromAST_String(t *testing.T) {
	cases := []struct {
		name    string
		literal string
		want    string
	}{
		{"int", "123", "123"},
		{"negative int", "-7", "-7"},
		{"float", "1.5", "1.5"},
		{"integral float", "2.0", "2.0"},
		{"string", `"abc"`, `"abc"`},
		{"escaped string", `"a\"b\nc"`, `"a\"b\nc"`},
		{"boolean", "true", "true"},
		{"null", "null", "null"},
		{"enum", "RED", "RED"},
		{"variable", "$v", "$v"},
		{"list", "[1, 2, 3]", "[1, 2, 3]"},
		{"object", `{b: 1, a: "x"}`, `{b: 1, a: "x"}`},
		{"nested", `{list: [{x: null}], e: ON}`, `{list: [{x: null}], e: ON}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			iv, err := value.FromAST(parseArgument(t, tc.literal))
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, iv.String()); diff != "" {
				t.Fatalf("literal mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInputValue_Resolve(t *testing.T) {
	iv := value.ObjectInput(
		value.IF("a", value.VariableInput("x")),
		value.IF("b", value.ListInput(value.IntInput(1), value.VariableInput("y"))),
	)

	t.Run("substitutes bound variables", func(t *testing.T) {
		got, err := iv.Resolve(value.Variables{
			"x": value.StringInput("hello"),
			"y": value.NullInput(),
		})
		require.NoError(t, err)
		want := value.ObjectInput(
			value.IF("a", value.StringInput("hello")),
			value.IF("b", value.ListInput(value.IntInput(1), value.NullInput())),
		)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("InputValue mismatch (-want +got):\n%s", diff)
		}
		require.Equal(t, []string{"x", "y"}, iv.ReferencedVariables())
	})

	t.Run("unbound variable", func(t *testing.T) {
		_, err := iv.Resolve(value.Variables{"x": value.IntInput(1)})
		require.ErrorIs(t, err, value.ErrUnboundVariable)
	})

	t.Run("bindings do not nest", func(t *testing.T) {
		_, err := value.VariableInput("x").Resolve(value.Variables{"x": value.VariableInput("y"), "y": value.IntInput(1)})
		require.Error(t, err)
	})
}

func TestVariablesFromJSON_KeepsObjectOrder(t *testing.T) {
	vars, err := value.VariablesFromJSON([]byte(`{"input": {"z": 1, "a": [true, null, 2.5], "m": "s"}, "n": 3}`))
	require.NoError(t, err)
	want := value.Variables{
		"input": value.ObjectInput(
			value.IF("z", value.IntInput(1)),
			value.IF("a", value.ListInput(value.BooleanInput(true), value.NullInput(), value.FloatInput(2.5))),
			value.IF("m", value.StringInput("s")),
		),
		"n": value.IntInput(3),
	}
	if diff := cmp.Diff(want, vars); diff != "" {
		t.Fatalf("Variables mismatch (-want +got):\n%s", diff)
	}

	empty, err := value.VariablesFromJSON(nil)
	require.NoError(t, err)
	require.Empty(t, empty)

	_, err = value.VariablesFromJSON([]byte(`[1]`))
	require.Error(t, err)
}

func TestFromGo(t *testing.T) {
	got, err := value.FromGo(map[string]any{
		"b":    []any{1, "two"},
		"a":    json.Number("4"),
		"c":    json.Number("4.5"),
		"none": nil,
	})
	require.NoError(t, err)
	want := value.ObjectInput(
		value.IF("a", value.IntInput(4)),
		value.IF("b", value.ListInput(value.IntInput(1), value.StringInput("two"))),
		value.IF("c", value.FloatInput(4.5)),
		value.IF("none", value.NullInput()),
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("InputValue mismatch (-want +got):\n%s", diff)
	}

	_, err = value.FromGo(struct{}{})
	require.Error(t, err)
}
