package executor

import (
	"testing"

	"github.com/stretchr/testify/require"

	schema "github.com/hanpama/gqlcore/internal/schema"
	value "github.com/hanpama/gqlcore/internal/value"
)

func TestCoerceInputValue(t *testing.T) {
	sch := mustBuildSchema(t, `
		type Query { a: String }
		enum Color { RED }
		input Pick @oneOf { id: ID name: String }
		scalar Time
	`)

	cases := []struct {
		name    string
		in      value.InputValue
		typ     *schema.TypeRef
		want    value.InputValue
		wantErr string
	}{
		{name: "int", in: value.IntInput(3), typ: schema.NamedType("Int"), want: value.IntInput(3)},
		{name: "int out of range", in: value.IntInput(1 << 40), typ: schema.NamedType("Int"), wantErr: "Int cannot represent non 32-bit signed integer value: 1099511627776"},
		{name: "fractional float as int", in: value.FloatInput(1.5), typ: schema.NamedType("Int"), wantErr: "Int cannot represent non-integer value: 1.5"},
		{name: "boolean mismatch", in: value.IntInput(1), typ: schema.NamedType("Boolean"), wantErr: "Boolean cannot represent a non boolean value: 1"},
		{name: "string from enum literal", in: value.EnumInput("RED"), typ: schema.NamedType("String"), wantErr: "String cannot represent a non string value: RED"},
		{name: "unknown enum value", in: value.EnumInput("BLUE"), typ: schema.NamedType("Color"), wantErr: `Value BLUE does not exist in "Color" enum.`},
		{name: "custom scalar passes through", in: value.StringInput("noon"), typ: schema.NamedType("Time"), want: value.StringInput("noon")},
		{name: "nested list error", in: value.ListInput(value.IntInput(1), value.StringInput("x")), typ: schema.ListType(schema.NamedType("Int")), wantErr: `In element #1: Int cannot represent non-integer value: "x"`},
		{name: "oneOf with one key", in: value.ObjectInput(value.IF("name", value.StringInput("n"))), typ: schema.NamedType("Pick"), want: value.ObjectInput(value.IF("name", value.StringInput("n")))},
		{name: "oneOf with two keys", in: value.ObjectInput(value.IF("id", value.IntInput(1)), value.IF("name", value.StringInput("n"))), typ: schema.NamedType("Pick"), wantErr: `Exactly one key must be specified for OneOf type "Pick".`},
		{name: "output type", in: value.StringInput("x"), typ: schema.NamedType("Query"), wantErr: `Type "Query" is not an input type.`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := coerceInputValue(sch, tc.in, tc.typ)
			if tc.wantErr != "" {
				require.EqualError(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.True(t, tc.want.Equal(got), "want %s, got %s", tc.want, got)
		})
	}
}
