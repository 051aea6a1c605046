package value

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	language "github.com/hanpama/gqlcore/internal/language"
)

// InputKind discriminates the variants of InputValue.
type InputKind uint8

const (
	InputNull InputKind = iota
	InputInt
	InputFloat
	InputString
	InputBoolean
	InputEnum
	InputList
	InputObject
	InputVariable
)

var inputKindNames = [...]string{
	InputNull:     "Null",
	InputInt:      "Int",
	InputFloat:    "Float",
	InputString:   "String",
	InputBoolean:  "Boolean",
	InputEnum:     "Enum",
	InputList:     "List",
	InputObject:   "Object",
	InputVariable: "Variable",
}

func (k InputKind) String() string {
	if int(k) < len(inputKindNames) {
		return inputKindNames[k]
	}
	return fmt.Sprintf("InputKind(%d)", uint8(k))
}

// InputValue is a literal from query source or a bound variable value. A
// Variable input value is a name reference resolved against Variables.
type InputValue struct {
	kind   InputKind
	i      int64
	f      float64
	s      string // String, Enum and Variable payload
	b      bool
	items  []InputValue
	fields []InputField
}

// InputField is one entry of an object InputValue.
type InputField struct {
	Name  string
	Value InputValue
}

// Variables maps declared variable names (without '$') to bound values.
type Variables map[string]InputValue

func NullInput() InputValue                { return InputValue{} }
func IntInput(i int64) InputValue          { return InputValue{kind: InputInt, i: i} }
func FloatInput(f float64) InputValue      { return InputValue{kind: InputFloat, f: f} }
func StringInput(s string) InputValue      { return InputValue{kind: InputString, s: s} }
func BooleanInput(b bool) InputValue       { return InputValue{kind: InputBoolean, b: b} }
func EnumInput(name string) InputValue     { return InputValue{kind: InputEnum, s: name} }
func VariableInput(name string) InputValue { return InputValue{kind: InputVariable, s: name} }

func ListInput(items ...InputValue) InputValue {
	return InputValue{kind: InputList, items: append([]InputValue{}, items...)}
}

func ObjectInput(fields ...InputField) InputValue {
	return InputValue{kind: InputObject, fields: append([]InputField{}, fields...)}
}

// IF is shorthand for building object input fields.
func IF(name string, v InputValue) InputField { return InputField{Name: name, Value: v} }

func (v InputValue) Kind() InputKind { return v.kind }
func (v InputValue) IsNull() bool    { return v.kind == InputNull }

func (v InputValue) IsVariable() bool { return v.kind == InputVariable }

// VariableName returns the referenced name of a Variable input value.
func (v InputValue) VariableName() string {
	if v.kind != InputVariable {
		return ""
	}
	return v.s
}

// Int returns the payload of an Int input value.
func (v InputValue) Int() (int64, bool) { return v.i, v.kind == InputInt }

// Float returns the payload of a Float input value; Int values widen.
func (v InputValue) Float() (float64, bool) {
	switch v.kind {
	case InputFloat:
		return v.f, true
	case InputInt:
		return float64(v.i), true
	}
	return 0, false
}

// Str returns the payload of a String input value.
func (v InputValue) Str() (string, bool) { return v.s, v.kind == InputString }

// Enum returns the payload of an Enum input value.
func (v InputValue) Enum() (string, bool) { return v.s, v.kind == InputEnum }

// Bool returns the payload of a Boolean input value.
func (v InputValue) Bool() (bool, bool) { return v.b, v.kind == InputBoolean }

// Items returns the elements of a list input value.
func (v InputValue) Items() []InputValue {
	if v.kind != InputList {
		return nil
	}
	return append([]InputValue(nil), v.items...)
}

// Fields returns the entries of an object input value in order.
func (v InputValue) Fields() []InputField {
	if v.kind != InputObject {
		return nil
	}
	return append([]InputField(nil), v.fields...)
}

// Field looks up an object entry by name.
func (v InputValue) Field(name string) (InputValue, bool) {
	for _, f := range v.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return InputValue{}, false
}

// Equal reports deep equality; object entries compare in order.
func (v InputValue) Equal(o InputValue) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case InputNull:
		return true
	case InputInt:
		return v.i == o.i
	case InputFloat:
		return v.f == o.f
	case InputBoolean:
		return v.b == o.b
	case InputString, InputEnum, InputVariable:
		return v.s == o.s
	case InputList:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	case InputObject:
		if len(v.fields) != len(o.fields) {
			return false
		}
		for i := range v.fields {
			if v.fields[i].Name != o.fields[i].Name || !v.fields[i].Value.Equal(o.fields[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// ErrUnboundVariable is returned by Resolve for a reference without binding.
var ErrUnboundVariable = errors.New("variable is not bound")

// Resolve substitutes variable references with their bound values. The
// result never contains a Variable. A bound value that itself holds a
// variable reference is rejected: bindings do not nest.
func (v InputValue) Resolve(vars Variables) (InputValue, error) {
	switch v.kind {
	case InputVariable:
		bound, ok := vars[v.s]
		if !ok {
			return InputValue{}, fmt.Errorf("$%s: %w", v.s, ErrUnboundVariable)
		}
		if bound.containsVariable() {
			return InputValue{}, fmt.Errorf("$%s: bound value must not reference other variables", v.s)
		}
		return bound, nil
	case InputList:
		items := make([]InputValue, len(v.items))
		for i, item := range v.items {
			r, err := item.Resolve(vars)
			if err != nil {
				return InputValue{}, err
			}
			items[i] = r
		}
		return InputValue{kind: InputList, items: items}, nil
	case InputObject:
		fields := make([]InputField, len(v.fields))
		for i, f := range v.fields {
			r, err := f.Value.Resolve(vars)
			if err != nil {
				return InputValue{}, err
			}
			fields[i] = InputField{Name: f.Name, Value: r}
		}
		return InputValue{kind: InputObject, fields: fields}, nil
	}
	return v, nil
}

func (v InputValue) containsVariable() bool {
	switch v.kind {
	case InputVariable:
		return true
	case InputList:
		for _, item := range v.items {
			if item.containsVariable() {
				return true
			}
		}
	case InputObject:
		for _, f := range v.fields {
			if f.Value.containsVariable() {
				return true
			}
		}
	}
	return false
}

// ReferencedVariables lists variable names in order of first appearance.
func (v InputValue) ReferencedVariables() []string {
	var out []string
	seen := map[string]bool{}
	var walk func(InputValue)
	walk = func(iv InputValue) {
		switch iv.kind {
		case InputVariable:
			if !seen[iv.s] {
				seen[iv.s] = true
				out = append(out, iv.s)
			}
		case InputList:
			for _, item := range iv.items {
				walk(item)
			}
		case InputObject:
			for _, f := range iv.fields {
				walk(f.Value)
			}
		}
	}
	walk(v)
	return out
}

// FromAST converts a parsed literal. A nil node yields Null.
func FromAST(node *language.Value) (InputValue, error) {
	if node == nil {
		return InputValue{}, nil
	}
	switch node.Kind {
	case language.Variable:
		return VariableInput(node.Raw), nil
	case language.IntValue:
		i, err := strconv.ParseInt(node.Raw, 10, 64)
		if err != nil {
			return InputValue{}, fmt.Errorf("invalid Int literal %s: %w", node.Raw, err)
		}
		return IntInput(i), nil
	case language.FloatValue:
		f, err := strconv.ParseFloat(node.Raw, 64)
		if err != nil {
			return InputValue{}, fmt.Errorf("invalid Float literal %s: %w", node.Raw, err)
		}
		return FloatInput(f), nil
	case language.StringValue, language.BlockValue:
		return StringInput(node.Raw), nil
	case language.BooleanValue:
		return BooleanInput(node.Raw == "true"), nil
	case language.NullValue:
		return NullInput(), nil
	case language.EnumValue:
		return EnumInput(node.Raw), nil
	case language.ListValue:
		items := make([]InputValue, len(node.Children))
		for i, c := range node.Children {
			item, err := FromAST(c.Value)
			if err != nil {
				return InputValue{}, err
			}
			items[i] = item
		}
		return InputValue{kind: InputList, items: items}, nil
	case language.ObjectValue:
		fields := make([]InputField, len(node.Children))
		for i, c := range node.Children {
			fv, err := FromAST(c.Value)
			if err != nil {
				return InputValue{}, err
			}
			fields[i] = InputField{Name: c.Name, Value: fv}
		}
		return InputValue{kind: InputObject, fields: fields}, nil
	}
	return InputValue{}, fmt.Errorf("unsupported literal kind %v", node.Kind)
}

// MustFromAST is FromAST for literals already checked by the parser.
func MustFromAST(node *language.Value) InputValue {
	v, err := FromAST(node)
	if err != nil {
		panic(err)
	}
	return v
}

// String renders the value in query-language literal syntax. Introspection
// uses it for default values, so an Int default of 123 renders as "123".
func (v InputValue) String() string {
	var b strings.Builder
	v.write(&b)
	return b.String()
}

func (v InputValue) write(b *strings.Builder) {
	switch v.kind {
	case InputNull:
		b.WriteString("null")
	case InputInt:
		b.WriteString(strconv.FormatInt(v.i, 10))
	case InputFloat:
		b.WriteString(formatFloat(v.f))
	case InputString:
		b.WriteString(quote(v.s))
	case InputBoolean:
		b.WriteString(strconv.FormatBool(v.b))
	case InputEnum:
		b.WriteString(v.s)
	case InputVariable:
		b.WriteByte('$')
		b.WriteString(v.s)
	case InputList:
		b.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				b.WriteString(", ")
			}
			item.write(b)
		}
		b.WriteByte(']')
	case InputObject:
		b.WriteByte('{')
		for i, f := range v.fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(f.Name)
			b.WriteString(": ")
			f.Value.write(b)
		}
		b.WriteByte('}')
	}
}

func formatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

// ToGo converts a concrete input value to plain Go data: int64, float64,
// string, bool, []any and map[string]any. Enums become their name.
func (v InputValue) ToGo() any {
	switch v.kind {
	case InputInt:
		return v.i
	case InputFloat:
		return v.f
	case InputString, InputEnum:
		return v.s
	case InputBoolean:
		return v.b
	case InputList:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.ToGo()
		}
		return out
	case InputObject:
		out := make(map[string]any, len(v.fields))
		for _, f := range v.fields {
			out[f.Name] = f.Value.ToGo()
		}
		return out
	}
	return nil
}
