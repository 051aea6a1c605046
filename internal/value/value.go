// Package value holds the runtime data model of the engine: Value for
// execution output and InputValue for literals and bound variables.
package value

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/dolmen-go/jsonmap"
)

// Kind discriminates the variants of Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindScalar
	KindList
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindScalar:
		return "scalar"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Value is an output value: null, a scalar primitive, a list or an object
// whose field order is significant. A Value is immutable once built.
type Value struct {
	kind   Kind
	scalar any
	items  []Value
	fields []ObjectField
}

// ObjectField is one entry of an object Value.
type ObjectField struct {
	Name  string
	Value Value
}

func Null() Value { return Value{} }

// Scalar wraps a primitive. A nil argument yields Null.
func Scalar(v any) Value {
	if v == nil {
		return Value{}
	}
	return Value{kind: KindScalar, scalar: v}
}

func String(s string) Value { return Scalar(s) }
func Int(i int) Value       { return Scalar(i) }
func Float(f float64) Value { return Scalar(f) }
func Boolean(b bool) Value  { return Scalar(b) }

func List(items ...Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: KindList, items: cp}
}

func Object(fields ...ObjectField) Value {
	cp := make([]ObjectField, len(fields))
	copy(cp, fields)
	return Value{kind: KindObject, fields: cp}
}

// F is shorthand for building object fields.
func F(name string, v Value) ObjectField { return ObjectField{Name: name, Value: v} }

func (v Value) Kind() Kind       { return v.kind }
func (v Value) IsNull() bool     { return v.kind == KindNull }
func (v Value) ScalarValue() any { return v.scalar }

// Items returns the elements of a list value, or nil.
func (v Value) Items() []Value {
	if v.kind != KindList {
		return nil
	}
	return append([]Value(nil), v.items...)
}

// Fields returns the entries of an object value in order, or nil.
func (v Value) Fields() []ObjectField {
	if v.kind != KindObject {
		return nil
	}
	return append([]ObjectField(nil), v.fields...)
}

// Field looks up an object entry by name.
func (v Value) Field(name string) (Value, bool) {
	for _, f := range v.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Len reports the number of list items or object fields.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.items)
	case KindObject:
		return len(v.fields)
	}
	return 0
}

// Equal reports deep equality, including object field order.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindScalar:
		return reflect.DeepEqual(v.scalar, o.scalar)
	case KindList:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
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

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.jsonValue())
}

func (v Value) jsonValue() any {
	switch v.kind {
	case KindScalar:
		return v.scalar
	case KindList:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.jsonValue()
		}
		return out
	case KindObject:
		m := jsonmap.Ordered{
			Data:  make(map[string]interface{}, len(v.fields)),
			Order: make([]string, 0, len(v.fields)),
		}
		for _, f := range v.fields {
			if _, dup := m.Data[f.Name]; !dup {
				m.Order = append(m.Order, f.Name)
			}
			m.Data[f.Name] = f.Value.jsonValue()
		}
		return m
	}
	return nil
}

// ToGo converts the value to plain Go data. Object order is lost.
func (v Value) ToGo() any {
	switch v.kind {
	case KindScalar:
		return v.scalar
	case KindList:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.ToGo()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.fields))
		for _, f := range v.fields {
			out[f.Name] = f.Value.ToGo()
		}
		return out
	}
	return nil
}

func (v Value) String() string {
	var b strings.Builder
	v.write(&b)
	return b.String()
}

func (v Value) write(b *strings.Builder) {
	switch v.kind {
	case KindNull:
		b.WriteString("null")
	case KindScalar:
		if s, ok := v.scalar.(string); ok {
			b.WriteString(quote(s))
			return
		}
		fmt.Fprint(b, v.scalar)
	case KindList:
		b.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				b.WriteString(", ")
			}
			item.write(b)
		}
		b.WriteByte(']')
	case KindObject:
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

// ObjectBuilder accumulates object fields in insertion order.
type ObjectBuilder struct {
	fields []ObjectField
}

func NewObjectBuilder(capacity int) *ObjectBuilder {
	return &ObjectBuilder{fields: make([]ObjectField, 0, capacity)}
}

// Set appends name, or replaces its value in place if already present.
func (b *ObjectBuilder) Set(name string, v Value) *ObjectBuilder {
	for i := range b.fields {
		if b.fields[i].Name == name {
			b.fields[i].Value = v
			return b
		}
	}
	b.fields = append(b.fields, ObjectField{Name: name, Value: v})
	return b
}

func (b *ObjectBuilder) Build() Value {
	return Object(b.fields...)
}
