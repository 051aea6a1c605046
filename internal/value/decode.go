package value

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"unicode"
)

// FromInputValue is implemented by user types that convert themselves from
// an input value. It reports false when the value has the wrong shape.
type FromInputValue interface {
	FromInputValue(v InputValue) bool
}

// DecodeError describes a failed conversion at Path (dot/bracket notation,
// empty for the top level).
type DecodeError struct {
	Path string
	Msg  string
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return e.Msg
	}
	return e.Path + ": " + e.Msg
}

var fromInputValueType = reflect.TypeOf((*FromInputValue)(nil)).Elem()

// Decode converts v into the value pointed to by target. Structs map fields
// by `graphql:"name"` tag, falling back to the lowerCamelCase field name;
// a tag of "-" skips the field. Absent object entries leave fields
// untouched. Variables must be resolved first.
func Decode(v InputValue, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return &DecodeError{Msg: fmt.Sprintf("decode target must be a non-nil pointer, got %T", target)}
	}
	return decodeInto(v, rv.Elem(), "")
}

// Convert decodes v into a new T.
func Convert[T any](v InputValue) (T, error) {
	var out T
	err := Decode(v, &out)
	return out, err
}

func decodeInto(v InputValue, dst reflect.Value, path string) error {
	if dst.CanAddr() && dst.Addr().Type().Implements(fromInputValueType) {
		if dst.Kind() == reflect.Pointer && v.IsNull() {
			dst.Set(reflect.Zero(dst.Type()))
			return nil
		}
		if !dst.Addr().Interface().(FromInputValue).FromInputValue(v) {
			return &DecodeError{Path: path, Msg: fmt.Sprintf("cannot convert %s to %s", v, dst.Type())}
		}
		return nil
	}
	if v.kind == InputVariable {
		return &DecodeError{Path: path, Msg: "unresolved variable $" + v.s}
	}

	switch dst.Kind() {
	case reflect.Pointer:
		if v.IsNull() {
			dst.Set(reflect.Zero(dst.Type()))
			return nil
		}
		elem := reflect.New(dst.Type().Elem())
		if err := decodeInto(v, elem.Elem(), path); err != nil {
			return err
		}
		dst.Set(elem)
		return nil
	case reflect.Interface:
		if dst.NumMethod() != 0 {
			break
		}
		if g := v.ToGo(); g != nil {
			dst.Set(reflect.ValueOf(g))
		} else {
			dst.Set(reflect.Zero(dst.Type()))
		}
		return nil
	}

	if v.IsNull() {
		return &DecodeError{Path: path, Msg: fmt.Sprintf("null is not a valid %s", dst.Type())}
	}

	switch dst.Kind() {
	case reflect.String:
		s, ok := stringish(v)
		if !ok {
			return mismatch(path, v, dst)
		}
		dst.SetString(s)
	case reflect.Bool:
		b, ok := v.Bool()
		if !ok {
			return mismatch(path, v, dst)
		}
		dst.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := integral(v)
		if !ok || dst.OverflowInt(i) {
			return mismatch(path, v, dst)
		}
		dst.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, ok := integral(v)
		if !ok || i < 0 || dst.OverflowUint(uint64(i)) {
			return mismatch(path, v, dst)
		}
		dst.SetUint(uint64(i))
	case reflect.Float32, reflect.Float64:
		f, ok := v.Float()
		if !ok || dst.OverflowFloat(f) {
			return mismatch(path, v, dst)
		}
		dst.SetFloat(f)
	case reflect.Slice:
		items := v.items
		if v.kind != InputList {
			// A single value stands for a one-element list.
			items = []InputValue{v}
		}
		out := reflect.MakeSlice(dst.Type(), len(items), len(items))
		for i, item := range items {
			if err := decodeInto(item, out.Index(i), fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		dst.Set(out)
	case reflect.Map:
		if v.kind != InputObject || dst.Type().Key().Kind() != reflect.String {
			return mismatch(path, v, dst)
		}
		out := reflect.MakeMapWithSize(dst.Type(), len(v.fields))
		for _, f := range v.fields {
			elem := reflect.New(dst.Type().Elem()).Elem()
			if err := decodeInto(f.Value, elem, joinPath(path, f.Name)); err != nil {
				return err
			}
			out.SetMapIndex(reflect.ValueOf(f.Name).Convert(dst.Type().Key()), elem)
		}
		dst.Set(out)
	case reflect.Struct:
		if v.kind != InputObject {
			return mismatch(path, v, dst)
		}
		return decodeStruct(v, dst, path)
	default:
		return &DecodeError{Path: path, Msg: fmt.Sprintf("unsupported target type %s", dst.Type())}
	}
	return nil
}

func decodeStruct(v InputValue, dst reflect.Value, path string) error {
	byName := map[string][]int{}
	for _, sf := range reflect.VisibleFields(dst.Type()) {
		if !sf.IsExported() || sf.Anonymous {
			continue
		}
		name, skip := FieldName(sf)
		if skip {
			continue
		}
		if _, dup := byName[name]; !dup {
			byName[name] = sf.Index
		}
	}
	for _, f := range v.fields {
		index, ok := byName[f.Name]
		if !ok {
			return &DecodeError{Path: joinPath(path, f.Name), Msg: "unknown field"}
		}
		field, err := fieldForSet(dst, index)
		if err != nil {
			return &DecodeError{Path: joinPath(path, f.Name), Msg: err.Error()}
		}
		if err := decodeInto(f.Value, field, joinPath(path, f.Name)); err != nil {
			return err
		}
	}
	return nil
}

// fieldForSet walks index like FieldByIndex, allocating nil embedded
// pointers on the way.
func fieldForSet(v reflect.Value, index []int) (reflect.Value, error) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				if !v.CanSet() {
					return reflect.Value{}, fmt.Errorf("cannot allocate unexported embedded %s", v.Type())
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, nil
}

// FieldName returns the GraphQL name of a struct field and whether the
// field is excluded with `graphql:"-"`.
func FieldName(sf reflect.StructField) (string, bool) {
	if tag, ok := sf.Tag.Lookup("graphql"); ok {
		name, _, _ := strings.Cut(tag, ",")
		if name == "-" {
			return "", true
		}
		if name != "" {
			return name, false
		}
	}
	return LowerCamel(sf.Name), false
}

// LowerCamel lowercases the leading rune of an exported Go name, keeping a
// leading acronym together: "ID" -> "id", "URLPath" -> "urlPath".
func LowerCamel(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}
	if n == 0 {
		return s
	}
	if n > 1 && n < len(runes) {
		n-- // last upper rune starts the next word
	}
	for i := 0; i < n; i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func mismatch(path string, v InputValue, dst reflect.Value) error {
	return &DecodeError{Path: path, Msg: fmt.Sprintf("cannot convert %s to %s", v, dst.Type())}
}

func stringish(v InputValue) (string, bool) {
	switch v.kind {
	case InputString, InputEnum:
		return v.s, true
	}
	return "", false
}

func integral(v InputValue) (int64, bool) {
	switch v.kind {
	case InputInt:
		return v.i, true
	case InputFloat:
		if v.f == math.Trunc(v.f) && math.Abs(v.f) <= 1<<53 {
			return int64(v.f), true
		}
	}
	return 0, false
}

// AsString accepts String and Enum values.
func AsString(v InputValue) (string, bool) { return stringish(v) }

// AsInt accepts Int values and integral Float values.
func AsInt(v InputValue) (int64, bool) { return integral(v) }

// AsFloat accepts Float and Int values.
func AsFloat(v InputValue) (float64, bool) { return v.Float() }

// AsBool accepts Boolean values.
func AsBool(v InputValue) (bool, bool) { return v.Bool() }
