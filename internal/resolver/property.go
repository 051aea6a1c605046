package resolver

import (
	"reflect"
	"sync"

	value "github.com/hanpama/gqlcore/internal/value"
)

// accessor reads one GraphQL field from a Go value of a fixed type.
type accessor struct {
	fieldIndex []int // struct field, possibly promoted
	method     int   // method index on the pointer type, -1 if none
}

// lookupTables caches accessors per Go type and GraphQL field name.
var lookupTables sync.Map // reflect.Type -> map[string]accessor

func accessorsOf(t reflect.Type) map[string]accessor {
	if cached, ok := lookupTables.Load(t); ok {
		return cached.(map[string]accessor)
	}
	table := map[string]accessor{}
	if t.Kind() == reflect.Struct {
		for _, sf := range reflect.VisibleFields(t) {
			if !sf.IsExported() || sf.Anonymous {
				continue
			}
			name, skip := value.FieldName(sf)
			if skip {
				continue
			}
			if _, dup := table[name]; !dup {
				table[name] = accessor{fieldIndex: sf.Index, method: -1}
			}
		}
	}
	// Methods are looked up on the pointer type so both receiver kinds match.
	pt := reflect.PointerTo(t)
	for i := 0; i < pt.NumMethod(); i++ {
		m := pt.Method(i)
		if !usableMethod(m.Type) {
			continue
		}
		name := value.LowerCamel(m.Name)
		if _, taken := table[name]; !taken {
			table[name] = accessor{method: i}
		}
	}
	actual, _ := lookupTables.LoadOrStore(t, table)
	return actual.(map[string]accessor)
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// usableMethod accepts func() T and func() (T, error), receiver included.
func usableMethod(mt reflect.Type) bool {
	if mt.NumIn() != 1 {
		return false
	}
	switch mt.NumOut() {
	case 1:
		return true
	case 2:
		return mt.Out(1) == errorType
	}
	return false
}

// Property reads field from source without a registered resolver: a map
// key, a struct field (graphql tag or lowerCamelCase name) or a method
// without arguments. A source without such a property yields nil.
func Property(source any, field string) (any, error) {
	switch s := source.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return s[field], nil
	case value.Value:
		v, _ := s.Field(field)
		return v, nil
	}

	rv := reflect.ValueOf(source)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, nil
		}
		if rv.Kind() == reflect.Pointer && rv.Elem().Kind() != reflect.Pointer {
			break
		}
		rv = rv.Elem()
	}

	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		mv := rv.MapIndex(reflect.ValueOf(field).Convert(rv.Type().Key()))
		if !mv.IsValid() {
			return nil, nil
		}
		return mv.Interface(), nil
	}

	ptr := rv
	if rv.Kind() != reflect.Pointer {
		// Copy into an addressable value so pointer methods are callable.
		ptr = reflect.New(rv.Type())
		ptr.Elem().Set(rv)
	}
	acc, ok := accessorsOf(ptr.Type().Elem())[field]
	if !ok {
		return nil, nil
	}
	if acc.method >= 0 {
		out := ptr.Method(acc.method).Call(nil)
		if len(out) == 2 && !out[1].IsNil() {
			return nil, out[1].Interface().(error)
		}
		return out[0].Interface(), nil
	}
	fv, err := ptr.Elem().FieldByIndexErr(acc.fieldIndex)
	if err != nil {
		// Promoted through a nil embedded pointer.
		return nil, nil
	}
	return fv.Interface(), nil
}
