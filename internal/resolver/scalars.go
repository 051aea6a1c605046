package resolver

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// Serializer converts a resolved leaf value to a JSON-safe Go value.
type Serializer func(v any) (any, error)

var builtinSerializers = map[string]Serializer{
	"Int":     serializeInt,
	"Float":   serializeFloat,
	"String":  serializeString,
	"Boolean": serializeBoolean,
	"ID":      serializeID,
}

func serializeInt(v any) (any, error) {
	switch n := numeric(v).(type) {
	case int64:
		if n < math.MinInt32 || n > math.MaxInt32 {
			return nil, fmt.Errorf("Int cannot represent non 32-bit signed integer value: %d", n)
		}
		return int(n), nil
	case uint64:
		if n > math.MaxInt32 {
			return nil, fmt.Errorf("Int cannot represent non 32-bit signed integer value: %d", n)
		}
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return nil, fmt.Errorf("Int cannot represent non-integer value: %v", n)
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return nil, fmt.Errorf("Int cannot represent non 32-bit signed integer value: %v", n)
		}
		return int(n), nil
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	}
	return nil, fmt.Errorf("Int cannot represent non-integer value: %v", v)
}

func serializeFloat(v any) (any, error) {
	switch n := numeric(v).(type) {
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return nil, fmt.Errorf("Float cannot represent non numeric value: %v", n)
		}
		return n, nil
	}
	return nil, fmt.Errorf("Float cannot represent non numeric value: %v", v)
}

func serializeString(v any) (any, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case fmt.Stringer:
		return s.String(), nil
	case []byte:
		return string(s), nil
	}
	switch n := numeric(v).(type) {
	case int64:
		return strconv.FormatInt(n, 10), nil
	case uint64:
		return strconv.FormatUint(n, 10), nil
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64), nil
	case bool:
		return strconv.FormatBool(n), nil
	case string:
		return n, nil
	}
	return nil, fmt.Errorf("String cannot represent value: %v", v)
}

func serializeBoolean(v any) (any, error) {
	switch n := numeric(v).(type) {
	case bool:
		return n, nil
	case int64:
		return n != 0, nil
	case uint64:
		return n != 0, nil
	case float64:
		return n != 0, nil
	}
	return nil, fmt.Errorf("Boolean cannot represent a non boolean value: %v", v)
}

func serializeID(v any) (any, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case fmt.Stringer:
		return s.String(), nil
	}
	switch n := numeric(v).(type) {
	case int64:
		return strconv.FormatInt(n, 10), nil
	case uint64:
		return strconv.FormatUint(n, 10), nil
	case string:
		return n, nil
	}
	return nil, fmt.Errorf("ID cannot represent value: %v", v)
}

// numeric normalizes Go primitives, including named types, to int64,
// uint64, float64, bool or string. Other values are returned unchanged.
func numeric(v any) any {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint()
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Bool:
		return rv.Bool()
	case reflect.String:
		return rv.String()
	}
	return v
}
