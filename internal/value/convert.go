package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// FromGo converts decoded data (JSON, YAML or hand-built Go values) into an
// InputValue. Map keys are taken in sorted order; use VariablesFromYAML or
// VariablesFromJSON to keep document order.
func FromGo(v any) (InputValue, error) {
	switch x := v.(type) {
	case nil:
		return NullInput(), nil
	case InputValue:
		return x, nil
	case bool:
		return BooleanInput(x), nil
	case string:
		return StringInput(x), nil
	case int:
		return IntInput(int64(x)), nil
	case int8:
		return IntInput(int64(x)), nil
	case int16:
		return IntInput(int64(x)), nil
	case int32:
		return IntInput(int64(x)), nil
	case int64:
		return IntInput(x), nil
	case uint:
		return IntInput(int64(x)), nil
	case uint8:
		return IntInput(int64(x)), nil
	case uint16:
		return IntInput(int64(x)), nil
	case uint32:
		return IntInput(int64(x)), nil
	case float32:
		return FloatInput(float64(x)), nil
	case float64:
		return FloatInput(x), nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return IntInput(i), nil
		}
		f, err := x.Float64()
		if err != nil {
			return InputValue{}, fmt.Errorf("invalid number %q: %w", x.String(), err)
		}
		return FloatInput(f), nil
	case []any:
		items := make([]InputValue, len(x))
		for i, item := range x {
			iv, err := FromGo(item)
			if err != nil {
				return InputValue{}, fmt.Errorf("[%d]: %w", i, err)
			}
			items[i] = iv
		}
		return InputValue{kind: InputList, items: items}, nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make([]InputField, len(keys))
		for i, k := range keys {
			iv, err := FromGo(x[k])
			if err != nil {
				return InputValue{}, fmt.Errorf("%s: %w", k, err)
			}
			fields[i] = InputField{Name: k, Value: iv}
		}
		return InputValue{kind: InputObject, fields: fields}, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return NullInput(), nil
		}
		return FromGo(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return FromGo(items)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		return FromGo(m)
	}
	return InputValue{}, fmt.Errorf("cannot convert %T to an input value", v)
}

// VariablesFromGo converts a decoded variables object.
func VariablesFromGo(m map[string]any) (Variables, error) {
	vars := make(Variables, len(m))
	for name, raw := range m {
		iv, err := FromGo(raw)
		if err != nil {
			return nil, fmt.Errorf("variable $%s: %w", name, err)
		}
		vars[name] = iv
	}
	return vars, nil
}

// VariablesFromJSON decodes a JSON object of variable bindings. Object key
// order inside each value is kept. Empty input yields empty Variables.
func VariablesFromJSON(data []byte) (Variables, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Variables{}, nil
	}
	// JSON is a subset of YAML, and the YAML decoder keeps mapping order.
	return VariablesFromYAML(data)
}

// VariablesFromYAML decodes a YAML mapping of variable bindings.
func VariablesFromYAML(data []byte) (Variables, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode variables: %w", err)
	}
	if doc.Kind == 0 {
		return Variables{}, nil
	}
	return VariablesFromNode(&doc)
}

// VariablesFromNode converts a YAML mapping node (or a document wrapping
// one) into Variables.
func VariablesFromNode(node *yaml.Node) (Variables, error) {
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return Variables{}, nil
		}
		node = node.Content[0]
	}
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return Variables{}, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("variables must be a mapping, got %s", nodeKindName(node))
	}
	vars := make(Variables, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		iv, err := FromYAMLNode(node.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("variable $%s: %w", name, err)
		}
		vars[name] = iv
	}
	return vars, nil
}

// FromYAMLNode converts one YAML node, keeping mapping order.
func FromYAMLNode(node *yaml.Node) (InputValue, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return NullInput(), nil
		}
		return FromYAMLNode(node.Content[0])
	case yaml.AliasNode:
		return FromYAMLNode(node.Alias)
	case yaml.SequenceNode:
		items := make([]InputValue, len(node.Content))
		for i, c := range node.Content {
			iv, err := FromYAMLNode(c)
			if err != nil {
				return InputValue{}, fmt.Errorf("[%d]: %w", i, err)
			}
			items[i] = iv
		}
		return InputValue{kind: InputList, items: items}, nil
	case yaml.MappingNode:
		fields := make([]InputField, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			iv, err := FromYAMLNode(node.Content[i+1])
			if err != nil {
				return InputValue{}, fmt.Errorf("%s: %w", key, err)
			}
			fields = append(fields, InputField{Name: key, Value: iv})
		}
		return InputValue{kind: InputObject, fields: fields}, nil
	case yaml.ScalarNode:
		return scalarFromYAML(node)
	}
	return InputValue{}, fmt.Errorf("unsupported YAML node %s", nodeKindName(node))
}

func scalarFromYAML(node *yaml.Node) (InputValue, error) {
	switch node.ShortTag() {
	case "!!null":
		return NullInput(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return InputValue{}, err
		}
		return BooleanInput(b), nil
	case "!!int":
		i, err := strconv.ParseInt(node.Value, 0, 64)
		if err != nil {
			var f float64
			if derr := node.Decode(&f); derr != nil {
				return InputValue{}, err
			}
			return FloatInput(f), nil
		}
		return IntInput(i), nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return InputValue{}, err
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return InputValue{}, fmt.Errorf("non-finite number %s", node.Value)
		}
		return FloatInput(f), nil
	}
	return StringInput(node.Value), nil
}

func nodeKindName(node *yaml.Node) string {
	switch node.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown"
}
