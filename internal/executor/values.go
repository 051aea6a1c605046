package executor

import (
	"fmt"
	"math"
	"strconv"

	language "github.com/hanpama/gqlcore/internal/language"
	schema "github.com/hanpama/gqlcore/internal/schema"
	value "github.com/hanpama/gqlcore/internal/value"
)

// coerceVariableValues coerces the provided bindings against the variable
// definitions of operation. Declared variables that are absent and have no
// default stay unbound.
func coerceVariableValues(
	sch *schema.Schema,
	operation *language.OperationDefinition,
	provided value.Variables,
) (value.Variables, error) {
	coerced := make(value.Variables, len(operation.VariableDefinitions))
	for _, varDef := range operation.VariableDefinitions {
		name := varDef.Variable
		t := schema.TypeRefFromAST(varDef.Type)
		val, ok := provided[name]
		if !ok {
			switch {
			case varDef.DefaultValue != nil:
				dv, err := value.FromAST(varDef.DefaultValue)
				if err != nil {
					return nil, requestError(ErrVariableCoercion, varDef.Position, "Variable \"$%s\" has an invalid default value: %v", name, err)
				}
				val = dv
			case t.IsNonNull():
				return nil, requestError(ErrVariableCoercion, varDef.Position, "Variable \"$%s\" of required type \"%s\" was not provided.", name, t)
			default:
				continue
			}
		}
		if val.IsVariable() {
			return nil, requestError(ErrVariableCoercion, varDef.Position, "Variable \"$%s\" cannot be bound to another variable.", name)
		}
		cv, err := coerceInputValue(sch, val, t)
		if err != nil {
			return nil, requestError(ErrVariableCoercion, varDef.Position, "Variable \"$%s\" got invalid value %s; %v", name, val, err)
		}
		coerced[name] = cv
	}
	return coerced, nil
}

// coerceArgumentValues builds the argument map of a field or directive from
// its definitions, the literal arguments and the coerced variables.
func coerceArgumentValues(
	sch *schema.Schema,
	defs []*schema.InputValue,
	arguments language.ArgumentList,
	variableValues value.Variables,
) (value.Arguments, error) {
	coerced := make(value.Arguments, len(defs))
	for _, argDef := range defs {
		name := argDef.Name
		arg := arguments.ForName(name)

		var (
			raw     value.InputValue
			present bool
		)
		if arg != nil {
			if arg.Value != nil && arg.Value.Kind == language.Variable {
				raw, present = variableValues[arg.Value.Raw]
			} else {
				lit, err := value.FromAST(arg.Value)
				if err != nil {
					return nil, fmt.Errorf("Argument \"%s\" has invalid value: %v", name, err)
				}
				raw, present = substituteVariables(lit, variableValues), true
			}
		}

		if !present {
			if argDef.DefaultValue != nil {
				coerced[name] = *argDef.DefaultValue
				continue
			}
			if argDef.Type.IsNonNull() {
				if arg != nil {
					return nil, fmt.Errorf("Argument \"%s\" of required type \"%s\" was provided the variable \"$%s\" which was not provided a runtime value.", name, argDef.Type, arg.Value.Raw)
				}
				return nil, fmt.Errorf("Argument \"%s\" of required type \"%s\" was not provided.", name, argDef.Type)
			}
			continue
		}

		cv, err := coerceInputValue(sch, raw, argDef.Type)
		if err != nil {
			return nil, fmt.Errorf("Argument \"%s\" has invalid value %s: %v", name, raw, err)
		}
		coerced[name] = cv
	}
	return coerced, nil
}

// substituteVariables replaces nested variable references with their
// bindings. An unbound reference becomes null inside a list and is dropped
// from an object so that field defaults apply.
func substituteVariables(v value.InputValue, vars value.Variables) value.InputValue {
	switch v.Kind() {
	case value.InputVariable:
		if bound, ok := vars[v.VariableName()]; ok {
			return bound
		}
		return value.NullInput()
	case value.InputList:
		items := v.Items()
		for i := range items {
			items[i] = substituteVariables(items[i], vars)
		}
		return value.ListInput(items...)
	case value.InputObject:
		fields := make([]value.InputField, 0, len(v.Fields()))
		for _, f := range v.Fields() {
			if f.Value.IsVariable() {
				bound, ok := vars[f.Value.VariableName()]
				if !ok {
					continue
				}
				fields = append(fields, value.IF(f.Name, bound))
				continue
			}
			fields = append(fields, value.IF(f.Name, substituteVariables(f.Value, vars)))
		}
		return value.ObjectInput(fields...)
	}
	return v
}

// coerceInputValue checks v against t and normalizes it: enum names become
// Enum values, integral floats become Int, single values become one-element
// lists and input objects receive their field defaults in declaration order.
func coerceInputValue(sch *schema.Schema, v value.InputValue, t *schema.TypeRef) (value.InputValue, error) {
	if t.IsNonNull() {
		if v.IsNull() {
			return value.InputValue{}, fmt.Errorf("Expected non-nullable type \"%s\" not to be null.", t)
		}
		return coerceInputValue(sch, v, t.OfType)
	}
	if v.IsNull() {
		return v, nil
	}
	if t.Kind == schema.TypeRefKindList {
		if v.Kind() != value.InputList {
			item, err := coerceInputValue(sch, v, t.OfType)
			if err != nil {
				return value.InputValue{}, err
			}
			return value.ListInput(item), nil
		}
		items := v.Items()
		for i, item := range items {
			ci, err := coerceInputValue(sch, item, t.OfType)
			if err != nil {
				return value.InputValue{}, fmt.Errorf("In element #%d: %w", i, err)
			}
			items[i] = ci
		}
		return value.ListInput(items...), nil
	}

	named := sch.Type(t.Named)
	if named == nil {
		return value.InputValue{}, fmt.Errorf("Unknown type \"%s\".", t.Named)
	}
	switch named.Kind {
	case schema.TypeKindScalar:
		return coerceScalar(named.Name, v)
	case schema.TypeKindEnum:
		name, ok := value.AsString(v)
		if !ok || named.EnumValue(name) == nil {
			return value.InputValue{}, fmt.Errorf("Value %s does not exist in \"%s\" enum.", v, named.Name)
		}
		return value.EnumInput(name), nil
	case schema.TypeKindInputObject:
		return coerceInputObject(sch, named, v)
	}
	return value.InputValue{}, fmt.Errorf("Type \"%s\" is not an input type.", named.Name)
}

func coerceInputObject(sch *schema.Schema, def *schema.Type, v value.InputValue) (value.InputValue, error) {
	if v.Kind() != value.InputObject {
		return value.InputValue{}, fmt.Errorf("Expected type \"%s\" to be an object.", def.Name)
	}
	for _, f := range v.Fields() {
		if def.InputField(f.Name) == nil {
			return value.InputValue{}, fmt.Errorf("Field \"%s\" is not defined by type \"%s\".", f.Name, def.Name)
		}
	}
	fields := make([]value.InputField, 0, len(def.InputFields))
	for _, fieldDef := range def.InputFields {
		fv, ok := v.Field(fieldDef.Name)
		if !ok {
			if fieldDef.DefaultValue != nil {
				fields = append(fields, value.IF(fieldDef.Name, *fieldDef.DefaultValue))
				continue
			}
			if fieldDef.Type.IsNonNull() {
				return value.InputValue{}, fmt.Errorf("Field \"%s.%s\" of required type \"%s\" was not provided.", def.Name, fieldDef.Name, fieldDef.Type)
			}
			continue
		}
		cv, err := coerceInputValue(sch, fv, fieldDef.Type)
		if err != nil {
			return value.InputValue{}, fmt.Errorf("In field \"%s\": %w", fieldDef.Name, err)
		}
		fields = append(fields, value.IF(fieldDef.Name, cv))
	}
	if def.OneOf {
		set := 0
		for _, f := range fields {
			if !f.Value.IsNull() {
				set++
			}
		}
		if set != 1 || len(fields) != 1 {
			return value.InputValue{}, fmt.Errorf("Exactly one key must be specified for OneOf type \"%s\".", def.Name)
		}
	}
	return value.ObjectInput(fields...), nil
}

// coerceScalar validates built-in scalars; custom scalars pass through.
func coerceScalar(name string, v value.InputValue) (value.InputValue, error) {
	switch name {
	case "Int":
		i, ok := value.AsInt(v)
		if !ok {
			return value.InputValue{}, fmt.Errorf("Int cannot represent non-integer value: %s", v)
		}
		if i > math.MaxInt32 || i < math.MinInt32 {
			return value.InputValue{}, fmt.Errorf("Int cannot represent non 32-bit signed integer value: %s", v)
		}
		return value.IntInput(i), nil
	case "Float":
		f, ok := value.AsFloat(v)
		if !ok {
			return value.InputValue{}, fmt.Errorf("Float cannot represent non numeric value: %s", v)
		}
		return value.FloatInput(f), nil
	case "String":
		s, ok := v.Str()
		if !ok {
			return value.InputValue{}, fmt.Errorf("String cannot represent a non string value: %s", v)
		}
		return value.StringInput(s), nil
	case "Boolean":
		b, ok := v.Bool()
		if !ok {
			return value.InputValue{}, fmt.Errorf("Boolean cannot represent a non boolean value: %s", v)
		}
		return value.BooleanInput(b), nil
	case "ID":
		if s, ok := v.Str(); ok {
			return value.StringInput(s), nil
		}
		if i, ok := v.Int(); ok {
			return value.StringInput(strconv.FormatInt(i, 10)), nil
		}
		return value.InputValue{}, fmt.Errorf("ID cannot represent value: %s", v)
	}
	return v, nil
}
