// Package resolver provides a Runtime backed by Go functions registered per
// field, with reflection-based property access for everything else.
package resolver

import (
	"context"
	"fmt"
	"reflect"

	"golang.org/x/sync/errgroup"

	executor "github.com/hanpama/gqlcore/internal/executor"
	schema "github.com/hanpama/gqlcore/internal/schema"
	value "github.com/hanpama/gqlcore/internal/value"
)

// FieldFunc resolves one field for one source value.
type FieldFunc func(ctx context.Context, source any, args value.Arguments) (any, error)

// BatchFunc resolves one field for every task of a wave at once. It returns
// one value per task, in task order. A returned error fails every task.
type BatchFunc func(ctx context.Context, tasks []executor.AsyncResolveTask) ([]any, error)

// TypeResolverFunc names the object type of a value of an abstract type.
type TypeResolverFunc func(ctx context.Context, v any) (string, error)

// TypeNamer lets a Go value report its GraphQL object type.
type TypeNamer interface {
	GraphQLTypeName() string
}

type fieldKey struct {
	objectType string
	field      string
}

// Registry implements executor.Runtime. Register resolvers before the first
// execution; the registry is read-only afterwards.
type Registry struct {
	schema        *schema.Schema
	fields        map[fieldKey]FieldFunc
	batches       map[fieldKey]BatchFunc
	typeResolvers map[string]TypeResolverFunc
	scalars       map[string]Serializer
	concurrency   int
}

var _ executor.Runtime = (*Registry)(nil)

type Option func(*Registry)

// WithConcurrency bounds the goroutines used by one async wave. Zero or a
// negative value means no bound.
func WithConcurrency(n int) Option {
	return func(r *Registry) { r.concurrency = n }
}

// New creates a Registry for sch.
func New(sch *schema.Schema, opts ...Option) *Registry {
	r := &Registry{
		schema:        sch,
		fields:        map[fieldKey]FieldFunc{},
		batches:       map[fieldKey]BatchFunc{},
		typeResolvers: map[string]TypeResolverFunc{},
		scalars:       map[string]Serializer{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Field registers the resolver of typeName.fieldName.
func (r *Registry) Field(typeName, fieldName string, fn FieldFunc) *Registry {
	r.fields[fieldKey{typeName, fieldName}] = fn
	return r
}

// Batch registers a batch resolver for an async field. It takes precedence
// over a FieldFunc for async tasks.
func (r *Registry) Batch(typeName, fieldName string, fn BatchFunc) *Registry {
	r.batches[fieldKey{typeName, fieldName}] = fn
	return r
}

// TypeResolver registers how values of an interface or union are typed.
func (r *Registry) TypeResolver(abstractType string, fn TypeResolverFunc) *Registry {
	r.typeResolvers[abstractType] = fn
	return r
}

// Scalar registers the serializer of a custom scalar, or overrides a
// built-in one.
func (r *Registry) Scalar(name string, fn Serializer) *Registry {
	r.scalars[name] = fn
	return r
}

func (r *Registry) ResolveSync(ctx context.Context, objectType, field string, source any, args value.Arguments) (any, error) {
	return r.resolveOne(ctx, objectType, field, source, args)
}

func (r *Registry) resolveOne(ctx context.Context, objectType, field string, source any, args value.Arguments) (v any, err error) {
	defer func() {
		if p := recover(); p != nil {
			v, err = nil, fmt.Errorf("panic resolving %s.%s: %v", objectType, field, p)
		}
	}()
	if fn, ok := r.fields[fieldKey{objectType, field}]; ok {
		return fn(ctx, source, args)
	}
	return Property(source, field)
}

// BatchResolveAsync groups tasks by field. A field with a BatchFunc is one
// unit of work; otherwise every task is its own unit. Units run concurrently
// and write their results by task index.
func (r *Registry) BatchResolveAsync(ctx context.Context, tasks []executor.AsyncResolveTask) []executor.AsyncResolveResult {
	results := make([]executor.AsyncResolveResult, len(tasks))
	if len(tasks) == 0 {
		return results
	}

	type group struct {
		key  fieldKey
		idxs []int
	}
	var groups []group
	idxByKey := map[fieldKey]int{}
	for i, t := range tasks {
		k := fieldKey{t.ObjectType, t.Field}
		if gi, ok := idxByKey[k]; ok {
			groups[gi].idxs = append(groups[gi].idxs, i)
			continue
		}
		idxByKey[k] = len(groups)
		groups = append(groups, group{key: k, idxs: []int{i}})
	}

	var g errgroup.Group
	if r.concurrency > 0 {
		g.SetLimit(r.concurrency)
	}
	for _, gr := range groups {
		gr := gr
		if fn, ok := r.batches[gr.key]; ok {
			g.Go(func() error {
				r.runBatch(ctx, fn, gr.key, tasks, gr.idxs, results)
				return nil
			})
			continue
		}
		for _, i := range gr.idxs {
			i := i
			g.Go(func() error {
				t := tasks[i]
				v, err := r.resolveOne(ctx, t.ObjectType, t.Field, t.Source, t.Args)
				results[i] = executor.AsyncResolveResult{Value: v, Error: err}
				return nil
			})
		}
	}
	_ = g.Wait()
	return results
}

func (r *Registry) runBatch(ctx context.Context, fn BatchFunc, key fieldKey, tasks []executor.AsyncResolveTask, idxs []int, results []executor.AsyncResolveResult) {
	batch := make([]executor.AsyncResolveTask, len(idxs))
	for j, i := range idxs {
		batch[j] = tasks[i]
	}
	values, err := func() (values []any, err error) {
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("panic resolving %s.%s: %v", key.objectType, key.field, p)
			}
		}()
		return fn(ctx, batch)
	}()
	for j, i := range idxs {
		switch {
		case err != nil:
			results[i] = executor.AsyncResolveResult{Error: err}
		case j >= len(values):
			results[i] = executor.AsyncResolveResult{Error: fmt.Errorf("batch resolver for %s.%s returned %d results for %d tasks", key.objectType, key.field, len(values), len(idxs))}
		default:
			results[i] = executor.AsyncResolveResult{Value: values[j]}
		}
	}
}

// ResolveType uses a registered TypeResolver, then a "__typename" map key,
// then TypeNamer, then the Go type name of the value.
func (r *Registry) ResolveType(ctx context.Context, abstractType string, v any) (string, error) {
	if fn, ok := r.typeResolvers[abstractType]; ok {
		return fn(ctx, v)
	}
	switch s := v.(type) {
	case map[string]any:
		if name, ok := s["__typename"].(string); ok {
			return name, nil
		}
	case value.Value:
		if tn, ok := s.Field("__typename"); ok {
			if name, ok := tn.ScalarValue().(string); ok {
				return name, nil
			}
		}
	case TypeNamer:
		return s.GraphQLTypeName(), nil
	}
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t != nil && t.Name() != "" && r.schema.IsPossibleType(abstractType, t.Name()) {
		return t.Name(), nil
	}
	return "", fmt.Errorf("cannot determine the object type of %T for %s", v, abstractType)
}

// SerializeLeafValue applies registered and built-in scalar serializers and
// checks enum membership. Custom scalars without a serializer pass through.
func (r *Registry) SerializeLeafValue(ctx context.Context, typeName string, v any) (any, error) {
	if lv, ok := v.(value.Value); ok {
		v = lv.ToGo()
	}
	v = indirect(v)
	if v == nil {
		return nil, nil
	}
	if fn, ok := r.scalars[typeName]; ok {
		return fn(v)
	}
	if fn, ok := builtinSerializers[typeName]; ok {
		return fn(v)
	}
	if t := r.schema.Type(typeName); t != nil && t.Kind == schema.TypeKindEnum {
		return serializeEnum(t, v)
	}
	return v, nil
}

func serializeEnum(t *schema.Type, v any) (any, error) {
	var name string
	switch s := v.(type) {
	case string:
		name = s
	case fmt.Stringer:
		name = s.String()
	default:
		str, ok := numeric(v).(string)
		if !ok {
			return nil, fmt.Errorf("Enum %q cannot represent value: %v", t.Name, v)
		}
		name = str
	}
	if t.EnumValue(name) == nil {
		return nil, fmt.Errorf("Enum %q cannot represent value: %q", t.Name, name)
	}
	return name, nil
}

// indirect dereferences pointers; a nil pointer becomes nil.
func indirect(v any) any {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil
	}
	return rv.Interface()
}
