package executor

import (
	"context"
	"errors"
	"sync"

	"github.com/samber/lo"

	value "github.com/hanpama/gqlcore/internal/value"
)

// MockResolver resolves one field for one source in tests.
type MockResolver func(ctx context.Context, source any, args value.Arguments) (any, error)

const (
	CallKindSync  = "sync"
	CallKindAsync = "async"
)

// NewMockValueResolver always returns val.
func NewMockValueResolver(val any) MockResolver {
	return func(context.Context, any, value.Arguments) (any, error) { return val, nil }
}

// NewMockErrorResolver always fails with err.
func NewMockErrorResolver(err error) MockResolver {
	return func(context.Context, any, value.Arguments) (any, error) { return nil, err }
}

// Call records one resolved task. Tasks of the same BatchResolveAsync call
// share a BatchID; sync calls have BatchID 0.
type Call struct {
	Kind       string
	ObjectType string
	Field      string
	Source     any
	Args       map[string]any
	BatchID    int
}

var errNoTypename = errors.New("cannot resolve type")

// MockRuntime is a recording Runtime keyed by "Type.field". Fields without
// a resolver resolve to nil.
type MockRuntime struct {
	mu        sync.Mutex
	resolvers map[string]MockResolver
	calls     []Call
	batches   int

	typeResolver func(v any) (string, error)
	serializer   func(val any, typeName string) (any, error)
}

var _ Runtime = (*MockRuntime)(nil)

func NewMockRuntime(resolvers map[string]MockResolver) *MockRuntime {
	m := &MockRuntime{
		resolvers:    make(map[string]MockResolver, len(resolvers)),
		typeResolver: typenameOf,
		serializer:   func(val any, _ string) (any, error) { return val, nil },
	}
	for k, r := range resolvers {
		m.resolvers[k] = r
	}
	return m
}

// typenameOf reads the "__typename" entry of a map or object value.
func typenameOf(v any) (string, error) {
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
	}
	return "", errNoTypename
}

func (m *MockRuntime) SetResolver(objectType, field string, resolver MockResolver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolvers[objectType+"."+field] = resolver
}

// SetTypeResolver replaces the type resolver of r when it is a MockRuntime.
func SetTypeResolver(r Runtime, f func(v any) (string, error)) {
	if mr, ok := r.(*MockRuntime); ok {
		mr.mu.Lock()
		mr.typeResolver = f
		mr.mu.Unlock()
	}
}

// SetSerializer replaces the leaf serializer of r when it is a MockRuntime.
func SetSerializer(r Runtime, f func(val any, typeName string) (any, error)) {
	if mr, ok := r.(*MockRuntime); ok {
		mr.mu.Lock()
		mr.serializer = f
		mr.mu.Unlock()
	}
}

func (m *MockRuntime) resolve(ctx context.Context, kind string, batchID int, objectType, field string, source any, args value.Arguments) (any, error) {
	m.mu.Lock()
	r := m.resolvers[objectType+"."+field]
	m.calls = append(m.calls, Call{
		Kind:       kind,
		ObjectType: objectType,
		Field:      field,
		Source:     source,
		Args:       args.ToGo(),
		BatchID:    batchID,
	})
	m.mu.Unlock()

	if r == nil {
		return nil, nil
	}
	return r(ctx, source, args)
}

func (m *MockRuntime) ResolveSync(ctx context.Context, objectType, field string, source any, args value.Arguments) (any, error) {
	return m.resolve(ctx, CallKindSync, 0, objectType, field, source, args)
}

// BatchResolveAsync resolves tasks grouped by field, fields in order of
// first appearance, and records one Call per task.
func (m *MockRuntime) BatchResolveAsync(ctx context.Context, tasks []AsyncResolveTask) []AsyncResolveResult {
	if len(tasks) == 0 {
		return nil
	}
	m.mu.Lock()
	m.batches++
	batchID := m.batches
	m.mu.Unlock()

	type fieldRef struct{ objectType, field string }
	refOf := func(t AsyncResolveTask, _ int) fieldRef { return fieldRef{t.ObjectType, t.Field} }

	results := make([]AsyncResolveResult, len(tasks))
	for _, ref := range lo.Uniq(lo.Map(tasks, refOf)) {
		for i, t := range tasks {
			if refOf(t, i) != ref {
				continue
			}
			v, err := m.resolve(ctx, CallKindAsync, batchID, t.ObjectType, t.Field, t.Source, t.Args)
			results[i] = AsyncResolveResult{Value: v, Error: err}
		}
	}
	return results
}

func (m *MockRuntime) ResolveType(_ context.Context, _ string, v any) (string, error) {
	m.mu.Lock()
	f := m.typeResolver
	m.mu.Unlock()
	return f(v)
}

func (m *MockRuntime) SerializeLeafValue(_ context.Context, typeName string, v any) (any, error) {
	m.mu.Lock()
	f := m.serializer
	m.mu.Unlock()
	return f(v, typeName)
}

// GetCalls returns the recorded calls in order.
func (m *MockRuntime) GetCalls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// Reset forgets recorded calls and batch numbering; resolvers stay.
func (m *MockRuntime) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
	m.batches = 0
}
