package executor

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	value "github.com/hanpama/gqlcore/internal/value"
)

// Pattern: Result comparison
func TestOrdering_FieldOutput_Order_Result(t *testing.T) {
	sch := mustBuildSchema(t, `type Query { a: String b: String @async c: String }`)
	rt := NewMockRuntime(map[string]MockResolver{
		"Query.a": NewMockValueResolver("A"),
		"Query.b": NewMockValueResolver("B"),
		"Query.c": NewMockValueResolver("C"),
	})
	exec := NewExecutor(rt, sch)

	gotRes := execute(t, exec, "{ a b c }", nil)

	assertResult(t, &ExecutionResult{Data: obj(
		value.F("a", value.String("A")),
		value.F("b", value.String("B")),
		value.F("c", value.String("C")),
	)}, gotRes)
	assertCalls(t, []Call{
		{Kind: "sync", ObjectType: "Query", Field: "a", Source: nil, Args: noArgs, BatchID: 0},
		{Kind: "sync", ObjectType: "Query", Field: "c", Source: nil, Args: noArgs, BatchID: 0},
		{Kind: "async", ObjectType: "Query", Field: "b", Source: nil, Args: noArgs, BatchID: 1},
	}, rt.GetCalls())

	data, err := json.Marshal(gotRes)
	require.NoError(t, err)
	require.Equal(t, `{"data":{"a":"A","b":"B","c":"C"}}`, string(data), "keys keep selection order")
}

// Pattern: Result comparison
func TestOrdering_FragmentMerge_DuplicateFields_Result(t *testing.T) {
	sch := mustBuildSchema(t, `
		type Query { obj: Obj }
		type Obj { a: Sub b: String }
		type Sub { x: String y: String }
	`)
	rt := NewMockRuntime(map[string]MockResolver{
		"Query.obj": NewMockValueResolver(map[string]any{}),
		"Obj.a":     NewMockValueResolver(map[string]any{}),
		"Obj.b":     NewMockValueResolver("B"),
		"Sub.x":     NewMockValueResolver("X"),
		"Sub.y":     NewMockValueResolver("Y"),
	})
	exec := NewExecutor(rt, sch)

	gotRes := execute(t, exec, "{ obj { a { y } b ...F } } fragment F on Obj { a { x y } }", nil)

	assertResult(t, &ExecutionResult{Data: obj(value.F("obj", obj(
		value.F("a", obj(value.F("y", value.String("Y")), value.F("x", value.String("X")))),
		value.F("b", value.String("B")),
	)))}, gotRes)
}

func TestOrdering_Deterministic(t *testing.T) {
	sch := mustBuildSchema(t, `
		type Query { items: [Item] @async }
		type Item { id: Int! label: String @async }
	`)
	run := func() *ExecutionResult {
		rt := NewMockRuntime(map[string]MockResolver{
			"Query.items": NewMockValueResolver([]any{1, 2, 3}),
			"Item.id": func(ctx context.Context, source any, args value.Arguments) (any, error) {
				return source, nil
			},
			"Item.label": func(ctx context.Context, source any, args value.Arguments) (any, error) {
				if source == 2 {
					return nil, fmt.Errorf("no label for %v", source)
				}
				return fmt.Sprintf("item-%v", source), nil
			},
		})
		return execute(t, NewExecutor(rt, sch), "{ items { id label } }", nil)
	}

	first := run()
	require.Len(t, first.Errors, 1)
	for i := 0; i < 5; i++ {
		if diff := cmp.Diff(first, run(), resultOpts); diff != "" {
			t.Fatalf("run %d differs (-first +got):\n%s", i, diff)
		}
	}
}
