package executor

import (
	"testing"

	value "github.com/hanpama/gqlcore/internal/value"
)

// Pattern: Calls comparison + Result comparison
func TestRouting_IsAsync_SyncVsAsync_Calls(t *testing.T) {
	sch := mustBuildSchema(t, `type Query { a: String b: String @async }`)
	rt := NewMockRuntime(map[string]MockResolver{
		"Query.a": NewMockValueResolver("A"),
		"Query.b": NewMockValueResolver("B"),
	})
	exec := NewExecutor(rt, sch)

	gotRes := execute(t, exec, "{ a b }", nil)

	assertResult(t, &ExecutionResult{
		Data: obj(value.F("a", value.String("A")), value.F("b", value.String("B"))),
	}, gotRes)
	assertCalls(t, []Call{
		{Kind: "sync", ObjectType: "Query", Field: "a", Source: nil, Args: noArgs, BatchID: 0},
		{Kind: "async", ObjectType: "Query", Field: "b", Source: nil, Args: noArgs, BatchID: 1},
	}, rt.GetCalls())
}

// Pattern: Calls comparison
func TestRouting_OneBatchPerAsyncDepth_Calls(t *testing.T) {
	// Async depth 2: users (wave 1), then every friends list (wave 2). The
	// sync name fields never add a wave.
	sch := mustBuildSchema(t, `
		type Query { users: [User] @async }
		type User { name: String friends: [User] @async }
	`)
	alice := map[string]any{"name": "alice"}
	bob := map[string]any{"name": "bob"}
	rt := NewMockRuntime(map[string]MockResolver{
		"Query.users":  NewMockValueResolver([]any{alice, bob}),
		"User.name":    prop("name"),
		"User.friends": NewMockValueResolver([]any{}),
	})
	exec := NewExecutor(rt, sch)

	gotRes := execute(t, exec, "{ users { name friends { name } } }", nil)

	assertResult(t, &ExecutionResult{
		Data: obj(value.F("users", value.List(
			obj(value.F("name", value.String("alice")), value.F("friends", value.List())),
			obj(value.F("name", value.String("bob")), value.F("friends", value.List())),
		))),
	}, gotRes)
	assertCalls(t, []Call{
		{Kind: "async", ObjectType: "Query", Field: "users", Source: nil, Args: noArgs, BatchID: 1},
		{Kind: "sync", ObjectType: "User", Field: "name", Source: alice, Args: noArgs, BatchID: 0},
		{Kind: "sync", ObjectType: "User", Field: "name", Source: bob, Args: noArgs, BatchID: 0},
		{Kind: "async", ObjectType: "User", Field: "friends", Source: alice, Args: noArgs, BatchID: 2},
		{Kind: "async", ObjectType: "User", Field: "friends", Source: bob, Args: noArgs, BatchID: 2},
	}, rt.GetCalls())
}

// Pattern: Calls comparison
func TestRouting_NoBatchWithoutAsyncFields_Calls(t *testing.T) {
	rt := NewMockRuntime(map[string]MockResolver{"Query.a": NewMockValueResolver("A")})
	exec := NewExecutor(rt, mustBuildSchema(t, `type Query { a: String }`))

	execute(t, exec, "{ a }", nil)
	for _, c := range rt.GetCalls() {
		if c.Kind == CallKindAsync {
			t.Fatalf("unexpected batch call: %+v", c)
		}
	}
}
