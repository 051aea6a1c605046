package executor

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	language "github.com/hanpama/gqlcore/internal/language"
	schema "github.com/hanpama/gqlcore/internal/schema"
	value "github.com/hanpama/gqlcore/internal/value"
)

// resultOpts compares results without source locations; location tests
// compare them explicitly.
var resultOpts = cmp.Options{
	cmpopts.EquateEmpty(),
	cmpopts.IgnoreFields(GraphQLError{}, "Locations"),
}

// mustParseQuery parses a GraphQL query and fails the test on error.
func mustParseQuery(t *testing.T, q string) *language.QueryDocument {
	t.Helper()
	d, err := language.ParseQuery(q)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return d
}

func mustBuildSchema(t *testing.T, sdl string) *schema.Schema {
	t.Helper()
	s, err := schema.BuildFromSDL(sdl)
	require.NoError(t, err)
	return s
}

// execute runs query and fails the test on a request error.
func execute(t *testing.T, exec *Executor, query string, vars value.Variables) *ExecutionResult {
	t.Helper()
	res, err := exec.ExecuteRequest(context.Background(), mustParseQuery(t, query), "", vars, nil)
	require.NoError(t, err)
	return res
}

func assertResult(t *testing.T, want, got *ExecutionResult) {
	t.Helper()
	if diff := cmp.Diff(want, got, resultOpts); diff != "" {
		t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
	}
}

func assertCalls(t *testing.T, want, got []Call) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Runtime calls mismatch (-want +got):\n%s", diff)
	}
}

// obj is shorthand for expected response objects.
func obj(fields ...value.ObjectField) value.Value { return value.Object(fields...) }

var noArgs = map[string]any{}

// prop resolves a field from a map source.
func prop(key string) MockResolver {
	return func(ctx context.Context, source any, args value.Arguments) (any, error) {
		m, _ := source.(map[string]any)
		return m[key], nil
	}
}
