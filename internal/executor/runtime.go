package executor

import (
	"context"

	value "github.com/hanpama/gqlcore/internal/value"
)

// Runtime defines the host integration surface for field resolution, batching,
// abstract type resolution, and leaf-value serialization used by the Executor.
//
// General contract
//   - The Executor works in waves. Within a wave it expands every synchronous
//     field via ResolveSync, then calls BatchResolveAsync ONCE with all async
//     tasks collected during that wave. The next wave does not begin until
//     BatchResolveAsync returns and those results are completed.
//   - ResolveSync is never invoked for fields marked async, and
//     BatchResolveAsync is only invoked with at least one task.
//   - Errors returned from any method become located GraphQL errors. If the
//     field's return type is Non-Null, the Executor propagates the null up to
//     the nearest nullable ancestor.
//   - Implementations must be safe for concurrent use across executions and
//     must not mutate source or args values.
//
// Object/field identifiers
//   - objectType is the GraphQL type name (e.g. "User"); for root fields it is
//     the root type name (e.g. "Query").
//   - field is the GraphQL field name on that type (e.g. "posts").
//   - source is the parent object value (the root value for root fields).
//   - args holds the coerced arguments. Arguments that were omitted and have
//     no default are absent from the map.
//
// Resolved values
//   - nil, typed nil pointers/maps/slices and value.Null() are GraphQL null.
//   - Lists may be any Go slice or array, or a value.Value list.
//   - Objects may be anything the runtime understands as a source for the
//     nested fields.
//
// Partial success and determinism
//   - BatchResolveAsync must return one AsyncResolveResult per task, in task
//     order. Each result is independent.
//   - Tasks under a response path that was already nulled by Non-Null
//     propagation are dropped before the batch is issued.
type Runtime interface {
	// ResolveSync resolves a synchronous field value immediately.
	// Return (nil, nil) to produce a GraphQL null for nullable fields.
	ResolveSync(ctx context.Context, objectType string, field string, source any, args value.Arguments) (any, error)

	// BatchResolveAsync resolves one wave of async field tasks.
	//
	// Requirements:
	// - Return len(results) == len(tasks).
	// - results[i] corresponds to tasks[i].
	// - Return independent errors per element without failing the whole batch.
	BatchResolveAsync(ctx context.Context, tasks []AsyncResolveTask) []AsyncResolveResult

	// ResolveType determines the concrete object type name for a value of an
	// abstract type (interface or union). The name must be a possible type of
	// abstractType.
	ResolveType(ctx context.Context, abstractType string, value any) (string, error)

	// SerializeLeafValue serializes a scalar or enum value to a JSON-safe Go
	// value: string, bool, int32/int/int64 or float64. Enums serialize to
	// their name.
	SerializeLeafValue(ctx context.Context, scalarOrEnumTypeName string, value any) (any, error)
}

type AsyncResolveTask struct {
	// ObjectType is the parent GraphQL object type name for the field.
	ObjectType string
	// Field is the GraphQL field name to resolve.
	Field string
	// Source is the parent object value.
	Source any
	// Args are the coerced field arguments.
	Args value.Arguments
}

type AsyncResolveResult struct {
	// Value is the resolved raw value prior to completion, or nil on error.
	Value any
	// Error contains a failure specific to this element; other elements in the
	// same batch are unaffected.
	Error error
}
