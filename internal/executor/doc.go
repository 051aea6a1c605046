// Package executor implements a wave-based GraphQL executor with explicit
// runtime hooks for synchronous resolution, batching of asynchronous work,
// abstract-type resolution and leaf serialization.
//
// # Preparation
//
// Before any field is resolved, ExecuteRequest:
//  1. Chooses the operation, by name or by uniqueness when unnamed.
//  2. Finds the root type for the operation kind.
//  3. Coerces the provided variables against the operation's variable
//     definitions. Defaults fill in absent variables; a missing Non-Null
//     variable stops the request.
//  4. Optionally checks the selection depth (WithMaxDepth).
//
// Failures here are returned as a *RequestError and no Runtime method is
// called. The document is assumed to have passed validation.
//
// # Execution Model
//
// Fields are classified by schema.Field.Async:
//
//   - Synchronous fields are resolved immediately via Runtime.ResolveSync and
//     completed in place. Object results keep expanding synchronously.
//   - Asynchronous fields are queued. Once the synchronous frontier is
//     exhausted the queue is flushed with a single Runtime.BatchResolveAsync
//     call (a wave). Completing a wave's results may queue the next wave.
//
// For a graph with asynchronous depth d, BatchResolveAsync is invoked exactly
// d times. Purely synchronous descents do not add waves. Root fields of a
// mutation run one at a time: each field and all of its waves finish before
// the next field starts.
//
// # Response Slots
//
// Results are written into a tree of slots mirroring the response shape.
// A slot knows whether its position is Non-Null. When a value cannot be
// produced (resolver error, coercion error, null for a Non-Null type) the
// error is recorded once and the nearest nullable slot at or above the
// failing one is nulled. If every ancestor is Non-Null the response data
// becomes null. Sibling fields keep resolving; queued tasks under a nulled
// slot are dropped before the next batch is issued.
//
// # Value Completion
//
//   - Non-Null: a null result is a violation; otherwise complete the inner
//     type.
//   - List: every element completes in its own slot with an index path.
//   - Leaf (Scalar/Enum): Runtime.SerializeLeafValue produces the scalar.
//   - Abstract (Interface/Union): Runtime.ResolveType names the concrete
//     object type, which must be a possible type of the abstract one.
//   - Object: collect subfields (fragments whose type condition is the object
//     type, an interface it implements or a union containing it) and execute
//     them.
//
// Errors are ordered by traversal within a wave, then by wave.
package executor
