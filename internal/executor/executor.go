package executor

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	language "github.com/hanpama/gqlcore/internal/language"
	schema "github.com/hanpama/gqlcore/internal/schema"
	value "github.com/hanpama/gqlcore/internal/value"
)

type Executor struct {
	runtime  Runtime
	schema   *schema.Schema
	maxDepth int
}

type Option func(*Executor)

// WithMaxDepth rejects operations whose selections nest deeper than n.
// Zero disables the check.
func WithMaxDepth(n int) Option {
	return func(e *Executor) { e.maxDepth = n }
}

func NewExecutor(runtime Runtime, schema *schema.Schema, opts ...Option) *Executor {
	e := &Executor{runtime: runtime, schema: schema}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// executionState holds the state during query execution
type executionState struct {
	runtime        Runtime
	schema         *schema.Schema
	document       *language.QueryDocument
	variableValues value.Variables
	context        context.Context

	queue    []asyncTask
	dataNull bool

	mu     sync.Mutex
	errors []GraphQLError
}

// asyncTask represents a pending async field resolution
type asyncTask struct {
	Task         AsyncResolveTask
	ResponsePath Path
	FieldType    *schema.TypeRef
	Fields       []*language.Field
	Slot         *slot
}

// ExecuteRequest runs one operation of document against root. The returned
// error is a *RequestError when the request could not start; field errors
// are reported in the result instead.
func (e *Executor) ExecuteRequest(
	ctx context.Context,
	document *language.QueryDocument,
	operationName string,
	variableValues value.Variables,
	initialValue any,
) (*ExecutionResult, error) {
	operation, err := getOperation(document, operationName)
	if err != nil {
		return nil, err
	}

	rootType := e.schema.RootType(operation.Operation)
	if rootType == nil {
		return nil, requestError(ErrUnsupportedOperation, operation.Position, "Schema is not configured for %ss.", operation.Operation)
	}

	coercedVariableValues, err := coerceVariableValues(e.schema, operation, variableValues)
	if err != nil {
		return nil, err
	}

	if e.maxDepth > 0 {
		if depth := selectionDepth(document, operation.SelectionSet, map[string]bool{}); depth > e.maxDepth {
			return nil, requestError(ErrMaxDepthExceeded, operation.Position, "Operation has depth %d, exceeding the maximum of %d.", depth, e.maxDepth)
		}
	}

	state := &executionState{
		runtime:        e.runtime,
		schema:         e.schema,
		document:       document,
		variableValues: coercedVariableValues,
		context:        ctx,
	}

	root := &slot{kind: slotObject, nonNull: true}
	fields := collectFields(state, rootType, operation.SelectionSet)
	if operation.Operation == language.Mutation {
		// Each root field, including its async waves, finishes before the next.
		for _, cf := range fields.orderedFields() {
			executeField(state, rootType, initialValue, cf, Path{cf.ResponseName}, root)
			runWaves(state)
		}
	} else {
		executeCollectedFields(state, rootType, fields, initialValue, Path{}, root)
		runWaves(state)
	}

	result := &ExecutionResult{Data: value.Null(), Errors: state.errors}
	if !state.dataNull {
		result.Data = root.finalize()
	}
	return result, nil
}

// runWaves dispatches queued async tasks one batch at a time until no task
// is left. Completing a batch may queue the next wave.
func runWaves(state *executionState) {
	for len(state.queue) > 0 {
		filtered, results := flushAsyncTasks(state)
		for i, at := range filtered {
			var res AsyncResolveResult
			if i < len(results) {
				res = results[i]
			} else {
				res = AsyncResolveResult{Error: fmt.Errorf("no result returned for %s.%s", at.Task.ObjectType, at.Task.Field)}
			}
			completeAsyncField(state, at, res)
		}
	}
}

// flushAsyncTasks drops tasks below nulled paths and issues one batch for
// the rest.
func flushAsyncTasks(state *executionState) ([]asyncTask, []AsyncResolveResult) {
	filtered := make([]asyncTask, 0, len(state.queue))
	for _, at := range state.queue {
		if state.isDead(at.Slot) {
			continue
		}
		filtered = append(filtered, at)
	}
	state.queue = nil
	if len(filtered) == 0 {
		return nil, nil
	}

	tasks := make([]AsyncResolveTask, len(filtered))
	for i, at := range filtered {
		tasks[i] = at.Task
	}
	return filtered, state.runtime.BatchResolveAsync(state.context, tasks)
}

func completeAsyncField(state *executionState, at asyncTask, res AsyncResolveResult) {
	if state.isDead(at.Slot) {
		return
	}
	if res.Error != nil {
		state.fieldError(res.Error.Error(), at.Fields, at.ResponsePath)
		state.fail(at.Slot)
		return
	}
	completeValue(state, at.FieldType, at.Fields, res.Value, at.ResponsePath, at.Slot)
}

// executeSelectionSet executes a selection set without flushing
func executeSelectionSet(state *executionState, objectType *schema.Type, selectionSet language.SelectionSet, objectValue any, path Path, parent *slot) {
	executeCollectedFields(state, objectType, collectFields(state, objectType, selectionSet), objectValue, path, parent)
}

func executeCollectedFields(state *executionState, objectType *schema.Type, fields *collectedFieldMap, objectValue any, path Path, parent *slot) {
	for _, cf := range fields.orderedFields() {
		executeField(state, objectType, objectValue, cf, appendPath(path, cf.ResponseName), parent)
	}
}

func executeField(state *executionState, objectType *schema.Type, objectValue any, cf collectedField, path Path, parent *slot) {
	field := cf.Fields[0]
	fieldDef := state.schema.FieldDef(objectType.Name, field.Name)
	if fieldDef == nil {
		// Validation rejects unknown fields; an unvalidated document just omits them.
		return
	}
	s := parent.child(cf.ResponseName, fieldDef.Type.IsNonNull())

	if fieldDef == schema.TypeNameMetaField {
		s.setLeaf(value.String(objectType.Name))
		return
	}

	args, err := coerceArgumentValues(state.schema, fieldDef.Arguments, field.Arguments, state.variableValues)
	if err != nil {
		state.fieldError(err.Error(), cf.Fields, path)
		state.fail(s)
		return
	}

	if fieldDef.Async {
		s.kind = slotPending
		state.queue = append(state.queue, asyncTask{
			Task: AsyncResolveTask{
				ObjectType: objectType.Name,
				Field:      field.Name,
				Source:     objectValue,
				Args:       args,
			},
			ResponsePath: path,
			FieldType:    fieldDef.Type,
			Fields:       cf.Fields,
			Slot:         s,
		})
		return
	}

	resolved, err := state.runtime.ResolveSync(state.context, objectType.Name, field.Name, objectValue, args)
	if err != nil {
		state.fieldError(err.Error(), cf.Fields, path)
		state.fail(s)
		return
	}
	completeValue(state, fieldDef.Type, cf.Fields, resolved, path, s)
}

// completeValue completes result into s according to fieldType.
func completeValue(state *executionState, fieldType *schema.TypeRef, fields []*language.Field, result any, path Path, s *slot) {
	if fieldType.IsNonNull() {
		if isNullish(result) {
			state.fieldError(fmt.Sprintf("Cannot return null for non-nullable field %s", path), fields, path)
			state.fail(s)
			return
		}
		completeValue(state, fieldType.OfType, fields, result, path, s)
		return
	}

	if isNullish(result) {
		s.setLeaf(value.Null())
		return
	}

	if fieldType.Kind == schema.TypeRefKindList {
		completeListValue(state, fieldType, fields, result, path, s)
		return
	}

	typeObj := state.schema.Type(fieldType.Named)
	if typeObj == nil {
		state.fieldError(fmt.Sprintf("Unknown type: %s", fieldType.Named), fields, path)
		state.fail(s)
		return
	}

	switch typeObj.Kind {
	case schema.TypeKindScalar, schema.TypeKindEnum:
		completeLeafValue(state, typeObj, fields, result, path, s)
	case schema.TypeKindObject:
		completeObjectValue(state, typeObj, fields, result, path, s)
	case schema.TypeKindInterface, schema.TypeKindUnion:
		completeAbstractValue(state, typeObj, fields, result, path, s)
	default:
		state.fieldError(fmt.Sprintf("Cannot complete value of unexpected type: %s", typeObj.Kind), fields, path)
		state.fail(s)
	}
}

func completeLeafValue(state *executionState, leafType *schema.Type, fields []*language.Field, result any, path Path, s *slot) {
	if v, ok := result.(value.Value); ok {
		result = v.ScalarValue()
	}
	serialized, err := state.runtime.SerializeLeafValue(state.context, leafType.Name, result)
	if err != nil {
		state.fieldError(err.Error(), fields, path)
		state.fail(s)
		return
	}
	if isNullish(serialized) && s.nonNull {
		state.fieldError(fmt.Sprintf("Cannot return null for non-nullable field %s", path), fields, path)
		state.fail(s)
		return
	}
	s.setLeaf(value.Scalar(serialized))
}

// completeListValue completes every element in its own slot. A failing
// non-null element nulls the list itself.
func completeListValue(state *executionState, listType *schema.TypeRef, fields []*language.Field, result any, path Path, s *slot) {
	items, ok := listItems(result)
	if !ok {
		state.fieldError(fmt.Sprintf("Expected list value, got %T", result), fields, path)
		state.fail(s)
		return
	}

	inner := listType.OfType
	s.kind = slotList
	s.items = make([]*slot, len(items))
	for i, item := range items {
		s.items[i] = &slot{parent: s, nonNull: inner.IsNonNull()}
		completeValue(state, inner, fields, item, appendPath(path, i), s.items[i])
	}
}

func completeObjectValue(state *executionState, objectType *schema.Type, fields []*language.Field, result any, path Path, s *slot) {
	s.kind = slotObject
	sub := mergeSelectionSets(fields)
	executeSelectionSet(state, objectType, sub, result, path, s)
}

func completeAbstractValue(state *executionState, abstractType *schema.Type, fields []*language.Field, result any, path Path, s *slot) {
	typeName, err := state.runtime.ResolveType(state.context, abstractType.Name, result)
	if err != nil {
		state.fieldError(err.Error(), fields, path)
		state.fail(s)
		return
	}
	objectType := state.schema.Type(typeName)
	if objectType == nil || objectType.Kind != schema.TypeKindObject {
		state.fieldError(fmt.Sprintf("Abstract type %s must resolve to an Object type at runtime. Got: %q", abstractType.Name, typeName), fields, path)
		state.fail(s)
		return
	}
	if !state.schema.IsPossibleType(abstractType.Name, objectType.Name) {
		state.fieldError(fmt.Sprintf("Runtime Object type %q is not a possible type for %q.", objectType.Name, abstractType.Name), fields, path)
		state.fail(s)
		return
	}
	completeObjectValue(state, objectType, fields, result, path, s)
}

// fieldError records an error located at the first field node of a group.
func (state *executionState) fieldError(message string, fields []*language.Field, path Path) {
	err := GraphQLError{Message: message, Path: append(Path(nil), path...)}
	if len(fields) > 0 && fields[0].Position != nil {
		err.Locations = []language.SourcePosition{language.PositionOf(fields[0].Position)}
	}
	state.mu.Lock()
	state.errors = append(state.errors, err)
	state.mu.Unlock()
}

// fail nulls the nearest nullable slot at or above s. Without one the whole
// response data becomes null.
func (state *executionState) fail(s *slot) {
	for cur := s; cur != nil; cur = cur.parent {
		if !cur.nonNull {
			cur.nulled = true
			return
		}
	}
	state.dataNull = true
}

// isDead reports whether s lies below a slot that was already nulled.
func (state *executionState) isDead(s *slot) bool {
	if state.dataNull {
		return true
	}
	for cur := s; cur != nil; cur = cur.parent {
		if cur.nulled {
			return true
		}
	}
	return false
}

// getOperation selects the operation to run.
func getOperation(document *language.QueryDocument, operationName string) (*language.OperationDefinition, error) {
	if len(document.Operations) == 0 {
		return nil, requestError(ErrNoOperation, nil, "Must provide an operation.")
	}
	if operationName == "" {
		if len(document.Operations) > 1 {
			return nil, requestError(ErrOperationNameRequired, nil, "Must provide operation name if query contains multiple operations.")
		}
		return document.Operations[0], nil
	}
	if op := document.Operations.ForName(operationName); op != nil {
		return op, nil
	}
	return nil, requestError(ErrUnknownOperation, nil, "Unknown operation named %q.", operationName)
}

// selectionDepth returns the deepest field nesting below selectionSet,
// following fragment spreads once per path.
func selectionDepth(document *language.QueryDocument, selectionSet language.SelectionSet, visiting map[string]bool) int {
	depth := 0
	for _, selection := range selectionSet {
		var d int
		switch sel := selection.(type) {
		case *language.Field:
			d = 1 + selectionDepth(document, sel.SelectionSet, visiting)
		case *language.InlineFragment:
			d = selectionDepth(document, sel.SelectionSet, visiting)
		case *language.FragmentSpread:
			fragment := document.Fragments.ForName(sel.Name)
			if fragment == nil || visiting[sel.Name] {
				continue
			}
			visiting[sel.Name] = true
			d = selectionDepth(document, fragment.SelectionSet, visiting)
			delete(visiting, sel.Name)
		}
		if d > depth {
			depth = d
		}
	}
	return depth
}

func appendPath(path Path, elem PathElement) Path {
	newPath := make(Path, len(path)+1)
	copy(newPath, path)
	newPath[len(path)] = elem
	return newPath
}

// mergeSelectionSets merges selection sets from multiple fields
func mergeSelectionSets(fields []*language.Field) language.SelectionSet {
	var merged language.SelectionSet
	for _, f := range fields {
		merged = append(merged, f.SelectionSet...)
	}
	return merged
}

// listItems accepts any slice or array, or a value.Value list.
func listItems(result any) ([]any, bool) {
	switch v := result.(type) {
	case []any:
		return v, true
	case value.Value:
		if v.Kind() != value.KindList {
			return nil, false
		}
		items := v.Items()
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = item
		}
		return out, true
	}
	rv := reflect.ValueOf(result)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// isNullish returns true for nil interfaces, typed nils (map, slice, ptr,
// interface) and null values.
func isNullish(v any) bool {
	if v == nil {
		return true
	}
	if val, ok := v.(value.Value); ok {
		return val.IsNull()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Interface, reflect.Ptr, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
