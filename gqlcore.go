// Package gqlcore is an embeddable GraphQL engine. A Schema is built from a
// type registry or SDL; an Engine validates documents against it and
// executes them through a Runtime that resolves fields.
package gqlcore

import (
	"context"
	"errors"
	"time"

	"github.com/samber/lo"
	"github.com/vektah/gqlparser/v2/gqlerror"

	eventbus "github.com/hanpama/gqlcore/internal/eventbus"
	events "github.com/hanpama/gqlcore/internal/events"
	executor "github.com/hanpama/gqlcore/internal/executor"
	introspection "github.com/hanpama/gqlcore/internal/introspection"
	language "github.com/hanpama/gqlcore/internal/language"
	reqid "github.com/hanpama/gqlcore/internal/reqid"
	resolver "github.com/hanpama/gqlcore/internal/resolver"
	schema "github.com/hanpama/gqlcore/internal/schema"
	validation "github.com/hanpama/gqlcore/internal/validation"
	value "github.com/hanpama/gqlcore/internal/value"
)

type (
	Schema    = schema.Schema
	Registry  = schema.Registry
	Runtime   = executor.Runtime
	Result    = executor.ExecutionResult
	Value     = value.Value
	Variables = value.Variables
	Document  = language.QueryDocument
)

// NewRegistry returns an empty type registry.
func NewRegistry() *Registry { return schema.NewRegistry() }

// NewSchema closes reg into a schema rooted at queryType.
func NewSchema(reg *Registry, queryType string, opts ...schema.Option) (*Schema, error) {
	return schema.New(reg, queryType, opts...)
}

// BuildSchema builds a schema from SDL.
func BuildSchema(sdl string) (*Schema, error) { return schema.BuildFromSDL(sdl) }

// Parse parses a query document.
func Parse(query string) (*Document, error) { return language.ParseQuery(query) }

// Validate runs the default validation rules over doc.
func Validate(sch *Schema, doc *Document) []validation.RuleError {
	return validation.Validate(sch, doc)
}

// ValidationError is returned when a document fails validation. Nothing is
// executed in that case.
type ValidationError struct {
	Errors validation.Errors
}

func (e *ValidationError) Error() string { return "validation failed: " + e.Errors.Error() }

type config struct {
	runtime  Runtime
	maxDepth int
	rules    []validation.Rule
	bus      *eventbus.Bus
}

// Option configures NewEngine.
type Option func(*config)

// WithRuntime sets the runtime resolving fields. The default is a
// resolver.Registry without registered resolvers, which reads properties
// of the source values.
func WithRuntime(rt Runtime) Option {
	return func(c *config) { c.runtime = rt }
}

// WithMaxDepth rejects operations nesting deeper than n selections.
func WithMaxDepth(n int) Option {
	return func(c *config) { c.maxDepth = n }
}

// WithRules replaces the validation rule catalogue.
func WithRules(rules ...validation.Rule) Option {
	return func(c *config) { c.rules = rules }
}

// WithEventBus publishes engine events on bus instead of the global bus.
func WithEventBus(bus *eventbus.Bus) Option {
	return func(c *config) { c.bus = bus }
}

// Engine validates and executes requests against one schema. It is safe for
// concurrent use.
type Engine struct {
	schema *Schema
	exec   *executor.Executor
	rules  []validation.Rule
	bus    *eventbus.Bus
}

// NewEngine creates an Engine for sch. Introspection is always answered by
// the engine itself.
func NewEngine(sch *Schema, opts ...Option) *Engine {
	c := config{rules: validation.DefaultRules}
	for _, opt := range opts {
		opt(&c)
	}
	if c.runtime == nil {
		c.runtime = resolver.New(sch)
	}
	if c.bus == nil {
		c.bus = eventbus.Global()
	}
	rt := introspection.Wrap(c.runtime, sch)
	return &Engine{
		schema: sch,
		exec:   executor.NewExecutor(rt, sch, executor.WithMaxDepth(c.maxDepth)),
		rules:  c.rules,
		bus:    c.bus,
	}
}

// Schema returns the engine's schema.
func (e *Engine) Schema() *Schema { return e.schema }

// Request is one GraphQL request.
type Request struct {
	Query         string
	OperationName string
	Variables     Variables
	// Root is the initial value passed to root field resolvers.
	Root any
}

// Validate parses and validates query. It returns the parse error, or a
// *ValidationError listing every rule violation.
func (e *Engine) Validate(ctx context.Context, query string) (*Document, error) {
	ctx, _ = reqid.Ensure(ctx)
	return e.validate(ctx, query)
}

func (e *Engine) validate(ctx context.Context, query string) (*Document, error) {
	start := time.Now()
	eventbus.Emit(e.bus, ctx, events.ValidationStart{Query: query})

	doc, err := language.ParseQuery(query)
	var errs validation.Errors
	if err == nil {
		errs = validation.ValidateWith(e.schema, doc, e.rules...)
	}

	finish := events.ValidationFinish{Query: query, Duration: time.Since(start)}
	switch {
	case err != nil:
		finish.Errors = []error{err}
	case len(errs) > 0:
		finish.Errors = lo.Map(errs, func(re validation.RuleError, _ int) error { return re })
	}
	eventbus.Emit(e.bus, ctx, finish)

	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	return doc, nil
}

// Execute parses, validates and executes req. The error is a parse error, a
// *ValidationError or an *executor.RequestError; field errors are reported
// in the result.
func (e *Engine) Execute(ctx context.Context, req Request) (*Result, error) {
	ctx, _ = reqid.Ensure(ctx)
	doc, err := e.validate(ctx, req.Query)
	if err != nil {
		return nil, err
	}
	return e.execute(ctx, req, doc)
}

// ExecuteDocument executes an already validated document.
func (e *Engine) ExecuteDocument(ctx context.Context, doc *Document, req Request) (*Result, error) {
	ctx, _ = reqid.Ensure(ctx)
	return e.execute(ctx, req, doc)
}

func (e *Engine) execute(ctx context.Context, req Request, doc *Document) (*Result, error) {
	opType := operationType(doc, req.OperationName)
	start := time.Now()
	eventbus.Emit(e.bus, ctx, events.ExecutionStart{
		Query:         req.Query,
		OperationName: req.OperationName,
		OperationType: opType,
	})

	res, err := e.exec.ExecuteRequest(ctx, doc, req.OperationName, req.Variables, req.Root)

	finish := events.ExecutionFinish{
		Query:         req.Query,
		OperationName: req.OperationName,
		OperationType: opType,
		Duration:      time.Since(start),
	}
	if err != nil {
		finish.Errors = []error{err}
	} else {
		finish.Errors = lo.Map(res.Errors, func(ge executor.GraphQLError, _ int) error { return ge })
	}
	eventbus.Emit(e.bus, ctx, finish)
	return res, err
}

// Response is the serialized shape of a GraphQL response. Data is absent
// when the request failed before execution.
type Response struct {
	Data   *Value        `json:"data,omitempty"`
	Errors gqlerror.List `json:"errors,omitempty"`
}

// Do executes req and folds every failure into the response errors.
func (e *Engine) Do(ctx context.Context, req Request) *Response {
	res, err := e.Execute(ctx, req)
	if err != nil {
		return &Response{Errors: ResponseErrors(err)}
	}
	return &Response{
		Data:   &res.Data,
		Errors: lo.Map(res.Errors, func(ge executor.GraphQLError, _ int) *gqlerror.Error { return ge.ToGQLError() }),
	}
}

// ResponseErrors converts an error returned by Execute to response errors.
func ResponseErrors(err error) gqlerror.List {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Errors.ToGQLErrors()
	}
	var rerr *executor.RequestError
	if errors.As(err, &rerr) {
		return gqlerror.List{{
			Message: rerr.Message,
			Locations: lo.Map(rerr.Locations, func(p language.SourcePosition, _ int) gqlerror.Location {
				return gqlerror.Location{Line: p.Line, Column: p.Column}
			}),
		}}
	}
	var gerr *gqlerror.Error
	if errors.As(err, &gerr) {
		return gqlerror.List{gerr}
	}
	var glist gqlerror.List
	if errors.As(err, &glist) {
		return glist
	}
	return gqlerror.List{{Message: err.Error()}}
}

// operationType names the type of the operation req selects, or "" when
// the selection is ambiguous.
func operationType(doc *Document, name string) string {
	var found *language.OperationDefinition
	for _, op := range doc.Operations {
		if name == "" || op.Name == name {
			if found != nil && name == "" {
				return ""
			}
			found = op
		}
	}
	if found == nil {
		return ""
	}
	return string(found.Operation)
}
