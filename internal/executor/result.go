package executor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"

	language "github.com/hanpama/gqlcore/internal/language"
	value "github.com/hanpama/gqlcore/internal/value"
)

type Path []PathElement

// PathElement is a response key (string) or a list index (int).
type PathElement any

func (p Path) String() string {
	var b strings.Builder
	for i, elem := range p {
		switch v := elem.(type) {
		case string:
			if i > 0 {
				b.WriteByte('.')
			}
			b.WriteString(v)
		case int:
			fmt.Fprintf(&b, "[%d]", v)
		}
	}
	return b.String()
}

// GraphQLError represents an error that occurred during execution
type GraphQLError struct {
	Message    string                    `json:"message"`
	Locations  []language.SourcePosition `json:"locations,omitempty"`
	Path       Path                      `json:"path,omitempty"`
	Extensions map[string]any            `json:"extensions,omitempty"`
}

func (e GraphQLError) Error() string {
	return e.Message
}

// ToGQLError converts the error to the parser's wire error shape.
func (e GraphQLError) ToGQLError() *gqlerror.Error {
	out := &gqlerror.Error{Message: e.Message, Extensions: e.Extensions}
	for _, loc := range e.Locations {
		out.Locations = append(out.Locations, gqlerror.Location{Line: loc.Line, Column: loc.Column})
	}
	for _, elem := range e.Path {
		switch v := elem.(type) {
		case string:
			out.Path = append(out.Path, ast.PathName(v))
		case int:
			out.Path = append(out.Path, ast.PathIndex(v))
		}
	}
	return out
}

// ExecutionResult represents the result of executing a GraphQL query
type ExecutionResult struct {
	Data   value.Value    `json:"data"`
	Errors []GraphQLError `json:"errors,omitempty"`
}

var (
	ErrNoOperation           = errors.New("document does not contain any operation")
	ErrUnknownOperation      = errors.New("unknown operation")
	ErrOperationNameRequired = errors.New("operation name required")
	ErrUnsupportedOperation  = errors.New("operation type not supported by schema")
	ErrVariableCoercion      = errors.New("variable coercion failed")
	ErrMaxDepthExceeded      = errors.New("maximum selection depth exceeded")
)

// RequestError is an engine-level failure detected before any field is
// resolved. It unwraps to one of the Err* sentinels.
type RequestError struct {
	Kind      error
	Message   string
	Locations []language.SourcePosition
}

func (e *RequestError) Error() string { return e.Message }

func (e *RequestError) Unwrap() error { return e.Kind }

func requestError(kind error, pos *language.Position, format string, args ...any) *RequestError {
	err := &RequestError{Kind: kind, Message: fmt.Sprintf(format, args...)}
	if pos != nil {
		err.Locations = []language.SourcePosition{language.PositionOf(pos)}
	}
	return err
}
