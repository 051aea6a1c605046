package validation

import (
	"strings"

	"github.com/samber/lo"
	"github.com/vektah/gqlparser/v2/gqlerror"

	language "github.com/hanpama/gqlcore/internal/language"
)

// RuleError is a single validation failure with the source positions it
// refers to.
type RuleError struct {
	Message   string
	Locations []language.SourcePosition
}

func (e RuleError) Error() string { return e.Message }

// ToGQLError converts the error to the GraphQL response error shape.
func (e RuleError) ToGQLError() *gqlerror.Error {
	return &gqlerror.Error{
		Message: e.Message,
		Locations: lo.Map(e.Locations, func(p language.SourcePosition, _ int) gqlerror.Location {
			return gqlerror.Location{Line: p.Line, Column: p.Column}
		}),
	}
}

// Errors is the result of a failed validation.
type Errors []RuleError

func (errs Errors) Error() string {
	return strings.Join(lo.Map(errs, func(e RuleError, _ int) string { return e.Message }), "; ")
}

// ToGQLErrors converts every error, keeping their order.
func (errs Errors) ToGQLErrors() gqlerror.List {
	return lo.Map(errs, func(e RuleError, _ int) *gqlerror.Error { return e.ToGQLError() })
}
