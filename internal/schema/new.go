package schema

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
)

type options struct {
	mutation     string
	subscription string
	description  string
	directives   []*Directive
}

// Option configures New.
type Option func(*options)

func WithMutation(typeName string) Option {
	return func(o *options) { o.mutation = typeName }
}

func WithSubscription(typeName string) Option {
	return func(o *options) { o.subscription = typeName }
}

func WithDescription(description string) Option {
	return func(o *options) { o.description = description }
}

// WithDirective declares a custom directive next to the built-in ones.
func WithDirective(d *Directive) Option {
	return func(o *options) { o.directives = append(o.directives, d) }
}

// New closes reg into a schema rooted at queryType. It registers the
// built-in scalars and directives and the introspection types, derives the
// possible types of every interface and checks that all references
// resolve. The registry must not be modified afterwards. When New fails,
// reg is left as it was passed in and may be fixed and closed again.
func New(reg *Registry, queryType string, opts ...Option) (_ *Schema, err error) {
	if reg.frozen {
		return nil, fmt.Errorf("new schema: %w", ErrFrozen)
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	snap := reg.snapshot()
	defer func() {
		if err != nil {
			reg.restore(snap)
		}
	}()

	for _, t := range builtinScalars() {
		if existing := reg.Type(t.Name); existing != nil {
			if existing.Kind != TypeKindScalar {
				return nil, fmt.Errorf("new schema: %s must be a scalar, got %s", t.Name, existing.Kind)
			}
			continue
		}
		if err := reg.Register(t); err != nil {
			return nil, fmt.Errorf("new schema: %w", err)
		}
	}
	for _, t := range introspectionTypes() {
		if err := reg.Register(t); err != nil {
			return nil, fmt.Errorf("new schema: %w", err)
		}
	}

	s := &Schema{
		QueryType:        queryType,
		MutationType:     o.mutation,
		SubscriptionType: o.subscription,
		Types:            reg.types,
		Directives:       make(map[string]*Directive),
		Description:      o.description,
		registry:         reg,
		possible:         make(map[string]map[string]bool),
	}
	for _, d := range append(builtinDirectives(), o.directives...) {
		if _, dup := s.Directives[d.Name]; dup {
			return nil, fmt.Errorf("new schema: directive @%s declared twice", d.Name)
		}
		s.Directives[d.Name] = d
	}

	derivePossibleTypes(reg)
	for _, t := range reg.Ordered() {
		if !t.IsAbstract() {
			continue
		}
		set := make(map[string]bool, len(t.PossibleTypes))
		for _, name := range t.PossibleTypes {
			set[name] = true
		}
		s.possible[t.Name] = set
	}

	if err := s.check(); err != nil {
		return nil, fmt.Errorf("new schema: %w", err)
	}
	reg.frozen = true
	return s, nil
}

// MustNew is New for schemas known to be valid, such as test fixtures.
func MustNew(reg *Registry, queryType string, opts ...Option) *Schema {
	s, err := New(reg, queryType, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// derivePossibleTypes appends each object type to the possible types of the
// interfaces it implements, in registration order.
func derivePossibleTypes(reg *Registry) {
	for _, t := range reg.Ordered() {
		if t.Kind != TypeKindObject {
			continue
		}
		for _, name := range t.Interfaces {
			iface := reg.Type(name)
			if iface == nil || iface.Kind != TypeKindInterface {
				continue
			}
			if !lo.Contains(iface.PossibleTypes, t.Name) {
				iface.PossibleTypes = append(iface.PossibleTypes, t.Name)
			}
		}
	}
}

func (s *Schema) check() error {
	errs := []error{s.registry.Check()}

	root := func(role, name string) {
		t := s.Types[name]
		switch {
		case t == nil:
			errs = append(errs, fmt.Errorf("%s type %s is not registered", role, name))
		case t.Kind != TypeKindObject:
			errs = append(errs, fmt.Errorf("%s type %s must be an object type", role, name))
		}
	}
	root("query", s.QueryType)
	if s.MutationType != "" {
		root("mutation", s.MutationType)
	}
	if s.SubscriptionType != "" {
		root("subscription", s.SubscriptionType)
	}

	for _, t := range s.registry.Ordered() {
		switch t.Kind {
		case "":
			errs = append(errs, fmt.Errorf("type %s was reserved but never built", t.Name))
		case TypeKindObject, TypeKindInterface:
			if len(t.Fields) == 0 {
				errs = append(errs, fmt.Errorf("type %s must define at least one field", t.Name))
			}
			for _, f := range t.Fields {
				if ft := s.Types[f.Type.GetNamedType()]; ft != nil && ft.Kind == TypeKindInputObject {
					errs = append(errs, fmt.Errorf("%s.%s cannot be of input type %s", t.Name, f.Name, ft.Name))
				}
				for _, a := range f.Arguments {
					if at := s.Types[a.Type.GetNamedType()]; at != nil && !at.IsInputType() {
						errs = append(errs, fmt.Errorf("%s.%s(%s:) must be an input type, got %s", t.Name, f.Name, a.Name, at.Name))
					}
				}
			}
			errs = append(errs, s.checkImplements(t)...)
		case TypeKindUnion:
			for _, name := range t.PossibleTypes {
				if m := s.Types[name]; m != nil && m.Kind != TypeKindObject {
					errs = append(errs, fmt.Errorf("union %s member %s must be an object type", t.Name, name))
				}
			}
		case TypeKindInputObject:
			for _, f := range t.InputFields {
				if ft := s.Types[f.Type.GetNamedType()]; ft != nil && !ft.IsInputType() {
					errs = append(errs, fmt.Errorf("%s.%s must be an input type, got %s", t.Name, f.Name, ft.Name))
				}
			}
		}
	}
	return errors.Join(errs...)
}

// checkImplements verifies that t declares every field of its interfaces
// with the same arguments.
func (s *Schema) checkImplements(t *Type) []error {
	var errs []error
	for _, name := range t.Interfaces {
		iface := s.Types[name]
		if iface == nil {
			continue
		}
		if iface.Kind != TypeKindInterface {
			errs = append(errs, fmt.Errorf("%s implements non-interface type %s", t.Name, name))
			continue
		}
		for _, want := range iface.Fields {
			got := t.Field(want.Name)
			if got == nil {
				errs = append(errs, fmt.Errorf("%s must declare field %s.%s", t.Name, name, want.Name))
				continue
			}
			for _, arg := range want.Arguments {
				if got.Argument(arg.Name) == nil {
					errs = append(errs, fmt.Errorf("%s.%s must accept argument %s declared by %s", t.Name, want.Name, arg.Name, name))
				}
			}
		}
	}
	return errs
}
