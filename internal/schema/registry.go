package schema

import (
	"errors"
	"fmt"
	"sort"

	"github.com/samber/lo"
)

var (
	// ErrDuplicateType is returned when a name is registered twice.
	ErrDuplicateType = errors.New("type already registered")
	// ErrFrozen is returned when a registry owned by a Schema is modified.
	ErrFrozen = errors.New("registry is read-only")
)

// Registry memoizes named types while a schema is being assembled. Types
// reference each other by name, so cyclic graphs need no pointer cycles.
type Registry struct {
	types  map[string]*Type
	order  []string
	frozen bool
}

func NewRegistry() *Registry {
	return &Registry{types: make(map[string]*Type)}
}

// GetOrBuild returns the type registered under name, building it on first
// use. The entry is reserved before build runs, so a builder that asks for
// its own name (directly or through another type) gets the reserved entry
// back instead of recursing. The reserved entry is filled in place and stays
// the canonical pointer for name.
func (r *Registry) GetOrBuild(name string, build func(*Registry) *Type) *Type {
	if t, ok := r.types[name]; ok {
		return t
	}
	if r.frozen {
		return nil
	}
	placeholder := &Type{Name: name}
	r.types[name] = placeholder
	r.order = append(r.order, name)

	built := build(r)
	if built != nil && built != placeholder {
		*placeholder = *built
	}
	placeholder.Name = name
	return placeholder
}

type registrySnapshot struct {
	order    int
	possible map[string][]string
}

// snapshot records what New mutates: the registration order and the
// possible types of abstract types.
func (r *Registry) snapshot() registrySnapshot {
	snap := registrySnapshot{order: len(r.order), possible: map[string][]string{}}
	for _, t := range r.types {
		if t.IsAbstract() {
			snap.possible[t.Name] = append([]string(nil), t.PossibleTypes...)
		}
	}
	return snap
}

// restore unregisters types added after snap and resets possible types.
func (r *Registry) restore(snap registrySnapshot) {
	for _, name := range r.order[snap.order:] {
		delete(r.types, name)
	}
	r.order = r.order[:snap.order]
	for name, possible := range snap.possible {
		r.types[name].PossibleTypes = possible
	}
}

// Register adds a fully built type.
func (r *Registry) Register(t *Type) error {
	if r.frozen {
		return fmt.Errorf("register %s: %w", t.Name, ErrFrozen)
	}
	if _, ok := r.types[t.Name]; ok {
		return fmt.Errorf("register %s: %w", t.Name, ErrDuplicateType)
	}
	r.types[t.Name] = t
	r.order = append(r.order, t.Name)
	return nil
}

// MustRegister is Register for static type tables.
func (r *Registry) MustRegister(types ...*Type) *Registry {
	for _, t := range types {
		if err := r.Register(t); err != nil {
			panic(err)
		}
	}
	return r
}

// Type returns the type registered under name, or nil.
func (r *Registry) Type(name string) *Type { return r.types[name] }

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.types[name]
	return ok
}

// TypeNames returns all registered names in sorted order.
func (r *Registry) TypeNames() []string {
	names := lo.Keys(r.types)
	sort.Strings(names)
	return names
}

// Ordered returns the registered types in registration order.
func (r *Registry) Ordered() []*Type {
	return lo.Map(r.order, func(name string, _ int) *Type { return r.types[name] })
}

// Check reports every reference to a name that is not registered.
func (r *Registry) Check() error {
	var errs []error
	missing := func(owner, name string) {
		if !r.Has(name) {
			errs = append(errs, fmt.Errorf("%s refers to unknown type %s", owner, name))
		}
	}
	for _, t := range r.Ordered() {
		for _, f := range t.Fields {
			missing(t.Name+"."+f.Name, f.Type.GetNamedType())
			for _, a := range f.Arguments {
				missing(t.Name+"."+f.Name+"("+a.Name+":)", a.Type.GetNamedType())
			}
		}
		for _, name := range t.Interfaces {
			missing(t.Name, name)
		}
		for _, name := range t.PossibleTypes {
			missing(t.Name, name)
		}
		for _, f := range t.InputFields {
			missing(t.Name+"."+f.Name, f.Type.GetNamedType())
		}
	}
	return errors.Join(errs...)
}
