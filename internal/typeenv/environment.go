// Package typeenv implements the stacked type environment of spec §3.4:
// per-scope value bindings, type bindings, and a generic-resolution
// table, linked to an enclosing scope for outward lookup. The shape is
// grounded on the teacher's internal/semantic.SymbolTable/outer chain,
// generalized with the typedefs and generic-resolution maps this
// language's generics require.
package typeenv

import "github.com/cwbudde/lark/internal/types"

// Environment is one scope. The zero value is not usable; build scopes
// with New or NewChild.
type Environment struct {
	locals   map[string]types.Type
	typedefs map[string]types.Type
	generics map[*types.GenericParameter]types.Type
	parent   *Environment
}

// New creates a fresh top-level Environment with no enclosing scope.
func New() *Environment {
	return &Environment{
		locals:   map[string]types.Type{},
		typedefs: map[string]types.Type{},
		generics: map[*types.GenericParameter]types.Type{},
	}
}

// NewChild creates a scope enclosed by parent.
func NewChild(parent *Environment) *Environment {
	e := New()
	e.parent = parent
	return e
}

// Parent returns the enclosing scope, or nil at the top level.
func (e *Environment) Parent() *Environment { return e.parent }

// DefineLocal binds name to a value type in this scope.
func (e *Environment) DefineLocal(name string, t types.Type) {
	e.locals[name] = t
}

// DefineTypedef binds name to a type descriptor in this scope.
func (e *Environment) DefineTypedef(name string, t types.Type) {
	e.typedefs[name] = t
}

// LookupLocal walks outward from this scope for a value binding.
func (e *Environment) LookupLocal(name string) (types.Type, bool) {
	for s := e; s != nil; s = s.parent {
		if t, ok := s.locals[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// LookupTypedef walks outward from this scope for a type binding.
func (e *Environment) LookupTypedef(name string) (types.Type, bool) {
	for s := e; s != nil; s = s.parent {
		if t, ok := s.typedefs[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// SeedGeneric opens param as "to be unified" in this scope, per spec
// §4.3's Call contract: a fresh scope is seeded with a nil entry for
// each of a functor's generic parameters before its arguments are
// checked.
func (e *Environment) SeedGeneric(param *types.GenericParameter) {
	if _, exists := e.generics[param]; !exists {
		e.generics[param] = nil
	}
}

// Resolve implements types.Resolver. It walks outward from this scope;
// the first scope that has ever seeded or bound param wins, matching
// lexical shadowing of generic parameters across nested calls.
func (e *Environment) Resolve(param *types.GenericParameter) (types.Type, bool) {
	for s := e; s != nil; s = s.parent {
		if t, ok := s.generics[param]; ok {
			return t, t != nil
		}
	}
	return nil, false
}

// Bind implements types.Resolver. It writes into the scope that seeded
// param, or into this scope if no ancestor has seen it yet — bind-once,
// confirm-thereafter is then just "find and overwrite the nil slot".
func (e *Environment) Bind(param *types.GenericParameter, t types.Type) {
	for s := e; s != nil; s = s.parent {
		if _, ok := s.generics[param]; ok {
			s.generics[param] = t
			return
		}
	}
	e.generics[param] = t
}
