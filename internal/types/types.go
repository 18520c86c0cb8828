// Package types implements the six type-descriptor variants of spec §3.3
// and the central IsSubtype predicate of spec §4.2.
package types

import "strings"

// Type is the closed set of type descriptors. Implementations are
// *Simple, *Functor, *Union, *Interface, *GenericApplication, and
// *GenericParameter — a pattern-matched sum type in the idiom of
// internal/ast, not a class hierarchy: callers switch on concrete type,
// they never call virtual behavior through this interface beyond
// String() and identity.
type Type interface {
	String() string
	typeNode()
}

// Resolver is the generic-resolution half of a type environment (spec
// §3.4's generic_resolutions map), exposed here as an interface so that
// IsSubtype does not need to import internal/typeenv.
type Resolver interface {
	// Resolve looks up a previously bound GenericParameter. ok is false
	// both when the parameter is unknown to this resolver and when it
	// is known but still open (bound to nil, "to be unified").
	Resolve(param *GenericParameter) (Type, bool)
	// Bind records or confirms a resolution for param. Binding an
	// already-bound parameter to a different type is a caller error
	// (subtype checks only ever bind-once-confirm-thereafter).
	Bind(param *GenericParameter, t Type)
}

// Simple is a nominal, class-like type: a superclass link, a field
// table, a method table, and the generic parameter slots it was
// declared with (spec §3.3).
type Simple struct {
	Name       string
	Super      *Simple
	Fields     map[string]Type
	Methods    map[string]*Functor
	Generics   []*GenericParameter
	fieldOrder []string
}

func (s *Simple) typeNode() {}

func (s *Simple) String() string { return s.Name }

// NewSimple builds an empty Simple type ready for fields/methods to be
// installed.
func NewSimple(name string) *Simple {
	return &Simple{Name: name, Fields: map[string]Type{}, Methods: map[string]*Functor{}}
}

// SetField installs a field, preserving declaration order for callers
// that need to enumerate fields deterministically (module export,
// pretty-printing).
func (s *Simple) SetField(name string, t Type) {
	if _, exists := s.Fields[name]; !exists {
		s.fieldOrder = append(s.fieldOrder, name)
	}
	s.Fields[name] = t
}

// FieldOrder returns field names in declaration order.
func (s *Simple) FieldOrder() []string { return s.fieldOrder }

// Field looks up a field directly on s (no superclass walk — callers
// needing inherited lookup use LookupField).
func (s *Simple) Field(name string) (Type, bool) {
	t, ok := s.Fields[name]
	return t, ok
}

// LookupField walks the superclass chain.
func (s *Simple) LookupField(name string) (Type, bool) {
	for c := s; c != nil; c = c.Super {
		if t, ok := c.Fields[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// LookupMethod walks the superclass chain.
func (s *Simple) LookupMethod(name string) (*Functor, bool) {
	for c := s; c != nil; c = c.Super {
		if m, ok := c.Methods[name]; ok {
			return m, true
		}
	}
	return nil, false
}

// isSubtypeOfChain reports whether sup appears in s's superclass chain
// (reflexively).
func (s *Simple) isSubtypeOfChain(sup *Simple) bool {
	for c := s; c != nil; c = c.Super {
		if c == sup {
			return true
		}
	}
	return false
}

// Functor is a callable type: ordered parameter types, a return type,
// and its own generic parameter slots (spec §3.3).
type Functor struct {
	Params   []Type
	Return   Type
	Generics []*GenericParameter
}

func (f *Functor) typeNode() {}

func (f *Functor) String() string {
	var sb strings.Builder
	if len(f.Generics) > 0 {
		sb.WriteString("<")
		for i, g := range f.Generics {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(g.String())
		}
		sb.WriteString(">")
	}
	sb.WriteString("(")
	for i, p := range f.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		if p == nil {
			sb.WriteString("?")
		} else {
			sb.WriteString(p.String())
		}
	}
	sb.WriteString(") => ")
	if f.Return == nil {
		sb.WriteString("?")
	} else {
		sb.WriteString(f.Return.String())
	}
	return sb.String()
}

// Union is a right-associated pair; n-ary unions chain through Right
// (spec §3.3).
type Union struct {
	Left, Right Type
}

func (u *Union) typeNode() {}

func (u *Union) String() string {
	return u.Left.String() + " | " + u.Right.String()
}

// Interface is a structural type: a field table, a method table, an
// optional super-interface, and generic parameter slots.
type Interface struct {
	Name     string
	Super    *Interface
	Fields   map[string]Type
	Methods  map[string]*Functor
	Generics []*GenericParameter
}

func (i *Interface) typeNode() {}

func (i *Interface) String() string { return i.Name }

// NewInterface builds an empty Interface type.
func NewInterface(name string) *Interface {
	return &Interface{Name: name, Fields: map[string]Type{}, Methods: map[string]*Functor{}}
}

// LookupField walks the super-interface chain.
func (i *Interface) LookupField(name string) (Type, bool) {
	for c := i; c != nil; c = c.Super {
		if t, ok := c.Fields[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// LookupMethod walks the super-interface chain.
func (i *Interface) LookupMethod(name string) (*Functor, bool) {
	for c := i; c != nil; c = c.Super {
		if m, ok := c.Methods[name]; ok {
			return m, true
		}
	}
	return nil, false
}

// GenericApplication instantiates a generic target (a Simple or
// Interface declared with generic parameters, or one of the built-in
// generic targets List/Map/Task) with concrete type arguments, e.g.
// List<Number> (spec §3.3).
type GenericApplication struct {
	Target Type
	Args   []Type
}

func (g *GenericApplication) typeNode() {}

func (g *GenericApplication) String() string {
	var sb strings.Builder
	sb.WriteString(g.Target.String())
	sb.WriteString("<")
	for i, a := range g.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.String())
	}
	sb.WriteString(">")
	return sb.String()
}

// GenericParameter is an open slot introduced by a TypeDeclaration
// header, optionally bounded by `extends`. It is resolved per-call via
// the active environment's generic-resolution table, keyed on this
// descriptor's identity (spec §3.3, §4.3).
type GenericParameter struct {
	Name    string
	Extends Type // nil when unbounded; the checker stores Any for a header without `extends`
}

func (g *GenericParameter) typeNode() {}

func (g *GenericParameter) String() string { return g.Name }

// Built-in singletons, process-wide (spec §3.3).
var (
	Number = NewSimple("Number")
	Bool   = NewSimple("Bool")
	Nil    = NewSimple("Nil")
	Atom   = NewSimple("Atom")
	String = NewSimple("String")
	Never  = NewSimple("Never")
	Any    = NewSimple("Any")
)

// Generic-target singletons: List<T>, Map<K,V>, Task<T>. These are the
// `target` descriptors a GenericApplication points at when user code
// writes List<Number> or spawns a Task.
var (
	listElem = &GenericParameter{Name: "T"}
	List     = simpleGenericTarget("List", listElem)

	mapKey   = &GenericParameter{Name: "K"}
	mapValue = &GenericParameter{Name: "V"}
	Map      = simpleGenericTarget("Map", mapKey, mapValue)

	taskElem = &GenericParameter{Name: "T"}
	Task     = simpleGenericTarget("Task", taskElem)
)

func simpleGenericTarget(name string, params ...*GenericParameter) *Simple {
	s := NewSimple(name)
	s.Generics = params
	return s
}

// ListOf builds List<elem>.
func ListOf(elem Type) *GenericApplication { return &GenericApplication{Target: List, Args: []Type{elem}} }

// MapOf builds Map<key, value>.
func MapOf(key, value Type) *GenericApplication {
	return &GenericApplication{Target: Map, Args: []Type{key, value}}
}

// TaskOf builds Task<result>.
func TaskOf(result Type) *GenericApplication { return &GenericApplication{Target: Task, Args: []Type{result}} }
