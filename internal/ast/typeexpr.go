package ast

import (
	"strings"

	"github.com/cwbudde/lark/internal/token"
)

func (*SimpleType) typeExprNode()    {}
func (*FunctorType) typeExprNode()   {}
func (*UnionType) typeExprNode()     {}
func (*TypeDeclaration) typeExprNode() {}

func (*SimpleType) Kind() Kind  { return KSimpleType }
func (*FunctorType) Kind() Kind { return KFunctorType }
func (*UnionType) Kind() Kind   { return KUnionType }

// SimpleType is a nominal type reference, optionally generic-applied:
// `Number`, `List<Number>`.
type SimpleType struct {
	header
	Name     token.Token
	Generics []TypeExpr
}

func (s *SimpleType) String() string {
	if len(s.Generics) == 0 {
		return s.Name.Lexeme
	}
	parts := make([]string, len(s.Generics))
	for i, g := range s.Generics {
		parts[i] = g.String()
	}
	return s.Name.Lexeme + "<" + strings.Join(parts, ", ") + ">"
}

// FunctorType is a callable type annotation: `<T>(T) => T` or
// `(Number, String) => Bool`.
type FunctorType struct {
	header
	Generics []*TypeDeclaration
	Params   []TypeExpr
	Return   TypeExpr
}

func (f *FunctorType) String() string {
	var sb strings.Builder
	if len(f.Generics) > 0 {
		gens := make([]string, len(f.Generics))
		for i, g := range f.Generics {
			gens[i] = g.String()
		}
		sb.WriteString("<" + strings.Join(gens, ", ") + ">")
	}
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.String()
	}
	sb.WriteString("(" + strings.Join(params, ", ") + ") => ")
	if f.Return != nil {
		sb.WriteString(f.Return.String())
	}
	return sb.String()
}

// UnionType is a right-associated `Left | Right` annotation.
type UnionType struct {
	header
	Left, Right TypeExpr
}

func (u *UnionType) String() string { return u.Left.String() + " | " + u.Right.String() }

// TypeDeclaration plays two roles (spec §3.2), distinguished by which
// fields are populated:
//
//   - As a top-level statement (`type Name<Generics> = Value;`), Name
//     and Value are set and Generics holds the declaration's own
//     generic-parameter headers.
//   - As a generic-parameter header inside another declaration's `<...>`
//     list (`<T extends Number>`), only Name and optionally Extends are
//     set; Value and Generics are nil/empty.
type TypeDeclaration struct {
	header
	Name     token.Token
	Generics []*TypeDeclaration
	Extends  TypeExpr // generic-parameter bound; nil when unbounded
	Value    TypeExpr // type-alias target; nil when used as a parameter header
}

func (t *TypeDeclaration) String() string {
	if t.Value != nil {
		return "type " + t.Name.Lexeme + " = " + t.Value.String() + ";"
	}
	if t.Extends != nil {
		return t.Name.Lexeme + " extends " + t.Extends.String()
	}
	return t.Name.Lexeme
}
