package ast

import (
	"strings"

	"github.com/cwbudde/lark/internal/token"
)

func (*Literal) expressionNode()   {}
func (*Variable) expressionNode()  {}
func (*Assign) expressionNode()    {}
func (*Unary) expressionNode()     {}
func (*Binary) expressionNode()    {}
func (*Logical) expressionNode()   {}
func (*Call) expressionNode()      {}
func (*Get) expressionNode()       {}
func (*Set) expressionNode()       {}
func (*GetItem) expressionNode()   {}
func (*ListExpr) expressionNode()  {}
func (*MapExpr) expressionNode()   {}
func (*Lambda) expressionNode()    {}
func (*SuperExpr) expressionNode() {}
func (*ThisExpr) expressionNode()  {}
func (*YieldExpr) expressionNode() {}

func (*Literal) Kind() Kind   { return KLiteral }
func (*Variable) Kind() Kind  { return KVariable }
func (*Assign) Kind() Kind    { return KAssign }
func (*Unary) Kind() Kind     { return KUnary }
func (*Binary) Kind() Kind    { return KBinary }
func (*Logical) Kind() Kind   { return KLogical }
func (*Call) Kind() Kind      { return KCall }
func (*Get) Kind() Kind       { return KGet }
func (*Set) Kind() Kind       { return KSet }
func (*GetItem) Kind() Kind   { return KGetItem }
func (*ListExpr) Kind() Kind  { return KList }
func (*MapExpr) Kind() Kind   { return KMap }
func (*Lambda) Kind() Kind    { return KLambda }
func (*SuperExpr) Kind() Kind { return KSuper }
func (*ThisExpr) Kind() Kind  { return KThis }
func (*YieldExpr) Kind() Kind { return KYield }

// Literal is a Number, Bool, Nil, Atom, or String constant (spec §3.2).
type Literal struct {
	header
	Token token.Token
	Value any
}

func (l *Literal) String() string { return l.Token.Lexeme }

// Variable is a bare identifier reference.
type Variable struct {
	header
	Name token.Token
}

func (v *Variable) String() string { return v.Name.Lexeme }

// Assign is `name = value`.
type Assign struct {
	header
	Name  token.Token
	Value Expression
}

func (a *Assign) String() string { return a.Name.Lexeme + " = " + a.Value.String() }

// Unary is a prefix operator: `!x` or `-x`.
type Unary struct {
	header
	Op    token.Token
	Right Expression
}

func (u *Unary) String() string { return "(" + u.Op.Lexeme + u.Right.String() + ")" }

// Binary is an infix arithmetic/comparison operator.
type Binary struct {
	header
	Left  Expression
	Op    token.Token
	Right Expression
}

func (b *Binary) String() string {
	return "(" + b.Left.String() + " " + b.Op.Lexeme + " " + b.Right.String() + ")"
}

// Logical is `and`/`or`, kept distinct from Binary because both
// short-circuit (spec §4.1's parse rules).
type Logical struct {
	header
	Left  Expression
	Op    token.Token
	Right Expression
}

func (l *Logical) String() string {
	return "(" + l.Left.String() + " " + l.Op.Lexeme + " " + l.Right.String() + ")"
}

// Call is `callee(args...)`. The parser enforces the 255-argument limit
// of spec §3.2 at parse time (see internal/parser).
type Call struct {
	header
	Callee Expression
	Paren  token.Token
	Args   []Expression
}

func (c *Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return c.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}

// Get is `object.name`.
type Get struct {
	header
	Object Expression
	Name   token.Token
}

func (g *Get) String() string { return g.Object.String() + "." + g.Name.Lexeme }

// Set is `object.name = value`.
type Set struct {
	header
	Object Expression
	Name   token.Token
	Value  Expression
}

func (s *Set) String() string {
	return s.Object.String() + "." + s.Name.Lexeme + " = " + s.Value.String()
}

// GetItem is `object[index]`.
type GetItem struct {
	header
	Object  Expression
	Bracket token.Token
	Index   Expression
}

func (g *GetItem) String() string { return g.Object.String() + "[" + g.Index.String() + "]" }

// ListExpr is a `[a, b, c]` literal.
type ListExpr struct {
	header
	Bracket  token.Token
	Elements []Expression
}

func (l *ListExpr) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// MapExpr is a `{k: v, ...}` literal.
type MapExpr struct {
	header
	Brace  token.Token
	Keys   []Expression
	Values []Expression
}

func (m *MapExpr) String() string {
	parts := make([]string, len(m.Keys))
	for i := range m.Keys {
		parts[i] = m.Keys[i].String() + ": " + m.Values[i].String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Param is a function/lambda parameter: a name with an optional type
// annotation (missing annotations default to Any during checking, spec
// §4.3).
type Param struct {
	Name token.Token
	Type TypeExpr
}

// Lambda is a `fun(...) { ... }` or `fun(...) expr` expression. Its
// Signature is always a Functor TypeExpr whose arity equals len(Params)
// (spec §3.2's invariant).
type Lambda struct {
	header
	Keyword   token.Token
	Params    []*Param
	Signature *FunctorType
	Body      []Statement
}

func (l *Lambda) String() string { return "fun(...)" }

// SuperExpr is `super.method`.
type SuperExpr struct {
	header
	Keyword token.Token
	Method  token.Token
}

func (s *SuperExpr) String() string { return "super." + s.Method.Lexeme }

// ThisExpr is `this`.
type ThisExpr struct {
	header
	Keyword token.Token
}

func (t *ThisExpr) String() string { return "this" }

// YieldExpr is `yield value`; it suspends the current frame via the
// scheduler (spec §4.5) and evaluates to the resume value (untyped,
// spec §4.3).
type YieldExpr struct {
	header
	Keyword token.Token
	Value   Expression
}

func (y *YieldExpr) String() string {
	if y.Value == nil {
		return "yield"
	}
	return "yield " + y.Value.String()
}
