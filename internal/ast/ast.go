// Package ast defines the AST node set described in spec §3.2: a closed
// tagged variant, expressed the idiomatic Go way as a set of concrete
// struct types satisfying a small common interface and switched on by
// concrete type at every traversal site (the checker never dispatches
// through virtual methods beyond Kind/Pos/String).
//
// Every node carries a Kind tag, a mark bit, and is registered in a Pool
// that the collector enumerates as a GC root (spec §3.2, §6, §9). Nodes
// own their children; there is no subtree sharing.
package ast

import (
	"github.com/cwbudde/lark/internal/token"
	"github.com/cwbudde/lark/internal/types"
)

// Kind tags every node with its concrete variant, satisfying spec §3.2's
// "type-kind tag" requirement independent of Go's own type-switch
// mechanics (useful for the pretty-printer and for exhaustiveness
// checks that want to range over the closed set without reflection).
type Kind int

const (
	KLiteral Kind = iota
	KVariable
	KAssign
	KUnary
	KBinary
	KLogical
	KCall
	KGet
	KSet
	KGetItem
	KList
	KMap
	KLambda
	KSuper
	KThis
	KYield

	KExpressionStmt
	KVar
	KBlock
	KFunction
	KClass
	KInterface
	KIf
	KWhile
	KFor
	KBreak
	KReturn
	KImport
	KTypeDeclaration
	KEnum
	KEnumItem
	KMethodSig

	KSimpleType
	KFunctorType
	KUnionType
)

// Node is satisfied by every AST node, expression, statement, or type
// expression alike.
type Node interface {
	Kind() Kind
	Pos() token.Position
	String() string
}

// Expression is any node that produces a value. ResolvedType/
// SetResolvedType implement the "resolved_type slot" of spec §3.2,
// filled in by the checker.
type Expression interface {
	Node
	expressionNode()
	ResolvedType() types.Type
	SetResolvedType(types.Type)
}

// Statement is any node that performs an action without producing a
// value.
type Statement interface {
	Node
	statementNode()
}

// TypeExpr is the subset of node variants that appear in type
// annotations: Simple, Functor, Union, and TypeDeclaration (reused as a
// generic-parameter header — spec §3.2).
type TypeExpr interface {
	Node
	typeExprNode()
}

// header is embedded in every concrete node. It carries the GC mark bit
// and the resolved-type slot for expressions; statements and type
// expressions embed it purely for the mark bit and Pos/Kind plumbing.
type header struct {
	pos      token.Position
	marked   bool
	resolved types.Type
}

func (h *header) Pos() token.Position       { return h.pos }
func (h *header) SetPos(pos token.Position) { h.pos = pos }
func (h *header) Mark() bool                { return h.marked }
func (h *header) SetMark(v bool)            { h.marked = v }
func (h *header) ResolvedType() types.Type  { return h.resolved }
func (h *header) SetResolvedType(t types.Type) { h.resolved = t }

// Program is the root of the AST: the top-level statement sequence
// returned by parse_program (spec §4.1).
type Program struct {
	Statements []Statement
}

// Pool registers every node allocated while parsing one translation
// unit and is the "AST node pool" component of spec §2: nodes are
// reachable from here even when nothing else still references them
// directly, and the collector sweeps this list (spec §3.2's lifecycle
// note, §9's GC integration note).
type Pool struct {
	nodes []Node
}

// NewPool returns an empty node pool.
func NewPool() *Pool { return &Pool{} }

// Register adds n to the pool. The parser calls this for every node it
// allocates.
func (p *Pool) Register(n Node) { p.nodes = append(p.nodes, n) }

// Len reports how many live nodes the pool currently holds.
func (p *Pool) Len() int { return len(p.nodes) }

// All returns every node currently registered, in allocation order.
func (p *Pool) All() []Node { return p.nodes }

// marker adapts a Node to gc.Markable without internal/gc depending on
// internal/ast (or vice versa): nodes that embed header already satisfy
// this shape, Sweep just needs to see it through the Node interface.
type marker interface {
	Mark() bool
	SetMark(bool)
}

// MarkRoots calls mark on every node registered in the pool. That
// includes nodes the parser allocated and then left out of the tree
// (for example the right-hand side of a rejected pipe call), so every
// registered node is offered to mark whether or not the Program still
// reaches it. Sweep then discards anything left unmarked.
func (p *Pool) MarkRoots(mark func(n Node)) {
	for _, n := range p.nodes {
		mark(n)
	}
}

// Sweep removes every node whose mark bit is false and clears the mark
// bit on every node that survives, readying the pool for the next
// collection cycle.
func (p *Pool) Sweep() (freed int) {
	live := p.nodes[:0]
	for _, n := range p.nodes {
		if m, ok := n.(marker); ok && m.Mark() {
			m.SetMark(false)
			live = append(live, n)
		} else {
			freed++
		}
	}
	p.nodes = live
	return freed
}
