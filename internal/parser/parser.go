// Package parser implements the Pratt/recursive-descent parser of spec
// §4.1: expressions climb by precedence through prefix/infix parselet
// tables, declarations and statements are plain recursive descent. It
// is grounded on the teacher's internal/parser (registerPrefix/
// registerInfix tables, a precedence map, curToken/peekToken
// bookkeeping, panic-mode error recovery via synchronize()), scaled
// down to this grammar's single-token lookahead.
package parser

import (
	"github.com/cwbudde/lark/internal/ast"
	"github.com/cwbudde/lark/internal/diag"
	"github.com/cwbudde/lark/internal/lexer"
	"github.com/cwbudde/lark/internal/token"
)

// Precedence levels, lowest to highest (spec §4.1's twelve-level
// table).
const (
	PrecNone int = iota
	PrecAssignment
	PrecYield
	PrecOr
	PrecAnd
	PrecEquality
	PrecComparison
	PrecTerm
	PrecFactor
	PrecUnary
	PrecCall
	PrecPrimary
)

var precedences = map[token.Kind]int{
	token.EQUAL:         PrecAssignment,
	token.PIPE:          PrecYield,
	token.OR:            PrecOr,
	token.AND:           PrecAnd,
	token.EQUAL_EQUAL:   PrecEquality,
	token.BANG_EQUAL:    PrecEquality,
	token.LESS:          PrecComparison,
	token.LESS_EQUAL:    PrecComparison,
	token.GREATER:       PrecComparison,
	token.GREATER_EQUAL: PrecComparison,
	token.PLUS:          PrecTerm,
	token.MINUS:         PrecTerm,
	token.PERCENT:       PrecTerm,
	token.STAR:          PrecFactor,
	token.SLASH:         PrecFactor,
	token.LPAREN:        PrecCall,
	token.LBRACKET:      PrecCall,
	token.DOT:           PrecCall,
}

func precedenceOf(k token.Kind) int {
	if p, ok := precedences[k]; ok {
		return p
	}
	return PrecNone
}

// canAssign is threaded through every parselet so that variable/dot can
// decide whether a trailing `=` is legal at this precedence (spec
// §4.1: "Assignment is permitted only when entered at p ≤ Assignment;
// otherwise a trailing '=' produces ... 'Invalid assignment target'"),
// matching the classic Pratt-for-Lox pattern rather than modeling `=`
// as a generic infix operator.
type prefixFn func(canAssign bool) ast.Expression
type infixFn func(left ast.Expression, canAssign bool) ast.Expression

// Parser drives parse_program (spec §4.1). It is single-use: build one
// per translation unit.
type Parser struct {
	lx   *lexer.Lexer
	pool *ast.Pool
	diag *diag.Bag
	file string

	cur  token.Token
	next token.Token

	prefixFns map[token.Kind]prefixFn
	infixFns  map[token.Kind]infixFn

	panicMode bool
	loopDepth int
}

// New builds a Parser over src. pool receives every node the parser
// allocates (spec §3.2's "AST node pool"); diags receives every
// diagnostic (spec §4.1, §6, §7).
func New(file, src string, pool *ast.Pool, diags *diag.Bag) *Parser {
	p := &Parser{
		lx:   lexer.New(src),
		pool: pool,
		diag: diags,
		file: file,
	}
	p.prefixFns = map[token.Kind]prefixFn{
		token.NUMBER:    p.parseLiteral,
		token.STRING:    p.parseLiteral,
		token.ATOM:      p.parseLiteral,
		token.TRUE:      p.parseLiteral,
		token.FALSE:     p.parseLiteral,
		token.NIL:       p.parseLiteral,
		token.IDENT:     p.parseVariable,
		token.LPAREN:    p.parseGrouping,
		token.LBRACKET:  p.parseListExpr,
		token.LBRACE:    p.parseMapExpr,
		token.MINUS:     p.parseUnary,
		token.BANG:      p.parseUnary,
		token.THIS:      p.parseThis,
		token.SUPER:     p.parseSuper,
		token.YIELD:     p.parseYield,
		token.FUN:       p.parseLambda,
	}
	p.infixFns = map[token.Kind]infixFn{
		token.PLUS:          p.parseBinary,
		token.MINUS:         p.parseBinary,
		token.PERCENT:       p.parseBinary,
		token.STAR:          p.parseBinary,
		token.SLASH:         p.parseBinary,
		token.EQUAL_EQUAL:   p.parseBinary,
		token.BANG_EQUAL:    p.parseBinary,
		token.LESS:          p.parseBinary,
		token.LESS_EQUAL:    p.parseBinary,
		token.GREATER:       p.parseBinary,
		token.GREATER_EQUAL: p.parseBinary,
		token.AND:           p.parseLogical,
		token.OR:            p.parseLogical,
		token.LPAREN:        p.parseCall,
		token.LBRACKET:      p.parseGetItem,
		token.DOT:           p.parseDot,
		token.PIPE:          p.parsePipeCall,
	}

	p.advance()
	p.advance()
	return p
}

// positioned is satisfied by every concrete node (header.SetPos is
// promoted); register uses it to stamp the node's start position
// before handing it to the pool.
type positioned interface {
	SetPos(token.Position)
}

func (p *Parser) register(n ast.Node, pos token.Position) {
	if pn, ok := n.(positioned); ok {
		pn.SetPos(pos)
	}
	p.pool.Register(n)
}

func (p *Parser) advance() {
	p.cur = p.next
	for {
		p.next = p.lx.Scan()
		if p.next.Kind != token.ILLEGAL {
			break
		}
		p.errorAt(p.next, p.next.Lexeme)
	}
}

func (p *Parser) check(k token.Kind) bool { return p.cur.Kind == k }

func (p *Parser) match(k token.Kind) bool {
	if !p.check(k) {
		return false
	}
	p.advance()
	return true
}

// consume advances past an expected token kind, reporting message if
// the current token does not match.
func (p *Parser) consume(k token.Kind, message string) token.Token {
	if p.check(k) {
		tok := p.cur
		p.advance()
		return tok
	}
	p.errorAtCurrent(message)
	return p.cur
}

func (p *Parser) errorAtCurrent(message string) {
	p.errorAt(p.cur, message)
}

// errorAt reports a diagnostic gated by panic mode, per spec §4.1's
// error-recovery contract.
func (p *Parser) errorAt(tok token.Token, message string) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	d := diag.Diagnostic{
		File:    p.file,
		Pos:     tok.Pos,
		Message: message,
		Phase:   diag.PhaseParse,
	}
	if tok.Kind == token.EOF {
		d.AtEnd = true
	} else {
		d.Lexeme = tok.Lexeme
	}
	p.diag.Report(d)
}

// synchronize discards tokens until a likely statement boundary, per
// spec §4.1: a semicolon or one of class/fun/var/for/if/while/return.
func (p *Parser) synchronize() {
	p.panicMode = false
	p.diag.Synchronize()

	for p.cur.Kind != token.EOF {
		if p.cur.Kind == token.SEMICOLON {
			p.advance()
			return
		}
		switch p.cur.Kind {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.RETURN:
			return
		}
		p.advance()
	}
}

// ParseProgram implements parse_program: returns the top-level
// statement sequence, or (nil, false) when any diagnostic was
// reported (spec §4.1).
func (p *Parser) ParseProgram() (*ast.Program, bool) {
	prog := &ast.Program{}
	for p.cur.Kind != token.EOF {
		stmt := p.parseDeclaration()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
	}
	if p.diag.HadError() {
		return nil, false
	}
	return prog, true
}

// parsePrecedence implements spec §4.1's `parse_precedence(p)`: consume
// one prefix, then while the current token's infix precedence is at
// least minPrec, consume an infix.
func (p *Parser) parsePrecedence(minPrec int) ast.Expression {
	prefix, ok := p.prefixFns[p.cur.Kind]
	if !ok {
		p.errorAtCurrent("Expect expression.")
		return nil
	}
	canAssign := minPrec <= PrecAssignment
	left := prefix(canAssign)

	for precedenceOf(p.cur.Kind) >= minPrec {
		infix, ok := p.infixFns[p.cur.Kind]
		if !ok {
			break
		}
		left = infix(left, canAssign)
	}

	if canAssign && p.check(token.EQUAL) {
		p.errorAtCurrent("Invalid assignment target")
		p.advance()
		p.parseExpression()
	}
	return left
}

func (p *Parser) parseExpression() ast.Expression {
	return p.parsePrecedence(PrecAssignment)
}
