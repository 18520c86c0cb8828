package parser

import (
	"github.com/cwbudde/lark/internal/ast"
	"github.com/cwbudde/lark/internal/token"
)

// parseType implements spec §4.1's grammar: `typeAnn := simple |
// '<' generic_params '>' functor | '(' functor | typeAnn '|' typeAnn`,
// with union right-associative.
func (p *Parser) parseType() ast.TypeExpr {
	left := p.parseTypeUnary()
	if p.check(token.PIPE) {
		p.advance()
		right := p.parseType()
		u := &ast.UnionType{Left: left, Right: right}
		p.register(u, left.Pos())
		return u
	}
	return left
}

func (p *Parser) parseTypeUnary() ast.TypeExpr {
	switch {
	case p.check(token.LESS):
		start := p.cur.Pos
		generics := p.parseGenericParamsOpt()
		return p.parseFunctorType(start, generics)
	case p.check(token.LPAREN):
		start := p.cur.Pos
		return p.parseFunctorType(start, nil)
	default:
		return p.parseSimpleType()
	}
}

func (p *Parser) parseSimpleType() ast.TypeExpr {
	name := p.consume(token.IDENT, "Expect type name.")
	s := &ast.SimpleType{Name: name}
	if p.check(token.LESS) {
		p.advance()
		if !p.check(token.GREATER) {
			for {
				s.Generics = append(s.Generics, p.parseType())
				if !p.match(token.COMMA) {
					break
				}
			}
		}
		p.consume(token.GREATER, "Expect '>' after type arguments.")
	}
	p.register(s, name.Pos)
	return s
}

// parseFunctorType parses the `(params) => return` tail that both the
// `<generics>(...)` and bare `(...)` functor-type forms share.
func (p *Parser) parseFunctorType(start token.Position, generics []*ast.TypeDeclaration) ast.TypeExpr {
	p.consume(token.LPAREN, "Expect '(' in functor type.")
	var params []ast.TypeExpr
	if !p.check(token.RPAREN) {
		for {
			params = append(params, p.parseType())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RPAREN, "Expect ')' after functor parameters.")
	p.consume(token.ARROW, "Expect '=>' in functor type.")
	ret := p.parseType()

	f := &ast.FunctorType{Generics: generics, Params: params, Return: ret}
	p.register(f, start)
	return f
}

// parseGenericParamsOpt parses `'<' ident ('extends' type)? (',' ...)* '>'`
// when the current token is `<`; an empty `<>` list is allowed. Returns
// nil when there is no generic-parameter list at all.
func (p *Parser) parseGenericParamsOpt() []*ast.TypeDeclaration {
	if !p.check(token.LESS) {
		return nil
	}
	p.advance()

	var params []*ast.TypeDeclaration
	if !p.check(token.GREATER) {
		for {
			name := p.consume(token.IDENT, "Expect generic parameter name.")
			var extends ast.TypeExpr
			if p.match(token.EXTENDS) {
				extends = p.parseType()
			}
			decl := &ast.TypeDeclaration{Name: name, Extends: extends}
			p.register(decl, name.Pos)
			params = append(params, decl)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.GREATER, "Expect '>' after generic parameters.")
	return params
}

// parseReturnTypeOpt parses an optional `: Type` return annotation.
func (p *Parser) parseReturnTypeOpt() ast.TypeExpr {
	if !p.match(token.COLON) {
		return nil
	}
	return p.parseType()
}

// parseParamList parses a parenthesized, comma-separated parameter
// list with optional `: Type` annotations.
func (p *Parser) parseParamList() []*ast.Param {
	p.consume(token.LPAREN, "Expect '(' before parameter list.")
	var params []*ast.Param
	if !p.check(token.RPAREN) {
		for {
			name := p.consume(token.IDENT, "Expect parameter name.")
			var typ ast.TypeExpr
			if p.match(token.COLON) {
				typ = p.parseType()
			}
			params = append(params, &ast.Param{Name: name, Type: typ})
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RPAREN, "Expect ')' after parameters.")
	return params
}
