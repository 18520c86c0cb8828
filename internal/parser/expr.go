package parser

import (
	"strconv"

	"github.com/cwbudde/lark/internal/ast"
	"github.com/cwbudde/lark/internal/token"
)

const maxCallArgs = 255

func (p *Parser) parseLiteral(canAssign bool) ast.Expression {
	tok := p.cur
	p.advance()

	lit := &ast.Literal{Token: tok, Value: literalValue(tok)}
	p.register(lit, tok.Pos)
	return lit
}

func literalValue(tok token.Token) any {
	switch tok.Kind {
	case token.NUMBER:
		if tok.Literal != nil {
			return tok.Literal
		}
		v, _ := strconv.ParseFloat(tok.Lexeme, 64)
		return v
	case token.STRING, token.ATOM:
		return tok.Literal
	case token.TRUE:
		return true
	case token.FALSE:
		return false
	default:
		return nil
	}
}

func (p *Parser) parseVariable(canAssign bool) ast.Expression {
	name := p.cur
	p.advance()

	if canAssign && p.check(token.EQUAL) {
		p.advance()
		value := p.parseExpression()
		assign := &ast.Assign{Name: name, Value: value}
		p.register(assign, name.Pos)
		return assign
	}

	v := &ast.Variable{Name: name}
	p.register(v, name.Pos)
	return v
}

func (p *Parser) parseGrouping(canAssign bool) ast.Expression {
	p.advance() // '('
	expr := p.parseExpression()
	p.consume(token.RPAREN, "Expect ')' after expression.")
	return expr
}

func (p *Parser) parseUnary(canAssign bool) ast.Expression {
	op := p.cur
	p.advance()
	right := p.parsePrecedence(PrecUnary)
	u := &ast.Unary{Op: op, Right: right}
	p.register(u, op.Pos)
	return u
}

func (p *Parser) parseBinary(left ast.Expression, canAssign bool) ast.Expression {
	op := p.cur
	prec := precedenceOf(op.Kind)
	p.advance()
	right := p.parsePrecedence(prec + 1)
	b := &ast.Binary{Left: left, Op: op, Right: right}
	p.register(b, left.Pos())
	return b
}

// parseLogical implements `and`/`or`: both are right-associative
// short-circuit logicals per spec §4.1, parsing the right side at the
// same precedence level rather than one higher.
func (p *Parser) parseLogical(left ast.Expression, canAssign bool) ast.Expression {
	op := p.cur
	prec := precedenceOf(op.Kind)
	p.advance()
	right := p.parsePrecedence(prec)
	l := &ast.Logical{Left: left, Op: op, Right: right}
	p.register(l, left.Pos())
	return l
}

func (p *Parser) parseCall(left ast.Expression, canAssign bool) ast.Expression {
	paren := p.cur
	p.advance()

	var args []ast.Expression
	if !p.check(token.RPAREN) {
		for {
			if len(args) >= maxCallArgs {
				p.errorAtCurrent("Can't have more than 255 arguments.")
			}
			args = append(args, p.parseExpression())
			if !p.match(token.COMMA) {
				break
			}
			if p.check(token.RPAREN) {
				// trailing comma before ')': allowed (spec §4.1).
				break
			}
		}
	}
	p.consume(token.RPAREN, "Expect ')' after arguments.")

	call := &ast.Call{Callee: left, Paren: paren, Args: args}
	p.register(call, left.Pos())
	return call
}

func (p *Parser) parseGetItem(left ast.Expression, canAssign bool) ast.Expression {
	bracket := p.cur
	p.advance()
	index := p.parseExpression()
	p.consume(token.RBRACKET, "Expect ']' after index.")
	g := &ast.GetItem{Object: left, Bracket: bracket, Index: index}
	p.register(g, left.Pos())
	return g
}

func (p *Parser) parseDot(left ast.Expression, canAssign bool) ast.Expression {
	p.advance() // '.'
	name := p.consume(token.IDENT, "Expect property name after '.'.")

	if canAssign && p.check(token.EQUAL) {
		p.advance()
		value := p.parseExpression()
		set := &ast.Set{Object: left, Name: name, Value: value}
		p.register(set, left.Pos())
		return set
	}

	get := &ast.Get{Object: left, Name: name}
	p.register(get, left.Pos())
	return get
}

// parsePipeCall implements `x | f(y)` (spec §4.1): re-parses the
// right-hand side at Call precedence, requires a Call node, and
// left-shifts its arguments to insert x at position 0.
func (p *Parser) parsePipeCall(left ast.Expression, canAssign bool) ast.Expression {
	p.advance() // '|'
	rhs := p.parsePrecedence(PrecCall)
	call, ok := rhs.(*ast.Call)
	if !ok {
		p.errorAtCurrent("Expected functional call after pipe operator")
		return left
	}
	call.Args = append([]ast.Expression{left}, call.Args...)
	return call
}

func (p *Parser) parseListExpr(canAssign bool) ast.Expression {
	bracket := p.cur
	p.advance()

	var elements []ast.Expression
	if !p.check(token.RBRACKET) {
		for {
			elements = append(elements, p.parseExpression())
			if !p.match(token.COMMA) {
				break
			}
			if p.check(token.RBRACKET) {
				break
			}
		}
	}
	p.consume(token.RBRACKET, "Expect ']' after list elements.")

	l := &ast.ListExpr{Bracket: bracket, Elements: elements}
	p.register(l, bracket.Pos)
	return l
}

func (p *Parser) parseMapExpr(canAssign bool) ast.Expression {
	brace := p.cur
	p.advance()

	var keys, values []ast.Expression
	if !p.check(token.RBRACE) {
		for {
			keys = append(keys, p.parseExpression())
			p.consume(token.COLON, "Expect ':' after map key.")
			values = append(values, p.parseExpression())
			if !p.match(token.COMMA) {
				break
			}
			if p.check(token.RBRACE) {
				break
			}
		}
	}
	p.consume(token.RBRACE, "Expect '}' after map entries.")

	m := &ast.MapExpr{Brace: brace, Keys: keys, Values: values}
	p.register(m, brace.Pos)
	return m
}

func (p *Parser) parseThis(canAssign bool) ast.Expression {
	keyword := p.cur
	p.advance()
	t := &ast.ThisExpr{Keyword: keyword}
	p.register(t, keyword.Pos)
	return t
}

func (p *Parser) parseSuper(canAssign bool) ast.Expression {
	keyword := p.cur
	p.advance()
	p.consume(token.DOT, "Expect '.' after 'super'.")
	method := p.consume(token.IDENT, "Expect superclass method name.")
	s := &ast.SuperExpr{Keyword: keyword, Method: method}
	p.register(s, keyword.Pos)
	return s
}

func (p *Parser) parseYield(canAssign bool) ast.Expression {
	keyword := p.cur
	p.advance()

	var value ast.Expression
	if !p.check(token.SEMICOLON) && !p.check(token.RPAREN) && !p.check(token.RBRACE) && !p.check(token.COMMA) && !p.check(token.EOF) {
		value = p.parseExpression()
	}
	y := &ast.YieldExpr{Keyword: keyword, Value: value}
	p.register(y, keyword.Pos)
	return y
}

// parseLambda handles `fun` in expression position: `fun(...) { ... }`
// or `fun(...) expr` (spec §4.1), producing a Lambda whose body is the
// single expression auto-wrapped in a Return when no brace follows.
func (p *Parser) parseLambda(canAssign bool) ast.Expression {
	keyword := p.cur
	p.advance()

	generics := p.parseGenericParamsOpt()
	params := p.parseParamList()
	retType := p.parseReturnTypeOpt()

	sig := &ast.FunctorType{Generics: generics, Params: paramTypesOf(params), Return: retType}
	p.register(sig, keyword.Pos)

	var body []ast.Statement
	if p.check(token.LBRACE) {
		body = p.parseBlockStatements()
	} else {
		expr := p.parseExpression()
		ret := &ast.ReturnStmt{Keyword: keyword, Value: expr}
		p.register(ret, keyword.Pos)
		body = []ast.Statement{ret}
	}

	l := &ast.Lambda{Keyword: keyword, Params: params, Signature: sig, Body: body}
	p.register(l, keyword.Pos)
	return l
}

func paramTypesOf(params []*ast.Param) []ast.TypeExpr {
	out := make([]ast.TypeExpr, len(params))
	for i, p := range params {
		out[i] = p.Type
	}
	return out
}
