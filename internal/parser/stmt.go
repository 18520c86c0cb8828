package parser

import (
	"github.com/cwbudde/lark/internal/ast"
	"github.com/cwbudde/lark/internal/token"
)

// parseDeclaration is the recursive-descent entry point for one
// top-level or block-level item, with panic-mode recovery (spec
// §4.1's error-recovery contract).
func (p *Parser) parseDeclaration() ast.Statement {
	var stmt ast.Statement
	switch p.cur.Kind {
	case token.VAR:
		stmt = p.parseVarStmt()
	case token.FUN:
		stmt = p.parseFunctionStmt()
	case token.CLASS:
		stmt = p.parseClassStmt()
	case token.INTERFACE:
		stmt = p.parseInterfaceStmt()
	case token.TYPE:
		stmt = p.parseTypeDeclarationStmt()
	case token.ENUM:
		stmt = p.parseEnumStmt()
	case token.IMPORT:
		stmt = p.parseImportStmt()
	default:
		stmt = p.parseStatement()
	}

	if p.panicMode {
		p.synchronize()
	}
	return stmt
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Kind {
	case token.LBRACE:
		start := p.cur.Pos
		stmts := p.parseBlockStatements()
		b := &ast.BlockStmt{Statements: stmts}
		p.register(b, start)
		return b
	case token.IF:
		return p.parseIfStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.FOR:
		return p.parseForStmt()
	case token.BREAK:
		return p.parseBreakStmt()
	case token.RETURN:
		return p.parseReturnStmt()
	default:
		return p.parseExpressionStmt()
	}
}

func (p *Parser) parseBlockStatements() []ast.Statement {
	p.consume(token.LBRACE, "Expect '{' before block.")
	var stmts []ast.Statement
	for !p.check(token.RBRACE) && p.cur.Kind != token.EOF {
		if s := p.parseDeclaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	p.consume(token.RBRACE, "Expect '}' after block.")
	return stmts
}

func (p *Parser) parseExpressionStmt() ast.Statement {
	expr := p.parseExpression()
	p.consume(token.SEMICOLON, "Expect ';' after expression.")
	e := &ast.ExpressionStmt{Expr: expr}
	if expr != nil {
		p.register(e, expr.Pos())
	} else {
		p.register(e, p.cur.Pos)
	}
	return e
}

func (p *Parser) parseVarStmt() ast.Statement {
	keyword := p.cur
	p.advance()
	name := p.consume(token.IDENT, "Expect variable name.")

	var typ ast.TypeExpr
	if p.match(token.COLON) {
		typ = p.parseType()
	}

	var init ast.Expression
	if p.match(token.EQUAL) {
		init = p.parseExpression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after variable declaration.")

	v := &ast.VarStmt{Name: name, Type: typ, Initializer: init}
	p.register(v, keyword.Pos)
	return v
}

func (p *Parser) parseFunctionStmt() ast.Statement {
	keyword := p.cur
	p.advance()
	name := p.consume(token.IDENT, "Expect function name.")
	generics := p.parseGenericParamsOpt()
	params := p.parseParamList()
	retType := p.parseReturnTypeOpt()
	body := p.parseBlockStatements()

	f := &ast.FunctionStmt{Name: name, Generics: generics, Params: params, ReturnType: retType, Body: body}
	p.register(f, keyword.Pos)
	return f
}

// parseClassStmt implements spec §4.1's class grammar, including the
// parse-time self-inheritance rejection and the invariant that bodies
// contain only var/fun members.
func (p *Parser) parseClassStmt() ast.Statement {
	keyword := p.cur
	p.advance()
	name := p.consume(token.IDENT, "Expect class name.")
	generics := p.parseGenericParamsOpt()

	var super *ast.Variable
	if p.match(token.EXTENDS) {
		superName := p.consume(token.IDENT, "Expect superclass name.")
		if superName.Lexeme == name.Lexeme {
			p.errorAt(superName, "A class can't inherit from itself.")
		}
		super = &ast.Variable{Name: superName}
		p.register(super, superName.Pos)
	}

	p.consume(token.LBRACE, "Expect '{' before class body.")
	var methods []*ast.FunctionStmt
	var fields []*ast.VarStmt
	for !p.check(token.RBRACE) && p.cur.Kind != token.EOF {
		switch p.cur.Kind {
		case token.FUN:
			methods = append(methods, p.parseFunctionStmt().(*ast.FunctionStmt))
		case token.VAR:
			fields = append(fields, p.parseVarStmt().(*ast.VarStmt))
		default:
			p.errorAtCurrent("Expect method or field declaration.")
			p.advance()
		}
	}
	p.consume(token.RBRACE, "Expect '}' after class body.")

	c := &ast.ClassStmt{Name: name, Generics: generics, Superclass: super, Methods: methods, Fields: fields}
	p.register(c, keyword.Pos)
	return c
}

// parseInterfaceStmt mirrors parseClassStmt's shape, but members are
// var/fun *signatures* only (spec §4.1).
func (p *Parser) parseInterfaceStmt() ast.Statement {
	keyword := p.cur
	p.advance()
	name := p.consume(token.IDENT, "Expect interface name.")
	generics := p.parseGenericParamsOpt()

	var super *ast.Variable
	if p.match(token.EXTENDS) {
		superName := p.consume(token.IDENT, "Expect superclass name.")
		if superName.Lexeme == name.Lexeme {
			p.errorAt(superName, "An interface can't extend from itself.")
		}
		super = &ast.Variable{Name: superName}
		p.register(super, superName.Pos)
	}

	p.consume(token.LBRACE, "Expect '{' before interface body.")
	var methods []*ast.MethodSigStmt
	var fields []*ast.VarStmt
	for !p.check(token.RBRACE) && p.cur.Kind != token.EOF {
		switch p.cur.Kind {
		case token.FUN:
			methods = append(methods, p.parseMethodSig())
		case token.VAR:
			fields = append(fields, p.parseVarStmt().(*ast.VarStmt))
		default:
			p.errorAtCurrent("Expect method or field declaration.")
			p.advance()
		}
	}
	p.consume(token.RBRACE, "Expect '}' after interface body.")

	i := &ast.InterfaceStmt{Name: name, Generics: generics, Superclass: super, Methods: methods, Fields: fields}
	p.register(i, keyword.Pos)
	return i
}

func (p *Parser) parseMethodSig() *ast.MethodSigStmt {
	keyword := p.cur
	p.advance() // 'fun'
	name := p.consume(token.IDENT, "Expect method name.")
	generics := p.parseGenericParamsOpt()
	params := p.parseParamList()
	retType := p.parseReturnTypeOpt()
	p.match(token.SEMICOLON)

	m := &ast.MethodSigStmt{Name: name, Generics: generics, Params: params, ReturnType: retType}
	p.register(m, keyword.Pos)
	return m
}

func (p *Parser) parseIfStmt() ast.Statement {
	keyword := p.cur
	p.advance()
	p.consume(token.LPAREN, "Expect '(' after 'if'.")
	cond := p.parseExpression()
	p.consume(token.RPAREN, "Expect ')' after condition.")
	then := p.parseStatement()

	var els ast.Statement
	if p.match(token.ELSE) {
		els = p.parseStatement()
	}

	i := &ast.IfStmt{Keyword: keyword, Condition: cond, Then: then, Else: els}
	p.register(i, keyword.Pos)
	return i
}

func (p *Parser) parseWhileStmt() ast.Statement {
	keyword := p.cur
	p.advance()
	p.consume(token.LPAREN, "Expect '(' after 'while'.")
	cond := p.parseExpression()
	p.consume(token.RPAREN, "Expect ')' after condition.")

	p.loopDepth++
	body := p.parseStatement()
	p.loopDepth--

	w := &ast.WhileStmt{Condition: cond, Body: body}
	p.register(w, keyword.Pos)
	return w
}

// parseForStmt implements spec §4.1's C-style for loop: the
// initializer is `;`, `var ...`, or an expression-statement; condition
// and increment are optional.
func (p *Parser) parseForStmt() ast.Statement {
	keyword := p.cur
	p.advance()
	p.consume(token.LPAREN, "Expect '(' after 'for'.")

	var init ast.Statement
	switch {
	case p.match(token.SEMICOLON):
		init = nil
	case p.check(token.VAR):
		init = p.parseVarStmt()
	default:
		init = p.parseExpressionStmt()
	}

	var cond ast.Expression
	if !p.check(token.SEMICOLON) {
		cond = p.parseExpression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after loop condition.")

	var incr ast.Expression
	if !p.check(token.RPAREN) {
		incr = p.parseExpression()
	}
	p.consume(token.RPAREN, "Expect ')' after for clauses.")

	p.loopDepth++
	body := p.parseStatement()
	p.loopDepth--

	f := &ast.ForStmt{Initializer: init, Condition: cond, Increment: incr, Body: body}
	p.register(f, keyword.Pos)
	return f
}

func (p *Parser) parseBreakStmt() ast.Statement {
	keyword := p.cur
	p.advance()
	if p.loopDepth == 0 {
		p.errorAt(keyword, "Can't use 'break' outside of a loop.")
	}
	p.consume(token.SEMICOLON, "Expect ';' after 'break'.")
	b := &ast.BreakStmt{Keyword: keyword}
	p.register(b, keyword.Pos)
	return b
}

func (p *Parser) parseReturnStmt() ast.Statement {
	keyword := p.cur
	p.advance()

	var value ast.Expression
	if !p.check(token.SEMICOLON) {
		value = p.parseExpression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after return value.")

	r := &ast.ReturnStmt{Keyword: keyword, Value: value}
	p.register(r, keyword.Pos)
	return r
}

func (p *Parser) parseImportStmt() ast.Statement {
	keyword := p.cur
	p.advance()
	pathTok := p.consume(token.STRING, "Expect import path string.")
	pathLit := &ast.Literal{Token: pathTok, Value: pathTok.Literal}
	p.register(pathLit, pathTok.Pos)

	p.consume(token.AS, "Expect 'as' after import path.")
	name := p.consume(token.IDENT, "Expect module alias name.")
	p.match(token.SEMICOLON)

	i := &ast.ImportStmt{Keyword: keyword, Path: pathLit, Name: name}
	p.register(i, keyword.Pos)
	return i
}

func (p *Parser) parseTypeDeclarationStmt() ast.Statement {
	keyword := p.cur
	p.advance()
	name := p.consume(token.IDENT, "Expect type name.")
	generics := p.parseGenericParamsOpt()
	p.consume(token.EQUAL, "Expect '=' after type name.")
	value := p.parseType()
	p.consume(token.SEMICOLON, "Expect ';' after type declaration.")

	t := &ast.TypeDeclaration{Name: name, Generics: generics, Value: value}
	p.register(t, keyword.Pos)
	return t
}

func (p *Parser) parseEnumStmt() ast.Statement {
	keyword := p.cur
	p.advance()
	name := p.consume(token.IDENT, "Expect enum name.")
	p.consume(token.LBRACE, "Expect '{' before enum body.")

	var items []*ast.EnumItemStmt
	if !p.check(token.RBRACE) {
		for {
			itemName := p.consume(token.IDENT, "Expect enum member name.")
			item := &ast.EnumItemStmt{Name: itemName}
			p.register(item, itemName.Pos)
			items = append(items, item)
			if !p.match(token.COMMA) {
				break
			}
			if p.check(token.RBRACE) {
				break
			}
		}
	}
	p.consume(token.RBRACE, "Expect '}' after enum body.")

	e := &ast.EnumStmt{Name: name, Items: items}
	p.register(e, keyword.Pos)
	return e
}
