package checker

import (
	"github.com/cwbudde/lark/internal/ast"
	"github.com/cwbudde/lark/internal/token"
	"github.com/cwbudde/lark/internal/types"
	"github.com/cwbudde/lark/internal/typeenv"
)

// checkExpr dispatches on concrete type — a Go type-switch playing the
// closed-variant pattern-match role spec §3.2/§9 call for — and records
// the resolved type on the node itself before returning it, so later
// passes (pretty-printing, a future bytecode emitter) can read it back
// without re-checking.
func (c *Checker) checkExpr(e ast.Expression, env *typeenv.Environment) types.Type {
	var t types.Type
	switch n := e.(type) {
	case *ast.Literal:
		t = c.checkLiteral(n)
	case *ast.Variable:
		t = c.checkVariable(n, env)
	case *ast.Assign:
		t = c.checkAssign(n, env)
	case *ast.Unary:
		t = c.checkUnary(n, env)
	case *ast.Binary:
		t = c.checkBinaryOrLogical(n.Left, n.Right, env)
	case *ast.Logical:
		t = c.checkBinaryOrLogical(n.Left, n.Right, env)
	case *ast.Call:
		t = c.checkCall(n, env)
	case *ast.GetItem:
		t = c.checkGetItem(n, env)
	case *ast.Get:
		t = c.checkGet(n, env)
	case *ast.Set:
		t = c.checkSet(n, env)
	case *ast.ListExpr:
		t = c.checkListExpr(n, env)
	case *ast.MapExpr:
		t = c.checkMapExpr(n, env)
	case *ast.Lambda:
		t = c.checkLambda(n, env)
	case *ast.SuperExpr:
		t = c.checkSuper(n)
	case *ast.ThisExpr:
		t = c.checkThis(n)
	case *ast.YieldExpr:
		t = c.checkYield(n, env)
	default:
		t = types.Never
	}
	e.SetResolvedType(t)
	return t
}

func (c *Checker) checkLiteral(l *ast.Literal) types.Type {
	switch l.Token.Kind {
	case token.NUMBER:
		return types.Number
	case token.TRUE, token.FALSE:
		return types.Bool
	case token.STRING:
		return types.String
	case token.NIL:
		return types.Nil
	case token.ATOM:
		return types.Atom
	default:
		return types.Never
	}
}

func (c *Checker) checkVariable(v *ast.Variable, env *typeenv.Environment) types.Type {
	if t, ok := env.LookupLocal(v.Name.Lexeme); ok {
		return t
	}
	if c.cache != nil {
		if t, ok := c.cache.Builtin(v.Name.Lexeme); ok {
			return t
		}
	}
	c.report(v, "Undefined variable")
	return types.Never
}

func (c *Checker) checkAssign(a *ast.Assign, env *typeenv.Environment) types.Type {
	valueType := c.checkExpr(a.Value, env)
	declared, ok := env.LookupLocal(a.Name.Lexeme)
	if !ok {
		c.report(a, "Undefined variable")
		return valueType
	}
	if !types.IsSubtype(valueType, declared, env) {
		c.report(a, "Type mismatch")
		return declared
	}
	return declared
}

func (c *Checker) checkUnary(u *ast.Unary, env *typeenv.Environment) types.Type {
	operand := c.checkExpr(u.Right, env)
	if u.Op.Lexeme == "!" {
		return types.Bool
	}
	return operand
}

// checkBinaryOrLogical implements the shared Binary/Logical contract:
// spec §4.3 leaves operator-specific checking out of scope (OQ-3) and
// simply returns the operand type.
func (c *Checker) checkBinaryOrLogical(left, right ast.Expression, env *typeenv.Environment) types.Type {
	leftType := c.checkExpr(left, env)
	c.checkExpr(right, env)
	return leftType
}

func (c *Checker) checkCall(call *ast.Call, env *typeenv.Environment) types.Type {
	calleeType := c.checkExpr(call.Callee, env)
	functor, ok := calleeType.(*types.Functor)
	if !ok {
		c.report(call, "Type is not callable")
		for _, arg := range call.Args {
			c.checkExpr(arg, env)
		}
		return types.Never
	}

	callScope := typeenv.NewChild(env)
	for _, g := range functor.Generics {
		callScope.SeedGeneric(g)
	}

	if len(call.Args) != len(functor.Params) {
		c.warn(call, "Argument count mismatch")
	}

	for i, arg := range call.Args {
		argType := c.checkExpr(arg, callScope)
		if i >= len(functor.Params) {
			continue
		}
		param := functor.Params[i]
		if param == nil {
			continue
		}
		if !types.IsSubtype(argType, param, callScope) {
			c.report(arg, "Type mismatch")
		}
	}

	if functor.Return == nil {
		return types.Never
	}
	return types.Substitute(functor.Return, callScope)
}

func (c *Checker) checkGetItem(g *ast.GetItem, env *typeenv.Environment) types.Type {
	objType := c.checkExpr(g.Object, env)
	indexType := c.checkExpr(g.Index, env)

	app, ok := objType.(*types.GenericApplication)
	if !ok {
		c.report(g, "Invalid field")
		return types.Never
	}

	switch app.Target {
	case types.List:
		if !types.IsSubtype(indexType, types.Number, env) {
			c.report(g, "Index must be a number")
		}
		if len(app.Args) == 0 {
			return types.Never
		}
		return app.Args[0]
	case types.Map:
		if len(app.Args) < 2 {
			return types.Never
		}
		if !types.IsSubtype(indexType, app.Args[0], env) {
			c.report(g, "Key type mismatch")
		}
		return app.Args[1]
	default:
		c.report(g, "Invalid field")
		return types.Never
	}
}

// resolveMember dereferences obj through a GenericApplication or a
// bounded GenericParameter to find the Simple/Interface it ultimately
// names, per spec §4.3's Get/Set contract.
func resolveMember(obj types.Type) types.Type {
	switch t := obj.(type) {
	case *types.GenericApplication:
		return resolveMember(t.Target)
	case *types.GenericParameter:
		if t.Extends != nil {
			return resolveMember(t.Extends)
		}
		return nil
	default:
		return obj
	}
}

func lookupMember(t types.Type, name string) (types.Type, bool) {
	switch m := t.(type) {
	case *types.Simple:
		if f, ok := m.LookupField(name); ok {
			return f, true
		}
		if fn, ok := m.LookupMethod(name); ok {
			return fn, true
		}
	case *types.Interface:
		if f, ok := m.LookupField(name); ok {
			return f, true
		}
		if fn, ok := m.LookupMethod(name); ok {
			return fn, true
		}
	}
	return nil, false
}

func (c *Checker) checkGet(g *ast.Get, env *typeenv.Environment) types.Type {
	objType := c.checkExpr(g.Object, env)
	resolved := resolveMember(objType)
	if resolved == nil {
		c.report(g, "Invalid field")
		return types.Never
	}
	member, ok := lookupMember(resolved, g.Name.Lexeme)
	if !ok {
		c.report(g, "Invalid field")
		return types.Never
	}
	return member
}

func (c *Checker) checkSet(s *ast.Set, env *typeenv.Environment) types.Type {
	objType := c.checkExpr(s.Object, env)
	valueType := c.checkExpr(s.Value, env)

	resolved := resolveMember(objType)
	if resolved == nil {
		c.report(s, "Invalid field")
		return valueType
	}
	member, ok := lookupMember(resolved, s.Name.Lexeme)
	if !ok {
		c.report(s, "Invalid field")
		return valueType
	}
	if !types.IsSubtype(valueType, member, env) {
		c.report(s, "Type mismatch")
	}
	return member
}

func (c *Checker) checkListExpr(l *ast.ListExpr, env *typeenv.Environment) types.Type {
	var elem types.Type = types.Never
	for i, e := range l.Elements {
		t := c.checkExpr(e, env)
		if i == 0 {
			elem = t
		}
	}
	return types.ListOf(elem)
}

func (c *Checker) checkMapExpr(m *ast.MapExpr, env *typeenv.Environment) types.Type {
	var key, value types.Type = types.Never, types.Never
	for i := range m.Keys {
		k := c.checkExpr(m.Keys[i], env)
		v := c.checkExpr(m.Values[i], env)
		if i == 0 {
			key, value = k, v
		}
	}
	return types.MapOf(key, value)
}

func (c *Checker) checkLambda(l *ast.Lambda, env *typeenv.Environment) types.Type {
	generics := make([]*types.GenericParameter, 0, len(l.Signature.Generics))
	scope := typeenv.NewChild(env)
	for _, g := range l.Signature.Generics {
		param := &types.GenericParameter{Name: g.Name.Lexeme, Extends: c.resolveTypeExpr(g.Extends, scope)}
		scope.DefineTypedef(g.Name.Lexeme, param)
		generics = append(generics, param)
	}

	params := make([]types.Type, len(l.Params))
	for i, p := range l.Params {
		pt := c.paramType(p, scope)
		params[i] = pt
		scope.DefineLocal(p.Name.Lexeme, pt)
	}

	functor := &types.Functor{Params: params, Generics: generics}
	if l.Signature.Return != nil {
		functor.Return = c.resolveTypeExpr(l.Signature.Return, scope)
	}

	prevFunc := c.currentFunc
	c.currentFunc = functor
	for _, stmt := range l.Body {
		c.checkStmt(stmt, scope)
	}
	c.currentFunc = prevFunc

	if functor.Return == nil {
		functor.Return = types.Nil
	}
	return functor
}

func (c *Checker) checkSuper(s *ast.SuperExpr) types.Type {
	if c.currentClass == nil || c.currentClass.Super == nil {
		c.report(s, "Invalid field")
		return types.Never
	}
	if fn, ok := c.currentClass.Super.LookupMethod(s.Method.Lexeme); ok {
		return fn
	}
	c.report(s, "Invalid field")
	return types.Never
}

func (c *Checker) checkThis(t *ast.ThisExpr) types.Type {
	if c.currentClass == nil {
		c.report(t, "Invalid field")
		return types.Never
	}
	return c.currentClass
}

func (c *Checker) checkYield(y *ast.YieldExpr, env *typeenv.Environment) types.Type {
	if y.Value != nil {
		c.checkExpr(y.Value, env)
	}
	return types.Any
}
