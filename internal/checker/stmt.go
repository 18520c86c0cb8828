package checker

import (
	"path/filepath"

	"github.com/cwbudde/lark/internal/ast"
	"github.com/cwbudde/lark/internal/types"
	"github.com/cwbudde/lark/internal/typeenv"
)

// resolveTypeExpr evaluates a type annotation node into a concrete
// types.Type, resolving generic-parameter headers and bounds through
// env's typedefs (spec §4.3's TypeDeclaration and Lambda/Function
// contracts share this evaluation). A nil expr defaults to Any, per
// spec §4.3's "missing annotations default to Any".
func (c *Checker) resolveTypeExpr(expr ast.TypeExpr, env *typeenv.Environment) types.Type {
	if expr == nil {
		return types.Any
	}
	switch t := expr.(type) {
	case *ast.SimpleType:
		base, ok := env.LookupTypedef(t.Name.Lexeme)
		if !ok {
			c.report(t, "Undefined type")
			return types.Never
		}
		if len(t.Generics) == 0 {
			return base
		}
		if want, ok := genericParamCount(base); ok && want != len(t.Generics) {
			c.report(t, "Type argument count mismatch in generic")
		}
		args := make([]types.Type, len(t.Generics))
		for i, g := range t.Generics {
			args[i] = c.resolveTypeExpr(g, env)
		}
		return &types.GenericApplication{Target: base, Args: args}
	case *ast.FunctorType:
		scope := typeenv.NewChild(env)
		generics := make([]*types.GenericParameter, len(t.Generics))
		for i, g := range t.Generics {
			param := &types.GenericParameter{Name: g.Name.Lexeme, Extends: c.resolveTypeExpr(g.Extends, scope)}
			scope.DefineTypedef(g.Name.Lexeme, param)
			generics[i] = param
		}
		params := make([]types.Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = c.resolveTypeExpr(p, scope)
		}
		return &types.Functor{Params: params, Return: c.resolveTypeExpr(t.Return, scope), Generics: generics}
	case *ast.UnionType:
		return &types.Union{Left: c.resolveTypeExpr(t.Left, env), Right: c.resolveTypeExpr(t.Right, env)}
	case *ast.TypeDeclaration:
		// Used here only in its generic-parameter-header role.
		param := &types.GenericParameter{Name: t.Name.Lexeme, Extends: c.resolveTypeExpr(t.Extends, env)}
		return param
	default:
		return types.Any
	}
}

// genericParamCount reports how many generic parameters base was
// declared with, for the arity check a SimpleType's `<...>` argument
// list is validated against. ok is false for types that don't carry a
// generic-parameter declaration at all (e.g. Functor, Union), which
// SimpleType's Generics list never targets.
func genericParamCount(base types.Type) (int, bool) {
	switch t := base.(type) {
	case *types.Simple:
		return len(t.Generics), true
	case *types.Interface:
		return len(t.Generics), true
	default:
		return 0, false
	}
}

func (c *Checker) paramType(p *ast.Param, env *typeenv.Environment) types.Type {
	if p.Type == nil {
		return types.Any
	}
	return c.resolveTypeExpr(p.Type, env)
}

// checkStmt dispatches on concrete type, mirroring checkExpr.
func (c *Checker) checkStmt(s ast.Statement, env *typeenv.Environment) {
	switch n := s.(type) {
	case *ast.ExpressionStmt:
		c.checkExpr(n.Expr, env)
	case *ast.VarStmt:
		c.checkVarStmt(n, env)
	case *ast.BlockStmt:
		block := typeenv.NewChild(env)
		for _, stmt := range n.Statements {
			c.checkStmt(stmt, block)
		}
	case *ast.FunctionStmt:
		c.checkFunctionStmt(n, env)
	case *ast.ClassStmt:
		c.checkClassStmt(n, env)
	case *ast.InterfaceStmt:
		c.checkInterfaceStmt(n, env)
	case *ast.IfStmt:
		c.checkExpr(n.Condition, env)
		c.checkStmt(n.Then, env)
		if n.Else != nil {
			c.checkStmt(n.Else, env)
		}
	case *ast.WhileStmt:
		c.checkExpr(n.Condition, env)
		c.checkStmt(n.Body, env)
	case *ast.ForStmt:
		loopScope := typeenv.NewChild(env)
		if n.Initializer != nil {
			c.checkStmt(n.Initializer, loopScope)
		}
		if n.Condition != nil {
			c.checkExpr(n.Condition, loopScope)
		}
		if n.Increment != nil {
			c.checkExpr(n.Increment, loopScope)
		}
		c.checkStmt(n.Body, loopScope)
	case *ast.BreakStmt:
		// Legal anywhere inside a loop body; the parser enforces the
		// "outside a loop" restriction at parse time (spec's
		// original_source behavior, see SPEC_FULL.md supplemented
		// features).
	case *ast.ReturnStmt:
		c.checkReturnStmt(n, env)
	case *ast.ImportStmt:
		c.checkImportStmt(n, env)
	case *ast.TypeDeclaration:
		c.checkTypeDeclarationStmt(n, env)
	case *ast.EnumStmt:
		c.checkEnumStmt(n, env)
	case *ast.MethodSigStmt:
		// Only ever visited as part of an Interface body (see
		// checkInterfaceStmt); nothing to do standalone.
	}
}

func (c *Checker) checkVarStmt(v *ast.VarStmt, env *typeenv.Environment) {
	var declared types.Type
	if v.Type != nil {
		declared = c.resolveTypeExpr(v.Type, env)
	}

	var initType types.Type
	if v.Initializer != nil {
		initType = c.checkExpr(v.Initializer, env)
	}

	switch {
	case declared != nil && initType != nil:
		if !types.IsSubtype(initType, declared, env) {
			c.report(v, "Type mismatch in var")
		}
		env.DefineLocal(v.Name.Lexeme, declared)
	case declared != nil:
		env.DefineLocal(v.Name.Lexeme, declared)
	case initType != nil:
		env.DefineLocal(v.Name.Lexeme, initType)
	default:
		env.DefineLocal(v.Name.Lexeme, types.Any)
	}
}

func (c *Checker) checkFunctionStmt(f *ast.FunctionStmt, env *typeenv.Environment) {
	scope := typeenv.NewChild(env)
	generics := make([]*types.GenericParameter, len(f.Generics))
	for i, g := range f.Generics {
		param := &types.GenericParameter{Name: g.Name.Lexeme, Extends: c.resolveTypeExpr(g.Extends, scope)}
		scope.DefineTypedef(g.Name.Lexeme, param)
		generics[i] = param
	}

	params := make([]types.Type, len(f.Params))
	for i, p := range f.Params {
		pt := c.paramType(p, scope)
		params[i] = pt
		scope.DefineLocal(p.Name.Lexeme, pt)
	}

	functor := &types.Functor{Params: params, Generics: generics}
	if f.ReturnType != nil {
		functor.Return = c.resolveTypeExpr(f.ReturnType, scope)
	}

	// Bind the name before checking the body so recursive calls resolve.
	env.DefineLocal(f.Name.Lexeme, functor)

	prevFunc := c.currentFunc
	c.currentFunc = functor
	for _, stmt := range f.Body {
		c.checkStmt(stmt, scope)
	}
	c.currentFunc = prevFunc

	if functor.Return == nil {
		functor.Return = types.Nil
	}
}

func (c *Checker) checkReturnStmt(r *ast.ReturnStmt, env *typeenv.Environment) {
	var valueType types.Type = types.Nil
	if r.Value != nil {
		valueType = c.checkExpr(r.Value, env)
	}
	if c.currentFunc == nil {
		return
	}
	if c.currentFunc.Return != nil {
		if !types.IsSubtype(valueType, c.currentFunc.Return, env) {
			c.report(r, "Type mismatch")
		}
		return
	}
	c.currentFunc.Return = valueType
}

// checkClassStmt implements spec §4.3's Class contract: the method
// table is walked twice, once to pre-bind every signature (so mutually
// recursive methods resolve each other) and once to check bodies.
func (c *Checker) checkClassStmt(cls *ast.ClassStmt, env *typeenv.Environment) {
	classType := types.NewSimple(cls.Name.Lexeme)

	generics := make([]*types.GenericParameter, len(cls.Generics))
	genericScope := typeenv.NewChild(env)
	for i, g := range cls.Generics {
		param := &types.GenericParameter{Name: g.Name.Lexeme, Extends: c.resolveTypeExpr(g.Extends, genericScope)}
		genericScope.DefineTypedef(g.Name.Lexeme, param)
		generics[i] = param
	}
	classType.Generics = generics

	if cls.Superclass != nil {
		if superT, ok := env.LookupTypedef(cls.Superclass.Name.Lexeme); ok {
			if super, ok := superT.(*types.Simple); ok {
				classType.Super = super
				for name, f := range super.Fields {
					classType.SetField(name, f)
				}
				for name, m := range super.Methods {
					classType.Methods[name] = m
				}
			} else {
				c.report(cls.Superclass, "Type mismatch")
			}
		} else {
			c.report(cls.Superclass, "Undefined variable")
		}
	}

	for _, field := range cls.Fields {
		classType.SetField(field.Name.Lexeme, c.resolveTypeExpr(field.Type, genericScope))
	}

	// Pass 1: pre-bind every method signature.
	methodScopes := make([]*typeenv.Environment, len(cls.Methods))
	methodFunctors := make([]*types.Functor, len(cls.Methods))
	for i, m := range cls.Methods {
		scope := typeenv.NewChild(genericScope)
		mGenerics := make([]*types.GenericParameter, len(m.Generics))
		for j, g := range m.Generics {
			param := &types.GenericParameter{Name: g.Name.Lexeme, Extends: c.resolveTypeExpr(g.Extends, scope)}
			scope.DefineTypedef(g.Name.Lexeme, param)
			mGenerics[j] = param
		}
		params := make([]types.Type, len(m.Params))
		for j, p := range m.Params {
			pt := c.paramType(p, scope)
			params[j] = pt
			scope.DefineLocal(p.Name.Lexeme, pt)
		}
		functor := &types.Functor{Params: params, Generics: mGenerics}
		if m.ReturnType != nil {
			functor.Return = c.resolveTypeExpr(m.ReturnType, scope)
		}
		classType.Methods[m.Name.Lexeme] = functor
		methodScopes[i] = scope
		methodFunctors[i] = functor
	}

	// Pass 2: check bodies with `this` bound.
	prevClass := c.currentClass
	c.currentClass = classType
	for i, m := range cls.Methods {
		scope := methodScopes[i]
		functor := methodFunctors[i]
		prevFunc := c.currentFunc
		c.currentFunc = functor
		for _, stmt := range m.Body {
			c.checkStmt(stmt, scope)
		}
		c.currentFunc = prevFunc
		if functor.Return == nil {
			functor.Return = types.Nil
		}
	}
	c.currentClass = prevClass

	ctor := &types.Functor{Params: classConstructorParams(classType), Return: classType, Generics: generics}
	env.DefineLocal(cls.Name.Lexeme, ctor)
	env.DefineTypedef(cls.Name.Lexeme, classType)
}

// checkInterfaceStmt is Class's structural twin: an InterfaceType is
// built the same way but method bodies are absent and no constructor is
// exported (spec §4.3).
func (c *Checker) checkInterfaceStmt(iface *ast.InterfaceStmt, env *typeenv.Environment) {
	ifaceType := types.NewInterface(iface.Name.Lexeme)

	genericScope := typeenv.NewChild(env)
	generics := make([]*types.GenericParameter, len(iface.Generics))
	for i, g := range iface.Generics {
		param := &types.GenericParameter{Name: g.Name.Lexeme, Extends: c.resolveTypeExpr(g.Extends, genericScope)}
		genericScope.DefineTypedef(g.Name.Lexeme, param)
		generics[i] = param
	}
	ifaceType.Generics = generics

	if iface.Superclass != nil {
		if superT, ok := env.LookupTypedef(iface.Superclass.Name.Lexeme); ok {
			if super, ok := superT.(*types.Interface); ok {
				ifaceType.Super = super
			} else {
				c.report(iface.Superclass, "Parent type for interface may only be an interface")
			}
		} else {
			c.report(iface.Superclass, "Undefined variable")
		}
	}

	for _, field := range iface.Fields {
		ifaceType.Fields[field.Name.Lexeme] = c.resolveTypeExpr(field.Type, genericScope)
	}

	for _, m := range iface.Methods {
		scope := typeenv.NewChild(genericScope)
		mGenerics := make([]*types.GenericParameter, len(m.Generics))
		for j, g := range m.Generics {
			param := &types.GenericParameter{Name: g.Name.Lexeme, Extends: c.resolveTypeExpr(g.Extends, scope)}
			scope.DefineTypedef(g.Name.Lexeme, param)
			mGenerics[j] = param
		}
		params := make([]types.Type, len(m.Params))
		for j, p := range m.Params {
			params[j] = c.paramType(p, scope)
		}
		functor := &types.Functor{Params: params, Generics: mGenerics}
		if m.ReturnType != nil {
			functor.Return = c.resolveTypeExpr(m.ReturnType, scope)
		}
		ifaceType.Methods[m.Name.Lexeme] = functor
	}

	env.DefineTypedef(iface.Name.Lexeme, ifaceType)
}

func (c *Checker) checkImportStmt(imp *ast.ImportStmt, env *typeenv.Environment) {
	path, _ := imp.Path.Value.(string)
	if c.cache != nil {
		if cached, ok := c.cache.Path(path); ok {
			env.DefineLocal(imp.Name.Lexeme, cached)
			return
		}
	}
	if c.imports == nil {
		c.report(imp, "Undefined variable")
		return
	}
	moduleType, err := c.imports.Load(path)
	if err != nil {
		c.report(imp, "Undefined variable")
		return
	}
	if c.cache != nil {
		c.cache.StorePath(path, moduleType)
	}
	env.DefineLocal(imp.Name.Lexeme, moduleType)
}

func (c *Checker) checkTypeDeclarationStmt(decl *ast.TypeDeclaration, env *typeenv.Environment) {
	scope := typeenv.NewChild(env)
	for _, g := range decl.Generics {
		param := &types.GenericParameter{Name: g.Name.Lexeme, Extends: c.resolveTypeExpr(g.Extends, scope)}
		scope.DefineTypedef(g.Name.Lexeme, param)
	}
	resolved := c.resolveTypeExpr(decl.Value, scope)
	env.DefineTypedef(decl.Name.Lexeme, resolved)
}

func (c *Checker) checkEnumStmt(e *ast.EnumStmt, env *typeenv.Environment) {
	enumType := types.NewSimple(e.Name.Lexeme)
	for _, item := range e.Items {
		enumType.SetField(item.Name.Lexeme, enumType)
	}
	env.DefineTypedef(e.Name.Lexeme, enumType)
	env.DefineLocal(e.Name.Lexeme, enumType)
}

// classConstructorParams returns a Simple's own fields in declaration
// order, the shape a generated constructor functor's parameter list
// takes (spec §4.3's "constructor signature ... Functor that returns
// the class type").
func classConstructorParams(s *types.Simple) []types.Type {
	order := s.FieldOrder()
	params := make([]types.Type, 0, len(order))
	for _, name := range order {
		if t, ok := s.Field(name); ok {
			params = append(params, t)
		}
	}
	return params
}

// resolveImportPath turns an ImportStmt's literal path into a
// filesystem path relative to the importing file. Nothing in the
// repository calls it.
func resolveImportPath(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(filepath.Dir(base), path)
}
