package checker

import (
	"testing"

	"github.com/cwbudde/lark/internal/ast"
	"github.com/cwbudde/lark/internal/module"
	"github.com/cwbudde/lark/internal/token"
	"github.com/cwbudde/lark/internal/types"
)

func pos(line int) token.Position { return token.Position{Line: line} }

func numberLiteral(line int, v float64) *ast.Literal {
	return &ast.Literal{Token: token.Token{Kind: token.NUMBER, Lexeme: "1", Pos: pos(line)}, Value: v}
}

func ident(line int, name string) token.Token {
	return token.Token{Kind: token.IDENT, Lexeme: name, Pos: pos(line)}
}

func newCache(t *testing.T) *module.Cache {
	t.Helper()
	cache := module.NewCache()
	if err := module.LoadBuiltins(cache); err != nil {
		t.Fatal(err)
	}
	return cache
}

func TestVarDeclarationInfersFromInitializer(t *testing.T) {
	prog := &ast.Program{Statements: []ast.Statement{
		&ast.VarStmt{Name: ident(1, "x"), Initializer: numberLiteral(1, 3)},
	}}
	ck := New("main.lark", newCache(t), nil)
	diags := ck.Check(prog)
	if diags.HadError() {
		t.Fatalf("unexpected diagnostics: %s", diags.FormatAll())
	}
}

func TestAssignTypeMismatchIsReported(t *testing.T) {
	prog := &ast.Program{Statements: []ast.Statement{
		&ast.VarStmt{
			Name: ident(1, "x"),
			Type: &ast.SimpleType{Name: ident(1, "String")},
		},
		&ast.ExpressionStmt{Expr: &ast.Assign{
			Name:  ident(2, "x"),
			Value: numberLiteral(2, 1),
		}},
	}}
	ck := New("main.lark", newCache(t), nil)
	diags := ck.Check(prog)
	if !diags.HadError() {
		t.Fatal("expected a type mismatch diagnostic")
	}
	if got := diags.FormatAll(); got == "" {
		t.Fatal("expected a formatted diagnostic")
	}
}

func TestUndefinedVariableIsReported(t *testing.T) {
	prog := &ast.Program{Statements: []ast.Statement{
		&ast.ExpressionStmt{Expr: &ast.Variable{Name: ident(1, "missing")}},
	}}
	ck := New("main.lark", newCache(t), nil)
	diags := ck.Check(prog)
	if !diags.HadError() {
		t.Fatal("expected an undefined-variable diagnostic")
	}
}

func TestFunctionCallCheckedAgainstSignature(t *testing.T) {
	fn := &ast.FunctionStmt{
		Name: ident(1, "identity"),
		Params: []*ast.Param{
			{Name: ident(1, "x"), Type: &ast.SimpleType{Name: ident(1, "Number")}},
		},
		ReturnType: &ast.SimpleType{Name: ident(1, "Number")},
		Body: []ast.Statement{
			&ast.ReturnStmt{Keyword: ident(1, "return"), Value: &ast.Variable{Name: ident(1, "x")}},
		},
	}
	call := &ast.Call{
		Callee: &ast.Variable{Name: ident(2, "identity")},
		Args:   []ast.Expression{numberLiteral(2, 5)},
	}
	prog := &ast.Program{Statements: []ast.Statement{fn, &ast.ExpressionStmt{Expr: call}}}

	ck := New("main.lark", newCache(t), nil)
	diags := ck.Check(prog)
	if diags.HadError() {
		t.Fatalf("unexpected diagnostics: %s", diags.FormatAll())
	}
	if call.ResolvedType() != types.Number {
		t.Fatalf("expected call to resolve to Number, got %v", call.ResolvedType())
	}
}

func TestGenericFunctionCallSubstitutesReturnType(t *testing.T) {
	fn := &ast.FunctionStmt{
		Name:     ident(1, "id"),
		Generics: []*ast.TypeDeclaration{{Name: ident(1, "T")}},
		Params: []*ast.Param{
			{Name: ident(1, "x"), Type: &ast.SimpleType{Name: ident(1, "T")}},
		},
		ReturnType: &ast.SimpleType{Name: ident(1, "T")},
		Body: []ast.Statement{
			&ast.ReturnStmt{Keyword: ident(1, "return"), Value: &ast.Variable{Name: ident(1, "x")}},
		},
	}
	call := &ast.Call{
		Callee: &ast.Variable{Name: ident(2, "id")},
		Args:   []ast.Expression{numberLiteral(2, 3)},
	}
	assign := &ast.VarStmt{
		Name:        ident(3, "y"),
		Type:        &ast.SimpleType{Name: ident(3, "Number")},
		Initializer: call,
	}
	prog := &ast.Program{Statements: []ast.Statement{fn, assign}}

	ck := New("main.lark", newCache(t), nil)
	diags := ck.Check(prog)
	if diags.HadError() {
		t.Fatalf("unexpected diagnostics: %s", diags.FormatAll())
	}
	if call.ResolvedType() != types.Number {
		t.Fatalf("expected id(3) to resolve to Number, got %v", call.ResolvedType())
	}
}

func TestClassFieldAccessAndSubtyping(t *testing.T) {
	cls := &ast.ClassStmt{
		Name: ident(1, "Point"),
		Fields: []*ast.VarStmt{
			{Name: ident(1, "x"), Type: &ast.SimpleType{Name: ident(1, "Number")}},
		},
	}
	varDecl := &ast.VarStmt{
		Name:        ident(2, "p"),
		Initializer: &ast.Call{Callee: &ast.Variable{Name: ident(2, "Point")}, Args: []ast.Expression{numberLiteral(2, 1)}},
	}
	getX := &ast.Get{Object: &ast.Variable{Name: ident(3, "p")}, Name: ident(3, "x")}

	prog := &ast.Program{Statements: []ast.Statement{cls, varDecl, &ast.ExpressionStmt{Expr: getX}}}
	ck := New("main.lark", newCache(t), nil)
	diags := ck.Check(prog)
	if diags.HadError() {
		t.Fatalf("unexpected diagnostics: %s", diags.FormatAll())
	}
	if getX.ResolvedType() != types.Number {
		t.Fatalf("expected p.x to resolve to Number, got %v", getX.ResolvedType())
	}
}

func TestYieldResolvesToAny(t *testing.T) {
	y := &ast.YieldExpr{Keyword: ident(1, "yield")}
	prog := &ast.Program{Statements: []ast.Statement{&ast.ExpressionStmt{Expr: y}}}
	ck := New("main.lark", newCache(t), nil)
	ck.Check(prog)
	if y.ResolvedType() != types.Any {
		t.Fatalf("expected yield to resolve to Any, got %v", y.ResolvedType())
	}
}
