// Package fixture runs the end-to-end scenarios of spec §8 against the
// parser, checker, and module cache together, snapshotting their
// diagnostic output with go-snaps — the same tool and shape as the
// teacher's internal/interp/fixture_test.go, scaled down from a
// whole-suite fixture-file harness (this repo has no VM to execute
// fixture programs against) to a table of literal source snippets.
package fixture

import (
	"testing"

	"github.com/cwbudde/lark/internal/ast"
	"github.com/cwbudde/lark/internal/checker"
	"github.com/cwbudde/lark/internal/diag"
	"github.com/cwbudde/lark/internal/module"
	"github.com/cwbudde/lark/internal/parser"
	"github.com/cwbudde/lark/internal/types"
	"github.com/gkampitakis/go-snaps/snaps"
)

func checkSource(t *testing.T, src string) (*ast.Program, *diag.Bag) {
	t.Helper()
	pool := ast.NewPool()
	diags := diag.NewBag()
	p := parser.New("fixture.lark", src, pool, diags)
	program, ok := p.ParseProgram()
	if !ok {
		return program, diags
	}

	cache := module.NewCache()
	if err := module.LoadBuiltins(cache); err != nil {
		t.Fatalf("LoadBuiltins: %v", err)
	}
	c := checker.New("fixture.lark", cache, nil)
	return program, c.Check(program)
}

func TestParseAndTypecheckCleanVarDeclaration(t *testing.T) {
	program, diags := checkSource(t, `var x: Number = 1 + 2;`)
	if diags.HadError() {
		t.Fatalf("expected zero diagnostics, got: %s", diags.FormatAll())
	}
	v := program.Statements[0].(*ast.VarStmt)
	if v.Initializer.ResolvedType() != types.Number {
		t.Fatalf("expected x's initializer to resolve to Number, got %v", v.Initializer.ResolvedType())
	}
	snaps.MatchSnapshot(t, diags.FormatAll())
}

func TestSubtypeFailureInVarDeclaration(t *testing.T) {
	_, diags := checkSource(t, `var x: String = 1;`)
	if !diags.HadError() {
		t.Fatal("expected a diagnostic")
	}
	snaps.MatchSnapshot(t, diags.FormatAll())
}

func TestGenericListIndexing(t *testing.T) {
	_, diags := checkSource(t, `var xs: List<Number> = [1, 2, 3]; var y: Number = xs[0];`)
	if diags.HadError() {
		t.Fatalf("expected zero diagnostics, got: %s", diags.FormatAll())
	}
	snaps.MatchSnapshot(t, diags.FormatAll())
}

func TestInterfaceSatisfactionByStructuralMethod(t *testing.T) {
	src := `
interface I { fun f(): Number }
class C { fun f(): Number { return 1; } }
var z: I = C();
`
	_, diags := checkSource(t, src)
	if diags.HadError() {
		t.Fatalf("expected zero diagnostics, got: %s", diags.FormatAll())
	}
	snaps.MatchSnapshot(t, diags.FormatAll())
}

func TestInvalidPipeTarget(t *testing.T) {
	_, diags := checkSource(t, `x | 3;`)
	if !diags.HadError() {
		t.Fatal("expected a diagnostic")
	}
	snaps.MatchSnapshot(t, diags.FormatAll())
}
