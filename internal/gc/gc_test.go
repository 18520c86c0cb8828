package gc_test

import (
	"testing"

	"github.com/cwbudde/lark/internal/ast"
	"github.com/cwbudde/lark/internal/diag"
	"github.com/cwbudde/lark/internal/gc"
	"github.com/cwbudde/lark/internal/parser"
)

// markables adapts a Pool's nodes (which satisfy gc.Markable via
// ast.header, but the Pool itself only exposes ast.Node) to the
// []gc.Markable shape ClearMarks wants.
func markables(pool *ast.Pool) []gc.Markable {
	var out []gc.Markable
	for _, n := range pool.All() {
		if m, ok := n.(gc.Markable); ok {
			out = append(out, m)
		}
	}
	return out
}

func TestCollectMarksEveryPooledNode(t *testing.T) {
	pool := ast.NewPool()
	diags := diag.NewBag()
	p := parser.New("gc.lark", `var x: Number = 1 + 2;`, pool, diags)
	if _, ok := p.ParseProgram(); !ok {
		t.Fatalf("unexpected diagnostics: %s", diags.FormatAll())
	}

	nodes := markables(pool)
	if len(nodes) == 0 {
		t.Fatal("expected at least one pooled node")
	}

	collector := gc.New()
	collector.AddRoot(func(mark func(gc.Markable)) {
		for _, n := range nodes {
			mark(n)
		}
	})
	collector.Collect()

	for _, n := range nodes {
		if !n.Mark() {
			t.Fatalf("expected every registered root to be marked")
		}
	}
}

func TestClearMarksResetsBits(t *testing.T) {
	pool := ast.NewPool()
	diags := diag.NewBag()
	p := parser.New("gc.lark", `x;`, pool, diags)
	if _, ok := p.ParseProgram(); !ok {
		t.Fatalf("unexpected diagnostics: %s", diags.FormatAll())
	}

	nodes := markables(pool)
	for _, n := range nodes {
		n.SetMark(true)
	}
	gc.ClearMarks(nodes)
	for _, n := range nodes {
		if n.Mark() {
			t.Fatalf("expected marks cleared")
		}
	}
}

func TestCollectWithNoRootsMarksNothing(t *testing.T) {
	collector := gc.New()
	collector.Collect() // no roots registered; must not panic
}
