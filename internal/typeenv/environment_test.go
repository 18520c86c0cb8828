package typeenv

import (
	"testing"

	"github.com/cwbudde/lark/internal/types"
)

func TestOutwardLookup(t *testing.T) {
	outer := New()
	outer.DefineLocal("x", types.Number)

	inner := NewChild(outer)
	if _, ok := inner.LookupLocal("x"); !ok {
		t.Fatal("inner scope should see outer scope's locals")
	}

	inner.DefineLocal("y", types.String)
	if _, ok := outer.LookupLocal("y"); ok {
		t.Fatal("outer scope should not see inner scope's locals")
	}
}

func TestShadowing(t *testing.T) {
	outer := New()
	outer.DefineLocal("x", types.Number)

	inner := NewChild(outer)
	inner.DefineLocal("x", types.String)

	got, ok := inner.LookupLocal("x")
	if !ok || got != types.String {
		t.Fatalf("inner scope should shadow outer: got %v", got)
	}
	got, ok = outer.LookupLocal("x")
	if !ok || got != types.Number {
		t.Fatalf("outer scope should be unaffected by shadowing: got %v", got)
	}
}

func TestGenericResolutionBindOnceConfirm(t *testing.T) {
	env := New()
	param := &types.GenericParameter{Name: "T"}

	if _, ok := env.Resolve(param); ok {
		t.Fatal("unseeded parameter should not resolve")
	}

	env.SeedGeneric(param)
	if _, ok := env.Resolve(param); ok {
		t.Fatal("seeded-but-open parameter should not resolve yet")
	}

	env.Bind(param, types.Number)
	got, ok := env.Resolve(param)
	if !ok || got != types.Number {
		t.Fatalf("bound parameter should resolve to Number, got %v", got)
	}
}

func TestGenericResolutionSeededInOuterScopeVisibleFromInner(t *testing.T) {
	outer := New()
	param := &types.GenericParameter{Name: "T"}
	outer.SeedGeneric(param)

	inner := NewChild(outer)
	inner.Bind(param, types.String)

	got, ok := outer.Resolve(param)
	if !ok || got != types.String {
		t.Fatalf("binding from an inner scope should write back to where the parameter was seeded, got %v, ok=%v", got, ok)
	}
}
