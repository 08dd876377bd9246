package vartracker

import (
	"testing"

	"github.com/statemindio/vyzzer-go/internal/vyptype"
)

type fixedSource struct{ idx int }

func (f *fixedSource) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return f.idx % n
}

func TestNextIDMonotonicPerTag(t *testing.T) {
	tr := New(&fixedSource{})
	ty := vyptype.NewIntType(0, false)
	if got := tr.NextID(ty); got != 0 {
		t.Fatalf("first NextID = %d, want 0", got)
	}
	if got := tr.NextID(ty); got != 1 {
		t.Fatalf("second NextID = %d, want 1", got)
	}
	if got := tr.NextID(vyptype.BoolType{}); got != 0 {
		t.Fatalf("NextID for a different tag = %d, want 0", got)
	}
}

func TestExitScopeDropsDeeperLocals(t *testing.T) {
	tr := New(&fixedSource{})
	ty := vyptype.BoolType{}
	tr.RegisterLocal("a", 1, ty)
	tr.RegisterLocal("b", 2, ty)
	tr.ExitScope(1)

	level := 5
	allowed := tr.AllowedVars(&level, ty)
	if len(allowed) != 1 || allowed[0].Name != "a" {
		t.Fatalf("after ExitScope(1), allowed = %+v, want just [a]", allowed)
	}
}

func TestGlobalsAlwaysVisibleRegardlessOfLevel(t *testing.T) {
	tr := New(&fixedSource{})
	ty := vyptype.AddressType{}
	tr.RegisterGlobal("var0", ty)

	v, ok := tr.Choose(nil, ty)
	if !ok || v.Name != "var0" || !v.Global {
		t.Fatalf("Choose(nil, Address) = %+v, %v", v, ok)
	}
}

func TestChooseFiltersByType(t *testing.T) {
	tr := New(&fixedSource{})
	tr.RegisterGlobal("addr0", vyptype.AddressType{})
	tr.RegisterGlobal("bool0", vyptype.BoolType{})

	level := 0
	v, ok := tr.Choose(&level, vyptype.BoolType{})
	if !ok || v.Name != "bool0" {
		t.Fatalf("Choose(Bool) = %+v, %v, want bool0", v, ok)
	}
}
