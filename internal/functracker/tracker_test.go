package functracker

import "testing"

func TestRegisterFunction(t *testing.T) {
	tr := New()
	if tr.CurrentID() != -1 {
		t.Fatalf("CurrentID before any registration = %d, want -1", tr.CurrentID())
	}

	idx := tr.Register("func_0", Pure, Internal, nil, nil)
	if idx != 0 || tr.CurrentID() != 0 {
		t.Fatalf("Register returned %d, CurrentID = %d, want 0/0", idx, tr.CurrentID())
	}

	rec := tr.At(0)
	if rec.Name != "func_0" || rec.Mutability != Pure {
		t.Fatalf("At(0) = %+v", rec)
	}
	if got := rec.RenderCall(nil); got != "self.func_0()" {
		t.Fatalf("RenderCall = %q", got)
	}
	if got := rec.RenderSignature(nil); got != "def func_0()" {
		t.Fatalf("RenderSignature = %q", got)
	}
}

func TestMutabilityStrings(t *testing.T) {
	cases := map[Mutability]string{
		Pure: "@pure", View: "@view", NonPayable: "@nonpayable", Payable: "@payable",
	}
	for m, want := range cases {
		if got := m.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", m, got, want)
		}
	}
}
