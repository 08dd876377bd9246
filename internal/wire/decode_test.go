package wire

import (
	"testing"

	"github.com/statemindio/vyzzer-go/internal/convert"
	"github.com/statemindio/vyzzer-go/internal/vartracker"
)

func TestDecodeJSONDefaultDecl(t *testing.T) {
	contract, err := DecodeJSON([]byte(`{"decls":[{}]}`))
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if len(contract.Decls) != 1 {
		t.Fatalf("len(Decls) = %d, want 1", len(contract.Decls))
	}

	out, err := convert.Convert(contract, convert.DefaultOptions(), vartracker.NewSeeded(1))
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	want := "x_INT_0: uint8\n\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestDecodeJSONTypedDecl(t *testing.T) {
	contract, err := DecodeJSON([]byte(`{"decls":[{"type":{"i":{"n":511,"sign":true}}}]}`))
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if contract.Decls[0].Type.Int == nil || contract.Decls[0].Type.Int.N != 511 || !contract.Decls[0].Type.Int.Sign {
		t.Fatalf("decoded type = %+v", contract.Decls[0].Type)
	}
}

func TestDecodeJSONMalformedReturnsError(t *testing.T) {
	if _, err := DecodeJSON([]byte(`not json`)); err == nil {
		t.Fatalf("expected error decoding malformed JSON")
	}
}
