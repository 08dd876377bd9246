package diagnostics

import (
	"errors"
	"testing"
)

func TestMalformedWrapUnwraps(t *testing.T) {
	cause := errors.New("bad byte")
	err := MalformedWrap(cause, "decoding %s", "contract")
	if !errors.Is(err, cause) {
		t.Fatalf("errors.Is(err, cause) = false")
	}
	if err.Code != MalformedInput {
		t.Fatalf("Code = %v, want MalformedInput", err.Code)
	}
}

func TestInvariantMessage(t *testing.T) {
	err := Invariant("stack underflow")
	if err.Code != InternalInvariant {
		t.Fatalf("Code = %v, want InternalInvariant", err.Code)
	}
	if err.Error() == "" {
		t.Fatalf("Error() returned empty string")
	}
}
