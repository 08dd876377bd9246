package vyzzer

import "testing"

func TestConvertJSONDeterministic(t *testing.T) {
	data := []byte(`{"decls":[{}]}`)
	g1 := New(7)
	g2 := New(7)

	out1, err := g1.ConvertJSON(data)
	if err != nil {
		t.Fatalf("ConvertJSON: %v", err)
	}
	out2, err := g2.ConvertJSON(data)
	if err != nil {
		t.Fatalf("ConvertJSON: %v", err)
	}
	if out1 != out2 {
		t.Fatalf("same seed produced different output:\n%q\nvs\n%q", out1, out2)
	}
}

func TestWithMaxStorageVariablesCapsOutput(t *testing.T) {
	data := []byte(`{"decls":[{},{},{}]}`)
	g := New(1, WithMaxStorageVariables(1))

	out, err := g.ConvertJSON(data)
	if err != nil {
		t.Fatalf("ConvertJSON: %v", err)
	}
	want := "x_INT_0: uint8\n\n"
	if out != want {
		t.Fatalf("got %q, want %q (expected only 1 of 3 decls emitted)", out, want)
	}
}
