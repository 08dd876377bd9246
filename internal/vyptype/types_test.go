package vyptype

import "testing"

func TestNewIntTypeClampsAndRounds(t *testing.T) {
	cases := []struct {
		n      int
		sign   bool
		width  int
	}{
		{0, false, 8},
		{511, false, 256},
		{511, true, 256},
		{7, false, 8},
		{9, false, 16},
	}
	for _, c := range cases {
		got := NewIntType(c.n, c.sign)
		if got.Width != c.width || got.Signed != c.sign {
			t.Errorf("NewIntType(%d, %v) = %+v, want width %d", c.n, c.sign, got, c.width)
		}
	}
}

func TestIntTypeRender(t *testing.T) {
	if NewIntType(511, false).Render() != "uint256" {
		t.Fatalf("unexpected render: %s", NewIntType(511, false).Render())
	}
	if NewIntType(511, true).Render() != "int256" {
		t.Fatalf("unexpected render: %s", NewIntType(511, true).Render())
	}
}

func TestNewBytesMTypeWraps(t *testing.T) {
	if got := NewBytesMType(0); got.M != 1 {
		t.Fatalf("NewBytesMType(0).M = %d, want 1", got.M)
	}
	if got := NewBytesMType(63); got.M != 32 {
		t.Fatalf("NewBytesMType(63).M = %d, want 32", got.M)
	}
	if got := NewBytesMType(31); got.M != 32 {
		t.Fatalf("NewBytesMType(31).M = %d, want 32", got.M)
	}
}

func TestNewStringTypeDefaultsToOne(t *testing.T) {
	if got := NewStringType(0); got.MaxLen != 1 {
		t.Fatalf("NewStringType(0).MaxLen = %d, want 1", got.MaxLen)
	}
	if got := NewStringType(382); got.MaxLen != 382 {
		t.Fatalf("NewStringType(382).MaxLen = %d, want 382", got.MaxLen)
	}
}

func TestRenderRoundTrip(t *testing.T) {
	types := []Type{
		BoolType{}, DecimalType{}, AddressType{},
		NewIntType(511, false), NewBytesMType(63),
		NewBytesType(0), NewStringType(0),
	}
	for _, ty := range types {
		if ty.Render() == "" {
			t.Errorf("%v: empty render", ty.Tag())
		}
	}
}
