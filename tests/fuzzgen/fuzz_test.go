package fuzzgen

import (
	"testing"

	"github.com/statemindio/vyzzer-go/internal/convert"
	"github.com/statemindio/vyzzer-go/internal/vartracker"
)

// FuzzConvertDeterministic feeds random bytes into a Generator and
// asserts converting the resulting Contract twice under the same seed
// gives the same outcome: both runs fail, or both succeed with
// identical source text.
func FuzzConvertDeterministic(f *testing.F) {
	f.Add([]byte{1, 2, 3, 4, 5, 6, 7, 8})
	f.Add([]byte{})
	f.Add([]byte{255, 0, 255, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1})

	f.Fuzz(func(t *testing.T, data []byte) {
		contract := NewFromData(data).Contract()
		opts := convert.DefaultOptions()

		out1, err1 := convert.Convert(contract, opts, vartracker.NewSeeded(1))
		out2, err2 := convert.Convert(contract, opts, vartracker.NewSeeded(1))

		if (err1 == nil) != (err2 == nil) {
			t.Fatalf("non-deterministic error outcome: %v vs %v", err1, err2)
		}
		if err1 == nil && out1 != out2 {
			t.Fatalf("non-deterministic output for identical (contract, seed):\n%q\nvs\n%q", out1, out2)
		}
	})
}
