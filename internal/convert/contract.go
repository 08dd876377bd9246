package convert

import (
	"strings"

	"github.com/statemindio/vyzzer-go/internal/diagnostics"
	"github.com/statemindio/vyzzer-go/internal/model"
	"github.com/statemindio/vyzzer-go/internal/vartracker"
)

// Convert runs one conversion of contract under the given options and
// PRNG source, returning target-language source text. It is the single
// public entry point: any InternalInvariant raised mid-walk is recovered
// here and returned as an error (spec §7 — a single fatal error, partial
// output discarded).
func Convert(contract *model.Contract, opts Options, src vartracker.RandomSource) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			if cerr, ok := r.(*diagnostics.ConverterError); ok {
				out, err = "", cerr
				return
			}
			out, err = "", diagnostics.Invariant("panic during conversion: %v", r)
		}
	}()

	c := New(opts, src)
	return c.visitContract(contract), nil
}

// visitContract implements spec §4.1: storage declarations, a blank
// line if any were emitted, then functions — both lists bounded by the
// configured maxima, with excess entries silently dropped.
func (c *Converter) visitContract(contract *model.Contract) string {
	var b strings.Builder

	max := c.opts.MaxStorageVariables
	decls := contract.Decls
	if max > 0 && len(decls) > max {
		decls = decls[:max]
	}
	for _, decl := range decls {
		b.WriteString(c.visitVarDecl(decl, true))
		b.WriteString("\n")
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}

	maxFns := c.opts.MaxFunctions
	fns := contract.Functions
	if maxFns > 0 && len(fns) > maxFns {
		fns = fns[:maxFns]
	}
	for _, fn := range fns {
		b.WriteString(c.visitFunc(fn))
		b.WriteString("\n")
	}

	return b.String()
}
