// Package convert is the core of vyzzer-go: a recursive lowering pass
// from internal/model's input tree to target-language source text. It
// bundles the type stack, operator stack, block-depth counter, and
// monotonic mutability level into one Converter, per SPEC_FULL's
// resolution of the "cyclic/ambient state" design note — no package-level
// mutable state, everything lives on the receiver.
package convert

import (
	"strings"

	"github.com/statemindio/vyzzer-go/internal/config"
	"github.com/statemindio/vyzzer-go/internal/diagnostics"
	"github.com/statemindio/vyzzer-go/internal/functracker"
	"github.com/statemindio/vyzzer-go/internal/vartracker"
	"github.com/statemindio/vyzzer-go/internal/vyptype"
)

// Options are the knobs a caller can set for one conversion run.
type Options struct {
	MaxStorageVariables int
	MaxFunctions        int
	// CoerceShaWidth, when true, truncates a sha256/keccak256 result
	// to the outer expected BytesM width instead of always
	// emitting a 32-byte result. Default false reproduces the
	// original's documented narrow-BytesM gap (spec §9) faithfully.
	CoerceShaWidth bool
}

// DefaultOptions mirrors internal/config's defaults.
func DefaultOptions() Options {
	return Options{
		MaxStorageVariables: config.DefaultMaxStorageVariables,
		MaxFunctions:        config.DefaultMaxFunctions,
		CoerceShaWidth:      false,
	}
}

// Converter is the single mutable-state owner for one conversion run. It
// is not safe for concurrent use — conversion is single-threaded and
// synchronous by design (spec §5).
type Converter struct {
	opts  Options
	vars  *vartracker.Tracker
	funcs *functracker.Tracker

	typeStack []vyptype.Type
	opStack   []string

	blockLevel     int
	mutability     functracker.Mutability
	functionOutput []vyptype.Type
	forBlockCount  int
}

// New builds a Converter seeded by src.
func New(opts Options, src vartracker.RandomSource) *Converter {
	return &Converter{
		opts:  opts,
		vars:  vartracker.New(src),
		funcs: functracker.New(),
	}
}

func (c *Converter) pushType(t vyptype.Type) {
	c.typeStack = append(c.typeStack, t)
}

func (c *Converter) popType() {
	if len(c.typeStack) == 0 {
		panic(diagnostics.Invariant("type stack underflow"))
	}
	c.typeStack = c.typeStack[:len(c.typeStack)-1]
}

func (c *Converter) topType() vyptype.Type {
	if len(c.typeStack) == 0 {
		panic(diagnostics.Invariant("type stack empty"))
	}
	return c.typeStack[len(c.typeStack)-1]
}

func (c *Converter) pushOp(op string) {
	c.opStack = append(c.opStack, op)
}

func (c *Converter) popOp() {
	if len(c.opStack) == 0 {
		panic(diagnostics.Invariant("operator stack underflow"))
	}
	c.opStack = c.opStack[:len(c.opStack)-1]
}

// parenthesize wraps s in parentheses iff the operator stack is
// non-empty after the enclosing operator was popped — i.e. this
// expression is itself nested under another operator (spec §4.4).
func (c *Converter) parenthesize(s string) string {
	if len(c.opStack) > 0 {
		return "(" + s + ")"
	}
	return s
}

func (c *Converter) escalate(m functracker.Mutability) {
	if c.mutability < m {
		c.mutability = m
	}
}

func (c *Converter) indent() string {
	return strings.Repeat(config.TAB, c.blockLevel)
}

func (c *Converter) enterBlock() {
	c.blockLevel++
}

func (c *Converter) exitBlock() {
	c.vars.ExitScope(c.blockLevel - 1)
	c.blockLevel--
}
