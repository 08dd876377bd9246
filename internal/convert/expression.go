package convert

import (
	"fmt"

	"github.com/statemindio/vyzzer-go/internal/diagnostics"
	"github.com/statemindio/vyzzer-go/internal/functracker"
	"github.com/statemindio/vyzzer-go/internal/model"
	"github.com/statemindio/vyzzer-go/internal/vyptype"
)

// visitTypedExpression dispatches on the expected type (top of the type
// stack would also work, but the type is already known at every call
// site so it's threaded explicitly) to the matching typed visitor. This
// is the exhaustive-match replacement for the wire's string-keyed
// dispatch table (spec §9).
func (c *Converter) visitTypedExpression(expr *model.Expr, t vyptype.Type) string {
	if expr == nil {
		expr = &model.Expr{}
	}
	switch t.Tag() {
	case vyptype.Int:
		return c.visitIntExpression(expr.IntExp)
	case vyptype.BytesM:
		return c.visitBytesMExpression(expr.BMExp)
	case vyptype.Bool:
		return c.visitBoolExpression(expr.BoolExp)
	case vyptype.Bytes:
		return c.visitBytesExpression(expr.BExp)
	case vyptype.Decimal:
		return c.visitDecimalExpression(expr.DecExp)
	case vyptype.String:
		return c.visitStringExpression(expr.StrExp)
	case vyptype.Address:
		return c.visitAddressExpression(expr.AddrExp)
	default:
		panic(diagnostics.Invariant("no expression handler for type tag %q", t.Tag()))
	}
}

// resolveVarRef implements the shared "varRef" tail shared by every
// typed expression visitor (spec §4.4 point 1). level nil means only
// globals are visible. Referencing a global escalates mutability to at
// least VIEW; referencing one as an assignment target escalates to at
// least NON_PAYABLE.
func (c *Converter) resolveVarRef(level *int, assignment bool) (string, bool) {
	t := c.topType()
	v, ok := c.vars.Choose(level, t)
	if !ok {
		return "", false
	}
	if v.Global {
		if assignment {
			c.escalate(functracker.NonPayable)
		}
		c.escalate(functracker.View)
		return "self." + v.Name, true
	}
	return v.Name, true
}

// createLiteral implements create_literal: pull the raw scalar named by
// the expected type's tag out of lit and render it. A nil lit (no
// literal present on an otherwise-empty expression envelope) renders
// the zero-value literal for the expected type, matching a proto
// default sub-message falling through to create_literal rather than
// panicking (spec §7 totality).
func (c *Converter) createLiteral(lit *model.Literal) string {
	if lit == nil {
		lit = &model.Literal{}
	}
	t := c.topType()
	switch v := t.(type) {
	case vyptype.BoolType:
		return v.Literal(lit.BoolVal)
	case vyptype.DecimalType:
		return v.Literal(lit.DecimalVal)
	case vyptype.BytesMType:
		return v.Literal(lit.BytesMVal)
	case vyptype.StringType:
		return v.Literal(lit.StrVal)
	case vyptype.AddressType:
		return v.Literal(lit.AddrVal)
	case vyptype.BytesType:
		return v.Literal(lit.BytesVal)
	case vyptype.IntType:
		return v.Literal(lit.IntVal)
	default:
		panic(diagnostics.Invariant("createLiteral: unknown type %T", t))
	}
}

func (c *Converter) currentBlockLevel() *int {
	level := c.blockLevel
	return &level
}

// --- Int ---

func (c *Converter) visitIntExpression(expr *model.IntExpr) string {
	if expr == nil {
		return c.createLiteral(nil)
	}
	switch {
	case expr.BinOp != nil:
		op := binOpMap[expr.BinOp.Op]
		c.pushOp(op)
		left := c.visitIntExpression(expr.BinOp.Left)
		right := c.visitIntExpression(expr.BinOp.Right)
		result := fmt.Sprintf("%s %s %s", left, op, right)
		c.popOp()
		return c.parenthesize(result)
	case expr.UnOp != nil:
		c.pushOp(unMinus)
		result := "-" + c.visitIntExpression(expr.UnOp.Expr)
		c.popOp()
		return c.parenthesize(result)
	case expr.VarRef != nil:
		if name, ok := c.resolveVarRef(c.currentBlockLevel(), false); ok {
			return name
		}
	}
	return c.createLiteral(expr.Lit)
}

// --- Decimal ---

func (c *Converter) visitDecimalExpression(expr *model.DecExpr) string {
	if expr == nil {
		return c.createLiteral(nil)
	}
	switch {
	case expr.BinOp != nil:
		op := binOpMap[expr.BinOp.Op]
		c.pushOp(op)
		left := c.visitDecimalExpression(expr.BinOp.Left)
		right := c.visitDecimalExpression(expr.BinOp.Right)
		result := fmt.Sprintf("%s %s %s", left, op, right)
		c.popOp()
		return c.parenthesize(result)
	case expr.UnOp != nil:
		c.pushOp(unMinus)
		result := "-" + c.visitDecimalExpression(expr.UnOp.Expr)
		c.popOp()
		return c.parenthesize(result)
	case expr.VarRef != nil:
		if name, ok := c.resolveVarRef(c.currentBlockLevel(), false); ok {
			return name
		}
	}
	return c.createLiteral(expr.Lit)
}

// --- Bool ---

func (c *Converter) visitBoolExpression(expr *model.BoolExpr) string {
	if expr == nil {
		return c.createLiteral(nil)
	}
	switch {
	case expr.BoolBinOp != nil:
		left := c.visitBoolExpression(expr.BoolBinOp.Left)
		right := c.visitBoolExpression(expr.BoolBinOp.Right)
		return fmt.Sprintf("%s %s %s", left, boolOpMap[expr.BoolBinOp.Op], right)
	case expr.BoolUnOp != nil:
		return "not " + c.visitBoolExpression(expr.BoolUnOp.Expr)
	case expr.IntBoolBinOp != nil:
		c.pushType(vyptype.IntType{Width: 256, Signed: false})
		left := c.visitIntExpression(expr.IntBoolBinOp.Left)
		right := c.visitIntExpression(expr.IntBoolBinOp.Right)
		c.popType()
		return fmt.Sprintf("%s %s %s", left, compareOpMap[expr.IntBoolBinOp.Op], right)
	case expr.DecBoolBinOp != nil:
		c.pushType(vyptype.DecimalType{})
		left := c.visitDecimalExpression(expr.DecBoolBinOp.Left)
		right := c.visitDecimalExpression(expr.DecBoolBinOp.Right)
		c.popType()
		// Spec §9: the decimal comparison path uses the same
		// unambiguous INT_BIN_OP_BOOL_MAP table, not a separate one.
		return fmt.Sprintf("%s %s %s", left, compareOpMap[expr.DecBoolBinOp.Op], right)
	case expr.VarRef != nil:
		if name, ok := c.resolveVarRef(c.currentBlockLevel(), false); ok {
			return name
		}
	}
	return c.createLiteral(expr.Lit)
}

// --- BytesM ---

func (c *Converter) visitBytesMExpression(expr *model.BytesMExpr) string {
	if expr == nil {
		return c.createLiteral(nil)
	}
	switch {
	case expr.Sha != nil:
		return c.visitHash256(expr.Sha, "sha256")
	case expr.Keccak != nil:
		return c.visitHash256(expr.Keccak, "keccak256")
	case expr.VarRef != nil:
		if name, ok := c.resolveVarRef(c.currentBlockLevel(), false); ok {
			return name
		}
	}
	return c.createLiteral(expr.Lit)
}

// visitHash256 lowers sha{...}/keccak256{...} (spec §4.4's sha rule,
// supplemented with keccak256 sharing the same operand handling per
// SPEC_FULL §3). Known gap, not silently patched: the emitted call
// always produces a 32-byte result regardless of the *outer* expected
// BytesM width, unless Options.CoerceShaWidth opts into truncating it
// with slice(...) to that width.
func (c *Converter) visitHash256(expr *model.Hash256Expr, fn string) string {
	outer := c.topType()
	var value string
	switch {
	case expr.StrVal != nil:
		c.pushType(vyptype.NewStringType(100))
		value = c.visitStringExpression(expr.StrVal)
		c.popType()
	case expr.BVal != nil:
		c.pushType(vyptype.NewBytesType(100))
		value = c.visitBytesExpression(expr.BVal)
		c.popType()
	default:
		c.pushType(vyptype.BytesMType{M: 32})
		value = c.visitBytesMExpression(expr.BmVal)
		c.popType()
	}
	result := fmt.Sprintf("%s(%s)", fn, value)
	if c.opts.CoerceShaWidth {
		if bm, ok := outer.(vyptype.BytesMType); ok && bm.M != 32 {
			result = fmt.Sprintf("slice(%s, 0, %d)", result, bm.M)
		}
	}
	return result
}

// --- Bytes ---

func (c *Converter) visitBytesExpression(expr *model.BytesExpr) string {
	if expr == nil {
		return c.createLiteral(nil)
	}
	if expr.VarRef != nil {
		if name, ok := c.resolveVarRef(c.currentBlockLevel(), false); ok {
			return name
		}
	}
	return c.createLiteral(expr.Lit)
}

// --- String ---

func (c *Converter) visitStringExpression(expr *model.StringExpr) string {
	var varRef *model.VarRef
	var lit *model.Literal
	if expr != nil {
		varRef, lit = expr.VarRef, expr.Lit
	}
	if varRef != nil {
		if name, ok := c.resolveVarRef(c.currentBlockLevel(), false); ok {
			return name
		}
	}
	// createLiteral already escapes embedded backslashes/quotes; wrap in
	// plain quotes instead of %q, which would escape a second time.
	return `"` + c.createLiteral(lit) + `"`
}

// --- Address ---

func (c *Converter) visitAddressExpression(expr *model.AddrExpr) string {
	if expr == nil {
		return c.createLiteral(nil)
	}
	switch {
	case expr.Cmp != nil:
		return c.visitCreateMinProxyOrCopyOf(expr.Cmp.Target, expr.Cmp.Value, expr.Cmp.Salt, "create_minimal_proxy_to")
	case expr.Cfb != nil:
		return c.visitCreateFromBlueprint(expr.Cfb)
	case expr.CopyOf != nil:
		return c.visitCreateMinProxyOrCopyOf(expr.CopyOf.Target, expr.CopyOf.Value, expr.CopyOf.Salt, "create_copy_of")
	case expr.VarRef != nil:
		if name, ok := c.resolveVarRef(c.currentBlockLevel(), false); ok {
			return name
		}
	}
	return c.createLiteral(expr.Lit)
}

// visitCreateMinProxyOrCopyOf lowers both create_minimal_proxy_to and
// create_copy_of, which share one field shape and differ only in the
// emitted function name (SPEC_FULL §3, grounded on the original's
// visit_create_min_proxy_or_copy_of(mes, name)).
func (c *Converter) visitCreateMinProxyOrCopyOf(target *model.AddrExpr, value *model.IntExpr, salt *model.BytesMExpr, fn string) string {
	c.escalate(functracker.NonPayable)

	c.pushType(vyptype.AddressType{})
	targetStr := c.visitAddressExpression(target)
	c.popType()

	result := fmt.Sprintf("%s(%s", fn, targetStr)
	if value != nil {
		c.pushType(vyptype.IntType{Width: 256, Signed: false})
		v := c.visitIntExpression(value)
		c.popType()
		result += ", value = " + v
	}
	if salt != nil {
		c.pushType(vyptype.BytesMType{M: 32})
		s := c.visitBytesMExpression(salt)
		c.popType()
		result += ", salt = " + s
	}
	return result + ")"
}

func (c *Converter) visitCreateFromBlueprint(cfb *model.CreateFromBlueprint) string {
	c.escalate(functracker.NonPayable)

	c.pushType(vyptype.AddressType{})
	target := c.visitAddressExpression(cfb.Target)
	c.popType()

	result := fmt.Sprintf("create_from_blueprint(%s", target)
	if cfb.RawArgs != nil {
		c.pushType(vyptype.BoolType{})
		v := c.visitBoolExpression(cfb.RawArgs)
		c.popType()
		result += ", raw_args = " + v
	}
	if cfb.Value != nil {
		c.pushType(vyptype.IntType{Width: 256, Signed: false})
		v := c.visitIntExpression(cfb.Value)
		c.popType()
		result += ", value = " + v
	}
	if cfb.CodeOffset != nil {
		c.pushType(vyptype.IntType{Width: 256, Signed: false})
		v := c.visitIntExpression(cfb.CodeOffset)
		c.popType()
		result += ", code_offset = " + v
	}
	if cfb.Salt != nil {
		c.pushType(vyptype.BytesMType{M: 32})
		v := c.visitBytesMExpression(cfb.Salt)
		c.popType()
		result += ", salt = " + v
	}
	return result + ")"
}
