package convert

import (
	"fmt"
	"strings"

	"github.com/statemindio/vyzzer-go/internal/config"
	"github.com/statemindio/vyzzer-go/internal/functracker"
	"github.com/statemindio/vyzzer-go/internal/model"
	"github.com/statemindio/vyzzer-go/internal/vyptype"
)

// visitStatement implements spec §4.5's statement dispatch, including
// the for-block-scoped continue/break carve-out: outside a for block
// those map to the assignment fallback, same as any other unmatched
// variant.
func (c *Converter) visitStatement(stmt *model.Statement) string {
	if c.forBlockCount > 0 {
		if stmt.ContStmt {
			return c.visitContinueStatement()
		}
		if stmt.BreakStmt {
			return c.visitBreakStatement()
		}
	}
	switch {
	case stmt.Decl != nil:
		return c.visitVarDecl(stmt.Decl, false)
	case stmt.ForStmt != nil:
		return c.visitForStmt(stmt.ForStmt)
	case stmt.IfStmt != nil:
		return c.visitIfStmt(stmt.IfStmt)
	case stmt.AssertStmt != nil:
		return c.visitAssertStmt(stmt.AssertStmt)
	default:
		return c.visitAssignment(stmt.Assignment)
	}
}

func (c *Converter) visitContinueStatement() string {
	return c.indent() + "continue"
}

func (c *Converter) visitBreakStatement() string {
	return c.indent() + "break"
}

// visitBlock lowers every contained statement, then — only at the
// outermost function body or when the block's exit flag is set — emits
// a terminator in priority order: selfdestruct, raise, return.
func (c *Converter) visitBlock(block *model.Block) string {
	var b strings.Builder
	for _, stmt := range block.Statements {
		b.WriteString(c.visitStatement(stmt))
		b.WriteString("\n")
	}

	if c.blockLevel == 1 || block.ExitFlag {
		switch {
		case block.ExitSelfd != nil:
			b.WriteString(c.visitSelfdestruct(block.ExitSelfd))
		case block.ExitRaise != nil:
			b.WriteString(c.visitRaiseStatement(block.ExitRaise))
		case len(c.functionOutput) > 0 || block.ExitFlag:
			b.WriteString(c.visitReturnPayload(block.ExitPayload))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (c *Converter) visitSelfdestruct(selfd *model.Selfdestruct) string {
	c.escalate(functracker.NonPayable)
	c.pushType(vyptype.AddressType{})
	target := c.visitAddressExpression(selfd.To.AddrExp)
	c.popType()
	return fmt.Sprintf("%sselfdestruct(%s)", c.indent(), target)
}

func (c *Converter) visitRaiseStatement(r *model.RaiseStmt) string {
	c.pushType(vyptype.NewStringType(100))
	var value string
	if r.ErrVal != nil {
		value = c.visitStringExpression(r.ErrVal.StrExp)
	} else {
		value = c.visitStringExpression(&model.StringExpr{Lit: &model.Literal{}})
	}
	c.popType()

	result := c.indent() + "raise"
	if len(value) > 2 {
		result += " " + value
	}
	return result
}

// visitReturnPayload renders a single "return" statement carrying one
// expression per declared output slot. A
// missing or short payload (including no ExitPayload at all) leaves
// slot nil for the unfilled outputs; visitTypedExpression treats a nil
// expression as empty and falls through to a zero-value literal, so a
// function with declared outputs and no explicit return value still
// lowers to a valid "return 0"-shaped statement instead of panicking.
func (c *Converter) visitReturnPayload(payload *model.ReturnPayload) string {
	parts := make([]string, 0, len(c.functionOutput))
	for i, outType := range c.functionOutput {
		var slot *model.Expr
		if payload != nil && i < len(payload.Slots) {
			slot = payload.Slots[i]
		}
		c.pushType(outType)
		parts = append(parts, c.visitTypedExpression(slot, outType))
		c.popType()
	}
	return c.indent() + "return " + strings.Join(parts, ",")
}

func (c *Converter) visitAssertStmt(stmt *model.AssertStmt) string {
	result := c.indent() + "assert"

	c.pushType(vyptype.BoolType{})
	condition := c.visitBoolExpression(stmt.Cond.BoolExp)
	c.popType()
	result += " " + condition

	c.pushType(vyptype.NewStringType(100))
	var reason string
	if stmt.Reason != nil {
		reason = c.visitStringExpression(stmt.Reason.StrExp)
	} else {
		reason = c.visitStringExpression(&model.StringExpr{Lit: &model.Literal{}})
	}
	c.popType()

	if len(reason) > 2 {
		result += ", " + reason
	}
	return result
}

// visitAssignment implements the total-on-assignment invariant (spec
// §9): an assignment with no visible target of its type falls back to a
// fresh local declaration.
func (c *Converter) visitAssignment(a *model.Assignment) string {
	if a == nil {
		a = &model.Assignment{RefType: &model.Type{}}
	}
	t := resolveType(a.RefType)
	c.pushType(t)

	level := c.blockLevel
	target, ok := c.resolveVarRef(&level, true)
	if !ok {
		c.popType()
		return c.varDecl(a.Expr, t, false)
	}
	value := c.visitTypedExpression(a.Expr, t)
	c.popType()
	return fmt.Sprintf("%s%s = %s", c.indent(), target, value)
}

// visitForStmt implements both for-loop shapes (spec §4.5). The body is
// lowered first, then the induction variable "i_<k>" is registered (and,
// for the variable-length form, the anchor resolved) — statements inside
// the loop body can never reference the induction variable itself,
// matching the original's draw order: _visit_for_stmt visits the body
// before building the header. The anchor, when present, is resolved
// against the *outer* scope captured before entering the body, since it
// must already exist before the loop starts; the induction variable
// itself is still registered at the body's block level, so it is
// dropped again on exitBlock and never leaks to a sibling statement.
func (c *Converter) visitForStmt(f *model.ForStmt) string {
	c.forBlockCount++
	outerIndent := c.indent()
	outerLevel := c.blockLevel

	c.enterBlock()
	body := c.visitBlock(f.Body)

	var anchor string
	if f.Variable != nil && f.Variable.RefID != nil {
		ivarType := vyptype.IntType{Width: 256, Signed: false}
		c.pushType(ivarType)
		if name, ok := c.resolveVarRef(&outerLevel, false); ok {
			anchor = name
		}
		c.popType()
	}

	var header string
	if f.Variable != nil {
		header = c.visitForStmtVariable(f.Variable, anchor)
	} else {
		header = c.visitForStmtRanged(f.Ranged)
	}

	c.exitBlock()
	c.forBlockCount--

	return outerIndent + header + "\n" + body
}

func (c *Converter) visitForStmtRanged(r *model.ForStmtRanged) string {
	start, stop := r.Start, r.Stop
	if start > stop {
		start, stop = stop, start
	}
	ivarType := vyptype.IntType{Width: 256, Signed: false}
	idx := c.vars.NextID(ivarType)
	name := fmt.Sprintf("i_%d", idx)
	c.vars.RegisterLocal(name, c.blockLevel, ivarType)
	return fmt.Sprintf("for %s in range(%d, %d):", name, start, stop)
}

func (c *Converter) visitForStmtVariable(v *model.ForStmtVariable, anchor string) string {
	ivarType := vyptype.IntType{Width: 256, Signed: false}
	idx := c.vars.NextID(ivarType)
	name := fmt.Sprintf("i_%d", idx)
	c.vars.RegisterLocal(name, c.blockLevel, ivarType)

	if anchor == "" {
		return fmt.Sprintf("for %s in range(%d):", name, v.Length)
	}
	return fmt.Sprintf("for %s in range(%s, %s+%d):", name, anchor, anchor, v.Length)
}

func (c *Converter) visitIfStmt(stmt *model.IfStmt) string {
	result := c.visitIfCases(stmt.Cases)
	if stmt.ElseCase != nil {
		result += "\n" + c.visitElseCase(stmt.ElseCase)
	}
	return result
}

func (c *Converter) visitIfCases(cases []*model.IfCase) string {
	result := c.indent() + "if"
	if len(cases) == 0 {
		return result + " False:\n" + strings.Repeat(config.TAB, c.blockLevel+1) + "pass"
	}
	for i, ifCase := range cases {
		prefix := ""
		if i > 0 {
			prefix = c.indent() + "elif"
		}
		c.pushType(vyptype.BoolType{})
		condition := c.visitBoolExpression(ifCase.Cond.BoolExp)
		c.popType()

		c.enterBlock()
		body := c.visitBlock(ifCase.IfBody)
		c.exitBlock()

		result += prefix + " " + condition + ":\n" + body
	}
	return result
}

func (c *Converter) visitElseCase(block *model.Block) string {
	result := c.indent() + "else:"
	c.enterBlock()
	body := c.visitBlock(block)
	c.exitBlock()
	return result + "\n" + body
}
