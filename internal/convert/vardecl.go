package convert

import (
	"fmt"

	"github.com/statemindio/vyzzer-go/internal/model"
	"github.com/statemindio/vyzzer-go/internal/vyptype"
)

// varDecl implements spec §4.3. expr is ignored for storage
// declarations: the target language forbids initializers at storage
// scope, so the input's expression subtree (if any) is not lowered there.
func (c *Converter) varDecl(expr *model.Expr, t vyptype.Type, isGlobal bool) string {
	c.pushType(t)
	defer c.popType()

	idx := c.vars.NextID(t)
	name := fmt.Sprintf("x_%s_%d", t.Tag(), idx)
	result := name + ": " + t.Render()

	if isGlobal {
		c.vars.RegisterGlobal(name, t)
	} else {
		value := c.visitTypedExpression(expr, t)
		c.vars.RegisterLocal(name, c.blockLevel, t)
		result = result + " = " + value
	}
	return c.indent() + result
}

// visitVarDecl lowers a declaration node (spec §4.1 storage path and
// §4.5's statement "Declaration" path).
func (c *Converter) visitVarDecl(decl *model.VarDecl, isGlobal bool) string {
	t := resolveType(decl.Type)
	return c.varDecl(decl.Expr, t, isGlobal)
}
