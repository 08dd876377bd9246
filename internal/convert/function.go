package convert

import (
	"fmt"
	"strings"

	"github.com/statemindio/vyzzer-go/internal/functracker"
	"github.com/statemindio/vyzzer-go/internal/model"
	"github.com/statemindio/vyzzer-go/internal/vyptype"
)

func mutabilityFloor(m model.MutabilityFloor) functracker.Mutability {
	switch m {
	case model.MutView:
		return functracker.View
	case model.MutNonPayable:
		return functracker.NonPayable
	case model.MutPayable:
		return functracker.Payable
	default:
		return functracker.Pure
	}
}

// visitInputParameters lowers a function's input parameter list, also
// registering each as a function-local variable at the current block
// level (spec §4.5).
func (c *Converter) visitInputParameters(params []*model.Type) (string, []vyptype.Type) {
	parts := make([]string, 0, len(params))
	types := make([]vyptype.Type, 0, len(params))
	for _, p := range params {
		t := resolveType(p)
		idx := c.vars.NextID(t)
		name := fmt.Sprintf("x_%s_%d", t.Tag(), idx)
		c.vars.RegisterLocal(name, c.blockLevel, t)
		parts = append(parts, fmt.Sprintf("%s: %s", name, t.Render()))
		types = append(types, t)
	}
	return strings.Join(parts, ", "), types
}

func (c *Converter) visitOutputParameters(params []*model.Type) []vyptype.Type {
	types := make([]vyptype.Type, 0, len(params))
	for _, p := range params {
		types = append(types, resolveType(p))
	}
	return types
}

func generateFunctionName(id int) string {
	return fmt.Sprintf("func_%d", id)
}

func renderReentrancy(key string) string {
	if key == "" {
		return ""
	}
	return fmt.Sprintf("@nonreentrant(%q)\n", key)
}

// visitFunc implements spec §4.5. Mutability resets to PURE for every
// function; the final emitted mutability is the max of the input's
// declared floor and whatever was escalated while lowering the body.
func (c *Converter) visitFunc(fn *model.Func) string {
	c.mutability = functracker.Pure

	visibility := "@internal"
	vis := functracker.Internal
	if fn.Visibility == model.VisExternal {
		visibility = "@external"
		vis = functracker.External
	}

	c.blockLevel = 1
	inputParams, inputTypes := c.visitInputParameters(fn.InputParams)
	c.functionOutput = c.visitOutputParameters(fn.OutputParams)
	name := generateFunctionName(c.funcs.NextID())

	outputStr := ""
	if len(c.functionOutput) > 0 {
		rendered := make([]string, len(c.functionOutput))
		for i, t := range c.functionOutput {
			rendered[i] = t.Render()
		}
		joined := strings.Join(rendered, ", ")
		if len(rendered) > 1 {
			joined = "(" + joined + ")"
		}
		outputStr = " -> " + joined
	}

	body := c.visitBlock(fn.Block)
	c.exitBlockVarsOnly()

	reentrancy := ""
	if fn.Ret != nil && c.mutability > functracker.Pure {
		reentrancy = renderReentrancy(fn.Ret.Key)
	}

	floor := mutabilityFloor(fn.Mutability)
	final := c.mutability
	if floor > final {
		final = floor
	}

	c.funcs.Register(name, final, vis, inputTypes, c.functionOutput)

	return fmt.Sprintf("%s\n%s%s\ndef %s(%s)%s:\n%s", visibility, reentrancy, final, name, inputParams, outputStr, body)
}

// exitBlockVarsOnly drops every local registered while lowering the
// function body, without touching blockLevel (the caller manages that
// explicitly around a whole function, unlike nested for/if blocks).
func (c *Converter) exitBlockVarsOnly() {
	c.vars.ExitScope(0)
}
