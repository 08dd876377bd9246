// Package fuzzgen builds random internal/model.Contract trees for fuzz
// and property tests, the way tests/fuzz/generators builds random
// program text — a Generator wrapping a vartracker.RandomSource plus a
// depth counter, with New(seed) and NewFromData(data) constructors.
package fuzzgen

import (
	"github.com/statemindio/vyzzer-go/internal/model"
	"github.com/statemindio/vyzzer-go/internal/vartracker"
)

const (
	MaxDepth      = 4
	MaxStatements = 4
	MaxDecls      = 6
	MaxFunctions  = 4
)

// Generator produces random, always well-formed Contract trees.
type Generator struct {
	src   vartracker.RandomSource
	depth int
}

// New builds a Generator seeded deterministically.
func New(seed int64) *Generator {
	return &Generator{src: vartracker.NewSeeded(seed)}
}

// NewFromData builds a Generator whose choices are replayed from raw
// fuzz-corpus bytes instead of a PRNG.
func NewFromData(data []byte) *Generator {
	return &Generator{src: vartracker.NewByteSource(data)}
}

func (g *Generator) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return g.src.Intn(n)
}

func (g *Generator) bool() bool { return g.Intn(2) == 1 }

// Contract generates a random top-level tree.
func (g *Generator) Contract() *model.Contract {
	c := &model.Contract{}
	for i, n := 0, g.Intn(MaxDecls); i < n; i++ {
		c.Decls = append(c.Decls, &model.VarDecl{Type: g.valueType()})
	}
	for i, n := 0, 1+g.Intn(MaxFunctions); i < n; i++ {
		c.Functions = append(c.Functions, g.function())
	}
	return c
}

func (g *Generator) valueType() *model.Type {
	switch g.Intn(7) {
	case 0:
		return &model.Type{Bool: true}
	case 1:
		return &model.Type{Decimal: true}
	case 2:
		return &model.Type{BytesM: &model.BytesMTypeNode{M: g.Intn(64)}}
	case 3:
		return &model.Type{String: &model.StringTypeNode{MaxLen: g.Intn(512)}}
	case 4:
		return &model.Type{Address: true}
	case 5:
		return &model.Type{Bytes: &model.BytesTypeNode{MaxLen: g.Intn(512)}}
	default:
		return &model.Type{Int: &model.IntTypeNode{N: g.Intn(512), Sign: g.bool()}}
	}
}

func (g *Generator) function() *model.Func {
	fn := &model.Func{
		Visibility: model.Visibility(g.Intn(2)),
		Mutability: model.MutabilityFloor(g.Intn(4)),
	}
	for i, n := 0, g.Intn(4); i < n; i++ {
		fn.InputParams = append(fn.InputParams, g.valueType())
	}
	for i, n := 0, g.Intn(3); i < n; i++ {
		fn.OutputParams = append(fn.OutputParams, g.valueType())
	}
	if g.bool() {
		fn.Ret = &model.Reentrancy{Key: "lock"}
	}
	g.depth = 0
	fn.Block = g.block(len(fn.OutputParams) > 0)
	return fn
}

func (g *Generator) block(needsReturn bool) *model.Block {
	b := &model.Block{ExitFlag: needsReturn}
	n := g.Intn(MaxStatements)
	for i := 0; i < n; i++ {
		b.Statements = append(b.Statements, g.statement())
	}
	if needsReturn {
		b.ExitPayload = &model.ReturnPayload{}
	}
	return b
}

func (g *Generator) statement() *model.Statement {
	if g.depth >= MaxDepth {
		return &model.Statement{Decl: &model.VarDecl{Type: g.valueType()}}
	}
	switch g.Intn(4) {
	case 0:
		return &model.Statement{Decl: &model.VarDecl{Type: g.valueType()}}
	case 1:
		g.depth++
		s := &model.Statement{ForStmt: &model.ForStmt{
			Ranged: &model.ForStmtRanged{Start: g.Intn(10), Stop: g.Intn(10)},
			Body:   g.block(false),
		}}
		g.depth--
		return s
	case 2:
		g.depth++
		s := &model.Statement{IfStmt: &model.IfStmt{
			Cases: []*model.IfCase{{
				Cond:   &model.Expr{BoolExp: &model.BoolExpr{Lit: &model.Literal{BoolVal: g.bool()}}},
				IfBody: g.block(false),
			}},
		}}
		g.depth--
		return s
	default:
		t := g.valueType()
		return &model.Statement{Assignment: &model.Assignment{RefType: t}}
	}
}
