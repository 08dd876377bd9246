package convert

import "github.com/statemindio/vyzzer-go/internal/model"

// binOpMap is BIN_OP_MAP: the eleven Int/Decimal binary operators, in
// the wire's declared order.
var binOpMap = map[model.IntOp]string{
	model.OpAdd:    "+",
	model.OpSub:    "-",
	model.OpMul:    "*",
	model.OpDiv:    "/",
	model.OpMod:    "%",
	model.OpPow:    "**",
	model.OpBitAnd: "&",
	model.OpBitOr:  "|",
	model.OpBitXor: "^",
	model.OpShl:    "<<",
	model.OpShr:    ">>",
}

// boolOpMap is BIN_OP_BOOL_MAP.
var boolOpMap = map[model.BoolOp]string{
	model.OpBoolAnd: "and",
	model.OpBoolOr:  "or",
	model.OpBoolEq:  "==",
	model.OpBoolNeq: "!=",
}

// compareOpMap is INT_BIN_OP_BOOL_MAP, used unambiguously by both
// intBoolBinOp and decBoolBinOp (spec §9 resolves the ambiguity this
// way).
var compareOpMap = map[model.CompareOp]string{
	model.OpEq:  "==",
	model.OpNeq: "!=",
	model.OpLt:  "<",
	model.OpLte: "<=",
	model.OpGt:  ">",
	model.OpGte: ">=",
}

// unMinus is the op-stack sentinel pushed for unary minus, matching the
// original's literal "unMinus" marker.
const unMinus = "unMinus"
