package wire

import (
	"github.com/jhump/protoreflect/dynamic"

	"github.com/statemindio/vyzzer-go/internal/diagnostics"
	"github.com/statemindio/vyzzer-go/internal/model"
)

// DecodeJSON decodes a JSON-encoded wire message into a Contract.
func DecodeJSON(data []byte) (*model.Contract, error) {
	md, err := findMessage("Contract")
	if err != nil {
		return nil, diagnostics.MalformedWrap(err, "wire: loading schema")
	}
	msg := dynamic.NewMessage(md)
	if err := msg.UnmarshalJSON(data); err != nil {
		return nil, diagnostics.MalformedWrap(err, "wire: decoding JSON contract")
	}
	return contractFromMsg(msg), nil
}

// DecodeProto decodes a binary-encoded wire message into a Contract.
func DecodeProto(data []byte) (*model.Contract, error) {
	md, err := findMessage("Contract")
	if err != nil {
		return nil, diagnostics.MalformedWrap(err, "wire: loading schema")
	}
	msg := dynamic.NewMessage(md)
	if err := msg.Unmarshal(data); err != nil {
		return nil, diagnostics.MalformedWrap(err, "wire: decoding binary contract")
	}
	return contractFromMsg(msg), nil
}

// FromDynamic walks an already-populated Contract dynamic.Message —
// handed in directly by a gRPC unary handler's dec func — into a
// Contract, without going through either encoded form.
func FromDynamic(msg *dynamic.Message) *model.Contract {
	return contractFromMsg(msg)
}

func hasField(msg *dynamic.Message, name string) bool {
	return msg != nil && msg.HasFieldByName(name)
}

func subMsg(msg *dynamic.Message, name string) *dynamic.Message {
	if !hasField(msg, name) {
		return nil
	}
	dm, _ := msg.GetFieldByName(name).(*dynamic.Message)
	return dm
}

func repeatedMsgs(msg *dynamic.Message, name string) []*dynamic.Message {
	v := msg.GetFieldByName(name)
	list, _ := v.([]interface{})
	out := make([]*dynamic.Message, 0, len(list))
	for _, item := range list {
		if dm, ok := item.(*dynamic.Message); ok {
			out = append(out, dm)
		}
	}
	return out
}

func contractFromMsg(msg *dynamic.Message) *model.Contract {
	c := &model.Contract{}
	for _, d := range repeatedMsgs(msg, "decls") {
		c.Decls = append(c.Decls, varDeclFromMsg(d))
	}
	for _, f := range repeatedMsgs(msg, "functions") {
		c.Functions = append(c.Functions, funcFromMsg(f))
	}
	return c
}

func varDeclFromMsg(msg *dynamic.Message) *model.VarDecl {
	if msg == nil {
		return &model.VarDecl{Type: &model.Type{}}
	}
	return &model.VarDecl{
		Type: valueTypeFromMsg(subMsg(msg, "type")),
		Expr: exprFromMsg(subMsg(msg, "expr")),
	}
}

func valueTypeFromMsg(msg *dynamic.Message) *model.Type {
	t := &model.Type{}
	if msg == nil {
		return t
	}
	switch {
	case hasField(msg, "b"):
		t.Bool, _ = msg.GetFieldByName("b").(bool)
	case hasField(msg, "d"):
		t.Decimal, _ = msg.GetFieldByName("d").(bool)
	case hasField(msg, "bM"):
		bm := subMsg(msg, "bM")
		m, _ := bm.GetFieldByName("m").(int32)
		t.BytesM = &model.BytesMTypeNode{M: int(m)}
	case hasField(msg, "s"):
		s := subMsg(msg, "s")
		n, _ := s.GetFieldByName("max_len").(int32)
		t.String = &model.StringTypeNode{MaxLen: int(n)}
	case hasField(msg, "adr"):
		t.Address, _ = msg.GetFieldByName("adr").(bool)
	case hasField(msg, "barr"):
		b := subMsg(msg, "barr")
		n, _ := b.GetFieldByName("max_len").(int32)
		t.Bytes = &model.BytesTypeNode{MaxLen: int(n)}
	case hasField(msg, "i"):
		i := subMsg(msg, "i")
		n, _ := i.GetFieldByName("n").(int32)
		sign, _ := i.GetFieldByName("sign").(bool)
		t.Int = &model.IntTypeNode{N: int(n), Sign: sign}
	}
	return t
}

func literalFromMsg(msg *dynamic.Message) *model.Literal {
	lit := &model.Literal{}
	if msg == nil {
		return lit
	}
	switch {
	case hasField(msg, "bool_val"):
		lit.BoolVal, _ = msg.GetFieldByName("bool_val").(bool)
	case hasField(msg, "decimal_val"):
		lit.DecimalVal, _ = msg.GetFieldByName("decimal_val").(float64)
	case hasField(msg, "bytesm_val"):
		lit.BytesMVal, _ = msg.GetFieldByName("bytesm_val").([]byte)
	case hasField(msg, "str_val"):
		lit.StrVal, _ = msg.GetFieldByName("str_val").(string)
	case hasField(msg, "addr_val"):
		lit.AddrVal, _ = msg.GetFieldByName("addr_val").([]byte)
	case hasField(msg, "bytes_val"):
		lit.BytesVal, _ = msg.GetFieldByName("bytes_val").([]byte)
	case hasField(msg, "int_val"):
		lit.IntVal, _ = msg.GetFieldByName("int_val").(int64)
	}
	return lit
}

func varRefFromMsg(msg *dynamic.Message) *model.VarRef {
	if msg == nil {
		return nil
	}
	return &model.VarRef{}
}

func funcFromMsg(msg *dynamic.Message) *model.Func {
	f := &model.Func{}
	vis, _ := msg.GetFieldByName("visibility").(int32)
	f.Visibility = model.Visibility(vis)
	mut, _ := msg.GetFieldByName("mutability").(int32)
	f.Mutability = model.MutabilityFloor(mut)
	for _, p := range repeatedMsgs(msg, "input_params") {
		f.InputParams = append(f.InputParams, valueTypeFromMsg(p))
	}
	for _, p := range repeatedMsgs(msg, "output_params") {
		f.OutputParams = append(f.OutputParams, valueTypeFromMsg(p))
	}
	if r := subMsg(msg, "ret"); r != nil {
		key, _ := r.GetFieldByName("key").(string)
		f.Ret = &model.Reentrancy{Key: key}
	}
	f.Block = blockFromMsg(subMsg(msg, "block"))
	return f
}

func blockFromMsg(msg *dynamic.Message) *model.Block {
	b := &model.Block{}
	if msg == nil {
		return b
	}
	for _, s := range repeatedMsgs(msg, "statements") {
		b.Statements = append(b.Statements, statementFromMsg(s))
	}
	b.ExitFlag, _ = msg.GetFieldByName("exit_flag").(bool)
	if s := subMsg(msg, "exit_selfd"); s != nil {
		b.ExitSelfd = &model.Selfdestruct{To: exprFromMsg(subMsg(s, "to"))}
	}
	if r := subMsg(msg, "exit_raise"); r != nil {
		b.ExitRaise = &model.RaiseStmt{ErrVal: optExprFromMsg(subMsg(r, "err_val"))}
	}
	if p := subMsg(msg, "exit_payload"); p != nil {
		b.ExitPayload = returnPayloadFromMsg(p)
	}
	return b
}

func returnPayloadFromMsg(msg *dynamic.Message) *model.ReturnPayload {
	payload := &model.ReturnPayload{}
	slots := repeatedMsgs(msg, "slots")
	for i := 0; i < len(slots) && i < len(payload.Slots); i++ {
		payload.Slots[i] = exprFromMsg(slots[i])
	}
	return payload
}

func statementFromMsg(msg *dynamic.Message) *model.Statement {
	s := &model.Statement{}
	switch {
	case hasField(msg, "decl"):
		s.Decl = varDeclFromMsg(subMsg(msg, "decl"))
	case hasField(msg, "for_stmt"):
		s.ForStmt = forStmtFromMsg(subMsg(msg, "for_stmt"))
	case hasField(msg, "if_stmt"):
		s.IfStmt = ifStmtFromMsg(subMsg(msg, "if_stmt"))
	case hasField(msg, "assert_stmt"):
		s.AssertStmt = assertStmtFromMsg(subMsg(msg, "assert_stmt"))
	case hasField(msg, "cont_stmt"):
		s.ContStmt, _ = msg.GetFieldByName("cont_stmt").(bool)
	case hasField(msg, "break_stmt"):
		s.BreakStmt, _ = msg.GetFieldByName("break_stmt").(bool)
	case hasField(msg, "assignment"):
		s.Assignment = assignmentFromMsg(subMsg(msg, "assignment"))
	}
	return s
}

func forStmtFromMsg(msg *dynamic.Message) *model.ForStmt {
	f := &model.ForStmt{Body: blockFromMsg(subMsg(msg, "body"))}
	if v := subMsg(msg, "variable"); v != nil {
		length, _ := v.GetFieldByName("length").(int32)
		f.Variable = &model.ForStmtVariable{
			RefID:  varRefFromMsg(subMsg(v, "ref_id")),
			Length: int(length),
		}
	}
	if r := subMsg(msg, "ranged"); r != nil {
		start, _ := r.GetFieldByName("start").(int32)
		stop, _ := r.GetFieldByName("stop").(int32)
		f.Ranged = &model.ForStmtRanged{Start: int(start), Stop: int(stop)}
	}
	return f
}

func ifStmtFromMsg(msg *dynamic.Message) *model.IfStmt {
	s := &model.IfStmt{}
	for _, c := range repeatedMsgs(msg, "cases") {
		s.Cases = append(s.Cases, &model.IfCase{
			Cond:   optExprFromMsg(subMsg(c, "cond")),
			IfBody: blockFromMsg(subMsg(c, "if_body")),
		})
	}
	if e := subMsg(msg, "else_case"); e != nil {
		s.ElseCase = blockFromMsg(e)
	}
	return s
}

func assertStmtFromMsg(msg *dynamic.Message) *model.AssertStmt {
	return &model.AssertStmt{
		Cond:   optExprFromMsg(subMsg(msg, "cond")),
		Reason: optExprFromMsg(subMsg(msg, "reason")),
	}
}

func assignmentFromMsg(msg *dynamic.Message) *model.Assignment {
	return &model.Assignment{
		RefType: valueTypeFromMsg(subMsg(msg, "ref_type")),
		RefID:   varRefFromMsg(subMsg(msg, "ref_id")),
		Expr:    exprFromMsg(subMsg(msg, "expr")),
	}
}

// optExprFromMsg distinguishes "field absent" (nil) from "field present,
// all variants empty" (&model.Expr{}), needed wherever an Expr is itself
// optional (assert reason, raise value, if condition).
func optExprFromMsg(msg *dynamic.Message) *model.Expr {
	if msg == nil {
		return nil
	}
	return exprFromMsg(msg)
}

func exprFromMsg(msg *dynamic.Message) *model.Expr {
	e := &model.Expr{}
	if msg == nil {
		return e
	}
	switch {
	case hasField(msg, "int_exp"):
		e.IntExp = intExprFromMsg(subMsg(msg, "int_exp"))
	case hasField(msg, "dec_exp"):
		e.DecExp = decExprFromMsg(subMsg(msg, "dec_exp"))
	case hasField(msg, "bool_exp"):
		e.BoolExp = boolExprFromMsg(subMsg(msg, "bool_exp"))
	case hasField(msg, "bm_exp"):
		e.BMExp = bytesMExprFromMsg(subMsg(msg, "bm_exp"))
	case hasField(msg, "b_exp"):
		e.BExp = bytesExprFromMsg(subMsg(msg, "b_exp"))
	case hasField(msg, "str_exp"):
		e.StrExp = stringExprFromMsg(subMsg(msg, "str_exp"))
	case hasField(msg, "addr_exp"):
		e.AddrExp = addrExprFromMsg(subMsg(msg, "addr_exp"))
	}
	return e
}

func intExprFromMsg(msg *dynamic.Message) *model.IntExpr {
	e := &model.IntExpr{}
	if msg == nil {
		return e
	}
	switch {
	case hasField(msg, "bin_op"):
		b := subMsg(msg, "bin_op")
		op, _ := b.GetFieldByName("op").(int32)
		e.BinOp = &model.IntBinOp{Op: model.IntOp(op), Left: intExprFromMsg(subMsg(b, "left")), Right: intExprFromMsg(subMsg(b, "right"))}
	case hasField(msg, "un_op"):
		u := subMsg(msg, "un_op")
		e.UnOp = &model.IntUnOp{Expr: intExprFromMsg(subMsg(u, "expr"))}
	case hasField(msg, "var_ref"):
		e.VarRef = varRefFromMsg(subMsg(msg, "var_ref"))
	default:
		e.Lit = literalFromMsg(subMsg(msg, "lit"))
	}
	return e
}

func decExprFromMsg(msg *dynamic.Message) *model.DecExpr {
	e := &model.DecExpr{}
	if msg == nil {
		return e
	}
	switch {
	case hasField(msg, "bin_op"):
		b := subMsg(msg, "bin_op")
		op, _ := b.GetFieldByName("op").(int32)
		e.BinOp = &model.DecBinOp{Op: model.IntOp(op), Left: decExprFromMsg(subMsg(b, "left")), Right: decExprFromMsg(subMsg(b, "right"))}
	case hasField(msg, "un_op"):
		u := subMsg(msg, "un_op")
		e.UnOp = &model.DecUnOp{Expr: decExprFromMsg(subMsg(u, "expr"))}
	case hasField(msg, "var_ref"):
		e.VarRef = varRefFromMsg(subMsg(msg, "var_ref"))
	default:
		e.Lit = literalFromMsg(subMsg(msg, "lit"))
	}
	return e
}

func boolExprFromMsg(msg *dynamic.Message) *model.BoolExpr {
	e := &model.BoolExpr{}
	if msg == nil {
		return e
	}
	switch {
	case hasField(msg, "bool_bin_op"):
		b := subMsg(msg, "bool_bin_op")
		op, _ := b.GetFieldByName("op").(int32)
		e.BoolBinOp = &model.BoolBinOp{Op: model.BoolOp(op), Left: boolExprFromMsg(subMsg(b, "left")), Right: boolExprFromMsg(subMsg(b, "right"))}
	case hasField(msg, "bool_un_op"):
		u := subMsg(msg, "bool_un_op")
		e.BoolUnOp = &model.BoolUnOp{Expr: boolExprFromMsg(subMsg(u, "expr"))}
	case hasField(msg, "int_bool_bin_op"):
		b := subMsg(msg, "int_bool_bin_op")
		op, _ := b.GetFieldByName("op").(int32)
		e.IntBoolBinOp = &model.IntBoolBinOp{Op: model.CompareOp(op), Left: intExprFromMsg(subMsg(b, "left")), Right: intExprFromMsg(subMsg(b, "right"))}
	case hasField(msg, "dec_bool_bin_op"):
		b := subMsg(msg, "dec_bool_bin_op")
		op, _ := b.GetFieldByName("op").(int32)
		e.DecBoolBinOp = &model.DecBoolBinOp{Op: model.CompareOp(op), Left: decExprFromMsg(subMsg(b, "left")), Right: decExprFromMsg(subMsg(b, "right"))}
	case hasField(msg, "var_ref"):
		e.VarRef = varRefFromMsg(subMsg(msg, "var_ref"))
	default:
		e.Lit = literalFromMsg(subMsg(msg, "lit"))
	}
	return e
}

func bytesMExprFromMsg(msg *dynamic.Message) *model.BytesMExpr {
	e := &model.BytesMExpr{}
	if msg == nil {
		return e
	}
	switch {
	case hasField(msg, "sha"):
		e.Sha = hash256ExprFromMsg(subMsg(msg, "sha"))
	case hasField(msg, "keccak"):
		e.Keccak = hash256ExprFromMsg(subMsg(msg, "keccak"))
	case hasField(msg, "var_ref"):
		e.VarRef = varRefFromMsg(subMsg(msg, "var_ref"))
	default:
		e.Lit = literalFromMsg(subMsg(msg, "lit"))
	}
	return e
}

func hash256ExprFromMsg(msg *dynamic.Message) *model.Hash256Expr {
	h := &model.Hash256Expr{}
	if msg == nil {
		return h
	}
	switch {
	case hasField(msg, "str_val"):
		h.StrVal = stringExprFromMsg(subMsg(msg, "str_val"))
	case hasField(msg, "b_val"):
		h.BVal = bytesExprFromMsg(subMsg(msg, "b_val"))
	case hasField(msg, "bm_val"):
		h.BmVal = bytesMExprFromMsg(subMsg(msg, "bm_val"))
	}
	return h
}

func bytesExprFromMsg(msg *dynamic.Message) *model.BytesExpr {
	e := &model.BytesExpr{}
	if msg == nil {
		return e
	}
	if hasField(msg, "var_ref") {
		e.VarRef = varRefFromMsg(subMsg(msg, "var_ref"))
		return e
	}
	e.Lit = literalFromMsg(subMsg(msg, "lit"))
	return e
}

func stringExprFromMsg(msg *dynamic.Message) *model.StringExpr {
	e := &model.StringExpr{}
	if msg == nil {
		return e
	}
	if hasField(msg, "var_ref") {
		e.VarRef = varRefFromMsg(subMsg(msg, "var_ref"))
		return e
	}
	e.Lit = literalFromMsg(subMsg(msg, "lit"))
	return e
}

func addrExprFromMsg(msg *dynamic.Message) *model.AddrExpr {
	e := &model.AddrExpr{}
	if msg == nil {
		return e
	}
	switch {
	case hasField(msg, "cmp"):
		c := subMsg(msg, "cmp")
		e.Cmp = &model.CreateMinimalProxy{
			Target: addrExprFromMsg(subMsg(c, "target")),
			Value:  optIntExprFromMsg(subMsg(c, "value")),
			Salt:   optBytesMExprFromMsg(subMsg(c, "salt")),
		}
	case hasField(msg, "cfb"):
		c := subMsg(msg, "cfb")
		e.Cfb = &model.CreateFromBlueprint{
			Target:     addrExprFromMsg(subMsg(c, "target")),
			RawArgs:    optBoolExprFromMsg(subMsg(c, "raw_args")),
			Value:      optIntExprFromMsg(subMsg(c, "value")),
			CodeOffset: optIntExprFromMsg(subMsg(c, "code_offset")),
			Salt:       optBytesMExprFromMsg(subMsg(c, "salt")),
		}
	case hasField(msg, "copy_of"):
		c := subMsg(msg, "copy_of")
		e.CopyOf = &model.CreateCopyOf{
			Target: addrExprFromMsg(subMsg(c, "target")),
			Value:  optIntExprFromMsg(subMsg(c, "value")),
			Salt:   optBytesMExprFromMsg(subMsg(c, "salt")),
		}
	case hasField(msg, "var_ref"):
		e.VarRef = varRefFromMsg(subMsg(msg, "var_ref"))
	default:
		e.Lit = literalFromMsg(subMsg(msg, "lit"))
	}
	return e
}

func optIntExprFromMsg(msg *dynamic.Message) *model.IntExpr {
	if msg == nil {
		return nil
	}
	return intExprFromMsg(msg)
}

func optBytesMExprFromMsg(msg *dynamic.Message) *model.BytesMExpr {
	if msg == nil {
		return nil
	}
	return bytesMExprFromMsg(msg)
}

func optBoolExprFromMsg(msg *dynamic.Message) *model.BoolExpr {
	if msg == nil {
		return nil
	}
	return boolExprFromMsg(msg)
}
