// Package wire decodes the presence-aware input format into
// internal/model's tree. Decoding goes through a real .proto schema
// parsed at startup with jhump/protoreflect, the same descriptor-driven
// path the teacher uses for its gRPC bridge (builtins_grpc.go): callers
// never see generated Go structs for the wire shape, only a
// dynamic.Message walked field-by-field, so presence ("has_field") is a
// genuine descriptor query rather than a convention layered on a zero
// value.
package wire

import (
	"sync"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
)

// schemaSource is the wire schema: one message per internal/model node,
// sum types expressed as oneof groups so presence of a branch is a
// protobuf-native concept instead of a hand-rolled flag.
const schemaSource = `
syntax = "proto3";
package vyzzerwire;

message Contract {
  repeated VarDecl decls = 1;
  repeated Func functions = 2;
}

message ValueType {
  oneof kind {
    bool b = 1;
    bool d = 2;
    BytesMType bM = 3;
    StringType s = 4;
    bool adr = 5;
    BytesType barr = 6;
    IntType i = 7;
  }
}

message BytesMType { int32 m = 1; }
message StringType { int32 max_len = 1; }
message BytesType  { int32 max_len = 1; }
message IntType    { int32 n = 1; bool sign = 2; }

message VarRef {}

message Literal {
  oneof kind {
    bool bool_val = 1;
    double decimal_val = 2;
    bytes bytesm_val = 3;
    string str_val = 4;
    bytes addr_val = 5;
    bytes bytes_val = 6;
    int64 int_val = 7;
  }
}

message Reentrancy { string key = 1; }

message Func {
  int32 visibility = 1;
  int32 mutability = 2;
  repeated ValueType input_params = 3;
  repeated ValueType output_params = 4;
  Reentrancy ret = 5;
  Block block = 6;
}

message Block {
  repeated Statement statements = 1;
  bool exit_flag = 2;
  Selfdestruct exit_selfd = 3;
  RaiseStmt exit_raise = 4;
  ReturnPayload exit_payload = 5;
}

message VarDecl {
  ValueType type = 1;
  Expr expr = 2;
}

message Statement {
  oneof kind {
    VarDecl decl = 1;
    ForStmt for_stmt = 2;
    IfStmt if_stmt = 3;
    AssertStmt assert_stmt = 4;
    bool cont_stmt = 5;
    bool break_stmt = 6;
    Assignment assignment = 7;
  }
}

message ForStmt {
  ForStmtVariable variable = 1;
  ForStmtRanged ranged = 2;
  Block body = 3;
}

message ForStmtRanged { int32 start = 1; int32 stop = 2; }

message ForStmtVariable {
  VarRef ref_id = 1;
  int32 length = 2;
}

message IfStmt {
  repeated IfCase cases = 1;
  Block else_case = 2;
}

message IfCase {
  Expr cond = 1;
  Block if_body = 2;
}

message AssertStmt {
  Expr cond = 1;
  Expr reason = 2;
}

message Selfdestruct { Expr to = 1; }
message RaiseStmt    { Expr err_val = 1; }

message ReturnPayload {
  repeated Expr slots = 1;
}

message Assignment {
  ValueType ref_type = 1;
  VarRef ref_id = 2;
  Expr expr = 3;
}

message Expr {
  oneof kind {
    IntExpr int_exp = 1;
    DecExpr dec_exp = 2;
    BoolExpr bool_exp = 3;
    BytesMExpr bm_exp = 4;
    BytesExpr b_exp = 5;
    StringExpr str_exp = 6;
    AddrExpr addr_exp = 7;
  }
}

message IntExpr {
  oneof kind {
    IntBinOp bin_op = 1;
    IntUnOp un_op = 2;
    VarRef var_ref = 3;
    Literal lit = 4;
  }
}
message IntBinOp { int32 op = 1; IntExpr left = 2; IntExpr right = 3; }
message IntUnOp  { IntExpr expr = 1; }

message DecExpr {
  oneof kind {
    DecBinOp bin_op = 1;
    DecUnOp un_op = 2;
    VarRef var_ref = 3;
    Literal lit = 4;
  }
}
message DecBinOp { int32 op = 1; DecExpr left = 2; DecExpr right = 3; }
message DecUnOp  { DecExpr expr = 1; }

message BoolExpr {
  oneof kind {
    BoolBinOp bool_bin_op = 1;
    BoolUnOp bool_un_op = 2;
    IntBoolBinOp int_bool_bin_op = 3;
    DecBoolBinOp dec_bool_bin_op = 4;
    VarRef var_ref = 5;
    Literal lit = 6;
  }
}
message BoolBinOp { int32 op = 1; BoolExpr left = 2; BoolExpr right = 3; }
message BoolUnOp  { BoolExpr expr = 1; }
message IntBoolBinOp { int32 op = 1; IntExpr left = 2; IntExpr right = 3; }
message DecBoolBinOp { int32 op = 1; DecExpr left = 2; DecExpr right = 3; }

message BytesMExpr {
  oneof kind {
    Hash256Expr sha = 1;
    Hash256Expr keccak = 2;
    VarRef var_ref = 3;
    Literal lit = 4;
  }
}

message Hash256Expr {
  oneof kind {
    StringExpr str_val = 1;
    BytesExpr b_val = 2;
    BytesMExpr bm_val = 3;
  }
}

message BytesExpr {
  oneof kind {
    VarRef var_ref = 1;
    Literal lit = 2;
  }
}

message StringExpr {
  oneof kind {
    VarRef var_ref = 1;
    Literal lit = 2;
  }
}

message AddrExpr {
  oneof kind {
    CreateMinimalProxy cmp = 1;
    CreateFromBlueprint cfb = 2;
    CreateCopyOf copy_of = 3;
    VarRef var_ref = 4;
    Literal lit = 5;
  }
}

message CreateMinimalProxy {
  AddrExpr target = 1;
  IntExpr value = 2;
  BytesMExpr salt = 3;
}

message CreateFromBlueprint {
  AddrExpr target = 1;
  BoolExpr raw_args = 2;
  IntExpr value = 3;
  IntExpr code_offset = 4;
  BytesMExpr salt = 5;
}

message CreateCopyOf {
  AddrExpr target = 1;
  IntExpr value = 2;
  BytesMExpr salt = 3;
}
`

var (
	fileOnce sync.Once
	fileDesc *desc.FileDescriptor
	fileErr  error
)

// loadSchema parses schemaSource once and caches the result, mirroring
// the teacher's protoRegistry (builtins_grpc.go) but scoped to this
// package's single fixed schema instead of a dynamically loaded set.
func loadSchema() (*desc.FileDescriptor, error) {
	fileOnce.Do(func() {
		parser := protoparse.Parser{
			Accessor: protoparse.FileContentsFromMap(map[string]string{
				"vyzzerwire.proto": schemaSource,
			}),
		}
		fds, err := parser.ParseFiles("vyzzerwire.proto")
		if err != nil {
			fileErr = err
			return
		}
		fileDesc = fds[0]
	})
	return fileDesc, fileErr
}

// ContractDescriptor exposes the Contract message descriptor to callers
// that need to build their own dynamic.Message around it, e.g.
// internal/rpcserver's manually constructed grpc.ServiceDesc.
func ContractDescriptor() (*desc.MessageDescriptor, error) {
	return findMessage("Contract")
}

func findMessage(name string) (*desc.MessageDescriptor, error) {
	fd, err := loadSchema()
	if err != nil {
		return nil, err
	}
	md := fd.FindMessage("vyzzerwire." + name)
	if md == nil {
		return nil, errNoMessage(name)
	}
	return md, nil
}

type errNoMessage string

func (e errNoMessage) Error() string { return "wire: no such message " + string(e) }
