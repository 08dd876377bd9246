// Package rpcserver exposes the converter over gRPC with a manually
// constructed grpc.ServiceDesc, the way builtins_grpc.go's
// FunxyGrpcHandler bridges dynamic protobuf messages to a host call
// without any generated stub code.
package rpcserver

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/grpc"

	"github.com/statemindio/vyzzer-go/internal/convert"
	"github.com/statemindio/vyzzer-go/internal/vartracker"
	"github.com/statemindio/vyzzer-go/internal/wire"
)

const responseSchema = `
syntax = "proto3";
package vyzzerwire;

message ConvertResponse {
  string source = 1;
}
`

var (
	respOnce sync.Once
	respDesc *desc.MessageDescriptor
	respErr  error
)

func responseDescriptor() (*desc.MessageDescriptor, error) {
	respOnce.Do(func() {
		parser := protoparse.Parser{
			Accessor: protoparse.FileContentsFromMap(map[string]string{
				"convert_response.proto": responseSchema,
			}),
		}
		fds, err := parser.ParseFiles("convert_response.proto")
		if err != nil {
			respErr = err
			return
		}
		respDesc = fds[0].FindMessage("vyzzerwire.ConvertResponse")
	})
	return respDesc, respErr
}

// Generator holds the options and PRNG source the handler passes to
// convert.Convert; it mirrors the fields of pkg/vyzzer.Generator, and
// this package calls internal/convert directly instead of importing
// pkg/vyzzer (the outward-facing wrapper).
type Generator struct {
	Opts convert.Options
	Src  vartracker.RandomSource
}

// Handler implements a single unary "Convert" RPC: decode a Contract
// message, run the converter, return its source text wrapped in a
// ConvertResponse message.
type Handler struct {
	Gen *Generator
}

// HandleUnary mirrors FunxyGrpcHandler.HandleUnary's shape: build a
// dynamic message for the input type, decode into it, do the domain
// work, build a dynamic message for the output type.
func (h *Handler) HandleUnary(ctx context.Context, reqType *desc.MessageDescriptor, dec func(interface{}) error) (interface{}, error) {
	inMsg := dynamic.NewMessage(reqType)
	if err := dec(inMsg); err != nil {
		return nil, fmt.Errorf("decoding request: %w", err)
	}

	contract := wire.FromDynamic(inMsg)
	source, err := convert.Convert(contract, h.Gen.Opts, h.Gen.Src)
	if err != nil {
		return nil, err
	}

	respType, err := responseDescriptor()
	if err != nil {
		return nil, fmt.Errorf("loading response schema: %w", err)
	}
	outMsg := dynamic.NewMessage(respType)
	if err := outMsg.SetFieldByName("source", source); err != nil {
		return nil, fmt.Errorf("building response: %w", err)
	}
	return outMsg, nil
}

// ServiceName is the name under which NewServiceDesc registers the
// Convert method.
const ServiceName = "vyzzerwire.Converter"

// NewServiceDesc builds the grpc.ServiceDesc for the single "Convert"
// unary method, to be passed to (*grpc.Server).RegisterService along
// with a *Handler.
func NewServiceDesc() (*grpc.ServiceDesc, error) {
	reqType, err := wire.ContractDescriptor()
	if err != nil {
		return nil, err
	}

	return &grpc.ServiceDesc{
		ServiceName: ServiceName,
		HandlerType: (*interface{})(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "Convert",
				Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpc.UnaryServerInterceptor) (interface{}, error) {
					h := srv.(*Handler)
					return h.HandleUnary(ctx, reqType, dec)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "vyzzerwire.proto",
	}, nil
}
