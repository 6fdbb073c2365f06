// Package oracle exposes the oracle over gRPC.
//
// The API has no generated stubs: requests and responses travel as
// google.protobuf.Struct messages and the service descriptor is declared
// here, so the wire contract is the field layout documented on
// RequestToStruct and ReadingToStruct.
package oracle

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "oracle.v1.OracleService"

// ThrowMethod is the full method name of the Throw RPC.
const ThrowMethod = "/" + ServiceName + "/Throw"

// OracleServer is implemented by the oracle gRPC service.
type OracleServer interface {
	Throw(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// ServiceDesc describes oracle.v1.OracleService for grpc.Server.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*OracleServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Throw", Handler: throwHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "oracle/v1/oracle.proto",
}

// Register attaches srv to the gRPC registrar.
func Register(r grpc.ServiceRegistrar, srv OracleServer) {
	r.RegisterService(&ServiceDesc, srv)
}

func throwHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OracleServer).Throw(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ThrowMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(OracleServer).Throw(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}
