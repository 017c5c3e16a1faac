package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "kairos.v1.DatetimeService"

// Full method names
const (
	MethodInspect     = "/" + ServiceName + "/Inspect"
	MethodAlign       = "/" + ServiceName + "/Align"
	MethodStep        = "/" + ServiceName + "/Step"
	MethodRange       = "/" + ServiceName + "/Range"
	MethodTradingDays = "/" + ServiceName + "/TradingDays"
	MethodBucket      = "/" + ServiceName + "/Bucket"
	MethodHealth      = "/" + ServiceName + "/Health"
	MethodNow         = "/" + ServiceName + "/Now"
)

// DatetimeServiceServer is the server API of kairos.v1.DatetimeService.
// Requests and responses are google.protobuf.Struct documents; Now returns
// the wall clock as a google.protobuf.Timestamp in UTC.
type DatetimeServiceServer interface {
	Inspect(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Align(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Step(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Range(context.Context, *structpb.Struct) (*structpb.Struct, error)
	TradingDays(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Bucket(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Health(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	Now(context.Context, *emptypb.Empty) (*timestamppb.Timestamp, error)
}

// ServiceDesc describes kairos.v1.DatetimeService for grpc.Server.RegisterService
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DatetimeServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		structMethod("Inspect", DatetimeServiceServer.Inspect),
		structMethod("Align", DatetimeServiceServer.Align),
		structMethod("Step", DatetimeServiceServer.Step),
		structMethod("Range", DatetimeServiceServer.Range),
		structMethod("TradingDays", DatetimeServiceServer.TradingDays),
		structMethod("Bucket", DatetimeServiceServer.Bucket),
		emptyMethod("Health", func(s DatetimeServiceServer, ctx context.Context, in *emptypb.Empty) (interface{}, error) {
			return s.Health(ctx, in)
		}),
		emptyMethod("Now", func(s DatetimeServiceServer, ctx context.Context, in *emptypb.Empty) (interface{}, error) {
			return s.Now(ctx, in)
		}),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "kairos/v1/datetime.proto",
}

// RegisterDatetimeServiceServer registers srv on s
func RegisterDatetimeServiceServer(s grpc.ServiceRegistrar, srv DatetimeServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func structMethod(name string, call func(DatetimeServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(DatetimeServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/" + name}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(DatetimeServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

func emptyMethod(name string, call func(DatetimeServiceServer, context.Context, *emptypb.Empty) (interface{}, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(emptypb.Empty)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(DatetimeServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/" + name}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(DatetimeServiceServer), ctx, req.(*emptypb.Empty))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
