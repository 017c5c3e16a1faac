package server

import (
	"context"
	"time"

	kerror "github.com/msto63/kairos/foundation/core/error"
	"github.com/msto63/kairos/internal/kairos/service"
	"github.com/msto63/kairos/pkg/datetime"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Ensure Server implements DatetimeServiceServer
var _ DatetimeServiceServer = (*Server)(nil)

// Inspect implements DatetimeServiceServer.Inspect
func (s *Server) Inspect(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	input, err := requiredArg("Inspect", req, "input")
	if err != nil {
		return nil, err
	}
	in, err := s.service.Inspect(ctx, input)
	if err != nil {
		return nil, err
	}
	return toStruct(in)
}

// Align implements DatetimeServiceServer.Align
func (s *Server) Align(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	input, err := requiredArg("Align", req, "input")
	if err != nil {
		return nil, err
	}
	period, err := periodArg(req)
	if err != nil {
		return nil, err
	}
	edge, err := service.ParseEdge(stringArg(req, "edge"))
	if err != nil {
		return nil, err
	}

	dt, err := s.service.Align(ctx, input, period, edge)
	if err != nil {
		return nil, err
	}
	return toStruct(valueResponse{Value: dt})
}

// Step implements DatetimeServiceServer.Step
func (s *Server) Step(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	input, err := requiredArg("Step", req, "input")
	if err != nil {
		return nil, err
	}
	period, err := periodArg(req)
	if err != nil {
		return nil, err
	}
	n, err := intArg("Step", req, "n")
	if err != nil {
		return nil, err
	}

	dt, err := s.service.Step(ctx, input, period, n)
	if err != nil {
		return nil, err
	}
	return toStruct(valueResponse{Value: dt})
}

// Range implements DatetimeServiceServer.Range
func (s *Server) Range(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	start, err := requiredArg("Range", req, "start")
	if err != nil {
		return nil, err
	}
	end, err := requiredArg("Range", req, "end")
	if err != nil {
		return nil, err
	}

	days, err := s.service.Range(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return toStruct(daysResponse{Days: days, Count: len(days)})
}

// TradingDays implements DatetimeServiceServer.TradingDays
func (s *Server) TradingDays(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	start, err := requiredArg("TradingDays", req, "start")
	if err != nil {
		return nil, err
	}
	end, err := requiredArg("TradingDays", req, "end")
	if err != nil {
		return nil, err
	}

	days, err := s.service.TradingDays(ctx, stringArg(req, "market"), start, end)
	if err != nil {
		return nil, err
	}
	return toStruct(daysResponse{Days: days, Count: len(days)})
}

// Bucket implements DatetimeServiceServer.Bucket
func (s *Server) Bucket(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	inputs := stringListArg(req, "inputs")
	if len(inputs) == 0 {
		return nil, invalidArg("Bucket", "inputs is required")
	}
	period, err := periodArg(req)
	if err != nil {
		return nil, err
	}

	buckets, err := s.service.Bucket(ctx, inputs, period)
	if err != nil {
		return nil, err
	}
	return toStruct(map[string]interface{}{"buckets": buckets})
}

// Health implements DatetimeServiceServer.Health
func (s *Server) Health(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return toStruct(s.CheckHealth(ctx))
}

// Now implements DatetimeServiceServer.Now. The local wall clock is placed
// in UTC, so AsTime on the client yields the same fields.
func (s *Server) Now(ctx context.Context, _ *emptypb.Empty) (*timestamppb.Timestamp, error) {
	now := s.service.Now(ctx)
	if now.IsNull() {
		return nil, kerror.New(datetime.NullMessage).
			WithCode(kerror.CodeNullDatetime).
			WithOperation("server.Now")
	}
	return timestamppb.New(now.Time(time.UTC)), nil
}
