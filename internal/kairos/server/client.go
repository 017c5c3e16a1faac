package server

import (
	"context"
	"time"

	"github.com/msto63/kairos/internal/kairos/service"
	coreGrpc "github.com/msto63/kairos/pkg/core/grpc"
	"github.com/msto63/kairos/pkg/core/health"
	"github.com/msto63/kairos/pkg/datetime"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Client is a typed client for kairos.v1.DatetimeService
type Client struct {
	conn *grpc.ClientConn
}

// Dial connects to a kairos server
func Dial(target string, opts ...grpc.DialOption) (*Client, error) {
	conn, err := coreGrpc.Dial(coreGrpc.DefaultClientConfig(target), opts...)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

// NewClient wraps an existing connection
func NewClient(conn *grpc.ClientConn) *Client {
	return &Client{conn: conn}
}

// Close closes the connection
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) call(ctx context.Context, method string, args map[string]interface{}, out interface{}) error {
	req, err := structpb.NewStruct(args)
	if err != nil {
		return invalidArg("client", "bad request: %v", err)
	}
	resp := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, method, req, resp); err != nil {
		return err
	}
	return fromStruct(resp, out)
}

// Inspect parses input on the server
func (c *Client) Inspect(ctx context.Context, input string) (*service.Inspection, error) {
	var out service.Inspection
	if err := c.call(ctx, MethodInspect, map[string]interface{}{"input": input}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Align moves input to the start or end of its period
func (c *Client) Align(ctx context.Context, input string, period datetime.Period, edge service.Edge) (datetime.Datetime, error) {
	var out valueResponse
	err := c.call(ctx, MethodAlign, map[string]interface{}{
		"input":  input,
		"period": period.String(),
		"edge":   edge.String(),
	}, &out)
	return out.Value, err
}

// Step moves input n periods
func (c *Client) Step(ctx context.Context, input string, period datetime.Period, n int) (datetime.Datetime, error) {
	var out valueResponse
	err := c.call(ctx, MethodStep, map[string]interface{}{
		"input":  input,
		"period": period.String(),
		"n":      n,
	}, &out)
	return out.Value, err
}

// Range lists the days in [start, end)
func (c *Client) Range(ctx context.Context, start, end string) ([]datetime.Datetime, error) {
	var out daysResponse
	err := c.call(ctx, MethodRange, map[string]interface{}{"start": start, "end": end}, &out)
	return out.Days, err
}

// TradingDays lists the trading days of market in [start, end)
func (c *Client) TradingDays(ctx context.Context, market, start, end string) ([]datetime.Datetime, error) {
	var out daysResponse
	err := c.call(ctx, MethodTradingDays, map[string]interface{}{
		"market": market,
		"start":  start,
		"end":    end,
	}, &out)
	return out.Days, err
}

// Bucket groups inputs by period
func (c *Client) Bucket(ctx context.Context, inputs []string, period datetime.Period) ([]service.Bucket, error) {
	list := make([]interface{}, len(inputs))
	for i, in := range inputs {
		list[i] = in
	}
	var out struct {
		Buckets []service.Bucket `json:"buckets"`
	}
	err := c.call(ctx, MethodBucket, map[string]interface{}{
		"inputs": list,
		"period": period.String(),
	}, &out)
	return out.Buckets, err
}

// Health fetches the server health report
func (c *Client) Health(ctx context.Context) (*health.Report, error) {
	resp := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, MethodHealth, &emptypb.Empty{}, resp); err != nil {
		return nil, err
	}
	var report health.Report
	if err := fromStruct(resp, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// Now returns the server's wall clock
func (c *Client) Now(ctx context.Context) (datetime.Datetime, error) {
	ts := new(timestamppb.Timestamp)
	if err := c.conn.Invoke(ctx, MethodNow, &emptypb.Empty{}, ts); err != nil {
		return datetime.Datetime{}, err
	}
	if err := ts.CheckValid(); err != nil {
		return datetime.Datetime{}, err
	}
	return datetime.FromTime(ts.AsTime().In(time.UTC))
}
