package grpc

import (
	"context"
	"time"

	kerror "github.com/msto63/kairos/foundation/core/error"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"
)

// ClientConfig holds gRPC client configuration
type ClientConfig struct {
	Target         string
	MaxMessageSize int
	// CallTimeout bounds calls whose context carries no deadline. Zero
	// disables it.
	CallTimeout       time.Duration
	KeepaliveInterval time.Duration
	KeepaliveTimeout  time.Duration
}

// DefaultClientConfig returns the client configuration used by the CLI
func DefaultClientConfig(target string) ClientConfig {
	return ClientConfig{
		Target:            target,
		MaxMessageSize:    4 * 1024 * 1024,
		CallTimeout:       10 * time.Second,
		KeepaliveInterval: 30 * time.Second,
		KeepaliveTimeout:  10 * time.Second,
	}
}

// Dial creates a lazy client connection: nothing is sent until the first
// call. Extra options are applied after the defaults.
func Dial(cfg ClientConfig, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	if cfg.Target == "" {
		return nil, kerror.New("gRPC target is required").
			WithCode(kerror.CodeInvalidInput).
			WithOperation("grpc.Dial")
	}

	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(
			grpc.MaxCallRecvMsgSize(cfg.MaxMessageSize),
			grpc.MaxCallSendMsgSize(cfg.MaxMessageSize),
		),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                cfg.KeepaliveInterval,
			Timeout:             cfg.KeepaliveTimeout,
			PermitWithoutStream: true,
		}),
		grpc.WithChainUnaryInterceptor(
			ClientTimeoutInterceptor(cfg.CallTimeout),
			ClientRequestIDInterceptor(),
			ClientLoggingInterceptor(),
		),
	}
	dialOpts = append(dialOpts, opts...)

	conn, err := grpc.NewClient(cfg.Target, dialOpts...)
	if err != nil {
		return nil, kerror.Wrap(err, "failed to create client for "+cfg.Target).
			WithCode(kerror.CodeServiceUnavailable).
			WithOperation("grpc.Dial").
			WithDetail("target", cfg.Target)
	}
	return conn, nil
}

// ClientTimeoutInterceptor applies timeout to calls without a deadline
func ClientTimeoutInterceptor(timeout time.Duration) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		if timeout <= 0 {
			return invoker(ctx, method, req, reply, cc, opts...)
		}
		if _, ok := ctx.Deadline(); ok {
			return invoker(ctx, method, req, reply, cc, opts...)
		}
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}
