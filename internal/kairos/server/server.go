// ============================================================================
// kairos - Market Calendar Timestamps
// ============================================================================
//
// Package:     server
// Description: gRPC surface of the kairos datetime service
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package server

import (
	"context"
	"net"
	"time"

	"github.com/msto63/kairos/internal/kairos/service"
	coreGrpc "github.com/msto63/kairos/pkg/core/grpc"
	"github.com/msto63/kairos/pkg/core/health"
	"github.com/msto63/kairos/pkg/core/logging"
	"github.com/msto63/kairos/pkg/core/version"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// Server is the kairos gRPC server
type Server struct {
	service    *service.Service
	grpc       *coreGrpc.Server
	health     *health.Registry
	grpcHealth *grpchealth.Server
	logger     *logging.Logger
	config     Config
	startTime  time.Time
}

// Config holds server configuration
type Config struct {
	Host             string
	Port             int
	EnableReflection bool
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		Host: "0.0.0.0",
		Port: 9300,
	}
}

// New creates a new gRPC server for svc
func New(cfg Config, svc *service.Service) *Server {
	grpcCfg := coreGrpc.DefaultServerConfig()
	grpcCfg.Host = cfg.Host
	grpcCfg.Port = cfg.Port
	grpcCfg.EnableReflection = cfg.EnableReflection

	grpcServer := coreGrpc.NewServer(grpcCfg)

	healthRegistry := health.NewRegistry("kairos", version.Platform)
	healthRegistry.Register(health.StaticCheck("service", "kairos datetime service is operational"))
	healthRegistry.Register(health.PingCheck("store", svc.Store().Ping))

	server := &Server{
		service:    svc,
		grpc:       grpcServer,
		health:     healthRegistry,
		grpcHealth: grpchealth.NewServer(),
		logger:     logging.New("server"),
		config:     cfg,
		startTime:  time.Now(),
	}
	healthRegistry.Observe(server.mirrorHealth)

	RegisterDatetimeServiceServer(grpcServer.GRPCServer(), server)
	grpc_health_v1.RegisterHealthServer(grpcServer.GRPCServer(), server.grpcHealth)

	return server
}

// CheckHealth runs the health registry. Status changes reach the standard
// grpc.health.v1 service through mirrorHealth, whichever surface ran the
// check.
func (s *Server) CheckHealth(ctx context.Context) *health.Report {
	return s.health.Check(ctx)
}

func (s *Server) mirrorHealth(report *health.Report) {
	st := grpc_health_v1.HealthCheckResponse_SERVING
	if !report.Healthy() {
		st = grpc_health_v1.HealthCheckResponse_NOT_SERVING
	}
	s.logger.Info("Health status changed", "status", string(report.Status))
	s.grpcHealth.SetServingStatus("", st)
	s.grpcHealth.SetServingStatus(ServiceName, st)
}

// Start starts the server and blocks
func (s *Server) Start() error {
	s.logger.Info("Starting kairos gRPC server", "host", s.config.Host, "port", s.config.Port)
	s.CheckHealth(context.Background())
	return s.grpc.Start()
}

// StartAsync starts the server asynchronously
func (s *Server) StartAsync() error {
	s.logger.Info("Starting kairos gRPC server (async)", "host", s.config.Host, "port", s.config.Port)
	s.CheckHealth(context.Background())
	return s.grpc.StartAsync()
}

// Serve serves on an existing listener and blocks
func (s *Server) Serve(lis net.Listener) error {
	s.CheckHealth(context.Background())
	return s.grpc.Serve(lis)
}

// Stop stops the server; the service is owned by the caller
func (s *Server) Stop(ctx context.Context) {
	s.logger.Info("Stopping kairos gRPC server", "uptime", time.Since(s.startTime).Round(time.Second))
	s.grpcHealth.Shutdown()
	s.grpc.StopWithTimeout(ctx)
}

// Address returns the listen address
func (s *Server) Address() string {
	return s.grpc.Address()
}

// GRPCServer returns the underlying gRPC server
func (s *Server) GRPCServer() *grpc.Server {
	return s.grpc.GRPCServer()
}

// HealthRegistry returns the health check registry
func (s *Server) HealthRegistry() *health.Registry {
	return s.health
}
