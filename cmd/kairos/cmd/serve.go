package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/msto63/kairos/internal/kairos/handler"
	"github.com/msto63/kairos/internal/kairos/server"
	"github.com/msto63/kairos/pkg/core/config"
	"github.com/msto63/kairos/pkg/core/logging"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the gRPC and HTTP servers",
	Long: `Run the kairos gRPC service and the HTTP API with the websocket clock
stream. The log level follows changes of the config file while running.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := logging.New("kairos")

	if remote != "" {
		return localOnly("serve")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, st, err := openService(true)
	if err != nil {
		return err
	}
	defer st.Close()
	defer svc.Close()

	grpcSrv := server.New(server.Config{
		Host: appConfig.Server.Host,
		Port: appConfig.Server.GRPCPort,
	}, svc)

	httpSrv := handler.NewServer(handler.ServerConfig{
		Host:         appConfig.Server.Host,
		Port:         appConfig.Server.HTTPPort,
		ReadTimeout:  appConfig.Server.ReadTimeout.Duration,
		WriteTimeout: appConfig.Server.WriteTimeout.Duration,
		TickInterval: appConfig.Clock.TickInterval.Duration,
	}, svc, grpcSrv.HealthRegistry())

	errCh := make(chan error, 2)
	go func() {
		if err := grpcSrv.Start(); err != nil {
			errCh <- fmt.Errorf("grpc: %w", err)
		}
	}()
	go func() {
		if err := httpSrv.Start(); err != nil {
			errCh <- fmt.Errorf("http: %w", err)
		}
	}()

	if path := configPath(); path != "" {
		if err := config.Watch(ctx, path, reloadLogging(logger)); err != nil {
			logger.Warn("Config hot reload disabled", "error", err)
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render("kairos"))
	fmt.Fprintln(out, field("gRPC", appConfig.GRPCAddress()))
	fmt.Fprintln(out, field("HTTP", "http://"+appConfig.HTTPAddress()+"/api/v1"))
	fmt.Fprintln(out, field("market", appConfig.Calendar.DefaultMarket))
	fmt.Fprintln(out, field("store", appConfig.Calendar.StorePath))

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case runErr = <-errCh:
		logger.Error("Server failed", "error", runErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpSrv.Stop(shutdownCtx); err != nil {
		logger.Warn("HTTP shutdown incomplete", "error", err)
	}
	grpcSrv.Stop(shutdownCtx)
	logger.Info("kairos stopped")
	return runErr
}

// reloadLogging applies log settings from a reloaded config. Listener and
// store settings need a restart.
func reloadLogging(logger *logging.Logger) config.ReloadFunc {
	return func(cfg *config.Config, err error) {
		if err != nil {
			logger.Warn("Ignoring invalid config change", "error", err)
			return
		}
		level := cfg.General.LogLevel
		if verbose {
			level = "debug"
		}
		if err := logging.Configure(logging.LoggerConfig{Level: level, Format: cfg.General.LogFormat}); err != nil {
			logger.Warn("Failed to apply logging config", "error", err)
			return
		}
		logger.Info("Configuration reloaded", "log_level", level)
	}
}
