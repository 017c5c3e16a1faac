// ============================================================================
// kairos - Market Calendar Timestamps
// ============================================================================
//
// Package:     cmd
// Description: Command line interface for the kairos datetime service
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	kerror "github.com/msto63/kairos/foundation/core/error"
	"github.com/msto63/kairos/internal/kairos/server"
	"github.com/msto63/kairos/internal/kairos/service"
	"github.com/msto63/kairos/internal/kairos/store"
	"github.com/msto63/kairos/pkg/core/config"
	"github.com/msto63/kairos/pkg/core/logging"
	"github.com/msto63/kairos/pkg/datetime"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	remote  string

	appConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "kairos",
	Short: "kairos - market calendar timestamps",
	Long: `kairos parses, aligns and steps naive timestamps over the years
1400..9999 and keeps a trading calendar of market holidays.

Commands run locally against the configured calendar store, or against a
running kairos server when --remote is given.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd, err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $KAIROS_CONFIG or ./configs/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().StringVar(&remote, "remote", "", "gRPC address of a kairos server (e.g. localhost:9300)")
}

// setup loads the configuration and configures logging
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	appConfig = cfg

	level := cfg.General.LogLevel
	if verbose {
		level = "debug"
	} else if cmd.Name() != serveCmd.Name() {
		// Keep one-shot command output clean
		level = "warn"
	}
	return logging.Configure(logging.LoggerConfig{
		Level:  level,
		Format: cfg.General.LogFormat,
	})
}

// loadConfig loads --config, $KAIROS_CONFIG or a default location, and
// falls back to built-in defaults when no file exists
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	cfg, err := config.LoadFromEnv()
	if kerror.HasCode(err, kerror.CodeMissingConfig) && os.Getenv(config.EnvConfigPath) == "" {
		return config.Default(), nil
	}
	return cfg, err
}

// configPath returns the explicitly selected config file, if any
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return os.Getenv(config.EnvConfigPath)
}

// backend is implemented by the local service and the gRPC client
type backend interface {
	Inspect(ctx context.Context, input string) (*service.Inspection, error)
	Align(ctx context.Context, input string, period datetime.Period, edge service.Edge) (datetime.Datetime, error)
	Step(ctx context.Context, input string, period datetime.Period, n int) (datetime.Datetime, error)
	Range(ctx context.Context, start, end string) ([]datetime.Datetime, error)
	TradingDays(ctx context.Context, market, start, end string) ([]datetime.Datetime, error)
	Bucket(ctx context.Context, inputs []string, period datetime.Period) ([]service.Bucket, error)
	Now(ctx context.Context) (datetime.Datetime, error)
}

// localBackend adapts the in-process service
type localBackend struct {
	*service.Service
}

func (b localBackend) Now(ctx context.Context) (datetime.Datetime, error) {
	return b.Service.Now(ctx), nil
}

// openBackend returns the remote client when --remote is set, otherwise a
// local service. withStore opens the SQLite calendar; without it an empty
// in-memory calendar is used. The returned func releases everything.
func openBackend(withStore bool) (backend, func(), error) {
	if remote != "" {
		client, err := server.Dial(remote)
		if err != nil {
			return nil, nil, err
		}
		return client, func() { client.Close() }, nil
	}

	svc, st, err := openService(withStore)
	if err != nil {
		return nil, nil, err
	}
	return localBackend{svc}, func() {
		svc.Close()
		st.Close()
	}, nil
}

func openService(withStore bool) (*service.Service, store.Store, error) {
	var st store.Store = store.NewMemoryStore()
	if withStore {
		sqlite, err := store.NewSQLiteStore(store.SQLiteConfig{Path: appConfig.Calendar.StorePath})
		if err != nil {
			return nil, nil, err
		}
		st = sqlite
	}
	return service.New(st, service.ConfigFrom(appConfig)), st, nil
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, 30*time.Second)
}

func printError(cmd *cobra.Command, err error) {
	msg := err.Error()
	if code := kerror.GetCode(err); code != kerror.CodeUnknown {
		msg = fmt.Sprintf("%s [%s]", msg, code)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), errorStyle.Render("Error:"), msg)
}
