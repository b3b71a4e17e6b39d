// Package app initializes and holds the long-lived application services,
// acting as a small dependency injection container.
package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tmarbury/stockroom/internal/clock/system"
	"github.com/tmarbury/stockroom/internal/codec"
	"github.com/tmarbury/stockroom/internal/config"
	"github.com/tmarbury/stockroom/internal/id/uuid"
	"github.com/tmarbury/stockroom/internal/inventory"
	"github.com/tmarbury/stockroom/internal/logging"
	"github.com/tmarbury/stockroom/internal/metrics"
	"github.com/tmarbury/stockroom/internal/persist"
)

// App holds the shared, long-lived services: configuration, the logger
// (tagged with a per-run correlation id), and the inventory service. It is
// initialized once at startup and passed to the commands that need it.
type App struct {
	cfg     config.Config
	logger  *zap.Logger
	service *inventory.Service
}

// New loads configuration from cfgPath (empty means defaults plus
// environment) and wires every service. It fails fast when any service
// cannot be built.
func New(cfgPath string) (*App, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	runID, err := uuid.NewUUIDGenerator().NewID()
	if err != nil {
		return nil, fmt.Errorf("generate run id: %w", err)
	}
	logger = logger.With(zap.String("run_id", runID))

	metrics.Init()

	c, err := codec.Lookup(cfg.Snapshot.Format)
	if err != nil {
		return nil, fmt.Errorf("resolve snapshot codec: %w", err)
	}
	adapter, err := persist.NewAdapter[inventory.Item](cfg.Snapshot.Path, c, logger)
	if err != nil {
		return nil, fmt.Errorf("build snapshot adapter: %w", err)
	}

	svc := inventory.NewService(adapter, system.New(), logger)

	logger.Info("application initialized",
		zap.String("snapshot_path", cfg.Snapshot.Path),
		zap.String("snapshot_format", cfg.Snapshot.Format),
	)

	return &App{cfg: cfg, logger: logger, service: svc}, nil
}

// Config returns the loaded configuration.
func (a *App) Config() config.Config {
	return a.cfg
}

// Logger returns the shared zap logger instance.
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Service returns the inventory service.
func (a *App) Service() *inventory.Service {
	return a.service
}

// Close flushes buffered log output.
func (a *App) Close() {
	_ = a.logger.Sync()
}
