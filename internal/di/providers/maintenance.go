package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/recipevault/recipevault-server/internal/config"
	"github.com/recipevault/recipevault-server/internal/logger"
	"github.com/recipevault/recipevault-server/internal/maintenance"
)

// ProvideMaintenanceFlag provides the process-wide maintenance flag, seeded
// from configuration.
func ProvideMaintenanceFlag(i do.Injector) (*maintenance.Flag, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return maintenance.NewFlag(cfg.Maintenance.Enabled), nil
}

// MaintenanceWatcherHandle wraps the marker-file watcher with shutdown capability.
type MaintenanceWatcherHandle struct {
	*maintenance.Watcher
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *MaintenanceWatcherHandle) Shutdown() error {
	h.cancel()
	return h.Stop()
}

// ProvideMaintenanceWatcher provides the fsnotify watcher that toggles the
// maintenance flag when the marker file appears or disappears.
func ProvideMaintenanceWatcher(i do.Injector) (*MaintenanceWatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	flag := do.MustInvoke[*maintenance.Flag](i)

	watcher, err := maintenance.NewWatcher(flag, cfg.Maintenance.MarkerFile, log.Logger)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	watcher.Start(ctx)

	log.Info("Maintenance watcher started",
		"marker_file", cfg.Maintenance.MarkerFile,
		"enabled", flag.Enabled(),
	)

	return &MaintenanceWatcherHandle{Watcher: watcher, cancel: cancel}, nil
}
