// Package app provides the top-level application lifecycle for the snapshot
// tool. It wires together the API clients, the artifact writer, and the
// optional sinks (history cache, stat store, S3 mirror), then executes a
// single snapshot run.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alanyoungcy/polysnap/internal/config"
	"github.com/alanyoungcy/polysnap/internal/snapshot"
)

// App is the root application object. It owns the configuration, logger, and
// a list of cleanup functions that are called in reverse order on shutdown.
type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	closers []func()
}

// New creates a new App from the given configuration and logger.
func New(cfg *config.Config, logger *slog.Logger) *App {
	return &App{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "app")),
	}
}

// Run wires all dependencies, executes one snapshot, and mirrors the
// resulting artifacts when the S3 sink is enabled. It returns an error for
// wiring failures and local persistence failures; remote-data failures end
// the run cleanly.
func (a *App) Run(ctx context.Context) error {
	a.logger.InfoContext(ctx, "starting snapshot run",
		slog.String("slug", a.cfg.Snapshot.Slug),
		slog.String("output_dir", a.cfg.Snapshot.OutputDir),
	)

	deps, cleanup, err := Wire(ctx, a.cfg, a.logger)
	if err != nil {
		return fmt.Errorf("app: wire dependencies: %w", err)
	}
	a.closers = append(a.closers, cleanup)

	snapshotter := snapshot.New(
		deps.Gamma,
		deps.Clob,
		deps.Artifacts,
		deps.HistoryCache,
		deps.SnapshotStore,
		snapshot.Params{
			Slug:     a.cfg.Snapshot.Slug,
			Lookback: lookback(a.cfg.Snapshot.LookbackDays),
			Fidelity: a.cfg.Snapshot.Fidelity,
		},
		a.logger,
	)

	report, err := snapshotter.Run(ctx)
	if err != nil {
		return fmt.Errorf("app: snapshot: %w", err)
	}

	// Mirroring is best-effort: the local artifacts are already complete.
	if deps.Mirror != nil && len(report.Files) > 0 {
		if err := deps.Mirror.MirrorFiles(ctx, a.cfg.Snapshot.Slug, report.Files); err != nil {
			a.logger.Error("artifact mirror failed", slog.String("error", err.Error()))
		}
	}

	return nil
}

// lookback converts a whole-day window length into a duration.
func lookback(days int) time.Duration {
	return time.Duration(days) * 24 * time.Hour
}

// Close tears down all resources in reverse registration order. It is safe to
// call multiple times; subsequent calls are no-ops.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
