// Package snapshot implements the one-shot event snapshot pipeline: resolve
// an event by slug, fetch a bounded price history for each of its markets,
// and persist the results as local artifacts.
//
// Remote failures never abort a run. Every fetch returns an explicit
// (value, error) pair with sentinel errors; the pipeline matches on them and
// skips the affected market (or, for the event itself, ends the run cleanly).
// Only local artifact writes are allowed to fail the run.
package snapshot

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/alanyoungcy/polysnap/internal/artifact"
	"github.com/alanyoungcy/polysnap/internal/domain"
)

// EventFetcher resolves event metadata from the Gamma API.
type EventFetcher interface {
	GetEventBySlug(ctx context.Context, slug string) (domain.Event, error)
}

// HistoryFetcher retrieves price series from the CLOB API.
type HistoryFetcher interface {
	GetPriceHistory(ctx context.Context, tokenID string, startTs int64, fidelity int) (domain.PriceHistory, error)
}

// Params are the per-run knobs of the pipeline.
type Params struct {
	// Slug identifies the event to snapshot.
	Slug string
	// Lookback is how far before "now" the history window starts.
	Lookback time.Duration
	// Fidelity is the prices-history granularity parameter.
	Fidelity int
}

// Report summarizes a completed run for the caller: the manifest data, the
// stats that went into summary.json, and the paths of every artifact written
// (consumed by the S3 mirror).
type Report struct {
	Run        domain.SnapshotRun
	Stats      []domain.MarketStat
	Files      []string
	EventFound bool
}

// Snapshotter executes the pipeline. Markets are processed strictly in the
// order the event lists them, one HTTP call at a time; the stat list is the
// only accumulated state.
type Snapshotter struct {
	events    EventFetcher
	history   HistoryFetcher
	artifacts *artifact.Writer
	cache     domain.HistoryCache  // optional; nil disables caching
	store     domain.SnapshotStore // optional; nil disables stat recording
	params    Params
	logger    *slog.Logger

	now func() time.Time
}

// New creates a Snapshotter. cache and store may be nil, in which case the
// corresponding sink is skipped.
func New(
	events EventFetcher,
	history HistoryFetcher,
	artifacts *artifact.Writer,
	cache domain.HistoryCache,
	store domain.SnapshotStore,
	params Params,
	logger *slog.Logger,
) *Snapshotter {
	return &Snapshotter{
		events:    events,
		history:   history,
		artifacts: artifacts,
		cache:     cache,
		store:     store,
		params:    params,
		logger:    logger.With(slog.String("component", "snapshot")),
		now:       time.Now,
	}
}

// Run executes one snapshot. It returns an error only for local persistence
// failures; remote failures (including "event not found") produce a Report
// with EventFound or per-market captures reflecting what was obtained.
func (s *Snapshotter) Run(ctx context.Context) (*Report, error) {
	started := s.now()
	runID := uuid.New().String()

	// Window start is truncated to the minute: fidelity is minute-granular
	// anyway, and it keeps the cache key stable across quick re-runs.
	windowStart := started.Add(-s.params.Lookback).Truncate(time.Minute).Unix()

	logger := s.logger.With(slog.String("run_id", runID), slog.String("slug", s.params.Slug))
	logger.Info("snapshot starting",
		slog.Int64("window_start", windowStart),
		slog.Int("fidelity", s.params.Fidelity),
	)

	report := &Report{
		Run: domain.SnapshotRun{
			ID:          runID,
			Slug:        s.params.Slug,
			WindowStart: windowStart,
			Fidelity:    s.params.Fidelity,
			StartedAt:   started,
		},
		Stats: []domain.MarketStat{},
	}

	ev, err := s.events.GetEventBySlug(ctx, s.params.Slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logger.Info("no event found")
		} else {
			logger.Warn("event fetch failed", slog.String("error", err.Error()))
		}
		return report, nil
	}
	report.EventFound = true
	report.Run.EventID = ev.ID
	report.Run.MarketsTotal = len(ev.Markets)

	logger.Info("event resolved",
		slog.String("event_id", ev.ID),
		slog.Int("markets", len(ev.Markets)),
	)

	// Event metadata is written before the market loop so it exists even
	// when every history fetch fails.
	if err := s.artifacts.EnsureDir(); err != nil {
		return nil, err
	}
	path, err := s.artifacts.WriteEvent(ev)
	if err != nil {
		return nil, err
	}
	report.Files = append(report.Files, path)

	for _, m := range ev.Markets {
		logger.Info("processing market",
			slog.String("market_id", m.ID),
			slog.String("question", m.Question),
		)

		tokenID := m.YesTokenID()
		if tokenID == "" {
			logger.Warn("market has no clob token ids, skipping", slog.String("market_id", m.ID))
			continue
		}

		h, ok := s.fetchHistory(ctx, logger, tokenID, windowStart)
		if !ok {
			continue
		}

		path, err := s.artifacts.WriteHistory(m.ID, h)
		if err != nil {
			return nil, err
		}
		report.Files = append(report.Files, path)

		report.Stats = append(report.Stats, domain.MarketStat{
			ID:       m.ID,
			Question: m.Question,
			TokenID:  tokenID,
			Points:   len(h.Points),
			Volume:   m.Volume,
		})
		logger.Info("history captured",
			slog.String("market_id", m.ID),
			slog.Int("points", len(h.Points)),
		)
	}

	path, err = s.artifacts.WriteSummary(report.Stats)
	if err != nil {
		return nil, err
	}
	report.Files = append(report.Files, path)

	report.Run.FinishedAt = s.now()
	report.Run.MarketsCaptured = len(report.Stats)

	path, err = s.artifacts.WriteManifest(report.Run)
	if err != nil {
		return nil, err
	}
	report.Files = append(report.Files, path)

	s.recordRun(ctx, logger, report)

	logger.Info("snapshot complete",
		slog.Int("markets_total", report.Run.MarketsTotal),
		slog.Int("markets_captured", report.Run.MarketsCaptured),
	)
	return report, nil
}

// fetchHistory obtains one token's price series, consulting the cache first
// when one is configured. Remote and cache failures are absorbed: the second
// return value reports whether a history was obtained.
func (s *Snapshotter) fetchHistory(ctx context.Context, logger *slog.Logger, tokenID string, startTs int64) (domain.PriceHistory, bool) {
	if s.cache != nil {
		h, err := s.cache.Get(ctx, tokenID, startTs, s.params.Fidelity)
		switch {
		case err == nil:
			logger.Debug("history cache hit", slog.String("token_id", tokenID))
			return h, true
		case !errors.Is(err, domain.ErrNotFound):
			logger.Warn("history cache read failed",
				slog.String("token_id", tokenID),
				slog.String("error", err.Error()),
			)
		}
	}

	h, err := s.history.GetPriceHistory(ctx, tokenID, startTs, s.params.Fidelity)
	if err != nil {
		if errors.Is(err, domain.ErrNoHistory) {
			logger.Info("no history for token", slog.String("token_id", tokenID))
		} else {
			logger.Warn("history fetch failed",
				slog.String("token_id", tokenID),
				slog.String("error", err.Error()),
			)
		}
		return domain.PriceHistory{}, false
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, tokenID, startTs, s.params.Fidelity, h); err != nil {
			logger.Warn("history cache write failed",
				slog.String("token_id", tokenID),
				slog.String("error", err.Error()),
			)
		}
	}
	return h, true
}

// recordRun pushes the run and its stats to the stat store when one is
// configured. The local artifacts are the record of truth, so store failures
// are logged and otherwise ignored.
func (s *Snapshotter) recordRun(ctx context.Context, logger *slog.Logger, report *Report) {
	if s.store == nil {
		return
	}
	if err := s.store.RecordRun(ctx, report.Run); err != nil {
		logger.Error("record run failed", slog.String("error", err.Error()))
		return
	}
	if err := s.store.RecordStats(ctx, report.Run.ID, report.Stats); err != nil {
		logger.Error("record stats failed", slog.String("error", err.Error()))
	}
}
