package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alanyoungcy/polysnap/internal/domain"
)

// SnapshotStore implements domain.SnapshotStore using PostgreSQL.
type SnapshotStore struct {
	pool *pgxpool.Pool
}

// NewSnapshotStore creates a new SnapshotStore backed by the given
// connection pool.
func NewSnapshotStore(pool *pgxpool.Pool) *SnapshotStore {
	return &SnapshotStore{pool: pool}
}

// RecordRun inserts or updates one snapshot run row.
func (s *SnapshotStore) RecordRun(ctx context.Context, run domain.SnapshotRun) error {
	const query = `
		INSERT INTO snapshot_runs (
			id, slug, event_id, window_start, fidelity,
			started_at, finished_at, markets_total, markets_captured
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9
		)
		ON CONFLICT (id) DO UPDATE SET
			slug             = EXCLUDED.slug,
			event_id         = EXCLUDED.event_id,
			window_start     = EXCLUDED.window_start,
			fidelity         = EXCLUDED.fidelity,
			started_at       = EXCLUDED.started_at,
			finished_at      = EXCLUDED.finished_at,
			markets_total    = EXCLUDED.markets_total,
			markets_captured = EXCLUDED.markets_captured`

	_, err := s.pool.Exec(ctx, query,
		run.ID, run.Slug, run.EventID, run.WindowStart, run.Fidelity,
		run.StartedAt, run.FinishedAt, run.MarketsTotal, run.MarketsCaptured,
	)
	if err != nil {
		return fmt.Errorf("postgres: record run %s: %w", run.ID, err)
	}
	return nil
}

// RecordStats inserts the per-market stats of one run in a single batch,
// keyed by processing position so summary order is reproducible from the
// database.
func (s *SnapshotStore) RecordStats(ctx context.Context, runID string, stats []domain.MarketStat) error {
	if len(stats) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	const query = `
		INSERT INTO snapshot_market_stats (
			run_id, position, market_id, question, token_id, points, volume
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
		ON CONFLICT (run_id, position) DO UPDATE SET
			market_id = EXCLUDED.market_id,
			question  = EXCLUDED.question,
			token_id  = EXCLUDED.token_id,
			points    = EXCLUDED.points,
			volume    = EXCLUDED.volume`

	for i, st := range stats {
		batch.Queue(query, runID, i, st.ID, st.Question, st.TokenID, st.Points, st.Volume)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for i := range stats {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("postgres: record stat batch item %d: %w", i, err)
		}
	}
	return nil
}
