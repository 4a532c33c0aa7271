package domain

import (
	"context"
	"io"
)

// SnapshotStore records completed runs and their per-market stats. The
// Postgres adapter implements it; the pipeline treats it as optional and
// best-effort.
type SnapshotStore interface {
	// RecordRun upserts the run row.
	RecordRun(ctx context.Context, run SnapshotRun) error
	// RecordStats inserts one row per captured market, keyed by run ID and
	// processing position.
	RecordStats(ctx context.Context, runID string, stats []MarketStat) error
}

// HistoryCache caches raw prices-history payloads keyed by token and query
// window. Get returns ErrNotFound on a miss.
type HistoryCache interface {
	Get(ctx context.Context, tokenID string, startTs int64, fidelity int) (PriceHistory, error)
	Set(ctx context.Context, tokenID string, startTs int64, fidelity int, h PriceHistory) error
}

// BlobWriter uploads an object to blob storage. Implemented by the S3
// adapter and consumed by the artifact mirror.
type BlobWriter interface {
	Put(ctx context.Context, path string, data io.Reader, contentType string) error
}
