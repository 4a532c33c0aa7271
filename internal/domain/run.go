package domain

import "time"

// SnapshotRun describes one execution of the pipeline. It is written as
// manifest.json and, when the Postgres sink is enabled, recorded alongside
// the per-market stats.
type SnapshotRun struct {
	ID              string    `json:"run_id"`
	Slug            string    `json:"slug"`
	EventID         string    `json:"event_id,omitempty"`
	WindowStart     int64     `json:"window_start"`
	Fidelity        int       `json:"fidelity"`
	StartedAt       time.Time `json:"started_at"`
	FinishedAt      time.Time `json:"finished_at"`
	MarketsTotal    int       `json:"markets_total"`
	MarketsCaptured int       `json:"markets_captured"`
}
