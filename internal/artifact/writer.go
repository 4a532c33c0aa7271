// Package artifact persists snapshot results as JSON files in a local
// output directory. Unlike the remote fetch path, file-system errors here
// are not absorbed: a failed write indicates an unrecoverable environment
// problem (disk full, permissions) and must halt the run.
package artifact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alanyoungcy/polysnap/internal/domain"
)

const (
	eventFile    = "event.json"
	summaryFile  = "summary.json"
	manifestFile = "manifest.json"
)

// Writer writes snapshot artifacts under a single output directory. Files
// are fully replaced on every write, so re-running a snapshot overwrites the
// previous artifacts by name.
type Writer struct {
	dir string
}

// NewWriter creates a Writer rooted at dir. The directory is not created
// until EnsureDir is called.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// EnsureDir creates the output directory if it does not exist.
func (w *Writer) EnsureDir() error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("artifact: create output dir %s: %w", w.dir, err)
	}
	return nil
}

// WriteEvent persists the full event object as event.json, pretty-printed.
// The raw API body is re-indented rather than re-marshalled so field order
// and unknown fields survive verbatim.
func (w *Writer) WriteEvent(ev domain.Event) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, ev.Raw, "", "  "); err != nil {
		return "", fmt.Errorf("artifact: indent event: %w", err)
	}
	return w.writeFile(eventFile, buf.Bytes())
}

// WriteHistory persists one market's raw price-history response as
// history_<market_id>.json, compact-encoded.
func (w *Writer) WriteHistory(marketID string, h domain.PriceHistory) (string, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, h.Raw); err != nil {
		return "", fmt.Errorf("artifact: compact history for market %s: %w", marketID, err)
	}
	return w.writeFile(HistoryFileName(marketID), buf.Bytes())
}

// WriteSummary persists the accumulated MarketStat list as summary.json,
// pretty-printed, in processing order.
func (w *Writer) WriteSummary(stats []domain.MarketStat) (string, error) {
	if stats == nil {
		stats = []domain.MarketStat{}
	}
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return "", fmt.Errorf("artifact: marshal summary: %w", err)
	}
	return w.writeFile(summaryFile, data)
}

// WriteManifest persists the run manifest as manifest.json, pretty-printed.
func (w *Writer) WriteManifest(run domain.SnapshotRun) (string, error) {
	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return "", fmt.Errorf("artifact: marshal manifest: %w", err)
	}
	return w.writeFile(manifestFile, data)
}

// writeFile replaces the named file under the output directory and returns
// its full path.
func (w *Writer) writeFile(name string, data []byte) (string, error) {
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("artifact: write %s: %w", name, err)
	}
	return path, nil
}

// HistoryFileName returns the deterministic artifact name for a market's
// price history.
func HistoryFileName(marketID string) string {
	return "history_" + marketID + ".json"
}
