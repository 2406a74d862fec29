// Package report renders human-readable run summaries and exports
// per-record outcomes for offline inspection.
package report

import (
	"fmt"
	"os"

	"github.com/jszwec/csvutil"

	"github.com/b1tburn3r20/speakup-ingest/internal/reconcile"
)

// Progress formats a periodic progress line with counts and percentage.
func Progress(kind string, done, total int, res *reconcile.Result) string {
	pct := 0.0
	if total > 0 {
		pct = float64(done) / float64(total) * 100
	}
	return fmt.Sprintf("%s: %d/%d (%.1f%%) processed, %s", kind, done, total, pct, res)
}

// Summary formats the final line for one run.
func Summary(kind string, res *reconcile.Result) string {
	return fmt.Sprintf("%s completed: %d records, %s", kind, res.Total(), res)
}

// WriteCSV dumps every per-record outcome of a run to path.
func WriteCSV(path string, res *reconcile.Result) error {
	if path == "" || res == nil {
		return nil
	}

	data, err := csvutil.Marshal(res.Outcomes)
	if err != nil {
		return fmt.Errorf("marshal outcomes: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
