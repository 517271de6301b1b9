package workers

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/vnk23k-beep/Cyno25/internal/metrics"
	"github.com/vnk23k-beep/Cyno25/internal/store"
)

// BackupWorker periodically copies the store file to timestamped snapshots.
// It only ever reads the live document, so it cannot race the API writers.
type BackupWorker struct {
	Store    *store.Store
	Dir      string
	Interval time.Duration
	Keep     int
}

func (w *BackupWorker) Run(ctx context.Context) {
	if w.Interval <= 0 {
		w.Interval = 10 * time.Minute
	}
	if w.Keep <= 0 {
		w.Keep = 12
	}
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.SnapshotOnce(); err != nil {
				log.Printf("backup worker error: %v", err)
			}
		}
	}
}

// SnapshotOnce copies the current store file into the backup dir and prunes
// old snapshots. A store file that does not exist yet is not an error.
func (w *BackupWorker) SnapshotOnce() error {
	raw, err := os.ReadFile(w.Store.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return err
	}
	name := fmt.Sprintf("store-%s.json", time.Now().Format("20060102-150405"))
	if err := os.WriteFile(filepath.Join(w.Dir, name), raw, 0o644); err != nil {
		return err
	}
	metrics.Backups.Inc()
	return w.prune()
}

func (w *BackupWorker) prune() error {
	snaps, err := filepath.Glob(filepath.Join(w.Dir, "store-*.json"))
	if err != nil {
		return err
	}
	keep := w.Keep
	if keep <= 0 {
		keep = 12
	}
	if len(snaps) <= keep {
		return nil
	}
	sort.Strings(snaps)
	for _, old := range snaps[:len(snaps)-keep] {
		if err := os.Remove(old); err != nil {
			log.Printf("prune snapshot %s: %v", old, err)
		}
	}
	return nil
}
