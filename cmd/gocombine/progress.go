package main

import (
	"path/filepath"

	"gocombine/internal/logging"
)

// logProgress renders engine progress events to the process log, gated by
// LOG_LEVEL. The engine only sees the ports.Progress interface; this is
// purely a host concern.
type logProgress struct {
	log *logging.Logger
}

func newLogProgress() logProgress {
	return logProgress{log: logging.DefaultLogger}
}

func (p logProgress) FileStarted(path string) {
	p.log.Info("processing %s", filepath.Base(path))
}

func (p logProgress) FileCompleted(path string, rowCount int) {
	p.log.Info("extracted %d rows from %s", rowCount, filepath.Base(path))
}

func (p logProgress) FileFailed(path string, reason error) {
	p.log.Warn("skipping %s: %v", filepath.Base(path), reason)
}

func (p logProgress) MergeCompleted(matched, unmatched int) {
	p.log.Info("merge complete: %d matched, %d unmatched", matched, unmatched)
}

func (p logProgress) WriteCompleted(path string) {
	p.log.Info("output written to %s", path)
}

func (p logProgress) RunFailed(reason error) {
	p.log.Error("run failed: %v", reason)
}
