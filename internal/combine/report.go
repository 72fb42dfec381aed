package combine

import (
	"sync"

	"gocombine/domain/core"
	"gocombine/internal/profiling"
)

// FileOutcome records what happened to one discovered file.
type FileOutcome struct {
	Path     string
	RowsRead int
	Err      error // nil on success
}

// Report accumulates the observable results of one run. The combiner is the
// only writer during sequential runs; when file reads are parallelized the
// mutex serializes recording, which is the single piece of shared state the
// concurrency model allows.
type Report struct {
	RunID     core.RunID
	StartedAt core.Timestamp

	mu             sync.Mutex
	files          []FileOutcome
	TotalRows      int
	MergeMatched   int
	MergeUnmatched int
	OutputPath     string
	ColumnProfiles []profiling.ColumnProfile
}

// NewReport starts a report for a fresh run.
func NewReport() *Report {
	return &Report{
		RunID:     core.NewRunID(),
		StartedAt: core.Now(),
	}
}

// RecordSuccess notes a file that contributed rows to the combined table.
func (r *Report) RecordSuccess(path string, rows int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files = append(r.files, FileOutcome{Path: path, RowsRead: rows})
	r.TotalRows += rows
}

// RecordFailure notes a file that was skipped and why.
func (r *Report) RecordFailure(path string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files = append(r.files, FileOutcome{Path: path, Err: err})
}

// Files returns per-file outcomes in the order they were recorded.
func (r *Report) Files() []FileOutcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]FileOutcome, len(r.files))
	copy(out, r.files)
	return out
}

// Failures returns only the skipped files.
func (r *Report) Failures() []FileOutcome {
	var out []FileOutcome
	for _, f := range r.Files() {
		if f.Err != nil {
			out = append(out, f)
		}
	}
	return out
}

// SuccessCount returns how many files contributed rows.
func (r *Report) SuccessCount() int {
	n := 0
	for _, f := range r.Files() {
		if f.Err == nil {
			n++
		}
	}
	return n
}
