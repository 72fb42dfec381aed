// Package combine implements the extraction-and-merge engine: column
// projection, multi-file combination with per-file failure isolation, and
// the key-based lookup merge.
package combine

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"gocombine/domain/table"
	"gocombine/internal/errors"
	"gocombine/ports"
)

// SourceColumn is the provenance column appended to every combined row,
// holding the basename of the file the row came from.
const SourceColumn = "source_file"

// Combiner drives Read → Project over every discovered source file and
// concatenates the results into one table. A single bad file never aborts
// the batch; it is recorded in the report and skipped.
type Combiner struct {
	readers  map[ports.FileKind]ports.TableReader
	progress ports.Progress
	workers  int
}

// NewCombiner wires the per-kind readers. workers > 1 enables bounded
// parallel file reads; output row order stays deterministic either way
// because results are concatenated in discovery order.
func NewCombiner(spreadsheet, delimited ports.TableReader, progress ports.Progress, workers int) *Combiner {
	if progress == nil {
		progress = ports.NopProgress{}
	}
	if workers < 1 {
		workers = 1
	}
	return &Combiner{
		readers: map[ports.FileKind]ports.TableReader{
			ports.KindXLSX: spreadsheet,
			ports.KindXLSM: spreadsheet,
			ports.KindCSV:  delimited,
			ports.KindTXT:  delimited,
		},
		progress: progress,
		workers:  workers,
	}
}

// Discover lists the folder's recognized source files, sorted
// lexicographically by filename so processing order, and therefore output
// row order, is reproducible across runs.
func Discover(folder string, includeTxt bool) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot scan source folder %s", folder)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		kind, ok := ports.KindForPath(entry.Name())
		if !ok || (kind == ports.KindTXT && !includeTxt) {
			continue
		}
		paths = append(paths, filepath.Join(folder, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Combine reads and projects every spec and concatenates the survivors. The
// first successfully processed file fixes the combined column set; later
// files are aligned to it by projection and skipped if they cannot be.
// Fails with NO_DATA when nothing was discovered or nothing succeeded.
func (c *Combiner) Combine(ctx context.Context, specs []ports.SourceFileSpec, report *Report) (*table.Table, error) {
	if len(specs) == 0 {
		return nil, errors.NoData("no matching files found in the source folder")
	}

	results := make([]*table.Table, len(specs))
	failures := make([]error, len(specs))

	if c.workers > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(c.workers)
		for i, spec := range specs {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[i], failures[i] = c.readOne(gctx, spec)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, spec := range specs {
			// Cancellation is cooperative and checked between files, never
			// mid-file.
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i], failures[i] = c.readOne(ctx, spec)
		}
	}

	return c.assemble(specs, results, failures, report)
}

// readOne runs Read → Project for a single file and reports progress.
func (c *Combiner) readOne(ctx context.Context, spec ports.SourceFileSpec) (*table.Table, error) {
	c.progress.FileStarted(spec.Path)

	reader, ok := c.readers[spec.Kind]
	if !ok {
		err := errors.FileRead(spec.Path, errors.InternalError("no reader for kind "+string(spec.Kind)))
		c.progress.FileFailed(spec.Path, err)
		return nil, err
	}

	t, err := reader.Read(ctx, spec)
	if err != nil {
		c.progress.FileFailed(spec.Path, err)
		return nil, err
	}

	projected, err := Project(t, spec.Columns, filepath.Base(spec.Path))
	if err != nil {
		c.progress.FileFailed(spec.Path, err)
		return nil, err
	}

	c.progress.FileCompleted(spec.Path, projected.RowCount())
	return projected, nil
}

// assemble concatenates per-file results in discovery order, appending the
// source_file provenance column.
func (c *Combiner) assemble(specs []ports.SourceFileSpec, results []*table.Table, failures []error, report *Report) (*table.Table, error) {
	var combined *table.Table
	var expected []string

	for i, spec := range specs {
		if failures[i] != nil {
			report.RecordFailure(spec.Path, failures[i])
			continue
		}
		t := results[i]

		if combined == nil {
			expected = t.Columns
			columns := table.DedupeColumns(append(append([]string{}, expected...), SourceColumn))
			var err error
			combined, err = table.New(columns)
			if err != nil {
				return nil, errors.Wrap(err, "failed to shape combined table")
			}
		} else if !sameColumns(t.Columns, expected) {
			// Happens only when no explicit column list was requested and a
			// later file's header disagrees with the first file's. Align by
			// projection; a file that cannot be aligned is skipped.
			aligned, err := Project(t, expected, filepath.Base(spec.Path))
			if err != nil {
				report.RecordFailure(spec.Path, err)
				c.progress.FileFailed(spec.Path, err)
				continue
			}
			t = aligned
		}

		base := table.NewText(filepath.Base(spec.Path))
		for _, row := range t.Rows {
			combined.Append(append(append(table.Row{}, row...), base))
		}
		report.RecordSuccess(spec.Path, t.RowCount())
	}

	if combined == nil {
		return nil, errors.NoData("could not extract data from any file")
	}

	log.Printf("[Combiner] combined %d files into %d rows (%d skipped)",
		report.SuccessCount(), combined.RowCount(), len(report.Failures()))
	return combined, nil
}

func sameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
