// Package app wires the engine's pieces into runnable services.
package app

import (
	"context"
	"log"
	"path/filepath"

	"gocombine/adapters/delimited"
	"gocombine/adapters/excel"
	"gocombine/domain/table"
	"gocombine/internal/combine"
	"gocombine/internal/config"
	"gocombine/internal/errors"
	"gocombine/internal/profiling"
	"gocombine/ports"
)

// CombineService runs one end-to-end consolidation: discover source files,
// combine them, optionally enrich via the lookup merge, profile the result
// and write it out. The service is synchronous; hosts get progress through
// the ports.Progress sink and the final Report.
type CombineService struct {
	spreadsheet ports.TableReader
	delimited   ports.TableReader
	writers     map[ports.OutputFormat]ports.TableWriter
	progress    ports.Progress
}

// NewCombineService builds a service with the standard file adapters.
func NewCombineService(progress ports.Progress) *CombineService {
	if progress == nil {
		progress = ports.NopProgress{}
	}
	return &CombineService{
		spreadsheet: excel.NewReader(),
		delimited:   delimited.NewReader(),
		writers: map[ports.OutputFormat]ports.TableWriter{
			ports.FormatCSV:  delimited.NewWriter(),
			ports.FormatXLSX: excel.NewWriter(),
		},
		progress: progress,
	}
}

// Run executes the configured run and returns the report. The report is
// valid even on failure: it describes everything processed up to the fatal
// error. Fatal errors are NO_DATA (nothing combined), KEY_COLUMN_NOT_FOUND
// (merge misconfigured) and WRITE_FAILED; per-file problems only land in the
// report.
func (s *CombineService) Run(ctx context.Context, cfg *config.Config) (*combine.Report, error) {
	report := combine.NewReport()
	log.Printf("[CombineService] run %s starting in %s", report.RunID, cfg.Input.Folder)

	paths, err := combine.Discover(cfg.Input.Folder, cfg.Input.IncludeTxt)
	if err != nil {
		s.progress.RunFailed(err)
		return report, err
	}
	if len(paths) == 0 {
		err := errors.NoData("no matching files found in " + cfg.Input.Folder)
		s.progress.RunFailed(err)
		return report, err
	}
	log.Printf("[CombineService] found %d files to process", len(paths))

	combiner := combine.NewCombiner(s.spreadsheet, s.delimited, s.progress, cfg.Workers)
	combined, err := combiner.Combine(ctx, s.sourceSpecs(cfg, paths), report)
	if err != nil {
		s.progress.RunFailed(err)
		return report, err
	}

	final := combined
	if cfg.Merge != nil {
		merged, err := s.merge(ctx, combined, cfg.Merge)
		if err != nil {
			s.progress.RunFailed(err)
			return report, err
		}
		report.MergeMatched = merged.Matched
		report.MergeUnmatched = merged.Unmatched
		s.progress.MergeCompleted(merged.Matched, merged.Unmatched)
		final = merged.Table
	}

	report.ColumnProfiles = profiling.ProfileTable(final)

	writer, ok := s.writers[cfg.Output.Format]
	if !ok {
		err := errors.ConfigInvalid("unsupported output format " + string(cfg.Output.Format))
		s.progress.RunFailed(err)
		return report, err
	}
	path, err := writer.Write(final, cfg.Output)
	if err != nil {
		s.progress.RunFailed(err)
		return report, err
	}
	report.OutputPath = path
	s.progress.WriteCompleted(path)

	log.Printf("[CombineService] run %s complete: %d rows written to %s",
		report.RunID, final.RowCount(), path)
	return report, nil
}

// sourceSpecs expands the input configuration over the discovered paths.
func (s *CombineService) sourceSpecs(cfg *config.Config, paths []string) []ports.SourceFileSpec {
	specs := make([]ports.SourceFileSpec, 0, len(paths))
	for _, path := range paths {
		kind, _ := ports.KindForPath(path)
		spec := ports.SourceFileSpec{
			Path:         path,
			Kind:         kind,
			SheetName:    cfg.Input.SheetName,
			HeaderRow:    cfg.Input.HeaderRow,
			DataStartRow: cfg.Input.DataStartRow,
			Columns:      cfg.Input.Columns,
		}
		if kind == ports.KindTXT {
			spec.Delimiter = cfg.Input.TxtDelimiter
		}
		specs = append(specs, spec)
	}
	return specs
}

// merge reads the lookup file and left-joins it onto the combined table.
// Lookup problems are configuration errors and abort the run; retrying
// per-file would be meaningless.
func (s *CombineService) merge(ctx context.Context, combined *table.Table, mc *config.MergeConfig) (*combine.MergeResult, error) {
	reader := s.delimited
	if mc.Lookup.Kind.IsSpreadsheet() {
		reader = s.spreadsheet
	}
	log.Printf("[CombineService] reading lookup file %s", mc.Lookup.Path)
	lookup, err := reader.Read(ctx, mc.Lookup)
	if err != nil {
		return nil, errors.Wrapf(err, "lookup file %s", filepath.Base(mc.Lookup.Path))
	}
	return combine.Merge(combined, lookup, mc.SourceKey, mc.LookupKey, mc.AppendColumns)
}
