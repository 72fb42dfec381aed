package combine

import (
	"log"
	"strings"

	"gocombine/domain/table"
	"gocombine/internal/errors"
)

// MergeResult carries the enriched table and the match counts surfaced in
// the processing report.
type MergeResult struct {
	Table     *table.Table
	Matched   int
	Unmatched int
}

// Merge left-joins the combined table against the lookup table. Every
// combined row is kept: a key hit appends the requested lookup columns, a
// miss appends empty cells. Keys compare as trimmed strings (numeric cells
// render through the same formatter as output, so numeric 100 matches "100").
// Rows with an empty key never match.
//
// A missing source key, lookup key, or append column is a configuration
// error (KEY_COLUMN_NOT_FOUND) and aborts the merge immediately.
func Merge(combined, lookup *table.Table, sourceKey, lookupKey string, appendColumns []string) (*MergeResult, error) {
	srcIdx := combined.ColumnIndex(sourceKey)
	if srcIdx < 0 {
		return nil, errors.KeyColumnNotFound("combined", sourceKey)
	}
	lookupIdx := lookup.ColumnIndex(lookupKey)
	if lookupIdx < 0 {
		return nil, errors.KeyColumnNotFound("lookup", lookupKey)
	}
	appendIdx := make([]int, len(appendColumns))
	for i, name := range appendColumns {
		idx := lookup.ColumnIndex(name)
		if idx < 0 {
			return nil, errors.KeyColumnNotFound("lookup", name)
		}
		appendIdx[i] = idx
	}

	index := buildKeyIndex(lookup, lookupIdx)

	// Appended columns that collide with existing names get .1/.2 suffixes so
	// the result keeps the unique-column invariant.
	resultColumns := table.DedupeColumns(append(append([]string{}, combined.Columns...), appendColumns...))
	result, err := table.New(resultColumns)
	if err != nil {
		return nil, errors.Wrap(err, "failed to shape merge result")
	}

	matched, unmatched := 0, 0
	for _, row := range combined.Rows {
		key := strings.TrimSpace(row[srcIdx].String())
		out := make(table.Row, 0, len(resultColumns))
		out = append(out, row...)

		lookupRow, ok := index[key]
		if key == "" {
			ok = false
		}
		if ok {
			matched++
			for _, idx := range appendIdx {
				out = append(out, lookupRow[idx])
			}
		} else {
			unmatched++
			for range appendIdx {
				out = append(out, table.Empty())
			}
		}
		result.Append(out)
	}

	log.Printf("[Merger] left join on %s=%s complete (%d matched, %d unmatched)",
		sourceKey, lookupKey, matched, unmatched)
	return &MergeResult{Table: result, Matched: matched, Unmatched: unmatched}, nil
}

// buildKeyIndex maps trimmed key values to their first occurrence. Duplicate
// keys keep the first row seen, a fixed rule rather than map iteration order.
// Empty keys are not indexed.
func buildKeyIndex(lookup *table.Table, keyIdx int) map[string]table.Row {
	index := make(map[string]table.Row, len(lookup.Rows))
	for _, row := range lookup.Rows {
		key := strings.TrimSpace(row[keyIdx].String())
		if key == "" {
			continue
		}
		if _, exists := index[key]; exists {
			continue
		}
		index[key] = row
	}
	return index
}
