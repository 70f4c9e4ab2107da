package ingestion

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// ErrMissingColumns is returned when a report has none of the columns its
// shape requires. The engine cannot proceed without the report, so this is a
// hard failure for the invocation.
var ErrMissingColumns = errors.New("report is missing its expected columns")

// embeddedJSON matches quoted JSON blobs (the platform's METADATA column) that
// frequently contain unescaped inner quotes and break CSV parsing. They carry
// nothing the reconciliation needs, so they are blanked before parsing.
var embeddedJSON = regexp.MustCompile(`"\{[^}]*(?:\{[^}]*\}[^}]*)*\}"`)

// ReadOptions controls pre-parse cleanup of a raw report.
type ReadOptions struct {
	SkipRows  int  // lines to discard before the header (statement reports carry a preamble)
	ScrubJSON bool // blank embedded METADATA JSON blobs
}

// Table is an order-preserving tabular report with by-name column access.
type Table struct {
	cols map[string]int
	rows [][]string
}

// ReadTable parses a raw CSV report. The delimiter is sniffed from the header
// line (";" vs ","), malformed lines are skipped, and short rows read as
// empty fields.
func ReadTable(data []byte, opts ReadOptions) (*Table, error) {
	content := string(data)
	content = strings.TrimPrefix(content, "\uFEFF")
	if opts.ScrubJSON {
		content = embeddedJSON.ReplaceAllString(content, `""`)
	}

	lines := strings.Split(content, "\n")
	if opts.SkipRows > 0 {
		if len(lines) <= opts.SkipRows {
			return nil, fmt.Errorf("report has %d lines, cannot skip %d", len(lines), opts.SkipRows)
		}
		lines = lines[opts.SkipRows:]
		content = strings.Join(lines, "\n")
	}

	header := lines[0]
	sep := ','
	if strings.Count(header, ";") > strings.Count(header, ",") {
		sep = ';'
	}

	r := csv.NewReader(strings.NewReader(content))
	r.Comma = sep
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	headerRow, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	t := &Table{cols: make(map[string]int, len(headerRow))}
	for i, name := range headerRow {
		t.cols[strings.TrimSpace(name)] = i
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Bad line: skip it and keep going, matching the platform's
			// habit of emitting the odd broken record.
			continue
		}
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}
		t.rows = append(t.rows, row)
	}

	return t, nil
}

// Has reports whether the table carries the named column.
func (t *Table) Has(name string) bool {
	_, ok := t.cols[name]
	return ok
}

// HasAny reports whether at least one of the named columns exists.
func (t *Table) HasAny(names ...string) bool {
	for _, n := range names {
		if t.Has(n) {
			return true
		}
	}
	return false
}

// Rows returns the data rows in file order.
func (t *Table) Rows() [][]string {
	return t.rows
}

// Get returns the named field of a row, or "" when the column is absent or
// the row is too short.
func (t *Table) Get(row []string, name string) string {
	idx, ok := t.cols[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
