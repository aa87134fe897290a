// Package ingest holds the header-indexed CSV reading shared by the source parsers.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

// Table reads a CSV file whose first row names the columns.
type Table struct {
	r    *csv.Reader
	cols map[string]int
}

// Row is one data row of a Table.
type Row struct {
	Line int
	rec  []string
	cols map[string]int
}

// NewTable reads the header row and checks that every required column exists.
// Column names are matched case-insensitively.
func NewTable(r io.Reader, required ...string) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty file: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return &Table{r: cr, cols: cols}, nil
}

// Has reports whether the header contains col.
func (t *Table) Has(col string) bool {
	_, ok := t.cols[col]
	return ok
}

// Next returns the next non-empty row, or io.EOF.
func (t *Table) Next() (Row, error) {
	for {
		rec, err := t.r.Read()
		if err != nil {
			return Row{}, err
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		line, _ := t.r.FieldPos(0)
		return Row{Line: line, rec: rec, cols: t.cols}, nil
	}
}

// Get returns the trimmed value of col, or "" when the column or cell is absent.
func (r Row) Get(col string) string {
	i, ok := r.cols[col]
	if !ok || i >= len(r.rec) {
		return ""
	}
	return strings.TrimSpace(r.rec[i])
}

// Float returns col as a number, or nil when it is absent or unparseable.
func (r Row) Float(col string) *float64 {
	return ParseFloat(r.Get(col))
}

// ParseFloat parses a lenient decimal. A comma decimal separator is accepted.
// Empty, unparseable, NaN and infinite values yield nil.
func ParseFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
}

// ParseDate parses the date formats used by the series files. Any UTC offset
// is dropped and the wall-clock time is kept, so all sources compare on the
// same naive timeline.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Naive(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// Naive returns t's wall-clock reading in UTC.
func Naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
