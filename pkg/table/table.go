// Package table lays parsed sensor series out as named numeric columns and
// aligns two series by timestamp.
package table

import (
	"fmt"
	"time"

	"github.com/ccollicutt/sensorlog/pkg/parser"
)

// Column names for a single series.
const (
	ColumnX     = "X axis"
	ColumnY     = "Y axis"
	ColumnZ     = "Z axis"
	ColumnSpeed = "Speed"

	// ComparisonPrefix marks columns that come from the reference series.
	ComparisonPrefix = "cmp_"
)

// SeriesColumns returns the column layout of a single series.
func SeriesColumns() []string {
	return []string{ColumnX, ColumnY, ColumnZ, ColumnSpeed}
}

// AlignedColumns returns the column layout of an aligned table.
func AlignedColumns() []string {
	cols := SeriesColumns()
	for _, c := range SeriesColumns() {
		cols = append(cols, ComparisonPrefix+c)
	}
	return cols
}

// Row is one timestamp with a value per table column.
type Row struct {
	Timestamp time.Time
	Values    []float64

	// Raw holds the source line(s) the row came from: the primary line,
	// followed by the reference line for aligned tables.
	Raw []string
}

// Table is an ordered set of rows sharing one column layout.
type Table struct {
	Columns []string
	Rows    []Row

	// Aligned is true when the table was produced by Align.
	Aligned bool
}

// FromSeries builds a table from a single parsed series in file order.
func FromSeries(s *parser.ParsedSeries) *Table {
	t := &Table{
		Columns: SeriesColumns(),
		Rows:    make([]Row, 0, s.Len()),
	}
	for i, sample := range s.Samples {
		t.Rows = append(t.Rows, Row{
			Timestamp: sample.Timestamp,
			Values:    sampleValues(sample),
			Raw:       []string{s.Raw[i]},
		})
	}
	return t
}

func sampleValues(s parser.Sample) []float64 {
	return []float64{s.X, s.Y, s.Z, s.Speed}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool {
	return len(t.Rows) == 0
}

// ColumnIndex returns the position of a column or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns all values of the named column in row order.
func (t *Table) Column(name string) ([]float64, error) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("unknown column %q", name)
	}
	values := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		values[i] = r.Values[idx]
	}
	return values, nil
}

// Timestamps returns the row timestamps in order.
func (t *Table) Timestamps() []time.Time {
	ts := make([]time.Time, len(t.Rows))
	for i, r := range t.Rows {
		ts[i] = r.Timestamp
	}
	return ts
}

// RawLines returns the primary source line of every row.
func (t *Table) RawLines() []string {
	lines := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		if len(r.Raw) > 0 {
			lines[i] = r.Raw[0]
		}
	}
	return lines
}

// Select returns a table holding only the named columns, in the given order.
// An empty selection keeps every column.
func (t *Table) Select(names []string) (*Table, error) {
	if len(names) == 0 {
		return t, nil
	}

	idx := make([]int, len(names))
	for i, name := range names {
		idx[i] = t.ColumnIndex(name)
		if idx[i] < 0 {
			return nil, fmt.Errorf("unknown column %q (available: %v)", name, t.Columns)
		}
	}

	out := &Table{
		Columns: append([]string(nil), names...),
		Rows:    make([]Row, len(t.Rows)),
		Aligned: t.Aligned,
	}
	for i, r := range t.Rows {
		values := make([]float64, len(idx))
		for j, k := range idx {
			values[j] = r.Values[k]
		}
		out.Rows[i] = Row{Timestamp: r.Timestamp, Values: values, Raw: r.Raw}
	}
	return out, nil
}
