// Package analyzer computes summary statistics over parsed sensor tables.
package analyzer

import (
	"time"

	"github.com/ccollicutt/sensorlog/pkg/table"
)

// TimeRange limits analysis to rows with Start <= timestamp <= End.
// A zero bound is open.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether ts falls inside the range.
func (r *TimeRange) Contains(ts time.Time) bool {
	if !r.Start.IsZero() && ts.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && ts.After(r.End) {
		return false
	}
	return true
}

// ColumnStats summarizes one numeric column.
type ColumnStats struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// Summary describes a table: its size, time span and per-column statistics.
type Summary struct {
	// Rows is the number of rows summarized.
	Rows int `json:"rows"`

	// Start and End are the earliest and latest timestamps.
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	// Span is End minus Start.
	Span time.Duration `json:"span_ns"`

	// Columns holds statistics in table column order.
	Columns []ColumnStats `json:"columns"`
}

// Result is the output of Analyze.
type Result struct {
	// Table is the analyzed table after column selection and time filtering.
	Table *table.Table

	// Summary is computed over Table.
	Summary Summary

	// InputRows is the row count before the time window was applied.
	InputRows int
}
