package analyzer

import (
	"fmt"
	"time"

	"github.com/ccollicutt/sensorlog/pkg/table"
)

// Analyzer selects columns, applies an optional time window and summarizes.
type Analyzer struct {
	timeRange *TimeRange
	columns   []string
}

// AnalyzerOption configures analyzer behavior.
type AnalyzerOption func(*Analyzer)

// WithTimeRange limits analysis to rows within the given time range.
func WithTimeRange(start, end time.Time) AnalyzerOption {
	return func(a *Analyzer) {
		a.timeRange = &TimeRange{Start: start, End: end}
	}
}

// WithColumns limits analysis to the named columns, in that order.
func WithColumns(columns []string) AnalyzerOption {
	return func(a *Analyzer) {
		a.columns = columns
	}
}

// NewAnalyzer creates an analyzer.
func NewAnalyzer(opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze applies column selection and the time window to t, then
// summarizes what remains. Row order is preserved.
func (a *Analyzer) Analyze(t *table.Table) (*Result, error) {
	selected, err := t.Select(a.columns)
	if err != nil {
		return nil, fmt.Errorf("selecting columns: %w", err)
	}

	if a.timeRange != nil {
		filtered := &table.Table{
			Columns: selected.Columns,
			Aligned: selected.Aligned,
		}
		for _, r := range selected.Rows {
			if a.timeRange.Contains(r.Timestamp) {
				filtered.Rows = append(filtered.Rows, r)
			}
		}
		selected = filtered
	}

	return &Result{
		Table:     selected,
		Summary:   Summarize(selected),
		InputRows: t.Len(),
	}, nil
}

// Summarize computes per-column count, mean, min and max plus the time span.
// Rows need not be time ordered. An empty table yields zero statistics.
func Summarize(t *table.Table) Summary {
	s := Summary{
		Rows:    t.Len(),
		Columns: make([]ColumnStats, len(t.Columns)),
	}
	for i, name := range t.Columns {
		s.Columns[i].Name = name
	}

	if t.Empty() {
		return s
	}

	s.Start = t.Rows[0].Timestamp
	s.End = t.Rows[0].Timestamp
	sums := make([]float64, len(t.Columns))

	for i, r := range t.Rows {
		if r.Timestamp.Before(s.Start) {
			s.Start = r.Timestamp
		}
		if r.Timestamp.After(s.End) {
			s.End = r.Timestamp
		}

		for j, v := range r.Values {
			c := &s.Columns[j]
			if i == 0 || v < c.Min {
				c.Min = v
			}
			if i == 0 || v > c.Max {
				c.Max = v
			}
			sums[j] += v
			c.Count++
		}
	}

	for j := range s.Columns {
		s.Columns[j].Mean = sums[j] / float64(s.Columns[j].Count)
	}
	s.Span = s.End.Sub(s.Start)

	return s
}
