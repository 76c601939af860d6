// Package output provides formatting and output generation for parse results.
package output

import (
	"sort"
	"time"

	"github.com/ccollicutt/sensorlog/pkg/analyzer"
	"github.com/ccollicutt/sensorlog/pkg/parser"
)

// Messages reported when nothing is left to show.
const (
	MsgNoData        = "no valid data extracted"
	MsgNoAlignment   = "no data could be aligned by timestamp"
	MsgNoRowsInRange = "no rows in the selected time range"
)

// Report is the complete output of one run.
type Report struct {
	// Summary is the headline result.
	Summary Summary `json:"summary"`

	// Inputs describes each parsed file: the primary log, then the reference.
	Inputs []InputReport `json:"inputs"`

	// Stats holds per-column statistics of the final table.
	Stats analyzer.Summary `json:"stats"`

	// Diagnostics lists skipped lines across all inputs.
	Diagnostics []DiagnosticEntry `json:"diagnostics,omitempty"`

	// RawLines holds the primary source line of every retained row, when requested.
	RawLines []string `json:"raw_lines,omitempty"`

	// Metadata provides context about the run.
	Metadata Metadata `json:"metadata"`
}

// Summary is the headline result.
type Summary struct {
	// Rows is the number of rows in the final table.
	Rows int `json:"rows"`

	// Aligned is true when a reference file was joined in.
	Aligned bool `json:"aligned"`

	// Message explains an empty result; empty otherwise.
	Message string `json:"message,omitempty"`
}

// InputReport describes one parsed file.
type InputReport struct {
	Role          string         `json:"role"`
	Path          string         `json:"path"`
	Format        string         `json:"format"`
	LinesRead     int            `json:"lines_read"`
	Parsed        int            `json:"parsed"`
	Skipped       int            `json:"skipped"`
	SkippedByKind map[string]int `json:"skipped_by_kind,omitempty"`
}

// DiagnosticEntry is one skipped line.
type DiagnosticEntry struct {
	Source  string `json:"source"`
	Line    int    `json:"line"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Metadata provides context about the run.
type Metadata struct {
	ConfigFile string        `json:"config_file,omitempty"`
	AnalyzedAt time.Time     `json:"analyzed_at"`
	Duration   time.Duration `json:"duration_ns"`
}

// Input pairs a parsed file with its path.
type Input struct {
	Path   string
	Result *parser.Result
}

// Input roles.
const (
	RolePrimary   = "primary"
	RoleReference = "reference"
)

// ReportOptions controls report contents.
type ReportOptions struct {
	// IncludeRaw adds the retained raw lines to the report.
	IncludeRaw bool

	// ConfigFile is recorded in the metadata.
	ConfigFile string

	// Started is when the run began; Duration is measured from it.
	Started time.Time
}

// NewReport assembles a report. reference is nil when no alignment was done.
func NewReport(primary Input, reference *Input, analysis *analyzer.Result, opts ReportOptions) *Report {
	now := time.Now()
	report := &Report{
		Stats: analysis.Summary,
		Summary: Summary{
			Rows:    analysis.Table.Len(),
			Aligned: reference != nil,
		},
		Metadata: Metadata{
			ConfigFile: opts.ConfigFile,
			AnalyzedAt: now,
		},
	}
	if !opts.Started.IsZero() {
		report.Metadata.Duration = now.Sub(opts.Started)
	}

	report.addInput(RolePrimary, primary)
	if reference != nil {
		report.addInput(RoleReference, *reference)
	}

	report.Summary.Message = emptyMessage(primary, reference, analysis)

	if opts.IncludeRaw {
		report.RawLines = analysis.Table.RawLines()
	}

	return report
}

func (r *Report) addInput(role string, in Input) {
	res := in.Result
	r.Inputs = append(r.Inputs, InputReport{
		Role:          role,
		Path:          in.Path,
		Format:        res.Format().String(),
		LinesRead:     res.LinesRead,
		Parsed:        res.Parsed(),
		Skipped:       len(res.Diagnostics),
		SkippedByKind: res.DiagnosticsByKind(),
	})
	for _, d := range res.Diagnostics {
		r.Diagnostics = append(r.Diagnostics, DiagnosticEntry{
			Source:  in.Path,
			Line:    d.LineNum,
			Kind:    d.Kind(),
			Message: d.Err.Error(),
		})
	}
}

func emptyMessage(primary Input, reference *Input, analysis *analyzer.Result) string {
	if !analysis.Table.Empty() {
		return ""
	}
	if primary.Result.Empty() {
		return MsgNoData
	}
	if reference != nil && reference.Result.Empty() {
		return MsgNoData
	}
	// Rows existed before the time window removed them
	if analysis.InputRows > 0 {
		return MsgNoRowsInRange
	}
	return MsgNoAlignment
}

// Empty returns true if no rows survived.
func (r *Report) Empty() bool {
	return r.Summary.Rows == 0
}

// sortedKinds returns the keys of a kind count map in stable order.
func sortedKinds(counts map[string]int) []string {
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
