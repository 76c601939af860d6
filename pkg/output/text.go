package output

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// TimeLayout renders timestamps with millisecond precision.
const TimeLayout = "2006-01-02 15:04:05.000"

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	if report.Empty() {
		_, err := fmt.Fprintf(w, "SensorLog: %s\n", report.Summary.Message)
		return err
	}
	_, err := fmt.Fprintf(w, "SensorLog: %s rows, %d columns, %s skipped lines\n",
		humanize.Comma(int64(report.Summary.Rows)),
		len(report.Stats.Columns),
		humanize.Comma(int64(len(report.Diagnostics))))
	return err
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	heading := color.New(color.Bold)

	heading.Fprintln(w, "=== SensorLog Report ===")
	fmt.Fprintln(w)

	for _, in := range report.Inputs {
		f.formatInput(in, w)
	}
	fmt.Fprintln(w)

	if report.Empty() {
		color.New(color.FgRed).Fprintf(w, "Result: %s\n", report.Summary.Message)
	} else {
		f.formatStats(report, w)
	}

	if len(report.Diagnostics) > 0 {
		fmt.Fprintln(w)
		heading.Fprintln(w, "Skipped lines")
		f.formatDiagnostics(report, w)
	}

	if len(report.RawLines) > 0 {
		fmt.Fprintln(w)
		heading.Fprintln(w, "Raw lines")
		for _, line := range report.RawLines {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}

	fmt.Fprintln(w, "---")
	mode := "single file"
	if report.Summary.Aligned {
		mode = "aligned with reference"
	}
	fmt.Fprintf(w, "Summary: %s rows (%s)\n", humanize.Comma(int64(report.Summary.Rows)), mode)

	if f.opts.Verbose {
		fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(time.Millisecond))
	}

	return nil
}

func (f *TextFormatter) formatInput(in InputReport, w io.Writer) {
	label := "Input:"
	if in.Role == RoleReference {
		label = "Reference:"
	}
	fmt.Fprintf(w, "%-10s %s\n", label, in.Path)
	fmt.Fprintf(w, "           format=%s lines=%s parsed=%s skipped=%s\n",
		in.Format,
		humanize.Comma(int64(in.LinesRead)),
		humanize.Comma(int64(in.Parsed)),
		humanize.Comma(int64(in.Skipped)))
}

func (f *TextFormatter) formatStats(report *Report, w io.Writer) {
	stats := report.Stats
	fmt.Fprintf(w, "Time range: %s to %s\n",
		stats.Start.Format(TimeLayout),
		stats.End.Format(TimeLayout))
	fmt.Fprintf(w, "Span: %.3f s (%s ms)\n",
		stats.Span.Seconds(),
		humanize.Comma(stats.Span.Milliseconds()))
	fmt.Fprintln(w)

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Column", "Count", "Mean", "Min", "Max"})
	for _, col := range stats.Columns {
		tw.AppendRow(table.Row{
			col.Name,
			humanize.Comma(int64(col.Count)),
			fmt.Sprintf("%.3f", col.Mean),
			fmt.Sprintf("%.3f", col.Min),
			fmt.Sprintf("%.3f", col.Max),
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	tw.Render()
}

func (f *TextFormatter) formatDiagnostics(report *Report, w io.Writer) {
	if f.opts.Verbose {
		for _, d := range report.Diagnostics {
			fmt.Fprintf(w, "  - %s:%d [%s] %s\n", d.Source, d.Line, d.Kind, d.Message)
		}
		return
	}

	for _, in := range report.Inputs {
		if in.Skipped == 0 {
			continue
		}
		fmt.Fprintf(w, "  %s:\n", in.Path)
		for _, kind := range sortedKinds(in.SkippedByKind) {
			fmt.Fprintf(w, "    %-18s %s\n", kind, humanize.Comma(int64(in.SkippedByKind[kind])))
		}
	}
}
