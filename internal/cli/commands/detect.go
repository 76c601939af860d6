package commands

import (
	"fmt"
	"io"
	"sort"

	"github.com/bytedance/sonic"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/sensorlog/pkg/detector"
	"github.com/ccollicutt/sensorlog/pkg/parser"
)

// maxListedDiagnostics bounds the skipped lines printed without --verbose.
const maxListedDiagnostics = 5

// DetectOptions holds command-line options for the detect command.
type DetectOptions struct {
	Output  string
	Verbose bool
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect <log-file>",
		Short: "Detect the layout of a sensor log",
		Long: `Inspect a sensor log, report which layout it was read under and how
many lines parsed.

The first non-blank line decides the layout. When it is close to the tagged
CSV header but not exact, the differing columns are listed so the header can
be fixed.

Example:
  sensorlog detect upload.csv
  sensorlog detect -o json ref.log.gz`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "List every skipped line")

	return cmd
}

func runDetect(cmd *cobra.Command, args []string, opts *DetectOptions) error {
	logFile := args[0]

	builder := parser.NewBuilder(parser.WithLogger(newLogger(cmd.ErrOrStderr(), opts.Verbose)))
	result, err := builder.BuildFile(logFile)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	switch opts.Output {
	case "json":
		return outputDetectJSON(cmd.OutOrStdout(), logFile, result)
	case "text", "":
		return outputDetectText(cmd.OutOrStdout(), logFile, result, opts)
	default:
		return fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}
}

// nearHeader reports whether a non-CSV first line still matched part of the
// tagged-CSV header.
func nearHeader(d *detector.Detection) bool {
	return d.Format != detector.FormatTaggedCSV &&
		len(d.Mismatches) > 0 &&
		len(d.Mismatches) < len(detector.HeaderTokens())
}

func outputDetectText(w io.Writer, logFile string, result *parser.Result, opts *DetectOptions) error {
	fmt.Fprintln(w, "=== Sensor Log Detection ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "File: %s\n", logFile)
	fmt.Fprintf(w, "Detected format: %s\n", result.Format())
	fmt.Fprintf(w, "Lines read: %s\n", humanize.Comma(int64(result.LinesRead)))
	fmt.Fprintf(w, "Samples parsed: %s\n", humanize.Comma(int64(result.Parsed())))
	fmt.Fprintf(w, "Lines skipped: %s\n", humanize.Comma(int64(len(result.Diagnostics))))

	if nearHeader(result.Detection) {
		fmt.Fprintln(w)
		warnf(w, "First line resembles the tagged CSV header but differs:")
		for _, m := range result.Detection.Mismatches {
			fmt.Fprintf(w, "  column %d: expected %q, got %q\n", m.Column+1, m.Expected, m.Actual)
		}
	}

	if len(result.Diagnostics) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Skipped by kind:")
	byKind := result.DiagnosticsByKind()
	for _, kind := range sortedKeys(byKind) {
		fmt.Fprintf(w, "  %-18s %s\n", kind, humanize.Comma(int64(byKind[kind])))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Skipped lines:")
	for i, d := range result.Diagnostics {
		if !opts.Verbose && i == maxListedDiagnostics {
			fmt.Fprintf(w, "  ... %d more (use --verbose)\n", len(result.Diagnostics)-i)
			break
		}
		fmt.Fprintf(w, "  %s\n", d)
	}

	return nil
}

// DetectJSON is the JSON form of detect output.
type DetectJSON struct {
	File          string                    `json:"file"`
	Format        string                    `json:"format"`
	LinesRead     int                       `json:"lines_read"`
	Parsed        int                       `json:"parsed"`
	Skipped       int                       `json:"skipped"`
	SkippedByKind map[string]int            `json:"skipped_by_kind,omitempty"`
	Mismatches    []detector.HeaderMismatch `json:"header_mismatches,omitempty"`
}

func outputDetectJSON(w io.Writer, logFile string, result *parser.Result) error {
	out := DetectJSON{
		File:          logFile,
		Format:        result.Format().String(),
		LinesRead:     result.LinesRead,
		Parsed:        result.Parsed(),
		Skipped:       len(result.Diagnostics),
		SkippedByKind: result.DiagnosticsByKind(),
	}
	if nearHeader(result.Detection) {
		out.Mismatches = result.Detection.Mismatches
	}

	data, err := sonic.ConfigStd.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding detection: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
