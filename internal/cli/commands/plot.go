package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/sensorlog/pkg/analyzer"
	"github.com/ccollicutt/sensorlog/pkg/chart"
	"github.com/ccollicutt/sensorlog/pkg/config"
	"github.com/ccollicutt/sensorlog/pkg/export"
	"github.com/ccollicutt/sensorlog/pkg/output"
	"github.com/ccollicutt/sensorlog/pkg/parser"
	"github.com/ccollicutt/sensorlog/pkg/table"
	"github.com/ccollicutt/sensorlog/pkg/webhook"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// PlotOptions holds command-line options for the plot command.
type PlotOptions struct {
	ConfigPath string
	Reference  string
	Columns    []string
	Output     string
	Chart      string
	CSV        string
	Title      string
	From       string
	To         string
	Raw        bool
	Verbose    bool
	Quiet      bool

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
}

// NewPlotCommand creates the plot command.
func NewPlotCommand() *cobra.Command {
	opts := &PlotOptions{}

	cmd := &cobra.Command{
		Use:   "plot <log-file>",
		Short: "Parse a sensor log and report, chart or export it",
		Long: `Parse a sensor log, optionally align it with a reference log by timestamp,
and report per-column statistics.

The input format is detected from the first non-blank line:
  - Tagged CSV: header "X axis,Y axis,Z axis,GNSS Accuracy,Speed,Azimuth,TIME"
  - Bracketed triplet: "[YYYY-MM-DD_HH:MM:SS:fff] x,y,z"

Files ending in .gz or .zst are decompressed. Use "-" to read standard input.

Exit codes:
  0 - Rows were produced
  1 - No valid data extracted, or nothing aligned by timestamp
  2 - Configuration or runtime error

Example:
  sensorlog plot upload.csv
  sensorlog plot --reference ref.log --chart chart.html upload.csv
  sensorlog plot --columns "X axis,cmp_X axis" --csv out.csv -r ref.log upload.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlot(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Configuration file")
	cmd.Flags().StringVarP(&opts.Reference, "reference", "r", "", "Reference log to align against")
	cmd.Flags().StringSliceVar(&opts.Columns, "columns", nil, "Columns to keep (default all)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output format (text|json)")
	cmd.Flags().StringVar(&opts.Chart, "chart", "", "Write an HTML chart to this file")
	cmd.Flags().StringVar(&opts.CSV, "csv", "", "Export the table as CSV to this file")
	cmd.Flags().StringVar(&opts.Title, "title", "", "Chart title")
	cmd.Flags().StringVar(&opts.From, "from", "", "Drop rows before this time (YYYY-MM-DD_HH:MM:SS[:fff])")
	cmd.Flags().StringVar(&opts.To, "to", "", "Drop rows after this time (YYYY-MM-DD_HH:MM:SS[:fff])")
	cmd.Flags().BoolVar(&opts.Raw, "raw", false, "Include the raw source line of every row")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "List every skipped line and enable debug logging")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")

	// Webhook flags
	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", "on_empty", "When to fire webhook (on_empty|always|never)")

	return cmd
}

func runPlot(cmd *cobra.Command, args []string, opts *PlotOptions) error {
	logPath := args[0]
	started := time.Now()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	cfg, err := config.Load(ctx, opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyPlotFlags(cmd, cfg, opts)
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	analyzerOpts, err := buildAnalyzerOptions(cfg, opts)
	if err != nil {
		return err
	}

	logger := newLogger(stderr, opts.Verbose)
	builder := parser.NewBuilder(
		parser.WithLogger(logger.With("source", logPath)),
		parser.WithMaxLineBytes(cfg.MaxLineBytes),
	)

	primary, err := builder.BuildFile(logPath)
	if err != nil {
		return err
	}

	var (
		reference *output.Input
		tbl       *table.Table
	)
	if cfg.Reference != "" {
		refBuilder := parser.NewBuilder(
			parser.WithLogger(logger.With("source", cfg.Reference)),
			parser.WithMaxLineBytes(cfg.MaxLineBytes),
		)
		refResult, err := refBuilder.BuildFile(cfg.Reference)
		if err != nil {
			return err
		}
		reference = &output.Input{Path: cfg.Reference, Result: refResult}
		tbl = table.Align(&primary.Series, &refResult.Series)
	} else {
		tbl = table.FromSeries(&primary.Series)
	}

	result, err := analyzer.NewAnalyzer(analyzerOpts...).Analyze(tbl)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	report := output.NewReport(output.Input{Path: logPath, Result: primary}, reference, result, output.ReportOptions{
		IncludeRaw: opts.Raw,
		ConfigFile: opts.ConfigPath,
		Started:    started,
	})

	if !report.Empty() {
		if err := writeArtifacts(cfg, result.Table, stderr); err != nil {
			return err
		}
	}

	formatter, ok := output.NewFormatter(cfg.Output, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	})
	if !ok {
		return fmt.Errorf("unknown output format %q (use text or json)", cfg.Output)
	}
	if err := formatter.Format(ctx, report, stdout); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	// Webhook failures are logged but do not fail the run
	webhook.NewClient(webhook.WithLogger(logger)).Notify(ctx, cfg.Webhooks, report)

	if report.Empty() {
		warnf(stderr, "%s", report.Summary.Message)
		ExitCode = 1
	}

	return nil
}

// applyPlotFlags overrides config values with flags given on the command line.
func applyPlotFlags(cmd *cobra.Command, cfg *config.Config, opts *PlotOptions) {
	flags := cmd.Flags()
	if flags.Changed("reference") {
		cfg.Reference = opts.Reference
	}
	if flags.Changed("columns") {
		cfg.Columns = opts.Columns
	}
	if flags.Changed("output") {
		cfg.Output = opts.Output
	}
	if flags.Changed("chart") {
		cfg.Chart.Output = opts.Chart
	}
	if flags.Changed("title") {
		cfg.Chart.Title = opts.Title
	}
	if flags.Changed("csv") {
		cfg.Export.CSV = opts.CSV
	}

	if opts.WebhookURL != "" {
		cfg.Webhooks = append(cfg.Webhooks, config.WebhookConfig{
			Name:    "cli",
			URL:     opts.WebhookURL,
			Token:   opts.WebhookToken,
			Trigger: config.WebhookTrigger(opts.WebhookTrigger),
		})
	}
}

func buildAnalyzerOptions(cfg *config.Config, opts *PlotOptions) ([]analyzer.AnalyzerOption, error) {
	analyzerOpts := []analyzer.AnalyzerOption{analyzer.WithColumns(cfg.Columns)}

	if opts.From == "" && opts.To == "" {
		return analyzerOpts, nil
	}

	var from, to time.Time
	var err error
	if opts.From != "" {
		if from, err = parser.ParseTimestamp(opts.From); err != nil {
			return nil, fmt.Errorf("invalid --from: %w", err)
		}
	}
	if opts.To != "" {
		if to, err = parser.ParseTimestamp(opts.To); err != nil {
			return nil, fmt.Errorf("invalid --to: %w", err)
		}
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return nil, fmt.Errorf("--to %s is before --from %s", opts.To, opts.From)
	}

	return append(analyzerOpts, analyzer.WithTimeRange(from, to)), nil
}

// writeArtifacts renders the chart and CSV export when configured.
func writeArtifacts(cfg *config.Config, t *table.Table, status io.Writer) error {
	if cfg.Chart.Output != "" {
		err := writeFile(cfg.Chart.Output, func(w io.Writer) error {
			return chart.Render(w, t, chart.Options{Title: cfg.Chart.Title, Height: cfg.Chart.Height})
		})
		if err != nil {
			return err
		}
		infof(status, "Wrote chart to %s (%s)", cfg.Chart.Output, fileSize(cfg.Chart.Output))
	}

	if cfg.Export.CSV != "" {
		err := writeFile(cfg.Export.CSV, func(w io.Writer) error {
			return export.WriteCSV(w, t)
		})
		if err != nil {
			return err
		}
		infof(status, "Wrote %s rows to %s", humanize.Comma(int64(t.Len())), cfg.Export.CSV)
	}

	return nil
}

// writeFile creates path and hands it to write, closing it afterwards.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path) // #nosec G304 -- user-provided output path is expected
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

func fileSize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "unknown size"
	}
	return humanize.Bytes(uint64(info.Size())) // #nosec G115 -- file sizes are non-negative
}
