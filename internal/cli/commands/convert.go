package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/sensorlog/pkg/convert"
	"github.com/ccollicutt/sensorlog/pkg/parser"
)

// ConvertOptions holds command-line options for the convert command.
type ConvertOptions struct {
	Date   string
	Output string
	Force  bool
}

// NewConvertCommand creates the convert command.
func NewConvertCommand() *cobra.Command {
	opts := &ConvertOptions{}

	cmd := &cobra.Command{
		Use:   "convert <sensor-csv>",
		Short: "Convert a raw sensor CSV into a tagged CSV log",
		Long: `Convert a CSV with the columns Accel_X, Accel_Y, Accel_Z, Horizontal_Speed,
Vertical_Speed and Time into the tagged CSV layout read by plot.

Speed is the magnitude of the horizontal and vertical speeds. Time values
of the form H:MM:SS are prefixed with --date to build the TIME column.

Example:
  sensorlog convert raw.csv -o upload.csv
  sensorlog convert --date 20250917 raw.csv > upload.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Date, "date", convert.DefaultDate, "Date prefix for TIME values (YYYYMMDD)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Overwrite an existing output file")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string, opts *ConvertOptions) error {
	in, err := parser.Open(args[0])
	if err != nil {
		return err
	}
	defer in.Close()

	if opts.Output == "" {
		if _, err := convert.SensorCSV(in, cmd.OutOrStdout(), convert.Options{Date: opts.Date}); err != nil {
			return fmt.Errorf("converting %s: %w", args[0], err)
		}
		return nil
	}

	if _, err := os.Stat(opts.Output); err == nil && !opts.Force {
		return fmt.Errorf("output file already exists: %s (use --force to overwrite)", opts.Output)
	}
	f, err := os.Create(opts.Output) // #nosec G304 -- user-provided output path is expected
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}

	rows, err := convert.SensorCSV(in, f, convert.Options{Date: opts.Date})
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(opts.Output)
		return fmt.Errorf("converting %s: %w", args[0], err)
	}

	infof(cmd.ErrOrStderr(), "Converted %d rows to %s", rows, opts.Output)
	return nil
}
