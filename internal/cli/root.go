// Package cli provides the command-line interface for SensorLog.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/sensorlog/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// SilenceErrors prevents Cobra from printing this
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sensorlog",
		Short: "Parse, align and chart sensor logs",
		Long: `SensorLog reads accelerometer and speed logs, aligns them with a
reference log by timestamp, and reports, charts or exports the result.

Supported layouts:
  - Tagged CSV with the header "X axis,Y axis,Z axis,GNSS Accuracy,Speed,Azimuth,TIME"
  - Bracketed triplet lines such as "[2025-09-17_19:31:00:123] 4,30,2078"

Malformed lines are skipped and counted, never fatal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewPlotCommand())
	rootCmd.AddCommand(commands.NewDetectCommand())
	rootCmd.AddCommand(commands.NewConvertCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
