package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/sensorlog/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a SensorLog configuration file without parsing any logs.

Checks:
  - YAML syntax
  - Output format
  - Column names (comparison columns need a reference)
  - Webhook URLs and triggers
  - Reference file existence (warning only)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(w, "\nConfiguration valid!\n")
	fmt.Fprintf(w, "  Output:    %s\n", cfg.Output)
	if len(cfg.Columns) > 0 {
		fmt.Fprintf(w, "  Columns:   %v\n", cfg.Columns)
	} else {
		fmt.Fprintf(w, "  Columns:   all\n")
	}
	if cfg.Chart.Output != "" {
		fmt.Fprintf(w, "  Chart:     %s\n", cfg.Chart.Output)
	}
	if cfg.Export.CSV != "" {
		fmt.Fprintf(w, "  CSV:       %s\n", cfg.Export.CSV)
	}
	fmt.Fprintf(w, "  Webhooks:  %d\n", len(cfg.Webhooks))

	if cfg.Reference != "" {
		fmt.Fprintf(w, "  Reference: %s\n", cfg.Reference)
		if _, err := os.Stat(cfg.Reference); err != nil {
			fmt.Fprintln(w)
			warnf(w, "Warning: reference file not readable: %v", err)
		}
	}

	return nil
}
