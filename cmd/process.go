// =============================================================================
// Product ETL - Process Command
// =============================================================================
//
// This file defines the 'process' command, which runs the full pipeline once
// and prints the run report.
//
// COMMAND USAGE:
//   productetl process [flags]
//
// FLAGS:
//   --input        : Input product file
//   --output       : Output file
//   --delimiter    : Field delimiter
//   --xlsx         : Also write an XLSX report to this path
//   --summary-dir  : Write a run summary log into this directory
//   --dry-run      : Run extract and transform without writing output files
//
// EXIT BEHAVIOR:
//   A missing input file stops the pipeline before anything is written and
//   the command exits non-zero.
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/product-etl/internal/extractor"
	"github.com/ginjaninja78/product-etl/internal/loader"
	"github.com/ginjaninja78/product-etl/internal/pipeline"
)

// dryRun simulates processing without writing output files.
var dryRun bool

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:     "process",
	Aliases: []string{"run"},
	Short:   "Run the ETL pipeline on the input file",
	Long: `The process command reads the input file, skips blank and malformed
rows, applies the pricing rules, and writes the transformed records to the
output file. The output directory is created if needed and any existing
output file is replaced.

After the run it prints the number of rows read, transformed and skipped.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd)
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	addFileFlags(processCmd)

	processCmd.Flags().String("xlsx", "", "Also write an XLSX report to this path (overrides xlsx_report)")
	processCmd.Flags().String("summary-dir", "", "Directory for run summary logs (overrides summary_dir)")
	processCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Run extract and transform without writing output files",
	)
}

// runProcess loads the configuration, runs the pipeline and prints the report.
func runProcess(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Starting ETL Pipeline...")

	result := pipeline.New(cfg, logger).WithDryRun(dryRun).Run()

	if errors.Is(result.Error, extractor.ErrMissingInputFile) {
		fmt.Fprintf(out, "Input file %s not found\n", cfg.InputFile)
		fmt.Fprintln(out, "Stopping pipeline.")
		return result.Error
	}

	printReport(out, result)

	return result.Error
}

// printReport writes the console summary for a run.
func printReport(out io.Writer, result pipeline.Result) {
	fmt.Fprintf(out, "Number of rows read: %d\n", result.Stats.RowsRead)
	fmt.Fprintf(out, "Number of rows transformed: %d\n", result.Stats.RowsTransformed)
	fmt.Fprintf(out, "Number of rows skipped: %d\n", result.Stats.RowsSkipped)

	switch {
	case errors.Is(result.Error, loader.ErrOutputWrite):
		fmt.Fprintf(out, "Failed to write %s\n", result.OutputFile)
	case result.Error != nil:
		fmt.Fprintf(out, "Failed to read %s: %v\n", result.InputFile, result.Error)
	case result.DryRun:
		fmt.Fprintf(out, "Dry run: %s was not written\n", result.OutputFile)
	default:
		fmt.Fprintf(out, "File created successfully at: %s\n", result.OutputFile)
	}
}
