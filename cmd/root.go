// =============================================================================
// Product ETL - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (productetl)
//   ├── processCmd (productetl process)
//   ├── checkCmd   (productetl check)
//   └── versionCmd (productetl version)
//
// The root command owns the global flags (--config, --verbose) and the
// helpers that turn them into a configuration and a logger.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/product-etl/internal/config"
	"github.com/ginjaninja78/product-etl/internal/logging"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
// Empty means built-in defaults.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "productetl",
	Short: "Product ETL - extract, transform and load product price files",
	Long: `Product ETL reads a delimited product file, validates every row,
applies the pricing rules, and writes the transformed records to a new file.

Rules applied to every valid row:
  - Product names are uppercased
  - Electronics get a 10% discount; above 500 they become Premium Electronics
  - Every product gets a price range: Low, Medium, High or Premium

Example Usage:
  productetl process                          # data/products.csv -> data/transformed_products.csv
  productetl process --config ./etl.yaml      # use a configuration file
  productetl process --input in.csv --xlsx out/report.xlsx
  productetl check --input in.csv             # validate rows without writing`,

	SilenceUsage:  true,
	SilenceErrors: true,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"Path to a YAML configuration file (defaults are used when omitted)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// loadConfig loads the configuration file and applies the file-related flags
// that process and check share.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.InputFile, _ = flags.GetString("input")
	}
	if flags.Changed("output") {
		cfg.OutputFile, _ = flags.GetString("output")
	}
	if flags.Changed("delimiter") {
		delimiter, _ := flags.GetString("delimiter")
		cfg.Delimiter = config.NormalizeDelimiter(delimiter)
	}
	if flags.Changed("xlsx") {
		cfg.XLSXReport, _ = flags.GetString("xlsx")
	}
	if flags.Changed("summary-dir") {
		cfg.SummaryDir, _ = flags.GetString("summary-dir")
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// newLogger builds the logger for cfg, writing to w.
func newLogger(w io.Writer, cfg *config.Config) (*log.Logger, error) {
	return logging.New(w, cfg.LogLevel)
}

// addFileFlags registers the input/output flags on a command.
func addFileFlags(cmd *cobra.Command) {
	cmd.Flags().String("input", "", "Input product file (overrides input_file)")
	cmd.Flags().String("output", "", "Output file (overrides output_file)")
	cmd.Flags().String("delimiter", "", "Field delimiter: a character, or tab/pipe/semicolon (overrides delimiter)")
}
