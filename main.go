// =============================================================================
// Product ETL - Main Entry Point
// =============================================================================
//
// USAGE:
//   productetl process   - Run the pipeline on the configured input file
//   productetl check     - Validate the input file without writing output
//   productetl version   - Display the application version
//
// ARCHITECTURE:
//   - cmd/                 : CLI command definitions (Cobra)
//   - internal/types       : Product record and price helpers
//   - internal/extractor   : Row validation and parsing
//   - internal/transformer : Pricing and classification rules
//   - internal/loader      : Delimited output writer
//   - internal/pipeline    : Orchestrates one run
//   - internal/report      : Optional XLSX report
//   - pkg/utils            : File-system helpers and run summary logs
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/product-etl/cmd"
)

func main() {
	cmd.Execute()
}
