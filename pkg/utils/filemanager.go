// =============================================================================
// Product ETL - File Manager Utility
// =============================================================================
//
// This module provides the file-system chores around a pipeline run:
//   - Input existence checks
//   - Output directory creation
//   - Run summary log generation
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureParentDir creates the directory containing filePath if it does not
// exist.
//
// RETURNS:
//   - An error if the directory cannot be created.
func EnsureParentDir(filePath string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// FileExists checks if a regular file or directory exists at path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// =============================================================================
// RUN SUMMARY
// =============================================================================

// RunSummary contains summary information about one pipeline run.
type RunSummary struct {
	RunID           string
	StartTime       time.Time
	EndTime         time.Time
	InputFile       string
	OutputFile      string
	DryRun          bool
	Success         bool
	ErrorMessage    string
	RowsRead        int
	RowsTransformed int
	RowsSkipped     int
	SkippedRows     []SkippedRowInfo
}

// SkippedRowInfo describes a rejected input line.
type SkippedRowInfo struct {
	Line   int
	Reason string
}

// SummaryFileName returns the log file name for a run.
func SummaryFileName(summary RunSummary) string {
	id := summary.RunID
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("run_summary_%s_%s.txt", summary.StartTime.Format("20060102_150405"), id)
}

// WriteSummaryLog writes a run summary to a text file in outputDir,
// creating the directory if needed.
//
// PARAMETERS:
//   - summary: The run summary.
//   - outputDir: The directory to write the summary file.
//
// RETURNS:
//   - The path to the summary file.
//   - An error if writing fails.
func WriteSummaryLog(summary RunSummary, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create summary directory: %w", err)
	}

	summaryPath := filepath.Join(outputDir, SummaryFileName(summary))

	file, err := os.Create(summaryPath)
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	status := "SUCCESS"
	if !summary.Success {
		status = "FAILED"
	}
	if summary.DryRun {
		status += " (dry run)"
	}

	duration := summary.EndTime.Sub(summary.StartTime)
	fmt.Fprintf(writer, "Product ETL - Run Summary\n"+
		"================================================================================\n\n"+
		"Run Information:\n"+
		"  Run ID:         %s\n"+
		"  Status:         %s\n"+
		"  Start Time:     %s\n"+
		"  End Time:       %s\n"+
		"  Duration:       %s\n"+
		"  Input File:     %s\n"+
		"  Output File:    %s\n\n"+
		"Statistics:\n"+
		"  Rows Read:        %d\n"+
		"  Rows Transformed: %d\n"+
		"  Rows Skipped:     %d\n\n",
		summary.RunID,
		status,
		summary.StartTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Format("2006-01-02 15:04:05"),
		duration.String(),
		summary.InputFile,
		summary.OutputFile,
		summary.RowsRead,
		summary.RowsTransformed,
		summary.RowsSkipped)

	if summary.ErrorMessage != "" {
		fmt.Fprintf(writer, "Error:\n  %s\n\n", summary.ErrorMessage)
	}

	if len(summary.SkippedRows) > 0 {
		writer.WriteString("Skipped Rows:\n")
		writer.WriteString("--------------------------------------------------------------------------------\n")
		for _, row := range summary.SkippedRows {
			fmt.Fprintf(writer, "  Line %-6d %s\n", row.Line, row.Reason)
		}
		writer.WriteString("\n")
	}

	writer.WriteString("================================================================================\n" +
		"End of Summary\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush summary file: %w", err)
	}

	return summaryPath, nil
}
