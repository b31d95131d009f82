// =============================================================================
// Product ETL - Pipeline Orchestrator
// =============================================================================
//
// This module runs one extract-transform-load pass over a product file.
//
// PIPELINE:
//   1. Extract and validate rows from the input file
//      (a missing input file halts the run before anything is written)
//   2. Apply the transformation rules
//   3. Create the output directory if needed
//   4. Write the output file (skipped on dry runs)
//   5. Write the optional XLSX report
//   6. Write the optional run summary log
//
// Every run builds its own extractor and transformer, so counters never leak
// between runs and a Pipeline can be run repeatedly.
//
// =============================================================================

package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ginjaninja78/product-etl/internal/config"
	"github.com/ginjaninja78/product-etl/internal/extractor"
	"github.com/ginjaninja78/product-etl/internal/loader"
	"github.com/ginjaninja78/product-etl/internal/report"
	"github.com/ginjaninja78/product-etl/internal/transformer"
	"github.com/ginjaninja78/product-etl/internal/types"
	"github.com/ginjaninja78/product-etl/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of one pipeline run.
type Result struct {
	// RunID uniquely identifies the run in logs and summary files.
	RunID string

	// InputFile is the file that was read.
	InputFile string

	// OutputFile is the file that was (or would have been) written.
	OutputFile string

	// Success indicates whether the run completed.
	Success bool

	// DryRun is true when the output file was intentionally not written.
	DryRun bool

	// Error is nil on success. A missing input file is reported as
	// extractor.ErrMissingInputFile and an unwritable output as
	// loader.ErrOutputWrite; check with errors.Is.
	Error error

	// Stats contains the row counts for the run.
	Stats Stats

	// Products holds the transformed records.
	Products []types.Product

	// Skipped lists the input lines that were rejected.
	Skipped []extractor.SkippedRow

	// SummaryFile is the path of the run summary log, if one was written.
	SummaryFile string
}

// Stats contains row counts for a run.
type Stats struct {
	// RowsRead counts every non-header input line.
	RowsRead int

	// RowsTransformed counts records that went through the transformer.
	RowsTransformed int

	// RowsSkipped counts rejected input lines.
	RowsSkipped int

	// ProcessingTime is the wall time of the run.
	ProcessingTime time.Duration
}

// =============================================================================
// PIPELINE STRUCTURE
// =============================================================================

// Logger is the logging surface the pipeline needs.
// *log.Logger from charmbracelet/log satisfies it.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Pipeline runs the ETL process for a configuration.
type Pipeline struct {
	cfg    *config.Config
	logger Logger
	dryRun bool
}

// New creates a Pipeline for cfg.
func New(cfg *config.Config, logger Logger) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		logger: logger,
	}
}

// WithDryRun makes Run stop before writing the output file and XLSX report.
func (p *Pipeline) WithDryRun(dryRun bool) *Pipeline {
	p.dryRun = dryRun
	return p
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the pipeline once.
//
// RETURNS:
//   - A Result describing the run. Result.Error is set when the run failed.
func (p *Pipeline) Run() Result {
	startTime := time.Now()
	result := Result{
		RunID:      uuid.New().String(),
		InputFile:  p.cfg.InputFile,
		OutputFile: p.cfg.OutputFile,
		DryRun:     p.dryRun,
	}

	p.logger.Infof("run %s: processing %s", result.RunID, p.cfg.InputFile)

	// =========================================================================
	// STEP 1: EXTRACT
	// =========================================================================

	extraction, err := extractor.New(p.cfg.Delimiter).Extract(p.cfg.InputFile)
	if err != nil {
		// Nothing has been written; the run halts here.
		result.Error = err
		result.Stats.ProcessingTime = time.Since(startTime)
		p.logger.Errorf("run %s: %v", result.RunID, err)
		return result
	}

	result.Stats.RowsRead = extraction.RowsRead
	result.Stats.RowsSkipped = extraction.RowsSkipped
	result.Skipped = extraction.Skipped

	if extraction.Header != nil && !extraction.HasStandardHeader() {
		p.logger.Debugf("unexpected header %v; columns are read by position", extraction.Header)
	}
	for _, skipped := range extraction.Skipped {
		p.logger.Warnf("skipping line %d: %v", skipped.Line, skipped.Reason)
	}
	p.logger.Debugf("extracted %d of %d rows", len(extraction.Records), extraction.RowsRead)

	// =========================================================================
	// STEP 2: TRANSFORM
	// =========================================================================

	t := transformer.New()
	result.Products = t.Transform(extraction.Records)
	result.Stats.RowsTransformed = t.RowsTransformed()

	p.logger.Debugf("transformed %d rows", result.Stats.RowsTransformed)

	// =========================================================================
	// STEP 3: LOAD
	// =========================================================================

	if p.dryRun {
		p.logger.Infof("dry run: not writing %s", p.cfg.OutputFile)
	} else if err := p.load(result.Products); err != nil {
		result.Error = err
		result.Stats.ProcessingTime = time.Since(startTime)
		p.logger.Errorf("run %s: %v", result.RunID, err)
		p.writeSummary(&result, startTime)
		return result
	}

	// =========================================================================
	// STEP 4: REPORTS
	// =========================================================================

	if p.cfg.XLSXReport != "" && !p.dryRun {
		// A failed report does not fail the run; the output file is complete.
		if err := p.writeWorkbook(result); err != nil {
			p.logger.Warnf("failed to write xlsx report: %v", err)
		} else {
			p.logger.Infof("wrote xlsx report to %s", p.cfg.XLSXReport)
		}
	}

	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)

	p.writeSummary(&result, startTime)

	p.logger.Infof("run %s: read %d, transformed %d, skipped %d in %s",
		result.RunID,
		result.Stats.RowsRead,
		result.Stats.RowsTransformed,
		result.Stats.RowsSkipped,
		result.Stats.ProcessingTime)

	return result
}

// Check extracts and validates the input file without transforming or
// writing anything.
func (p *Pipeline) Check() (*extractor.Extraction, error) {
	extraction, err := extractor.New(p.cfg.Delimiter).Extract(p.cfg.InputFile)
	if err != nil {
		return nil, err
	}

	for _, skipped := range extraction.Skipped {
		p.logger.Debugf("line %d: %v", skipped.Line, skipped.Reason)
	}

	return extraction, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// load writes the output file, creating its directory first.
func (p *Pipeline) load(products []types.Product) error {
	if err := utils.EnsureParentDir(p.cfg.OutputFile); err != nil {
		return fmt.Errorf("%w: %v", loader.ErrOutputWrite, err)
	}

	if utils.FileExists(p.cfg.OutputFile) {
		p.logger.Debugf("replacing existing %s", p.cfg.OutputFile)
	}

	if err := loader.New(p.cfg.Delimiter).Load(p.cfg.OutputFile, products); err != nil {
		return err
	}

	p.logger.Infof("wrote %d rows to %s", len(products), p.cfg.OutputFile)
	return nil
}

// writeWorkbook writes the XLSX copy of the run.
func (p *Pipeline) writeWorkbook(result Result) error {
	if err := utils.EnsureParentDir(p.cfg.XLSXReport); err != nil {
		return err
	}

	return report.WriteWorkbook(p.cfg.XLSXReport, result.Products, report.Summary{
		RunID:           result.RunID,
		InputFile:       result.InputFile,
		OutputFile:      result.OutputFile,
		RowsRead:        result.Stats.RowsRead,
		RowsTransformed: result.Stats.RowsTransformed,
		RowsSkipped:     result.Stats.RowsSkipped,
	})
}

// writeSummary writes the run summary log when a summary directory is
// configured. Failures are logged, not returned.
func (p *Pipeline) writeSummary(result *Result, startTime time.Time) {
	if p.cfg.SummaryDir == "" {
		return
	}

	summary := utils.RunSummary{
		RunID:           result.RunID,
		StartTime:       startTime,
		EndTime:         time.Now(),
		InputFile:       result.InputFile,
		OutputFile:      result.OutputFile,
		DryRun:          result.DryRun,
		Success:         result.Success,
		RowsRead:        result.Stats.RowsRead,
		RowsTransformed: result.Stats.RowsTransformed,
		RowsSkipped:     result.Stats.RowsSkipped,
	}
	if result.Error != nil {
		summary.ErrorMessage = result.Error.Error()
	}
	for _, skipped := range result.Skipped {
		summary.SkippedRows = append(summary.SkippedRows, utils.SkippedRowInfo{
			Line:   skipped.Line,
			Reason: skipped.Reason.Error(),
		})
	}

	path, err := utils.WriteSummaryLog(summary, p.cfg.SummaryDir)
	if err != nil {
		p.logger.Warnf("failed to write run summary: %v", err)
		return
	}

	result.SummaryFile = path
	p.logger.Debugf("wrote run summary to %s", path)
}
