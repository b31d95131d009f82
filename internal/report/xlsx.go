// =============================================================================
// Product ETL - Spreadsheet Report
// =============================================================================
//
// This module writes an optional XLSX copy of a pipeline run. The workbook
// has two sheets:
//   - Products: the output header followed by one row per transformed record.
//     Prices are numeric cells formatted with two decimals.
//   - Summary:  run id, input/output paths and row counts.
//
// The delimited output file remains the primary artifact; this workbook is a
// convenience for people who open results in a spreadsheet.
//
// =============================================================================

package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/product-etl/internal/types"
)

// Sheet names used in the workbook.
const (
	ProductsSheet = "Products"
	SummarySheet  = "Summary"
)

// numFmtTwoDecimals is the built-in Excel number format "0.00".
const numFmtTwoDecimals = 2

// Summary describes the run written to the Summary sheet.
type Summary struct {
	RunID           string
	InputFile       string
	OutputFile      string
	RowsRead        int
	RowsTransformed int
	RowsSkipped     int
	GeneratedAt     time.Time
}

// WriteWorkbook writes products and the run summary to an XLSX file at
// filePath, replacing any existing file.
//
// PARAMETERS:
//   - filePath: Destination workbook path. Its directory must exist.
//   - products: The transformed records.
//   - summary: Run information for the Summary sheet.
//
// RETURNS:
//   - An error if any cell cannot be written or the file cannot be saved.
func WriteWorkbook(filePath string, products []types.Product, summary Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	// The default sheet becomes the Products sheet.
	if err := f.SetSheetName(f.GetSheetName(0), ProductsSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	if err := writeProducts(f, products); err != nil {
		return err
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	if err := writeSummary(f, summary); err != nil {
		return err
	}

	if err := f.SaveAs(filePath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}

// writeProducts fills the Products sheet.
func writeProducts(f *excelize.File, products []types.Product) error {
	header := make([]interface{}, len(types.OutputHeader))
	for i, name := range types.OutputHeader {
		header[i] = name
	}
	if err := f.SetSheetRow(ProductsSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetCellStyle(ProductsSheet, "A1", "E1", boldStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	priceStyle, err := f.NewStyle(&excelize.Style{NumFmt: numFmtTwoDecimals})
	if err != nil {
		return fmt.Errorf("failed to create price style: %w", err)
	}

	for i, product := range products {
		row := i + 2

		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}

		values := []interface{}{
			product.ID,
			product.Name,
			nil,
			product.Category,
			string(product.PriceRange),
		}
		if err := f.SetSheetRow(ProductsSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write product %s: %w", product.ID, err)
		}

		priceCell, err := excelize.CoordinatesToCellName(3, row)
		if err != nil {
			return err
		}
		// Numeric cell holding the exact decimal text, never a float.
		if err := f.SetCellDefault(ProductsSheet, priceCell, types.FormatPrice(product.Price)); err != nil {
			return fmt.Errorf("failed to write price for product %s: %w", product.ID, err)
		}
		if err := f.SetCellStyle(ProductsSheet, priceCell, priceCell, priceStyle); err != nil {
			return fmt.Errorf("failed to style price for product %s: %w", product.ID, err)
		}
	}

	if err := f.SetColWidth(ProductsSheet, "B", "B", 28); err != nil {
		return err
	}
	return f.SetColWidth(ProductsSheet, "D", "D", 22)
}

// writeSummary fills the Summary sheet with label/value pairs.
func writeSummary(f *excelize.File, summary Summary) error {
	generatedAt := summary.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}

	rows := [][]interface{}{
		{"Run ID", summary.RunID},
		{"Input File", summary.InputFile},
		{"Output File", summary.OutputFile},
		{"Rows Read", summary.RowsRead},
		{"Rows Transformed", summary.RowsTransformed},
		{"Rows Skipped", summary.RowsSkipped},
		{"Generated At", generatedAt.Format("2006-01-02 15:04:05")},
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary row %q: %w", row[0], err)
		}
	}

	return f.SetColWidth(SummarySheet, "A", "B", 24)
}
