// =============================================================================
// Product ETL - Extractor Module
// =============================================================================
//
// This module reads the raw product file, validates every data row, and turns
// valid rows into types.Product records. It is the only stage that rejects
// input: everything downstream can assume a valid id and a rounded price.
//
// ROW RULES:
//   1. The first line is a header and is ignored.
//   2. Every later line counts as read.
//   3. Blank or whitespace-only lines are skipped.
//   4. Lines are split on the literal delimiter. Trailing empty fields are
//      dropped, then anything other than exactly 4 fields is skipped.
//   5. Fields are trimmed. The id must parse as a 32-bit integer and the
//      price as a decimal (rounded half-up to 2 digits), else the row is
//      skipped.
//
// COUNTERS:
//   rows read = rows skipped + records produced. Blank and malformed rows
//   share the single skip counter.
//
// =============================================================================

package extractor

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/ginjaninja78/product-etl/internal/types"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrMissingInputFile is returned when the input file does not exist.
	// The pipeline must halt instead of proceeding with empty input.
	ErrMissingInputFile = errors.New("input file not found")

	// ErrMalformedRow marks a row with the wrong field count, an unparseable
	// id, or an unparseable price.
	ErrMalformedRow = errors.New("malformed row")

	// ErrBlankLine marks an empty or whitespace-only row.
	ErrBlankLine = errors.New("blank line")
)

// expectedFields is the number of fields in every input data row.
const expectedFields = 4

// initialBufferSize is the starting line buffer. Lines longer than this grow
// the buffer instead of failing the read.
const initialBufferSize = 64 * 1024

// =============================================================================
// EXTRACTION RESULT
// =============================================================================

// SkippedRow records why a single row was rejected.
type SkippedRow struct {
	// Line is the 1-indexed line number in the input file (the header is 1).
	Line int

	// Reason wraps ErrBlankLine or ErrMalformedRow.
	Reason error
}

// Extraction is the outcome of one extraction pass.
type Extraction struct {
	// SourceFile is the path that was read.
	SourceFile string

	// Header holds the trimmed fields of the header line. Empty for an
	// empty file.
	Header []string

	// Records holds the valid rows in file order.
	Records []types.Product

	// RowsRead counts every non-header line, valid or not.
	RowsRead int

	// RowsSkipped counts every rejected line.
	RowsSkipped int

	// Skipped lists the rejected lines with their reasons.
	Skipped []SkippedRow
}

// HasStandardHeader reports whether the header line names the expected
// columns in order. The header is never used to map fields, so a mismatch
// is informational only.
func (e *Extraction) HasStandardHeader() bool {
	if len(e.Header) != len(types.Header) {
		return false
	}
	for i, name := range types.Header {
		if !strings.EqualFold(e.Header[i], name) {
			return false
		}
	}
	return true
}

// RowsExtracted returns the number of rows turned into records.
func (e *Extraction) RowsExtracted() int {
	return e.RowsRead - e.RowsSkipped
}

// =============================================================================
// EXTRACTOR
// =============================================================================

// Extractor reads product rows from a delimited file.
type Extractor struct {
	delimiter   string
	rowsRead    int
	rowsSkipped int
}

// New creates an Extractor that splits rows on delimiter.
// An empty delimiter falls back to a comma.
func New(delimiter string) *Extractor {
	if delimiter == "" {
		delimiter = ","
	}
	return &Extractor{delimiter: delimiter}
}

// RowsRead returns the rows read by the last Extract call.
func (e *Extractor) RowsRead() int { return e.rowsRead }

// RowsSkipped returns the rows skipped by the last Extract call.
func (e *Extractor) RowsSkipped() int { return e.rowsSkipped }

// Extract reads filePath and returns the valid product records it contains.
//
// PARAMETERS:
//   - filePath: The path to the input file.
//
// RETURNS:
//   - The extraction result. It is nil only when an error is returned, so a
//     missing file (nil) is never confused with an empty one.
//   - ErrMissingInputFile (wrapped) if the file does not exist, or the
//     underlying error if it cannot be opened or read.
func (e *Extractor) Extract(filePath string) (*Extraction, error) {
	e.rowsRead = 0
	e.rowsSkipped = 0

	file, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingInputFile, filePath)
		}
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	result := &Extraction{
		SourceFile: filePath,
		Records:    []types.Product{},
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, initialBufferSize), math.MaxInt)
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++

		if lineNumber == 1 {
			result.Header = splitFields(scanner.Text(), e.delimiter)
			for i := range result.Header {
				result.Header[i] = strings.TrimSpace(result.Header[i])
			}
			continue
		}

		result.RowsRead++

		product, err := e.parseLine(scanner.Text())
		if err != nil {
			result.RowsSkipped++
			result.Skipped = append(result.Skipped, SkippedRow{Line: lineNumber, Reason: err})
			continue
		}

		result.Records = append(result.Records, product)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}

	e.rowsRead = result.RowsRead
	e.rowsSkipped = result.RowsSkipped

	return result, nil
}

// parseLine validates one data line and builds a product from it.
func (e *Extractor) parseLine(line string) (types.Product, error) {
	if strings.TrimSpace(line) == "" {
		return types.Product{}, ErrBlankLine
	}

	fields := splitFields(line, e.delimiter)
	if len(fields) != expectedFields {
		return types.Product{}, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedRow, expectedFields, len(fields))
	}

	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	id, name, priceText, category := fields[0], fields[1], fields[2], fields[3]

	if _, err := strconv.ParseInt(id, 10, 32); err != nil {
		return types.Product{}, fmt.Errorf("%w: invalid product id %q", ErrMalformedRow, id)
	}

	price, err := types.ParsePrice(priceText)
	if err != nil {
		return types.Product{}, fmt.Errorf("%w: %v", ErrMalformedRow, err)
	}

	return types.Product{
		ID:       id,
		Name:     name,
		Price:    price,
		Category: category,
	}, nil
}

// splitFields splits line on the literal delimiter and drops trailing empty
// fields, so "1,Widget,2.50," has three fields.
func splitFields(line, delimiter string) []string {
	fields := strings.Split(line, delimiter)
	for len(fields) > 0 && fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}
	return fields
}
