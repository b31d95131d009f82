// =============================================================================
// Product ETL - Loader Module
// =============================================================================
//
// This module writes transformed product records to the output file. The
// output is a header line followed by one line per record, fields joined by
// the configured delimiter in the order:
//
//   ProductID, Name, Price, Category, PriceRange
//
// WRITE SEMANTICS:
//   - Any existing file at the path is truncated.
//   - Output is buffered and flushed and closed before Load returns.
//   - Failures are returned, never retried, and partial writes are not
//     rolled back.
//
// =============================================================================

package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ginjaninja78/product-etl/internal/types"
)

// ErrOutputWrite wraps every failure to open, write, flush or close the
// output file.
var ErrOutputWrite = errors.New("output write failed")

// Loader writes product records as delimited text.
type Loader struct {
	delimiter string
}

// New creates a Loader that joins fields with delimiter.
// An empty delimiter falls back to a comma.
func New(delimiter string) *Loader {
	if delimiter == "" {
		delimiter = ","
	}
	return &Loader{delimiter: delimiter}
}

// Load writes products to filePath, replacing any existing file.
//
// PARAMETERS:
//   - filePath: The output file path. Its directory must already exist.
//   - products: The transformed records.
//
// RETURNS:
//   - An error wrapping ErrOutputWrite if the file cannot be written.
func (l *Loader) Load(filePath string, products []types.Product) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}

	if err := l.Write(file, products); err != nil {
		file.Close()
		return err
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}

	return nil
}

// Write renders the header and products to w.
func (l *Loader) Write(w io.Writer, products []types.Product) error {
	writer := bufio.NewWriter(w)

	if _, err := writer.WriteString(l.line(types.OutputHeader)); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}

	for _, product := range products {
		if _, err := writer.WriteString(l.line(product.Fields())); err != nil {
			return fmt.Errorf("%w: product %s: %v", ErrOutputWrite, product.ID, err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}

	return nil
}

// line joins fields and terminates the line.
func (l *Loader) line(fields []string) string {
	return strings.Join(fields, l.delimiter) + "\n"
}
