// =============================================================================
// Product ETL - Shared Types
// =============================================================================
//
// This package contains the record model shared by every pipeline stage. It
// lives in its own package to avoid import cycles between:
//   - extractor
//   - transformer
//   - loader
//   - report
//
// PRICE ARITHMETIC:
//   Prices are exact base-10 decimals (shopspring/decimal), always held at
//   two fractional digits using round-half-up. Binary floating point is never
//   used for prices.
//
// =============================================================================

package types

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// PRICE CONSTANTS
// =============================================================================

// PriceScale is the number of fractional digits every price is held at.
const PriceScale = 2

var (
	// lowCeiling is the inclusive upper bound of the Low range.
	lowCeiling = decimal.NewFromInt(10)

	// mediumCeiling is the inclusive upper bound of the Medium range.
	mediumCeiling = decimal.NewFromInt(100)

	// highCeiling is the inclusive upper bound of the High range.
	// Anything above it is Premium.
	highCeiling = decimal.NewFromInt(500)
)

// =============================================================================
// PRICE RANGE
// =============================================================================

// PriceRange is the categorical bucket derived from a product's final price.
// The zero value means the range has not been computed yet.
type PriceRange string

const (
	PriceRangeLow     PriceRange = "Low"
	PriceRangeMedium  PriceRange = "Medium"
	PriceRangeHigh    PriceRange = "High"
	PriceRangePremium PriceRange = "Premium"
)

// ClassifyPrice returns the price range for a price. Upper boundaries are
// inclusive:
//
//	price <= 10        -> Low
//	10 < price <= 100  -> Medium
//	100 < price <= 500 -> High
//	price > 500        -> Premium
func ClassifyPrice(price decimal.Decimal) PriceRange {
	switch {
	case price.LessThanOrEqual(lowCeiling):
		return PriceRangeLow
	case price.LessThanOrEqual(mediumCeiling):
		return PriceRangeMedium
	case price.LessThanOrEqual(highCeiling):
		return PriceRangeHigh
	default:
		return PriceRangePremium
	}
}

// =============================================================================
// PRICE HELPERS
// =============================================================================

// RoundPrice rounds a price half-up (away from zero) to PriceScale digits.
func RoundPrice(price decimal.Decimal) decimal.Decimal {
	return price.Round(PriceScale)
}

// ParsePrice parses a decimal price and rounds it to PriceScale digits.
//
// PARAMETERS:
//   - s: The price text. Surrounding whitespace must already be trimmed.
//
// RETURNS:
//   - The rounded price.
//   - An error if the text is not a valid decimal number.
func ParsePrice(s string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid price %q: %w", s, err)
	}
	return RoundPrice(price), nil
}

// FormatPrice renders a price with exactly PriceScale fractional digits.
func FormatPrice(price decimal.Decimal) string {
	return price.StringFixed(PriceScale)
}

// =============================================================================
// PRODUCT RECORD
// =============================================================================

// Header is the header line of the input file, in field order.
var Header = []string{"ProductID", "Name", "Price", "Category"}

// OutputHeader is the header line of the output file, in field order.
var OutputHeader = []string{"ProductID", "Name", "Price", "Category", "PriceRange"}

// Product is one product entry flowing through the pipeline.
type Product struct {
	// ID is the trimmed product identifier. It always parses as an integer
	// but is kept as text so it is written back exactly as read.
	ID string

	// Name is the product name. The transformer uppercases it.
	Name string

	// Price is held at PriceScale digits.
	Price decimal.Decimal

	// Category is the product category. The transformer only changes it when
	// an Electronics discount leaves the price above the premium threshold.
	Category string

	// PriceRange is empty until the transformer assigns it.
	PriceRange PriceRange
}

// Fields returns the output fields in file order.
func (p Product) Fields() []string {
	return []string{
		p.ID,
		p.Name,
		FormatPrice(p.Price),
		p.Category,
		string(p.PriceRange),
	}
}

// HasPriceRange reports whether the price range has been assigned.
func (p Product) HasPriceRange() bool {
	return p.PriceRange != ""
}
