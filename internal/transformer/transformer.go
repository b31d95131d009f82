// =============================================================================
// Product ETL - Transformation Engine
// =============================================================================
//
// This module applies the business rules to validated product records. It
// never rejects a record: all validation happens in the extractor.
//
// DEFAULT RULE CHAIN (applied in order):
//   1. UppercaseName      - name to upper case (locale-invariant)
//   2. ElectronicsDiscount - Electronics price x 0.9, rounded half-up to 2
//                            digits; above 500 the category becomes
//                            "Premium Electronics"
//   3. AssignPriceRange   - bucket the final price into Low/Medium/High/Premium
//
// The price range is always computed last so it reflects the discounted price.
//
// =============================================================================

package transformer

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/product-etl/internal/types"
)

// =============================================================================
// BUSINESS CONSTANTS
// =============================================================================

const (
	// ElectronicsCategory is the only category that receives a discount.
	ElectronicsCategory = "Electronics"

	// PremiumElectronicsCategory replaces ElectronicsCategory when the
	// discounted price exceeds the premium threshold.
	PremiumElectronicsCategory = "Premium Electronics"
)

var (
	// electronicsDiscount is the multiplier applied to Electronics prices.
	electronicsDiscount = decimal.RequireFromString("0.9")

	// premiumThreshold is exclusive: only prices strictly above it are premium.
	premiumThreshold = decimal.NewFromInt(500)
)

// =============================================================================
// RULES
// =============================================================================

// Rule transforms a single product in place.
type Rule func(p *types.Product)

// UppercaseName converts the product name to upper case.
func UppercaseName(p *types.Product) {
	p.Name = strings.ToUpper(p.Name)
}

// ElectronicsDiscount takes 10% off Electronics prices and reclassifies the
// product as Premium Electronics when the discounted price is above 500.
// Other categories are left untouched.
func ElectronicsDiscount(p *types.Product) {
	if p.Category != ElectronicsCategory {
		return
	}

	p.Price = types.RoundPrice(p.Price.Mul(electronicsDiscount))

	if p.Price.GreaterThan(premiumThreshold) {
		p.Category = PremiumElectronicsCategory
	}
}

// AssignPriceRange sets the price range from the current price.
func AssignPriceRange(p *types.Product) {
	p.PriceRange = types.ClassifyPrice(p.Price)
}

// DefaultRules returns the fixed rule chain in application order.
func DefaultRules() []Rule {
	return []Rule{
		UppercaseName,
		ElectronicsDiscount,
		AssignPriceRange,
	}
}

// =============================================================================
// TRANSFORMER
// =============================================================================

// Transformer applies a rule chain to product records.
type Transformer struct {
	rules           []Rule
	rowsTransformed int
}

// New creates a Transformer with the default rule chain.
func New() *Transformer {
	return NewWithRules(DefaultRules()...)
}

// NewWithRules creates a Transformer with a custom rule chain.
func NewWithRules(rules ...Rule) *Transformer {
	return &Transformer{rules: rules}
}

// RowsTransformed returns the number of records this Transformer has
// transformed.
func (t *Transformer) RowsTransformed() int {
	return t.rowsTransformed
}

// Transform applies the rule chain to every product.
//
// PARAMETERS:
//   - products: Validated records from the extractor.
//
// RETURNS:
//   - The transformed records, one per input, in input order. The input
//     slice is not modified.
func (t *Transformer) Transform(products []types.Product) []types.Product {
	transformed := make([]types.Product, 0, len(products))

	for _, product := range products {
		for _, rule := range t.rules {
			rule(&product)
		}
		transformed = append(transformed, product)
		t.rowsTransformed++
	}

	return transformed
}
