// Package prep derives nursery stock and tomorrow's pack list from the
// caregiver's morning and evening observations. Every function here is pure
// over its inputs; Service only gathers those inputs from the stores.
package prep

import (
	"github.com/shopspring/decimal"

	"nursery-prep-backend/internal/catalog"
)

// Resolver answers required counts with caregiver overrides applied.
type Resolver struct {
	catalog   *catalog.Catalog
	overrides map[string]decimal.Decimal
}

// NewResolver wraps overrides, which may be nil or partial.
func NewResolver(c *catalog.Catalog, overrides map[string]decimal.Decimal) Resolver {
	return Resolver{catalog: c, overrides: overrides}
}

// Required returns the override when it is non-negative, else the catalog default.
func (r Resolver) Required(itemID string) decimal.Decimal {
	if v, ok := r.overrides[itemID]; ok && !v.IsNegative() {
		return v
	}
	if it, ok := r.catalog.Item(itemID); ok {
		return it.Required
	}
	return decimal.Zero
}

// GroupRequired sums the current required counts of a group's members. The
// catalog GroupRequired constant is only the value this yields with no overrides.
func (r Resolver) GroupRequired(groupID string) decimal.Decimal {
	total := decimal.Zero
	for _, it := range r.catalog.Members(groupID) {
		total = total.Add(r.Required(it.ID))
	}
	return total
}
