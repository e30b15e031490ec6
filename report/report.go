// Package report derives dashboard summaries from the loaded review
// table: mean sentiment per product, a product-filtered view, and a
// score histogram.
//
// Design decisions:
//   - Column presence is probed exactly once after load, yielding a
//     Capabilities value every derivation consults. The pipeline never
//     re-checks membership.
//   - Missing or non-numeric scores are excluded from aggregates, never
//     counted as zero.
//   - Each derivation returns a notice string instead of failing when
//     the table cannot support it.
package report

import (
	"sort"
	"strconv"
	"strings"

	"avalanche/warehouse"
)

// Recognized columns. Neither is required to exist.
const (
	ColProduct = "PRODUCT"
	ColScore   = "SENTIMENT_SCORE"
)

// AllProducts is the sentinel filter value meaning no filtering.
const AllProducts = "All Products"

// Capabilities records which recognized columns the loaded table has.
type Capabilities struct {
	HasProduct bool
	HasScore   bool
}

// Describe probes the table once for the recognized columns.
func Describe(t *warehouse.Table) Capabilities {
	return Capabilities{
		HasProduct: t.ColumnIndex(ColProduct) >= 0,
		HasScore:   t.ColumnIndex(ColScore) >= 0,
	}
}

// parseScore coerces one cell to a numeric score. Missing cells and
// values that do not parse report ok=false and are excluded upstream.
func parseScore(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ProductOptions returns the selector options: the AllProducts sentinel
// followed by the sorted distinct non-missing product values.
func ProductOptions(t *warehouse.Table, caps Capabilities) []string {
	opts := []string{AllProducts}
	if !caps.HasProduct {
		return opts
	}
	seen := make(map[string]bool)
	for _, v := range t.Column(ColProduct) {
		if v != "" && !seen[v] {
			seen[v] = true
			opts = append(opts, v)
		}
	}
	sort.Strings(opts[1:])
	return opts
}

// FilterByProduct returns the subset of rows whose product equals the
// selection exactly (case-sensitive). The sentinel returns the table
// unchanged; a table without a product column is always unchanged.
func FilterByProduct(t *warehouse.Table, caps Capabilities, product string) *warehouse.Table {
	if product == AllProducts || !caps.HasProduct {
		return t
	}
	idx := t.ColumnIndex(ColProduct)
	out := &warehouse.Table{Columns: t.Columns}
	for _, row := range t.Rows {
		if row[idx] == product {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}
