// query.go implements SQL execution against the warehouse session.
//
// All functions accept a context and return structured results that the
// TUI layer can render. Errors are returned, never logged or printed.
package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ReviewsQuery is the fixed statement that loads the review table.
const ReviewsQuery = "SELECT * FROM REVIEWS_WITH_SENTIMENT"

// Table holds all rows of a query result materialized into memory.
// Cell values are rendered to strings; an empty string marks a missing
// (NULL) value. No schema is enforced: consumers must probe Columns.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Executor runs a literal SQL statement and materializes the result.
// No escaping or parameter binding happens here; callers embedding text
// in a statement escape it themselves.
type Executor interface {
	Run(ctx context.Context, query string) (*Table, error)
}

// Run executes a single statement with a single attempt, no retry.
func (s *Session) Run(ctx context.Context, query string) (*Table, error) {
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	t := &Table{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = formatValue(v)
		}
		t.Rows = append(t.Rows, row)
	}
	return t, rows.Err()
}

// LoadReviews runs the fixed review SELECT and normalizes date columns.
func LoadReviews(ctx context.Context, ex Executor) (*Table, error) {
	t, err := ex.Run(ctx, ReviewsQuery)
	if err != nil {
		return nil, err
	}
	t.NormalizeDates("REVIEW_DATE", "SHIPPING_DATE")
	return t, nil
}

// formatValue renders one result cell. NULL becomes the empty string,
// which downstream aggregation treats as missing.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(x)
	case string:
		return x
	case time.Time:
		return x.Format("2006-01-02 15:04:05")
	case float64:
		// %g keeps scores compact ("0.82", not "0.820000")
		return fmt.Sprintf("%g", x)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// ColumnIndex returns the position of a column, or -1 when absent.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns all values of one column in row order. Absent columns
// yield nil.
func (t *Table) Column(name string) []string {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out
}

// dateLayouts are the accepted input formats for date normalization.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
	"01/02/2006",
}

// NormalizeDates parses the named columns as timestamps where present.
// Values that parse are rewritten in a canonical layout; values that do
// not become missing, mirroring a best-effort date coercion.
func (t *Table) NormalizeDates(names ...string) {
	for _, name := range names {
		idx := t.ColumnIndex(name)
		if idx < 0 {
			continue
		}
		for _, row := range t.Rows {
			if row[idx] == "" {
				continue
			}
			row[idx] = normalizeDate(row[idx])
		}
	}
}

func normalizeDate(s string) string {
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.Format("2006-01-02 15:04:05")
		}
	}
	return ""
}

// ScalarResult extracts the first cell of the first row, the shape a
// single-value call like a completion function returns.
func ScalarResult(t *Table) (string, error) {
	if t == nil || len(t.Rows) == 0 || len(t.Rows[0]) == 0 {
		return "", sql.ErrNoRows
	}
	return t.Rows[0][0], nil
}

// FormatRowCount formats a row count with thousands grouping for the
// load caption (e.g. "12,345").
func FormatRowCount(n int) string {
	if n < 0 {
		return "-" + FormatRowCount(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return FormatRowCount(n/1000) + fmt.Sprintf(",%03d", n%1000)
}
