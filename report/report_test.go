package report

import (
	"testing"

	"github.com/stretchr/testify/require"

	"avalanche/warehouse"
)

func reviewsTable() *warehouse.Table {
	return &warehouse.Table{
		Columns: []string{"REVIEW_ID", "PRODUCT", "SENTIMENT_SCORE"},
		Rows: [][]string{
			{"1", "Skis", "0.8"},
			{"2", "Boots", "0.2"},
			{"3", "Skis", "0.6"},
			{"4", "Goggles", "not-a-number"},
			{"5", "", "0.5"},
			{"6", "Boots", ""},
		},
	}
}

func TestDescribe(t *testing.T) {
	caps := Describe(reviewsTable())
	require.True(t, caps.HasProduct)
	require.True(t, caps.HasScore)

	caps = Describe(&warehouse.Table{Columns: []string{"A", "B"}})
	require.False(t, caps.HasProduct)
	require.False(t, caps.HasScore)
}

func TestProductOptions_SortedWithSentinelFirst(t *testing.T) {
	tbl := reviewsTable()
	opts := ProductOptions(tbl, Describe(tbl))
	require.Equal(t, []string{AllProducts, "Boots", "Goggles", "Skis"}, opts)
}

func TestProductOptions_NoProductColumn(t *testing.T) {
	tbl := &warehouse.Table{Columns: []string{"SENTIMENT_SCORE"}}
	opts := ProductOptions(tbl, Describe(tbl))
	require.Equal(t, []string{AllProducts}, opts)
}

func TestFilterByProduct_SentinelIsIdentity(t *testing.T) {
	tbl := reviewsTable()
	got := FilterByProduct(tbl, Describe(tbl), AllProducts)
	require.Equal(t, len(tbl.Rows), len(got.Rows))
	for i := range tbl.Rows {
		require.Equal(t, tbl.Rows[i], got.Rows[i])
	}
}

func TestFilterByProduct_ExactMatch(t *testing.T) {
	tbl := reviewsTable()
	got := FilterByProduct(tbl, Describe(tbl), "Skis")
	require.Len(t, got.Rows, 2)
	require.Equal(t, "1", got.Rows[0][0])
	require.Equal(t, "3", got.Rows[1][0])
}

func TestFilterByProduct_CaseSensitive(t *testing.T) {
	tbl := reviewsTable()
	got := FilterByProduct(tbl, Describe(tbl), "skis")
	require.Empty(t, got.Rows)
}

func TestFilterByProduct_UnknownValue(t *testing.T) {
	tbl := reviewsTable()
	got := FilterByProduct(tbl, Describe(tbl), "Helmet")
	require.Empty(t, got.Rows)
	require.Equal(t, tbl.Columns, got.Columns)
}

func TestParseScore(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"0.5", 0.5, true},
		{" 0.5 ", 0.5, true},
		{"-1.25", -1.25, true},
		{"", 0, false},
		{"n/a", 0, false},
		{"1.2.3", 0, false},
	}
	for _, tc := range cases {
		got, ok := parseScore(tc.in)
		require.Equal(t, tc.ok, ok, "input=%q", tc.in)
		if ok {
			require.InDelta(t, tc.want, got, 1e-9)
		}
	}
}
