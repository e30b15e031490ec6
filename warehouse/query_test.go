package warehouse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatValue(t *testing.T) {
	ts := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"text", "text"},
		{[]byte("bytes"), "bytes"},
		{ts, "2024-03-15 09:30:00"},
		{0.82, "0.82"},
		{int64(7), "7"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, formatValue(tc.in))
	}
}

func TestColumnIndexAndColumn(t *testing.T) {
	tbl := &Table{
		Columns: []string{"A", "B"},
		Rows:    [][]string{{"1", "x"}, {"2", "y"}},
	}
	require.Equal(t, 0, tbl.ColumnIndex("A"))
	require.Equal(t, 1, tbl.ColumnIndex("B"))
	require.Equal(t, -1, tbl.ColumnIndex("C"))

	require.Equal(t, []string{"x", "y"}, tbl.Column("B"))
	require.Nil(t, tbl.Column("C"))
}

func TestNormalizeDates(t *testing.T) {
	tbl := &Table{
		Columns: []string{"REVIEW_DATE", "OTHER"},
		Rows: [][]string{
			{"2024-03-15", "keep"},
			{"03/15/2024", "keep"},
			{"2024-03-15 09:30:00", "keep"},
			{"not a date", "keep"},
			{"", "keep"},
		},
	}
	tbl.NormalizeDates("REVIEW_DATE", "SHIPPING_DATE")

	require.Equal(t, "2024-03-15 00:00:00", tbl.Rows[0][0])
	require.Equal(t, "2024-03-15 00:00:00", tbl.Rows[1][0])
	require.Equal(t, "2024-03-15 09:30:00", tbl.Rows[2][0])
	// Unparseable becomes missing, empty stays empty.
	require.Equal(t, "", tbl.Rows[3][0])
	require.Equal(t, "", tbl.Rows[4][0])
	// Untouched column.
	for _, row := range tbl.Rows {
		require.Equal(t, "keep", row[1])
	}
}

func TestScalarResult(t *testing.T) {
	got, err := ScalarResult(&Table{Columns: []string{"RESP"}, Rows: [][]string{{"hi", "extra"}}})
	require.NoError(t, err)
	require.Equal(t, "hi", got)

	_, err = ScalarResult(&Table{Columns: []string{"RESP"}})
	require.Error(t, err)

	_, err = ScalarResult(nil)
	require.Error(t, err)
}

func TestFormatRowCount(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{12345, "12,345"},
		{1234567, "1,234,567"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, FormatRowCount(tc.n), "n=%d", tc.n)
	}
}
