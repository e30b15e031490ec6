package tui

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestBarScaling(t *testing.T) {
	require.Equal(t, "", bar(0, 10, 20))
	require.Equal(t, 20, len([]rune(bar(10, 10, 20))))
	require.Equal(t, 10, len([]rune(bar(5, 10, 20))))
	// Tiny non-zero values still show one block.
	require.Equal(t, 1, len([]rune(bar(0.01, 10, 20))))
	require.Equal(t, "", bar(1, 0, 20))
}

func TestPlural(t *testing.T) {
	require.Equal(t, "", plural(1))
	require.Equal(t, "s", plural(0))
	require.Equal(t, "s", plural(2))
}

func TestTruncateRuneSafe(t *testing.T) {
	require.Equal(t, "héllo", truncate("héllo", 5))
	require.Equal(t, "…", truncate("ab", 1))

	// Multi-byte product names are never cut mid-rune.
	got := truncate("héllò wörld", 6)
	require.Equal(t, "héllò…", got)
	require.Equal(t, 6, len([]rune(got)))
	require.True(t, utf8.ValidString(got))
}

func TestRowRuleWidth(t *testing.T) {
	require.Equal(t, 4, rowRuleWidth([]int{4}))
	require.Equal(t, 4+3+6, rowRuleWidth([]int{4, 6}))
}
