package cortex

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"avalanche/config"
	"avalanche/warehouse"
)

func configChat(provider string) config.Chat {
	return config.Chat{Provider: provider}
}

// fakeExecutor records the statement it receives and returns a canned
// result or error.
type fakeExecutor struct {
	gotQuery string
	result   *warehouse.Table
	err      error
}

func (f *fakeExecutor) Run(_ context.Context, query string) (*warehouse.Table, error) {
	f.gotQuery = query
	return f.result, f.err
}

func TestEscapeLiteral(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"it's", "it''s"},
		{"''", "''''"},
		{"a 'b' c", "a ''b'' c"},
		{"", ""},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, EscapeLiteral(tc.in), "input=%q", tc.in)
	}
}

func TestCompleteSQL(t *testing.T) {
	got := CompleteSQL("mistral-large2", "what's the mean?")
	require.Equal(t,
		"SELECT SNOWFLAKE.CORTEX.COMPLETE('mistral-large2', 'what''s the mean?') AS RESP",
		got)
}

func TestCortexComplete_ReturnsFirstCell(t *testing.T) {
	ex := &fakeExecutor{
		result: &warehouse.Table{
			Columns: []string{"RESP"},
			Rows:    [][]string{{"the answer"}, {"ignored"}},
		},
	}
	c := NewCortex(ex)
	got, err := c.Complete(context.Background(), "snowflake-arctic", "question")
	require.NoError(t, err)
	require.Equal(t, "the answer", got)
	require.Equal(t, CompleteSQL("snowflake-arctic", "question"), ex.gotQuery)
}

func TestCortexComplete_ExecutorError(t *testing.T) {
	ex := &fakeExecutor{err: errors.New("quota exceeded")}
	c := NewCortex(ex)
	_, err := c.Complete(context.Background(), "llama3-70b", "q")
	require.Error(t, err)
	require.Contains(t, err.Error(), "quota exceeded")
}

func TestCortexComplete_EmptyResult(t *testing.T) {
	ex := &fakeExecutor{result: &warehouse.Table{Columns: []string{"RESP"}}}
	c := NewCortex(ex)
	_, err := c.Complete(context.Background(), "llama3-70b", "q")
	require.Error(t, err)
}

func TestTableContext(t *testing.T) {
	tbl := &warehouse.Table{
		Columns: []string{"PRODUCT", "SENTIMENT_SCORE"},
		Rows:    [][]string{{"Skis", "0.8"}, {"Boots", "0.2"}},
	}
	got := TableContext(tbl)
	require.Equal(t,
		"Table REVIEWS_WITH_SENTIMENT has columns: PRODUCT, SENTIMENT_SCORE. Total rows: 2.",
		got)
}

func TestBuildPrompt(t *testing.T) {
	got := BuildPrompt("ctx string", "my question")
	require.Contains(t, got, systemPrompt)
	require.Contains(t, got, "Context: ctx string")
	require.Contains(t, got, "User: my question")
	require.True(t, len(got) > 0 && got[len(got)-len("Assistant:"):] == "Assistant:")
}

func TestNewProviderSelection(t *testing.T) {
	ex := &fakeExecutor{}

	p, err := NewProvider(configChat("cortex"), ex)
	require.NoError(t, err)
	require.Equal(t, "cortex", p.Name())

	p, err = NewProvider(configChat(""), ex)
	require.NoError(t, err)
	require.Equal(t, "cortex", p.Name())

	p, err = NewProvider(configChat("placeholder"), ex)
	require.NoError(t, err)
	require.Equal(t, "placeholder", p.Name())

	_, err = NewProvider(configChat("bogus"), ex)
	require.Error(t, err)
}
