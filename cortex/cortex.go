package cortex

import (
	"context"
	"fmt"
	"strings"

	"avalanche/warehouse"
)

// Cortex implements Provider by calling SNOWFLAKE.CORTEX.COMPLETE
// through the query executor. The model backend itself is opaque: the
// warehouse runs the completion and returns one row with one column.
type Cortex struct {
	ex warehouse.Executor
}

var _ Provider = (*Cortex)(nil)

// NewCortex creates the warehouse-side completion provider.
func NewCortex(ex warehouse.Executor) *Cortex {
	return &Cortex{ex: ex}
}

func (c *Cortex) Name() string {
	return "cortex"
}

// Complete builds the single-statement completion call and extracts the
// scalar response. One attempt, no retry.
func (c *Cortex) Complete(ctx context.Context, model, prompt string) (string, error) {
	query := CompleteSQL(model, prompt)

	LogRequest("Complete", c.Name(), map[string]string{
		"Model":  model,
		"Prompt": prompt,
	})
	t, err := c.ex.Run(ctx, query)
	if err != nil {
		LogResponse("Complete", "", err)
		return "", fmt.Errorf("cortex complete: %w", err)
	}

	resp, err := warehouse.ScalarResult(t)
	LogResponse("Complete", resp, err)
	if err != nil {
		return "", fmt.Errorf("cortex complete: empty result: %w", err)
	}
	return resp, nil
}

// EscapeLiteral doubles every single quote so text can be embedded in a
// single-quoted SQL literal. Nothing else is altered.
func EscapeLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// CompleteSQL renders the completion statement for a model and prompt.
// The prompt is escaped here; the model name comes from the fixed
// selector set and is embedded as-is.
func CompleteSQL(model, prompt string) string {
	return fmt.Sprintf("SELECT SNOWFLAKE.CORTEX.COMPLETE('%s', '%s') AS RESP",
		model, EscapeLiteral(prompt))
}
