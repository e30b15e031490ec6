package cortex

// Prompt construction shared across providers.

import (
	"fmt"
	"strings"

	"avalanche/warehouse"
)

const systemPrompt = `You are a helpful Snowflake data assistant. ` +
	`When asked for metrics, provide a concise Snowflake SQL the user could run. ` +
	`Use the table name REVIEWS_WITH_SENTIMENT and existing column names.`

// TableContext summarizes the full (unfiltered) review table for the
// prompt: column names plus total row count. Kept short on purpose.
func TableContext(t *warehouse.Table) string {
	return fmt.Sprintf("Table REVIEWS_WITH_SENTIMENT has columns: %s. Total rows: %d.",
		strings.Join(t.Columns, ", "), len(t.Rows))
}

// BuildPrompt assembles the per-turn prompt: system instruction, table
// context, and the latest user text. Built fresh every turn, never
// persisted.
func BuildPrompt(tableContext, userText string) string {
	return fmt.Sprintf("%s\n\nContext: %s\n\nUser: %s\nAssistant:",
		systemPrompt, tableContext, userText)
}
