// Package cortex bridges chat questions to the warehouse's hosted
// text-completion function.
//
// Design decisions:
//   - Provider is an interface so the TUI can swap the warehouse-side
//     completion for an offline placeholder without changing chat code.
//   - All methods accept context. A call is attempted exactly once;
//     retries and error-to-reply conversion belong to the chat layer.
package cortex

import (
	"context"
	"fmt"

	"avalanche/config"
	"avalanche/warehouse"
)

// Models is the fixed set of completion models the selector offers.
// Anything else is rejected upstream by the selector, not validated here.
var Models = []string{"mistral-large2", "snowflake-arctic", "llama3-70b"}

// Provider is the interface all completion backends implement.
type Provider interface {
	// Complete sends one prompt to the named model and returns the
	// response text.
	Complete(ctx context.Context, model, prompt string) (string, error)

	// Name returns the provider name for display.
	Name() string
}

// NewProvider creates a completion provider from the application config.
func NewProvider(cfg config.Chat, ex warehouse.Executor) (Provider, error) {
	switch cfg.Provider {
	case "cortex", "":
		return NewCortex(ex), nil
	case "placeholder":
		return NewPlaceholder(), nil
	default:
		return nil, fmt.Errorf("unknown chat provider %q. Supported: cortex, placeholder", cfg.Provider)
	}
}
