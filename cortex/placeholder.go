package cortex

import (
	"context"
	"fmt"
	"time"
)

// Placeholder is a mock completion provider for development without
// warehouse access.
type Placeholder struct{}

var _ Provider = (*Placeholder)(nil)

func NewPlaceholder() *Placeholder {
	return &Placeholder{}
}

func (p *Placeholder) Name() string {
	return "placeholder"
}

func (p *Placeholder) Complete(ctx context.Context, model, prompt string) (string, error) {
	// Simulate network latency
	select {
	case <-time.After(500 * time.Millisecond):
	case <-ctx.Done():
		return "", ctx.Err()
	}

	return fmt.Sprintf("🤖 [Placeholder — %s]\n\nThis is a canned response. "+
		"Set AVALANCHE_CHAT_PROVIDER=cortex and warehouse credentials to talk to a real model.\n\n"+
		"Prompt received (%d chars).", model, len(prompt)), nil
}
