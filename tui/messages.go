// messages.go defines Bubble Tea messages used for async communication.
//
// Data loads and completion calls send results back to the TUI via
// these message types. Each user interaction produces exactly one
// message; nothing is retried.
package tui

import (
	"avalanche/warehouse"
)

// ReviewsLoadedMsg is sent when the fixed review SELECT completes.
// The App forwards it to every view so the whole page recomputes.
type ReviewsLoadedMsg struct {
	Table *warehouse.Table
	Err   error
}

// ChatTurnMsg is sent when a chat turn finishes. Table carries the
// reload done as part of the turn's page recomputation; it is nil when
// that reload failed.
type ChatTurnMsg struct {
	Table *warehouse.Table
	Reply string
	Err   error
}

// StatusMsg is a transient status message for the status bar.
type StatusMsg string
