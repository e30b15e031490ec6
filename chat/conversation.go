// Package chat holds the conversation state for one interactive
// session.
//
// Design decisions:
//   - Conversation is an explicit value owned by the interaction layer
//     and passed around, never ambient global state.
//   - The turn sequence is append-only and order-preserving. There is
//     no clear operation; the conversation lives as long as the session.
//   - A completion failure is resolved into an apologetic assistant
//     turn at this boundary. It never propagates past a chat turn.
package chat

import (
	"fmt"

	"github.com/google/uuid"
)

// Role identifies the author of a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one (role, text) entry in the transcript.
type Turn struct {
	Role Role
	Text string
}

// Phase tracks where the current turn is.
type Phase int

const (
	// Idle: no pending turn.
	Idle Phase = iota
	// UserSubmitted: user text received and appended.
	UserSubmitted
	// AwaitingCompletion: the completion call is in flight. It runs to
	// completion or failure; there is no cancellation.
	AwaitingCompletion
)

// Conversation is the append-only transcript plus the turn phase.
type Conversation struct {
	ID    string
	turns []Turn
	phase Phase
}

// New creates an empty conversation in the Idle phase.
func New() *Conversation {
	return &Conversation{ID: uuid.NewString()}
}

// Phase returns the current turn phase.
func (c *Conversation) Phase() Phase {
	return c.phase
}

// Turns returns the transcript in submission order.
func (c *Conversation) Turns() []Turn {
	return c.turns
}

// Submit appends the user's text and moves to UserSubmitted. Submitting
// while a turn is pending is rejected; the UI blocks input meanwhile.
func (c *Conversation) Submit(text string) error {
	if c.phase != Idle {
		return fmt.Errorf("turn already pending")
	}
	c.turns = append(c.turns, Turn{Role: RoleUser, Text: text})
	c.phase = UserSubmitted
	return nil
}

// BeginCompletion marks the completion call as in flight.
func (c *Conversation) BeginCompletion() {
	if c.phase == UserSubmitted {
		c.phase = AwaitingCompletion
	}
}

// Resolve finishes the pending turn with the completion outcome. A
// failure becomes an apologetic assistant reply embedding the error
// detail. Exactly one assistant turn is appended either way, and the
// conversation returns to Idle.
func (c *Conversation) Resolve(reply string, err error) Turn {
	if err != nil {
		reply = fmt.Sprintf("Sorry, Cortex call failed: %v", err)
	}
	turn := Turn{Role: RoleAssistant, Text: reply}
	c.turns = append(c.turns, turn)
	c.phase = Idle
	return turn
}
