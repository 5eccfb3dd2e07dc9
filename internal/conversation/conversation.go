// Package conversation holds the in-memory chat state: the message history,
// the awaiting-response flag and the reveal buffer that replays an answer one
// character at a time.
//
// A Conversation moves through Idle → Submitting → Revealing → Idle. It is not
// safe for concurrent use; the TUI drives it from its single update loop.
package conversation

import (
	"fmt"
	"strings"

	"github.com/diogo/geminichat/internal/models"
)

// State is the lifecycle position of a Conversation
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateRevealing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateRevealing:
		return "revealing"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Conversation is the chat history plus the in-flight response state
type Conversation struct {
	welcome  string
	messages []models.Message
	state    State

	// reveal state, only meaningful in StateRevealing
	full     string
	units    []string
	revealed int
	buffer   strings.Builder

	lastErr error
}

// New creates a conversation whose history starts with an assistant welcome
// message. An empty welcome starts with an empty history.
func New(welcome string) *Conversation {
	c := &Conversation{welcome: welcome}
	c.Reset()
	return c
}

// Reset restores the initial history. It only works while Idle and reports
// whether anything happened.
func (c *Conversation) Reset() bool {
	if c.state != StateIdle {
		return false
	}
	c.messages = c.messages[:0]
	if c.welcome != "" {
		c.messages = append(c.messages, models.NewAssistantMessage(c.welcome))
	}
	c.lastErr = nil
	return true
}

// Submit records a user message and moves to Submitting.
// Whitespace-only input, or a submission while a response is pending or being
// revealed, leaves the state untouched and returns ok=false. The returned
// prompt is the input as typed, to be handed to the generator.
func (c *Conversation) Submit(input string) (prompt string, ok bool) {
	if strings.TrimSpace(input) == "" || c.state != StateIdle {
		return "", false
	}
	c.messages = append(c.messages, models.NewUserMessage(input))
	c.state = StateSubmitting
	c.lastErr = nil
	return input, true
}

// Resolve queues the generator's answer for reveal. Calling it outside
// Submitting is a programming error and is reported, not applied.
func (c *Conversation) Resolve(text string) error {
	if c.state != StateSubmitting {
		return fmt.Errorf("resolve called in %s state", c.state)
	}
	c.full = text
	c.units = Units(text)
	c.revealed = 0
	c.buffer.Reset()
	c.state = StateRevealing
	return nil
}

// Fail records a generator failure and returns to Idle without adding an
// assistant message.
func (c *Conversation) Fail(err error) error {
	if c.state != StateSubmitting {
		return fmt.Errorf("fail called in %s state", c.state)
	}
	c.lastErr = err
	c.state = StateIdle
	return nil
}

// Step appends the next unit of the queued answer to the reveal buffer.
// When the last unit lands, the full answer is committed as one assistant
// message, the buffer is cleared and done is true. Step is a no-op returning
// false outside Revealing.
func (c *Conversation) Step() (done bool) {
	if c.state != StateRevealing {
		return false
	}
	if c.revealed < len(c.units) {
		c.buffer.WriteString(c.units[c.revealed])
		c.revealed++
	}
	if c.revealed < len(c.units) {
		return false
	}

	// the committed text is the original answer, not the rebuilt buffer
	c.messages = append(c.messages, models.NewAssistantMessage(c.full))
	c.full = ""
	c.units = nil
	c.revealed = 0
	c.buffer.Reset()
	c.state = StateIdle
	return true
}

// Messages returns a copy of the committed history
func (c *Conversation) Messages() []models.Message {
	out := make([]models.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of committed messages
func (c *Conversation) Len() int {
	return len(c.messages)
}

// LastAssistant returns the newest committed assistant message
func (c *Conversation) LastAssistant() (models.Message, bool) {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Role == models.RoleAssistant {
			return c.messages[i], true
		}
	}
	return models.Message{}, false
}

// State returns the current lifecycle state
func (c *Conversation) State() State {
	return c.state
}

// Awaiting reports whether a generator call is in flight
func (c *Conversation) Awaiting() bool {
	return c.state == StateSubmitting
}

// Revealing reports whether an answer is being revealed
func (c *Conversation) Revealing() bool {
	return c.state == StateRevealing
}

// Idle reports whether new input is accepted
func (c *Conversation) Idle() bool {
	return c.state == StateIdle
}

// Buffer returns the partially revealed answer
func (c *Conversation) Buffer() string {
	return c.buffer.String()
}

// Progress returns how many units are revealed out of how many queued
func (c *Conversation) Progress() (revealed, total int) {
	return c.revealed, len(c.units)
}

// LastError returns the error from the most recent failed submission
func (c *Conversation) LastError() error {
	return c.lastErr
}
