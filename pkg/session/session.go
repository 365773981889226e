// Package session owns the chat session lifecycle: one session at a time,
// an append-only transcript, and a single-in-flight send gate. All network
// work happens outside this package; callers drive the state machine with
// Begin/Resolve pairs around their own HTTP calls.
package session

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"
)

// State is the lifecycle position of the controller's session.
type State int

const (
	// StateNone means no session exists yet (or after a reset).
	StateNone State = iota
	// StateStarting means a start request is in flight.
	StateStarting
	// StateActive means the session accepts sends.
	StateActive
	// StateSending means one send is in flight; further sends are rejected.
	StateSending
	// StateClosed means the session ended; only reset leaves this state.
	StateClosed
	// StateFailed means session start failed; retry or reset leaves it.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateNone:
		return "no-session"
	case StateStarting:
		return "starting"
	case StateActive:
		return "active"
	case StateSending:
		return "sending"
	case StateClosed:
		return "closed"
	case StateFailed:
		return "error"
	default:
		return "unknown"
	}
}

// ChatMessage is one transcript entry. Immutable once appended.
type ChatMessage struct {
	ID        string
	Content   string
	Sender    string
	Timestamp time.Time
	IsBot     bool
	AgentType string
	IsError   bool
}

const base36Digits = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewUserID builds a client-side correlation tag. Not globally unique;
// collision probability is nonzero but acceptable for display purposes.
func NewUserID() string {
	return fmt.Sprintf("user-%d-%s", time.Now().UnixMilli(), randBase36(6))
}

func randBase36(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = base36Digits[rand.IntN(len(base36Digits))]
	}
	return string(b)
}

func messageID(seq int) string {
	return "msg-" + strconv.Itoa(seq)
}
