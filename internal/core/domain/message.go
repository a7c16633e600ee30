package domain

import "time"

// Role identifies who produced a transcript message.
type Role string

// Available message roles.
const (
	// RoleUser is a message typed by the user.
	RoleUser Role = "user"

	// RoleBot is an answer returned by the backend.
	RoleBot Role = "bot"

	// RoleError is a failure surfaced into the transcript.
	RoleError Role = "error"
)

// IsValid returns true if the role is recognised.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleBot, RoleError:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (r Role) String() string {
	return string(r)
}

// Message is one entry in the conversation transcript.
// Messages live only for the session; they are never persisted.
type Message struct {
	// ID is a session-local identifier. IDs increase monotonically
	// within one conversation but are not unique across sessions.
	ID int

	// Role identifies the producer of the message.
	Role Role

	// Text is the display text.
	Text string

	// Timestamp is when the message was appended.
	Timestamp time.Time

	// Model is the backend model that produced a bot message.
	// Empty for user and error messages.
	Model string
}

// IsUser returns true for user-authored messages.
func (m Message) IsUser() bool {
	return m.Role == RoleUser
}

// IsError returns true for error messages.
func (m Message) IsError() bool {
	return m.Role == RoleError
}
