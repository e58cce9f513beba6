// Package domain contains core domain types for the chat service.
package domain

// Role identifies the author of a transcript message.
type Role string

const (
	// RoleUser marks a message typed by the person chatting.
	RoleUser Role = "user"
	// RoleAssistant marks a reply produced by the responder.
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Message is a single transcript entry. The transcript is owned by the client;
// the server only ever sees it as an optional request field.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Valid returns true if the message carries a known role.
func (m Message) Valid() bool {
	return m.Role.Valid()
}
