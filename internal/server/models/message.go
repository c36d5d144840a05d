package models

import "time"

// Role tags a message author. It is a closed two-variant set; anything else
// is an invalid state and is rejected at the storage boundary.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Message is one entry in a chat's append-only sequence. ID is assigned by
// the store and is strictly increasing within a chat, which is what defines
// message order.
type Message struct {
	ID        int64
	ChatID    string
	Role      Role
	Content   string
	CreatedAt time.Time
}
