package models

import "time"

// Chat is a titled, owned, append-only conversation with the assistant.
// UserID is set at creation and never changes. SystemConfig is the optional
// per-chat directive conditioning the turn engine; empty means the engine's
// default persona.
type Chat struct {
	ID           string
	UserID       string
	Title        string
	SystemConfig string
	Messages     []Message
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ChatSummary is the listing projection of a Chat: no messages, no directive.
type ChatSummary struct {
	ID        string
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
