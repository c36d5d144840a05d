// Package engine defines the turn-generation boundary. The rest of the
// server only sees TurnEngine; the concrete Gemini client lives behind it and
// is injected at construction time.
package engine

import (
	"context"

	"github.com/dmitrijs2005/aichat/internal/server/models"
)

// DefaultPersona is used when a chat carries no directive of its own.
const DefaultPersona = "You are a helpful AI assistant."

// TurnEngine produces one assistant reply for a new user input, conditioned
// on the full prior history in its original order and an optional directive.
// Implementations must be safe for concurrent use and must honor ctx
// cancellation; a failed call has no side effects visible to this system.
type TurnEngine interface {
	Generate(ctx context.Context, history []models.Message, directive, input string) (string, error)
}
