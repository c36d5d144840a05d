package chats

import (
	"context"

	"github.com/dmitrijs2005/aichat/internal/server/models"
)

// Repository is the persistence contract for chats. Every method is scoped by
// owner: a chat id belonging to a different user behaves exactly like a
// missing id.
type Repository interface {
	Create(ctx context.Context, chat *models.Chat) (*models.Chat, error)
	ListByOwner(ctx context.Context, userID string) ([]models.ChatSummary, error)
	GetByIDForOwner(ctx context.Context, id, userID string) (*models.Chat, error)
	AppendTurn(ctx context.Context, id, userID string, userMsg, assistantMsg models.Message) (*models.Chat, error)
	UpdateConfig(ctx context.Context, id, userID, systemConfig string) (*models.Chat, error)
	Delete(ctx context.Context, id, userID string) error
	DeleteAllForOwner(ctx context.Context, userID string) (int64, error)
}
