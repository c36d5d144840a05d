package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/aichat/internal/common"
	"github.com/dmitrijs2005/aichat/internal/logging"
	"github.com/dmitrijs2005/aichat/internal/server/config"
	"github.com/dmitrijs2005/aichat/internal/server/engine"
	"github.com/dmitrijs2005/aichat/internal/server/models"
	"github.com/dmitrijs2005/aichat/internal/server/repositories/chats"
	"github.com/google/uuid"
)

const defaultChatTitle = "New Chat"

type ChatService struct {
	repo          chats.Repository
	engine        engine.TurnEngine
	engineTimeout time.Duration
	logger        logging.Logger
}

func NewChatService(repo chats.Repository, eng engine.TurnEngine, cfg *config.Config, logger logging.Logger) *ChatService {
	return &ChatService{
		repo:          repo,
		engine:        eng,
		engineTimeout: cfg.EngineTimeout,
		logger:        logger,
	}
}

// Create starts a new empty chat for userID. An empty title falls back to
// "New Chat"; an empty systemConfig means the engine's default persona.
func (s *ChatService) Create(ctx context.Context, userID, title, systemConfig string) (*models.Chat, error) {

	if title == "" {
		title = defaultChatTitle
	}

	chat := &models.Chat{
		ID:           uuid.NewString(),
		UserID:       userID,
		Title:        title,
		SystemConfig: systemConfig,
		Messages:     []models.Message{},
	}

	chat, err := s.repo.Create(ctx, chat)
	if err != nil {
		return nil, fmt.Errorf("error creating chat: %w", err)
	}

	return chat, nil
}

// List returns summaries of the caller's chats, most recently updated first.
func (s *ChatService) List(ctx context.Context, userID string) ([]models.ChatSummary, error) {
	return s.repo.ListByOwner(ctx, userID)
}

// Get returns the caller's chat including its full message history.
func (s *ChatService) Get(ctx context.Context, userID, chatID string) (*models.Chat, error) {
	return s.repo.GetByIDForOwner(ctx, chatID, userID)
}

// SendMessage runs one full turn: authorize and snapshot the history, ask the
// engine for a reply, then durably append the {user, assistant} pair as a
// unit. On engine failure nothing is persisted, so the caller can resubmit
// the same input safely. On store failure after a successful generation the
// reply is lost and the error is retryable; there is no compensating write.
// Returns the assistant message.
func (s *ChatService) SendMessage(ctx context.Context, userID, chatID, text string) (*models.Message, error) {

	if text == "" {
		return nil, fmt.Errorf("%w: message text is required", common.ErrorValidation)
	}

	// Authorization and the history snapshot are the same read: the engine
	// is conditioned on exactly the history that existed at this point.
	chat, err := s.repo.GetByIDForOwner(ctx, chatID, userID)
	if err != nil {
		return nil, err
	}

	genCtx, cancel := context.WithTimeout(ctx, s.engineTimeout)
	defer cancel()

	reply, err := s.engine.Generate(genCtx, chat.Messages, chat.SystemConfig, text)
	if err != nil {
		s.logger.Error(ctx, "turn generation failed", "chat_id", chatID, "error", err)
		if errors.Is(err, common.ErrorEngine) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorEngine, err)
	}

	now := time.Now().UTC()
	userMsg := models.Message{Role: models.RoleUser, Content: text, CreatedAt: now}
	assistantMsg := models.Message{Role: models.RoleAssistant, Content: reply, CreatedAt: now}

	updated, err := s.repo.AppendTurn(ctx, chatID, userID, userMsg, assistantMsg)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// Chat deleted between the snapshot and the append.
			return nil, err
		}
		s.logger.Error(ctx, "turn append failed, generated reply discarded", "chat_id", chatID, "error", err)
		return nil, fmt.Errorf("error storing turn: %w", err)
	}

	last := updated.Messages[len(updated.Messages)-1]
	return &last, nil
}

// UpdateConfig replaces the chat's directive text.
func (s *ChatService) UpdateConfig(ctx context.Context, userID, chatID, systemConfig string) (*models.Chat, error) {
	return s.repo.UpdateConfig(ctx, chatID, userID, systemConfig)
}

// Delete removes a single chat.
func (s *ChatService) Delete(ctx context.Context, userID, chatID string) error {
	return s.repo.Delete(ctx, chatID, userID)
}

// DeleteAll removes every chat owned by the caller and reports the count.
func (s *ChatService) DeleteAll(ctx context.Context, userID string) (int64, error) {
	return s.repo.DeleteAllForOwner(ctx, userID)
}
