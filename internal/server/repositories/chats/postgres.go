// Package chats provides the PostgreSQL-backed repository for chat
// persistence. Message order within a chat is the insertion order of the
// messages table; rows are never updated or deleted individually.
package chats

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/aichat/internal/common"
	"github.com/dmitrijs2005/aichat/internal/dbx"
	"github.com/dmitrijs2005/aichat/internal/server/models"
)

// PostgresRepository implements chat storage. It holds *sql.DB rather than
// dbx.DBTX because AppendTurn opens its own transaction.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository constructs a repository bound to the given database.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new empty chat row.
func (r *PostgresRepository) Create(ctx context.Context, chat *models.Chat) (*models.Chat, error) {

	query :=
		`INSERT INTO chats (id, user_id, title, system_config)
         VALUES ($1, $2, $3, $4)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		chat.ID, chat.UserID, chat.Title, chat.SystemConfig).Scan(&chat.CreatedAt, &chat.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return chat, nil
}

// ListByOwner returns summaries of the owner's chats, most recently updated
// first. The ordering is part of the API contract, not an implementation
// detail.
func (r *PostgresRepository) ListByOwner(ctx context.Context, userID string) ([]models.ChatSummary, error) {
	query :=
		`SELECT id, title, created_at, updated_at FROM chats
		 WHERE user_id = $1
		 ORDER BY updated_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.ChatSummary{}
	for rows.Next() {
		var item models.ChatSummary
		if err := rows.Scan(&item.ID, &item.Title, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByIDForOwner returns the full chat including its message sequence.
// A chat owned by someone else is reported as common.ErrorNotFound, same as
// a missing id.
func (r *PostgresRepository) GetByIDForOwner(ctx context.Context, id, userID string) (*models.Chat, error) {
	return loadChat(ctx, r.db, id, userID)
}

// AppendTurn atomically appends the {user, assistant} message pair and bumps
// updated_at. The SELECT ... FOR UPDATE row lock is the per-chat
// serialization point: concurrent appends to the same chat queue up here and
// each observes a consistent prior history. Returns the updated chat.
func (r *PostgresRepository) AppendTurn(ctx context.Context, id, userID string, userMsg, assistantMsg models.Message) (*models.Chat, error) {

	var chat *models.Chat

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {

		var locked string
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM chats WHERE id = $1 AND user_id = $2 FOR UPDATE`,
			id, userID).Scan(&locked)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return common.ErrorNotFound
			}
			return fmt.Errorf("db error: %w", err)
		}

		insert := `INSERT INTO messages (chat_id, role, content, created_at) VALUES ($1, $2, $3, $4)`
		for _, m := range []models.Message{userMsg, assistantMsg} {
			if !m.Role.Valid() {
				return fmt.Errorf("%w: unknown role %q", common.ErrorValidation, m.Role)
			}
			if _, err := tx.ExecContext(ctx, insert, id, string(m.Role), m.Content, m.CreatedAt); err != nil {
				return fmt.Errorf("db error: %w", err)
			}
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE chats SET updated_at = now() WHERE id = $1`, id); err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		chat, err = loadChat(ctx, tx, id, userID)
		return err
	})

	if err != nil {
		return nil, err
	}

	return chat, nil
}

// UpdateConfig replaces the chat's directive text and bumps updated_at.
func (r *PostgresRepository) UpdateConfig(ctx context.Context, id, userID, systemConfig string) (*models.Chat, error) {

	query :=
		`UPDATE chats SET system_config = $1, updated_at = now()
		 WHERE id = $2 AND user_id = $3
		 `

	res, err := r.db.ExecContext(ctx, query, systemConfig, id, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return nil, common.ErrorNotFound
	}

	return loadChat(ctx, r.db, id, userID)
}

// Delete removes the chat and, via ON DELETE CASCADE, its messages.
func (r *PostgresRepository) Delete(ctx context.Context, id, userID string) error {

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM chats WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

// DeleteAllForOwner removes every chat belonging to userID and reports how
// many were deleted.
func (r *PostgresRepository) DeleteAllForOwner(ctx context.Context, userID string) (int64, error) {

	res, err := r.db.ExecContext(ctx, `DELETE FROM chats WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}

	return n, nil
}

// loadChat reads one chat row plus its ordered messages through q, which may
// be the pool or an open transaction.
func loadChat(ctx context.Context, q dbx.DBTX, id, userID string) (*models.Chat, error) {

	chat := &models.Chat{}
	err := q.QueryRowContext(ctx,
		`SELECT id, user_id, title, system_config, created_at, updated_at FROM chats
		 WHERE id = $1 AND user_id = $2`,
		id, userID).Scan(
		&chat.ID, &chat.UserID, &chat.Title, &chat.SystemConfig, &chat.CreatedAt, &chat.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	rows, err := q.QueryContext(ctx,
		`SELECT id, chat_id, role, content, created_at FROM messages
		 WHERE chat_id = $1
		 ORDER BY id`,
		id)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	chat.Messages = []models.Message{}
	for rows.Next() {
		var m models.Message
		var role string
		if err := rows.Scan(&m.ID, &m.ChatID, &role, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.Role = models.Role(role)
		chat.Messages = append(chat.Messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return chat, nil
}
