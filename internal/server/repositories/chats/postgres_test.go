package chats

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/aichat/internal/common"
	"github.com/dmitrijs2005/aichat/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const (
	selectChatQuery     = `SELECT\s+id,\s*user_id,\s*title,\s*system_config,\s*created_at,\s*updated_at\s+FROM\s+chats`
	selectMessagesQuery = `SELECT\s+id,\s*chat_id,\s*role,\s*content,\s*created_at\s+FROM\s+messages`
)

func expectLoadChat(mock sqlmock.Sqlmock, chatID, userID string, msgs *sqlmock.Rows) {
	chatRows := sqlmock.NewRows([]string{"id", "user_id", "title", "system_config", "created_at", "updated_at"}).
		AddRow(chatID, userID, "New Chat", "", time.Now(), time.Now())
	mock.ExpectQuery(selectChatQuery).WithArgs(chatID, userID).WillReturnRows(chatRows)
	mock.ExpectQuery(selectMessagesQuery).WithArgs(chatID).WillReturnRows(msgs)
}

func messageRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "chat_id", "role", "content", "created_at"})
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+chats\s*\(id,\s*user_id,\s*title,\s*system_config\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+created_at,\s*updated_at\s*$`

	now := time.Now()
	rows := sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now)
	mock.ExpectQuery(q).
		WithArgs("c-1", "u-1", "New Chat", "").
		WillReturnRows(rows)

	chat := &models.Chat{ID: "c-1", UserID: "u-1", Title: "New Chat"}
	got, err := repo.Create(context.Background(), chat)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if !got.CreatedAt.Equal(now) || !got.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected timestamps: %+v", got)
	}
}

func TestListByOwner_OrderPassthrough(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*title,\s*created_at,\s*updated_at\s+FROM\s+chats\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+updated_at\s+DESC\s*$`

	rows := sqlmock.NewRows([]string{"id", "title", "created_at", "updated_at"}).
		AddRow("c-2", "B", time.Now(), time.Now()).
		AddRow("c-1", "A", time.Now(), time.Now())
	mock.ExpectQuery(q).WithArgs("u-1").WillReturnRows(rows)

	got, err := repo.ListByOwner(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "c-2" || got[1].ID != "c-1" {
		t.Fatalf("unexpected summaries: %+v", got)
	}
}

func TestListByOwner_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,\s*title`).WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "created_at", "updated_at"}))

	got, err := repo.ListByOwner(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestGetByIDForOwner_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	msgs := messageRows().
		AddRow(int64(1), "c-1", "user", "Hello", time.Now()).
		AddRow(int64(2), "c-1", "assistant", "Hi there", time.Now())
	expectLoadChat(mock, "c-1", "u-1", msgs)

	got, err := repo.GetByIDForOwner(context.Background(), "c-1", "u-1")
	if err != nil {
		t.Fatalf("GetByIDForOwner error: %v", err)
	}
	if len(got.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(got.Messages))
	}
	if got.Messages[0].Role != models.RoleUser || got.Messages[1].Role != models.RoleAssistant {
		t.Fatalf("unexpected roles: %+v", got.Messages)
	}
}

func TestGetByIDForOwner_WrongOwnerIsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	// The query is owner-scoped, so another user's chat simply yields no row.
	mock.ExpectQuery(selectChatQuery).WithArgs("c-1", "u-other").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByIDForOwner(context.Background(), "c-1", "u-other")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestAppendTurn_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT\s+id\s+FROM\s+chats\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2\s+FOR\s+UPDATE`).
		WithArgs("c-1", "u-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("c-1"))
	mock.ExpectExec(`INSERT\s+INTO\s+messages`).
		WithArgs("c-1", "user", "Hello", now).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT\s+INTO\s+messages`).
		WithArgs("c-1", "assistant", "Hi there", now).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec(`UPDATE\s+chats\s+SET\s+updated_at\s*=\s*now\(\)`).
		WithArgs("c-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	msgs := messageRows().
		AddRow(int64(1), "c-1", "user", "Hello", now).
		AddRow(int64(2), "c-1", "assistant", "Hi there", now)
	expectLoadChat(mock, "c-1", "u-1", msgs)

	mock.ExpectCommit()

	userMsg := models.Message{Role: models.RoleUser, Content: "Hello", CreatedAt: now}
	assistantMsg := models.Message{Role: models.RoleAssistant, Content: "Hi there", CreatedAt: now}

	got, err := repo.AppendTurn(context.Background(), "c-1", "u-1", userMsg, assistantMsg)
	if err != nil {
		t.Fatalf("AppendTurn error: %v", err)
	}
	if len(got.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(got.Messages))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAppendTurn_NotFoundRollsBack(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT\s+id\s+FROM\s+chats.*FOR\s+UPDATE`).
		WithArgs("c-missing", "u-1").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	now := time.Now().UTC()
	_, err := repo.AppendTurn(context.Background(), "c-missing", "u-1",
		models.Message{Role: models.RoleUser, Content: "Hello", CreatedAt: now},
		models.Message{Role: models.RoleAssistant, Content: "Hi", CreatedAt: now})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAppendTurn_InsertFailureRollsBack(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT\s+id\s+FROM\s+chats.*FOR\s+UPDATE`).
		WithArgs("c-1", "u-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("c-1"))
	mock.ExpectExec(`INSERT\s+INTO\s+messages`).
		WillReturnError(errors.New("db down"))
	mock.ExpectRollback()

	now := time.Now().UTC()
	_, err := repo.AppendTurn(context.Background(), "c-1", "u-1",
		models.Message{Role: models.RoleUser, Content: "Hello", CreatedAt: now},
		models.Message{Role: models.RoleAssistant, Content: "Hi", CreatedAt: now})
	if err == nil {
		t.Fatal("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateConfig_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+chats\s+SET\s+system_config`).
		WithArgs("X", "c-1", "u-other").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.UpdateConfig(context.Background(), "c-1", "u-other", "X")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestUpdateConfig_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+chats\s+SET\s+system_config`).
		WithArgs("X", "c-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	expectLoadChat(mock, "c-1", "u-1", messageRows())

	got, err := repo.UpdateConfig(context.Background(), "c-1", "u-1", "X")
	if err != nil {
		t.Fatalf("UpdateConfig error: %v", err)
	}
	if got.ID != "c-1" {
		t.Fatalf("unexpected chat: %+v", got)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+chats\s+WHERE\s+id`).
		WithArgs("c-1", "u-other").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "c-1", "u-other")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+chats\s+WHERE\s+id`).
		WithArgs("c-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "c-1", "u-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestDeleteAllForOwner_Count(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+chats\s+WHERE\s+user_id`).
		WithArgs("u-1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteAllForOwner(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("DeleteAllForOwner error: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 deleted, got %d", n)
	}
}
