// Package repomanager wires the database connection, migrations and the
// concrete repositories behind one interface so services stay agnostic of the
// storage backend.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/aichat/internal/server/repositories/chats"
	"github.com/dmitrijs2005/aichat/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	Chats() chats.Repository
}
