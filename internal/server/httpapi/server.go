// Package httpapi exposes the chat service over HTTP+JSON. Routing uses the
// method-pattern mux from the standard library; authentication is a Bearer
// token checked by middleware before any handler logic runs.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/aichat/internal/logging"
	"github.com/dmitrijs2005/aichat/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type HTTPServer struct {
	address   string
	users     *services.UserService
	chats     *services.ChatService
	logger    logging.Logger
	jwtSecret []byte
}

func NewHTTPServer(a string, l logging.Logger, us *services.UserService, cs *services.ChatService, secretKey string) (*HTTPServer, error) {
	return &HTTPServer{
		address:   a,
		logger:    l.With("module", "http_server"),
		users:     us,
		chats:     cs,
		jwtSecret: []byte(secretKey),
	}, nil
}

// Handler builds the full route table. Exported so tests can drive the API
// through httptest without opening a socket.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)

	mux.Handle("GET /api/chats", s.withAuth(s.handleListChats))
	mux.Handle("POST /api/chats", s.withAuth(s.handleCreateChat))
	mux.Handle("DELETE /api/chats", s.withAuth(s.handleDeleteAllChats))
	mux.Handle("GET /api/chats/{chatID}", s.withAuth(s.handleGetChat))
	mux.Handle("DELETE /api/chats/{chatID}", s.withAuth(s.handleDeleteChat))
	mux.Handle("POST /api/chats/{chatID}/messages", s.withAuth(s.handleSendMessage))
	mux.Handle("PATCH /api/chats/{chatID}/config", s.withAuth(s.handleUpdateConfig))

	return s.logRequests(mux)
}

func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
