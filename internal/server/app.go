// Package server initializes and runs the chat application server.
// It wires configuration, storage, the turn engine and the HTTP endpoint,
// and handles graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/aichat/internal/logging"
	"github.com/dmitrijs2005/aichat/internal/server/config"
	"github.com/dmitrijs2005/aichat/internal/server/engine"
	"github.com/dmitrijs2005/aichat/internal/server/httpapi"
	"github.com/dmitrijs2005/aichat/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/aichat/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	userService *services.UserService
	chatService *services.ChatService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	rm, err := repomanager.NewPostgresRepositoryManager(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	// The engine is injected as a plain dependency: no process-global client,
	// credentials come from configuration only.
	eng, err := engine.NewGeminiEngine(ctx, c.GeminiAPIKey, c.GeminiModel)
	if err != nil {
		return nil, fmt.Errorf("engine init error: %w", err)
	}

	us := services.NewUserService(rm.Users(), c)
	cs := services.NewChatService(rm.Chats(), eng, c, logger)

	return &App{config: c, logger: logger, userService: us, chatService: cs}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := httpapi.NewHTTPServer(app.config.EndpointAddr, app.logger, app.userService, app.chatService, app.config.SecretKey)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
