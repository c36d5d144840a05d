// Package cli is the interactive terminal client: a small REPL over the
// server's HTTP API for registering, logging in and chatting.
package cli

import (
	"bufio"
	"os"

	"github.com/dmitrijs2005/aichat/internal/client/api"
	"github.com/dmitrijs2005/aichat/internal/client/config"
)

type App struct {
	config   *config.Config
	client   *api.Client
	userName string
	reader   *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	return &App{
		config: c,
		client: api.NewClient(c.ServerURL),
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}
