package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s) ", a.userName)
}

// Root runs the top-level REPL. Unknown commands are reported back to the
// user; the loop exits on scanner EOF or when the user types "exit" or
// "quit". Command handlers print their own errors.
func (a *App) Root(ctx context.Context) {

	fmt.Println("Welcome to the chat CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("chat %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: (l)ist, new, open <id>, config <id>, delete <id>, clear, exit")
			} else {
				fmt.Println("Available commands: register, login, exit")
			}

		case "register":
			a.Register(ctx)
		case "login":
			a.Login(ctx)
		case "l", "list":
			a.List(ctx)
		case "new":
			a.NewChat(ctx)
		case "open":
			if len(args) == 0 {
				fmt.Println("Usage: open <id>")
				continue
			}
			a.Open(ctx, args[0])
		case "config":
			if len(args) == 0 {
				fmt.Println("Usage: config <id>")
				continue
			}
			a.Configure(ctx, args[0])
		case "delete":
			if len(args) == 0 {
				fmt.Println("Usage: delete <id>")
				continue
			}
			a.Delete(ctx, args[0])
		case "clear":
			a.Clear(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}
