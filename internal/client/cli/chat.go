package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

func (a *App) List(ctx context.Context) {

	chats, err := a.client.ListChats(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	if len(chats) == 0 {
		fmt.Println("No chats yet, use 'new' to start one")
		return
	}

	for _, c := range chats {
		fmt.Printf("%s  %s  (updated %s)\n", c.ID, c.Title, c.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
}

func (a *App) NewChat(ctx context.Context) {

	title, err := GetSimpleText(a.reader, "Enter title (empty for default)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	chat, err := a.client.CreateChat(ctx, title, "")
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	fmt.Printf("Created chat %s (%s)\n", chat.ID, chat.Title)
	a.Open(ctx, chat.ID)
}

// Open enters a per-chat message loop: every non-empty line is sent as a user
// message, the assistant reply is printed. An empty line leaves the chat.
func (a *App) Open(ctx context.Context, chatID string) {

	chat, err := a.client.GetChat(ctx, chatID)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	fmt.Printf("--- %s ---\n", chat.Title)
	for _, m := range chat.Messages {
		fmt.Printf("[%s] %s\n", m.Role, m.Content)
	}
	fmt.Println("(empty line to leave the chat)")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you> ")
		if !scanner.Scan() {
			return
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			return
		}

		reply, err := a.client.SendMessage(ctx, chatID, text)
		if err != nil {
			log.Printf("error: %v", err)
			continue
		}
		fmt.Printf("[%s] %s\n", reply.Role, reply.Content)
	}
}

func (a *App) Configure(ctx context.Context, chatID string) {

	directive, err := GetSimpleText(a.reader, "Enter system configuration (empty for default persona)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	if _, err := a.client.UpdateConfig(ctx, chatID, directive); err != nil {
		log.Printf("error: %v", err)
		return
	}

	fmt.Println("Updated")
}

func (a *App) Delete(ctx context.Context, chatID string) {

	if err := a.client.DeleteChat(ctx, chatID); err != nil {
		log.Printf("error: %v", err)
		return
	}

	fmt.Println("Deleted")
}

func (a *App) Clear(ctx context.Context) {

	deleted, err := a.client.DeleteAllChats(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	fmt.Printf("Deleted %d chats\n", deleted)
}
