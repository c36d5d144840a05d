// Package api is the HTTP client for the chat server. It holds the
// capability token obtained at login and attaches it to every request.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type Chat struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	SystemConfig string    `json:"systemConfig"`
	Messages     []Message `json:"messages"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type ChatSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type apiError struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 90 * time.Second},
	}
}

// SetToken stores the capability token used for authenticated calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var e apiError
		if err := json.NewDecoder(resp.Body).Decode(&e); err == nil && e.Message != "" {
			return fmt.Errorf("%s (%d)", e.Message, resp.StatusCode)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	var result AuthResult
	err := c.do(ctx, http.MethodPost, "/api/auth/register",
		map[string]string{"username": username, "email": email, "password": password}, &result)
	if err != nil {
		return nil, err
	}
	c.token = result.Token
	return &result, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var result AuthResult
	err := c.do(ctx, http.MethodPost, "/api/auth/login",
		map[string]string{"email": email, "password": password}, &result)
	if err != nil {
		return nil, err
	}
	c.token = result.Token
	return &result, nil
}

func (c *Client) ListChats(ctx context.Context) ([]ChatSummary, error) {
	var result []ChatSummary
	if err := c.do(ctx, http.MethodGet, "/api/chats", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) CreateChat(ctx context.Context, title, systemConfig string) (*Chat, error) {
	var result Chat
	err := c.do(ctx, http.MethodPost, "/api/chats",
		map[string]string{"title": title, "systemConfig": systemConfig}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetChat(ctx context.Context, chatID string) (*Chat, error) {
	var result Chat
	if err := c.do(ctx, http.MethodGet, "/api/chats/"+chatID, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) SendMessage(ctx context.Context, chatID, text string) (*Message, error) {
	var result Message
	err := c.do(ctx, http.MethodPost, "/api/chats/"+chatID+"/messages",
		map[string]string{"message": text}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) UpdateConfig(ctx context.Context, chatID, systemConfig string) (*Chat, error) {
	var result Chat
	err := c.do(ctx, http.MethodPatch, "/api/chats/"+chatID+"/config",
		map[string]string{"systemConfig": systemConfig}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) DeleteChat(ctx context.Context, chatID string) error {
	return c.do(ctx, http.MethodDelete, "/api/chats/"+chatID, nil, nil)
}

func (c *Client) DeleteAllChats(ctx context.Context) (int64, error) {
	var result struct {
		Deleted int64 `json:"deleted"`
	}
	if err := c.do(ctx, http.MethodDelete, "/api/chats", nil, &result); err != nil {
		return 0, err
	}
	return result.Deleted, nil
}
