package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dmitrijs2005/aichat/internal/server/models"
)

// Wire DTOs. Field names follow the original public API of the service.

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type messageResponse struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type chatResponse struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	SystemConfig string            `json:"systemConfig"`
	Messages     []messageResponse `json:"messages"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

type chatSummaryResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type createChatRequest struct {
	Title        string `json:"title"`
	SystemConfig string `json:"systemConfig"`
}

type sendMessageRequest struct {
	Message string `json:"message"`
}

type updateConfigRequest struct {
	SystemConfig string `json:"systemConfig"`
}

type deleteResponse struct {
	Message string `json:"message"`
}

type deleteAllResponse struct {
	Deleted int64 `json:"deleted"`
}

func toMessageResponse(m models.Message) messageResponse {
	return messageResponse{Role: string(m.Role), Content: m.Content, Timestamp: m.CreatedAt}
}

func toChatResponse(c *models.Chat) chatResponse {
	messages := make([]messageResponse, 0, len(c.Messages))
	for _, m := range c.Messages {
		messages = append(messages, toMessageResponse(m))
	}
	return chatResponse{
		ID:           c.ID,
		Title:        c.Title,
		SystemConfig: c.SystemConfig,
		Messages:     messages,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "validation", "invalid request body")
		return false
	}
	return true
}

func (s *HTTPServer) handleRegister(w http.ResponseWriter, r *http.Request) {

	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, token, err := s.users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	s.logger.Info(r.Context(), "user registered", "username", user.Username)

	writeJSON(w, http.StatusCreated, authResponse{
		Token: token,
		User:  userResponse{ID: user.ID, Username: user.Username, Email: user.Email},
	})
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {

	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		Token: token,
		User:  userResponse{ID: user.ID, Username: user.Username, Email: user.Email},
	})
}

func (s *HTTPServer) handleListChats(w http.ResponseWriter, r *http.Request) {

	summaries, err := s.chats.List(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	result := make([]chatSummaryResponse, 0, len(summaries))
	for _, c := range summaries {
		result = append(result, chatSummaryResponse{
			ID: c.ID, Title: c.Title, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
		})
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *HTTPServer) handleCreateChat(w http.ResponseWriter, r *http.Request) {

	var req createChatRequest
	if !decodeBody(w, r, &req) {
		return
	}

	chat, err := s.chats.Create(r.Context(), userIDFromContext(r.Context()), req.Title, req.SystemConfig)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toChatResponse(chat))
}

func (s *HTTPServer) handleGetChat(w http.ResponseWriter, r *http.Request) {

	chat, err := s.chats.Get(r.Context(), userIDFromContext(r.Context()), r.PathValue("chatID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toChatResponse(chat))
}

func (s *HTTPServer) handleSendMessage(w http.ResponseWriter, r *http.Request) {

	var req sendMessageRequest
	if !decodeBody(w, r, &req) {
		return
	}

	reply, err := s.chats.SendMessage(r.Context(), userIDFromContext(r.Context()), r.PathValue("chatID"), req.Message)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toMessageResponse(*reply))
}

func (s *HTTPServer) handleUpdateConfig(w http.ResponseWriter, r *http.Request) {

	var req updateConfigRequest
	if !decodeBody(w, r, &req) {
		return
	}

	chat, err := s.chats.UpdateConfig(r.Context(), userIDFromContext(r.Context()), r.PathValue("chatID"), req.SystemConfig)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toChatResponse(chat))
}

func (s *HTTPServer) handleDeleteChat(w http.ResponseWriter, r *http.Request) {

	err := s.chats.Delete(r.Context(), userIDFromContext(r.Context()), r.PathValue("chatID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, deleteResponse{Message: "Chat deleted successfully"})
}

func (s *HTTPServer) handleDeleteAllChats(w http.ResponseWriter, r *http.Request) {

	deleted, err := s.chats.DeleteAll(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, deleteAllResponse{Deleted: deleted})
}
