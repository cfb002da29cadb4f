package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/kiran3035/healthai-assistant/internal/api"
	"github.com/kiran3035/healthai-assistant/internal/domain"
)

// ConversationEngine answers health questions grounded in the indexed knowledge base.
type ConversationEngine interface {
	Ask(ctx context.Context, message string) string
	AskDetailed(ctx context.Context, message string) *domain.DetailedAnswer
}

// ChatRequest is the inbound payload for both chat endpoints.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the plain chat reply.
type ChatResponse struct {
	Success         bool   `json:"success"`
	Answer          string `json:"answer"`
	MessageReceived string `json:"message_received"`
}

// SourceItem is the wire form of a citation.
type SourceItem struct {
	ContentPreview string `json:"content_preview"`
	Source         string `json:"source"`
}

// DetailedChatResponse includes source attribution alongside the answer.
type DetailedChatResponse struct {
	Success bool         `json:"success"`
	Answer  string       `json:"answer"`
	Sources []SourceItem `json:"sources"`
	Query   string       `json:"query"`
	Error   string       `json:"error,omitempty"`
}

// ChatHandler serves the conversational endpoints.
type ChatHandler struct {
	engine ConversationEngine
}

func NewChatHandler(engine ConversationEngine) *ChatHandler {
	return &ChatHandler{engine: engine}
}

// Chat handles POST /api/chat
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	message, ok := h.decodeMessage(w, r)
	if !ok {
		return
	}

	answer := h.engine.Ask(r.Context(), message)

	api.JSON(w, http.StatusOK, ChatResponse{
		Success:         true,
		Answer:          answer,
		MessageReceived: message,
	})
}

// ChatDetailed handles POST /api/chat/detailed
func (h *ChatHandler) ChatDetailed(w http.ResponseWriter, r *http.Request) {
	message, ok := h.decodeMessage(w, r)
	if !ok {
		return
	}

	detailed := h.engine.AskDetailed(r.Context(), message)

	sources := make([]SourceItem, 0, len(detailed.Sources))
	for _, src := range detailed.Sources {
		sources = append(sources, SourceItem{
			ContentPreview: src.Preview,
			Source:         src.Origin,
		})
	}

	resp := DetailedChatResponse{
		Success: !detailed.Degraded(),
		Answer:  detailed.Answer,
		Sources: sources,
		Query:   detailed.Query,
		Error:   detailed.ErrDetail,
	}

	api.JSON(w, http.StatusOK, resp)
}

// decodeMessage parses and validates the request body. On failure it writes
// the error response and returns ok=false; the engine is never invoked.
func (h *ChatHandler) decodeMessage(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("chat: invalid request body: %v", err)
		api.Error(w, http.StatusBadRequest, "Invalid JSON request body")
		return "", false
	}

	if err := validateMessage(req.Message); err != nil {
		api.HandleError(w, err)
		return "", false
	}

	return req.Message, true
}

func validateMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return domain.ErrEmptyMessage
	}
	if len([]rune(message)) > domain.MaxMessageLength {
		return domain.ErrMessageTooLong
	}
	return nil
}
