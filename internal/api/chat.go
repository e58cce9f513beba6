package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ashureev/simple-agent/internal/domain"
	"github.com/ashureev/simple-agent/internal/responder"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// defaultMaxRequestBodySize is the default maximum allowed request body size (1MB).
const defaultMaxRequestBodySize = 1 << 20 // 1MB

// ChatPath is the route of the chat endpoint.
const ChatPath = "/api/chat"

const (
	errMethodNotAllowed = "Method not allowed"
	errMessageRequired  = "Message is required"
)

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message string           `json:"message"`
	History []domain.Message `json:"history,omitempty"`
}

// ChatResponse is the success payload of POST /api/chat.
type ChatResponse struct {
	Response string `json:"response"`
}

// Responder produces a reply for a chat message.
type Responder interface {
	RespondWithCategory(message string, history []domain.Message) (string, responder.Category)
}

// ChatHandler serves the single chat endpoint.
type ChatHandler struct {
	responder   Responder
	maxBodySize int64
}

// NewChatHandler creates a chat handler. A non-positive maxBodySize selects the 1MB default.
func NewChatHandler(resp Responder, maxBodySize int64) *ChatHandler {
	if maxBodySize <= 0 {
		maxBodySize = defaultMaxRequestBodySize
	}
	return &ChatHandler{
		responder:   resp,
		maxBodySize: maxBodySize,
	}
}

// ServeHTTP handles /api/chat. Only POST is accepted.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		Error(w, http.StatusMethodNotAllowed, errMethodNotAllowed)
		return
	}

	reqID := chiMiddleware.GetReqID(r.Context())
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !historyOnlyError(err) {
		slog.Debug("Chat request body rejected", "request_id", reqID, "reason", bodyErrorReason(err), "error", err)
		req.Message = ""
	}

	if req.Message == "" {
		Error(w, http.StatusBadRequest, errMessageRequired)
		return
	}

	reply, category := h.responder.RespondWithCategory(req.Message, req.History)

	slog.Info("Chat request",
		"request_id", reqID,
		"category", category,
		"message_length", len(req.Message),
		"history_length", len(req.History),
	)

	JSON(w, http.StatusOK, ChatResponse{Response: reply})
}

// historyOnlyError reports whether err is a type mismatch confined to the
// history field. History never affects the reply, so a malformed one is not
// worth rejecting the message over.
func historyOnlyError(err error) bool {
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		return false
	}
	return typeErr.Field == "history" || strings.HasPrefix(typeErr.Field, "history.")
}

// bodyErrorReason classifies a decode failure for logging. The client sees the
// same 400 either way.
func bodyErrorReason(err error) string {
	var maxErr *http.MaxBytesError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &maxErr):
		return "body_too_large"
	case errors.As(err, &typeErr):
		return "wrong_type"
	default:
		return "invalid_json"
	}
}

// RegisterRoutes mounts the chat endpoint. Every method is routed here so the
// handler can answer non-POST requests with its own JSON 405.
func (h *ChatHandler) RegisterRoutes(r chi.Router) {
	r.Handle(ChatPath, h)
}
