package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"weight-circle-backend/internal/middleware"
	"weight-circle-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// MessageHandler handles group chat HTTP requests
type MessageHandler struct {
	messageService *services.MessageService
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// PostMessageRequest represents the request body for posting a message
type PostMessageRequest struct {
	Body string `json:"body"`
}

// PostMessage handles POST /api/v1/groups/{group_id}/messages
func (h *MessageHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	groupID := chi.URLParam(r, "group_id")

	var req PostMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	message, err := h.messageService.PostMessage(ctx, groupID, userID, req.Body)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("group_id", groupID).Msg("Failed to post message")

		statusCode := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not a member") {
			statusCode = http.StatusForbidden
		} else if strings.Contains(err.Error(), "required") ||
			strings.Contains(err.Error(), "must") {
			statusCode = http.StatusBadRequest
		}
		respondError(w, err.Error(), statusCode)
		return
	}

	respondJSON(w, message, http.StatusOK)
}

// ListMessages handles GET /api/v1/groups/{group_id}/messages
func (h *MessageHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	groupID := chi.URLParam(r, "group_id")

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	messages, total, err := h.messageService.ListMessages(ctx, groupID, userID, limit, offset)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not a member") {
			statusCode = http.StatusForbidden
		}
		respondError(w, err.Error(), statusCode)
		return
	}

	respondJSON(w, map[string]interface{}{
		"messages": messages,
		"total":    total,
	}, http.StatusOK)
}
