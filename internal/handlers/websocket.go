package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"weight-circle-backend/internal/services"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Mobile clients connect from app webviews
	},
}

// WebSocketHandler handles WebSocket connections
type WebSocketHandler struct {
	hub            *services.WSHub
	profileService *services.ProfileService
	groupService   *services.GroupService
	messageService *services.MessageService
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(
	hub *services.WSHub,
	profileService *services.ProfileService,
	groupService *services.GroupService,
	messageService *services.MessageService,
) *WebSocketHandler {
	return &WebSocketHandler{
		hub:            hub,
		profileService: profileService,
		groupService:   groupService,
		messageService: messageService,
	}
}

// HandleWebSocket handles WebSocket connections
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	// Get token from query parameter
	token := r.URL.Query().Get("token")
	if token == "" {
		respondError(w, "token required", http.StatusUnauthorized)
		return
	}

	userID, err := h.profileService.ValidateJWT(token)
	if err != nil {
		respondError(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}
	defer conn.Close()

	h.hub.Register(userID, conn)
	defer h.hub.Unregister(userID)

	// Tell the client which groups it will receive events for.
	ctx := r.Context()
	groups, err := h.groupService.ListGroups(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list groups for websocket hello")
	} else {
		groupIDs := make([]string, 0, len(groups))
		for _, g := range groups {
			groupIDs = append(groupIDs, g.ID)
		}
		helloMsg := services.WSMessage{
			Type: "subscribed",
			Data: map[string]interface{}{"group_ids": groupIDs},
		}
		if err := h.hub.SendToUser(userID, helloMsg); err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("Failed to send subscribed message")
		}
	}

	log.Info().Str("user_id", userID).Msg("WebSocket connection established")

	// Handle messages
	for {
		_, messageBytes, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Str("user_id", userID).Msg("WebSocket error")
			}
			break
		}

		var msg services.WSMessage
		if err := json.Unmarshal(messageBytes, &msg); err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("Failed to parse WebSocket message")
			h.sendError(conn, "Invalid message format")
			continue
		}

		if err := h.handleMessage(ctx, userID, msg); err != nil {
			log.Error().Err(err).Str("user_id", userID).Str("type", msg.Type).Msg("Failed to handle message")
			h.sendError(conn, err.Error())
		}
	}
}

// handleMessage processes incoming WebSocket messages
func (h *WebSocketHandler) handleMessage(ctx context.Context, userID string, msg services.WSMessage) error {
	switch msg.Type {
	case "post_message":
		return h.handlePostMessage(ctx, userID, msg)
	default:
		return h.sendErrorToUser(userID, "Unknown message type")
	}
}

// handlePostMessage lets a connected client post chat without a round trip
// through the HTTP endpoint. The stored message is fanned out to the group
// by the message service.
func (h *WebSocketHandler) handlePostMessage(ctx context.Context, userID string, msg services.WSMessage) error {
	if msg.GroupID == "" || msg.Message == "" {
		return h.sendErrorToUser(userID, "group_id and message are required")
	}

	if _, err := h.messageService.PostMessage(ctx, msg.GroupID, userID, msg.Message); err != nil {
		return h.sendErrorToUser(userID, "Failed to post message")
	}
	return nil
}

// sendError sends an error message to the WebSocket connection
func (h *WebSocketHandler) sendError(conn *websocket.Conn, message string) {
	msg := services.WSMessage{
		Type:    "error",
		Message: message,
	}
	data, _ := json.Marshal(msg)
	conn.WriteMessage(websocket.TextMessage, data)
}

// sendErrorToUser sends an error message to a user
func (h *WebSocketHandler) sendErrorToUser(userID, message string) error {
	msg := services.WSMessage{
		Type:    "error",
		Message: message,
	}
	return h.hub.SendToUser(userID, msg)
}
