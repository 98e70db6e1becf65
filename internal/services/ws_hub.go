package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"weight-circle-backend/internal/repository"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Event types pushed to connected group members. These replace the hosted
// realtime subscriptions the mobile client previously listened to: every
// mutating operation publishes its event explicitly.
const (
	EventMemberJoined   = "member_joined"
	EventMemberLeft     = "member_left"
	EventWeightLogged   = "weight_logged"
	EventMessageCreated = "message_created"
	EventReminderSent   = "reminder_sent"
)

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string      `json:"type"`
	GroupID string      `json:"group_id,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// WSHub manages WebSocket connections and fans group events out to the
// members that are currently online.
type WSHub struct {
	mu          sync.RWMutex
	connections map[string]*websocket.Conn
	groupRepo   *repository.GroupRepository
}

// NewWSHub creates a new WebSocket hub
func NewWSHub(groupRepo *repository.GroupRepository) *WSHub {
	return &WSHub{
		connections: make(map[string]*websocket.Conn),
		groupRepo:   groupRepo,
	}
}

// Register registers a new WebSocket connection for a user
func (h *WSHub) Register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Close existing connection if any
	if existingConn, exists := h.connections[userID]; exists {
		existingConn.Close()
	}

	h.connections[userID] = conn

	log.Info().Str("user_id", userID).Msg("WebSocket connection registered")
}

// Unregister removes a WebSocket connection for a user
func (h *WSHub) Unregister(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conn, exists := h.connections[userID]; exists {
		conn.Close()
		delete(h.connections, userID)
		log.Info().Str("user_id", userID).Msg("WebSocket connection unregistered")
	}
}

// SendToUser sends a message to a specific user
func (h *WSHub) SendToUser(userID string, message WSMessage) error {
	h.mu.RLock()
	conn, exists := h.connections[userID]
	h.mu.RUnlock()

	if !exists {
		return fmt.Errorf("user %s is not connected", userID)
	}

	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		h.Unregister(userID)
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

// IsOnline checks if a user is online
func (h *WSHub) IsOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, exists := h.connections[userID]
	return exists
}

// PublishGroupEvent sends an event to every online member of a group.
// Delivery is best effort; offline members simply miss the event and pick
// the state up on their next fetch.
func (h *WSHub) PublishGroupEvent(ctx context.Context, groupID string, event WSMessage) {
	event.GroupID = groupID

	memberIDs, err := h.groupRepo.MemberUserIDs(ctx, groupID)
	if err != nil {
		log.Error().Err(err).Str("group_id", groupID).Str("type", event.Type).
			Msg("Failed to resolve group members for event")
		return
	}

	for _, userID := range memberIDs {
		if !h.IsOnline(userID) {
			continue
		}
		if err := h.SendToUser(userID, event); err != nil {
			log.Error().Err(err).Str("user_id", userID).Str("type", event.Type).
				Msg("Failed to deliver group event")
		}
	}
}
