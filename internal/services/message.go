package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"weight-circle-backend/internal/models"
	"weight-circle-backend/internal/repository"

	"github.com/google/uuid"
)

const maxMessageLen = 2000

// MessageService handles group chat business logic
type MessageService struct {
	messageRepo *repository.MessageRepository
	groups      *GroupService
	hub         *WSHub
}

// NewMessageService creates a new message service
func NewMessageService(messageRepo *repository.MessageRepository, groups *GroupService, hub *WSHub) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		groups:      groups,
		hub:         hub,
	}
}

// PostMessage stores a chat message and announces it to online group members
func (s *MessageService) PostMessage(ctx context.Context, groupID, userID, body string) (*models.Message, error) {
	if _, err := s.groups.RequireMembership(ctx, groupID, userID); err != nil {
		return nil, err
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("message body is required")
	}
	if len(body) > maxMessageLen {
		return nil, fmt.Errorf("message body must be at most %d characters", maxMessageLen)
	}

	message := &models.Message{
		ID:        uuid.New().String(),
		GroupID:   groupID,
		UserID:    userID,
		Body:      body,
		CreatedAt: time.Now(),
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	s.hub.PublishGroupEvent(ctx, groupID, WSMessage{
		Type: EventMessageCreated,
		Data: message,
	})

	return message, nil
}

// ListMessages retrieves a group's messages with pagination, newest first
func (s *MessageService) ListMessages(ctx context.Context, groupID, userID string, limit, offset int) ([]models.Message, int, error) {
	if _, err := s.groups.RequireMembership(ctx, groupID, userID); err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	return s.messageRepo.ListByGroup(ctx, groupID, limit, offset)
}
