package services

import (
	"context"
	"fmt"
	"time"

	"weight-circle-backend/internal/models"
	"weight-circle-backend/internal/progress"
	"weight-circle-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ReminderService selects inactive members of active groups and delivers
// reminders to them over push and email. It runs single-shot on an explicit
// trigger; there is no in-process scheduler.
type ReminderService struct {
	reminderRepo *repository.ReminderRepository
	profileRepo  *repository.ProfileRepository
	groupRepo    *repository.GroupRepository
	push         *PushService
	email        *EmailService
	hub          *WSHub
}

// NewReminderService creates a new reminder service. push and email may be
// nil when the corresponding delivery channel is not configured.
func NewReminderService(
	reminderRepo *repository.ReminderRepository,
	profileRepo *repository.ProfileRepository,
	groupRepo *repository.GroupRepository,
	push *PushService,
	email *EmailService,
	hub *WSHub,
) *ReminderService {
	return &ReminderService{
		reminderRepo: reminderRepo,
		profileRepo:  profileRepo,
		groupRepo:    groupRepo,
		push:         push,
		email:        email,
		hub:          hub,
	}
}

// RunResult summarizes one reminder run
type RunResult struct {
	Candidates int `json:"candidates"`
	Eligible   int `json:"eligible"`
	Sent       int `json:"sent"`
}

// Run performs one reminder sweep on behalf of an admin: gather candidate
// membership pairs, filter to the eligible ones, deliver and log. A failed
// delivery skips the log entry so the pair is retried on the next run.
func (s *ReminderService) Run(ctx context.Context, requesterID string) (*RunResult, error) {
	requester, err := s.profileRepo.GetByID(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("profile not found: %w", err)
	}
	if !requester.IsAdmin {
		return nil, fmt.Errorf("admin privileges required")
	}

	now := time.Now()
	candidates, err := s.reminderRepo.ListCandidates(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	eligible := progress.SelectReminders(now, candidates)
	result := &RunResult{Candidates: len(candidates), Eligible: len(eligible)}

	for _, c := range eligible {
		if s.remind(ctx, c, now) {
			result.Sent++
		}
	}

	log.Info().
		Int("candidates", result.Candidates).
		Int("eligible", result.Eligible).
		Int("sent", result.Sent).
		Msg("Reminder run completed")

	return result, nil
}

// remind delivers one reminder and records it. Reports whether anything
// was actually sent.
func (s *ReminderService) remind(ctx context.Context, c progress.ReminderCandidate, now time.Time) bool {
	profile, err := s.profileRepo.GetByID(ctx, c.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", c.UserID).Msg("Failed to load reminder recipient")
		return false
	}
	group, err := s.groupRepo.GetByID(ctx, c.GroupID)
	if err != nil {
		log.Error().Err(err).Str("group_id", c.GroupID).Msg("Failed to load reminder group")
		return false
	}

	delivered := false
	if s.push != nil && profile.PushToken != nil {
		if err := s.push.SendReminder(*profile.PushToken, group.Name); err != nil {
			log.Error().Err(err).Str("user_id", c.UserID).Msg("Failed to push reminder")
		} else {
			delivered = true
		}
	}
	if s.email != nil && profile.Email != nil && *profile.Email != "" {
		if err := s.email.SendReminder(ctx, *profile.Email, profile.DisplayName, group.Name); err != nil {
			log.Error().Err(err).Str("user_id", c.UserID).Msg("Failed to email reminder")
		} else {
			delivered = true
		}
	}
	if !delivered {
		return false
	}

	rl := &models.ReminderLog{
		ID:      uuid.New().String(),
		GroupID: c.GroupID,
		UserID:  c.UserID,
		SentAt:  now,
	}
	if err := s.reminderRepo.Create(ctx, rl); err != nil {
		log.Error().Err(err).Str("user_id", c.UserID).Str("group_id", c.GroupID).
			Msg("Failed to record reminder")
	}

	if s.hub.IsOnline(c.UserID) {
		if err := s.hub.SendToUser(c.UserID, WSMessage{
			Type:    EventReminderSent,
			GroupID: c.GroupID,
		}); err != nil {
			log.Error().Err(err).Str("user_id", c.UserID).Msg("Failed to notify reminder over websocket")
		}
	}

	return true
}
