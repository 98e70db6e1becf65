package repository

import (
	"context"
	"fmt"
	"time"

	"weight-circle-backend/internal/models"
	"weight-circle-backend/internal/progress"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ReminderRepository handles database operations for reminder logs
type ReminderRepository struct {
	db *pgxpool.Pool
}

// NewReminderRepository creates a new reminder repository
func NewReminderRepository(db *pgxpool.Pool) *ReminderRepository {
	return &ReminderRepository{db: db}
}

// Create records that a reminder was sent
func (r *ReminderRepository) Create(ctx context.Context, rl *models.ReminderLog) error {
	query := `
		INSERT INTO reminder_logs (id, group_id, user_id, sent_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Exec(ctx, query, rl.ID, rl.GroupID, rl.UserID, rl.SentAt)
	if err != nil {
		return fmt.Errorf("failed to create reminder log: %w", err)
	}
	return nil
}

// ListCandidates returns every (user, group) membership pair of a currently
// active group, annotated with the user's most recent entry time and the
// pair's most recent reminder time. Eligibility itself is decided in the
// progress package so the rule stays testable.
func (r *ReminderRepository) ListCandidates(ctx context.Context, now time.Time) ([]progress.ReminderCandidate, error) {
	query := `
		SELECT m.group_id, m.user_id,
			(SELECT MAX(w.created_at) FROM weight_entries w WHERE w.user_id = m.user_id),
			(SELECT MAX(l.sent_at) FROM reminder_logs l WHERE l.group_id = m.group_id AND l.user_id = m.user_id)
		FROM memberships m
		JOIN groups g ON g.id = m.group_id
		WHERE (g.start_date IS NULL OR g.start_date <= $1)
		  AND (g.end_date IS NULL OR g.end_date >= $1)
	`
	rows, err := r.db.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminder candidates: %w", err)
	}
	defer rows.Close()

	var candidates []progress.ReminderCandidate
	for rows.Next() {
		var c progress.ReminderCandidate
		if err := rows.Scan(&c.GroupID, &c.UserID, &c.LastEntryAt, &c.LastReminderAt); err != nil {
			return nil, fmt.Errorf("failed to scan reminder candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reminder candidates: %w", err)
	}

	return candidates, nil
}
