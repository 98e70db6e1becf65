package repository

import (
	"context"
	"fmt"
	"time"

	"weight-circle-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WeightRepository handles database operations for weight entries
type WeightRepository struct {
	db *pgxpool.Pool
}

// NewWeightRepository creates a new weight repository
func NewWeightRepository(db *pgxpool.Pool) *WeightRepository {
	return &WeightRepository{db: db}
}

// Create creates a new weight entry
func (r *WeightRepository) Create(ctx context.Context, entry *models.WeightEntry) error {
	query := `
		INSERT INTO weight_entries (id, user_id, weight_lb, percentage_change, note, is_private, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		entry.ID, entry.UserID, entry.WeightLb, entry.PercentageChange,
		entry.Note, entry.IsPrivate, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create weight entry: %w", err)
	}
	return nil
}

// Baseline returns the weight of the user's first-ever entry, or nil if the
// user has no entries yet.
func (r *WeightRepository) Baseline(ctx context.Context, userID string) (*float64, error) {
	query := `
		SELECT weight_lb
		FROM weight_entries
		WHERE user_id = $1
		ORDER BY created_at ASC
		LIMIT 1
	`
	var weight float64
	err := r.db.QueryRow(ctx, query, userID).Scan(&weight)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get baseline weight: %w", err)
	}
	return &weight, nil
}

// ListByUser retrieves a user's entries ordered by creation time ascending
func (r *WeightRepository) ListByUser(ctx context.Context, userID string) ([]models.WeightEntry, error) {
	query := `
		SELECT id, user_id, weight_lb, percentage_change, note, is_private, created_at
		FROM weight_entries
		WHERE user_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list weight entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// LatestByUser retrieves the user's most recent entry, or nil if none exists
func (r *WeightRepository) LatestByUser(ctx context.Context, userID string) (*models.WeightEntry, error) {
	query := `
		SELECT id, user_id, weight_lb, percentage_change, note, is_private, created_at
		FROM weight_entries
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	var e models.WeightEntry
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&e.ID, &e.UserID, &e.WeightLb, &e.PercentageChange,
		&e.Note, &e.IsPrivate, &e.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest weight entry: %w", err)
	}
	return &e, nil
}

// ListSharedByUsers retrieves all non-private entries for a set of users,
// optionally limited to entries created at or after since. Entries are
// grouped per user, each list ordered by creation time ascending.
func (r *WeightRepository) ListSharedByUsers(ctx context.Context, userIDs []string, since *time.Time) (map[string][]models.WeightEntry, error) {
	byUser := make(map[string][]models.WeightEntry, len(userIDs))
	if len(userIDs) == 0 {
		return byUser, nil
	}

	query := `
		SELECT id, user_id, weight_lb, percentage_change, note, is_private, created_at
		FROM weight_entries
		WHERE user_id = ANY($1) AND is_private = FALSE
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		ORDER BY user_id, created_at ASC
	`
	rows, err := r.db.Query(ctx, query, userIDs, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list shared weight entries: %w", err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		byUser[e.UserID] = append(byUser[e.UserID], e)
	}
	return byUser, nil
}

func scanEntries(rows pgx.Rows) ([]models.WeightEntry, error) {
	var entries []models.WeightEntry
	for rows.Next() {
		var e models.WeightEntry
		err := rows.Scan(
			&e.ID, &e.UserID, &e.WeightLb, &e.PercentageChange,
			&e.Note, &e.IsPrivate, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan weight entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating weight entries: %w", err)
	}
	return entries, nil
}
