package repository

import (
	"context"
	"fmt"

	"weight-circle-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GroupRepository handles database operations for groups, teams and memberships
type GroupRepository struct {
	db *pgxpool.Pool
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(db *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{db: db}
}

const groupColumns = `id, name, invite_code, start_date, end_date, is_team_challenge, total_weight_lost, created_by, created_at`

// Create creates a new group
func (r *GroupRepository) Create(ctx context.Context, group *models.Group) error {
	query := `
		INSERT INTO groups (id, name, invite_code, start_date, end_date, is_team_challenge, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		group.ID, group.Name, group.InviteCode, group.StartDate, group.EndDate,
		group.IsTeamChallenge, group.CreatedBy, group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}
	return nil
}

// GetByID retrieves a group by ID
func (r *GroupRepository) GetByID(ctx context.Context, id string) (*models.Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups WHERE id = $1`
	group, err := r.scanGroup(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("group not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return group, nil
}

// GetByInviteCode retrieves a group by invite code
func (r *GroupRepository) GetByInviteCode(ctx context.Context, code string) (*models.Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups WHERE invite_code = $1`
	group, err := r.scanGroup(r.db.QueryRow(ctx, query, code))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("group not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get group by invite code: %w", err)
	}
	return group, nil
}

// InviteCodeExists checks if an invite code is already taken
func (r *GroupRepository) InviteCodeExists(ctx context.Context, code string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM groups WHERE invite_code = $1)`
	var exists bool
	err := r.db.QueryRow(ctx, query, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check invite code existence: %w", err)
	}
	return exists, nil
}

// ListByUser retrieves the groups a user is a member of
func (r *GroupRepository) ListByUser(ctx context.Context, userID string) ([]models.Group, error) {
	query := `
		SELECT g.id, g.name, g.invite_code, g.start_date, g.end_date,
		       g.is_team_challenge, g.total_weight_lost, g.created_by, g.created_at
		FROM groups g
		JOIN memberships m ON m.group_id = g.id
		WHERE m.user_id = $1
		ORDER BY g.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		group, err := r.scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, *group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating groups: %w", err)
	}
	return groups, nil
}

// SetTotalWeightLost writes the one-time settlement cache. The update is
// conditional on the cache still being empty, so concurrent settlements
// cannot overwrite each other; it reports whether this call won the write.
func (r *GroupRepository) SetTotalWeightLost(ctx context.Context, groupID string, total float64) (bool, error) {
	query := `
		UPDATE groups
		SET total_weight_lost = $1
		WHERE id = $2 AND total_weight_lost IS NULL
	`
	result, err := r.db.Exec(ctx, query, total, groupID)
	if err != nil {
		return false, fmt.Errorf("failed to set total weight lost: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// CreateTeam creates a new team within a group
func (r *GroupRepository) CreateTeam(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (id, group_id, name, color)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Exec(ctx, query, team.ID, team.GroupID, team.Name, team.Color)
	if err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

// ListTeams retrieves the teams of a group
func (r *GroupRepository) ListTeams(ctx context.Context, groupID string) ([]models.Team, error) {
	query := `SELECT id, group_id, name, color FROM teams WHERE group_id = $1 ORDER BY name`
	rows, err := r.db.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.GroupID, &t.Name, &t.Color); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating teams: %w", err)
	}
	return teams, nil
}

// TeamBelongsToGroup checks that a team exists within the given group
func (r *GroupRepository) TeamBelongsToGroup(ctx context.Context, teamID, groupID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM teams WHERE id = $1 AND group_id = $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, teamID, groupID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check team membership: %w", err)
	}
	return exists, nil
}

// CreateMembership adds a user to a group
func (r *GroupRepository) CreateMembership(ctx context.Context, m *models.Membership) error {
	query := `
		INSERT INTO memberships (id, group_id, user_id, team_id, joined_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, m.ID, m.GroupID, m.UserID, m.TeamID, m.JoinedAt)
	if err != nil {
		return fmt.Errorf("failed to create membership: %w", err)
	}
	return nil
}

// DeleteMembership removes a user from a group
func (r *GroupRepository) DeleteMembership(ctx context.Context, groupID, userID string) error {
	query := `DELETE FROM memberships WHERE group_id = $1 AND user_id = $2`
	result, err := r.db.Exec(ctx, query, groupID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete membership: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("membership not found")
	}
	return nil
}

// GetMembership retrieves a user's membership in a group
func (r *GroupRepository) GetMembership(ctx context.Context, groupID, userID string) (*models.Membership, error) {
	query := `
		SELECT id, group_id, user_id, team_id, joined_at
		FROM memberships
		WHERE group_id = $1 AND user_id = $2
	`
	var m models.Membership
	err := r.db.QueryRow(ctx, query, groupID, userID).Scan(
		&m.ID, &m.GroupID, &m.UserID, &m.TeamID, &m.JoinedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("membership not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	return &m, nil
}

// ListMemberships retrieves all memberships of a group
func (r *GroupRepository) ListMemberships(ctx context.Context, groupID string) ([]models.Membership, error) {
	query := `
		SELECT id, group_id, user_id, team_id, joined_at
		FROM memberships
		WHERE group_id = $1
		ORDER BY joined_at ASC
	`
	rows, err := r.db.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	defer rows.Close()

	var memberships []models.Membership
	for rows.Next() {
		var m models.Membership
		if err := rows.Scan(&m.ID, &m.GroupID, &m.UserID, &m.TeamID, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating memberships: %w", err)
	}
	return memberships, nil
}

// MemberUserIDs returns the user IDs of all members of a group
func (r *GroupRepository) MemberUserIDs(ctx context.Context, groupID string) ([]string, error) {
	memberships, err := r.ListMemberships(ctx, groupID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(memberships))
	for _, m := range memberships {
		ids = append(ids, m.UserID)
	}
	return ids, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *GroupRepository) scanGroup(row rowScanner) (*models.Group, error) {
	var g models.Group
	err := row.Scan(
		&g.ID, &g.Name, &g.InviteCode, &g.StartDate, &g.EndDate,
		&g.IsTeamChallenge, &g.TotalWeightLost, &g.CreatedBy, &g.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}
