package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"weight-circle-backend/internal/models"
	"weight-circle-backend/internal/repository"

	"github.com/google/uuid"
)

const (
	inviteCodeLength = 6
	inviteCodeChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// GroupService handles group, team and membership business logic
type GroupService struct {
	groupRepo *repository.GroupRepository
}

// NewGroupService creates a new group service
func NewGroupService(groupRepo *repository.GroupRepository) *GroupService {
	return &GroupService{groupRepo: groupRepo}
}

// GenerateUniqueInviteCode generates a unique 6-character invite code
func (s *GroupService) GenerateUniqueInviteCode(ctx context.Context) (string, error) {
	maxAttempts := 10
	for i := 0; i < maxAttempts; i++ {
		code := generateInviteCode()
		exists, err := s.groupRepo.InviteCodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check invite code existence: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique invite code after %d attempts", maxAttempts)
}

// generateInviteCode generates a random 6-character code
func generateInviteCode() string {
	code := make([]byte, inviteCodeLength)
	for i := range code {
		n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(inviteCodeChars))))
		code[i] = inviteCodeChars[n.Int64()]
	}
	return string(code)
}

// CreateGroupRequest carries the parameters for a new group
type CreateGroupRequest struct {
	Name            string     `json:"name"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	IsTeamChallenge bool       `json:"is_team_challenge"`
}

// CreateGroup creates a new group and enrolls the creator as its first member
func (s *GroupService) CreateGroup(ctx context.Context, creatorID string, req CreateGroupRequest) (*models.Group, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("group name is required")
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("end date must not precede start date")
	}

	code, err := s.GenerateUniqueInviteCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate invite code: %w", err)
	}

	group := &models.Group{
		ID:              uuid.New().String(),
		Name:            name,
		InviteCode:      code,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		IsTeamChallenge: req.IsTeamChallenge,
		CreatedBy:       creatorID,
		CreatedAt:       time.Now(),
	}

	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	membership := &models.Membership{
		ID:       uuid.New().String(),
		GroupID:  group.ID,
		UserID:   creatorID,
		JoinedAt: time.Now(),
	}
	if err := s.groupRepo.CreateMembership(ctx, membership); err != nil {
		return nil, fmt.Errorf("failed to enroll creator: %w", err)
	}

	return group, nil
}

// JoinGroup adds a user to the group behind an invite code, optionally
// placing them on a team of that group.
func (s *GroupService) JoinGroup(ctx context.Context, userID, inviteCode string, teamID *string) (*models.Group, error) {
	inviteCode = strings.ToUpper(strings.TrimSpace(inviteCode))
	if len(inviteCode) == 0 || len(inviteCode) > inviteCodeLength {
		return nil, fmt.Errorf("invite code must be 1-%d characters", inviteCodeLength)
	}

	group, err := s.groupRepo.GetByInviteCode(ctx, inviteCode)
	if err != nil {
		return nil, fmt.Errorf("group not found: %w", err)
	}

	if _, err := s.groupRepo.GetMembership(ctx, group.ID, userID); err == nil {
		return nil, fmt.Errorf("user is already a member of this group")
	}

	if teamID != nil {
		if !group.IsTeamChallenge {
			return nil, fmt.Errorf("group is not a team challenge")
		}
		ok, err := s.groupRepo.TeamBelongsToGroup(ctx, *teamID, group.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check team: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("team not found in this group")
		}
	}

	membership := &models.Membership{
		ID:       uuid.New().String(),
		GroupID:  group.ID,
		UserID:   userID,
		TeamID:   teamID,
		JoinedAt: time.Now(),
	}
	if err := s.groupRepo.CreateMembership(ctx, membership); err != nil {
		return nil, fmt.Errorf("failed to create membership: %w", err)
	}

	return group, nil
}

// LeaveGroup removes a user from a group
func (s *GroupService) LeaveGroup(ctx context.Context, groupID, userID string) error {
	if err := s.groupRepo.DeleteMembership(ctx, groupID, userID); err != nil {
		return fmt.Errorf("failed to leave group: %w", err)
	}
	return nil
}

// GetGroupForMember retrieves a group after verifying the requester belongs
// to it. Every group-scoped read goes through a membership check like this
// one instead of relying on storage-side row filters.
func (s *GroupService) GetGroupForMember(ctx context.Context, groupID, userID string) (*models.Group, error) {
	if _, err := s.groupRepo.GetMembership(ctx, groupID, userID); err != nil {
		return nil, fmt.Errorf("user is not a member of this group")
	}
	return s.groupRepo.GetByID(ctx, groupID)
}

// RequireMembership verifies the requester belongs to the group and returns
// their membership.
func (s *GroupService) RequireMembership(ctx context.Context, groupID, userID string) (*models.Membership, error) {
	m, err := s.groupRepo.GetMembership(ctx, groupID, userID)
	if err != nil {
		return nil, fmt.Errorf("user is not a member of this group")
	}
	return m, nil
}

// ListGroups retrieves the groups a user belongs to
func (s *GroupService) ListGroups(ctx context.Context, userID string) ([]models.Group, error) {
	return s.groupRepo.ListByUser(ctx, userID)
}

// CreateTeamRequest carries the parameters for a new team
type CreateTeamRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// CreateTeam adds a team to a team-challenge group. Only the group creator
// may define teams.
func (s *GroupService) CreateTeam(ctx context.Context, groupID, userID string, req CreateTeamRequest) (*models.Team, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("group not found: %w", err)
	}
	if group.CreatedBy != userID {
		return nil, fmt.Errorf("only the group creator can create teams")
	}
	if !group.IsTeamChallenge {
		return nil, fmt.Errorf("group is not a team challenge")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("team name is required")
	}

	team := &models.Team{
		ID:      uuid.New().String(),
		GroupID: groupID,
		Name:    name,
		Color:   req.Color,
	}
	if err := s.groupRepo.CreateTeam(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	return team, nil
}

// ListTeams retrieves the teams of a group the requester belongs to
func (s *GroupService) ListTeams(ctx context.Context, groupID, userID string) ([]models.Team, error) {
	if _, err := s.RequireMembership(ctx, groupID, userID); err != nil {
		return nil, err
	}
	return s.groupRepo.ListTeams(ctx, groupID)
}
