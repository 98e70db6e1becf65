package services

import (
	"context"
	"fmt"
	"time"

	"weight-circle-backend/internal/models"
	"weight-circle-backend/internal/progress"
	"weight-circle-backend/internal/repository"

	"github.com/rs/zerolog/log"
)

// ProgressService runs the group aggregation pipeline: it fetches the read
// snapshot, hands it to the pure aggregators and, for settlement, performs
// the one-time cache write.
type ProgressService struct {
	groupRepo   *repository.GroupRepository
	weightRepo  *repository.WeightRepository
	profileRepo *repository.ProfileRepository
	groups      *GroupService
}

// NewProgressService creates a new progress service
func NewProgressService(
	groupRepo *repository.GroupRepository,
	weightRepo *repository.WeightRepository,
	profileRepo *repository.ProfileRepository,
	groups *GroupService,
) *ProgressService {
	return &ProgressService{
		groupRepo:   groupRepo,
		weightRepo:  weightRepo,
		profileRepo: profileRepo,
		groups:      groups,
	}
}

// snapshot is the read set every aggregation starts from.
type snapshot struct {
	group       *models.Group
	memberships []models.Membership
	entries     map[string][]models.WeightEntry
	names       map[string]string
}

// MemberProgress computes the ranked member leaderboard for a group.
// The requester must be a member.
func (s *ProgressService) MemberProgress(ctx context.Context, groupID, userID string) ([]progress.MemberSummary, error) {
	snap, err := s.loadSnapshot(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	return progress.MemberProgress(time.Now(), snap.group, snap.memberships, snap.entries, snap.names), nil
}

// TeamProgress computes the team leaderboard for a team-challenge group.
// Only the requester's own team carries a member roster.
func (s *ProgressService) TeamProgress(ctx context.Context, groupID, userID string) ([]progress.TeamSummary, error) {
	membership, err := s.groups.RequireMembership(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}

	snap, err := s.loadSnapshot(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if !snap.group.IsTeamChallenge {
		return nil, fmt.Errorf("group is not a team challenge")
	}

	teams, err := s.groupRepo.ListTeams(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	members := progress.MemberProgress(time.Now(), snap.group, snap.memberships, snap.entries, snap.names)
	return progress.TeamProgress(teams, members, membership.TeamID), nil
}

// Settlement computes the final result for a concluded group. The total is
// cached on the group exactly once via a conditional update; a failed cache
// write is logged and the freshly computed result is still returned.
func (s *ProgressService) Settlement(ctx context.Context, groupID, userID string) (*progress.Settlement, error) {
	snap, err := s.loadSnapshot(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if !snap.group.HasConcluded(time.Now()) {
		return nil, fmt.Errorf("group has not concluded yet")
	}

	result := progress.ComputeSettlement(snap.memberships, snap.entries, snap.names, snap.group.StartDate)

	if snap.group.TotalWeightLost == nil {
		won, err := s.groupRepo.SetTotalWeightLost(ctx, groupID, result.TotalWeightLost)
		if err != nil {
			log.Error().Err(err).Str("group_id", groupID).
				Msg("Failed to cache settlement total")
		} else if won {
			log.Info().Str("group_id", groupID).
				Float64("total_weight_lost", result.TotalWeightLost).
				Msg("Settlement total cached")
		}
	}

	return &result, nil
}

// loadSnapshot verifies membership and fetches everything an aggregation
// needs: the group, its memberships, each member's qualifying entries and
// their display names.
func (s *ProgressService) loadSnapshot(ctx context.Context, groupID, userID string) (*snapshot, error) {
	if _, err := s.groups.RequireMembership(ctx, groupID, userID); err != nil {
		return nil, err
	}

	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("group not found: %w", err)
	}

	memberships, err := s.groupRepo.ListMemberships(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}

	userIDs := make([]string, 0, len(memberships))
	for _, m := range memberships {
		userIDs = append(userIDs, m.UserID)
	}

	entries, err := s.weightRepo.ListSharedByUsers(ctx, userIDs, group.StartDate)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch weight entries: %w", err)
	}

	names, err := s.profileRepo.DisplayNames(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch display names: %w", err)
	}

	return &snapshot{
		group:       group,
		memberships: memberships,
		entries:     entries,
		names:       names,
	}, nil
}
