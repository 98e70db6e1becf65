package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"weight-circle-backend/internal/metrics"
	"weight-circle-backend/internal/models"
	"weight-circle-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// WeightService handles weight entry business logic
type WeightService struct {
	weightRepo  *repository.WeightRepository
	groupRepo   *repository.GroupRepository
	profileRepo *repository.ProfileRepository
	hub         *WSHub
}

// NewWeightService creates a new weight service
func NewWeightService(
	weightRepo *repository.WeightRepository,
	groupRepo *repository.GroupRepository,
	profileRepo *repository.ProfileRepository,
	hub *WSHub,
) *WeightService {
	return &WeightService{
		weightRepo:  weightRepo,
		groupRepo:   groupRepo,
		profileRepo: profileRepo,
		hub:         hub,
	}
}

// CreateEntryRequest carries the parameters for a new weight entry
type CreateEntryRequest struct {
	Weight    float64 `json:"weight"`
	Unit      string  `json:"unit"`
	Note      *string `json:"note,omitempty"`
	IsPrivate bool    `json:"is_private"`
}

// CreateEntry validates and stores a new weight entry. The entry's
// percentage change is fixed at insert time against the user's baseline
// (first-ever) weight; later entries never alter it.
func (s *WeightService) CreateEntry(ctx context.Context, userID string, req CreateEntryRequest) (*models.WeightEntry, error) {
	unit := metrics.WeightUnit(strings.ToLower(strings.TrimSpace(req.Unit)))
	if unit == "" {
		unit = metrics.UnitPounds
	}

	weightLb, err := metrics.ToCanonicalWeight(req.Weight, unit)
	if err != nil {
		return nil, fmt.Errorf("invalid weight: %w", err)
	}

	baseline, err := s.weightRepo.Baseline(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get baseline: %w", err)
	}

	change, err := metrics.ChangeForNewEntry(weightLb, baseline)
	if err != nil {
		return nil, fmt.Errorf("invalid baseline: %w", err)
	}

	entry := &models.WeightEntry{
		ID:               uuid.New().String(),
		UserID:           userID,
		WeightLb:         weightLb,
		PercentageChange: change,
		Note:             req.Note,
		IsPrivate:        req.IsPrivate,
		CreatedAt:        time.Now(),
	}

	if err := s.weightRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create weight entry: %w", err)
	}

	// Private entries stay invisible to groups, so there is nothing to
	// announce either.
	if !entry.IsPrivate {
		s.publishWeightLogged(ctx, entry)
	}

	return entry, nil
}

// publishWeightLogged announces a new shared entry to every group the user
// belongs to. The entry is already stored; event delivery is best effort.
func (s *WeightService) publishWeightLogged(ctx context.Context, entry *models.WeightEntry) {
	groups, err := s.groupRepo.ListByUser(ctx, entry.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", entry.UserID).Msg("Failed to list groups for weight event")
		return
	}
	for _, g := range groups {
		s.hub.PublishGroupEvent(ctx, g.ID, WSMessage{
			Type: EventWeightLogged,
			Data: map[string]interface{}{
				"user_id":           entry.UserID,
				"percentage_change": entry.PercentageChange,
				"created_at":        entry.CreatedAt,
			},
		})
	}
}

// ListEntries retrieves the user's own entry history, oldest first
func (s *WeightService) ListEntries(ctx context.Context, userID string) ([]models.WeightEntry, error) {
	return s.weightRepo.ListByUser(ctx, userID)
}

// HealthReport combines BMI and estimated daily caloric need
type HealthReport struct {
	WeightLb    float64                 `json:"weight_lb"`
	HeightCm    float64                 `json:"height_cm"`
	BMI         float64                 `json:"bmi"`
	BMICategory metrics.BMICategory     `json:"bmi_category"`
	Calories    metrics.CalorieEstimate `json:"calories"`
}

// HealthMetrics derives BMI and calorie estimates from the user's latest
// weight and profile height.
func (s *WeightService) HealthMetrics(ctx context.Context, userID string) (*HealthReport, error) {
	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("profile not found: %w", err)
	}
	if profile.HeightCm == nil {
		return nil, fmt.Errorf("profile has no height set")
	}

	latest, err := s.weightRepo.LatestByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest weight: %w", err)
	}
	if latest == nil {
		return nil, fmt.Errorf("no weight entries recorded")
	}

	bmi, err := metrics.BMI(latest.WeightLb, *profile.HeightCm)
	if err != nil {
		return nil, fmt.Errorf("failed to compute BMI: %w", err)
	}

	calories, err := metrics.DailyCalories(latest.WeightLb, *profile.HeightCm, metrics.DefaultAge, metrics.SexMale)
	if err != nil {
		return nil, fmt.Errorf("failed to estimate calories: %w", err)
	}

	return &HealthReport{
		WeightLb:    latest.WeightLb,
		HeightCm:    *profile.HeightCm,
		BMI:         bmi,
		BMICategory: metrics.CategorizeBMI(bmi),
		Calories:    calories,
	}, nil
}
