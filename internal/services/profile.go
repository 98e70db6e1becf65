package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"weight-circle-backend/internal/models"
	"weight-circle-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	jwtExpDays        = 365
	maxDisplayNameLen = 100
)

// ProfileService handles profile-related business logic
type ProfileService struct {
	profileRepo *repository.ProfileRepository
	jwtSecret   string
}

// NewProfileService creates a new profile service
func NewProfileService(profileRepo *repository.ProfileRepository, jwtSecret string) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		jwtSecret:   jwtSecret,
	}
}

// GenerateJWT generates a JWT token for a user
func (s *ProfileService) GenerateJWT(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().AddDate(0, 0, jwtExpDays).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateJWT validates a JWT token and returns the user ID
func (s *ProfileService) ValidateJWT(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return "", fmt.Errorf("user_id not found in token")
	}

	return userID, nil
}

// CreateProfile creates a new profile and issues its token
func (s *ProfileService) CreateProfile(ctx context.Context, displayName string, heightCm *float64) (*models.Profile, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, fmt.Errorf("display name is required")
	}
	if len(displayName) > maxDisplayNameLen {
		return nil, fmt.Errorf("display name must be at most %d characters", maxDisplayNameLen)
	}
	if heightCm != nil && *heightCm <= 0 {
		return nil, fmt.Errorf("height must be positive")
	}

	userID := uuid.New().String()

	token, err := s.GenerateJWT(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	profile := &models.Profile{
		ID:          userID,
		DisplayName: displayName,
		HeightCm:    heightCm,
		Token:       token,
		CreatedAt:   time.Now(),
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return profile, nil
}

// GetProfile retrieves a profile by ID
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	return s.profileRepo.GetByID(ctx, userID)
}

// UpdateProfileRequest carries the mutable profile fields. Nil fields are
// left unchanged.
type UpdateProfileRequest struct {
	DisplayName *string  `json:"display_name,omitempty"`
	Email       *string  `json:"email,omitempty"`
	HeightCm    *float64 `json:"height_cm,omitempty"`
	PushToken   *string  `json:"push_token,omitempty"`
}

// UpdateProfile updates the mutable profile fields
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("profile not found: %w", err)
	}

	if req.DisplayName != nil {
		name := strings.TrimSpace(*req.DisplayName)
		if name == "" {
			return nil, fmt.Errorf("display name must not be empty")
		}
		profile.DisplayName = name
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email != "" && !strings.Contains(email, "@") {
			return nil, fmt.Errorf("invalid email address")
		}
		profile.Email = &email
	}
	if req.HeightCm != nil {
		if *req.HeightCm <= 0 {
			return nil, fmt.Errorf("height must be positive")
		}
		profile.HeightCm = req.HeightCm
	}
	if req.PushToken != nil {
		profile.PushToken = req.PushToken
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return profile, nil
}
