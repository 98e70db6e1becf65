package handlers

import (
	"encoding/json"
	"net/http"

	"weight-circle-backend/internal/metrics"
	"weight-circle-backend/internal/middleware"
	"weight-circle-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// ProfileHandler handles profile-related HTTP requests
type ProfileHandler struct {
	profileService *services.ProfileService
	avatarService  *services.AvatarService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *services.ProfileService, avatarService *services.AvatarService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		avatarService:  avatarService,
	}
}

// CreateProfileRequest represents the request body for signup. Height may be
// given directly in centimeters or as height/height_in with a unit.
type CreateProfileRequest struct {
	DisplayName string   `json:"display_name"`
	HeightCm    *float64 `json:"height_cm,omitempty"`
	Height      *float64 `json:"height,omitempty"`
	HeightIn    float64  `json:"height_in,omitempty"`
	HeightUnit  string   `json:"height_unit,omitempty"`
}

// resolveHeightCm normalizes the two ways a client can submit a height.
func resolveHeightCm(heightCm, height *float64, heightIn float64, unit string) (*float64, error) {
	if heightCm != nil || height == nil {
		return heightCm, nil
	}
	if unit == "" {
		unit = string(metrics.UnitCentimeters)
	}
	cm, err := metrics.ToCanonicalHeight(*height, heightIn, metrics.HeightUnit(unit))
	if err != nil {
		return nil, err
	}
	return &cm, nil
}

// CreateProfile handles POST /api/v1/profiles
func (h *ProfileHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	heightCm, err := resolveHeightCm(req.HeightCm, req.Height, req.HeightIn, req.HeightUnit)
	if err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	profile, err := h.profileService.CreateProfile(ctx, req.DisplayName, heightCm)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create profile")
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	log.Info().
		Str("user_id", profile.ID).
		Str("display_name", profile.DisplayName).
		Msg("Profile created")

	respondJSON(w, profile, http.StatusOK)
}

// GetMe handles GET /api/v1/profiles/me
func (h *ProfileHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	profile, err := h.profileService.GetProfile(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to get profile")
		respondError(w, "Profile not found", http.StatusNotFound)
		return
	}

	// The token is only handed out at signup.
	profile.Token = ""
	respondJSON(w, profile, http.StatusOK)
}

// UpdateMeRequest represents the request body for a profile update
type UpdateMeRequest struct {
	DisplayName *string  `json:"display_name,omitempty"`
	Email       *string  `json:"email,omitempty"`
	HeightCm    *float64 `json:"height_cm,omitempty"`
	Height      *float64 `json:"height,omitempty"`
	HeightIn    float64  `json:"height_in,omitempty"`
	HeightUnit  string   `json:"height_unit,omitempty"`
	PushToken   *string  `json:"push_token,omitempty"`
}

// UpdateMe handles PATCH /api/v1/profiles/me
func (h *ProfileHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req UpdateMeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	heightCm, err := resolveHeightCm(req.HeightCm, req.Height, req.HeightIn, req.HeightUnit)
	if err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	profile, err := h.profileService.UpdateProfile(ctx, userID, services.UpdateProfileRequest{
		DisplayName: req.DisplayName,
		Email:       req.Email,
		HeightCm:    heightCm,
		PushToken:   req.PushToken,
	})
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to update profile")
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	profile.Token = ""
	respondJSON(w, profile, http.StatusOK)
}

// AvatarUploadRequest represents the request body for an avatar upload
type AvatarUploadRequest struct {
	ContentType string `json:"content_type"`
}

// UploadAvatar handles POST /api/v1/profiles/me/avatar
func (h *ProfileHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req AvatarUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ContentType == "" {
		req.ContentType = "image/jpeg"
	}

	resp, err := h.avatarService.GetAvatarUploadURL(ctx, userID, req.ContentType)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to create avatar upload URL")
		respondError(w, "Failed to create upload URL", http.StatusInternalServerError)
		return
	}

	respondJSON(w, resp, http.StatusOK)
}
