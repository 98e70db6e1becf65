package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"weight-circle-backend/internal/middleware"
	"weight-circle-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// WeightHandler handles weight-entry HTTP requests
type WeightHandler struct {
	weightService *services.WeightService
}

// NewWeightHandler creates a new weight handler
func NewWeightHandler(weightService *services.WeightService) *WeightHandler {
	return &WeightHandler{weightService: weightService}
}

// CreateEntry handles POST /api/v1/weights
func (h *WeightHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req services.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	entry, err := h.weightService.CreateEntry(ctx, userID, req)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to create weight entry")

		statusCode := http.StatusInternalServerError
		if strings.Contains(err.Error(), "invalid weight") ||
			strings.Contains(err.Error(), "invalid baseline") {
			statusCode = http.StatusBadRequest
		}
		respondError(w, err.Error(), statusCode)
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("entry_id", entry.ID).
		Float64("percentage_change", entry.PercentageChange).
		Msg("Weight entry created")

	respondJSON(w, entry, http.StatusOK)
}

// ListEntries handles GET /api/v1/weights
func (h *WeightHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	entries, err := h.weightService.ListEntries(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list weight entries")
		respondError(w, "Failed to list weight entries", http.StatusInternalServerError)
		return
	}

	respondJSON(w, map[string]interface{}{"entries": entries}, http.StatusOK)
}

// HealthMetrics handles GET /api/v1/weights/health
func (h *WeightHandler) HealthMetrics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	report, err := h.weightService.HealthMetrics(ctx, userID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if strings.Contains(err.Error(), "no height set") ||
			strings.Contains(err.Error(), "no weight entries") {
			statusCode = http.StatusUnprocessableEntity
		}
		respondError(w, err.Error(), statusCode)
		return
	}

	respondJSON(w, report, http.StatusOK)
}
