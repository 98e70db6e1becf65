package handlers

import (
	"net/http"
	"strings"

	"weight-circle-backend/internal/middleware"
	"weight-circle-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// ProgressHandler handles aggregation HTTP requests
type ProgressHandler struct {
	progressService *services.ProgressService
	reminderService *services.ReminderService
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(progressService *services.ProgressService, reminderService *services.ReminderService) *ProgressHandler {
	return &ProgressHandler{
		progressService: progressService,
		reminderService: reminderService,
	}
}

func progressErrorStatus(err error) int {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not a member"):
		return http.StatusForbidden
	case strings.Contains(msg, "not found"):
		return http.StatusNotFound
	case strings.Contains(msg, "not a team challenge"),
		strings.Contains(msg, "not concluded"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// MemberProgress handles GET /api/v1/groups/{group_id}/progress
func (h *ProgressHandler) MemberProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	groupID := chi.URLParam(r, "group_id")

	summaries, err := h.progressService.MemberProgress(ctx, groupID, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("group_id", groupID).Msg("Failed to aggregate member progress")
		respondError(w, err.Error(), progressErrorStatus(err))
		return
	}

	respondJSON(w, map[string]interface{}{"members": summaries}, http.StatusOK)
}

// TeamProgress handles GET /api/v1/groups/{group_id}/teams/progress
func (h *ProgressHandler) TeamProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	groupID := chi.URLParam(r, "group_id")

	summaries, err := h.progressService.TeamProgress(ctx, groupID, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("group_id", groupID).Msg("Failed to aggregate team progress")
		respondError(w, err.Error(), progressErrorStatus(err))
		return
	}

	respondJSON(w, map[string]interface{}{"teams": summaries}, http.StatusOK)
}

// Settlement handles GET /api/v1/groups/{group_id}/settlement
func (h *ProgressHandler) Settlement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	groupID := chi.URLParam(r, "group_id")

	settlement, err := h.progressService.Settlement(ctx, groupID, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("group_id", groupID).Msg("Failed to compute settlement")
		respondError(w, err.Error(), progressErrorStatus(err))
		return
	}

	respondJSON(w, settlement, http.StatusOK)
}

// RunReminders handles POST /api/v1/admin/reminders/run
func (h *ProgressHandler) RunReminders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	result, err := h.reminderService.Run(ctx, userID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if strings.Contains(err.Error(), "admin privileges") {
			statusCode = http.StatusForbidden
		}
		respondError(w, err.Error(), statusCode)
		return
	}

	respondJSON(w, result, http.StatusOK)
}
