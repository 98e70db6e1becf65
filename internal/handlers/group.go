package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"weight-circle-backend/internal/middleware"
	"weight-circle-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// GroupHandler handles group-related HTTP requests
type GroupHandler struct {
	groupService *services.GroupService
	wsHub        *services.WSHub
}

// NewGroupHandler creates a new group handler
func NewGroupHandler(groupService *services.GroupService, wsHub *services.WSHub) *GroupHandler {
	return &GroupHandler{
		groupService: groupService,
		wsHub:        wsHub,
	}
}

// groupErrorStatus maps group service errors to HTTP status codes
func groupErrorStatus(err error) int {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		return http.StatusNotFound
	case strings.Contains(msg, "not a member"),
		strings.Contains(msg, "only the group creator"):
		return http.StatusForbidden
	case strings.Contains(msg, "already a member"):
		return http.StatusConflict
	case strings.Contains(msg, "required"),
		strings.Contains(msg, "must"),
		strings.Contains(msg, "not a team challenge"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// CreateGroup handles POST /api/v1/groups
func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req services.CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	group, err := h.groupService.CreateGroup(ctx, userID, req)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to create group")
		respondError(w, err.Error(), groupErrorStatus(err))
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("group_id", group.ID).
		Str("invite_code", group.InviteCode).
		Msg("Group created")

	respondJSON(w, group, http.StatusOK)
}

// JoinGroupRequest represents the request body for joining a group
type JoinGroupRequest struct {
	InviteCode string  `json:"invite_code"`
	TeamID     *string `json:"team_id,omitempty"`
}

// JoinGroup handles POST /api/v1/groups/join
func (h *GroupHandler) JoinGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req JoinGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.InviteCode == "" {
		respondError(w, "invite_code is required", http.StatusBadRequest)
		return
	}

	group, err := h.groupService.JoinGroup(ctx, userID, req.InviteCode, req.TeamID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to join group")
		respondError(w, err.Error(), groupErrorStatus(err))
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("group_id", group.ID).
		Msg("Member joined group")

	// Membership changed: tell everyone who is online.
	h.wsHub.PublishGroupEvent(ctx, group.ID, services.WSMessage{
		Type: services.EventMemberJoined,
		Data: map[string]interface{}{"user_id": userID},
	})

	respondJSON(w, group, http.StatusOK)
}

// ListGroups handles GET /api/v1/groups
func (h *GroupHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	groups, err := h.groupService.ListGroups(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list groups")
		respondError(w, "Failed to list groups", http.StatusInternalServerError)
		return
	}

	respondJSON(w, map[string]interface{}{"groups": groups}, http.StatusOK)
}

// GetGroup handles GET /api/v1/groups/{group_id}
func (h *GroupHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	groupID := chi.URLParam(r, "group_id")

	group, err := h.groupService.GetGroupForMember(ctx, groupID, userID)
	if err != nil {
		respondError(w, err.Error(), groupErrorStatus(err))
		return
	}

	respondJSON(w, group, http.StatusOK)
}

// LeaveGroup handles DELETE /api/v1/groups/{group_id}/members/me
func (h *GroupHandler) LeaveGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	groupID := chi.URLParam(r, "group_id")

	if err := h.groupService.LeaveGroup(ctx, groupID, userID); err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("group_id", groupID).Msg("Failed to leave group")
		respondError(w, err.Error(), groupErrorStatus(err))
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("group_id", groupID).
		Msg("Member left group")

	h.wsHub.PublishGroupEvent(ctx, groupID, services.WSMessage{
		Type: services.EventMemberLeft,
		Data: map[string]interface{}{"user_id": userID},
	})

	w.WriteHeader(http.StatusNoContent)
}

// CreateTeam handles POST /api/v1/groups/{group_id}/teams
func (h *GroupHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	groupID := chi.URLParam(r, "group_id")

	var req services.CreateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	team, err := h.groupService.CreateTeam(ctx, groupID, userID, req)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("group_id", groupID).Msg("Failed to create team")
		respondError(w, err.Error(), groupErrorStatus(err))
		return
	}

	respondJSON(w, team, http.StatusOK)
}

// ListTeams handles GET /api/v1/groups/{group_id}/teams
func (h *GroupHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	groupID := chi.URLParam(r, "group_id")

	teams, err := h.groupService.ListTeams(ctx, groupID, userID)
	if err != nil {
		respondError(w, err.Error(), groupErrorStatus(err))
		return
	}

	respondJSON(w, map[string]interface{}{"teams": teams}, http.StatusOK)
}
