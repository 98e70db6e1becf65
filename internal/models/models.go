package models

import "time"

// Profile represents a user profile in the system
type Profile struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Email       *string   `json:"email,omitempty"`
	HeightCm    *float64  `json:"height_cm,omitempty"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
	PushToken   *string   `json:"push_token,omitempty"`
	IsAdmin     bool      `json:"is_admin"`
	Token       string    `json:"token,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// WeightEntry represents a single weight measurement.
// Entries are append-only; PercentageChange is computed once at insert time
// against the user's first entry and never recomputed.
type WeightEntry struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	WeightLb         float64   `json:"weight_lb"`
	PercentageChange float64   `json:"percentage_change"`
	Note             *string   `json:"note,omitempty"`
	IsPrivate        bool      `json:"is_private"`
	CreatedAt        time.Time `json:"created_at"`
}

// Group represents a weight-loss group
type Group struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	InviteCode      string     `json:"invite_code"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	IsTeamChallenge bool       `json:"is_team_challenge"`
	TotalWeightLost *float64   `json:"total_weight_lost,omitempty"`
	CreatedBy       string     `json:"created_by"`
	CreatedAt       time.Time  `json:"created_at"`
}

// IsActive reports whether the group is currently within its date window.
// Unset bounds do not constrain the window.
func (g *Group) IsActive(now time.Time) bool {
	if g.StartDate != nil && now.Before(*g.StartDate) {
		return false
	}
	if g.EndDate != nil && now.After(*g.EndDate) {
		return false
	}
	return true
}

// HasConcluded reports whether the group's active window has ended.
func (g *Group) HasConcluded(now time.Time) bool {
	return g.EndDate != nil && now.After(*g.EndDate)
}

// Team represents a team within a team-challenge group
type Team struct {
	ID      string `json:"id"`
	GroupID string `json:"group_id"`
	Name    string `json:"name"`
	Color   string `json:"color"`
}

// Membership links a user to a group, optionally to a team within it
type Membership struct {
	ID       string    `json:"id"`
	GroupID  string    `json:"group_id"`
	UserID   string    `json:"user_id"`
	TeamID   *string   `json:"team_id,omitempty"`
	JoinedAt time.Time `json:"joined_at"`
}

// Message represents a chat message posted to a group
type Message struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"group_id"`
	UserID    string    `json:"user_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// ReminderLog records that a reminder was sent to a user for a group
type ReminderLog struct {
	ID      string    `json:"id"`
	GroupID string    `json:"group_id"`
	UserID  string    `json:"user_id"`
	SentAt  time.Time `json:"sent_at"`
}
