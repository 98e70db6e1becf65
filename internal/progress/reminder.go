package progress

import "time"

// Thresholds for nudging an inactive member: no entry for 5 days, and no
// repeat nudge within 4 days of the previous one.
const (
	InactivityThreshold = 5 * 24 * time.Hour
	ReminderCooldown    = 4 * 24 * time.Hour
)

// ReminderCandidate is a (user, group) membership pair in an active group,
// annotated with the user's most recent entry and reminder timestamps.
// Nil timestamps mean "never".
type ReminderCandidate struct {
	GroupID        string     `json:"group_id"`
	UserID         string     `json:"user_id"`
	LastEntryAt    *time.Time `json:"last_entry_at,omitempty"`
	LastReminderAt *time.Time `json:"last_reminder_at,omitempty"`
}

// Eligible reports whether the candidate should receive a reminder now:
// the member has been inactive at least 5 days (or has never logged) and
// has not been reminded within the last 4 days (or ever).
func Eligible(now time.Time, c ReminderCandidate) bool {
	if c.LastEntryAt != nil && now.Sub(*c.LastEntryAt) < InactivityThreshold {
		return false
	}
	if c.LastReminderAt != nil && now.Sub(*c.LastReminderAt) < ReminderCooldown {
		return false
	}
	return true
}

// SelectReminders filters candidates down to those eligible for a reminder.
func SelectReminders(now time.Time, candidates []ReminderCandidate) []ReminderCandidate {
	var out []ReminderCandidate
	for _, c := range candidates {
		if Eligible(now, c) {
			out = append(out, c)
		}
	}
	return out
}
