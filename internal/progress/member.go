// Package progress implements the group aggregation pipeline: per-member
// progress summaries, team rollups, end-of-window settlement and reminder
// eligibility. Everything here is pure computation over data the caller
// already fetched, so it is directly testable without a database.
package progress

import (
	"math"
	"sort"
	"time"

	"weight-circle-backend/internal/models"
)

// MemberSummary is one member's aggregated progress within a group.
// Changes are percentages relative to each member's own baseline weight;
// negative means weight lost, so smaller ranks better.
type MemberSummary struct {
	UserID       string   `json:"user_id"`
	DisplayName  string   `json:"display_name"`
	TeamID       *string  `json:"team_id,omitempty"`
	LatestChange float64  `json:"latest_change"`
	BestChange   float64  `json:"best_change"`
	TotalEntries int      `json:"total_entries"`
	DaysActive   int      `json:"days_active"`
}

// Qualifies reports whether an entry counts toward group aggregation:
// private entries are always excluded, and when the group defines a start
// date, entries created before it are excluded too.
func Qualifies(entry models.WeightEntry, startDate *time.Time) bool {
	if entry.IsPrivate {
		return false
	}
	if startDate != nil && entry.CreatedAt.Before(*startDate) {
		return false
	}
	return true
}

// MemberProgress computes the ranked progress summary for a group.
// entriesByUser holds each member's full entry history; displayNames maps
// user ids to profile display names. The result is sorted ascending by
// LatestChange (most weight lost first), ties broken by display name.
func MemberProgress(
	now time.Time,
	group *models.Group,
	memberships []models.Membership,
	entriesByUser map[string][]models.WeightEntry,
	displayNames map[string]string,
) []MemberSummary {
	summaries := make([]MemberSummary, 0, len(memberships))

	for _, m := range memberships {
		entries := qualifyingEntries(entriesByUser[m.UserID], group.StartDate)

		s := MemberSummary{
			UserID:      m.UserID,
			DisplayName: displayNames[m.UserID],
			TeamID:      m.TeamID,
		}
		s.TotalEntries = len(entries)
		if len(entries) > 0 {
			s.LatestChange = entries[len(entries)-1].PercentageChange
			s.BestChange = entries[0].PercentageChange
			for _, e := range entries[1:] {
				if e.PercentageChange < s.BestChange {
					s.BestChange = e.PercentageChange
				}
			}
		}
		s.DaysActive = daysActive(now, group.StartDate, entries)

		summaries = append(summaries, s)
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].LatestChange != summaries[j].LatestChange {
			return summaries[i].LatestChange < summaries[j].LatestChange
		}
		return summaries[i].DisplayName < summaries[j].DisplayName
	})

	return summaries
}

// qualifyingEntries filters to aggregation-eligible entries and returns them
// sorted ascending by creation time.
func qualifyingEntries(entries []models.WeightEntry, startDate *time.Time) []models.WeightEntry {
	var out []models.WeightEntry
	for _, e := range entries {
		if Qualifies(e, startDate) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// daysActive counts days since the member's reference point: the earlier of
// the group start date and the first qualifying entry. With no reference
// point at all the member has not been active a single day.
func daysActive(now time.Time, startDate *time.Time, entries []models.WeightEntry) int {
	var ref *time.Time
	if startDate != nil {
		ref = startDate
	}
	if len(entries) > 0 {
		first := entries[0].CreatedAt
		if ref == nil || first.Before(*ref) {
			ref = &first
		}
	}
	if ref == nil || now.Before(*ref) {
		return 0
	}
	hours := now.Sub(*ref).Hours()
	return int(math.Ceil(hours / 24))
}
