package progress

import (
	"sort"

	"weight-circle-backend/internal/models"
)

// TeamSummary is one team's aggregated progress within a team-challenge
// group. Members is only populated for the viewer's own team; everyone else
// sees team-level numbers without a roster.
type TeamSummary struct {
	TeamID        string          `json:"team_id"`
	Name          string          `json:"name"`
	Color         string          `json:"color"`
	AverageChange float64         `json:"average_change"`
	BestChange    float64         `json:"best_change"`
	TotalEntries  int             `json:"total_entries"`
	MemberCount   int             `json:"member_count"`
	Members       []MemberSummary `json:"members,omitempty"`
}

// TeamProgress rolls member summaries up into per-team aggregates, sorted
// ascending by AverageChange. Teams with no members report all-zero stats.
// viewerTeamID controls the only roster that is exposed; a nil viewer team
// (viewer not on any team) exposes none.
func TeamProgress(teams []models.Team, members []MemberSummary, viewerTeamID *string) []TeamSummary {
	byTeam := make(map[string][]MemberSummary)
	for _, m := range members {
		if m.TeamID == nil {
			continue
		}
		byTeam[*m.TeamID] = append(byTeam[*m.TeamID], m)
	}

	summaries := make([]TeamSummary, 0, len(teams))
	for _, team := range teams {
		s := TeamSummary{
			TeamID: team.ID,
			Name:   team.Name,
			Color:  team.Color,
		}

		teamMembers := byTeam[team.ID]
		s.MemberCount = len(teamMembers)
		if len(teamMembers) > 0 {
			sum := 0.0
			s.BestChange = teamMembers[0].BestChange
			for _, m := range teamMembers {
				sum += m.LatestChange
				s.TotalEntries += m.TotalEntries
				if m.BestChange < s.BestChange {
					s.BestChange = m.BestChange
				}
			}
			s.AverageChange = sum / float64(len(teamMembers))
		}

		if viewerTeamID != nil && *viewerTeamID == team.ID {
			s.Members = teamMembers
		}

		summaries = append(summaries, s)
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].AverageChange != summaries[j].AverageChange {
			return summaries[i].AverageChange < summaries[j].AverageChange
		}
		return summaries[i].Name < summaries[j].Name
	})

	return summaries
}
