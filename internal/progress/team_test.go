package progress

import (
	"math"
	"testing"

	"weight-circle-backend/internal/models"
)

func strPtr(s string) *string { return &s }

func TestTeamProgress(t *testing.T) {
	teams := []models.Team{
		{ID: "red", GroupID: "g1", Name: "Red", Color: "#ff0000"},
		{ID: "blue", GroupID: "g1", Name: "Blue", Color: "#0000ff"},
	}
	members := []MemberSummary{
		{UserID: "a", TeamID: strPtr("red"), LatestChange: -4.0, BestChange: -5.0, TotalEntries: 3},
		{UserID: "b", TeamID: strPtr("red"), LatestChange: -2.0, BestChange: -2.0, TotalEntries: 2},
		{UserID: "c", TeamID: strPtr("blue"), LatestChange: 1.0, BestChange: -1.0, TotalEntries: 4},
	}

	got := TeamProgress(teams, members, nil)
	if len(got) != 2 {
		t.Fatalf("got %d teams, want 2", len(got))
	}

	// Red averages (-4 + -2)/2 = -3, so it ranks first.
	red := got[0]
	if red.TeamID != "red" {
		t.Fatalf("first team = %s, want red", red.TeamID)
	}
	if math.Abs(red.AverageChange-(-3.0)) > 0.001 {
		t.Errorf("red average = %v, want -3.0", red.AverageChange)
	}
	if red.TotalEntries != 5 {
		t.Errorf("red entries = %d, want 5", red.TotalEntries)
	}
	if math.Abs(red.BestChange-(-5.0)) > 0.001 {
		t.Errorf("red best = %v, want -5.0", red.BestChange)
	}
	if red.MemberCount != 2 {
		t.Errorf("red member count = %d, want 2", red.MemberCount)
	}
}

func TestTeamProgressEmptyTeamReportsZeros(t *testing.T) {
	teams := []models.Team{{ID: "empty", GroupID: "g1", Name: "Empty"}}

	got := TeamProgress(teams, nil, nil)
	if len(got) != 1 {
		t.Fatalf("got %d teams, want 1", len(got))
	}
	s := got[0]
	if s.AverageChange != 0 || s.BestChange != 0 || s.TotalEntries != 0 || s.MemberCount != 0 {
		t.Errorf("empty team should report zeros, got %+v", s)
	}
}

func TestTeamProgressRosterVisibility(t *testing.T) {
	teams := []models.Team{
		{ID: "red", GroupID: "g1", Name: "Red"},
		{ID: "blue", GroupID: "g1", Name: "Blue"},
	}
	members := []MemberSummary{
		{UserID: "a", TeamID: strPtr("red"), LatestChange: -1},
		{UserID: "b", TeamID: strPtr("blue"), LatestChange: -2},
	}

	// Viewer on red only ever sees red's roster.
	got := TeamProgress(teams, members, strPtr("red"))
	for _, s := range got {
		if s.TeamID == "red" {
			if len(s.Members) != 1 || s.Members[0].UserID != "a" {
				t.Errorf("viewer's own roster missing: %+v", s.Members)
			}
		} else if len(s.Members) != 0 {
			t.Errorf("roster of team %s leaked to outsider", s.TeamID)
		}
	}

	// Viewer with no team sees no rosters at all.
	got = TeamProgress(teams, members, nil)
	for _, s := range got {
		if len(s.Members) != 0 {
			t.Errorf("roster of team %s leaked to teamless viewer", s.TeamID)
		}
	}
}

func TestTeamProgressIgnoresTeamlessMembers(t *testing.T) {
	teams := []models.Team{{ID: "red", GroupID: "g1", Name: "Red"}}
	members := []MemberSummary{
		{UserID: "a", TeamID: strPtr("red"), LatestChange: -2, TotalEntries: 1},
		{UserID: "b", TeamID: nil, LatestChange: -10, TotalEntries: 9},
	}

	got := TeamProgress(teams, members, nil)
	if math.Abs(got[0].AverageChange-(-2.0)) > 0.001 {
		t.Errorf("average = %v, want -2.0 (teamless member excluded)", got[0].AverageChange)
	}
	if got[0].TotalEntries != 1 {
		t.Errorf("entries = %d, want 1", got[0].TotalEntries)
	}
}
