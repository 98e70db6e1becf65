package progress

import (
	"math"
	"testing"
	"time"

	"weight-circle-backend/internal/models"
)

var testNow = time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)

func entry(userID string, weightLb, change float64, createdAt time.Time, private bool) models.WeightEntry {
	return models.WeightEntry{
		UserID:           userID,
		WeightLb:         weightLb,
		PercentageChange: change,
		IsPrivate:        private,
		CreatedAt:        createdAt,
	}
}

func member(groupID, userID string, teamID *string) models.Membership {
	return models.Membership{GroupID: groupID, UserID: userID, TeamID: teamID}
}

func daysAgo(n int) time.Time {
	return testNow.Add(-time.Duration(n) * 24 * time.Hour)
}

func TestMemberProgressBasic(t *testing.T) {
	group := &models.Group{ID: "g1"}
	memberships := []models.Membership{
		member("g1", "alice", nil),
		member("g1", "bob", nil),
	}
	entries := map[string][]models.WeightEntry{
		"alice": {
			entry("alice", 150, 0, daysAgo(10), false),
			entry("alice", 145, -3.33, daysAgo(5), false),
			entry("alice", 140, -6.67, daysAgo(1), false),
		},
		"bob": {
			entry("bob", 200, 0, daysAgo(8), false),
			entry("bob", 204, 2.0, daysAgo(2), false),
		},
	}
	names := map[string]string{"alice": "Alice", "bob": "Bob"}

	got := MemberProgress(testNow, group, memberships, entries, names)
	if len(got) != 2 {
		t.Fatalf("got %d summaries, want 2", len(got))
	}

	// Alice lost the most, so she ranks first.
	alice := got[0]
	if alice.UserID != "alice" {
		t.Fatalf("first rank = %s, want alice", alice.UserID)
	}
	if math.Abs(alice.LatestChange-(-6.67)) > 0.001 {
		t.Errorf("alice latest = %v, want -6.67", alice.LatestChange)
	}
	if math.Abs(alice.BestChange-(-6.67)) > 0.001 {
		t.Errorf("alice best = %v, want -6.67", alice.BestChange)
	}
	if alice.TotalEntries != 3 {
		t.Errorf("alice entries = %d, want 3", alice.TotalEntries)
	}
	if alice.DaysActive != 10 {
		t.Errorf("alice days active = %d, want 10", alice.DaysActive)
	}

	bob := got[1]
	if math.Abs(bob.LatestChange-2.0) > 0.001 {
		t.Errorf("bob latest = %v, want 2.0", bob.LatestChange)
	}
	if bob.BestChange != 0 {
		t.Errorf("bob best = %v, want 0 (first entry)", bob.BestChange)
	}
}

func TestMemberProgressNeverIncludesPrivateEntries(t *testing.T) {
	group := &models.Group{ID: "g1"}
	memberships := []models.Membership{member("g1", "alice", nil)}
	entries := map[string][]models.WeightEntry{
		"alice": {
			entry("alice", 150, 0, daysAgo(9), false),
			entry("alice", 130, -13.33, daysAgo(4), true), // private
			entry("alice", 146, -2.67, daysAgo(2), false),
		},
	}

	got := MemberProgress(testNow, group, memberships, entries, map[string]string{"alice": "Alice"})
	if got[0].TotalEntries != 2 {
		t.Fatalf("entries = %d, want 2 (private excluded)", got[0].TotalEntries)
	}
	// The private -13.33 must not leak into best change.
	if math.Abs(got[0].BestChange-(-2.67)) > 0.001 {
		t.Errorf("best = %v, want -2.67", got[0].BestChange)
	}
	if math.Abs(got[0].LatestChange-(-2.67)) > 0.001 {
		t.Errorf("latest = %v, want -2.67", got[0].LatestChange)
	}
}

func TestMemberProgressRespectsStartDate(t *testing.T) {
	// Group starts day 10; the member logged on day 5 and day 15. Only the
	// day-15 entry counts and days active run from the group start.
	start := testNow.Add(-10 * 24 * time.Hour)
	group := &models.Group{ID: "g1", StartDate: &start}
	memberships := []models.Membership{member("g1", "alice", nil)}
	entries := map[string][]models.WeightEntry{
		"alice": {
			entry("alice", 150, 0, daysAgo(15), false),
			entry("alice", 144, -4.0, daysAgo(5), false),
		},
	}

	got := MemberProgress(testNow, group, memberships, entries, map[string]string{"alice": "Alice"})
	if got[0].TotalEntries != 1 {
		t.Fatalf("entries = %d, want 1 (pre-start excluded)", got[0].TotalEntries)
	}
	if math.Abs(got[0].LatestChange-(-4.0)) > 0.001 {
		t.Errorf("latest = %v, want -4.0", got[0].LatestChange)
	}
	if got[0].DaysActive != 10 {
		t.Errorf("days active = %d, want 10 (from group start, not first entry)", got[0].DaysActive)
	}
}

func TestMemberProgressMemberWithNoEntries(t *testing.T) {
	group := &models.Group{ID: "g1"}
	memberships := []models.Membership{member("g1", "carol", nil)}

	got := MemberProgress(testNow, group, memberships, map[string][]models.WeightEntry{}, map[string]string{"carol": "Carol"})
	if len(got) != 1 {
		t.Fatalf("got %d summaries, want 1", len(got))
	}
	s := got[0]
	if s.LatestChange != 0 || s.BestChange != 0 || s.TotalEntries != 0 || s.DaysActive != 0 {
		t.Errorf("empty member should degrade to zeros, got %+v", s)
	}
}

func TestMemberProgressSortAscendingByLatestChange(t *testing.T) {
	group := &models.Group{ID: "g1"}
	memberships := []models.Membership{
		member("g1", "u1", nil),
		member("g1", "u2", nil),
		member("g1", "u3", nil),
	}
	entries := map[string][]models.WeightEntry{
		"u1": {entry("u1", 180, 3.0, daysAgo(1), false)},
		"u2": {entry("u2", 140, -8.5, daysAgo(1), false)},
		"u3": {entry("u3", 160, -2.0, daysAgo(1), false)},
	}
	names := map[string]string{"u1": "One", "u2": "Two", "u3": "Three"}

	got := MemberProgress(testNow, group, memberships, entries, names)
	order := []string{got[0].UserID, got[1].UserID, got[2].UserID}
	want := []string{"u2", "u3", "u1"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("rank order = %v, want %v", order, want)
		}
	}
}

func TestDaysActiveRoundsUp(t *testing.T) {
	// 36 hours ago -> ceil(36/24) = 2 days.
	group := &models.Group{ID: "g1"}
	memberships := []models.Membership{member("g1", "alice", nil)}
	entries := map[string][]models.WeightEntry{
		"alice": {entry("alice", 150, 0, testNow.Add(-36*time.Hour), false)},
	}

	got := MemberProgress(testNow, group, memberships, entries, map[string]string{"alice": "Alice"})
	if got[0].DaysActive != 2 {
		t.Errorf("days active = %d, want 2", got[0].DaysActive)
	}
}
