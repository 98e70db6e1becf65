package progress

import (
	"testing"
	"time"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestEligible(t *testing.T) {
	tests := []struct {
		name           string
		lastEntryAt    *time.Time
		lastReminderAt *time.Time
		want           bool
	}{
		{
			name:        "entry 6 days ago, never reminded",
			lastEntryAt: timePtr(daysAgo(6)),
			want:        true,
		},
		{
			name:           "entry 6 days ago, reminded 2 days ago",
			lastEntryAt:    timePtr(daysAgo(6)),
			lastReminderAt: timePtr(daysAgo(2)),
			want:           false,
		},
		{
			name:           "entry 6 days ago, reminded 5 days ago",
			lastEntryAt:    timePtr(daysAgo(6)),
			lastReminderAt: timePtr(daysAgo(5)),
			want:           true,
		},
		{
			name:        "entry 2 days ago",
			lastEntryAt: timePtr(daysAgo(2)),
			want:        false,
		},
		{
			name: "never logged, never reminded",
			want: true,
		},
		{
			name:           "never logged, reminded 3 days ago",
			lastReminderAt: timePtr(daysAgo(3)),
			want:           false,
		},
		{
			name:        "entry exactly 5 days ago",
			lastEntryAt: timePtr(daysAgo(5)),
			want:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ReminderCandidate{
				GroupID:        "g1",
				UserID:         "u1",
				LastEntryAt:    tt.lastEntryAt,
				LastReminderAt: tt.lastReminderAt,
			}
			if got := Eligible(testNow, c); got != tt.want {
				t.Errorf("Eligible() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelectReminders(t *testing.T) {
	candidates := []ReminderCandidate{
		{GroupID: "g1", UserID: "idle", LastEntryAt: timePtr(daysAgo(7))},
		{GroupID: "g1", UserID: "fresh", LastEntryAt: timePtr(daysAgo(1))},
		{GroupID: "g2", UserID: "nagged", LastEntryAt: timePtr(daysAgo(9)), LastReminderAt: timePtr(daysAgo(1))},
	}

	got := SelectReminders(testNow, candidates)
	if len(got) != 1 {
		t.Fatalf("got %d eligible, want 1", len(got))
	}
	if got[0].UserID != "idle" {
		t.Errorf("eligible user = %s, want idle", got[0].UserID)
	}
}
