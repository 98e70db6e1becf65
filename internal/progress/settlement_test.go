package progress

import (
	"math"
	"testing"

	"weight-circle-backend/internal/models"
)

func TestComputeSettlement(t *testing.T) {
	// A lost 10 lbs (200 -> 190), B gained 5 lbs (150 -> 155).
	memberships := []models.Membership{
		member("g1", "a", nil),
		member("g1", "b", nil),
	}
	entries := map[string][]models.WeightEntry{
		"a": {
			entry("a", 200, 0, daysAgo(30), false),
			entry("a", 190, -5.0, daysAgo(1), false),
		},
		"b": {
			entry("b", 150, 0, daysAgo(30), false),
			entry("b", 155, 3.33, daysAgo(1), false),
		},
	}
	names := map[string]string{"a": "A", "b": "B"}

	got := ComputeSettlement(memberships, entries, names, nil)
	if len(got.Members) != 1 {
		t.Fatalf("got %d settlement members, want 1 (gainers excluded)", len(got.Members))
	}
	a := got.Members[0]
	if a.UserID != "a" {
		t.Fatalf("settlement member = %s, want a", a.UserID)
	}
	if a.WeightLoss != 10.0 {
		t.Errorf("weight loss = %v, want 10.0", a.WeightLoss)
	}
	if a.WeightLossPercentage != 5.0 {
		t.Errorf("loss percentage = %v, want 5.0", a.WeightLossPercentage)
	}
	if got.TotalWeightLost != 10.0 {
		t.Errorf("total = %v, want 10.0", got.TotalWeightLost)
	}
}

func TestComputeSettlementRounding(t *testing.T) {
	memberships := []models.Membership{
		member("g1", "a", nil),
		member("g1", "b", nil),
	}
	entries := map[string][]models.WeightEntry{
		"a": {
			entry("a", 187.456, 0, daysAgo(20), false),
			entry("a", 181.123, -3.38, daysAgo(1), false),
		},
		"b": {
			entry("b", 203.9, 0, daysAgo(20), false),
			entry("b", 199.567, -2.13, daysAgo(2), false),
		},
	}

	got := ComputeSettlement(memberships, entries, map[string]string{"a": "A", "b": "B"}, nil)
	if len(got.Members) != 2 {
		t.Fatalf("got %d members, want 2", len(got.Members))
	}

	// Every listed loss has at most 2 decimals and the total is their sum.
	sum := 0.0
	for _, m := range got.Members {
		if math.Abs(m.WeightLoss*100-math.Round(m.WeightLoss*100)) > 1e-9 {
			t.Errorf("loss %v not rounded to 2 decimals", m.WeightLoss)
		}
		sum += m.WeightLoss
	}
	if math.Abs(got.TotalWeightLost-round2(sum)) > 1e-9 {
		t.Errorf("total = %v, want sum of losses %v", got.TotalWeightLost, round2(sum))
	}

	// Sorted descending by loss: a lost 6.33, b lost 4.33.
	if got.Members[0].UserID != "a" {
		t.Errorf("first member = %s, want a (largest loss)", got.Members[0].UserID)
	}
}

func TestComputeSettlementSkipsSparseHistories(t *testing.T) {
	memberships := []models.Membership{
		member("g1", "single", nil),
		member("g1", "none", nil),
		member("g1", "steady", nil),
	}
	entries := map[string][]models.WeightEntry{
		"single": {entry("single", 180, 0, daysAgo(5), false)},
		"steady": {
			entry("steady", 170, 0, daysAgo(10), false),
			entry("steady", 170, 0, daysAgo(1), false),
		},
	}
	names := map[string]string{"single": "S", "none": "N", "steady": "T"}

	got := ComputeSettlement(memberships, entries, names, nil)
	if len(got.Members) != 0 {
		t.Errorf("got %d members, want 0", len(got.Members))
	}
	if got.TotalWeightLost != 0 {
		t.Errorf("total = %v, want 0", got.TotalWeightLost)
	}
}

func TestComputeSettlementExcludesPrivateEntries(t *testing.T) {
	memberships := []models.Membership{member("g1", "a", nil)}
	entries := map[string][]models.WeightEntry{
		"a": {
			entry("a", 210, 0, daysAgo(30), true), // private, not first for settlement
			entry("a", 200, -4.76, daysAgo(20), false),
			entry("a", 195, -7.14, daysAgo(1), false),
		},
	}

	got := ComputeSettlement(memberships, entries, map[string]string{"a": "A"}, nil)
	if len(got.Members) != 1 {
		t.Fatalf("got %d members, want 1", len(got.Members))
	}
	if got.Members[0].WeightLoss != 5.0 {
		t.Errorf("loss = %v, want 5.0 (private first entry excluded)", got.Members[0].WeightLoss)
	}
}

func TestComputeSettlementIsRepeatable(t *testing.T) {
	memberships := []models.Membership{member("g1", "a", nil)}
	entries := map[string][]models.WeightEntry{
		"a": {
			entry("a", 200, 0, daysAgo(15), false),
			entry("a", 192.5, -3.75, daysAgo(1), false),
		},
	}
	names := map[string]string{"a": "A"}

	first := ComputeSettlement(memberships, entries, names, nil)
	second := ComputeSettlement(memberships, entries, names, nil)
	if first.TotalWeightLost != second.TotalWeightLost {
		t.Errorf("recomputation drifted: %v != %v", first.TotalWeightLost, second.TotalWeightLost)
	}
}
