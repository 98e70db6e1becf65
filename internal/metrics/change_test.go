package metrics

import (
	"math"
	"testing"
)

func TestPercentageChange(t *testing.T) {
	tests := []struct {
		name     string
		weight   float64
		baseline float64
		want     float64
		wantErr  bool
	}{
		{name: "no change", weight: 150, baseline: 150, want: 0},
		{name: "weight lost is negative", weight: 145, baseline: 150, want: -3.3333333},
		{name: "more weight lost", weight: 140, baseline: 150, want: -6.6666667},
		{name: "weight gained is positive", weight: 165, baseline: 150, want: 10},
		{name: "zero baseline rejected", weight: 150, baseline: 0, wantErr: true},
		{name: "negative baseline rejected", weight: 150, baseline: -10, wantErr: true},
		{name: "zero weight rejected", weight: 0, baseline: 150, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PercentageChange(tt.weight, tt.baseline)
			if (err != nil) != tt.wantErr {
				t.Fatalf("PercentageChange() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if math.Abs(got-tt.want) > 0.0001 {
				t.Errorf("PercentageChange() = %v, want %v", got, tt.want)
			}
		})
	}
}

// The stored change of an entry depends only on its own weight and the fixed
// baseline, never on entries recorded in between.
func TestChangeIndependentOfIntermediateEntries(t *testing.T) {
	baseline := 200.0
	direct, err := PercentageChange(180, baseline)
	if err != nil {
		t.Fatal(err)
	}

	// Simulate many intermediate entries; the computation for 180 lb is
	// unchanged because only the baseline matters.
	for _, intermediate := range []float64{195, 210, 188, 179.5} {
		if _, err := PercentageChange(intermediate, baseline); err != nil {
			t.Fatal(err)
		}
	}
	again, err := PercentageChange(180, baseline)
	if err != nil {
		t.Fatal(err)
	}
	if direct != again {
		t.Errorf("change drifted: %v != %v", direct, again)
	}
	if math.Abs(direct-(-10.0)) > 0.0001 {
		t.Errorf("change = %v, want -10", direct)
	}
}

func TestChangeForNewEntry(t *testing.T) {
	// First entry: no baseline yet, change is exactly 0.
	got, err := ChangeForNewEntry(187.3, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0 {
		t.Errorf("first entry change = %v, want 0", got)
	}

	baseline := 150.0
	got, err = ChangeForNewEntry(140, &baseline)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-(-6.6666667)) > 0.0001 {
		t.Errorf("change = %v, want -6.67", got)
	}
}
