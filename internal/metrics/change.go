package metrics

import "fmt"

// PercentageChange computes the signed percent difference between a new
// weight and the user's baseline (first-ever recorded) weight. Negative
// values mean weight lost.
//
// The baseline is fixed for the lifetime of a user's history: the stored
// value of an entry is never recomputed when later entries arrive. A user's
// very first entry is its own baseline and therefore always yields 0.
func PercentageChange(newWeightLb, baselineLb float64) (float64, error) {
	if newWeightLb <= 0 {
		return 0, fmt.Errorf("weight must be positive, got %v", newWeightLb)
	}
	if baselineLb <= 0 {
		return 0, fmt.Errorf("baseline weight must be positive, got %v", baselineLb)
	}
	return (newWeightLb - baselineLb) / baselineLb * 100, nil
}

// ChangeForNewEntry computes the percentage change to store on a new entry
// given the user's existing baseline. A nil baseline means this is the
// user's first entry, which is its own baseline (0% change).
func ChangeForNewEntry(newWeightLb float64, baselineLb *float64) (float64, error) {
	if baselineLb == nil {
		return PercentageChange(newWeightLb, newWeightLb)
	}
	return PercentageChange(newWeightLb, *baselineLb)
}
