package metrics

import (
	"math"
	"testing"
)

func TestBMI(t *testing.T) {
	tests := []struct {
		name     string
		weightLb float64
		heightCm float64
		want     float64
		wantErr  bool
	}{
		// 154.32 lb = 70 kg, 1.75 m -> 70 / 3.0625 = 22.857
		{name: "typical adult", weightLb: 70 * 2.20462, heightCm: 175, want: 22.857142},
		{name: "taller same weight", weightLb: 70 * 2.20462, heightCm: 190, want: 19.390581},
		{name: "zero weight rejected", weightLb: 0, heightCm: 175, wantErr: true},
		{name: "zero height rejected", weightLb: 150, heightCm: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BMI(tt.weightLb, tt.heightCm)
			if (err != nil) != tt.wantErr {
				t.Fatalf("BMI() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("BMI() = %v, want %v", got, tt.want)
			}
		})
	}
}

// The category boundaries must partition the real line with no gaps or
// overlaps at 18.5, 25.0, 30.0 and 35.0 (upper bound exclusive).
func TestCategorizeBMI(t *testing.T) {
	tests := []struct {
		bmi  float64
		want BMICategory
	}{
		{bmi: 10, want: CategoryUnderweight},
		{bmi: 18.4999, want: CategoryUnderweight},
		{bmi: 18.5, want: CategoryNormal},
		{bmi: 24.9999, want: CategoryNormal},
		{bmi: 25.0, want: CategoryOverweight},
		{bmi: 29.9999, want: CategoryOverweight},
		{bmi: 30.0, want: CategoryObese},
		{bmi: 34.9999, want: CategoryObese},
		{bmi: 35.0, want: CategorySeverelyObese},
		{bmi: 60, want: CategorySeverelyObese},
	}

	for _, tt := range tests {
		if got := CategorizeBMI(tt.bmi); got != tt.want {
			t.Errorf("CategorizeBMI(%v) = %v, want %v", tt.bmi, got, tt.want)
		}
	}
}

func TestDailyCalories(t *testing.T) {
	// 70 kg, 175 cm, age 30, male:
	// BMR = 700 + 1093.75 - 150 + 5 = 1648.75; maintenance = 1648.75 * 1.4
	est, err := DailyCalories(70*2.20462, 175, 30, SexMale)
	if err != nil {
		t.Fatal(err)
	}
	wantMaintenance := 1648.75 * 1.4
	if math.Abs(est.Maintenance-wantMaintenance) > 0.01 {
		t.Errorf("Maintenance = %v, want %v", est.Maintenance, wantMaintenance)
	}
	if math.Abs(est.LossTarget-wantMaintenance*0.85) > 0.01 {
		t.Errorf("LossTarget = %v, want %v", est.LossTarget, wantMaintenance*0.85)
	}
	if math.Abs(est.GainTarget-wantMaintenance*1.15) > 0.01 {
		t.Errorf("GainTarget = %v, want %v", est.GainTarget, wantMaintenance*1.15)
	}

	// Female constant differs by -166 vs male.
	female, err := DailyCalories(70*2.20462, 175, 30, SexFemale)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs((est.Maintenance-female.Maintenance)-166*1.4) > 0.01 {
		t.Errorf("male/female maintenance delta = %v, want %v",
			est.Maintenance-female.Maintenance, 166*1.4)
	}

	if _, err := DailyCalories(0, 175, 30, SexMale); err == nil {
		t.Error("expected error for zero weight")
	}
	if _, err := DailyCalories(150, 175, 0, SexMale); err == nil {
		t.Error("expected error for zero age")
	}
}
