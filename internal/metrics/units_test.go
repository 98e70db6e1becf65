package metrics

import (
	"math"
	"testing"
)

const tolerance = 1e-6

func TestToCanonicalWeight(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		unit    WeightUnit
		want    float64
		wantErr bool
	}{
		{name: "pounds pass through", value: 150, unit: UnitPounds, want: 150},
		{name: "kilograms converted", value: 70, unit: UnitKilograms, want: 70 * 2.20462},
		{name: "zero weight rejected", value: 0, unit: UnitPounds, wantErr: true},
		{name: "negative weight rejected", value: -5, unit: UnitKilograms, wantErr: true},
		{name: "unknown unit rejected", value: 150, unit: "stone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToCanonicalWeight(tt.value, tt.unit)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ToCanonicalWeight() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if math.Abs(got-tt.want) > tolerance {
				t.Errorf("ToCanonicalWeight() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWeightRoundTrip(t *testing.T) {
	for _, unit := range []WeightUnit{UnitPounds, UnitKilograms} {
		for _, value := range []float64{0.5, 68.2, 150, 423.75} {
			canonical, err := ToCanonicalWeight(value, unit)
			if err != nil {
				t.Fatalf("ToCanonicalWeight(%v, %s) error: %v", value, unit, err)
			}
			back, err := FromCanonicalWeight(canonical, unit)
			if err != nil {
				t.Fatalf("FromCanonicalWeight(%v, %s) error: %v", canonical, unit, err)
			}
			if math.Abs(back-value) > tolerance {
				t.Errorf("round trip %v %s = %v, want %v", value, unit, back, value)
			}
		}
	}
}

func TestToCanonicalHeight(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		inches  float64
		unit    HeightUnit
		want    float64
		wantErr bool
	}{
		{name: "centimeters pass through", value: 178, unit: UnitCentimeters, want: 178},
		{name: "feet and inches combined", value: 5, inches: 10, unit: UnitFeetInches, want: 70 * 2.54},
		{name: "inches only", value: 0, inches: 63, unit: UnitFeetInches, want: 63 * 2.54},
		{name: "zero centimeters rejected", value: 0, unit: UnitCentimeters, wantErr: true},
		{name: "all-zero feet rejected", value: 0, inches: 0, unit: UnitFeetInches, wantErr: true},
		{name: "negative inches rejected", value: 5, inches: -2, unit: UnitFeetInches, wantErr: true},
		{name: "unknown unit rejected", value: 178, unit: "m", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToCanonicalHeight(tt.value, tt.inches, tt.unit)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ToCanonicalHeight() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if math.Abs(got-tt.want) > tolerance {
				t.Errorf("ToCanonicalHeight() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHeightRoundTrip(t *testing.T) {
	for _, cm := range []float64{91.44, 152.4, 178, 203.2} {
		back, err := FromCanonicalHeight(cm, UnitCentimeters)
		if err != nil {
			t.Fatalf("FromCanonicalHeight(%v, cm) error: %v", cm, err)
		}
		if math.Abs(back-cm) > tolerance {
			t.Errorf("cm round trip = %v, want %v", back, cm)
		}

		inches, err := FromCanonicalHeight(cm, UnitFeetInches)
		if err != nil {
			t.Fatalf("FromCanonicalHeight(%v, ft) error: %v", cm, err)
		}
		again, err := ToCanonicalHeight(0, inches, UnitFeetInches)
		if err != nil {
			t.Fatalf("ToCanonicalHeight(0, %v, ft) error: %v", inches, err)
		}
		if math.Abs(again-cm) > tolerance {
			t.Errorf("ft round trip = %v, want %v", again, cm)
		}
	}
}
