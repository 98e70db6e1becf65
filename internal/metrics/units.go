package metrics

import "fmt"

// Canonical storage units: weight in pounds, height in centimeters.
const (
	LbPerKg = 2.20462
	CmPerIn = 2.54
	InPerFt = 12.0
)

// WeightUnit identifies the unit a client submitted a weight in.
type WeightUnit string

const (
	UnitPounds    WeightUnit = "lb"
	UnitKilograms WeightUnit = "kg"
)

// HeightUnit identifies the unit a client submitted a height in.
type HeightUnit string

const (
	UnitCentimeters HeightUnit = "cm"
	UnitFeetInches  HeightUnit = "ft"
)

// ToCanonicalWeight converts a weight to pounds.
// The value must be strictly positive.
func ToCanonicalWeight(value float64, unit WeightUnit) (float64, error) {
	if value <= 0 {
		return 0, fmt.Errorf("weight must be positive, got %v", value)
	}
	switch unit {
	case UnitPounds:
		return value, nil
	case UnitKilograms:
		return value * LbPerKg, nil
	default:
		return 0, fmt.Errorf("unknown weight unit %q", unit)
	}
}

// FromCanonicalWeight converts a weight in pounds back to the given unit.
func FromCanonicalWeight(pounds float64, unit WeightUnit) (float64, error) {
	if pounds <= 0 {
		return 0, fmt.Errorf("weight must be positive, got %v", pounds)
	}
	switch unit {
	case UnitPounds:
		return pounds, nil
	case UnitKilograms:
		return pounds / LbPerKg, nil
	default:
		return 0, fmt.Errorf("unknown weight unit %q", unit)
	}
}

// ToCanonicalHeight converts a height to centimeters.
// For UnitFeetInches, feet and inches are combined; for UnitCentimeters,
// inches is ignored.
func ToCanonicalHeight(value, inches float64, unit HeightUnit) (float64, error) {
	switch unit {
	case UnitCentimeters:
		if value <= 0 {
			return 0, fmt.Errorf("height must be positive, got %v", value)
		}
		return value, nil
	case UnitFeetInches:
		if value < 0 || inches < 0 {
			return 0, fmt.Errorf("height components must not be negative")
		}
		totalInches := value*InPerFt + inches
		if totalInches <= 0 {
			return 0, fmt.Errorf("height must be positive")
		}
		return totalInches * CmPerIn, nil
	default:
		return 0, fmt.Errorf("unknown height unit %q", unit)
	}
}

// FromCanonicalHeight converts centimeters back to the given unit.
// For UnitFeetInches the result is total inches; callers split into
// feet and inches for display.
func FromCanonicalHeight(cm float64, unit HeightUnit) (float64, error) {
	if cm <= 0 {
		return 0, fmt.Errorf("height must be positive, got %v", cm)
	}
	switch unit {
	case UnitCentimeters:
		return cm, nil
	case UnitFeetInches:
		return cm / CmPerIn, nil
	default:
		return 0, fmt.Errorf("unknown height unit %q", unit)
	}
}
