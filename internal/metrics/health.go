package metrics

import "fmt"

// Defaults used when the profile does not carry the field.
const (
	DefaultAge      = 30
	defaultActivity = 1.4
)

// Sex is used by the Mifflin-St Jeor BMR formula.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// BMICategory buckets a BMI value. Boundaries are upper-bound exclusive.
type BMICategory string

const (
	CategoryUnderweight   BMICategory = "underweight"
	CategoryNormal        BMICategory = "normal"
	CategoryOverweight    BMICategory = "overweight"
	CategoryObese         BMICategory = "obese"
	CategorySeverelyObese BMICategory = "severely_obese"
)

// BMI computes body mass index from canonical units (pounds, centimeters).
func BMI(weightLb, heightCm float64) (float64, error) {
	if weightLb <= 0 {
		return 0, fmt.Errorf("weight must be positive, got %v", weightLb)
	}
	if heightCm <= 0 {
		return 0, fmt.Errorf("height must be positive, got %v", heightCm)
	}
	weightKg := weightLb / LbPerKg
	heightM := heightCm / 100
	return weightKg / (heightM * heightM), nil
}

// CategorizeBMI maps a BMI value to its category. The thresholds partition
// the whole real line, so every value lands in exactly one bucket.
func CategorizeBMI(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return CategoryUnderweight
	case bmi < 25.0:
		return CategoryNormal
	case bmi < 30.0:
		return CategoryOverweight
	case bmi < 35.0:
		return CategoryObese
	default:
		return CategorySeverelyObese
	}
}

// CalorieEstimate is the daily caloric need derived from a profile,
// with weight-loss and weight-gain targets at ±15%.
type CalorieEstimate struct {
	Maintenance float64 `json:"maintenance"`
	LossTarget  float64 `json:"loss_target"`
	GainTarget  float64 `json:"gain_target"`
}

// DailyCalories estimates daily caloric need using Mifflin-St Jeor BMR
// scaled by a fixed lightly-active factor. Inputs are canonical units;
// age and sex fall back to defaults upstream when unknown.
func DailyCalories(weightLb, heightCm float64, age int, sex Sex) (CalorieEstimate, error) {
	if weightLb <= 0 || heightCm <= 0 {
		return CalorieEstimate{}, fmt.Errorf("weight and height must be positive")
	}
	if age <= 0 {
		return CalorieEstimate{}, fmt.Errorf("age must be positive, got %d", age)
	}

	weightKg := weightLb / LbPerKg
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if sex == SexFemale {
		bmr -= 161
	} else {
		bmr += 5
	}

	maintenance := bmr * defaultActivity
	return CalorieEstimate{
		Maintenance: maintenance,
		LossTarget:  maintenance * 0.85,
		GainTarget:  maintenance * 1.15,
	}, nil
}
