package fitness

// BMIStatus is the weight category shown next to the BMI value.
type BMIStatus string

// BMIStatus values.
const (
	BMIUnderweight BMIStatus = "低体重"
	BMINormal      BMIStatus = "普通"
	BMIOverweight  BMIStatus = "肥満傾向"
)

// BMIResult is present only when both height and weight are usable.
type BMIResult struct {
	Value  string    `json:"value"`
	Status BMIStatus `json:"status"`
}

// CalculateBMI expects height in centimeters and weight in kilograms.
func CalculateBMI(heightCm, weightKg float64) (float64, bool) {
	h := heightCm / 100.0
	if h <= 0 || weightKg <= 0 {
		return 0, false
	}
	return weightKg / (h * h), true
}

// ClassifyBMI buckets an unrounded BMI.
func ClassifyBMI(bmi float64) BMIStatus {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi >= 25:
		return BMIOverweight
	default:
		return BMINormal
	}
}

// EvaluateBMI returns nil unless height and weight are both positive.
// Trailing units such as "170cm" are ignored.
func EvaluateBMI(height, weight Value) *BMIResult {
	h, ok := height.Leading().Float()
	if !ok {
		return nil
	}
	w, ok := weight.Leading().Float()
	if !ok {
		return nil
	}
	bmi, ok := CalculateBMI(h, w)
	if !ok {
		return nil
	}
	return &BMIResult{Value: formatOneDecimal(bmi), Status: ClassifyBMI(bmi)}
}
