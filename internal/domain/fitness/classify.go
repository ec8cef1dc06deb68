package fitness

import (
	"math"
	"math/big"
	"strconv"
)

// Status is the per-metric comparison outcome.
type Status string

// Status values as sent to clients.
const (
	StatusGood    Status = "good"
	StatusAverage Status = "avg"
	StatusBad     Status = "bad"
)

// Rank orders statuses bad < average < good.
func (s Status) Rank() int {
	switch s {
	case StatusGood:
		return 2
	case StatusBad:
		return 0
	default:
		return 1
	}
}

// deadband is the relative zone around the reference that counts as average.
const deadband = 0.1

// minInverseValue guards inverse scores against zero and near-zero timings.
const minInverseValue = 0.1

// ClassifiedMetric is one row of the comparison table.
type ClassifiedMetric struct {
	ID      MetricID `json:"id"`
	Label   string   `json:"label"`
	Unit    string   `json:"unit"`
	UserVal Value    `json:"userVal"`
	AvgVal  float64  `json:"avgVal"`
	Status  Status   `json:"status"`
}

// Classify compares a user value with the reference using a ±10% deadband.
// Absent values are average.
func Classify(def MetricDefinition, user Value, reference float64) Status {
	v, ok := user.Float()
	if !ok {
		return StatusAverage
	}
	lower := reference * (1 - deadband)
	upper := reference * (1 + deadband)
	if def.Inverse() {
		switch {
		case v < lower:
			return StatusGood
		case v > upper:
			return StatusBad
		}
		return StatusAverage
	}
	switch {
	case v > upper:
		return StatusGood
	case v < lower:
		return StatusBad
	}
	return StatusAverage
}

// ClassifyAll builds the table in canonical metric order.
func ClassifyAll(curr MeasurementSet, reference ReferenceValues) []ClassifiedMetric {
	rows := make([]ClassifiedMetric, 0, len(metricDefinitions))
	for _, def := range metricDefinitions {
		user := curr.Get(def.ID)
		ref := reference[def.ID]
		rows = append(rows, ClassifiedMetric{
			ID:      def.ID,
			Label:   def.Label,
			Unit:    def.Unit,
			UserVal: user,
			AvgVal:  ref,
			Status:  Classify(def, user, ref),
		})
	}
	return rows
}

// HasMissingData reports whether any canonical metric is absent from curr.
func HasMissingData(curr MeasurementSet) bool {
	for _, def := range metricDefinitions {
		if !curr.Get(def.ID).Present() {
			return true
		}
	}
	return false
}

// Score normalizes a user value to a percentage of the reference, formatted
// with one decimal. Absent values and inverse values <= 0.1 score "0".
func Score(def MetricDefinition, user Value, reference float64) string {
	v, ok := user.Float()
	if !ok {
		return "0"
	}
	if def.Inverse() {
		if v <= minInverseValue {
			return "0"
		}
		return formatOneDecimal(reference / v * 100)
	}
	return formatOneDecimal(v / reference * 100)
}

// formatOneDecimal rounds the exact binary value of v to tenths, with ties
// away from zero. Scaling by ten in floating point first would round twice.
func formatOneDecimal(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	r := new(big.Rat).SetFloat64(v)
	r.Mul(r, big.NewRat(10, 1))
	r.Add(r, big.NewRat(1, 2))
	tenths := new(big.Int).Quo(r.Num(), r.Denom())
	whole, frac := new(big.Int).QuoRem(tenths, big.NewInt(10), new(big.Int))
	return sign + whole.String() + "." + frac.String()
}
