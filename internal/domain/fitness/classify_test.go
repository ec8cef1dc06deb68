package fitness

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyDeadband(t *testing.T) {
	grip, _ := LookupMetric(MetricGrip)
	walk, _ := LookupMetric(MetricWalk)

	require.Equal(t, StatusGood, Classify(grip, Number(44.1), 40))
	require.Equal(t, StatusAverage, Classify(grip, Number(44), 40))
	require.Equal(t, StatusAverage, Classify(grip, Number(36), 40))
	require.Equal(t, StatusBad, Classify(grip, Number(35.9), 40))

	require.Equal(t, StatusGood, Classify(walk, Number(4.4), 5))
	require.Equal(t, StatusAverage, Classify(walk, Number(5.4), 5))
	require.Equal(t, StatusBad, Classify(walk, Number(5.6), 5))

	require.Equal(t, StatusAverage, Classify(walk, Value{}, 5))
	require.Equal(t, StatusAverage, Classify(grip, Value{}, 40))
}

func TestClassifyEqualToReferenceIsAverage(t *testing.T) {
	for _, def := range Metrics() {
		for _, ref := range referenceTable[GenderMale] {
			require.Equal(t, StatusAverage, Classify(def, Number(ref[def.ID]), ref[def.ID]), def.ID)
		}
	}
}

func TestClassifyDirectionIsMonotonic(t *testing.T) {
	const reference = 10.0
	for _, def := range Metrics() {
		prevRank := -1
		for step := 0; step <= 400; step++ {
			v := float64(step) * 0.05
			if def.Inverse() {
				v = 20 - v
			}
			rank := Classify(def, Number(v), reference).Rank()
			require.GreaterOrEqual(t, rank, prevRank, "%s at %v", def.ID, v)
			prevRank = rank
		}
	}
}

func TestScore(t *testing.T) {
	grip, _ := LookupMetric(MetricGrip)
	fiveStand, _ := LookupMetric(MetricFiveStand)

	require.Equal(t, "97.4", Score(grip, Number(38), 39.0))
	require.Equal(t, "102.5", Score(fiveStand, Number(8.0), 8.2))
	require.Equal(t, "0", Score(grip, Value{}, 39.0))
	require.Equal(t, "0", Score(fiveStand, Number(0.1), 8.2))
	require.Equal(t, "0", Score(fiveStand, Number(0), 8.2))
	require.Equal(t, "3.5", Score(fiveStand, Number(200), 7.1))
}

func TestFormatOneDecimalRoundsExactValue(t *testing.T) {
	cases := map[float64]string{
		7.55:               "7.5",
		0.25:               "0.3",
		1.25:               "1.3",
		102.49999999999999: "102.5",
		97.43589743589743:  "97.4",
		25:                 "25.0",
		0:                  "0.0",
		-0.25:              "-0.3",
	}
	for v, want := range cases {
		require.Equal(t, want, formatOneDecimal(v), "value %v", v)
	}
}

func TestScoreAtReferenceIsHundred(t *testing.T) {
	for _, def := range Metrics() {
		for _, byBracket := range referenceTable {
			for _, ref := range byBracket {
				require.Equal(t, "100.0", Score(def, Number(ref[def.ID]), ref[def.ID]))
			}
		}
	}
}

func TestClassifyAllUsesCanonicalOrder(t *testing.T) {
	curr := MeasurementSet{MetricWalk: Number(4), MetricGrip: Number(52)}
	rows := ClassifyAll(curr, LookupReference("male", Bracket20to24).Values)

	ids := make([]MetricID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	require.Equal(t, []MetricID{MetricGrip, MetricCalf, MetricOneLeg, MetricFiveStand, MetricTUG, MetricWalk}, ids)
	require.Equal(t, StatusGood, rows[0].Status)
	require.Equal(t, StatusAverage, rows[1].Status)
	require.False(t, rows[1].UserVal.Present())
	require.Equal(t, "握力", rows[0].Label)
	require.Equal(t, "kg", rows[0].Unit)
}

func TestHasMissingData(t *testing.T) {
	full := MeasurementSet{
		MetricGrip: Number(1), MetricCalf: Number(1), MetricOneLeg: Number(1),
		MetricFiveStand: Number(1), MetricTUG: Number(1), MetricWalk: Number(0),
	}
	require.False(t, HasMissingData(full))

	for _, def := range Metrics() {
		partial := MeasurementSet{}
		for id, v := range full {
			partial[id] = v
		}
		partial[def.ID] = Value{}
		require.True(t, HasMissingData(partial), def.ID)

		delete(partial, def.ID)
		require.True(t, HasMissingData(partial), def.ID)
	}
	require.True(t, HasMissingData(nil))
}
