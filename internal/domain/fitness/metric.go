package fitness

// MetricID identifies one of the six measured items.
type MetricID string

// MetricID values for the canonical metric set.
const (
	MetricGrip      MetricID = "grip"
	MetricCalf      MetricID = "calf"
	MetricOneLeg    MetricID = "one_leg"
	MetricFiveStand MetricID = "five_stand"
	MetricTUG       MetricID = "tug"
	MetricWalk      MetricID = "walk"
)

// Direction tells whether a larger or a smaller value is the better result.
type Direction string

// Direction values.
const (
	HigherIsBetter Direction = "direct"
	LowerIsBetter  Direction = "inverse"
)

// MetricDefinition describes a metric. Direction is fixed per metric id.
type MetricDefinition struct {
	ID        MetricID  `json:"id"`
	Label     string    `json:"label"`
	Unit      string    `json:"unit"`
	Direction Direction `json:"direction"`
}

// Inverse reports whether smaller values are better for this metric.
func (d MetricDefinition) Inverse() bool {
	return d.Direction == LowerIsBetter
}

var metricDefinitions = [...]MetricDefinition{
	{ID: MetricGrip, Label: "握力", Unit: "kg", Direction: HigherIsBetter},
	{ID: MetricCalf, Label: "下腿周径", Unit: "cm", Direction: HigherIsBetter},
	{ID: MetricOneLeg, Label: "片脚立位", Unit: "秒", Direction: HigherIsBetter},
	{ID: MetricFiveStand, Label: "5回立ち", Unit: "秒", Direction: LowerIsBetter},
	{ID: MetricTUG, Label: "TUG", Unit: "秒", Direction: LowerIsBetter},
	{ID: MetricWalk, Label: "10m歩行", Unit: "秒", Direction: LowerIsBetter},
}

// Metrics returns the canonical metric list in display order.
func Metrics() []MetricDefinition {
	out := make([]MetricDefinition, len(metricDefinitions))
	copy(out, metricDefinitions[:])
	return out
}

// LookupMetric finds a metric definition by id.
func LookupMetric(id MetricID) (MetricDefinition, bool) {
	for _, def := range metricDefinitions {
		if def.ID == id {
			return def, true
		}
	}
	return MetricDefinition{}, false
}
