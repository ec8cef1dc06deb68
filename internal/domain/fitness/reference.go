package fitness

import "math"

// Gender selects the reference population.
type Gender string

// Gender values with reference data.
const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// AgeBracket is a five-year age range key into the reference table.
type AgeBracket string

// AgeBracket values in ascending order. The last bracket is open-ended.
const (
	Bracket20to24 AgeBracket = "20-24"
	Bracket25to29 AgeBracket = "25-29"
	Bracket30to34 AgeBracket = "30-34"
	Bracket35to39 AgeBracket = "35-39"
	Bracket40to44 AgeBracket = "40-44"
	Bracket45to49 AgeBracket = "45-49"
	Bracket50to54 AgeBracket = "50-54"
	Bracket55to59 AgeBracket = "55-59"
	Bracket60to64 AgeBracket = "60-64"
	Bracket65to69 AgeBracket = "65-69"
	Bracket70to74 AgeBracket = "70-74"
	Bracket75to79 AgeBracket = "75-79"
	Bracket80to84 AgeBracket = "80-84"
	Bracket85Plus AgeBracket = "85-"
)

// bracketLadder holds each bracket with its exclusive upper age bound.
var bracketLadder = [...]struct {
	bracket AgeBracket
	upper   int
}{
	{Bracket20to24, 25},
	{Bracket25to29, 30},
	{Bracket30to34, 35},
	{Bracket35to39, 40},
	{Bracket40to44, 45},
	{Bracket45to49, 50},
	{Bracket50to54, 55},
	{Bracket55to59, 60},
	{Bracket60to64, 65},
	{Bracket65to69, 70},
	{Bracket70to74, 75},
	{Bracket75to79, 80},
	{Bracket80to84, 85},
}

// Brackets returns every bracket in ascending order.
func Brackets() []AgeBracket {
	out := make([]AgeBracket, 0, len(bracketLadder)+1)
	for _, step := range bracketLadder {
		out = append(out, step.bracket)
	}
	return append(out, Bracket85Plus)
}

// ResolveBracket maps an age to its bracket using its whole years, so "67歳"
// and 67.9 are both 67. An absent or unparseable age resolves to the oldest
// bracket. Ages under 20 share the 20-24 bracket.
func ResolveBracket(age Value) AgeBracket {
	years, ok := age.Whole().Float()
	if !ok || math.IsNaN(years) {
		return defaultBracket()
	}
	for _, step := range bracketLadder {
		if years < float64(step.upper) {
			return step.bracket
		}
	}
	return Bracket85Plus
}

// ResolveBracketYears resolves a whole number of years.
func ResolveBracketYears(years int) AgeBracket {
	return ResolveBracket(Number(float64(years)))
}

// defaultBracket is used when age cannot be resolved.
func defaultBracket() AgeBracket {
	return Bracket85Plus
}

// defaultGender is the reference population for unknown gender tokens.
func defaultGender() Gender {
	return GenderFemale
}

// ReferenceValues maps each metric to its population average.
type ReferenceValues map[MetricID]float64

func (v ReferenceValues) clone() ReferenceValues {
	out := make(ReferenceValues, len(v))
	for id, val := range v {
		out[id] = val
	}
	return out
}

// ReferenceCell is the outcome of a reference lookup after fallbacks.
type ReferenceCell struct {
	Gender  Gender          `json:"gender"`
	Bracket AgeBracket      `json:"bracket"`
	Values  ReferenceValues `json:"values"`
}

// LookupReference returns the reference cell for a gender token and bracket.
// Unknown gender tokens use the default population at the oldest bracket;
// a bracket missing for a known gender falls back to that gender's oldest bracket.
func LookupReference(gender string, bracket AgeBracket) ReferenceCell {
	byBracket, ok := referenceTable[Gender(gender)]
	if !ok {
		fallback := defaultGender()
		return ReferenceCell{
			Gender:  fallback,
			Bracket: defaultBracket(),
			Values:  referenceTable[fallback][defaultBracket()].clone(),
		}
	}
	values, ok := byBracket[bracket]
	if !ok {
		return ReferenceCell{Gender: Gender(gender), Bracket: defaultBracket(), Values: byBracket[defaultBracket()].clone()}
	}
	return ReferenceCell{Gender: Gender(gender), Bracket: bracket, Values: values.clone()}
}

// Source: Japan Sports Agency physical fitness survey (FY2023), estimated per bracket.
var referenceTable = map[Gender]map[AgeBracket]ReferenceValues{
	GenderMale: {
		Bracket20to24: {MetricGrip: 46.5, MetricCalf: 37.0, MetricOneLeg: 120, MetricFiveStand: 6.0, MetricTUG: 5.3, MetricWalk: 4.5},
		Bracket25to29: {MetricGrip: 46.9, MetricCalf: 37.2, MetricOneLeg: 120, MetricFiveStand: 6.2, MetricTUG: 5.4, MetricWalk: 4.6},
		Bracket30to34: {MetricGrip: 47.2, MetricCalf: 37.5, MetricOneLeg: 120, MetricFiveStand: 6.4, MetricTUG: 5.5, MetricWalk: 4.8},
		Bracket35to39: {MetricGrip: 47.0, MetricCalf: 37.8, MetricOneLeg: 120, MetricFiveStand: 6.6, MetricTUG: 5.6, MetricWalk: 5.0},
		Bracket40to44: {MetricGrip: 46.8, MetricCalf: 38.0, MetricOneLeg: 120, MetricFiveStand: 6.8, MetricTUG: 5.7, MetricWalk: 5.2},
		Bracket45to49: {MetricGrip: 46.0, MetricCalf: 38.1, MetricOneLeg: 118, MetricFiveStand: 7.0, MetricTUG: 5.8, MetricWalk: 5.3},
		Bracket50to54: {MetricGrip: 45.2, MetricCalf: 38.0, MetricOneLeg: 110, MetricFiveStand: 7.2, MetricTUG: 6.0, MetricWalk: 5.5},
		Bracket55to59: {MetricGrip: 43.5, MetricCalf: 37.5, MetricOneLeg: 100, MetricFiveStand: 7.4, MetricTUG: 6.2, MetricWalk: 5.6},
		Bracket60to64: {MetricGrip: 41.5, MetricCalf: 36.8, MetricOneLeg: 95, MetricFiveStand: 7.6, MetricTUG: 6.4, MetricWalk: 5.8},
		Bracket65to69: {MetricGrip: 39.0, MetricCalf: 36.2, MetricOneLeg: 78, MetricFiveStand: 8.2, MetricTUG: 6.8, MetricWalk: 6.2},
		Bracket70to74: {MetricGrip: 36.5, MetricCalf: 35.5, MetricOneLeg: 58, MetricFiveStand: 9.2, MetricTUG: 7.5, MetricWalk: 6.7},
		Bracket75to79: {MetricGrip: 33.0, MetricCalf: 34.5, MetricOneLeg: 36, MetricFiveStand: 10.5, MetricTUG: 8.4, MetricWalk: 7.3},
		Bracket80to84: {MetricGrip: 29.0, MetricCalf: 33.2, MetricOneLeg: 18, MetricFiveStand: 12.8, MetricTUG: 9.8, MetricWalk: 8.5},
		Bracket85Plus: {MetricGrip: 25.0, MetricCalf: 31.8, MetricOneLeg: 8, MetricFiveStand: 15.2, MetricTUG: 11.5, MetricWalk: 9.8},
	},
	GenderFemale: {
		Bracket20to24: {MetricGrip: 28.2, MetricCalf: 34.0, MetricOneLeg: 120, MetricFiveStand: 6.8, MetricTUG: 6.0, MetricWalk: 4.8},
		Bracket25to29: {MetricGrip: 28.8, MetricCalf: 34.2, MetricOneLeg: 120, MetricFiveStand: 6.9, MetricTUG: 6.1, MetricWalk: 4.9},
		Bracket30to34: {MetricGrip: 29.0, MetricCalf: 34.5, MetricOneLeg: 120, MetricFiveStand: 7.1, MetricTUG: 6.2, MetricWalk: 5.1},
		Bracket35to39: {MetricGrip: 29.2, MetricCalf: 34.8, MetricOneLeg: 120, MetricFiveStand: 7.3, MetricTUG: 6.3, MetricWalk: 5.3},
		Bracket40to44: {MetricGrip: 29.0, MetricCalf: 35.0, MetricOneLeg: 120, MetricFiveStand: 7.5, MetricTUG: 6.4, MetricWalk: 5.5},
		Bracket45to49: {MetricGrip: 28.5, MetricCalf: 35.1, MetricOneLeg: 118, MetricFiveStand: 7.7, MetricTUG: 6.5, MetricWalk: 5.6},
		Bracket50to54: {MetricGrip: 27.5, MetricCalf: 35.0, MetricOneLeg: 110, MetricFiveStand: 7.9, MetricTUG: 6.6, MetricWalk: 5.8},
		Bracket55to59: {MetricGrip: 26.0, MetricCalf: 34.5, MetricOneLeg: 100, MetricFiveStand: 8.1, MetricTUG: 6.8, MetricWalk: 6.0},
		Bracket60to64: {MetricGrip: 24.5, MetricCalf: 33.8, MetricOneLeg: 85, MetricFiveStand: 8.4, MetricTUG: 7.0, MetricWalk: 6.2},
		Bracket65to69: {MetricGrip: 23.5, MetricCalf: 33.2, MetricOneLeg: 70, MetricFiveStand: 8.8, MetricTUG: 7.4, MetricWalk: 6.5},
		Bracket70to74: {MetricGrip: 22.0, MetricCalf: 32.5, MetricOneLeg: 49, MetricFiveStand: 9.8, MetricTUG: 8.1, MetricWalk: 7.0},
		Bracket75to79: {MetricGrip: 20.5, MetricCalf: 31.8, MetricOneLeg: 28, MetricFiveStand: 11.2, MetricTUG: 9.2, MetricWalk: 7.8},
		Bracket80to84: {MetricGrip: 18.0, MetricCalf: 30.5, MetricOneLeg: 12, MetricFiveStand: 13.5, MetricTUG: 11.0, MetricWalk: 9.0},
		Bracket85Plus: {MetricGrip: 15.0, MetricCalf: 29.0, MetricOneLeg: 5, MetricFiveStand: 16.8, MetricTUG: 13.5, MetricWalk: 11.2},
	},
}
