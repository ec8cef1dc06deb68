package fitness

import (
	"encoding/json"
	"fmt"
)

const (
	historyMessage    = "前回測定値との比較"
	historySubMessage = "実数値を棒グラフで表示しています"
	peerMessageFormat = "%s歳 同年代平均との比較"
	peerSubMessage    = "グラフは平均比(%)、下表は実数です。"

	previousLabel  = "前回"
	currentLabel   = "今回"
	scoreLabel     = "あなたの能力値 (%)"
	referenceLabel = "平均 (100%)"

	// referenceScore is the peer baseline every score is measured against.
	referenceScore = "100"
)

// absentSeriesValue stands in for a missing measurement in history bars so
// the previous and current series stay aligned.
const absentSeriesValue = "0"

// BuildReport runs the full pipeline for one request. It never fails:
// unusable inputs degrade to documented defaults.
func BuildReport(req Request) Report {
	bracket := ResolveBracket(req.Age)
	cell := LookupReference(req.Gender, bracket)
	table := ClassifyAll(req.Curr, cell.Values)

	report := Report{
		BMIInfo:     EvaluateBMI(req.Height, req.Weight),
		TableData:   table,
		MissingData: HasMissingData(req.Curr),
		Mode:        ResolveMode(req.Mode),
		Bracket:     bracket,
		Reference:   cell,
	}

	switch report.Mode {
	case ModeHistory:
		report.Message = historyMessage
		report.SubMessage = historySubMessage
		report.Datasets = historyDatasets(req.Prev, req.Curr)
	default:
		report.Message = fmt.Sprintf(peerMessageFormat, bracket)
		report.SubMessage = peerSubMessage
		report.Datasets = peerDatasets(table)
	}
	return report
}

func historyDatasets(prev, curr MeasurementSet) []Dataset {
	return []Dataset{
		{Label: previousLabel, Data: rawSeries(prev), BackgroundColor: "#aaccff"},
		{Label: currentLabel, Data: rawSeries(curr), BackgroundColor: "#ff9999"},
	}
}

func rawSeries(set MeasurementSet) []json.Number {
	out := make([]json.Number, 0, len(metricDefinitions))
	for _, def := range metricDefinitions {
		v := set.Get(def.ID)
		if !v.Present() {
			out = append(out, json.Number(absentSeriesValue))
			continue
		}
		out = append(out, json.Number(v.String()))
	}
	return out
}

func peerDatasets(table []ClassifiedMetric) []Dataset {
	scores := make([]json.Number, 0, len(table))
	baseline := make([]json.Number, 0, len(table))
	for _, row := range table {
		def, _ := LookupMetric(row.ID)
		scores = append(scores, json.Number(Score(def, row.UserVal, row.AvgVal)))
		baseline = append(baseline, json.Number(referenceScore))
	}
	noFill := false
	noPoints := 0
	return []Dataset{
		{
			Label:                scoreLabel,
			Data:                 scores,
			TableData:            table,
			BackgroundColor:      "rgba(44, 62, 80, 0.2)",
			BorderColor:          "#2c3e50",
			PointBackgroundColor: "#2c3e50",
			BorderWidth:          2,
		},
		{
			Label:       referenceLabel,
			Data:        baseline,
			BorderColor: "#e67e22",
			BorderDash:  []int{5, 5},
			Fill:        &noFill,
			PointRadius: &noPoints,
		},
	}
}
