// Package chart renders report series as standalone HTML pages.
package chart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/yanqian/fitcheck/internal/domain/fitness"
)

// Config controls page chrome.
type Config struct {
	PageTitle string
	Width     string
	Height    string
}

// Renderer draws a radar chart for peer-average reports and a bar chart for
// history reports.
type Renderer struct {
	cfg Config
}

// NewRenderer builds a renderer.
func NewRenderer(cfg Config) *Renderer {
	if cfg.PageTitle == "" {
		cfg.PageTitle = "fitcheck"
	}
	if cfg.Width == "" {
		cfg.Width = "900px"
	}
	if cfg.Height == "" {
		cfg.Height = "500px"
	}
	return &Renderer{cfg: cfg}
}

// Render writes the chart page for report to w.
func (r *Renderer) Render(w io.Writer, report fitness.Report) error {
	if len(report.Datasets) == 0 {
		return fmt.Errorf("chart: report has no datasets")
	}
	labels := metricLabels(report.TableData)
	var buf bytes.Buffer
	var err error
	switch report.Mode {
	case fitness.ModeHistory:
		err = r.bar(report, labels).Render(&buf)
	default:
		err = r.radar(report, labels).Render(&buf)
	}
	if err != nil {
		return fmt.Errorf("chart: render: %w", err)
	}
	_, err = w.Write(buf.Bytes())
	return err
}

func (r *Renderer) globalOpts(report fitness.Report) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: r.cfg.PageTitle,
			Width:     r.cfg.Width,
			Height:    r.cfg.Height,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    report.Message,
			Subtitle: report.SubMessage,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
	}
}

func (r *Renderer) bar(report fitness.Report, labels []string) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(r.globalOpts(report)...)
	bar.SetXAxis(labels)
	for _, ds := range report.Datasets {
		items := make([]opts.BarData, 0, len(ds.Data))
		for _, v := range numbers(ds.Data) {
			items = append(items, opts.BarData{Value: v})
		}
		bar.AddSeries(ds.Label, items, charts.WithItemStyleOpts(opts.ItemStyle{Color: ds.BackgroundColor}))
	}
	return bar
}

func (r *Renderer) radar(report fitness.Report, labels []string) *charts.Radar {
	peak := 100.0
	for _, ds := range report.Datasets {
		for _, v := range numbers(ds.Data) {
			peak = math.Max(peak, v)
		}
	}
	// Round the axis up to the next multiple of 50 so the baseline ring stays visible.
	axisMax := float32(math.Ceil(peak/50) * 50)

	indicators := make([]*opts.Indicator, 0, len(labels))
	for _, label := range labels {
		indicators = append(indicators, &opts.Indicator{Name: label, Min: 0, Max: axisMax})
	}

	radar := charts.NewRadar()
	radar.SetGlobalOptions(append(r.globalOpts(report),
		charts.WithRadarComponentOpts(opts.RadarComponent{
			Indicator: indicators,
			Shape:     "polygon",
		}),
	)...)
	for _, ds := range report.Datasets {
		style := opts.LineStyle{Color: ds.BorderColor}
		if len(ds.BorderDash) > 0 {
			style.Type = "dashed"
		}
		radar.AddSeries(ds.Label,
			[]opts.RadarData{{Name: ds.Label, Value: numbers(ds.Data)}},
			charts.WithLineStyleOpts(style),
		)
	}
	return radar
}

func metricLabels(rows []fitness.ClassifiedMetric) []string {
	labels := make([]string, 0, len(rows))
	for _, row := range rows {
		labels = append(labels, row.Label)
	}
	return labels
}

func numbers(values []json.Number) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		f, err := strconv.ParseFloat(v.String(), 64)
		if err != nil {
			f = 0
		}
		out = append(out, f)
	}
	return out
}
