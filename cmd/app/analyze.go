package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/yanqian/fitcheck/internal/domain/fitness"
	"github.com/yanqian/fitcheck/internal/infra/chart"
	"github.com/yanqian/fitcheck/internal/infra/config"
)

var analyzeCommand = &cli.Command{
	Name:  "analyze",
	Usage: "Build a report from a JSON request file",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "input",
			Aliases:  []string{"i"},
			Usage:    "request JSON file, or - for stdin",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "html",
			Usage: "also write the chart page to this file",
		},
	},
	Action: analyze,
}

func analyze(_ context.Context, cmd *cli.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	in, closeIn, err := openInput(cmd.String("input"))
	if err != nil {
		return err
	}
	defer closeIn()

	var html io.Writer
	if path := cmd.String("html"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create chart file: %w", err)
		}
		defer f.Close()
		html = f
	}

	return runAnalyze(in, os.Stdout, html, chart.NewRenderer(provideChartConfig(cfg)))
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// runAnalyze decodes one request, prints the report JSON to out and, when
// html is non-nil, renders the chart page into it.
func runAnalyze(in io.Reader, out, html io.Writer, renderer *chart.Renderer) error {
	var req fitness.Request
	if err := json.NewDecoder(in).Decode(&req); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}

	report := fitness.BuildReport(req)

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	if html == nil {
		return nil
	}
	if err := renderer.Render(html, report); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
