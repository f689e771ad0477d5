// Package chart renders the engine's chart decisions (series, buckets,
// labels) into PNG bytes. It is the pixel-level collaborator; the rest
// of the engine only decides what to plot.
package chart

import (
	"bytes"
	"fmt"
	"sort"

	gochart "github.com/wcharczuk/go-chart/v2"

	"wellness-report/errors"
	"wellness-report/models"
)

// PNG renders charts as PNG images at a fixed pixel size.
type PNG struct {
	Width  int
	Height int
}

// NewPNG returns a renderer with the default report size.
func NewPNG() *PNG {
	return &PNG{Width: 640, Height: 320}
}

// WeeklyBar renders the trailing 7-day mean-stress series as a bar
// chart. An empty series is an error so the caller can omit the chart.
func (p *PNG) WeeklyBar(series []models.DailyStress) ([]byte, error) {
	if len(series) == 0 {
		return nil, errors.ErrEmptySeries
	}

	bars := make([]gochart.Value, 0, len(series))
	for _, point := range series {
		label := point.Date
		if len(label) == len("2006-01-02") {
			label = label[5:] // MM-DD is enough on a 7-day axis
		}
		bars = append(bars, gochart.Value{Value: point.MeanStress, Label: label})
	}

	graph := gochart.BarChart{
		Title:    "Estrés promedio (últimos 7 días)",
		Width:    p.Width,
		Height:   p.Height,
		BarWidth: 40,
		Bars:     bars,
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: 10},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering weekly bar chart: %w", err)
	}
	return buf.Bytes(), nil
}

// StatePie renders the emotional-state distribution as a pie chart.
// Slices are emitted in label order so output is deterministic.
func (p *PNG) StatePie(dist map[string]int) ([]byte, error) {
	labels := make([]string, 0, len(dist))
	total := 0
	for label, count := range dist {
		if count > 0 {
			labels = append(labels, label)
			total += count
		}
	}
	if total == 0 {
		return nil, errors.ErrEmptyDistribution
	}
	sort.Strings(labels)

	values := make([]gochart.Value, 0, len(labels))
	for _, label := range labels {
		values = append(values, gochart.Value{
			Value: float64(dist[label]),
			Label: fmt.Sprintf("%s (%d)", label, dist[label]),
		})
	}

	side := p.Height
	graph := gochart.PieChart{
		Title:  "Estados emocionales",
		Width:  side,
		Height: side,
		Values: values,
	}

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering state pie chart: %w", err)
	}
	return buf.Bytes(), nil
}
