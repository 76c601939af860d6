// Package chart renders sensor tables as interactive HTML line charts.
package chart

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ccollicutt/sensorlog/pkg/table"
)

const (
	// DefaultTitle is used when Options.Title is empty.
	DefaultTitle = "Time series"

	// DefaultHeight is used when Options.Height is empty.
	DefaultHeight = "800px"

	labelLayout = "2006-01-02 15:04:05.000"
	lineWidth   = 1.5
)

// Series colors by column name, matching the reference plot palette.
var seriesColors = map[string]string{
	"X axis":     "blue",
	"Y axis":     "red",
	"Z axis":     "green",
	"Speed":      "orange",
	"cmp_X axis": "cyan",
	"cmp_Y axis": "magenta",
	"cmp_Z axis": "yellow",
	"cmp_Speed":  "purple",
}

// Options controls chart appearance.
type Options struct {
	Title  string
	Height string
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Height == "" {
		o.Height = DefaultHeight
	}
	return o
}

// IsSpeedColumn reports whether a column is plotted on the right-hand axis.
func IsSpeedColumn(name string) bool {
	return strings.TrimPrefix(name, table.ComparisonPrefix) == table.ColumnSpeed
}

// Build creates one line chart for every column of t. Axis columns share the
// left y-axis, speed columns use a second y-axis on the right.
func Build(t *table.Table, o Options) *charts.Line {
	o = o.withDefaults()

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: o.Title,
			Width:     "100%",
			Height:    o.Height,
		}),
		charts.WithTitleOpts(opts.Title{Title: o.Title, Left: "center"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Type: "scroll", Top: "5%"}),
		charts.WithDataZoomOpts(
			opts.DataZoom{Type: "slider", Start: 0, End: 100},
			opts.DataZoom{Type: "inside"},
		),
		charts.WithXAxisOpts(opts.XAxis{Name: "Time"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Axis value"}),
		charts.WithGridOpts(opts.Grid{Top: "15%", Left: "5%", Right: "5%", ContainLabel: opts.Bool(true)}),
	)

	labels := make([]string, t.Len())
	for i, r := range t.Rows {
		labels[i] = r.Timestamp.Format(labelLayout)
	}
	line.SetXAxis(labels)

	speedAxis := false
	for j, name := range t.Columns {
		data := make([]opts.LineData, t.Len())
		for i, r := range t.Rows {
			data[i] = opts.LineData{Value: r.Values[j]}
		}

		lineOpts := opts.LineChart{ShowSymbol: opts.Bool(false)}
		if IsSpeedColumn(name) {
			speedAxis = true
			lineOpts.YAxisIndex = 1
		}

		seriesOpts := []charts.SeriesOpts{
			charts.WithLineChartOpts(lineOpts),
			charts.WithLineStyleOpts(opts.LineStyle{Width: lineWidth}),
		}
		if color, ok := seriesColors[name]; ok {
			seriesOpts = append(seriesOpts, charts.WithItemStyleOpts(opts.ItemStyle{Color: color}))
		}

		line.AddSeries(name, data, seriesOpts...)
	}

	if speedAxis {
		line.ExtendYAxis(opts.YAxis{
			Name:      "Speed",
			SplitLine: &opts.SplitLine{Show: opts.Bool(false)},
		})
	}

	return line
}

// Render writes a standalone HTML page containing the chart.
func Render(w io.Writer, t *table.Table, o Options) error {
	if err := Build(t, o).Render(w); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}
