package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"math"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/hsflores7/folio/internal/plot"
	"github.com/hsflores7/folio/internal/search"
)

// EChartsURL is the script the chart fragments expect on the page.
const EChartsURL = "https://go-echarts.github.io/go-echarts-assets/assets/echarts.min.js"

const (
	nightColor = "steelblue"
	dayColor   = "orange"

	styleTagLen = len("</style>")
)

// Tableau10 is the categorical palette used for pie slices and the legend.
var Tableau10 = []string{
	"#4e79a7", "#f28e2c", "#e15759", "#76b7b2", "#59a14f",
	"#edc949", "#af7aa1", "#ff9da7", "#9c755f", "#bab0ab",
}

// SliceColor returns the palette colour for the i-th slice.
func SliceColor(i int) string {
	return Tableau10[i%len(Tableau10)]
}

type renderable interface {
	Render(w io.Writer) error
}

// hourFormatter labels the y axis the way plot.HourLabel does.
const hourFormatter = `function (v) { var h = Math.round(v) % 24; return (h % 12 || 12) + ' ' + ['AM', 'PM'][Math.floor(h / 12)]; }`

// ScatterChart draws the commit scatterplot as one series in the plot's
// point order, largest first, so small commits stay on top. The third value
// of each point is its night flag, which a hidden piecewise visual map turns
// into the night or day colour.
func ScatterChart(p plot.Plot) *charts.Scatter {
	o := p.Options
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  fmt.Sprintf("%dpx", int(o.Width)),
			Height: fmt.Sprintf("%dpx", int(o.Height)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Trigger:   "item",
			Formatter: "{b}",
		}),
		charts.WithGridOpts(opts.Grid{
			Top:    fmt.Sprintf("%dpx", int(o.Margin.Top)),
			Right:  fmt.Sprintf("%dpx", int(o.Margin.Right)),
			Bottom: fmt.Sprintf("%dpx", int(o.Margin.Bottom)),
			Left:   fmt.Sprintf("%dpx", int(o.Margin.Left)),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "time",
			Min:  p.X.Min.UnixMilli(),
			Max:  p.X.Max.UnixMilli(),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Min:  o.YMin,
			Max:  o.YMax,
			AxisLabel: &opts.AxisLabel{
				Formatter: opts.FuncOpts(hourFormatter),
			},
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Type:      "piecewise",
			Show:      opts.Bool(false),
			Dimension: "2",
			Pieces: []opts.Piece{
				{Lt: 0.5, Color: dayColor},
				{Gt: 0.5, Color: nightColor},
			},
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
	)

	data := make([]opts.ScatterData, 0, len(p.Points))
	for _, pt := range p.Points {
		c := pt.Commit
		night := 0
		if pt.Night {
			night = 1
		}
		data = append(data, opts.ScatterData{
			Name:       fmt.Sprintf("%s<br/>%s<br/>%s<br/>%d lines", c.ID, c.Datetime.Format("Mon, Jan 2, 2006 3:04 PM"), c.Author, c.TotalLines),
			Value:      []any{c.Datetime.Format("2006-01-02T15:04:05Z07:00"), c.HourFrac, night},
			SymbolSize: int(math.Round(2 * pt.R)),
		})
	}

	scatter.AddSeries("Commits", data,
		charts.WithItemStyleOpts(opts.ItemStyle{Opacity: opts.Float(0.7)}),
	)
	return scatter
}

// PieChart draws one slice per year. The selected year keeps full opacity
// while the others fade.
func PieChart(slices []search.Slice, selected string) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "300px", Height: "300px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
	)

	data := make([]opts.PieData, len(slices))
	for i, s := range slices {
		style := &opts.ItemStyle{Color: SliceColor(i)}
		if selected != "" && s.Label != selected {
			style.Opacity = opts.Float(0.35)
		}
		data[i] = opts.PieData{Name: s.Label, Value: s.Value, ItemStyle: style}
	}

	pie.AddSeries("Projects", data).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Formatter: "{b}: {c} ({d}%)",
			}),
			charts.WithPieChartOpts(opts.PieChart{
				Radius: "50%",
			}),
		)
	return pie
}

// renderChart renders chart as an embeddable fragment.
func renderChart(chart renderable) (template.HTML, error) {
	if chart == nil {
		return "", nil
	}

	var buf bytes.Buffer
	if err := chart.Render(&buf); err != nil {
		return "", fmt.Errorf("rendering chart: %w", err)
	}
	return template.HTML(extractChartContent(buf.String())), nil
}

// extractChartContent strips the document wrapper go-echarts emits and
// keeps the chart div and its script.
func extractChartContent(html string) string {
	trimmed := strings.TrimSpace(html)
	if !strings.HasPrefix(trimmed, "<!DOCTYPE") && !strings.HasPrefix(trimmed, "<html") {
		return html
	}

	start := strings.Index(html, `<div class="container">`)
	if start == -1 {
		return html
	}
	end := strings.Index(html, `</body>`)
	if end == -1 {
		return html
	}

	content := html[start:end]
	content = strings.ReplaceAll(content, `class="container"`, `class="echart-box"`)
	return removeStyleTags(content)
}

func removeStyleTags(content string) string {
	for {
		i := strings.Index(content, `<style>`)
		if i == -1 {
			return content
		}
		j := strings.Index(content[i:], `</style>`)
		if j == -1 {
			return content
		}
		content = content[:i] + content[i+j+styleTagLen:]
	}
}
