package chart

import (
	"errors"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Point is one labeled bar of the comparison chart.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

var barColors = []drawing.Color{
	drawing.ColorFromHex("8FAADC"),
	drawing.ColorFromHex("F4B183"),
	drawing.ColorFromHex("6AA84F"),
}

// RenderComparison writes the per-district acreage comparison as a small
// PNG bar chart (historical mean / prior year / predicted, whichever are
// present).
func RenderComparison(w io.Writer, points []Point) error {
	if len(points) == 0 {
		return errors.New("no values to chart")
	}

	bars := make([]chart.Value, 0, len(points))
	for i, p := range points {
		bars = append(bars, chart.Value{
			Label: p.Label,
			Value: p.Value,
			Style: chart.Style{
				FillColor:   barColors[i%len(barColors)],
				StrokeColor: barColors[i%len(barColors)],
			},
		})
	}

	graph := chart.BarChart{
		Title:    "Acreage Comparison",
		Width:    360,
		Height:   360,
		BarWidth: 48,
		YAxis: chart.YAxis{
			Name: "Lakh ha",
		},
		Bars: bars,
	}

	return graph.Render(chart.PNG, w)
}
