// Package chart renders a fetched observation series as a PNG line chart.
package chart

import (
	"errors"
	"fmt"
	"io"
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/rastumbenjamin-gif/nve-vannforing/hydapi"
	"github.com/rastumbenjamin-gif/nve-vannforing/series"
)

// ErrNotEnoughPoints is returned when the series has fewer than two
// plottable values; go-chart cannot draw a line from less.
var ErrNotEnoughPoints = errors.New("not enough observation points to draw a chart")

const (
	chartWidth  = 900
	chartHeight = 360
	maxTicks    = 8
)

// Render draws the series as a line chart and writes it as PNG. Gap
// observations (nil values) are left out of the line rather than plotted
// as zero.
func Render(w io.Writer, s *hydapi.Series, points []series.Point) error {
	xs := make([]float64, 0, len(points))
	ys := make([]float64, 0, len(points))
	labels := make(map[int]string, len(points))
	for i, p := range points {
		labels[i] = p.Label
		if p.Value == nil {
			continue
		}
		xs = append(xs, float64(i))
		ys = append(ys, *p.Value)
	}
	if len(xs) < 2 {
		return ErrNotEnoughPoints
	}

	graph := gochart.Chart{
		Title:  fmt.Sprintf("%s - %s (%s)", s.StationName, s.ParameterName, s.Unit),
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: gochart.XAxis{
			Ticks: tickMarks(labels, len(points)),
		},
		YAxis: gochart.YAxis{
			Name: s.Unit,
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    s.ParameterName,
				XValues: xs,
				YValues: ys,
			},
		},
	}
	return graph.Render(gochart.PNG, w)
}

// tickMarks spreads at most maxTicks labeled ticks over the point range.
func tickMarks(labels map[int]string, count int) []gochart.Tick {
	step := int(math.Ceil(float64(count) / maxTicks))
	if step < 1 {
		step = 1
	}
	ticks := make([]gochart.Tick, 0, maxTicks+1)
	for i := 0; i < count; i += step {
		ticks = append(ticks, gochart.Tick{Value: float64(i), Label: labels[i]})
	}
	if last := count - 1; last > 0 && (len(ticks) == 0 || ticks[len(ticks)-1].Value != float64(last)) {
		ticks = append(ticks, gochart.Tick{Value: float64(last), Label: labels[last]})
	}
	return ticks
}
