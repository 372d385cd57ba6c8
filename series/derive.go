// Package series computes chart points, summary statistics and export text
// from a fetched observation series. Everything here is a pure function over
// the series; results are recomputed from scratch on every call.
package series

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rastumbenjamin-gif/nve-vannforing/hydapi"
)

// chartLabelLayout is the fixed day/month hour:minute display format.
const chartLabelLayout = "02/01 15:04"

// Point is one chart entry. Value stays nil for gap observations so the
// chart layer can render a break instead of a fake zero.
type Point struct {
	Label string   `json:"label"`
	Value *float64 `json:"value"`
}

// Stats summarizes the numeric values of a series.
//
// Absent values count as 0 in min, max and the mean. That skews min toward 0
// whenever the series has gaps. Surprising, but changing it would change
// every exported number, so it stays. Guard display on Count > 0; the
// fields are meaningless for an empty series.
type Stats struct {
	Count int     `json:"count"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Avg   float64 `json:"avg"`
}

// ChartPoints maps each observation to a labeled chart point, in series
// order. Timestamps that fail to parse keep their raw representation as
// the label.
func ChartPoints(s *hydapi.Series) []Point {
	if s == nil {
		return []Point{}
	}
	points := make([]Point, 0, len(s.Observations))
	for _, obs := range s.Observations {
		label := obs.Time
		if ts, err := time.Parse(time.RFC3339, obs.Time); err == nil {
			label = ts.Format(chartLabelLayout)
		}
		points = append(points, Point{Label: label, Value: obs.Value})
	}
	return points
}

// ComputeStats returns summary statistics for the series, or nil when no
// series has been fetched.
func ComputeStats(s *hydapi.Series) *Stats {
	if s == nil {
		return nil
	}

	stats := &Stats{Count: len(s.Observations)}
	if stats.Count == 0 {
		return stats
	}

	sum := 0.0
	for i, obs := range s.Observations {
		v := 0.0
		if obs.Value != nil {
			v = *obs.Value
		}
		if i == 0 || v < stats.Min {
			stats.Min = v
		}
		if i == 0 || v > stats.Max {
			stats.Max = v
		}
		sum += v
	}
	stats.Avg = sum / float64(stats.Count)
	return stats
}

// DelimitedText serializes the series as comma-separated text: a
// `Time,Value (<unit>)` header and one row per observation with the raw
// timestamp and value. Gap values render as an empty field. No quoting;
// timestamps and numbers never contain the delimiter.
func DelimitedText(s *hydapi.Series) string {
	var b strings.Builder
	b.WriteString("Time,Value (" + s.Unit + ")")
	for _, obs := range s.Observations {
		b.WriteString("\n")
		b.WriteString(obs.Time)
		b.WriteString(",")
		if obs.Value != nil {
			b.WriteString(strconv.FormatFloat(*obs.Value, 'f', -1, 64))
		}
	}
	return b.String()
}

// ExportFilename names the CSV download for a series and date range.
func ExportFilename(s *hydapi.Series, start, end time.Time) string {
	return fmt.Sprintf("%s_%s_%s.csv",
		s.StationID,
		start.Format("2006-01-02"),
		end.Format("2006-01-02"),
	)
}
