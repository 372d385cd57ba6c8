package chart

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rastumbenjamin-gif/nve-vannforing/hydapi"
	"github.com/rastumbenjamin-gif/nve-vannforing/series"
)

func f(v float64) *float64 { return &v }

func TestRenderProducesPNG(t *testing.T) {
	s := &hydapi.Series{
		StationID:     "12.209.0",
		StationName:   "Norsfoss",
		ParameterName: "Vannføring",
		Unit:          "m3/s",
		Observations: []hydapi.Observation{
			{Time: "2026-08-20T10:00:00Z", Value: f(10)},
			{Time: "2026-08-20T11:00:00Z", Value: nil},
			{Time: "2026-08-20T12:00:00Z", Value: f(20)},
			{Time: "2026-08-20T13:00:00Z", Value: f(15)},
		},
	}

	var buf bytes.Buffer
	if err := Render(&buf, s, series.ChartPoints(s)); err != nil {
		t.Fatalf("Render: %v", err)
	}

	// PNG signature
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG\r\n\x1a\n")) {
		t.Error("output is not a PNG")
	}
}

func TestRenderTooFewPoints(t *testing.T) {
	s := &hydapi.Series{
		Unit: "m",
		Observations: []hydapi.Observation{
			{Time: "2026-08-20T10:00:00Z", Value: f(10)},
			{Time: "2026-08-20T11:00:00Z", Value: nil},
		},
	}

	var buf bytes.Buffer
	err := Render(&buf, s, series.ChartPoints(s))
	if !errors.Is(err, ErrNotEnoughPoints) {
		t.Errorf("want ErrNotEnoughPoints with one plottable value, got %v", err)
	}
}

func TestTickMarksBounded(t *testing.T) {
	labels := make(map[int]string, 100)
	for i := 0; i < 100; i++ {
		labels[i] = "l"
	}
	ticks := tickMarks(labels, 100)
	if len(ticks) > maxTicks+1 {
		t.Errorf("got %d ticks, want at most %d", len(ticks), maxTicks+1)
	}
	if ticks[0].Value != 0 || ticks[len(ticks)-1].Value != 99 {
		t.Errorf("ticks should span the full range: %+v", ticks)
	}
}
