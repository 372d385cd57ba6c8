package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rastumbenjamin-gif/nve-vannforing/chart"
	"github.com/rastumbenjamin-gif/nve-vannforing/hydapi"
	"github.com/rastumbenjamin-gif/nve-vannforing/series"
	"github.com/rastumbenjamin-gif/nve-vannforing/stations"
)

// dateLayout is the calendar-date form used by the date pickers and the API.
const dateLayout = "2006-01-02"

// maxListedStations caps the rendered station list. The filter itself is
// uncapped; this is a presentation limit only.
const maxListedStations = 50

// handleGetSession returns the transient session flags and selection.
// GET /api/v1/session
func (s *Server) handleGetSession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.sess.Snapshot()})
}

// handleSetCredential stores a new API key and loads the station catalog
// with it.
// PUT /api/v1/session/credential
func (s *Server) handleSetCredential(c *gin.Context) {
	var body struct {
		APIKey string `json:"apiKey"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.APIKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "apiKey is required"})
		return
	}

	s.sess.SetCredential(body.APIKey)

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.RequestTimeout)
	defer cancel()

	if err := s.sess.FetchCatalog(ctx); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": s.sess.Snapshot()})
}

// handleListStations returns the catalog filtered by the q term, capped
// for display.
// GET /api/v1/stations?q=glom
func (s *Server) handleListStations(c *gin.Context) {
	term := c.Query("q")
	s.sess.SetSearchTerm(term)

	matched := stations.Filter(s.sess.Catalog(), term)
	shown := matched
	if len(shown) > maxListedStations {
		shown = shown[:maxListedStations]
	}

	c.JSON(http.StatusOK, gin.H{
		"data": shown,
		"meta": gin.H{
			"matched": len(matched),
			"shown":   len(shown),
		},
	})
}

// handleListParameters returns the fixed parameter set.
// GET /api/v1/parameters
func (s *Server) handleListParameters(c *gin.Context) {
	params := hydapi.Parameters()
	c.JSON(http.StatusOK, gin.H{
		"data": params,
		"meta": gin.H{"count": len(params)},
	})
}

// handleFetchObservations applies a station/parameter/range selection and
// fetches its observation series. The response embeds the derived chart
// points and summary statistics alongside the raw series.
// POST /api/v1/observations
func (s *Server) handleFetchObservations(c *gin.Context) {
	var body struct {
		StationID string `json:"stationId"`
		Parameter *int   `json:"parameter"`
		Start     string `json:"start"`
		End       string `json:"end"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.StationID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "stationId is required"})
		return
	}

	start, err := time.Parse(dateLayout, body.Start)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start date: " + body.Start})
		return
	}
	end, err := time.Parse(dateLayout, body.End)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end date: " + body.End})
		return
	}

	s.sess.SelectStation(body.StationID)
	if body.Parameter != nil {
		s.sess.SetParameter(*body.Parameter)
	}
	s.sess.SetDateRange(start, end)

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.RequestTimeout)
	defer cancel()

	if err := s.sess.FetchObservations(ctx); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	fetched := s.sess.Series()
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"series": fetched,
			"points": series.ChartPoints(fetched),
			"stats":  series.ComputeStats(fetched),
		},
	})
}

// handleExport offers the current series as a CSV download named
// <stationId>_<start>_<end>.csv.
// GET /api/v1/export
func (s *Server) handleExport(c *gin.Context) {
	fetched := s.sess.Series()
	if fetched == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no observation series fetched"})
		return
	}

	start, end := s.sess.DateRange()
	filename := series.ExportFilename(fetched, start, end)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(series.DelimitedText(fetched)))
}

// handleChart renders the current series as a PNG line chart.
// GET /api/v1/chart.png
func (s *Server) handleChart(c *gin.Context) {
	fetched := s.sess.Series()
	if fetched == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no observation series fetched"})
		return
	}

	var buf bytes.Buffer
	if err := chart.Render(&buf, fetched, series.ChartPoints(fetched)); err != nil {
		if errors.Is(err, chart.ErrNotEnoughPoints) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		s.logger.Error("chart render failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
