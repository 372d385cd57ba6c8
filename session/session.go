// Package session holds the single authoritative state of a dashboard
// session: credential, station catalog, current selection and the fetched
// observation series. The two fetchers here are the only parts of the
// program that perform I/O; everything downstream is a pure view over the
// snapshot.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rastumbenjamin-gif/nve-vannforing/hydapi"
)

// defaultRangeDays is the initial date-range span (today minus N .. today).
const defaultRangeDays = 7

// Fetcher is the hydapi surface the session depends on.
type Fetcher interface {
	FetchStations(ctx context.Context, apiKey string) ([]hydapi.Station, error)
	FetchObservations(ctx context.Context, apiKey, stationID string, parameter int, referenceTime string) ([]hydapi.Series, error)
}

// CatalogFetchError reports a failed station-catalog fetch.
type CatalogFetchError struct {
	Message string
}

func (e *CatalogFetchError) Error() string {
	return "catalog fetch failed: " + e.Message
}

// ObservationFetchError reports a failed observation fetch.
type ObservationFetchError struct {
	Message string
}

func (e *ObservationFetchError) Error() string {
	return "observation fetch failed: " + e.Message
}

// Session is the mutable session record. All access is serialized through
// the internal mutex; accessors return copies so holders never observe a
// later mutation.
type Session struct {
	mu     sync.Mutex
	client Fetcher
	logger *slog.Logger

	credential string
	catalog    []hydapi.Station
	searchTerm string
	stationID  string
	parameter  int
	start, end time.Time
	series     *hydapi.Series

	loading  bool
	gated    bool
	errMsg   string
	fetchSeq uint64
}

// Snapshot is a read-only copy of the transient session flags and the
// current selection, shaped for presentation.
type Snapshot struct {
	Gated      bool      `json:"gated"`
	Loading    bool      `json:"loading"`
	Error      string    `json:"error,omitempty"`
	SearchTerm string    `json:"searchTerm"`
	StationID  string    `json:"stationId"`
	Parameter  int       `json:"parameter"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	HasSeries  bool      `json:"hasSeries"`
}

// New creates a session in its gated startup state: empty catalog, absent
// series, discharge selected, date range spanning the last seven days.
// A non-empty credential (e.g. from configuration) pre-fills the entry
// field but the session stays gated until a catalog fetch succeeds.
func New(client Fetcher, credential string, logger *slog.Logger) *Session {
	now := time.Now()
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return &Session{
		client:     client,
		logger:     logger,
		credential: credential,
		parameter:  1001,
		start:      end.AddDate(0, 0, -defaultRangeDays),
		end:        end,
		gated:      true,
	}
}

// SetCredential replaces the API credential.
func (s *Session) SetCredential(credential string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credential = credential
}

// SetSearchTerm replaces the station search term.
func (s *Session) SetSearchTerm(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchTerm = term
}

// SelectStation replaces the selected station identifier.
func (s *Session) SelectStation(stationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stationID = stationID
}

// SetParameter replaces the selected parameter code.
func (s *Session) SetParameter(code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parameter = code
}

// SetDateRange replaces the query date range. Reversed ranges are stored
// as given; the API receives them unmodified.
func (s *Session) SetDateRange(start, end time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.start, s.end = start, end
}

// Catalog returns a copy of the station catalog.
func (s *Session) Catalog() []hydapi.Station {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]hydapi.Station, len(s.catalog))
	copy(out, s.catalog)
	return out
}

// Series returns a copy of the fetched observation series, or nil when no
// series is present.
func (s *Session) Series() *hydapi.Series {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.series == nil {
		return nil
	}
	out := *s.series
	out.Observations = make([]hydapi.Observation, len(s.series.Observations))
	copy(out.Observations, s.series.Observations)
	return &out
}

// DateRange returns the current query date range.
func (s *Session) DateRange() (start, end time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.start, s.end
}

// SearchTerm returns the current search term.
func (s *Session) SearchTerm() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchTerm
}

// Snapshot returns the current transient flags and selection.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Gated:      s.gated,
		Loading:    s.loading,
		Error:      s.errMsg,
		SearchTerm: s.searchTerm,
		StationID:  s.stationID,
		Parameter:  s.parameter,
		Start:      s.start,
		End:        s.end,
		HasSeries:  s.series != nil,
	}
}

// FetchCatalog loads the full station catalog. A no-op when the credential
// is empty. On success the catalog is replaced wholesale and the gating
// flag cleared; on failure the previous catalog is kept and the error
// message surfaced. Each call issues its own request, no deduplication.
func (s *Session) FetchCatalog(ctx context.Context) error {
	s.mu.Lock()
	if s.credential == "" {
		s.mu.Unlock()
		return nil
	}
	key := s.credential
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	catalog, err := s.client.FetchStations(ctx, key)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		ferr := &CatalogFetchError{Message: err.Error()}
		s.errMsg = ferr.Error()
		s.logger.Error("catalog fetch failed", "error", err)
		return ferr
	}
	s.catalog = catalog
	s.gated = false
	return nil
}

// FetchObservations loads the observation series for the current selection.
// A no-op unless credential, station and both range endpoints are set. The
// previous series is cleared before the request goes out so a loading view
// never shows stale data. Completions carry a monotonic token; a result
// that finishes after a newer request started is discarded, so the latest
// request always wins.
func (s *Session) FetchObservations(ctx context.Context) error {
	s.mu.Lock()
	if s.credential == "" || s.stationID == "" || s.start.IsZero() || s.end.IsZero() {
		s.mu.Unlock()
		return nil
	}
	s.fetchSeq++
	seq := s.fetchSeq
	key := s.credential
	stationID := s.stationID
	parameter := s.parameter
	refTime := hydapi.ReferenceTime(s.start, s.end)
	s.loading = true
	s.series = nil
	s.errMsg = ""
	s.mu.Unlock()

	groups, err := s.client.FetchObservations(ctx, key, stationID, parameter, refTime)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.fetchSeq {
		// A newer request owns the session now.
		s.logger.Debug("discarding stale observation result", "station", stationID)
		return nil
	}
	s.loading = false
	if err != nil {
		ferr := &ObservationFetchError{Message: err.Error()}
		s.errMsg = ferr.Error()
		s.logger.Error("observation fetch failed", "station", stationID, "error", err)
		return ferr
	}
	// The API may return several station groups; only the first is shown.
	// An empty response leaves the series absent, which is not an error.
	if len(groups) > 0 {
		group := groups[0]
		s.series = &group
	}
	return nil
}
