package hydapi

import "time"

// Station is one catalog entry returned by the /Stations endpoint.
type Station struct {
	StationID   string `json:"stationId"`
	StationName string `json:"stationName"`
	RiverName   string `json:"riverName,omitempty"`
}

// Observation is a single timestamped measurement. Time is kept as the raw
// string the API returned; Value is nil when the API reports a gap.
type Observation struct {
	Time  string   `json:"time"`
	Value *float64 `json:"value"`
}

// Series is one station group from the /Observations response.
type Series struct {
	StationID     string        `json:"stationId"`
	StationName   string        `json:"stationName"`
	ParameterName string        `json:"parameterName"`
	Unit          string        `json:"unit"`
	Observations  []Observation `json:"observations"`
}

// stationsResponse models the JSON envelope of /Stations.
type stationsResponse struct {
	Data []Station `json:"data"`
}

// observationsResponse models the JSON envelope of /Observations.
type observationsResponse struct {
	Data []Series `json:"data"`
}

// Parameter describes one measurable quantity from the fixed hydapi set.
type Parameter struct {
	Code int    `json:"code"`
	Name string `json:"name"`
	Unit string `json:"unit"`
}

// ResolutionInstant requests the native (highest) resolution of a series.
const ResolutionInstant = 0

var parameters = []Parameter{
	{Code: 1001, Name: "Vannføring", Unit: "m3/s"},
	{Code: 1000, Name: "Vannstand", Unit: "m"},
	{Code: 1003, Name: "Vanntemperatur", Unit: "°C"},
	{Code: 2002, Name: "Snødybde", Unit: "cm"},
	{Code: 0, Name: "Nedbør", Unit: "mm"},
}

// Parameters returns the supported parameter set, discharge first.
func Parameters() []Parameter {
	out := make([]Parameter, len(parameters))
	copy(out, parameters)
	return out
}

// ParameterByCode looks up a parameter in the supported set.
func ParameterByCode(code int) (Parameter, bool) {
	for _, p := range parameters {
		if p.Code == code {
			return p, true
		}
	}
	return Parameter{}, false
}

// ReferenceTime joins a date range into the API's start/end query form.
// Calendar dates only; the API defines the day boundaries.
func ReferenceTime(start, end time.Time) string {
	return start.Format("2006-01-02") + "/" + end.Format("2006-01-02")
}
