// Package stations derives filtered station views from the catalog.
package stations

import (
	"strings"

	"github.com/rastumbenjamin-gif/nve-vannforing/hydapi"
)

// Filter returns the stations whose name, river name or identifier contains
// term as a case-insensitive substring, in catalog order. An empty term
// returns the catalog unchanged. Stations without a river name match on the
// remaining fields only.
func Filter(catalog []hydapi.Station, term string) []hydapi.Station {
	if term == "" {
		return catalog
	}

	needle := strings.ToLower(term)
	out := make([]hydapi.Station, 0, len(catalog))
	for _, st := range catalog {
		if strings.Contains(strings.ToLower(st.StationName), needle) ||
			strings.Contains(strings.ToLower(st.RiverName), needle) ||
			strings.Contains(strings.ToLower(st.StationID), needle) {
			out = append(out, st)
		}
	}
	return out
}
