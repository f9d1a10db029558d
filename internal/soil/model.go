package soil

import "math"

// Observation is one district record from the reference store.
type Observation struct {
	Region   string  `json:"region"`
	District string  `json:"district"`
	PH       float64 `json:"ph"`
	Climate  string  `json:"climate,omitempty"`
}

// Source reports which path produced a Reading.
type Source string

const (
	SourceNone      Source = "none"
	SourceSoilGrids Source = "soilgrids"
	SourceStore     Source = "store"
)

// Location is what a request may carry. Any field may be missing.
type Location struct {
	Lat      *float64
	Lon      *float64
	Region   string
	District string
}

// Coordinates returns lat/lon when both are present and on the globe.
func (l Location) Coordinates() (float64, float64, bool) {
	if l.Lat == nil || l.Lon == nil {
		return 0, 0, false
	}
	lat, lon := *l.Lat, *l.Lon
	if math.IsNaN(lat) || math.IsNaN(lon) || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, false
	}
	return lat, lon, true
}

// Reading is the resolved soil condition. PH is nil when nothing was found.
type Reading struct {
	PH      *float64
	Climate string
	Source  Source
}

func (r Reading) Found() bool {
	return r.PH != nil
}

// Outcome classifies an external pH lookup.
type Outcome int

const (
	// Available means PH holds a usable value.
	Available Outcome = iota
	// Unavailable covers timeouts, network errors, bad status codes and
	// payloads without a usable value.
	Unavailable
	// Fatal means the lookup could not even be attempted, e.g. a broken
	// base URL.
	Fatal
)

func (o Outcome) String() string {
	switch o {
	case Available:
		return "available"
	case Unavailable:
		return "unavailable"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// LookupResult is the typed answer of a PHLookup.
type LookupResult struct {
	PH      float64
	Outcome Outcome
	Err     error
}
