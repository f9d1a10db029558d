package recommend

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"yieldx/internal/crop"
	"yieldx/internal/soil"
)

// Request is one recommendation call. Every field is optional.
type Request struct {
	Lat      *float64
	Lon      *float64
	State    string
	District string
	FarmerID string
}

func (r Request) location() soil.Location {
	return soil.Location{
		Lat:      r.Lat,
		Lon:      r.Lon,
		Region:   strings.TrimSpace(r.State),
		District: strings.TrimSpace(r.District),
	}
}

func (r Request) hasLocation() bool {
	loc := r.location()
	if _, _, ok := loc.Coordinates(); ok {
		return true
	}
	return loc.Region != "" && loc.District != ""
}

type Response struct {
	Recommendations []crop.Result `json:"recommendations"`
	Fallback        bool          `json:"fallback"`
	SoilPH          *float64      `json:"soil_ph"`
	Climate         string        `json:"climate"`
	Source          soil.Source   `json:"source"`
	Message         string        `json:"message"`
}

// HistoryEntry is one stored recommendation. FarmerID is empty for
// anonymous requests.
type HistoryEntry struct {
	ID        string        `json:"id"`
	FarmerID  string        `json:"-"`
	State     string        `json:"state,omitempty"`
	District  string        `json:"district,omitempty"`
	Lat       *float64      `json:"lat,omitempty"`
	Lon       *float64      `json:"lon,omitempty"`
	SoilPH    *float64      `json:"soil_ph"`
	Climate   string        `json:"climate,omitempty"`
	Source    soil.Source   `json:"source"`
	Fallback  bool          `json:"fallback"`
	Results   []crop.Result `json:"results"`
	CreatedAt time.Time     `json:"created_at"`
}

// coordinate decodes a JSON number or numeric string. Anything else leaves
// it unset rather than failing the request.
type coordinate struct {
	value *float64
}

func (c *coordinate) UnmarshalJSON(data []byte) error {
	c.value = nil
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	s := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
	}
	c.value = parseCoordinate(s)
	return nil
}

func parseCoordinate(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
