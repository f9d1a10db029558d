package crop

import (
	"math"
	"strconv"
	"strings"
)

// PHRange is an inclusive soil pH interval.
type PHRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Record is one catalog row. Either PH or Range (or both) is set.
type Record struct {
	Name    string
	PH      *float64
	Range   *PHRange
	Climate string
}

// Requirement returns the single pH requirement, or the midpoint of the
// range when only a range is known. ok is false for unusable records.
func (r Record) Requirement() (float64, bool) {
	if r.PH != nil {
		return *r.PH, validPH(*r.PH)
	}
	if r.Range != nil && r.validRange() {
		return (r.Range.Min + r.Range.Max) / 2, true
	}
	return 0, false
}

// Bounds returns the inclusive pH interval used by range matching. A record
// with only a single requirement is widened by tolerance on both sides.
func (r Record) Bounds(tolerance float64) (PHRange, bool) {
	if r.Range != nil {
		if !r.validRange() {
			return PHRange{}, false
		}
		return *r.Range, true
	}
	if r.PH != nil && validPH(*r.PH) {
		return PHRange{Min: *r.PH - tolerance, Max: *r.PH + tolerance}, true
	}
	return PHRange{}, false
}

func (r Record) validRange() bool {
	return validPH(r.Range.Min) && validPH(r.Range.Max) && r.Range.Min <= r.Range.Max
}

func validPH(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// Query is a resolved soil reading. A nil SoilPH means no reading exists.
type Query struct {
	SoilPH  *float64
	Climate string
}

// Price is a market price or the "unavailable" marker.
type Price struct {
	Amount    int
	Available bool
}

func (p Price) MarshalJSON() ([]byte, error) {
	if !p.Available {
		return []byte(`"unavailable"`), nil
	}
	return strconv.AppendInt(nil, int64(p.Amount), 10), nil
}

func (p *Price) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "" || raw == "null" || raw[0] == '"' {
		*p = Price{}
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		*p = Price{}
		return nil
	}
	*p = Price{Amount: v, Available: true}
	return nil
}

// Result is one ranked recommendation.
type Result struct {
	Crop    string `json:"crop"`
	Price   Price  `json:"price"`
	Climate string `json:"climate"`
}

// Outcome is the matcher output. Fallback marks popular alternatives shown
// because nothing matched exactly.
type Outcome struct {
	Results  []Result
	Fallback bool
}

func normalizeClimate(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
