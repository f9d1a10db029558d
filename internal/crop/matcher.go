package crop

import (
	"math"
	"sort"
	"strings"
)

// Mode selects the eligibility and ranking policy.
type Mode string

const (
	// ModeRange checks record ranges (single values widened by the
	// tolerance), matches climate by substring, ranks by price and falls
	// back to the top-priced crops when nothing matches.
	ModeRange Mode = "range"
	// ModeTolerance checks |requirement - soil pH| <= tolerance, matches
	// climate exactly and keeps catalog order.
	ModeTolerance Mode = "tolerance"
)

const (
	DefaultTolerance = 0.5
	DefaultTopK      = 3

	// absorbs float noise such as 6.2-0.5 = 5.700000000000001
	phEpsilon = 1e-9
)

type MatcherConfig struct {
	Mode      Mode
	Tolerance float64
	TopK      int
	Fallback  bool
}

func DefaultMatcherConfig() MatcherConfig {
	return MatcherConfig{
		Mode:      ModeRange,
		Tolerance: DefaultTolerance,
		TopK:      DefaultTopK,
		Fallback:  true,
	}
}

// Matcher is a pure function of (query, catalog, prices). It holds no state
// besides its configuration and is safe for concurrent use.
type Matcher struct {
	cfg MatcherConfig
}

func NewMatcher(cfg MatcherConfig) *Matcher {
	if cfg.Mode == "" {
		cfg.Mode = ModeRange
	}
	if cfg.Tolerance < 0 || math.IsNaN(cfg.Tolerance) {
		cfg.Tolerance = DefaultTolerance
	}
	if cfg.TopK <= 0 {
		cfg.TopK = DefaultTopK
	}
	return &Matcher{cfg: cfg}
}

func (m *Matcher) Config() MatcherConfig {
	return m.cfg
}

// Match returns the recommendations for q. It never fails: unusable records
// are skipped and a missing soil reading yields an empty result.
func (m *Matcher) Match(q Query, catalog []Record, prices PriceLookup) Outcome {
	out := Outcome{Results: []Result{}}
	if q.SoilPH == nil || math.IsNaN(*q.SoilPH) {
		return out
	}
	ph := *q.SoilPH
	climate := normalizeClimate(q.Climate)

	for _, rec := range catalog {
		if !m.eligible(rec, ph, climate) {
			continue
		}
		out.Results = append(out.Results, m.result(rec, q.Climate, prices))
	}

	if m.cfg.Mode == ModeTolerance {
		return out
	}

	if len(out.Results) == 0 && m.cfg.Fallback {
		for _, rec := range catalog {
			if _, ok := rec.Requirement(); !ok {
				continue
			}
			out.Results = append(out.Results, m.result(rec, q.Climate, prices))
		}
		out.Fallback = len(out.Results) > 0
	}

	rank(out.Results)
	if len(out.Results) > m.cfg.TopK {
		out.Results = out.Results[:m.cfg.TopK]
	}
	return out
}

func (m *Matcher) eligible(rec Record, ph float64, climate string) bool {
	switch m.cfg.Mode {
	case ModeTolerance:
		req, ok := rec.Requirement()
		if !ok || math.Abs(req-ph) > m.cfg.Tolerance+phEpsilon {
			return false
		}
		return climateEqual(rec.Climate, climate)
	default:
		bounds, ok := rec.Bounds(m.cfg.Tolerance)
		if !ok || ph < bounds.Min-phEpsilon || ph > bounds.Max+phEpsilon {
			return false
		}
		return climateContains(rec.Climate, climate)
	}
}

func (m *Matcher) result(rec Record, queryClimate string, prices PriceLookup) Result {
	res := Result{Crop: rec.Name, Climate: strings.TrimSpace(queryClimate)}
	if res.Climate == "" {
		res.Climate = strings.TrimSpace(rec.Climate)
	}
	if prices != nil {
		if p, ok := prices.Lookup(rec.Name); ok {
			res.Price = Price{Amount: p, Available: true}
		}
	}
	return res
}

// climateEqual and climateContains treat an empty side as "no constraint".
// want is already normalized.
func climateEqual(have, want string) bool {
	have = normalizeClimate(have)
	if have == "" || want == "" {
		return true
	}
	return have == want
}

func climateContains(have, want string) bool {
	have = normalizeClimate(have)
	if have == "" || want == "" {
		return true
	}
	return strings.Contains(have, want)
}

// rank orders by descending price, unavailable prices last, then by name.
func rank(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Price.Available != b.Price.Available {
			return a.Price.Available
		}
		if a.Price.Amount != b.Price.Amount {
			return a.Price.Amount > b.Price.Amount
		}
		return a.Crop < b.Crop
	})
}
