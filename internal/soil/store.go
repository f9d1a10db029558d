package soil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Store is the read-only region -> districts reference data.
type Store struct {
	regions map[string][]Observation
	Skipped []string
}

// looseNumber accepts 6.2, "6.2" and " 6.2 ". Anything else decodes without
// error but stays invalid so the row can be skipped on its own.
type looseNumber struct {
	value float64
	valid bool
	raw   string
}

func (n *looseNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	n.raw = string(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	s := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	n.value, n.valid = v, true
	return nil
}

type storeRecord struct {
	Name     string      `json:"name"`
	District string      `json:"district"`
	PH       looseNumber `json:"ph"`
	Climate  string      `json:"climate"`
}

// LoadStore reads the soil reference file. Any JSON syntax or shape error is
// returned; bad records are skipped and logged.
func LoadStore(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "open soil store %s", path)
	}
	defer f.Close()

	store, err := ParseStore(f)
	if err != nil {
		return nil, eris.Wrapf(err, "load soil store %s", path)
	}

	for _, warn := range store.Skipped {
		zap.L().Warn("soil store: record skipped", zap.String("reason", warn))
	}
	zap.L().Info("soil store loaded",
		zap.String("path", path),
		zap.Int("regions", len(store.regions)),
		zap.Int("skipped", len(store.Skipped)),
	)
	return store, nil
}

func ParseStore(r io.Reader) (*Store, error) {
	var raw map[string][]storeRecord
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, eris.Wrap(err, "decode soil store")
	}
	if raw == nil {
		return nil, eris.New("soil store is empty")
	}

	store := &Store{regions: make(map[string][]Observation, len(raw))}
	for _, region := range sortedKeys(raw) {
		seen := make(map[string]bool)
		for i, rec := range raw[region] {
			name := strings.TrimSpace(rec.Name)
			if name == "" {
				name = strings.TrimSpace(rec.District)
			}
			if name == "" {
				store.Skipped = append(store.Skipped, fmt.Sprintf("%s[%d]: empty district name", region, i))
				continue
			}
			if !rec.PH.valid || !validPH(rec.PH.value) {
				store.Skipped = append(store.Skipped, fmt.Sprintf("%s/%s: invalid ph %s", region, name, rec.PH.raw))
				continue
			}
			key := normalize(name)
			if seen[key] {
				store.Skipped = append(store.Skipped, fmt.Sprintf("%s/%s: duplicate district", region, name))
				continue
			}
			seen[key] = true

			store.regions[region] = append(store.regions[region], Observation{
				Region:   region,
				District: name,
				PH:       rec.PH.value,
				Climate:  strings.TrimSpace(rec.Climate),
			})
		}
	}
	return store, nil
}

// Lookup matches the region key exactly and the district name after
// trimming and lower-casing both sides.
func (s *Store) Lookup(region, district string) (Observation, bool) {
	if s == nil {
		return Observation{}, false
	}
	want := normalize(district)
	if want == "" {
		return Observation{}, false
	}
	for _, obs := range s.regions[region] {
		if normalize(obs.District) == want {
			return obs, true
		}
	}
	return Observation{}, false
}

// Regions returns the region keys in sorted order.
func (s *Store) Regions() []string {
	if s == nil {
		return []string{}
	}
	return sortedKeys(s.regions)
}

// Districts returns a copy of the region's observations in file order.
func (s *Store) Districts(region string) ([]Observation, bool) {
	if s == nil {
		return nil, false
	}
	obs, ok := s.regions[region]
	if !ok {
		return nil, false
	}
	return append([]Observation(nil), obs...), true
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func validPH(v float64) bool {
	return v >= 0 && v <= 14
}
