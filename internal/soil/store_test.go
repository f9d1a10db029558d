package soil

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const storeFixture = `{
  "AP": [
    {"name": " nellore ", "ph": "6.8", "climate": "Tropical"},
    {"name": "Guntur", "ph": 6.0, "climate": "Tropical"},
    {"name": "Broken", "ph": "acidic", "climate": "Tropical"},
    {"name": "", "ph": 7.1},
    {"name": "GUNTUR", "ph": 9.0}
  ],
  "Punjab": [
    {"district": "Ludhiana", "ph": 7.9, "climate": "Semi-arid"}
  ]
}`

func TestParseStore(t *testing.T) {
	store, err := ParseStore(strings.NewReader(storeFixture))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := store.Regions(); !reflect.DeepEqual(got, []string{"AP", "Punjab"}) {
		t.Fatalf("unexpected regions: %v", got)
	}

	districts, ok := store.Districts("AP")
	if !ok || len(districts) != 2 {
		t.Fatalf("expected 2 valid AP districts, got %+v", districts)
	}
	if len(store.Skipped) != 3 {
		t.Errorf("expected 3 skipped records, got %v", store.Skipped)
	}
}

func TestStoreLookup_DistrictNormalization(t *testing.T) {
	store, err := ParseStore(strings.NewReader(storeFixture))
	if err != nil {
		t.Fatal(err)
	}

	obs, ok := store.Lookup("AP", "Nellore")
	if !ok {
		t.Fatal("expected Nellore to match stored \" nellore \"")
	}
	if obs.PH != 6.8 || obs.Climate != "Tropical" {
		t.Errorf("unexpected observation: %+v", obs)
	}

	obs, ok = store.Lookup("AP", "  guntur")
	if !ok || obs.PH != 6.0 {
		t.Fatalf("expected first Guntur record, got %+v (%v)", obs, ok)
	}

	if _, ok := store.Lookup("Punjab", "ludhiana"); !ok {
		t.Error("expected district key alias to load")
	}
}

func TestStoreLookup_RegionIsExact(t *testing.T) {
	store, err := ParseStore(strings.NewReader(storeFixture))
	if err != nil {
		t.Fatal(err)
	}

	for _, region := range []string{"ap", " AP", "Andhra"} {
		if _, ok := store.Lookup(region, "Guntur"); ok {
			t.Errorf("region %q must not match", region)
		}
	}
	if _, ok := store.Lookup("AP", ""); ok {
		t.Error("empty district must not match")
	}
}

func TestParseStore_Fatal(t *testing.T) {
	cases := map[string]string{
		"syntax":        `{"AP": [`,
		"not an object": `[1, 2]`,
		"region shape":  `{"AP": {"name": "Guntur"}}`,
		"null":          `null`,
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseStore(strings.NewReader(input)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestNilStore(t *testing.T) {
	var s *Store
	if _, ok := s.Lookup("AP", "Guntur"); ok {
		t.Fatal("nil store must not match")
	}
	if len(s.Regions()) != 0 {
		t.Fatal("nil store has no regions")
	}
}

func TestLoadStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "soil.json")
	if err := os.WriteFile(path, []byte(storeFixture), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadStore(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := LoadStore(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
