package recommend

import (
	"context"
	"errors"
	"strings"
	"testing"

	"yieldx/internal/crop"
	"yieldx/internal/i18n"
	"yieldx/internal/soil"
)

type fakeLookup struct {
	result soil.LookupResult
}

func (f fakeLookup) LookupPH(ctx context.Context, lat, lon float64) soil.LookupResult {
	return f.result
}

type fakeFarmers struct {
	state, district string
	err             error
}

func (f fakeFarmers) FarmerLocation(ctx context.Context, farmerID string) (string, string, error) {
	return f.state, f.district, f.err
}

type failingHistory struct{}

func (failingHistory) Save(ctx context.Context, entry *HistoryEntry) error {
	return errors.New("db down")
}

func (failingHistory) ListByFarmer(ctx context.Context, farmerID string, limit int) ([]HistoryEntry, error) {
	return nil, errors.New("db down")
}

type upperTranslator struct{}

func (upperTranslator) Translate(ctx context.Context, text, target string) (string, error) {
	return strings.ToUpper(text), nil
}

func referenceData(t *testing.T) (*soil.Store, *crop.Catalog) {
	t.Helper()
	store, err := soil.ParseStore(strings.NewReader(`{"AP": [{"name": "Guntur", "ph": "6.0", "climate": "Tropical"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	catalog, err := crop.ParseCatalog(strings.NewReader("crop,ph,climate\nRice,6.2,tropical\nCotton,8.0,arid\n"))
	if err != nil {
		t.Fatal(err)
	}
	return store, catalog
}

func newTestService(t *testing.T, lookup soil.PHLookup, mode crop.Mode, history HistoryRepository) *Service {
	t.Helper()
	store, catalog := referenceData(t)
	return NewService(Deps{
		Resolver: soil.NewResolver(store, lookup),
		Catalog:  catalog.Records,
		Prices:   crop.PriceTable{"Rice": 1800},
		Matcher:  crop.NewMatcher(crop.MatcherConfig{Mode: mode, Tolerance: 0.5, TopK: 3, Fallback: true}),
		History:  history,
	})
}

func f64(v float64) *float64 { return &v }

func TestRecommend_ReferenceExample(t *testing.T) {
	want := crop.Result{Crop: "Rice", Price: crop.Price{Amount: 1800, Available: true}, Climate: "Tropical"}

	for _, mode := range []crop.Mode{crop.ModeRange, crop.ModeTolerance} {
		svc := newTestService(t, nil, mode, nil)
		resp := svc.Recommend(context.Background(), Request{State: "AP", District: "Guntur"})

		if len(resp.Recommendations) != 1 || resp.Recommendations[0] != want {
			t.Fatalf("mode %s: unexpected recommendations %+v", mode, resp.Recommendations)
		}
		if resp.Source != soil.SourceStore || resp.Fallback || *resp.SoilPH != 6.0 {
			t.Fatalf("mode %s: unexpected response %+v", mode, resp)
		}
		if resp.Message != msgFound {
			t.Errorf("unexpected message %q", resp.Message)
		}
	}
}

func TestRecommend_ExternalFailureFallsBackToStore(t *testing.T) {
	lookup := fakeLookup{result: soil.LookupResult{Outcome: soil.Unavailable, Err: errors.New("timeout")}}
	svc := newTestService(t, lookup, crop.ModeRange, nil)

	withCoords := svc.Recommend(context.Background(), Request{Lat: f64(16.3), Lon: f64(80.4), State: "AP", District: "Guntur"})
	storeOnly := svc.Recommend(context.Background(), Request{State: "AP", District: "Guntur"})

	if len(withCoords.Recommendations) != len(storeOnly.Recommendations) ||
		withCoords.Recommendations[0] != storeOnly.Recommendations[0] {
		t.Fatalf("fallback %+v differs from store-only %+v", withCoords, storeOnly)
	}
}

func TestRecommend_NoLocationIsEmptySuccess(t *testing.T) {
	svc := newTestService(t, nil, crop.ModeRange, nil)

	resp := svc.Recommend(context.Background(), Request{})
	if resp.Recommendations == nil || len(resp.Recommendations) != 0 {
		t.Fatalf("expected empty non-nil recommendations, got %#v", resp.Recommendations)
	}
	if resp.Fallback || resp.SoilPH != nil || resp.Source != soil.SourceNone {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.Message != msgNoSoil {
		t.Errorf("unexpected message %q", resp.Message)
	}
}

func TestRecommend_CoordinatesWithoutClimate(t *testing.T) {
	lookup := fakeLookup{result: soil.LookupResult{PH: 7.9, Outcome: soil.Available}}
	svc := newTestService(t, lookup, crop.ModeRange, nil)

	resp := svc.Recommend(context.Background(), Request{Lat: f64(30.9), Lon: f64(75.8)})
	if resp.Source != soil.SourceSoilGrids {
		t.Fatalf("expected soilgrids source, got %s", resp.Source)
	}
	if len(resp.Recommendations) != 1 || resp.Recommendations[0].Crop != "Cotton" {
		t.Fatalf("expected Cotton, got %+v", resp.Recommendations)
	}
	if resp.Recommendations[0].Price.Available {
		t.Error("Cotton has no price in this table")
	}
}

func TestRecommend_RangeFallback(t *testing.T) {
	lookup := fakeLookup{result: soil.LookupResult{PH: 4.0, Outcome: soil.Available}}
	svc := newTestService(t, lookup, crop.ModeRange, nil)

	resp := svc.Recommend(context.Background(), Request{Lat: f64(1), Lon: f64(1)})
	if !resp.Fallback || len(resp.Recommendations) != 2 || resp.Recommendations[0].Crop != "Rice" {
		t.Fatalf("expected price-ranked fallback, got %+v", resp)
	}
	if resp.Message != msgFallback {
		t.Errorf("unexpected message %q", resp.Message)
	}
}

func TestRecommend_UsesFarmerProfileLocation(t *testing.T) {
	store, catalog := referenceData(t)
	history := NewInMemoryHistoryRepository()
	svc := NewService(Deps{
		Resolver: soil.NewResolver(store, nil),
		Catalog:  catalog.Records,
		Prices:   crop.DefaultPrices(),
		History:  history,
		Farmers:  fakeFarmers{state: "AP", district: "guntur"},
	})

	resp := svc.Recommend(context.Background(), Request{FarmerID: "farmer-1"})
	if resp.Source != soil.SourceStore || len(resp.Recommendations) == 0 {
		t.Fatalf("expected profile location to be used, got %+v", resp)
	}

	entries, err := svc.History(context.Background(), "farmer-1", 10)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one history entry, got %d (%v)", len(entries), err)
	}
	if entries[0].State != "AP" || entries[0].Results[0].Crop != "Rice" {
		t.Fatalf("unexpected history entry %+v", entries[0])
	}
}

func TestRecommend_HistoryFailureIsIgnored(t *testing.T) {
	svc := newTestService(t, nil, crop.ModeRange, failingHistory{})

	resp := svc.Recommend(context.Background(), Request{State: "AP", District: "Guntur", FarmerID: "farmer-1"})
	if len(resp.Recommendations) != 1 {
		t.Fatalf("expected recommendation despite history failure, got %+v", resp)
	}
}

type countingHistory struct {
	*InMemoryHistoryRepository
	saves int
}

func (h *countingHistory) Save(ctx context.Context, entry *HistoryEntry) error {
	h.saves++
	return h.InMemoryHistoryRepository.Save(ctx, entry)
}

func TestRecommend_AnonymousRequestsAreNotRecorded(t *testing.T) {
	history := &countingHistory{InMemoryHistoryRepository: NewInMemoryHistoryRepository()}
	svc := newTestService(t, nil, crop.ModeRange, history)

	lat, lon := 16.3, 80.4
	svc.Recommend(context.Background(), Request{Lat: &lat, Lon: &lon, State: "AP", District: "Guntur"})
	if history.saves != 0 {
		t.Fatalf("anonymous request was recorded %d times", history.saves)
	}

	svc.Recommend(context.Background(), Request{State: "AP", District: "Guntur", FarmerID: "farmer-1"})
	if history.saves != 1 {
		t.Fatalf("expected farmer request to be recorded once, got %d", history.saves)
	}
}

func TestRecommend_LocalizedMessage(t *testing.T) {
	store, catalog := referenceData(t)
	svc := NewService(Deps{
		Resolver:  soil.NewResolver(store, nil),
		Catalog:   catalog.Records,
		Prices:    crop.DefaultPrices(),
		Localizer: i18n.NewLocalizer(upperTranslator{}),
	})

	ctx := i18n.WithLanguage(context.Background(), "hi")
	resp := svc.Recommend(ctx, Request{State: "AP", District: "Guntur"})
	if resp.Message != strings.ToUpper(msgFound) {
		t.Fatalf("expected translated message, got %q", resp.Message)
	}
	if resp.Recommendations[0].Crop != "Rice" {
		t.Fatalf("crop names are not translated, got %q", resp.Recommendations[0].Crop)
	}
}

func soilAvailable(ph float64) soil.LookupResult {
	return soil.LookupResult{PH: ph, Outcome: soil.Available}
}
