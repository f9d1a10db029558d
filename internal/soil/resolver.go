package soil

import (
	"context"

	"go.uber.org/zap"
)

// Resolver turns a request location into a soil reading: coordinates first,
// then the region/district store.
type Resolver struct {
	store  *Store
	lookup PHLookup
}

// NewResolver accepts a nil lookup, in which case coordinates are ignored.
func NewResolver(store *Store, lookup PHLookup) *Resolver {
	return &Resolver{store: store, lookup: lookup}
}

func (r *Resolver) Store() *Store {
	return r.store
}

// Resolve never fails. A Reading without PH means nothing could be found.
func (r *Resolver) Resolve(ctx context.Context, loc Location) Reading {
	if lat, lon, ok := loc.Coordinates(); ok && r.lookup != nil {
		res := r.lookup.LookupPH(ctx, lat, lon)
		switch res.Outcome {
		case Available:
			ph := res.PH
			return Reading{PH: &ph, Source: SourceSoilGrids}
		case Fatal:
			zap.L().Error("soil lookup misconfigured, using store",
				zap.Float64("lat", lat),
				zap.Float64("lon", lon),
				zap.Error(res.Err),
			)
		default:
			zap.L().Warn("soil lookup unavailable, using store",
				zap.Float64("lat", lat),
				zap.Float64("lon", lon),
				zap.Error(res.Err),
			)
		}
	}

	if loc.Region != "" && loc.District != "" {
		if obs, ok := r.store.Lookup(loc.Region, loc.District); ok {
			ph := obs.PH
			return Reading{PH: &ph, Climate: obs.Climate, Source: SourceStore}
		}
	}

	return Reading{Source: SourceNone}
}
