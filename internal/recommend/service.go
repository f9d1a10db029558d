package recommend

import (
	"context"

	"yieldx/internal/core"
	"yieldx/internal/crop"
	"yieldx/internal/i18n"
	"yieldx/internal/soil"

	"go.uber.org/zap"
)

const (
	msgFound    = "Recommended crops for your soil."
	msgFallback = "No exact match found. Showing popular alternatives."
	msgNoMatch  = "No suitable crops found for your soil."
	msgNoSoil   = "Could not determine soil data for your location."
)

// Deps are the read-only collaborators shared by all requests.
type Deps struct {
	Resolver  *soil.Resolver
	Catalog   []crop.Record
	Prices    crop.PriceLookup
	Matcher   *crop.Matcher
	History   HistoryRepository
	Farmers   core.FarmerReader
	Localizer *i18n.Localizer
}

type Service struct {
	resolver  *soil.Resolver
	catalog   []crop.Record
	prices    crop.PriceLookup
	matcher   *crop.Matcher
	history   HistoryRepository
	farmers   core.FarmerReader
	localizer *i18n.Localizer
}

func NewService(d Deps) *Service {
	if d.Matcher == nil {
		d.Matcher = crop.NewMatcher(crop.DefaultMatcherConfig())
	}
	return &Service{
		resolver:  d.Resolver,
		catalog:   d.Catalog,
		prices:    d.Prices,
		matcher:   d.Matcher,
		history:   d.History,
		farmers:   d.Farmers,
		localizer: d.Localizer,
	}
}

// --------------------------------------------------
// Recommend crops for a location
// --------------------------------------------------
func (s *Service) Recommend(ctx context.Context, req Request) Response {
	if !req.hasLocation() && req.FarmerID != "" && s.farmers != nil {
		state, district, err := s.farmers.FarmerLocation(ctx, req.FarmerID)
		if err != nil {
			zap.L().Warn("farmer location unavailable",
				zap.String("farmer_id", req.FarmerID),
				zap.Error(err),
			)
		} else {
			req.State, req.District = state, district
		}
	}

	reading := s.resolver.Resolve(ctx, req.location())
	outcome := s.matcher.Match(crop.Query{SoilPH: reading.PH, Climate: reading.Climate}, s.catalog, s.prices)

	resp := Response{
		Recommendations: outcome.Results,
		Fallback:        outcome.Fallback,
		SoilPH:          reading.PH,
		Climate:         reading.Climate,
		Source:          reading.Source,
	}

	switch {
	case !reading.Found():
		resp.Message = msgNoSoil
	case outcome.Fallback:
		resp.Message = msgFallback
	case len(outcome.Results) == 0:
		resp.Message = msgNoMatch
	default:
		resp.Message = msgFound
	}
	resp.Message = s.localizer.T(ctx, resp.Message)

	s.record(ctx, req, resp)
	return resp
}

// record stores the recommendation for a signed-in farmer. Anonymous
// requests are not kept. Failures only get logged.
func (s *Service) record(ctx context.Context, req Request, resp Response) {
	if s.history == nil || req.FarmerID == "" {
		return
	}

	entry := &HistoryEntry{
		FarmerID: req.FarmerID,
		State:    req.State,
		District: req.District,
		Lat:      req.Lat,
		Lon:      req.Lon,
		SoilPH:   resp.SoilPH,
		Climate:  resp.Climate,
		Source:   resp.Source,
		Fallback: resp.Fallback,
		Results:  resp.Recommendations,
	}
	if err := s.history.Save(ctx, entry); err != nil {
		zap.L().Warn("recommendation history not saved", zap.Error(err))
	}
}

// --------------------------------------------------
// History of one farmer
// --------------------------------------------------
func (s *Service) History(ctx context.Context, farmerID string, limit int) ([]HistoryEntry, error) {
	if s.history == nil {
		return []HistoryEntry{}, nil
	}
	return s.history.ListByFarmer(ctx, farmerID, limit)
}
