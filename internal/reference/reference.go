package reference

import (
	"yieldx/internal/config"
	"yieldx/internal/crop"
	"yieldx/internal/soil"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Data is the read-only reference data shared by every request.
type Data struct {
	Store   *soil.Store
	Catalog *crop.Catalog
	Prices  crop.PriceTable
}

// Load reads the soil store, crop catalog and price table. Any error means
// the process must not serve.
func Load(cfg *config.Config) (*Data, error) {
	store, err := soil.LoadStore(cfg.SoilDataPath)
	if err != nil {
		return nil, err
	}

	catalog, err := crop.LoadCatalog(cfg.CropDataPath)
	if err != nil {
		return nil, err
	}

	prices := crop.DefaultPrices()
	if cfg.PriceDataPath != "" {
		if prices, err = crop.LoadPrices(cfg.PriceDataPath); err != nil {
			return nil, eris.Wrap(err, "load price table")
		}
		zap.L().Info("price table loaded",
			zap.String("path", cfg.PriceDataPath),
			zap.Int("crops", len(prices)),
		)
	}

	return &Data{
		Store:   store,
		Catalog: catalog,
		Prices:  prices.WithCatalogPrices(catalog.Prices),
	}, nil
}

// Skipped returns every row or record dropped while loading.
func (d *Data) Skipped() []string {
	out := make([]string, 0, len(d.Store.Skipped)+len(d.Catalog.Skipped))
	out = append(out, d.Store.Skipped...)
	return append(out, d.Catalog.Skipped...)
}
