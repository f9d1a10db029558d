package crop

import (
	"errors"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// PriceLookup is all the matcher needs to know about prices.
type PriceLookup interface {
	Lookup(name string) (int, bool)
}

// PriceTable maps crop name to market price per unit. Read-only once built.
type PriceTable map[string]int

func (t PriceTable) Lookup(name string) (int, bool) {
	p, ok := t[name]
	return p, ok
}

// DefaultPrices is used when no price file is configured.
func DefaultPrices() PriceTable {
	return PriceTable{
		"Rice":      1800,
		"Wheat":     2000,
		"Maize":     1500,
		"Sugarcane": 3200,
		"Cotton":    5500,
	}
}

// LoadPrices reads a YAML mapping of crop name to integer price.
func LoadPrices(path string) (PriceTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "open price table %s", path)
	}
	defer f.Close()

	return ParsePrices(f)
}

// ParsePrices decodes a price table. Duplicate keys and negative prices are errors.
func ParsePrices(r io.Reader) (PriceTable, error) {
	var table PriceTable
	if err := yaml.NewDecoder(r).Decode(&table); err != nil {
		if errors.Is(err, io.EOF) {
			return PriceTable{}, nil
		}
		return nil, eris.Wrap(err, "decode price table")
	}
	for name, price := range table {
		if price < 0 {
			return nil, eris.Errorf("negative price for %s", name)
		}
	}
	if table == nil {
		table = PriceTable{}
	}
	return table, nil
}

// WithCatalogPrices returns a copy of t extended with catalog prices for
// crops t does not already price.
func (t PriceTable) WithCatalogPrices(extra map[string]int) PriceTable {
	merged := make(PriceTable, len(t)+len(extra))
	for name, price := range extra {
		merged[name] = price
	}
	for name, price := range t {
		merged[name] = price
	}
	return merged
}
