package crop

import (
	"strings"
	"testing"
)

func TestParsePrices(t *testing.T) {
	table, err := ParsePrices(strings.NewReader("Rice: 1800\nCotton: 5500\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p, ok := table.Lookup("Cotton"); !ok || p != 5500 {
		t.Fatalf("expected Cotton=5500, got %d (%v)", p, ok)
	}
	if _, ok := table.Lookup("Ragi"); ok {
		t.Fatal("unknown crop must not be priced")
	}
}

func TestParsePrices_Empty(t *testing.T) {
	table, err := ParsePrices(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table) != 0 {
		t.Fatalf("expected empty table, got %v", table)
	}
}

func TestParsePrices_Rejects(t *testing.T) {
	cases := map[string]string{
		"negative":  "Rice: -5\n",
		"duplicate": "Rice: 1\nRice: 2\n",
		"non-int":   "Rice: cheap\n",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParsePrices(strings.NewReader(input)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestWithCatalogPrices_TableWins(t *testing.T) {
	table := PriceTable{"Rice": 1800}
	merged := table.WithCatalogPrices(map[string]int{"Rice": 1, "Okra": 900})

	if merged["Rice"] != 1800 {
		t.Errorf("expected table price to win, got %d", merged["Rice"])
	}
	if merged["Okra"] != 900 {
		t.Errorf("expected catalog price for Okra, got %d", merged["Okra"])
	}
	if _, ok := table["Okra"]; ok {
		t.Error("source table must not be modified")
	}
}

func TestPrice_JSON(t *testing.T) {
	body, _ := Price{Amount: 1800, Available: true}.MarshalJSON()
	if string(body) != "1800" {
		t.Fatalf("expected 1800, got %s", body)
	}

	var p Price
	if err := p.UnmarshalJSON([]byte(`"unavailable"`)); err != nil || p.Available {
		t.Fatalf("expected unavailable price, got %+v", p)
	}
	if err := p.UnmarshalJSON([]byte(`42`)); err != nil || !p.Available || p.Amount != 42 {
		t.Fatalf("expected 42, got %+v", p)
	}
}
