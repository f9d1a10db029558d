package reference

import (
	"os"
	"path/filepath"
	"testing"

	"yieldx/internal/config"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		SoilDataPath:  writeFile(t, dir, "soil.json", `{"AP":[{"name":"Guntur","ph":"6.0"},{"name":"Bad","ph":"x"}]}`),
		CropDataPath:  writeFile(t, dir, "crops.csv", "crop,ph,climate,price\nRice,6.2,tropical,1\nOkra,6.5,tropical,900\n"),
		PriceDataPath: writeFile(t, dir, "prices.yaml", "Rice: 1800\n"),
	}

	data, err := Load(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p, _ := data.Prices.Lookup("Rice"); p != 1800 {
		t.Errorf("price table must win over catalog, got %d", p)
	}
	if p, _ := data.Prices.Lookup("Okra"); p != 900 {
		t.Errorf("catalog price expected for Okra, got %d", p)
	}
	if _, ok := data.Prices.Lookup("Cotton"); ok {
		t.Error("configured price file replaces the defaults")
	}
	if len(data.Skipped()) != 1 {
		t.Errorf("expected one skipped record, got %v", data.Skipped())
	}
}

func TestLoad_DefaultPrices(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		SoilDataPath: writeFile(t, dir, "soil.json", `{}`),
		CropDataPath: writeFile(t, dir, "crops.csv", "crop,min_ph,max_ph,climate\nCotton,5.8,8.0,arid\n"),
	}

	data, err := Load(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if p, _ := data.Prices.Lookup("Cotton"); p != 5500 {
		t.Fatalf("expected default price, got %d", p)
	}
}

func TestLoad_Fatal(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "crops.csv", "crop,ph,climate\nRice,6,x\n")

	cases := map[string]*config.Config{
		"missing store":  {SoilDataPath: filepath.Join(dir, "none.json"), CropDataPath: good},
		"broken store":   {SoilDataPath: writeFile(t, dir, "bad.json", `{"AP":`), CropDataPath: good},
		"missing header": {SoilDataPath: writeFile(t, dir, "s.json", `{}`), CropDataPath: writeFile(t, dir, "h.csv", "name,ph\n")},
		"duplicate price": {
			SoilDataPath:  writeFile(t, dir, "s2.json", `{}`),
			CropDataPath:  good,
			PriceDataPath: writeFile(t, dir, "p.yaml", "Rice: 1\nRice: 2\n"),
		},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(cfg); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
