package crop

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Catalog is the immutable crop list plus any prices carried in the file.
type Catalog struct {
	Records []Record
	Prices  map[string]int
	Skipped []string
}

// LoadCatalog reads the crop catalog CSV. Header problems and I/O errors are
// fatal; malformed rows are skipped and reported in Catalog.Skipped.
func LoadCatalog(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "open crop catalog %s", path)
	}
	defer f.Close()

	cat, err := ParseCatalog(f)
	if err != nil {
		return nil, eris.Wrapf(err, "load crop catalog %s", path)
	}

	for _, warn := range cat.Skipped {
		zap.L().Warn("crop catalog: row skipped", zap.String("reason", warn))
	}
	zap.L().Info("crop catalog loaded",
		zap.String("path", path),
		zap.Int("records", len(cat.Records)),
		zap.Int("skipped", len(cat.Skipped)),
	)
	return cat, nil
}

func ParseCatalog(r io.Reader) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, eris.Wrap(err, "read header")
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}

	for _, col := range []string{"crop", "climate"} {
		if _, ok := index[col]; !ok {
			return nil, eris.Errorf("missing required column: %s", col)
		}
	}
	_, hasPH := index["ph"]
	_, hasMin := index["min_ph"]
	_, hasMax := index["max_ph"]
	if hasMin != hasMax {
		return nil, eris.New("min_ph and max_ph must appear together")
	}
	if !hasPH && !hasMin {
		return nil, eris.New("missing pH columns: need ph or min_ph/max_ph")
	}

	cat := &Catalog{Prices: make(map[string]int)}
	seen := make(map[string]bool)

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				cat.Skipped = append(cat.Skipped, fmt.Sprintf("line %d: %v", perr.StartLine, perr.Err))
				continue
			}
			return nil, eris.Wrap(err, "read crop catalog")
		}
		line, _ := reader.FieldPos(0)

		rec, price, warn := parseRow(row, index)
		if warn != "" {
			cat.Skipped = append(cat.Skipped, fmt.Sprintf("line %d: %s", line, warn))
			continue
		}
		if seen[rec.Name] {
			cat.Skipped = append(cat.Skipped, fmt.Sprintf("line %d: duplicate crop %q", line, rec.Name))
			continue
		}
		seen[rec.Name] = true

		cat.Records = append(cat.Records, rec)
		if price != nil {
			cat.Prices[rec.Name] = *price
		}
	}

	return cat, nil
}

func parseRow(row []string, index map[string]int) (Record, *int, string) {
	field := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	rec := Record{
		Name:    field("crop"),
		Climate: field("climate"),
	}
	if rec.Name == "" {
		return Record{}, nil, "empty crop name"
	}

	if raw := field("ph"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || !validPH(v) {
			return Record{}, nil, fmt.Sprintf("invalid ph %q for %s", raw, rec.Name)
		}
		rec.PH = &v
	}

	minRaw, maxRaw := field("min_ph"), field("max_ph")
	if minRaw != "" || maxRaw != "" {
		lo, errLo := strconv.ParseFloat(minRaw, 64)
		hi, errHi := strconv.ParseFloat(maxRaw, 64)
		rng := PHRange{Min: lo, Max: hi}
		if errLo != nil || errHi != nil || !validPH(lo) || !validPH(hi) || lo > hi {
			return Record{}, nil, fmt.Sprintf("invalid pH range %q-%q for %s", minRaw, maxRaw, rec.Name)
		}
		rec.Range = &rng
	}

	if rec.PH == nil && rec.Range == nil {
		return Record{}, nil, fmt.Sprintf("no pH requirement for %s", rec.Name)
	}

	var price *int
	if raw := field("price"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < 0 {
			return Record{}, nil, fmt.Sprintf("invalid price %q for %s", raw, rec.Name)
		}
		price = &p
	}

	return rec, price, ""
}
