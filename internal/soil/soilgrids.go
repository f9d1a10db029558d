package soil

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
)

const (
	DefaultSoilGridsURL = "https://rest.soilgrids.org/query"
	MaxLookupTimeout    = 5 * time.Second

	maxResponseBytes = 1 << 20
)

// PHLookup answers "what is the soil pH at this coordinate".
type PHLookup interface {
	LookupPH(ctx context.Context, lat, lon float64) LookupResult
}

type SoilGridsClient struct {
	baseURL string
	client  *http.Client
}

func NewSoilGridsClient(baseURL string, timeout time.Duration) *SoilGridsClient {
	if baseURL == "" {
		baseURL = DefaultSoilGridsURL
	}
	if timeout <= 0 || timeout > MaxLookupTimeout {
		timeout = MaxLookupTimeout
	}
	return &SoilGridsClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// LookupPH never returns a Go error; failures are classified in the result.
func (c *SoilGridsClient) LookupPH(ctx context.Context, lat, lon float64) LookupResult {
	u, err := url.Parse(c.baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		if err == nil {
			err = eris.Errorf("invalid soilgrids url %q", c.baseURL)
		}
		return LookupResult{Outcome: Fatal, Err: eris.Wrap(err, "build soilgrids url")}
	}
	q := u.Query()
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return LookupResult{Outcome: Fatal, Err: eris.Wrap(err, "build soilgrids request")}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return unavailable(eris.Wrap(err, "soilgrids request"))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return unavailable(eris.Errorf("soilgrids status %d", resp.StatusCode))
	}

	var payload struct {
		Properties struct {
			PHH2O struct {
				Mean struct {
					Value *float64 `json:"value"`
				} `json:"mean"`
			} `json:"phh2o"`
		} `json:"properties"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		return unavailable(eris.Wrap(err, "decode soilgrids response"))
	}

	v := payload.Properties.PHH2O.Mean.Value
	if v == nil {
		return unavailable(eris.New("soilgrids response has no phh2o value"))
	}
	ph, ok := normalizePH(*v)
	if !ok {
		return unavailable(eris.Errorf("soilgrids phh2o value %v out of range", *v))
	}
	return LookupResult{PH: ph, Outcome: Available}
}

// normalizePH accepts pH on the 0-14 scale or in pH*10 units (0-140).
// Zero counts as "no data".
func normalizePH(v float64) (float64, bool) {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0) || v <= 0:
		return 0, false
	case v <= 14:
		return v, true
	case v <= 140:
		return v / 10, true
	default:
		return 0, false
	}
}

func unavailable(err error) LookupResult {
	return LookupResult{Outcome: Unavailable, Err: err}
}
