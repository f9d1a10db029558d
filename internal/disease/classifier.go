package disease

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
)

// Classifier runs the image model and returns one logit per label.
type Classifier interface {
	Classify(ctx context.Context, image []byte, contentType string) ([]float64, error)
}

// HTTPClassifier posts the raw image to a model server that answers
// {"logits": [...]}.
type HTTPClassifier struct {
	url    string
	client *http.Client
}

func NewHTTPClassifier(url string, timeout time.Duration) *HTTPClassifier {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClassifier{url: url, client: &http.Client{Timeout: timeout}}
}

func (c *HTTPClassifier) Classify(ctx context.Context, image []byte, contentType string) ([]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(image))
	if err != nil {
		return nil, eris.Wrap(err, "build classifier request")
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "classifier request")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, eris.Wrap(err, "read classifier response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("classifier error: status %d: %s", resp.StatusCode, string(raw))
	}

	var result struct {
		Logits []float64 `json:"logits"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, eris.Wrap(err, "decode classifier response")
	}
	return result.Logits, nil
}
