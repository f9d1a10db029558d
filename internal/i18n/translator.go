package i18n

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
)

// Translator converts English text into the target language.
type Translator interface {
	Translate(ctx context.Context, text, target string) (string, error)
}

// HTTPTranslator talks to a LibreTranslate-compatible /translate endpoint.
type HTTPTranslator struct {
	url    string
	apiKey string
	client *http.Client
}

func NewHTTPTranslator(url, apiKey string, timeout time.Duration) *HTTPTranslator {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPTranslator{
		url:    url,
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
	}
}

func (t *HTTPTranslator) Translate(ctx context.Context, text, target string) (string, error) {
	if t.url == "" {
		return "", eris.New("translate url not configured")
	}

	payload := map[string]string{
		"q":      text,
		"source": DefaultLanguage,
		"target": target,
		"format": "text",
	}
	if t.apiKey != "" {
		payload["api_key"] = t.apiKey
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", eris.Wrap(err, "encode translate request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(body))
	if err != nil {
		return "", eris.Wrap(err, "build translate request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "translate request")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", eris.Wrap(err, "read translate response")
	}
	if resp.StatusCode != http.StatusOK {
		return "", eris.Errorf("translate api error: status %d: %s", resp.StatusCode, string(raw))
	}

	var result struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", eris.Wrap(err, "decode translate response")
	}
	if result.TranslatedText == "" {
		return "", eris.New("empty translation")
	}
	return result.TranslatedText, nil
}
