package voice

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

// Transcriber turns a WAV file into text.
type Transcriber interface {
	Transcribe(ctx context.Context, wavPath, lang string) (string, error)
}

// whisperLanguages are the supported UI languages Whisper accepts as a hint.
var whisperLanguages = map[string]bool{
	"en": true, "hi": true, "te": true, "ta": true, "kn": true, "ml": true,
	"bn": true, "gu": true, "pa": true, "mr": true, "ur": true, "as": true,
}

type WhisperTranscriber struct {
	client  *openai.Client
	limiter *rate.Limiter
}

func NewWhisperTranscriber(apiKey, baseURL string, ratePerSec float64) *WhisperTranscriber {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if ratePerSec <= 0 {
		ratePerSec = 3
	}
	burst := int(ratePerSec)
	if burst < 1 {
		burst = 1
	}

	return &WhisperTranscriber{
		client:  openai.NewClientWithConfig(cfg),
		limiter: rate.NewLimiter(rate.Limit(ratePerSec), burst),
	}
}

func (w *WhisperTranscriber) Transcribe(ctx context.Context, wavPath, lang string) (string, error) {
	if err := w.limiter.Wait(ctx); err != nil {
		return "", eris.Wrap(err, "wait for transcription slot")
	}

	req := openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: wavPath,
	}
	if whisperLanguages[lang] {
		req.Language = lang
	}

	resp, err := w.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", eris.Wrap(err, "whisper transcription")
	}
	return strings.TrimSpace(resp.Text), nil
}
