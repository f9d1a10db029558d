package voice

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rotisserie/eris"
)

const maxChunkRunes = 100

// Synthesizer renders text as MP3 audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, lang string) ([]byte, error)
}

// HTTPSynthesizer calls a translate_tts style endpoint, one request per chunk.
type HTTPSynthesizer struct {
	url    string
	client *http.Client
}

func NewHTTPSynthesizer(endpoint string, timeout time.Duration) *HTTPSynthesizer {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPSynthesizer{url: endpoint, client: &http.Client{Timeout: timeout}}
}

func (s *HTTPSynthesizer) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	chunks := splitText(text, maxChunkRunes)
	if len(chunks) == 0 {
		return nil, eris.New("nothing to synthesize")
	}

	var audio bytes.Buffer
	for i, chunk := range chunks {
		if err := s.fetchChunk(ctx, &audio, chunk, lang, i, len(chunks)); err != nil {
			return nil, err
		}
	}
	return audio.Bytes(), nil
}

func (s *HTTPSynthesizer) fetchChunk(ctx context.Context, dst io.Writer, chunk, lang string, idx, total int) error {
	u, err := url.Parse(s.url)
	if err != nil {
		return eris.Wrap(err, "parse tts url")
	}
	q := u.Query()
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", lang)
	q.Set("q", chunk)
	q.Set("total", strconv.Itoa(total))
	q.Set("idx", strconv.Itoa(idx))
	q.Set("textlen", strconv.Itoa(utf8.RuneCountInString(chunk)))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return eris.Wrap(err, "build tts request")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return eris.Wrap(err, "tts request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return eris.Errorf("tts status %d for chunk %d", resp.StatusCode, idx)
	}
	if _, err := io.Copy(dst, resp.Body); err != nil {
		return eris.Wrap(err, "read tts audio")
	}
	return nil
}

// splitText breaks text into chunks of at most limit runes, preferring word
// boundaries. Words longer than limit are cut.
func splitText(text string, limit int) []string {
	var (
		chunks  []string
		current strings.Builder
		size    int
	)
	flush := func() {
		if size > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
			size = 0
		}
	}

	for _, word := range strings.Fields(text) {
		runes := []rune(word)
		for len(runes) > limit {
			flush()
			chunks = append(chunks, string(runes[:limit]))
			runes = runes[limit:]
		}
		n := len(runes)
		if size > 0 && size+1+n > limit {
			flush()
		}
		if size > 0 {
			current.WriteByte(' ')
			size++
		}
		current.WriteString(string(runes))
		size += n
	}
	flush()
	return chunks
}
