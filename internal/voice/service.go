package voice

import (
	"context"
	"encoding/base64"
	"io"
	"os"
	"path/filepath"
	"strings"

	"yieldx/internal/i18n"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

const (
	msgEmpty    = "Please type something."
	msgNoSpeech = "Could not recognize speech"
	replyPrefix = "You said: "
)

var (
	ErrNoSpeech            = eris.New("no speech recognized")
	ErrSpeechNotConfigured = eris.New("speech recognition not configured")
)

type Reply struct {
	Reply string `json:"reply"`
	Audio string `json:"audio"`
}

type Service struct {
	transcoder  Transcoder
	transcriber Transcriber
	synthesizer Synthesizer
	localizer   *i18n.Localizer
}

// NewService accepts nil collaborators: without a synthesizer replies carry
// no audio, without a transcriber Voice reports ErrSpeechNotConfigured.
func NewService(transcoder Transcoder, transcriber Transcriber, synthesizer Synthesizer, localizer *i18n.Localizer) *Service {
	return &Service{
		transcoder:  transcoder,
		transcriber: transcriber,
		synthesizer: synthesizer,
		localizer:   localizer,
	}
}

// --------------------------------------------------
// Text chat
// --------------------------------------------------
func (s *Service) Chat(ctx context.Context, message string) Reply {
	message = strings.TrimSpace(message)
	if message == "" {
		return Reply{Reply: s.localizer.T(ctx, msgEmpty)}
	}
	return s.answer(ctx, message)
}

// --------------------------------------------------
// Voice chat
// --------------------------------------------------
func (s *Service) Voice(ctx context.Context, audio io.Reader) (Reply, error) {
	if s.transcoder == nil || s.transcriber == nil {
		return Reply{}, ErrSpeechNotConfigured
	}

	dir, err := os.MkdirTemp("", "voice-*")
	if err != nil {
		return Reply{}, eris.Wrap(err, "create voice workspace")
	}
	defer os.RemoveAll(dir)

	inPath := filepath.Join(dir, "input.webm")
	wavPath := filepath.Join(dir, "input.wav")

	if err := saveFile(inPath, audio); err != nil {
		return Reply{}, err
	}
	if err := s.transcoder.ToWAV(ctx, inPath, wavPath); err != nil {
		return Reply{}, err
	}

	text, err := s.transcriber.Transcribe(ctx, wavPath, i18n.FromContext(ctx))
	if err != nil {
		return Reply{}, err
	}
	if strings.TrimSpace(text) == "" {
		return Reply{}, ErrNoSpeech
	}

	return s.answer(ctx, strings.TrimSpace(text)), nil
}

// NoSpeechMessage is the localized text for ErrNoSpeech.
func (s *Service) NoSpeechMessage(ctx context.Context) string {
	return s.localizer.T(ctx, msgNoSpeech)
}

func (s *Service) answer(ctx context.Context, text string) Reply {
	reply := s.localizer.T(ctx, replyPrefix+text)
	return Reply{Reply: reply, Audio: s.speak(ctx, reply)}
}

// speak returns base64 MP3, or "" when synthesis is unavailable.
func (s *Service) speak(ctx context.Context, text string) string {
	if s.synthesizer == nil {
		return ""
	}
	audio, err := s.synthesizer.Synthesize(ctx, text, i18n.FromContext(ctx))
	if err != nil {
		zap.L().Warn("speech synthesis failed", zap.Error(err))
		return ""
	}
	return base64.StdEncoding.EncodeToString(audio)
}

func saveFile(path string, r io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "create audio file")
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return eris.Wrap(err, "write audio file")
	}
	return nil
}
