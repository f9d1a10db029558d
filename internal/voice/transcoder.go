package voice

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/rotisserie/eris"
)

// Transcoder converts recorded audio into 16 kHz mono WAV.
type Transcoder interface {
	ToWAV(ctx context.Context, inPath, outPath string) error
}

type FFmpegTranscoder struct {
	bin string
}

func NewFFmpegTranscoder(bin string) *FFmpegTranscoder {
	if bin == "" {
		bin = "ffmpeg"
	}
	return &FFmpegTranscoder{bin: bin}
}

func (t *FFmpegTranscoder) ToWAV(ctx context.Context, inPath, outPath string) error {
	cmd := exec.CommandContext(ctx, t.bin,
		"-hide_banner", "-loglevel", "error",
		"-i", inPath,
		"-ar", "16000",
		"-ac", "1",
		"-y", outPath,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return eris.Wrapf(err, "ffmpeg: %s", strings.TrimSpace(stderr.String()))
	}
	return nil
}
