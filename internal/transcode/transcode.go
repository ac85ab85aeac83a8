// Package transcode converts arbitrary audio containers to the canonical
// 16 kHz mono PCM WAV the speech-to-text oracle expects, via ffmpeg.
package transcode

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// ErrToolMissing means ffmpeg is not on PATH. Surfaced distinctly from
// oracle failures: it is an operator problem, not a provider outage.
var ErrToolMissing = errors.New("ffmpeg not found on PATH")

// Transcoder shells out to ffmpeg.
type Transcoder struct {
	binary string
}

// New locates ffmpeg. Construction fails fast so the audio endpoint can
// report a broken deployment before any upload arrives.
func New() (*Transcoder, error) {
	path, err := exec.LookPath("ffmpeg")
	if err != nil {
		return nil, ErrToolMissing
	}
	return &Transcoder{binary: path}, nil
}

// ToWAV converts the input audio to 16 kHz mono PCM WAV. All temporary
// files live in a per-call directory that is removed on every exit path.
func (t *Transcoder) ToWAV(ctx context.Context, audio []byte) ([]byte, error) {
	dir, err := os.MkdirTemp("", "catfish-audio-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	inPath := filepath.Join(dir, "input")
	outPath := filepath.Join(dir, "output.wav")

	if err := os.WriteFile(inPath, audio, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write input file: %w", err)
	}

	cmd := exec.CommandContext(ctx, t.binary,
		"-i", inPath,
		"-ar", "16000",
		"-ac", "1",
		"-f", "wav",
		"-y",
		outPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("ffmpeg failed: %w: %s", err, tail(out, 300))
	}

	wav, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcoded output: %w", err)
	}
	return wav, nil
}

// tail bounds ffmpeg's chatty stderr to the part that matters.
func tail(out []byte, n int) string {
	if len(out) <= n {
		return string(out)
	}
	return string(out[len(out)-n:])
}
