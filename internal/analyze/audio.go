package analyze

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/dateguard/catfish/internal/oracle"
	"github.com/dateguard/catfish/internal/schema"
	"github.com/dateguard/catfish/internal/transcode"
)

// AnalyzeAudio transcodes the upload, transcribes it, and scores the
// transcript. An empty transcript short-circuits to a fixed result
// without consulting the scoring oracle.
func (a *Analyzer) AnalyzeAudio(ctx context.Context, audio []byte, contextText, site, pageURL string) (*schema.AudioAnalysis, error) {
	if len(audio) == 0 {
		return nil, &ValidationError{Msg: "audio payload is empty"}
	}
	if len(audio) > MaxAudioBytes {
		return nil, &ValidationError{Msg: fmt.Sprintf("audio too large: %d bytes (max %d)", len(audio), MaxAudioBytes)}
	}

	if a.mode == ModeMock {
		return mockAudio(), nil
	}

	if a.transcoder == nil {
		return nil, fmt.Errorf("%w: %w", ErrTranscode, transcode.ErrToolMissing)
	}
	wav, err := a.transcoder.ToWAV(ctx, audio)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTranscode, err)
	}

	transcript, err := a.transcriber.Transcribe(ctx, "audio.wav", wav)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(transcript) == "" {
		a.logger.Info("no speech detected, skipping scoring oracle")
		return noSpeechResult(), nil
	}

	v, err := a.completeJSON(ctx, []oracle.Message{
		oracle.TextMessage("system", systemPrompt),
		oracle.TextMessage("user", audioPrompt(transcript, contextText, site, pageURL)),
	})
	if err != nil {
		return nil, err
	}

	res, err := schema.ValidateAudio(v)
	if err != nil {
		return nil, err
	}
	res.Transcript = transcript

	a.logger.Info("audio analysis complete",
		zap.Int("risk_score", res.RiskScore),
		zap.Int("ai_voice_score", res.AIVoiceScore),
		zap.String("category", res.Category))
	return res, nil
}
