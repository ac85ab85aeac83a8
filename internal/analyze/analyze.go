// Package analyze holds the per-kind orchestrators: they sequence oracle
// calls, normalize and validate the replies, run calibration for the
// image kind, and assemble the response objects.
package analyze

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/dateguard/catfish/internal/aiornot"
	"github.com/dateguard/catfish/internal/config"
	"github.com/dateguard/catfish/internal/oracle"
	"github.com/dateguard/catfish/internal/transcode"
)

// Payload limits per evidence kind.
const (
	MaxImageBytes = 10 << 20
	MaxAudioBytes = 25 << 20
)

// ErrTranscode marks audio transcoding failures (missing tool included).
// Fatal to the audio request and distinct from oracle failures.
var ErrTranscode = errors.New("audio transcoding failed")

// ValidationError reports a bad request payload. The HTTP layer maps it
// to a client error.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Mode says whether the analyzer talks to real oracles or serves the
// fixed fallback results. Decided once at construction from the presence
// of the generative-model credential.
type Mode string

const (
	ModeLive Mode = "live"
	ModeMock Mode = "mock"
)

// ChatOracle is the generative-model completion call.
type ChatOracle interface {
	Complete(ctx context.Context, messages []oracle.Message) (string, error)
}

// Transcriber is the speech-to-text call.
type Transcriber interface {
	Transcribe(ctx context.Context, filename string, audio []byte) (string, error)
}

// Classifier is the specialized image-classifier call.
type Classifier interface {
	Inspect(ctx context.Context, image []byte) (*aiornot.Result, error)
}

// AudioTranscoder converts uploaded audio to canonical WAV.
type AudioTranscoder interface {
	ToWAV(ctx context.Context, audio []byte) ([]byte, error)
}

// Analyzer runs the analysis pipelines. One instance serves all requests;
// it holds no per-request state.
type Analyzer struct {
	mode        Mode
	chat        ChatOracle
	transcriber Transcriber
	classifier  Classifier      // nil disables calibration Stage B
	transcoder  AudioTranscoder // nil means ffmpeg was not found
	logger      *zap.Logger
}

// New wires an Analyzer from configuration. Without the OpenAI key the
// analyzer serves mock results and never makes an outbound call. Without
// the AI or Not key only the classifier stage is disabled. A missing
// ffmpeg binary is tolerated until an audio request actually arrives.
func New(cfg *config.Config, logger *zap.Logger) *Analyzer {
	a := &Analyzer{
		mode:   ModeMock,
		logger: logger,
	}

	if cfg.OpenAIAPIKey != "" {
		client := oracle.NewClient(oracle.Config{
			APIKey:       cfg.OpenAIAPIKey,
			ChatModel:    cfg.GPTModel,
			WhisperModel: cfg.WhisperModel,
		})
		a.mode = ModeLive
		a.chat = client
		a.transcriber = client
	} else {
		logger.Warn("OPENAI_API_KEY not set, serving mock analysis results")
	}

	if cfg.AIOrNotAPIKey != "" {
		a.classifier = aiornot.NewClient(cfg.AIOrNotAPIKey)
	} else {
		logger.Info("AIORNOT_API_KEY not set, image calibration runs without the ML classifier")
	}

	if tr, err := transcode.New(); err != nil {
		logger.Warn("ffmpeg not found, audio analysis disabled", zap.Error(err))
	} else {
		a.transcoder = tr
	}

	return a
}

// Mode reports whether this analyzer is live or mock.
func (a *Analyzer) Mode() Mode {
	return a.mode
}

const repairInstruction = "Your previous reply was not valid JSON. " +
	"Respond again with only the JSON object described earlier. " +
	"Do not include code fences, commentary, or any text outside the JSON."

// completeJSON asks the oracle for a JSON reply with exactly one repair
// attempt: if the first reply does not decode, the malformed text goes
// back to the oracle as conversation context with an explicit
// return-only-JSON instruction, and the second reply is final.
func (a *Analyzer) completeJSON(ctx context.Context, messages []oracle.Message) (any, error) {
	reply, err := a.chat.Complete(ctx, messages)
	if err != nil {
		return nil, err
	}

	v, err := oracle.Decode(reply)
	if err == nil {
		return v, nil
	}
	var malformed *oracle.MalformedReplyError
	if !errors.As(err, &malformed) {
		return nil, err
	}
	a.logger.Warn("oracle reply malformed, issuing repair attempt",
		zap.String("reason", malformed.Reason))

	repair := make([]oracle.Message, 0, len(messages)+2)
	repair = append(repair, messages...)
	repair = append(repair,
		oracle.TextMessage("assistant", reply),
		oracle.TextMessage("user", repairInstruction),
	)

	second, err := a.chat.Complete(ctx, repair)
	if err != nil {
		return nil, fmt.Errorf("repair attempt: %w", err)
	}
	return oracle.Decode(second)
}
