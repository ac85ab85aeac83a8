package analyze

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dateguard/catfish/internal/aiornot"
	"github.com/dateguard/catfish/internal/calibrate"
	"github.com/dateguard/catfish/internal/oracle"
	"github.com/dateguard/catfish/internal/schema"
)

// AnalyzeImage runs the vision oracle and the ML classifier concurrently,
// then reconciles their judgments through the calibration engine. A
// failing classifier degrades to "unavailable"; it never fails the
// request.
func (a *Analyzer) AnalyzeImage(ctx context.Context, image []byte) (*schema.ImageAnalysis, error) {
	if len(image) == 0 {
		return nil, &ValidationError{Msg: "image payload is empty"}
	}
	if len(image) > MaxImageBytes {
		return nil, &ValidationError{Msg: fmt.Sprintf("image too large: %d bytes (max %d)", len(image), MaxImageBytes)}
	}
	if !aiornot.IsSupportedImage(image) {
		return nil, &ValidationError{Msg: "unsupported image format, expected JPEG, PNG, WebP, or GIF"}
	}

	if a.mode == ModeMock {
		return mockImage(), nil
	}

	_, mimeType := aiornot.DetectFormat(image)

	var (
		res           *schema.ImageAnalysis
		verdict       *aiornot.Result
		classifierErr error
	)

	// The two oracle calls are independent; both must resolve (the
	// classifier possibly to "unavailable") before calibration runs.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := a.completeJSON(gctx, []oracle.Message{
			oracle.TextMessage("system", systemPrompt),
			oracle.VisionMessage(imagePrompt(), image, mimeType),
		})
		if err != nil {
			return err
		}
		res, err = schema.ValidateImage(v)
		return err
	})
	if a.classifier != nil {
		g.Go(func() error {
			verdict, classifierErr = a.classifier.Inspect(gctx, image)
			if classifierErr != nil {
				a.logger.Warn("ML classifier failed, continuing without it",
					zap.Error(classifierErr))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	calibrate.Apply(res, classifierVerdict(verdict))
	res.Classifier = classifierSummary(a.classifier != nil, verdict, classifierErr)

	a.logger.Info("image analysis complete",
		zap.Int("ai_generated_score", res.AIGeneratedScore),
		zap.String("confidence_band", res.ConfidenceBand),
		zap.Bool("escalation_applied", res.EscalationApplied),
		zap.Bool("classifier_available", res.Classifier.Available))
	return res, nil
}

// classifierVerdict adapts the classifier result for the blending stage.
// Unavailable (nil) keeps Stage B inert.
func classifierVerdict(r *aiornot.Result) *calibrate.Verdict {
	if r == nil {
		return nil
	}
	return &calibrate.Verdict{
		Verdict:          r.Verdict,
		Confidence:       r.AIConfidence,
		DeepfakeDetected: r.DeepfakeDetected,
		NSFWDetected:     r.NSFWDetected,
	}
}

func classifierSummary(configured bool, r *aiornot.Result, callErr error) schema.ClassifierSummary {
	if r == nil {
		summary := schema.ClassifierSummary{Available: false}
		if configured && callErr != nil {
			msg := callErr.Error()
			summary.Error = &msg
		}
		return summary
	}
	return schema.ClassifierSummary{
		Available:           true,
		Verdict:             &r.Verdict,
		AIConfidence:        &r.AIConfidence,
		Generator:           r.Generator,
		GeneratorConfidence: r.GeneratorConfidence,
		DeepfakeDetected:    &r.DeepfakeDetected,
		NSFWDetected:        &r.NSFWDetected,
		QualityPassed:       &r.QualityPassed,
	}
}
