// Package calibrate reconciles the vision oracle's weighted-evidence
// score with the specialized ML classifier's verdict into one bounded
// confidence score.
//
// Stage A applies non-linear escalation rules to the oracle's own
// judgment; Stage B blends the escalated score with the classifier's
// independent verdict using confidence-weighted, disagreement-aware
// policy. Both stages are pure functions over validated inputs.
package calibrate

import (
	"fmt"
	"math"

	"github.com/dateguard/catfish/internal/schema"
)

// Verdict is the specialized classifier's judgment as seen by Stage B.
// A nil *Verdict means the classifier was unavailable and Stage B
// degrades to the identity function.
type Verdict struct {
	Verdict          string // "ai" or "human"
	Confidence       float64
	DeepfakeDetected bool
	NSFWDetected     bool
}

// Flag tokens appended when the classifier raises auxiliary detections.
const (
	FlagDeepfake = "deepfake_detected"
	FlagNSFW     = "nsfw_content"
	FlagBoost    = "ml_classifier_boost"
)

// Escalate applies the three intra-oracle escalation rules in order.
// Each rule operates on the output of the previous one and never lowers
// the score. Returns the escalated score and whether any rule fired.
func Escalate(score int, cs schema.CategoryScores, signals []schema.Signal) (int, bool) {
	escalated := false

	// Rule 1: three or more affected categories add 15 points.
	affected := 0
	for _, sub := range []int{cs.Texture, cs.Structure, cs.Lighting, cs.Style, cs.Technical} {
		if sub >= 5 {
			affected++
		}
	}
	if affected >= 3 {
		score = schema.Clamp(score + 15)
		escalated = true
	}

	// Rule 2: two or more high-severity signals floor the score at 70.
	highs := 0
	for _, sig := range signals {
		if sig.Severity == schema.SeverityHigh {
			highs++
		}
	}
	if highs >= 2 && score < 70 {
		score = 70
		escalated = true
	}

	// Rule 3: a definitive structural impossibility floors it at 75.
	if cs.Structure >= 20 && score < 75 {
		score = 75
		escalated = true
	}

	return score, escalated
}

// Band maps a 0-100 score to its human-readable confidence tier.
func Band(score int) string {
	switch {
	case score <= 20:
		return schema.BandLikelyReal
	case score <= 40:
		return schema.BandLowSuspicion
	case score <= 60:
		return schema.BandUncertain
	case score <= 80:
		return schema.BandLikelyAI
	default:
		return schema.BandStrongAIIndicators
	}
}

// Blend combines the Stage-A score with the classifier verdict. Returns
// the blended score and whether the classifier pushed it upward. The
// confident-human branch never reports a boost, even when the weighted
// average lands above the oracle score.
func Blend(gptScore int, v *Verdict) (int, bool) {
	if v == nil {
		return gptScore, false
	}

	classifierScore := int(math.Round(v.Confidence * 100))

	var blended int
	humanBranch := false
	switch {
	case v.Verdict == "ai" && v.Confidence >= 0.7:
		// High-confidence AI verdict: trust the classifier more, and
		// never land below the confidence-derived floor.
		blended = round(float64(classifierScore)*0.6 + float64(gptScore)*0.4)
		if floor := round(v.Confidence * 80); floor > blended {
			blended = floor
		}
	case v.Verdict == "human" && v.Confidence <= 0.3:
		// Confident human verdict: pull the score down, oracle-weighted.
		blended = round(float64(classifierScore)*0.4 + float64(gptScore)*0.6)
		humanBranch = true
	default:
		// Uncertain band: average, with a safety-biased penalty when the
		// two estimates disagree by more than 40 points.
		blended = round(float64(classifierScore+gptScore) / 2)
		if abs(classifierScore-gptScore) > 40 {
			blended = max(classifierScore, gptScore) - 10
		}
	}

	blended = schema.Clamp(blended)
	return blended, !humanBranch && blended > gptScore
}

// Apply runs both calibration stages over a validated image result,
// rewriting its score, confidence band, signal list, flags, and
// escalation metadata in place. A nil verdict leaves Stage B inert.
func Apply(res *schema.ImageAnalysis, v *Verdict) {
	score, escalated := Escalate(res.AIGeneratedScore, res.CategoryScores, res.TopSignals)
	blended, boosted := Blend(score, v)

	res.AIGeneratedScore = blended
	res.ConfidenceBand = Band(blended)
	res.EscalationApplied = escalated

	if boosted {
		res.Flags = AppendFlag(res.Flags, FlagBoost)
	}

	if v != nil {
		if v.Verdict == "ai" {
			res.TopSignals = append([]schema.Signal{synthesizeSignal(v)}, res.TopSignals...)
		}
		// Deepfake and NSFW detections stand on their own; they are
		// reported whatever the ai/human verdict says.
		if v.DeepfakeDetected {
			res.Flags = AppendFlag(res.Flags, FlagDeepfake)
		}
		if v.NSFWDetected {
			res.Flags = AppendFlag(res.Flags, FlagNSFW)
		}
	}

	res.SignalCount = len(res.TopSignals)
}

// AppendFlag adds flag to flags unless already present.
func AppendFlag(flags []string, flag string) []string {
	for _, f := range flags {
		if f == flag {
			return flags
		}
	}
	return append(flags, flag)
}

// synthesizeSignal turns an AI verdict from the classifier into a
// first-class signal so it shows up in the evidence list.
func synthesizeSignal(v *Verdict) schema.Signal {
	severity := schema.SeverityMedium
	if v.Confidence >= 0.7 {
		severity = schema.SeverityHigh
	}
	weight := v.Confidence
	if weight > 1 {
		weight = 1
	}
	return schema.Signal{
		Category:    schema.SignalMLDetection,
		Signal:      "ml_classifier_ai_verdict",
		Description: fmt.Sprintf("Specialized ML classifier judged this image AI-generated (confidence %.0f%%).", v.Confidence*100),
		Weight:      weight,
		Severity:    severity,
	}
}

func round(f float64) int {
	return int(math.Round(f))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
