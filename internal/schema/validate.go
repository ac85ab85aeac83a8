package schema

import "fmt"

// MissingFieldError reports a required field absent from an oracle reply.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// Required field sets, in the order they are checked.
var (
	textFields = []string{
		"ai_score", "risk_score", "category", "flags",
		"explanation", "recommended_action", "suggested_reply",
	}
	imageFields = []string{
		"catfish_score", "ai_generated_score", "confidence_band",
		"top_signals", "flags", "explanation", "ai_detection_rationale",
		"recommended_action", "reverse_search_steps", "category_scores",
	}
	audioFields = []string{
		"risk_score", "category", "flags", "explanation",
		"recommended_action", "suggested_reply",
		"ai_voice_score", "ai_voice_rationale",
	}
)

// Clamp bounds a score to [0, 100].
func Clamp(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

// NormalizeCategory maps any string outside the allowed risk categories
// to "suspicious". A malformed category must not fail an otherwise
// usable result.
func NormalizeCategory(s string) string {
	switch s {
	case CategorySafe, CategorySuspicious, CategoryScamLikely:
		return s
	default:
		return CategorySuspicious
	}
}

// ValidateText checks a decoded oracle reply against the text contract.
func ValidateText(v any) (*TextAnalysis, error) {
	obj, err := requireFields(v, textFields)
	if err != nil {
		return nil, err
	}
	return &TextAnalysis{
		AIScore:           scoreArg(obj, "ai_score"),
		RiskScore:         scoreArg(obj, "risk_score"),
		Category:          NormalizeCategory(stringArg(obj, "category")),
		Flags:             stringsArg(obj, "flags"),
		Explanation:       stringArg(obj, "explanation"),
		RecommendedAction: stringArg(obj, "recommended_action"),
		SuggestedReply:    stringArg(obj, "suggested_reply"),
	}, nil
}

// ValidateImage checks a decoded oracle reply against the image contract.
// The confidence band and escalation metadata are recomputed later by the
// calibration stage; the oracle-reported band is kept as a starting point.
func ValidateImage(v any) (*ImageAnalysis, error) {
	obj, err := requireFields(v, imageFields)
	if err != nil {
		return nil, err
	}
	signals := signalsArg(obj, "top_signals")
	return &ImageAnalysis{
		CatfishScore:         scoreArg(obj, "catfish_score"),
		AIGeneratedScore:     scoreArg(obj, "ai_generated_score"),
		ConfidenceBand:       stringArg(obj, "confidence_band"),
		TopSignals:           signals,
		Flags:                stringsArg(obj, "flags"),
		Explanation:          stringArg(obj, "explanation"),
		AIDetectionRationale: stringArg(obj, "ai_detection_rationale"),
		RecommendedAction:    stringArg(obj, "recommended_action"),
		ReverseSearchSteps:   stringsArg(obj, "reverse_search_steps"),
		SignalCount:          len(signals),
		CategoryScores:       categoryScoresArg(obj, "category_scores"),
	}, nil
}

// ValidateAudio checks a decoded oracle reply against the audio contract.
// The transcript is attached by the orchestrator, not the oracle.
func ValidateAudio(v any) (*AudioAnalysis, error) {
	obj, err := requireFields(v, audioFields)
	if err != nil {
		return nil, err
	}
	return &AudioAnalysis{
		RiskScore:         scoreArg(obj, "risk_score"),
		Category:          NormalizeCategory(stringArg(obj, "category")),
		Flags:             stringsArg(obj, "flags"),
		Explanation:       stringArg(obj, "explanation"),
		RecommendedAction: stringArg(obj, "recommended_action"),
		SuggestedReply:    stringArg(obj, "suggested_reply"),
		AIVoiceScore:      scoreArg(obj, "ai_voice_score"),
		AIVoiceRationale:  stringArg(obj, "ai_voice_rationale"),
	}, nil
}

func requireFields(v any, fields []string) (map[string]any, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &MissingFieldError{Field: fields[0]}
	}
	for _, f := range fields {
		if _, present := obj[f]; !present {
			return nil, &MissingFieldError{Field: f}
		}
	}
	return obj, nil
}

// stringArg extracts a string from a decoded object, returning empty
// string if absent or not a string.
func stringArg(obj map[string]any, key string) string {
	if s, ok := obj[key].(string); ok {
		return s
	}
	return ""
}

// scoreArg extracts a bounded score. JSON numbers decode as float64;
// non-integer values are truncated toward zero, then clamped to [0, 100].
func scoreArg(obj map[string]any, key string) int {
	switch n := obj[key].(type) {
	case float64:
		return Clamp(int(n))
	case int:
		return Clamp(n)
	default:
		return 0
	}
}

// floatArg extracts a float in [0, 1], defaulting to 0.
func floatArg(obj map[string]any, key string) float64 {
	switch n := obj[key].(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

// stringsArg extracts a string list, skipping non-string members.
func stringsArg(obj map[string]any, key string) []string {
	out := []string{}
	raw, ok := obj[key].([]any)
	if !ok {
		return out
	}
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func signalsArg(obj map[string]any, key string) []Signal {
	out := []Signal{}
	raw, ok := obj[key].([]any)
	if !ok {
		return out
	}
	for _, item := range raw {
		sig, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, Signal{
			Category:    stringArg(sig, "category"),
			Signal:      stringArg(sig, "signal"),
			Description: stringArg(sig, "description"),
			Weight:      floatArg(sig, "weight"),
			Severity:    stringArg(sig, "severity"),
		})
	}
	return out
}

func categoryScoresArg(obj map[string]any, key string) CategoryScores {
	cs, ok := obj[key].(map[string]any)
	if !ok {
		return CategoryScores{}
	}
	return CategoryScores{
		Texture:   scoreArg(cs, "texture"),
		Structure: scoreArg(cs, "structure"),
		Lighting:  scoreArg(cs, "lighting"),
		Style:     scoreArg(cs, "style"),
		Technical: scoreArg(cs, "technical"),
	}
}
