// Package schema defines the analysis result contracts and validates
// the semi-structured oracle output against them.
package schema

// Kind identifies which evidence type a request carries. It selects the
// prompt template, the required-field set, and the orchestrator path.
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
	KindAudio Kind = "audio"
)

// Risk categories for text and audio analysis.
const (
	CategorySafe       = "safe"
	CategorySuspicious = "suspicious"
	CategoryScamLikely = "scam_likely"
)

// Confidence bands over the 0-100 AI-generation score.
const (
	BandLikelyReal         = "likely_real"
	BandLowSuspicion       = "low_suspicion"
	BandUncertain          = "uncertain"
	BandLikelyAI           = "likely_ai"
	BandStrongAIIndicators = "strong_ai_indicators"
)

// Signal severities.
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// Signal categories reported by the vision oracle, plus the one the
// calibration layer synthesizes from the ML classifier verdict.
const (
	SignalTexture     = "texture"
	SignalStructure   = "structure"
	SignalLighting    = "lighting"
	SignalStyle       = "style"
	SignalTechnical   = "technical"
	SignalMLDetection = "ml-detection"
)

// Signal is one discrete piece of forensic evidence contributing to an
// image analysis score.
type Signal struct {
	Category    string  `json:"category"`
	Signal      string  `json:"signal"`
	Description string  `json:"description"`
	Weight      float64 `json:"weight"`
	Severity    string  `json:"severity"`
}

// CategoryScores holds the vision oracle's five weighted sub-scores.
// Maximums per the prompt rubric: texture 25, structure 30, lighting 20,
// style 15, technical 10.
type CategoryScores struct {
	Texture   int `json:"texture"`
	Structure int `json:"structure"`
	Lighting  int `json:"lighting"`
	Style     int `json:"style"`
	Technical int `json:"technical"`
}

// TextAnalysis is the response contract for POST /analyze/text.
type TextAnalysis struct {
	AIScore           int      `json:"ai_score"`
	RiskScore         int      `json:"risk_score"`
	Category          string   `json:"category"`
	Flags             []string `json:"flags"`
	Explanation       string   `json:"explanation"`
	RecommendedAction string   `json:"recommended_action"`
	SuggestedReply    string   `json:"suggested_reply"`
}

// ClassifierSummary reports what the specialized ML classifier said, or
// why it could not be consulted. Generator confidence and the quality
// flag are passthrough only; they never influence scoring.
type ClassifierSummary struct {
	Available           bool     `json:"available"`
	Verdict             *string  `json:"verdict"`
	AIConfidence        *float64 `json:"ai_confidence"`
	Generator           *string  `json:"generator"`
	GeneratorConfidence *float64 `json:"generator_confidence"`
	DeepfakeDetected    *bool    `json:"deepfake_detected"`
	NSFWDetected        *bool    `json:"nsfw_detected"`
	QualityPassed       *bool    `json:"quality_passed"`
	Error               *string  `json:"error"`
}

// ImageAnalysis is the response contract for POST /analyze/image.
// CategoryScores is carried for the calibration stage but not exposed.
type ImageAnalysis struct {
	CatfishScore         int               `json:"catfish_score"`
	AIGeneratedScore     int               `json:"ai_generated_score"`
	ConfidenceBand       string            `json:"confidence_band"`
	TopSignals           []Signal          `json:"top_signals"`
	Flags                []string          `json:"flags"`
	Explanation          string            `json:"explanation"`
	AIDetectionRationale string            `json:"ai_detection_rationale"`
	RecommendedAction    string            `json:"recommended_action"`
	ReverseSearchSteps   []string          `json:"reverse_search_steps"`
	SignalCount          int               `json:"signal_count"`
	EscalationApplied    bool              `json:"escalation_applied"`
	Classifier           ClassifierSummary `json:"classifier_summary"`

	CategoryScores CategoryScores `json:"-"`
}

// AudioAnalysis is the response contract for POST /analyze/audio.
type AudioAnalysis struct {
	RiskScore         int      `json:"risk_score"`
	Category          string   `json:"category"`
	Flags             []string `json:"flags"`
	Explanation       string   `json:"explanation"`
	RecommendedAction string   `json:"recommended_action"`
	SuggestedReply    string   `json:"suggested_reply"`
	AIVoiceScore      int      `json:"ai_voice_score"`
	AIVoiceRationale  string   `json:"ai_voice_rationale"`
	Transcript        string   `json:"transcript"`
}
