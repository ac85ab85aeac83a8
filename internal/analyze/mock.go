package analyze

import "github.com/dateguard/catfish/internal/schema"

// Fixed fallback results served when the generative-model credential is
// absent. They carry the full field set so downstream consumers never
// need to special-case mock responses.

func mockText() *schema.TextAnalysis {
	return &schema.TextAnalysis{
		AIScore:   35,
		RiskScore: 40,
		Category:  schema.CategorySuspicious,
		Flags:     []string{"demo_mode", "generic_compliments"},
		Explanation: "Demo result: the backend is running without an OpenAI API key, " +
			"so this is a canned assessment rather than a real analysis.",
		RecommendedAction: "Configure OPENAI_API_KEY to enable live analysis.",
		SuggestedReply:    "Thanks! Tell me more about yourself first.",
	}
}

func mockImage() *schema.ImageAnalysis {
	return &schema.ImageAnalysis{
		CatfishScore:     45,
		AIGeneratedScore: 38,
		ConfidenceBand:   schema.BandLowSuspicion,
		TopSignals: []schema.Signal{
			{
				Category:    schema.SignalTexture,
				Signal:      "hyper_smooth_skin",
				Description: "Demo signal: skin texture looks smoother than typical camera output.",
				Weight:      0.4,
				Severity:    schema.SeverityMedium,
			},
		},
		Flags: []string{"demo_mode"},
		Explanation: "Demo result: the backend is running without an OpenAI API key, " +
			"so this is a canned assessment rather than a real analysis.",
		AIDetectionRationale: "No real detection ran; scores are fixed demo values.",
		RecommendedAction:    "Configure OPENAI_API_KEY to enable live analysis.",
		ReverseSearchSteps: []string{
			"Save the image and search it on Google Lens.",
			"Try TinEye for older copies of the same photo.",
		},
		SignalCount:       1,
		EscalationApplied: false,
		Classifier:        schema.ClassifierSummary{Available: false},
	}
}

func mockAudio() *schema.AudioAnalysis {
	return &schema.AudioAnalysis{
		RiskScore: 30,
		Category:  schema.CategorySuspicious,
		Flags:     []string{"demo_mode"},
		Explanation: "Demo result: the backend is running without an OpenAI API key, " +
			"so this is a canned assessment rather than a real analysis.",
		RecommendedAction: "Configure OPENAI_API_KEY to enable live analysis.",
		SuggestedReply:    "I'd rather keep chatting here for a bit.",
		AIVoiceScore:      25,
		AIVoiceRationale:  "No real detection ran; scores are fixed demo values.",
		Transcript:        "(demo mode - audio was not transcribed)",
	}
}

// noSpeechResult is the fixed short-circuit when transcription finds no
// usable speech; the scoring oracle is skipped entirely.
func noSpeechResult() *schema.AudioAnalysis {
	return &schema.AudioAnalysis{
		RiskScore:         0,
		Category:          schema.CategorySafe,
		Flags:             []string{"no_speech_detected"},
		Explanation:       "No speech was detected in the recording, so there is nothing to assess.",
		RecommendedAction: "Ask them to resend the voice message if you expected one.",
		SuggestedReply:    "I couldn't hear anything in that message - could you send it again?",
		AIVoiceScore:      0,
		AIVoiceRationale:  "No speech was detected, so no voice assessment was made.",
		Transcript:        "",
	}
}
