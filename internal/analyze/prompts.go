package analyze

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are a dating-safety analyst. You evaluate evidence from dating-platform " +
	"conversations for romance-scam patterns and AI-generated content. " +
	"You always reply with a single JSON object and nothing else."

const textPromptTemplate = `Analyze the following message exchange from a dating platform.

Assess two independent risks:
1. How likely the text was written by an AI assistant rather than a person.
2. How likely the conversation is a scam or otherwise dangerous (romance scam,
   advance-fee fraud, crypto "investment", pressure to move off-platform,
   requests for money or personal documents).

Reply with only this JSON object:
{
  "ai_score": <int 0-100, likelihood the text is AI-generated>,
  "risk_score": <int 0-100, likelihood of scam or danger>,
  "category": "safe" | "suspicious" | "scam_likely",
  "flags": [<short snake_case tokens for each concrete warning sign>],
  "explanation": "<2-4 sentences explaining the assessment in plain language>",
  "recommended_action": "<one concrete next step for the user>",
  "suggested_reply": "<a safe reply the user could send>"
}

Message text:
---
%s
---%s`

const imagePromptTemplate = `Analyze this dating-profile image for signs of AI generation and
identity theft (stolen or stock photos).

Score each artifact category against its maximum:
- texture (max 25): skin smoothing, poreless finish, fabric blur
- structure (max 30): anatomical errors, impossible geometry, warped objects
- lighting (max 20): inconsistent shadows, mismatched light sources
- style (max 15): rendering look, over-stylized aesthetics
- technical (max 10): artifacts, seams, frequency anomalies

A structure score of 20 or more means a definitive structural impossibility.

Reply with only this JSON object:
{
  "catfish_score": <int 0-100, likelihood the image is stolen or misrepresents the person>,
  "ai_generated_score": <int 0-100, overall likelihood the image is AI-generated>,
  "confidence_band": "likely_real" | "low_suspicion" | "uncertain" | "likely_ai" | "strong_ai_indicators",
  "category_scores": {"texture": <int>, "structure": <int>, "lighting": <int>, "style": <int>, "technical": <int>},
  "top_signals": [
    {"category": "texture" | "structure" | "lighting" | "style" | "technical",
     "signal": "<short snake_case identifier>",
     "description": "<what you observed>",
     "weight": <float 0.0-1.0>,
     "severity": "low" | "medium" | "high"}
  ],
  "flags": [<short snake_case warning tokens>],
  "explanation": "<2-4 sentences for the user>",
  "ai_detection_rationale": "<detailed reasoning behind the AI score>",
  "recommended_action": "<one concrete next step>",
  "reverse_search_steps": [<steps the user can take to reverse-search this image>]
}`

const audioPromptTemplate = `A voice message from a dating platform was transcribed below.
Analyze the transcript for scam patterns, and judge from the wording whether
the voice is likely an AI-generated clone (scripted cadence, unnatural
phrasing, generic endearments with no specifics).

Reply with only this JSON object:
{
  "risk_score": <int 0-100, likelihood of scam or danger>,
  "category": "safe" | "suspicious" | "scam_likely",
  "flags": [<short snake_case warning tokens>],
  "explanation": "<2-4 sentences for the user>",
  "recommended_action": "<one concrete next step>",
  "suggested_reply": "<a safe reply the user could send>",
  "ai_voice_score": <int 0-100, likelihood the voice is AI-generated>,
  "ai_voice_rationale": "<reasoning behind the voice score>"
}

Transcript:
---
%s
---%s`

func textPrompt(text, userNotes string) string {
	var notes string
	if strings.TrimSpace(userNotes) != "" {
		notes = fmt.Sprintf("\n\nContext from the user:\n%s", userNotes)
	}
	return fmt.Sprintf(textPromptTemplate, text, notes)
}

func imagePrompt() string {
	return imagePromptTemplate
}

func audioPrompt(transcript, contextText, site, pageURL string) string {
	var extra strings.Builder
	if strings.TrimSpace(contextText) != "" {
		fmt.Fprintf(&extra, "\n\nSurrounding chat context:\n%s", contextText)
	}
	if site != "" {
		fmt.Fprintf(&extra, "\n\nPlatform: %s", site)
	}
	if pageURL != "" {
		fmt.Fprintf(&extra, "\nPage: %s", pageURL)
	}
	return fmt.Sprintf(audioPromptTemplate, transcript, extra.String())
}
