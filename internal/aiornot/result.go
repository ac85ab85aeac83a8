package aiornot

import "strings"

// Result is the classifier's structured judgment for one image.
// GeneratorConfidence and QualityPassed are passthrough fields; scoring
// only consumes Verdict and AIConfidence.
type Result struct {
	Verdict             string   `json:"verdict"` // "ai" or "human"
	AIConfidence        float64  `json:"ai_confidence"`
	IsAIGenerated       bool     `json:"is_ai_generated"`
	Generator           *string  `json:"generator"`
	GeneratorConfidence *float64 `json:"generator_confidence"`
	DeepfakeDetected    bool     `json:"deepfake_detected"`
	DeepfakeConfidence  *float64 `json:"deepfake_confidence"`
	NSFWDetected        bool     `json:"nsfw_detected"`
	NSFWConfidence      *float64 `json:"nsfw_confidence"`
	QualityPassed       bool     `json:"quality_passed"`
	Width               *int     `json:"width"`
	Height              *int     `json:"height"`
	ImageFormat         *string  `json:"image_format"`
	SizeBytes           *int     `json:"size_bytes"`
}

// parseReport extracts a Result from the classifier's response document.
// The API has shipped several shapes over time; unknown fields are
// ignored and both the string-verdict and nested object forms are
// accepted.
func parseReport(data map[string]any) *Result {
	report := data
	if nested, ok := data["report"].(map[string]any); ok {
		report = nested
	}

	verdict := "human"
	confidence := 0.0

	switch v := report["verdict"].(type) {
	case string:
		verdict = strings.ToLower(v)
		if verdict == "ai" {
			confidence = 1.0
		}
	case map[string]any:
		if ai, ok := v["ai"].(map[string]any); ok {
			if boolVal(ai, "is_detected") {
				verdict = "ai"
			}
			confidence = floatVal(ai, "confidence")
		}
	}

	// Newer responses carry a top-level "ai" block that wins over the
	// verdict field when present.
	if ai, ok := report["ai"].(map[string]any); ok {
		if boolVal(ai, "is_detected") {
			verdict = "ai"
		} else {
			verdict = "human"
		}
		confidence = floatVal(ai, "confidence")
	}

	var generator *string
	var generatorConfidence *float64
	if gen, ok := report["generator"].(map[string]any); ok {
		if name := firstString(gen, "name", "type"); name != "" {
			generator = &name
		}
		if c, ok := gen["confidence"].(float64); ok {
			generatorConfidence = &c
		}
	}

	// The facets block breaks detection down per known generator; take
	// the most confident one if the top-level field was empty.
	if facets, ok := report["facets"].(map[string]any); ok {
		if gens, ok := facets["generators"].([]any); ok {
			bestName, bestConf, found := bestGenerator(gens)
			if found {
				if generator == nil && bestName != "" {
					generator = &bestName
				}
				if generatorConfidence == nil {
					generatorConfidence = &bestConf
				}
			}
		}
	}

	res := &Result{
		Verdict:       verdict,
		AIConfidence:  confidence,
		IsAIGenerated: confidence >= 0.5 || verdict == "ai",
		Generator:     generator,

		GeneratorConfidence: generatorConfidence,
		QualityPassed:       true,
	}

	if deepfake, ok := report["deepfake"].(map[string]any); ok {
		res.DeepfakeDetected = boolVal(deepfake, "is_detected")
		if c, ok := deepfake["confidence"].(float64); ok {
			res.DeepfakeConfidence = &c
		}
	}
	if nsfw, ok := report["nsfw"].(map[string]any); ok {
		res.NSFWDetected = boolVal(nsfw, "is_detected")
		if c, ok := nsfw["confidence"].(float64); ok {
			res.NSFWConfidence = &c
		}
	}
	if quality, ok := report["quality"].(map[string]any); ok {
		if passed, ok := quality["passed"].(bool); ok {
			res.QualityPassed = passed
		}
	}

	if meta, ok := report["meta"].(map[string]any); ok {
		if w, ok := meta["width"].(float64); ok {
			n := int(w)
			res.Width = &n
		}
		if h, ok := meta["height"].(float64); ok {
			n := int(h)
			res.Height = &n
		}
		if f, ok := meta["format"].(string); ok {
			res.ImageFormat = &f
		}
		if s, ok := meta["size_bytes"].(float64); ok {
			n := int(s)
			res.SizeBytes = &n
		} else if s, ok := meta["size"].(float64); ok {
			n := int(s)
			res.SizeBytes = &n
		}
	}

	return res
}

func bestGenerator(gens []any) (name string, confidence float64, found bool) {
	best := -1.0
	for _, g := range gens {
		gen, ok := g.(map[string]any)
		if !ok {
			continue
		}
		conf := floatVal(gen, "confidence")
		if conf > best {
			best = conf
			name = firstString(gen, "name", "generator")
			confidence = conf
			found = true
		}
	}
	return name, confidence, found
}

func firstString(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := obj[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func boolVal(obj map[string]any, key string) bool {
	b, _ := obj[key].(bool)
	return b
}

func floatVal(obj map[string]any, key string) float64 {
	f, _ := obj[key].(float64)
	return f
}

