package aiornot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReport_NestedAIBlock(t *testing.T) {
	res := parseReport(map[string]any{
		"report": map[string]any{
			"ai": map[string]any{"is_detected": true, "confidence": 0.87},
		},
	})
	assert.Equal(t, "ai", res.Verdict)
	assert.Equal(t, 0.87, res.AIConfidence)
	assert.True(t, res.IsAIGenerated)
}

func TestParseReport_StringVerdict(t *testing.T) {
	res := parseReport(map[string]any{
		"report": map[string]any{"verdict": "AI"},
	})
	assert.Equal(t, "ai", res.Verdict)
	assert.Equal(t, 1.0, res.AIConfidence)

	res = parseReport(map[string]any{
		"report": map[string]any{"verdict": "human"},
	})
	assert.Equal(t, "human", res.Verdict)
	assert.Equal(t, 0.0, res.AIConfidence)
	assert.False(t, res.IsAIGenerated)
}

func TestParseReport_VerdictObjectForm(t *testing.T) {
	res := parseReport(map[string]any{
		"report": map[string]any{
			"verdict": map[string]any{
				"ai": map[string]any{"is_detected": true, "confidence": 0.66},
			},
		},
	})
	assert.Equal(t, "ai", res.Verdict)
	assert.Equal(t, 0.66, res.AIConfidence)
}

func TestParseReport_AIBlockWinsOverVerdict(t *testing.T) {
	res := parseReport(map[string]any{
		"report": map[string]any{
			"verdict": "ai",
			"ai":      map[string]any{"is_detected": false, "confidence": 0.2},
		},
	})
	assert.Equal(t, "human", res.Verdict)
	assert.Equal(t, 0.2, res.AIConfidence)
}

func TestParseReport_WithoutReportWrapper(t *testing.T) {
	res := parseReport(map[string]any{
		"ai": map[string]any{"is_detected": true, "confidence": 0.75},
	})
	assert.Equal(t, "ai", res.Verdict)
}

func TestParseReport_GeneratorField(t *testing.T) {
	res := parseReport(map[string]any{
		"report": map[string]any{
			"ai":        map[string]any{"is_detected": true, "confidence": 0.9},
			"generator": map[string]any{"name": "Flux", "confidence": 0.8},
		},
	})
	require.NotNil(t, res.Generator)
	assert.Equal(t, "Flux", *res.Generator)
	require.NotNil(t, res.GeneratorConfidence)
	assert.Equal(t, 0.8, *res.GeneratorConfidence)
}

func TestParseReport_GeneratorFromFacets(t *testing.T) {
	res := parseReport(map[string]any{
		"report": map[string]any{
			"ai": map[string]any{"is_detected": true, "confidence": 0.9},
			"facets": map[string]any{
				"generators": []any{
					map[string]any{"name": "Midjourney", "confidence": 0.4},
					map[string]any{"name": "DALL-E", "confidence": 0.7},
				},
			},
		},
	})
	require.NotNil(t, res.Generator)
	assert.Equal(t, "DALL-E", *res.Generator)
	require.NotNil(t, res.GeneratorConfidence)
	assert.Equal(t, 0.7, *res.GeneratorConfidence)
}

func TestParseReport_AuxiliaryDetections(t *testing.T) {
	res := parseReport(map[string]any{
		"report": map[string]any{
			"ai":       map[string]any{"is_detected": true, "confidence": 0.9},
			"deepfake": map[string]any{"is_detected": true, "confidence": 0.65},
			"nsfw":     map[string]any{"is_detected": false},
			"quality":  map[string]any{"passed": false},
		},
	})
	assert.True(t, res.DeepfakeDetected)
	require.NotNil(t, res.DeepfakeConfidence)
	assert.Equal(t, 0.65, *res.DeepfakeConfidence)
	assert.False(t, res.NSFWDetected)
	assert.False(t, res.QualityPassed)
}

func TestParseReport_QualityDefaultsToPassed(t *testing.T) {
	res := parseReport(map[string]any{
		"report": map[string]any{"verdict": "human"},
	})
	assert.True(t, res.QualityPassed)
}

func TestParseReport_Meta(t *testing.T) {
	res := parseReport(map[string]any{
		"report": map[string]any{
			"verdict": "human",
			"meta": map[string]any{
				"width":  float64(1024),
				"height": float64(768),
				"format": "jpeg",
				"size":   float64(204800),
			},
		},
	})
	require.NotNil(t, res.Width)
	assert.Equal(t, 1024, *res.Width)
	require.NotNil(t, res.SizeBytes)
	assert.Equal(t, 204800, *res.SizeBytes)
	require.NotNil(t, res.ImageFormat)
	assert.Equal(t, "jpeg", *res.ImageFormat)
}

func TestParseReport_HalfConfidenceCountsAsAI(t *testing.T) {
	res := parseReport(map[string]any{
		"report": map[string]any{
			"ai": map[string]any{"is_detected": false, "confidence": 0.5},
		},
	})
	assert.Equal(t, "human", res.Verdict)
	assert.True(t, res.IsAIGenerated)
}
