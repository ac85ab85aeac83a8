package oracle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_PlainJSON(t *testing.T) {
	v, err := Decode(`{"ai_score": 10}`)
	require.NoError(t, err)
	obj, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(10), obj["ai_score"])
}

func TestDecode_FencedWithLanguageTag(t *testing.T) {
	raw := "```json\n{\"risk_score\": 55}\n```"
	v, err := Decode(raw)
	require.NoError(t, err)
	obj := v.(map[string]any)
	assert.Equal(t, float64(55), obj["risk_score"])
}

func TestDecode_FencedWithoutLanguageTag(t *testing.T) {
	raw := "```\n[1, 2, 3]\n```"
	v, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, []any{float64(1), float64(2), float64(3)}, v)
}

func TestDecode_SurroundingWhitespace(t *testing.T) {
	raw := "\n\n  ```json\n{\"ok\": true}\n```  \n"
	v, err := Decode(raw)
	require.NoError(t, err)
	obj := v.(map[string]any)
	assert.Equal(t, true, obj["ok"])
}

func TestDecode_ScalarValue(t *testing.T) {
	v, err := Decode("42")
	require.NoError(t, err)
	assert.Equal(t, float64(42), v)
}

func TestDecode_MalformedFails(t *testing.T) {
	_, err := Decode("I think this profile is suspicious because...")
	require.Error(t, err)

	var malformed *MalformedReplyError
	require.True(t, errors.As(err, &malformed))
	assert.NotEmpty(t, malformed.Reason)
}

func TestDecode_BrokenJSONInsideFenceFails(t *testing.T) {
	raw := "```json\n{\"ai_score\": \n```"
	_, err := Decode(raw)
	var malformed *MalformedReplyError
	require.True(t, errors.As(err, &malformed))
}

func TestDecode_NoHeuristicRepair(t *testing.T) {
	// A trailing comma is invalid JSON and must stay invalid.
	_, err := Decode(`{"ai_score": 10,}`)
	require.Error(t, err)
}

func TestDecode_FenceOnlyLineIsNotJSON(t *testing.T) {
	_, err := Decode("```")
	require.Error(t, err)
}
