package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"API_HOST", "PORT", "OPENAI_API_KEY", "AIORNOT_API_KEY", "GPT_MODEL", "WHISPER_MODEL", "DEBUG"} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "gpt-4o-mini", cfg.GPTModel)
	assert.Equal(t, "whisper-1", cfg.WhisperModel)
	assert.Empty(t, cfg.OpenAIAPIKey)
	assert.False(t, cfg.Debug)
}

func TestLoad_MissingFileIsNotAnError(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "8000", cfg.Port)
}

func TestLoad_YAMLFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9000"
openai_api_key: file-key
gpt_model: gpt-4o
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "file-key", cfg.OpenAIAPIKey)
	assert.Equal(t, "gpt-4o", cfg.GPTModel)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "env-key")
	t.Setenv("PORT", "7777")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9000"
openai_api_key: file-key
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.OpenAIAPIKey)
	assert.Equal(t, "7777", cfg.Port)
}

func TestLoad_MalformedYAMLFails(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [unclosed"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoad_DebugEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEBUG", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
}
