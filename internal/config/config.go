// Package config loads application settings from an optional YAML file
// with environment-variable overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the backend settings. The OpenAI key is the gate for live
// analysis: without it every endpoint serves the documented mock result.
// The AI or Not key only gates the classifier stage of image calibration.
type Config struct {
	Host  string `yaml:"host"`
	Port  string `yaml:"port"`
	Debug bool   `yaml:"debug"`

	OpenAIAPIKey  string `yaml:"openai_api_key"`
	AIOrNotAPIKey string `yaml:"aiornot_api_key"`

	GPTModel     string `yaml:"gpt_model"`
	WhisperModel string `yaml:"whisper_model"`
}

// Load reads configuration from a YAML file, then applies environment
// overrides and defaults. A missing file is not an error; env-only
// deployments are the common case.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Host = envOr("API_HOST", cfg.Host)
	cfg.Port = envOr("PORT", cfg.Port)
	cfg.OpenAIAPIKey = envOr("OPENAI_API_KEY", cfg.OpenAIAPIKey)
	cfg.AIOrNotAPIKey = envOr("AIORNOT_API_KEY", cfg.AIOrNotAPIKey)
	cfg.GPTModel = envOr("GPT_MODEL", cfg.GPTModel)
	cfg.WhisperModel = envOr("WHISPER_MODEL", cfg.WhisperModel)
	if os.Getenv("DEBUG") == "true" {
		cfg.Debug = true
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Host == "" {
		cfg.Host = "0.0.0.0"
	}
	if cfg.Port == "" {
		cfg.Port = "8000"
	}
	if cfg.GPTModel == "" {
		cfg.GPTModel = "gpt-4o-mini"
	}
	if cfg.WhisperModel == "" {
		cfg.WhisperModel = "whisper-1"
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
