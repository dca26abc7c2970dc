package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeReasoning()
	c.normalizeProducers()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	if value, ok := os.LookupEnv("SALESLENS_API_BIND"); ok && strings.TrimSpace(value) != "" {
		c.Paths.APIBind = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv("SALESLENS_DATA_DIR"); ok && strings.TrimSpace(value) != "" {
		if c.Paths.DataDir, err = expandPath(strings.TrimSpace(value)); err != nil {
			return fmt.Errorf("SALESLENS_DATA_DIR: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeReasoning() {
	c.Reasoning.APIKey = strings.TrimSpace(c.Reasoning.APIKey)
	if c.Reasoning.APIKey == "" {
		for _, key := range []string{"SALESLENS_REASONING_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
			if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
				c.Reasoning.APIKey = strings.TrimSpace(value)
				break
			}
		}
	}
	c.Reasoning.BaseURL = strings.TrimSpace(c.Reasoning.BaseURL)
	if c.Reasoning.BaseURL == "" {
		c.Reasoning.BaseURL = defaultReasoningBaseURL
	}
	c.Reasoning.Model = strings.TrimSpace(c.Reasoning.Model)
	if c.Reasoning.Model == "" {
		c.Reasoning.Model = defaultReasoningModel
	}
	if c.Reasoning.TimeoutSeconds <= 0 {
		c.Reasoning.TimeoutSeconds = defaultReasoningTimeoutSeconds
	}
}

func (c *Config) normalizeProducers() {
	c.Capture.PresageAPIKey = strings.TrimSpace(c.Capture.PresageAPIKey)
	if c.Capture.PresageAPIKey == "" {
		if value, ok := os.LookupEnv("PRESAGE_API_KEY"); ok {
			c.Capture.PresageAPIKey = strings.TrimSpace(value)
		}
	}
	c.Transcription.ElevenLabsAPIKey = strings.TrimSpace(c.Transcription.ElevenLabsAPIKey)
	if c.Transcription.ElevenLabsAPIKey == "" {
		if value, ok := os.LookupEnv("ELEVENLABS_API_KEY"); ok {
			c.Transcription.ElevenLabsAPIKey = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
