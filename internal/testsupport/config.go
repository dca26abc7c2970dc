package testsupport

import (
	"path/filepath"
	"testing"

	"saleslens/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.APIBind = "127.0.0.1:0"
	cfg.Reasoning.APIKey = "test"
	cfg.Reasoning.Model = "test-model"

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithReasoningEndpoint points the reasoning client at a test server.
func WithReasoningEndpoint(baseURL string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Reasoning.BaseURL = baseURL
	}
}
