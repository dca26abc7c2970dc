package config

const (
	defaultDataDir                 = "~/.local/share/saleslens/data"
	defaultLogDir                  = "~/.local/share/saleslens/logs"
	defaultAPIBind                 = "127.0.0.1:8000"
	defaultLogFormat               = "text"
	defaultLogLevel                = "info"
	defaultReasoningBaseURL        = "https://openrouter.ai/api/v1/chat/completions"
	defaultReasoningModel          = "anthropic/claude-sonnet-4.5"
	defaultReasoningTimeoutSeconds = 120
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		Reasoning: Reasoning{
			BaseURL:        defaultReasoningBaseURL,
			Model:          defaultReasoningModel,
			TimeoutSeconds: defaultReasoningTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
