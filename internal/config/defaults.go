package config

const (
	defaultAPIBaseURL        = "http://localhost:3001"
	defaultLibreEndpoint     = "https://libretranslate.com"
	defaultGeminiModel       = "gemini-2.0-flash"
	defaultOpenAIModel       = "gpt-4o-mini"
	defaultMaxTextLength     = 5000
	defaultMaxChunkSize      = 4000
	defaultTranslateSeconds  = 15
	defaultExtractSeconds    = 30
	defaultRetryMaxRetries   = 3
	defaultRetryInitialDelay = 1000
	defaultLogLevel          = "info"
)

var defaultProviderOrder = []string{"backend", "google", "libre"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		API: API{
			BaseURL: defaultAPIBaseURL,
		},
		Providers: Providers{
			Order: append([]string(nil), defaultProviderOrder...),
			Libre: Libre{
				Endpoint: defaultLibreEndpoint,
			},
			Gemini: LLM{Model: defaultGeminiModel},
			OpenAI: LLM{Model: defaultOpenAIModel},
		},
		Limits: Limits{
			MaxTextLength: defaultMaxTextLength,
			MaxChunkSize:  defaultMaxChunkSize,
		},
		Timeouts: Timeouts{
			TranslateSeconds: defaultTranslateSeconds,
			ExtractSeconds:   defaultExtractSeconds,
		},
		Retry: Retry{
			MaxRetries:     defaultRetryMaxRetries,
			InitialDelayMS: defaultRetryInitialDelay,
		},
		Logging: Logging{
			Level: defaultLogLevel,
		},
	}
}
