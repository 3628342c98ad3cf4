package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ApplyEnv overlays environment variables onto c. Set variables win over
// file values; empty values are ignored.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if value, ok := lookup(name); ok && strings.TrimSpace(value) != "" {
			*dst = strings.TrimSpace(value)
		}
	}
	num := func(name string, dst *int) error {
		value, ok := lookup(name)
		if !ok || strings.TrimSpace(value) == "" {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%s must be an integer: %w", name, err)
		}
		*dst = n
		return nil
	}

	str("TUNELATE_API_BASE_URL", &c.API.BaseURL)
	if value, ok := lookup("TUNELATE_PROVIDERS"); ok && strings.TrimSpace(value) != "" {
		c.Providers.Order = strings.Split(value, ",")
	}
	str("GOOGLE_TRANSLATE_API_KEY", &c.Providers.Google.APIKey)
	str("GOOGLE_TRANSLATE_ENDPOINT", &c.Providers.Google.Endpoint)
	str("LIBRETRANSLATE_URL", &c.Providers.Libre.Endpoint)
	str("LIBRETRANSLATE_API_KEY", &c.Providers.Libre.APIKey)
	str("GEMINI_API_KEY", &c.Providers.Gemini.APIKey)
	str("OPENAI_API_KEY", &c.Providers.OpenAI.APIKey)
	str("TUNELATE_LOG_LEVEL", &c.Logging.Level)

	numeric := []struct {
		name string
		dst  *int
	}{
		{"TUNELATE_TIMEOUT_SECONDS", &c.Timeouts.TranslateSeconds},
		{"TUNELATE_MAX_TEXT_LENGTH", &c.Limits.MaxTextLength},
		{"TUNELATE_MAX_CHUNK_SIZE", &c.Limits.MaxChunkSize},
	}
	for _, n := range numeric {
		if err := num(n.name, n.dst); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) normalize() {
	c.normalizeAPI()
	c.normalizeProviders()
	c.normalizeLimits()
	c.normalizeLogging()
}

func (c *Config) normalizeAPI() {
	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")
	if c.API.BaseURL == "" {
		c.API.BaseURL = defaultAPIBaseURL
	}
}

func (c *Config) normalizeProviders() {
	order := make([]string, 0, len(c.Providers.Order))
	seen := make(map[string]struct{}, len(c.Providers.Order))
	for _, name := range c.Providers.Order {
		normalized := strings.ToLower(strings.TrimSpace(name))
		if normalized == "" {
			continue
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		order = append(order, normalized)
	}
	if len(order) == 0 {
		order = append(order, defaultProviderOrder...)
	}
	c.Providers.Order = order

	c.Providers.Google.APIKey = strings.TrimSpace(c.Providers.Google.APIKey)
	c.Providers.Google.Endpoint = strings.TrimSpace(c.Providers.Google.Endpoint)
	c.Providers.Libre.APIKey = strings.TrimSpace(c.Providers.Libre.APIKey)
	c.Providers.Libre.Endpoint = strings.TrimRight(strings.TrimSpace(c.Providers.Libre.Endpoint), "/")
	if c.Providers.Libre.Endpoint == "" {
		c.Providers.Libre.Endpoint = defaultLibreEndpoint
	}
	c.Providers.Gemini.APIKey = strings.TrimSpace(c.Providers.Gemini.APIKey)
	if strings.TrimSpace(c.Providers.Gemini.Model) == "" {
		c.Providers.Gemini.Model = defaultGeminiModel
	}
	c.Providers.OpenAI.APIKey = strings.TrimSpace(c.Providers.OpenAI.APIKey)
	if strings.TrimSpace(c.Providers.OpenAI.Model) == "" {
		c.Providers.OpenAI.Model = defaultOpenAIModel
	}
}

func (c *Config) normalizeLimits() {
	if c.Limits.MaxTextLength == 0 {
		c.Limits.MaxTextLength = defaultMaxTextLength
	}
	if c.Limits.MaxChunkSize == 0 {
		c.Limits.MaxChunkSize = defaultMaxChunkSize
	}
	if c.Timeouts.TranslateSeconds == 0 {
		c.Timeouts.TranslateSeconds = defaultTranslateSeconds
	}
	if c.Timeouts.ExtractSeconds == 0 {
		c.Timeouts.ExtractSeconds = defaultExtractSeconds
	}
	if c.Retry.MaxRetries == 0 {
		c.Retry.MaxRetries = defaultRetryMaxRetries
	}
	if c.Retry.InitialDelayMS == 0 {
		c.Retry.InitialDelayMS = defaultRetryInitialDelay
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.File = strings.TrimSpace(c.Logging.File)
	if expanded, err := ExpandPath(c.Logging.File); err == nil {
		c.Logging.File = expanded
	}
}
