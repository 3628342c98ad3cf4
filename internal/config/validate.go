package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/oukeidos/tunelate/internal/logger"
	"github.com/oukeidos/tunelate/internal/provider"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateURLs(); err != nil {
		return err
	}
	if err := c.validateProviders(); err != nil {
		return err
	}
	if err := c.validateLimits(); err != nil {
		return err
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}

func (c *Config) validateURLs() error {
	checks := []struct {
		key   string
		value string
	}{
		{"api.base_url", c.API.BaseURL},
		{"providers.libre.endpoint", c.Providers.Libre.Endpoint},
		{"providers.google.endpoint", c.Providers.Google.Endpoint},
	}
	for _, check := range checks {
		if check.value == "" {
			continue
		}
		u, err := url.Parse(check.value)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%s must be an http(s) URL, got %q", check.key, check.value)
		}
	}
	return nil
}

func (c *Config) validateProviders() error {
	known := make(map[string]bool)
	for _, name := range provider.Names() {
		known[name] = true
	}
	for _, name := range c.Providers.Order {
		if !known[name] {
			return fmt.Errorf("providers.order: unknown provider %q (known: %s)", name, strings.Join(provider.Names(), ", "))
		}
	}
	if len(c.Providers.Order) == 0 {
		return errors.New("providers.order must name at least one provider")
	}
	return nil
}

func (c *Config) validateLimits() error {
	if c.Limits.MaxTextLength < 1 {
		return errors.New("limits.max_text_length must be positive")
	}
	if c.Limits.MaxChunkSize < 1 {
		return errors.New("limits.max_chunk_size must be positive")
	}
	if c.Timeouts.TranslateSeconds < 1 || c.Timeouts.ExtractSeconds < 1 {
		return errors.New("timeouts must be at least 1 second")
	}
	if c.Retry.MaxRetries < 1 {
		return errors.New("retry.max_retries must be at least 1")
	}
	if c.Retry.InitialDelayMS < 0 {
		return errors.New("retry.initial_delay_ms must not be negative")
	}
	return nil
}
