package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/oukeidos/tunelate/internal/apperrors"
	"github.com/oukeidos/tunelate/internal/backend"
	"github.com/oukeidos/tunelate/internal/language"
	"github.com/oukeidos/tunelate/internal/retry"
	"github.com/oukeidos/tunelate/internal/translator"
)

// Translator is the orchestrator surface the pipeline depends on.
type Translator interface {
	Translate(ctx context.Context, text, targetLanguage, sourceLanguage string) translator.Result
}

// Config holds everything required for one lyrics run.
type Config struct {
	URL        string
	TargetLang string
	SourceLang string

	// SkipTranslation stops after extraction.
	SkipTranslation bool

	// Retry applies to extraction only. Translation relies on provider
	// fallback instead.
	Retry retry.Policy

	Extractor  backend.Extractor
	Translator Translator

	// OnExtractRetry is called before each extraction retry.
	OnExtractRetry func(attempt int, err error)
}

const MaxRetries = 5

// Normalize applies safe bounds to config values and returns any adjustments.
func (c Config) Normalize() (Config, []string) {
	var notes []string
	c.URL = strings.TrimSpace(c.URL)
	if c.Retry.MaxRetries > MaxRetries {
		notes = append(notes, fmt.Sprintf("retries clamped from %d to %d (max %d)", c.Retry.MaxRetries, MaxRetries, MaxRetries))
		c.Retry.MaxRetries = MaxRetries
	}
	if c.SourceLang == "" {
		c.SourceLang = language.Auto
	}
	return c, notes
}

// Validate reports missing collaborators or inputs.
func (c Config) Validate() error {
	if c.URL == "" {
		return apperrors.New(apperrors.KindInvalidURL, "A YouTube URL is required.", nil)
	}
	if c.Extractor == nil {
		return fmt.Errorf("an extractor is required")
	}
	if c.SkipTranslation {
		return nil
	}
	if c.Translator == nil {
		return fmt.Errorf("a translator is required unless translation is skipped")
	}
	if strings.TrimSpace(c.TargetLang) == "" {
		return apperrors.New(apperrors.KindMissingTargetLanguage, "", nil)
	}
	return nil
}
