// Package pipeline extracts lyrics for a video and translates them.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/oukeidos/tunelate/internal/backend"
	"github.com/oukeidos/tunelate/internal/logger"
	"github.com/oukeidos/tunelate/internal/retry"
	"github.com/oukeidos/tunelate/internal/textutil"
)

// Run fetches lyrics for cfg.URL, retrying transient failures, and passes
// them to the translator unless translation is skipped. A failed translation
// returns the failed envelope in Result together with its error.
func Run(ctx context.Context, cfg Config) (Result, error) {
	var notes []string
	cfg, notes = cfg.Normalize()
	for _, note := range notes {
		logger.Warn("Config normalized", "detail", note)
	}
	if err := cfg.Validate(); err != nil {
		return Result{Status: StatusFailure}, err
	}

	attempts := 0
	policy := cfg.Retry
	userOnRetry := policy.OnRetry
	policy.OnRetry = func(attempt int, delay time.Duration, err error) {
		logger.Warn("Lyrics extraction failed, retrying", "attempt", attempt, "delay", delay, "error", err)
		if userOnRetry != nil {
			userOnRetry(attempt, delay, err)
		}
		if cfg.OnExtractRetry != nil {
			cfg.OnExtractRetry(attempt, err)
		}
	}

	lyrics, err := retry.Do(ctx, policy, func(ctx context.Context) (*backend.Lyrics, error) {
		attempts++
		return cfg.Extractor.ExtractLyrics(ctx, cfg.URL)
	})
	if err != nil {
		logger.Error("Lyrics extraction failed", "attempts", attempts, "error", err)
		return Result{Status: StatusFailure, ExtractionAttempts: attempts}, err
	}
	logger.Info("Lyrics extracted", "video_id", lyrics.VideoID, "title", textutil.Truncate(lyrics.Title, 80), "attempts", attempts)

	res := Result{Status: StatusExtracted, Lyrics: lyrics, ExtractionAttempts: attempts}
	if cfg.SkipTranslation {
		return res, nil
	}

	tr := cfg.Translator.Translate(ctx, lyrics.Lyrics, cfg.TargetLang, cfg.SourceLang)
	res.Translation = &tr
	if !tr.Success {
		res.Status = StatusFailure
		return res, fmt.Errorf("translate lyrics: %w", tr.Err())
	}
	res.Status = StatusSuccess
	return res, nil
}
