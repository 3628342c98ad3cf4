// Package translator orchestrates validation, chunking and per-chunk
// provider fallback, and reports the outcome as a Result envelope.
package translator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/oukeidos/tunelate/internal/apperrors"
	"github.com/oukeidos/tunelate/internal/chunker"
	"github.com/oukeidos/tunelate/internal/language"
	"github.com/oukeidos/tunelate/internal/logger"
	"github.com/oukeidos/tunelate/internal/provider"
	"github.com/oukeidos/tunelate/internal/validation"
)

// Options tunes an Orchestrator. Zero values use the package defaults.
type Options struct {
	MaxTextLength int
	MaxChunkSize  int
	OnProgress    func(Progress)
}

// Orchestrator tries providers in the configured order for every chunk.
type Orchestrator struct {
	providers     []provider.Provider
	maxTextLength int
	maxChunkSize  int
	onProgress    func(Progress)
}

// New creates an orchestrator over providers, highest priority first.
func New(providers []provider.Provider, opts Options) (*Orchestrator, error) {
	if len(providers) == 0 {
		return nil, fmt.Errorf("at least one translation provider is required")
	}
	for i, p := range providers {
		if p == nil {
			return nil, fmt.Errorf("provider at position %d is nil", i)
		}
	}
	o := &Orchestrator{
		providers:     append([]provider.Provider(nil), providers...),
		maxTextLength: opts.MaxTextLength,
		maxChunkSize:  opts.MaxChunkSize,
		onProgress:    opts.OnProgress,
	}
	if o.maxTextLength <= 0 {
		o.maxTextLength = validation.MaxTextLength
	}
	if o.maxChunkSize <= 0 {
		o.maxChunkSize = chunker.DefaultMaxChunkSize
	}
	return o, nil
}

// Providers returns the provider names in fallback order.
func (o *Orchestrator) Providers() []string {
	names := make([]string, len(o.providers))
	for i, p := range o.providers {
		names[i] = p.Name()
	}
	return names
}

// attemptState tracks one chunk's walk down the fallback chain.
type attemptState struct {
	current   string
	succeeded string
	text      string
	detected  string
	lastErr   error
}

// Translate never returns an error; every failure is carried in the Result.
// An empty sourceLanguage means auto-detect.
func (o *Orchestrator) Translate(ctx context.Context, text, targetLanguage, sourceLanguage string) Result {
	log := logger.With("request_id", uuid.NewString())

	if err := validation.Validate(text, targetLanguage, o.maxTextLength); err != nil {
		log.Debug("Translation request rejected", "kind", kindOf(err))
		return failure(err)
	}

	target := language.Resolve(targetLanguage)
	source := language.Resolve(sourceLanguage)
	if source == "" {
		source = language.Auto
	}

	chunks := chunker.Split(text, o.maxChunkSize)
	log.Info("Translation started", "chunks", len(chunks), "target", target, "source", source, "providers", strings.Join(o.Providers(), ","))

	detected := source
	translated := make([]string, 0, len(chunks))
	var lastProvider string
	for i, chunk := range chunks {
		state, err := o.translateChunk(ctx, log, i, len(chunks), chunk, target, source)
		if err != nil {
			return failure(err)
		}
		if detected == language.Auto && state.detected != "" {
			detected = language.Resolve(state.detected)
		}
		translated = append(translated, state.text)
		lastProvider = state.succeeded
	}

	log.Info("Translation completed", "chunks", len(chunks), "provider", lastProvider, "detected", detected)
	return Result{
		Success: true,
		Data: &Data{
			OriginalText:   text,
			TranslatedText: strings.Join(translated, " "),
			SourceLanguage: detected,
			TargetLanguage: target,
			Provider:       lastProvider,
			ChunkCount:     len(chunks),
		},
	}
}

// translateChunk walks the providers in order and returns the state of the
// first one that produced a non-empty translation.
func (o *Orchestrator) translateChunk(ctx context.Context, log *slog.Logger, index, total int, chunk, target, source string) (*attemptState, error) {
	state := &attemptState{}
	for _, p := range o.providers {
		if err := ctx.Err(); err != nil {
			return nil, canceled(err)
		}
		state.current = p.Name()
		o.progress(Progress{ChunkIndex: index, TotalChunks: total, Provider: state.current, State: StateStarted})

		tr, err := p.Translate(ctx, chunk, target, source)
		if err == nil && (tr == nil || strings.TrimSpace(tr.TranslatedText) == "") {
			err = apperrors.New(apperrors.KindTranslationEmpty, fmt.Sprintf("Provider %s returned an empty translation.", state.current), nil)
		}
		if err == nil {
			state.succeeded = tr.Provider
			if state.succeeded == "" {
				state.succeeded = p.Name()
			}
			state.detected = tr.DetectedLanguage
			state.text = tr.TranslatedText
			o.progress(Progress{ChunkIndex: index, TotalChunks: total, Provider: state.succeeded, State: StateCompleted})
			return state, nil
		}

		state.lastErr = classify(err)
		log.Warn("Provider failed, falling back", "provider", state.current, "chunk", index, "kind", kindOf(state.lastErr), "status", apperrors.StatusCodeOf(state.lastErr))
		o.progress(Progress{ChunkIndex: index, TotalChunks: total, Provider: state.current, State: StateFallback, Err: state.lastErr})
	}

	if err := ctx.Err(); err != nil {
		return nil, canceled(err)
	}
	log.Error("All translation providers failed", "chunk", index, "chunks", total, "last_kind", kindOf(state.lastErr))
	allFailed := apperrors.New(apperrors.KindAllServicesFailed, "", state.lastErr)
	o.progress(Progress{ChunkIndex: index, TotalChunks: total, State: StateFailed, Err: allFailed})
	return nil, allFailed
}

func (o *Orchestrator) progress(p Progress) {
	if o.onProgress != nil {
		o.onProgress(p)
	}
}

// classify keeps classified errors and treats anything else as HTTP_ERROR.
func classify(err error) error {
	if _, ok := apperrors.KindOf(err); ok {
		return err
	}
	return apperrors.New(apperrors.KindHTTPError, "Translation provider request failed.", err)
}

func canceled(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.New(apperrors.KindTimeout, "Translation timed out.", err)
	}
	return apperrors.New(apperrors.KindTimeout, "Translation was canceled.", err)
}

func kindOf(err error) apperrors.Kind {
	kind, _ := apperrors.KindOf(err)
	return kind
}
