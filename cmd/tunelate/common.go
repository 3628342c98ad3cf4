package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/oukeidos/tunelate/internal/apperrors"
	"github.com/oukeidos/tunelate/internal/auth"
	"github.com/oukeidos/tunelate/internal/backend"
	"github.com/oukeidos/tunelate/internal/cleanup"
	"github.com/oukeidos/tunelate/internal/config"
	"github.com/oukeidos/tunelate/internal/files"
	"github.com/oukeidos/tunelate/internal/gemini"
	"github.com/oukeidos/tunelate/internal/googletranslate"
	"github.com/oukeidos/tunelate/internal/libretranslate"
	"github.com/oukeidos/tunelate/internal/logger"
	"github.com/oukeidos/tunelate/internal/openai"
	"github.com/oukeidos/tunelate/internal/prompt"
	"github.com/oukeidos/tunelate/internal/provider"
	"github.com/oukeidos/tunelate/internal/translator"
)

var (
	loadConfig   = config.Load
	isTerminal   = term.IsTerminal
	getKey       = auth.GetKey
	getEnvKey    = auth.GetEnvKey
	getStatus    = auth.GetStatus
	saveKey      = auth.SaveKey
	deleteKey    = auth.DeleteKey
	promptForKey = auth.PromptForAPIKey
	confirmer    = prompt.DefaultConfirmer
)

// resolveAPIKey picks the key for service: keychain first, then the value
// merged from config file and environment.
func resolveAPIKey(service, configured string) (string, string) {
	key, err := getKey(service)
	if err != nil {
		logger.Debug("Keychain lookup failed", "service", service, "error", err)
	}
	if key != "" {
		return key, auth.SourceKeychain
	}
	configured = strings.TrimSpace(configured)
	if configured == "" {
		return "", ""
	}
	if envKey, ok := getEnvKey(service); ok && envKey == configured {
		return configured, auth.SourceEnv
	}
	return configured, auth.SourceConfig
}

// buildProviders creates the fallback chain in cfg.Providers.Order. A
// provider without credentials stays in the chain and fails fast with
// API_KEY_MISSING.
func buildProviders(ctx context.Context, cfg *config.Config) ([]provider.Provider, error) {
	providers := make([]provider.Provider, 0, len(cfg.Providers.Order))
	for _, name := range cfg.Providers.Order {
		p, err := newProvider(ctx, cfg, name)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return providers, nil
}

func newProvider(ctx context.Context, cfg *config.Config, name string) (provider.Provider, error) {
	timeout := cfg.TranslateTimeout()
	keyFor := func(service, configured string) string {
		key, source := resolveAPIKey(service, configured)
		if key == "" {
			logger.Debug("No API key configured", "provider", service)
		} else {
			logger.Debug("Using API key", "provider", service, "source", source)
		}
		return key
	}

	switch name {
	case provider.NameBackend:
		return newBackendClient(cfg).Translator(), nil
	case provider.NameGoogle:
		return googletranslate.New(ctx, googletranslate.Config{
			APIKey:   keyFor("google", cfg.Providers.Google.APIKey),
			Endpoint: cfg.Providers.Google.Endpoint,
			Timeout:  timeout,
		})
	case provider.NameLibre:
		return libretranslate.New(libretranslate.Config{
			Endpoint: cfg.Providers.Libre.Endpoint,
			APIKey:   keyFor("libre", cfg.Providers.Libre.APIKey),
			Timeout:  timeout,
		}), nil
	case provider.NameGemini:
		client, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:  keyFor("gemini", cfg.Providers.Gemini.APIKey),
			Model:   cfg.Providers.Gemini.Model,
			Timeout: timeout,
		})
		if err != nil {
			return nil, err
		}
		cleanup.Register(client.Close)
		return client, nil
	case provider.NameOpenAI:
		return openai.NewClient(openai.Config{
			APIKey:  keyFor("openai", cfg.Providers.OpenAI.APIKey),
			Model:   cfg.Providers.OpenAI.Model,
			Timeout: timeout,
		}), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", name)
	}
}

func newBackendClient(cfg *config.Config) *backend.Client {
	return backend.New(backend.Config{
		BaseURL:          cfg.API.BaseURL,
		TranslateTimeout: cfg.TranslateTimeout(),
		ExtractTimeout:   cfg.ExtractTimeout(),
	})
}

func newOrchestrator(ctx context.Context, cfg *config.Config) (*translator.Orchestrator, error) {
	providers, err := buildProviders(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return translator.New(providers, translator.Options{
		MaxTextLength: cfg.Limits.MaxTextLength,
		MaxChunkSize:  cfg.Limits.MaxChunkSize,
		OnProgress:    logProgress,
	})
}

func logProgress(p translator.Progress) {
	switch p.State {
	case translator.StateCompleted:
		logger.Info("Chunk translated", "chunk", p.ChunkIndex+1, "total", p.TotalChunks, "provider", p.Provider)
	case translator.StateFallback:
		logger.Debug("Provider failed, falling back", "chunk", p.ChunkIndex+1, "provider", p.Provider, "error", p.Err)
	case translator.StateStarted:
		logger.Debug("Chunk started", "chunk", p.ChunkIndex+1, "total", p.TotalChunks, "provider", p.Provider)
	}
}

// failureError renders the user-facing message for a failed envelope and
// returns the error that makes the process exit non-zero.
func failureError(w io.Writer, info *translator.ErrorInfo) error {
	if info == nil {
		return errors.New("translation failed")
	}
	fmt.Fprintln(w, apperrors.UserMessage(info.Kind))
	if info.Kind.Category() == apperrors.CategoryTransient || info.Kind == apperrors.KindAllServicesFailed {
		fmt.Fprintln(w, "This is usually temporary; try again in a moment.")
	}
	return fmt.Errorf("%s: %s", info.Kind, info.Message)
}

// writeOutput prints text to stdout, or writes it atomically to path.
func writeOutput(w io.Writer, path, text string, force bool) error {
	if path == "" {
		_, err := fmt.Fprintln(w, text)
		return err
	}
	exists, err := files.Exists(path)
	if err != nil {
		return err
	}
	if exists {
		ok, err := confirmer().ConfirmOverwrite(path, force)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("not overwriting %s", path)
		}
	}
	if err := files.AtomicWrite(path, []byte(text+"\n"), 0o644); err != nil {
		return err
	}
	logger.Info("Wrote output", "path", path)
	return nil
}

// readInput returns text from args, a file, or piped stdin, in that order.
func readInput(args []string, path string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", path, err)
		}
		return string(data), nil
	}
	if f, ok := stdin.(*os.File); ok && isTerminal(int(f.Fd())) {
		return "", nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func signalContext(parent context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			logger.Warn("Cancellation requested")
			cancel()
		case <-ctx.Done():
		}
	}()
	stop := func() {
		signal.Stop(sigCh)
		cancel()
	}
	return ctx, stop
}
