// Package googletranslate is the Google Cloud Translation (v2) provider.
package googletranslate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oukeidos/tunelate/internal/apperrors"
	"github.com/oukeidos/tunelate/internal/httpclient"
	"github.com/oukeidos/tunelate/internal/language"
	"github.com/oukeidos/tunelate/internal/provider"
	"google.golang.org/api/option"
	translate "google.golang.org/api/translate/v2"
)

const serviceName = "Google Translate"

// Config holds the client settings. Endpoint is optional and overrides the
// public API base path.
type Config struct {
	APIKey   string
	Endpoint string
	Timeout  time.Duration
}

// Client calls the Translation v2 REST API.
type Client struct {
	service *translate.Service
	timeout time.Duration
}

var _ provider.Provider = (*Client)(nil)

// New creates a client. A missing API key is not an error here; Translate
// reports it as API_KEY_MISSING so the fallback chain can move on.
func New(ctx context.Context, cfg Config) (*Client, error) {
	c := &Client{timeout: cfg.Timeout}
	if c.timeout <= 0 {
		c.timeout = httpclient.TranslateTimeout
	}
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return c, nil
	}
	// Not using option.WithHTTPClient: it replaces the transport that injects
	// the API key. The timeout is enforced via context in Translate.
	opts := []option.ClientOption{option.WithAPIKey(key)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}
	svc, err := translate.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create google translate service: %w", err)
	}
	c.service = svc
	return c, nil
}

func (c *Client) Name() string {
	return provider.NameGoogle
}

// Translate sends text to Google and normalizes the response.
func (c *Client) Translate(ctx context.Context, text, targetCode, sourceCode string) (*provider.Translation, error) {
	if c.service == nil {
		return nil, apperrors.New(apperrors.KindAPIKeyMissing, "Google Translate API key is not configured.", nil)
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := &translate.TranslateTextRequest{
		Q:      []string{text},
		Target: targetCode,
		Format: "text",
	}
	if sourceCode != "" && sourceCode != language.Auto {
		req.Source = sourceCode
	}

	resp, err := c.service.Translations.Translate(req).Context(ctx).Do()
	if err != nil {
		return nil, classifyGoogleError(err)
	}
	if resp == nil || len(resp.Translations) == 0 || resp.Translations[0] == nil {
		return nil, apperrors.New(apperrors.KindInvalidResponse, "Google Translate response had no translations.", nil)
	}
	first := resp.Translations[0]
	if strings.TrimSpace(first.TranslatedText) == "" {
		return nil, apperrors.New(apperrors.KindTranslationEmpty, "Google Translate returned an empty translation.", nil)
	}

	detected := first.DetectedSourceLanguage
	if detected == "" {
		detected = sourceCode
	}
	return &provider.Translation{
		TranslatedText:   first.TranslatedText,
		DetectedLanguage: detected,
		Provider:         provider.NameGoogle,
	}, nil
}
