// Package libretranslate is the LibreTranslate provider.
package libretranslate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/oukeidos/tunelate/internal/apperrors"
	"github.com/oukeidos/tunelate/internal/httpclient"
	"github.com/oukeidos/tunelate/internal/language"
	"github.com/oukeidos/tunelate/internal/provider"
	"github.com/oukeidos/tunelate/internal/textutil"
)

const (
	serviceName = "LibreTranslate"
	// DefaultEndpoint is the public instance. Self-hosted instances usually
	// need no API key.
	DefaultEndpoint = "https://libretranslate.com"
)

// RequestData is the body of POST /translate.
type RequestData struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

// ResponseData is the success body of POST /translate.
type ResponseData struct {
	TranslatedText   string            `json:"translatedText"`
	DetectedLanguage *DetectedLanguage `json:"detectedLanguage,omitempty"`
}

type DetectedLanguage struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

type errorEnvelope struct {
	Error string `json:"error"`
}

type Config struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

var _ provider.Provider = (*Client)(nil)

func New(cfg Config) *Client {
	endpoint := strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = httpclient.TranslateTimeout
	}
	return &Client{
		endpoint: endpoint,
		apiKey:   strings.TrimSpace(cfg.APIKey),
		http:     httpclient.NewClient(timeout),
	}
}

func (c *Client) Name() string {
	return provider.NameLibre
}

func (c *Client) Translate(ctx context.Context, text, targetCode, sourceCode string) (*provider.Translation, error) {
	source := sourceCode
	if source == "" {
		source = language.Auto
	}
	jsonData, err := json.Marshal(RequestData{
		Q:      text,
		Source: source,
		Target: targetCode,
		Format: "text",
		APIKey: c.apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/translate", bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	body, resp, err := httpclient.DoAndRead(c.http, httpReq)
	if err != nil {
		if resp == nil {
			return nil, httpclient.TransportError(serviceName, fmt.Errorf("request failed: %w", err))
		}
		return nil, apperrors.New(apperrors.KindInvalidResponse, "LibreTranslate response could not be read.", err)
	}

	if resp.StatusCode != http.StatusOK {
		var envelope errorEnvelope
		_ = json.Unmarshal(body, &envelope)
		cause := fmt.Errorf("libretranslate status=%s message=%s", resp.Status, textutil.Truncate(envelope.Error, textutil.MaxErrorPreview))
		return nil, httpclient.StatusError(serviceName, resp.StatusCode, apperrors.KindServiceNotFound, apperrors.KindLibreAPIError, cause)
	}

	var result ResponseData
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, apperrors.New(
			apperrors.KindInvalidResponse,
			"LibreTranslate response format was invalid.",
			fmt.Errorf("failed to decode response: %w", err),
		)
	}
	if strings.TrimSpace(result.TranslatedText) == "" {
		return nil, apperrors.New(apperrors.KindTranslationEmpty, "LibreTranslate returned an empty translation.", nil)
	}

	detected := sourceCode
	if result.DetectedLanguage != nil && result.DetectedLanguage.Language != "" {
		detected = result.DetectedLanguage.Language
		slog.Debug("LibreTranslate detected language", "language", detected, "confidence", result.DetectedLanguage.Confidence)
	}

	return &provider.Translation{
		TranslatedText:   result.TranslatedText,
		DetectedLanguage: detected,
		Provider:         provider.NameLibre,
	}, nil
}
