// Package backend talks to the primary lyrics API: it is both a translation
// provider and the lyrics extraction client.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/oukeidos/tunelate/internal/apperrors"
	"github.com/oukeidos/tunelate/internal/httpclient"
	"github.com/oukeidos/tunelate/internal/textutil"
)

// DefaultBaseURL is used when no API base URL is configured.
const DefaultBaseURL = "http://localhost:3001"

const serviceName = "Lyrics API"

type Config struct {
	BaseURL          string
	TranslateTimeout time.Duration
	ExtractTimeout   time.Duration
}

type Client struct {
	baseURL   string
	translate *http.Client
	extract   *http.Client
}

func New(cfg Config) *Client {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	tt := cfg.TranslateTimeout
	if tt <= 0 {
		tt = httpclient.TranslateTimeout
	}
	et := cfg.ExtractTimeout
	if et <= 0 {
		et = httpclient.ExtractTimeout
	}
	return &Client{
		baseURL:   base,
		translate: httpclient.NewClient(tt),
		extract:   httpclient.NewClient(et),
	}
}

// envelope is the wire shape of every API response.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *errorDetails   `json:"error,omitempty"`
}

type errorDetails struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// post sends body as JSON and decodes a successful envelope's data into out.
// notFound is the kind reported for a 404.
func (c *Client) post(ctx context.Context, client *http.Client, path string, body any, notFound apperrors.Kind, out any) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	raw, resp, err := httpclient.DoAndRead(client, req)
	if err != nil {
		if resp == nil {
			return httpclient.TransportError(serviceName, fmt.Errorf("request failed: %w", err))
		}
		return apperrors.New(apperrors.KindInvalidResponse, "Lyrics API response could not be read.", err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if decodeErr == nil {
			if err := typedError(env.Error, resp.StatusCode); err != nil {
				return err
			}
		}
		cause := fmt.Errorf("lyrics api status=%s path=%s", resp.Status, path)
		return httpclient.StatusError(serviceName, resp.StatusCode, notFound, apperrors.KindHTTPError, cause)
	}

	if decodeErr != nil {
		return apperrors.New(apperrors.KindInvalidResponse, "Lyrics API response format was invalid.", fmt.Errorf("failed to decode response: %w", decodeErr))
	}
	if !env.Success {
		if err := typedError(env.Error, resp.StatusCode); err != nil {
			return err
		}
		return apperrors.New(apperrors.KindHTTPError, "Lyrics API reported a failure.", nil)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return apperrors.New(apperrors.KindInvalidResponse, "Lyrics API response had no data.", nil)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return apperrors.New(apperrors.KindInvalidResponse, "Lyrics API response format was invalid.", fmt.Errorf("failed to decode data: %w", err))
	}
	return nil
}

// typedError honours a known error type reported by the API. The upstream
// message is kept as the cause only.
func typedError(details *errorDetails, statusCode int) error {
	if details == nil {
		return nil
	}
	kind, ok := apperrors.ParseKind(details.Type)
	if !ok {
		return nil
	}
	cause := fmt.Errorf("lyrics api error type=%s message=%s", details.Type, textutil.Truncate(details.Message, textutil.MaxErrorPreview))
	if statusCode >= 400 {
		return apperrors.WithStatus(kind, statusCode, "", cause)
	}
	return apperrors.New(kind, "", cause)
}
