package openai

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
	// DefaultModel is used when no model is configured.
	DefaultModel   = "gpt-4o-mini"
	defaultBaseURL = "https://api.openai.com/v1"
	serviceName    = "OpenAI"
)

const instructions = `You translate song lyrics. Translate the user's text into the requested target language, keeping line breaks and the lyrical tone. Identify the source language when it is "auto".`

// RequestData represents the request body for OpenAI API
type RequestData struct {
	Model           string       `json:"model"`
	Instructions    string       `json:"instructions,omitempty"`
	Input           []InputItem  `json:"input"`
	Text            *TextOptions `json:"text,omitempty"`
	MaxOutputTokens int          `json:"max_output_tokens,omitempty"`
}

type TextOptions struct {
	Format *ResponseFormat `json:"format,omitempty"`
}

type InputItem struct {
	Type    string `json:"type"`
	Role    string `json:"role,omitempty"`
	Content string `json:"content,omitempty"`
}

type ResponseFormat struct {
	Type   string `json:"type"`
	Name   string `json:"name,omitempty"`   // Required for Responses API structured outputs
	Strict bool   `json:"strict,omitempty"` // Required for Responses API structured outputs
	Schema any    `json:"schema,omitempty"` // Required for Responses API structured outputs
}

// ResponseData represents the simplified response body from OpenAI Responses API
type ResponseData struct {
	ID                string             `json:"id"`
	Status            string             `json:"status"`
	IncompleteDetails *IncompleteDetails `json:"incomplete_details,omitempty"`
	Output            []OutputItem       `json:"output"`
	Usage             Usage              `json:"usage"`
}

type IncompleteDetails struct {
	Reason string `json:"reason"`
}

type OutputItem struct {
	Type    string            `json:"type"`
	Status  string            `json:"status,omitempty"`
	Role    string            `json:"role,omitempty"`
	Content []ResponseContent `json:"content,omitempty"`
}

type ResponseContent struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// translationOutput is the structured reply requested via json_schema.
type translationOutput struct {
	TranslatedText   string `json:"translatedText"`
	DetectedLanguage string `json:"detectedLanguage"`
}

var translationSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"translatedText":   map[string]any{"type": "string"},
		"detectedLanguage": map[string]any{"type": "string", "description": "ISO 639-1 code of the source text"},
	},
	"required":             []string{"translatedText", "detectedLanguage"},
	"additionalProperties": false,
}

type errorEnvelope struct {
	Error errorDetails `json:"error"`
}

type errorDetails struct {
	Message string      `json:"message"`
	Type    string      `json:"type"`
	Code    interface{} `json:"code"`
}

func (e errorDetails) codeString() string {
	if e.Code == nil {
		return ""
	}
	return fmt.Sprint(e.Code)
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

var _ provider.Provider = (*Client)(nil)

func NewClient(cfg Config) *Client {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = httpclient.TranslateTimeout
	}
	return &Client{
		apiKey:  strings.TrimSpace(cfg.APIKey),
		model:   model,
		baseURL: baseURL,
		http:    httpclient.NewClient(timeout),
	}
}

// GetModelID returns the configured model identifier.
func (c *Client) GetModelID() string {
	return c.model
}

func (c *Client) Name() string {
	return provider.NameOpenAI
}

func (c *Client) Translate(ctx context.Context, text, targetCode, sourceCode string) (*provider.Translation, error) {
	if c.apiKey == "" {
		return nil, apperrors.New(apperrors.KindAPIKeyMissing, "OpenAI API key is not configured.", nil)
	}
	if sourceCode == "" {
		sourceCode = language.Auto
	}

	prompt := fmt.Sprintf("Target language: %s (%s)\nSource language: %s\n\n%s",
		language.DisplayName(targetCode), targetCode, sourceCode, text)
	resp, err := c.Generate(ctx, RequestData{
		Instructions: instructions,
		Input:        []InputItem{{Type: "message", Role: "user", Content: prompt}},
		Text: &TextOptions{Format: &ResponseFormat{
			Type:   "json_schema",
			Name:   "translation",
			Strict: true,
			Schema: translationSchema,
		}},
	})
	if err != nil {
		return nil, err
	}

	out, err := parseOutput(resp)
	if err != nil {
		return nil, err
	}
	detected := strings.TrimSpace(out.DetectedLanguage)
	if detected == "" {
		detected = sourceCode
	}
	return &provider.Translation{
		TranslatedText:   out.TranslatedText,
		DetectedLanguage: language.Resolve(detected),
		Provider:         provider.NameOpenAI,
	}, nil
}

// Generate sends one Responses API request.
func (c *Client) Generate(ctx context.Context, req RequestData) (*ResponseData, error) {
	req.Model = c.model

	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + "/responses"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	body, resp, err := httpclient.DoAndRead(c.http, httpReq)
	if err != nil {
		if resp == nil {
			return nil, httpclient.TransportError(serviceName, fmt.Errorf("request failed: %w", err))
		}
		return nil, apperrors.New(apperrors.KindInvalidResponse, "OpenAI response could not be read.", err)
	}

	if resp.StatusCode != http.StatusOK {
		details := parseErrorDetails(body)
		return nil, classifyOpenAIError(resp.StatusCode, resp.Status, details)
	}

	var result ResponseData
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, apperrors.New(
			apperrors.KindInvalidResponse,
			"OpenAI response format was invalid.",
			fmt.Errorf("failed to decode response: %w", err),
		)
	}

	slog.Debug("OpenAI API Response", "status", resp.Status, "usage_total", result.Usage.TotalTokens, "response_id", result.ID)
	return &result, nil
}

func parseOutput(resp *ResponseData) (*translationOutput, error) {
	if resp.Status == "incomplete" {
		reason := ""
		if resp.IncompleteDetails != nil {
			reason = resp.IncompleteDetails.Reason
		}
		return nil, apperrors.New(apperrors.KindInvalidResponse, "OpenAI response was incomplete.", fmt.Errorf("incomplete reason=%s", reason))
	}

	var text strings.Builder
	for _, item := range resp.Output {
		if item.Type != "message" {
			continue
		}
		for _, content := range item.Content {
			if content.Type == "output_text" {
				text.WriteString(content.Text)
			}
		}
	}
	if text.Len() == 0 {
		return nil, apperrors.New(apperrors.KindInvalidResponse, "OpenAI returned no output text.", nil)
	}

	var out translationOutput
	if err := json.Unmarshal([]byte(text.String()), &out); err != nil {
		return nil, apperrors.New(apperrors.KindInvalidResponse, "OpenAI response format was invalid.", fmt.Errorf("failed to decode output: %w", err))
	}
	if strings.TrimSpace(out.TranslatedText) == "" {
		return nil, apperrors.New(apperrors.KindTranslationEmpty, "OpenAI returned an empty translation.", nil)
	}
	return &out, nil
}

func parseErrorDetails(body []byte) errorDetails {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return errorDetails{}
	}
	return envelope.Error
}

func classifyOpenAIError(statusCode int, status string, details errorDetails) error {
	code := details.codeString()
	cause := fmt.Errorf("openai status=%s type=%s code=%s message=%s", status, details.Type, code, textutil.Truncate(details.Message, textutil.MaxErrorPreview))

	switch {
	case statusCode == http.StatusUnauthorized:
		return apperrors.WithStatus(
			apperrors.KindOpenAIAPIError,
			statusCode,
			"OpenAI API authentication failed (401): please verify your API key.",
			cause,
		)
	case statusCode == http.StatusTooManyRequests && code == "insufficient_quota":
		return apperrors.WithStatus(apperrors.KindQuotaExceeded, statusCode, "OpenAI quota exceeded (429).", cause)
	case statusCode == http.StatusNotFound && isOpenAIModelNotFound(details):
		return apperrors.WithStatus(
			apperrors.KindServiceNotFound,
			statusCode,
			"The model does not exist or you do not have access to it.",
			cause,
		)
	}
	return httpclient.StatusError(serviceName, statusCode, apperrors.KindServiceNotFound, apperrors.KindOpenAIAPIError, cause)
}

func isOpenAIModelNotFound(details errorDetails) bool {
	needle := strings.ToLower(details.codeString() + " " + details.Type + " " + details.Message)
	if strings.Contains(needle, "model_not_found") {
		return true
	}
	return strings.Contains(needle, "does not exist or you do not have access to it")
}
