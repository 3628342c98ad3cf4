package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/oukeidos/tunelate/internal/apperrors"
	"github.com/oukeidos/tunelate/internal/httpclient"
	"github.com/oukeidos/tunelate/internal/language"
	"github.com/oukeidos/tunelate/internal/provider"
	"google.golang.org/api/option"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.0-flash"

const defaultTimeout = httpclient.TranslateTimeout

const systemInstruction = `You translate song lyrics.
The user message is a JSON object with "text", "target_language" and "source_language".
Translate "text" into target_language, keeping line breaks and the lyrical tone.
When source_language is "auto", identify it yourself.
Reply with a JSON object only: {"translatedText": string, "detectedLanguage": ISO 639-1 code}.`

// generator is the subset of *genai.GenerativeModel the client calls.
type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client is an LLM-backed translation provider.
type Client struct {
	client  *genai.Client
	model   generator
	timeout time.Duration
}

var _ provider.Provider = (*Client)(nil)

// NewClient creates a Gemini provider. Without an API key no SDK client is
// built and Translate fails with API_KEY_MISSING.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	c := &Client{timeout: cfg.Timeout}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return c, nil
	}
	modelName := strings.TrimSpace(cfg.Model)
	if modelName == "" {
		modelName = DefaultModel
	}

	// Note: We avoid using option.WithHTTPClient because it interferes with the genai library's
	// internal header injection for API keys, causing 403 errors.
	// Instead, we enforce timeouts via context in the Translate method.
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	model := client.GenerativeModel(modelName)
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}

	c.client = client
	c.model = model
	return c, nil
}

// Close closes the underlying genai client.
func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

func (c *Client) Name() string {
	return provider.NameGemini
}

// Translate asks the model for a translation and normalizes its JSON reply.
func (c *Client) Translate(ctx context.Context, text, targetCode, sourceCode string) (*provider.Translation, error) {
	if c.model == nil {
		return nil, apperrors.New(apperrors.KindAPIKeyMissing, "Gemini API key is not configured.", nil)
	}
	if sourceCode == "" {
		sourceCode = language.Auto
	}

	// Enforce default timeout to prevent indefinite hangs, since we are not using a custom HTTP client with timeout.
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	requestJSON, err := json.Marshal(RequestData{
		TargetLanguage: targetCode,
		SourceLanguage: sourceCode,
		Text:           text,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.model.GenerateContent(ctx, genai.Text(string(requestJSON)))
	if err != nil {
		return nil, classifyGeminiError(err)
	}

	data, err := parseResponse(resp)
	if err != nil {
		return nil, err
	}
	slog.Debug("Gemini usage", "prompt_tokens", data.Usage.PromptTokenCount, "total_tokens", data.Usage.TotalTokenCount)

	detected := strings.TrimSpace(data.DetectedLanguage)
	if detected == "" {
		detected = sourceCode
	}
	return &provider.Translation{
		TranslatedText:   data.TranslatedText,
		DetectedLanguage: language.Resolve(detected),
		Provider:         provider.NameGemini,
	}, nil
}

func parseResponse(resp *genai.GenerateContentResponse) (*ResponseData, error) {
	text, err := extractResponseText(resp)
	if err != nil {
		return nil, apperrors.New(apperrors.KindInvalidResponse, "Gemini returned no usable content.", err)
	}
	var data ResponseData
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &data); err != nil {
		// The raw text is omitted; it may contain lyrics.
		return nil, apperrors.New(apperrors.KindInvalidResponse, "Gemini response format was invalid.", fmt.Errorf("failed to unmarshal response: %w", err))
	}
	if strings.TrimSpace(data.TranslatedText) == "" {
		return nil, apperrors.New(apperrors.KindTranslationEmpty, "Gemini returned an empty translation.", nil)
	}
	if resp.UsageMetadata != nil {
		data.Usage = UsageMetadata{
			PromptTokenCount:     int(resp.UsageMetadata.PromptTokenCount),
			CandidatesTokenCount: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokenCount:      int(resp.UsageMetadata.TotalTokenCount),
		}
	}
	return &data, nil
}

func extractResponseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("no response received from Gemini")
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned from Gemini")
	}
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
			continue
		}
		var combined strings.Builder
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				combined.WriteString(string(text))
			}
		}
		if combined.Len() > 0 {
			return combined.String(), nil
		}
	}
	return "", fmt.Errorf("no text parts found in Gemini response")
}
