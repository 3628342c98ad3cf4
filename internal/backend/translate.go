package backend

import (
	"context"
	"strings"

	"github.com/oukeidos/tunelate/internal/apperrors"
	"github.com/oukeidos/tunelate/internal/language"
	"github.com/oukeidos/tunelate/internal/provider"
)

type translateRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"targetLanguage"`
	SourceLanguage string `json:"sourceLanguage"`
}

type translateData struct {
	TranslatedText   string `json:"translatedText"`
	DetectedLanguage string `json:"detectedLanguage"`
	Provider         string `json:"provider"`
}

// Translator exposes the client as a translation provider.
type Translator struct {
	client *Client
}

var _ provider.Provider = (*Translator)(nil)

func (c *Client) Translator() *Translator {
	return &Translator{client: c}
}

func (t *Translator) Name() string {
	return provider.NameBackend
}

func (t *Translator) Translate(ctx context.Context, text, targetCode, sourceCode string) (*provider.Translation, error) {
	if sourceCode == "" {
		sourceCode = language.Auto
	}
	var data translateData
	err := t.client.post(ctx, t.client.translate, "/api/translate", translateRequest{
		Text:           text,
		TargetLanguage: targetCode,
		SourceLanguage: sourceCode,
	}, apperrors.KindServiceNotFound, &data)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(data.TranslatedText) == "" {
		return nil, apperrors.New(apperrors.KindTranslationEmpty, "Lyrics API returned an empty translation.", nil)
	}
	detected := data.DetectedLanguage
	if detected == "" {
		detected = sourceCode
	}
	// The upstream tag names whichever engine the API used internally; the
	// chain reports this provider.
	return &provider.Translation{
		TranslatedText:   data.TranslatedText,
		DetectedLanguage: detected,
		Provider:         provider.NameBackend,
	}, nil
}
