// Package provider defines the contract every translation backend implements.
package provider

import "context"

// Provider identifiers used in configuration and result envelopes.
const (
	NameBackend = "backend"
	NameGoogle  = "google"
	NameLibre   = "libre"
	NameGemini  = "gemini"
	NameOpenAI  = "openai"
)

// Names lists every built-in provider identifier.
func Names() []string {
	return []string{NameBackend, NameGoogle, NameLibre, NameGemini, NameOpenAI}
}

// Translation is the normalized output of a single provider call.
type Translation struct {
	TranslatedText   string
	DetectedLanguage string
	Provider         string
}

// Provider performs one translation call against one backend.
// Failures are returned as *apperrors.Error values.
type Provider interface {
	Name() string
	Translate(ctx context.Context, text, targetCode, sourceCode string) (*Translation, error)
}
