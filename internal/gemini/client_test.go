package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/oukeidos/tunelate/internal/apperrors"
	"google.golang.org/api/googleapi"
)

func textResponse(s string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text(s)}}},
		},
		UsageMetadata: &genai.UsageMetadata{PromptTokenCount: 10, CandidatesTokenCount: 5, TotalTokenCount: 15},
	}
}

func TestClient_Translate(t *testing.T) {
	mock := &MockGenerator{Response: textResponse(`{"translatedText":"ආයුබෝවන්","detectedLanguage":"English"}`)}
	c := newWithGenerator(mock)

	res, err := c.Translate(context.Background(), "Hello", "si", "")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if res.TranslatedText != "ආයුබෝවන්" || res.Provider != "gemini" {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.DetectedLanguage != "en" {
		t.Fatalf("DetectedLanguage = %q, want resolved code en", res.DetectedLanguage)
	}

	var sent RequestData
	if err := json.Unmarshal([]byte(mock.LastPrompt()), &sent); err != nil {
		t.Fatalf("prompt is not JSON: %v", err)
	}
	if sent.Text != "Hello" || sent.TargetLanguage != "si" || sent.SourceLanguage != "auto" {
		t.Fatalf("unexpected prompt %+v", sent)
	}
}

func TestClient_Translate_MissingKey(t *testing.T) {
	c, err := NewClient(context.Background(), Config{})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	defer c.Close()
	_, err = c.Translate(context.Background(), "Hello", "si", "auto")
	assertErrorKind(t, err, apperrors.KindAPIKeyMissing)
}

func TestClient_Translate_Failures(t *testing.T) {
	tests := []struct {
		name string
		mock *MockGenerator
		want apperrors.Kind
	}{
		{"api error", &MockGenerator{Error: &googleapi.Error{Code: 429}}, apperrors.KindRateLimited},
		{"not json", &MockGenerator{Response: textResponse("just words")}, apperrors.KindInvalidResponse},
		{"no candidates", &MockGenerator{Response: &genai.GenerateContentResponse{}}, apperrors.KindInvalidResponse},
		{"empty translation", &MockGenerator{Response: textResponse(`{"translatedText":""}`)}, apperrors.KindTranslationEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newWithGenerator(tt.mock).Translate(context.Background(), "Hello", "si", "en")
			assertErrorKind(t, err, tt.want)
		})
	}
}

func TestParseResponse_Usage(t *testing.T) {
	data, err := parseResponse(textResponse(`{"translatedText":"ok","detectedLanguage":"en"}`))
	if err != nil {
		t.Fatalf("parseResponse failed: %v", err)
	}
	if data.Usage.TotalTokenCount != 15 || data.Usage.PromptTokenCount != 10 {
		t.Fatalf("unexpected usage %+v", data.Usage)
	}
}

func TestExtractResponseText(t *testing.T) {
	t.Run("NilResponse", func(t *testing.T) {
		_, err := extractResponseText(nil)
		if err == nil || err.Error() != "no response received from Gemini" {
			t.Fatalf("expected nil response error, got: %v", err)
		}
	})

	t.Run("EmptyCandidates", func(t *testing.T) {
		_, err := extractResponseText(&genai.GenerateContentResponse{})
		if err == nil || err.Error() != "no candidates returned from Gemini" {
			t.Fatalf("expected empty candidates error, got: %v", err)
		}
	})

	t.Run("NonTextParts", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []genai.Part{
					genai.Blob{MIMEType: "application/octet-stream", Data: []byte{0x01}},
				}}},
			},
		}
		_, err := extractResponseText(resp)
		if err == nil || err.Error() != "no text parts found in Gemini response" {
			t.Fatalf("expected no text parts error, got: %v", err)
		}
	})

	t.Run("MultiPartText", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{Content: nil},
				{Content: &genai.Content{Parts: []genai.Part{
					genai.Text("one"),
					genai.Text("two"),
				}}},
			},
		}
		text, err := extractResponseText(resp)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if text != "onetwo" {
			t.Fatalf("expected concatenated text, got: %q", text)
		}
	})
}

func assertErrorKind(t *testing.T, err error, kind apperrors.Kind) {
	t.Helper()
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected apperrors.Error, got %T", err)
	}
	if appErr.Kind != kind {
		t.Fatalf("expected kind %s, got %s", kind, appErr.Kind)
	}
}
