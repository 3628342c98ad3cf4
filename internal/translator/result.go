package translator

import (
	"github.com/oukeidos/tunelate/internal/apperrors"
)

// Result is the envelope returned for every translation request. Exactly one
// of Data and Error is set.
type Result struct {
	Success bool       `json:"success"`
	Data    *Data      `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

type Data struct {
	OriginalText   string `json:"originalText"`
	TranslatedText string `json:"translatedText"`
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage"`
	Provider       string `json:"provider"`
	ChunkCount     int    `json:"chunkCount"`
}

// ErrorInfo carries only the safe message, never raw provider text.
type ErrorInfo struct {
	Message    string         `json:"message"`
	Kind       apperrors.Kind `json:"kind"`
	StatusCode int            `json:"statusCode,omitempty"`
}

// Err returns the failure as a classified error, or nil on success.
func (r Result) Err() error {
	if r.Success || r.Error == nil {
		return nil
	}
	return apperrors.WithStatus(r.Error.Kind, r.Error.StatusCode, r.Error.Message, nil)
}

func failure(err error) Result {
	kind, ok := apperrors.KindOf(err)
	if !ok {
		kind = apperrors.KindHTTPError
	}
	msg := apperrors.PublicMessage(err)
	if !ok {
		msg = apperrors.UserMessage(kind)
	}
	return Result{
		Success: false,
		Error: &ErrorInfo{
			Message:    msg,
			Kind:       kind,
			StatusCode: apperrors.StatusCodeOf(err),
		},
	}
}
