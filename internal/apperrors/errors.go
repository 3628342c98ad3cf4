package apperrors

import (
	"errors"
	"strings"
)

// Kind is the stable classification carried by every failure.
type Kind string

const (
	// Validation: client-side, never retried.
	KindMissingText           Kind = "MISSING_TEXT"
	KindEmptyText             Kind = "EMPTY_TEXT"
	KindTextTooLong           Kind = "TEXT_TOO_LONG"
	KindMissingTargetLanguage Kind = "MISSING_TARGET_LANGUAGE"

	// Permanent domain errors, never retried.
	KindInvalidURL    Kind = "INVALID_URL"
	KindVideoNotFound Kind = "VIDEO_NOT_FOUND"
	KindNoLyricsFound Kind = "NO_LYRICS_FOUND"

	// Transient, retryable.
	KindTimeout            Kind = "TIMEOUT"
	KindNetworkError       Kind = "NETWORK_ERROR"
	KindRateLimited        Kind = "RATE_LIMITED"
	KindServerError        Kind = "SERVER_ERROR"
	KindServiceUnavailable Kind = "SERVICE_UNAVAILABLE"

	// Provider-specific. Not retried against the same provider but they move
	// the fallback chain on to the next one.
	KindQuotaExceeded    Kind = "QUOTA_EXCEEDED"
	KindAPIKeyMissing    Kind = "API_KEY_MISSING"
	KindInvalidResponse  Kind = "INVALID_RESPONSE"
	KindTranslationEmpty Kind = "TRANSLATION_EMPTY"
	KindServiceNotFound  Kind = "SERVICE_NOT_FOUND"
	KindGoogleAPIError   Kind = "GOOGLE_API_ERROR"
	KindLibreAPIError    Kind = "LIBRE_API_ERROR"
	KindGeminiAPIError   Kind = "GEMINI_API_ERROR"
	KindOpenAIAPIError   Kind = "OPENAI_API_ERROR"
	KindHTTPError        Kind = "HTTP_ERROR"

	// Terminal.
	KindAllServicesFailed Kind = "ALL_SERVICES_FAILED"
)

// Category groups kinds by how callers react to them.
type Category string

const (
	CategoryValidation Category = "validation"
	CategoryPermanent  Category = "permanent"
	CategoryTransient  Category = "transient"
	CategoryProvider   Category = "provider"
	CategoryTerminal   Category = "terminal"
)

var kindCategories = map[Kind]Category{
	KindMissingText:           CategoryValidation,
	KindEmptyText:             CategoryValidation,
	KindTextTooLong:           CategoryValidation,
	KindMissingTargetLanguage: CategoryValidation,
	KindInvalidURL:            CategoryPermanent,
	KindVideoNotFound:         CategoryPermanent,
	KindNoLyricsFound:         CategoryPermanent,
	KindTimeout:               CategoryTransient,
	KindNetworkError:          CategoryTransient,
	KindRateLimited:           CategoryTransient,
	KindServerError:           CategoryTransient,
	KindServiceUnavailable:    CategoryTransient,
	KindQuotaExceeded:         CategoryProvider,
	KindAPIKeyMissing:         CategoryProvider,
	KindInvalidResponse:       CategoryProvider,
	KindTranslationEmpty:      CategoryProvider,
	KindServiceNotFound:       CategoryProvider,
	KindGoogleAPIError:        CategoryProvider,
	KindLibreAPIError:         CategoryProvider,
	KindGeminiAPIError:        CategoryProvider,
	KindOpenAIAPIError:        CategoryProvider,
	KindHTTPError:             CategoryProvider,
	KindAllServicesFailed:     CategoryTerminal,
}

// Kinds returns every known kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindMissingText, KindEmptyText, KindTextTooLong, KindMissingTargetLanguage,
		KindInvalidURL, KindVideoNotFound, KindNoLyricsFound,
		KindTimeout, KindNetworkError, KindRateLimited, KindServerError, KindServiceUnavailable,
		KindQuotaExceeded, KindAPIKeyMissing, KindInvalidResponse, KindTranslationEmpty,
		KindServiceNotFound, KindGoogleAPIError, KindLibreAPIError, KindGeminiAPIError,
		KindOpenAIAPIError, KindHTTPError,
		KindAllServicesFailed,
	}
}

// ParseKind maps a wire string back to a known kind.
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := kindCategories[k]
	return k, ok
}

// Category returns the category of a kind. Unknown kinds are provider errors.
func (k Kind) Category() Category {
	if c, ok := kindCategories[k]; ok {
		return c
	}
	return CategoryProvider
}

type Error struct {
	Kind Kind
	// SafeMessage is intended for user-facing output and logs.
	SafeMessage string
	// StatusCode is the upstream HTTP status, zero when none was received.
	StatusCode int
	// Cause keeps the original internal error for troubleshooting.
	Cause error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if msg := strings.TrimSpace(e.SafeMessage); msg != "" {
		return msg
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return UserMessage(e.Kind)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func New(kind Kind, safeMessage string, cause error) error {
	msg := strings.TrimSpace(safeMessage)
	if msg == "" {
		msg = UserMessage(kind)
	}
	return &Error{
		Kind:        kind,
		SafeMessage: msg,
		Cause:       cause,
	}
}

// WithStatus is New with the upstream HTTP status attached.
func WithStatus(kind Kind, statusCode int, safeMessage string, cause error) error {
	err := New(kind, safeMessage, cause).(*Error)
	err.StatusCode = statusCode
	return err
}

func KindOf(err error) (Kind, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return "", false
	}
	return e.Kind, true
}

// StatusCodeOf returns the HTTP status attached to err, or zero.
func StatusCodeOf(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return 0
	}
	return e.StatusCode
}

func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	return err.Error()
}

// IsRetryable reports whether err is a transient failure worth another attempt.
func IsRetryable(err error) bool {
	kind, ok := KindOf(err)
	if !ok {
		return false
	}
	return kind.Category() == CategoryTransient
}

// IsPermanent reports validation and permanent domain failures.
func IsPermanent(err error) bool {
	kind, ok := KindOf(err)
	if !ok {
		return false
	}
	c := kind.Category()
	return c == CategoryValidation || c == CategoryPermanent
}
