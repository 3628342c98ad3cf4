// Package validation checks translation requests before any network call.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/oukeidos/tunelate/internal/apperrors"
)

// MaxTextLength is the default upper bound on request text, in characters.
const MaxTextLength = 5000

// Validate enforces the request preconditions in order and returns the first
// failure. maxTextLength <= 0 selects MaxTextLength.
func Validate(text, targetLanguage string, maxTextLength int) error {
	if maxTextLength <= 0 {
		maxTextLength = MaxTextLength
	}
	if text == "" {
		return apperrors.New(apperrors.KindMissingText, "Text is required.", nil)
	}
	if strings.TrimSpace(text) == "" {
		return apperrors.New(apperrors.KindEmptyText, "Text cannot be empty.", nil)
	}
	if n := utf8.RuneCountInString(text); n > maxTextLength {
		return apperrors.New(
			apperrors.KindTextTooLong,
			fmt.Sprintf("Text is too long (%d characters). Maximum length is %d characters.", n, maxTextLength),
			nil,
		)
	}
	if strings.TrimSpace(targetLanguage) == "" {
		return apperrors.New(apperrors.KindMissingTargetLanguage, "Target language is required.", nil)
	}
	return nil
}
