package pipeline

import (
	"github.com/oukeidos/tunelate/internal/backend"
	"github.com/oukeidos/tunelate/internal/translator"
)

// Status is the terminal state of a run.
type Status string

const (
	StatusSuccess   Status = "Success"
	StatusExtracted Status = "Extracted"
	StatusFailure   Status = "Failure"
)

// Result contains structured outputs from Run.
type Result struct {
	Status             Status
	Lyrics             *backend.Lyrics
	Translation        *translator.Result
	ExtractionAttempts int
}
