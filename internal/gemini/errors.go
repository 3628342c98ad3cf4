package gemini

import (
	"errors"
	"fmt"

	"github.com/oukeidos/tunelate/internal/apperrors"
	"github.com/oukeidos/tunelate/internal/httpclient"
	"google.golang.org/api/googleapi"
)

const serviceName = "Gemini"

func classifyGeminiError(err error) error {
	if err == nil {
		return nil
	}

	wrapped := fmt.Errorf("gemini generate content failed: %w", err)

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return httpclient.StatusError(serviceName, gerr.Code, apperrors.KindServiceNotFound, apperrors.KindGeminiAPIError, wrapped)
	}

	// Non-HTTP transport/runtime failures (DNS, socket, timeout, etc.)
	return httpclient.TransportError(serviceName, wrapped)
}
