package googletranslate

import (
	"errors"
	"fmt"

	"github.com/oukeidos/tunelate/internal/apperrors"
	"github.com/oukeidos/tunelate/internal/httpclient"
	"google.golang.org/api/googleapi"
)

func classifyGoogleError(err error) error {
	if err == nil {
		return nil
	}

	wrapped := fmt.Errorf("google translate request failed: %w", err)

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return httpclient.StatusError(serviceName, gerr.Code, apperrors.KindServiceNotFound, apperrors.KindGoogleAPIError, wrapped)
	}

	// No HTTP status: DNS, socket or deadline failure.
	return httpclient.TransportError(serviceName, wrapped)
}
