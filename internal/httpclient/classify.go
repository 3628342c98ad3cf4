package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/oukeidos/tunelate/internal/apperrors"
)

// TransportError classifies a failure that happened before any HTTP status
// was received. Deadline and timeout failures are TIMEOUT; everything else
// means the service could not be reached and is NETWORK_ERROR.
func TransportError(service string, err error) error {
	if err == nil {
		return nil
	}
	if isTimeout(err) {
		return apperrors.New(apperrors.KindTimeout, fmt.Sprintf("%s request timed out.", service), err)
	}
	return apperrors.New(apperrors.KindNetworkError, fmt.Sprintf("%s could not be reached.", service), err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// StatusError maps a non-success HTTP status to a kind. notFound is the
// domain's meaning of 404 and fallback covers statuses without a dedicated kind.
func StatusError(service string, statusCode int, notFound, fallback apperrors.Kind, cause error) error {
	var kind apperrors.Kind
	var msg string
	switch {
	case statusCode == http.StatusTooManyRequests:
		kind, msg = apperrors.KindRateLimited, fmt.Sprintf("%s rate limit exceeded (429).", service)
	case statusCode == http.StatusForbidden:
		kind, msg = apperrors.KindQuotaExceeded, fmt.Sprintf("%s quota exceeded or access denied (403).", service)
	case statusCode == http.StatusNotFound:
		kind, msg = notFound, fmt.Sprintf("%s returned not found (404).", service)
	case statusCode == http.StatusServiceUnavailable:
		kind, msg = apperrors.KindServiceUnavailable, fmt.Sprintf("%s is temporarily unavailable (503).", service)
	case statusCode >= 500:
		kind, msg = apperrors.KindServerError, fmt.Sprintf("%s server error (%d).", service, statusCode)
	default:
		kind, msg = fallback, fmt.Sprintf("%s API error (%d).", service, statusCode)
	}
	if cause == nil {
		cause = fmt.Errorf("%s status=%d", service, statusCode)
	}
	return apperrors.WithStatus(kind, statusCode, msg, cause)
}
