package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/oukeidos/tunelate/internal/apperrors"
)

func TestStatusError(t *testing.T) {
	tests := []struct {
		status int
		want   apperrors.Kind
	}{
		{http.StatusTooManyRequests, apperrors.KindRateLimited},
		{http.StatusForbidden, apperrors.KindQuotaExceeded},
		{http.StatusNotFound, apperrors.KindVideoNotFound},
		{http.StatusServiceUnavailable, apperrors.KindServiceUnavailable},
		{http.StatusInternalServerError, apperrors.KindServerError},
		{http.StatusBadGateway, apperrors.KindServerError},
		{http.StatusBadRequest, apperrors.KindHTTPError},
		{http.StatusUnauthorized, apperrors.KindHTTPError},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			err := StatusError("Backend", tt.status, apperrors.KindVideoNotFound, apperrors.KindHTTPError, nil)
			kind, _ := apperrors.KindOf(err)
			if kind != tt.want {
				t.Fatalf("kind = %s, want %s", kind, tt.want)
			}
			if got := apperrors.StatusCodeOf(err); got != tt.status {
				t.Fatalf("status = %d, want %d", got, tt.status)
			}
		})
	}
}

func TestTransportError_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	req, _ := http.NewRequest("GET", server.URL, nil)
	_, _, err := DoAndRead(NewClient(50*time.Millisecond), req)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	assertKind(t, TransportError("Backend", err), apperrors.KindTimeout)
}

func TestTransportError_ContextDeadline(t *testing.T) {
	assertKind(t, TransportError("Backend", context.DeadlineExceeded), apperrors.KindTimeout)
}

func TestTransportError_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	req, _ := http.NewRequest("GET", url, nil)
	_, _, err := DoAndRead(NewClient(time.Second), req)
	if err == nil {
		t.Fatal("expected connection error")
	}
	assertKind(t, TransportError("Backend", err), apperrors.KindNetworkError)
}

func TestTransportError_Nil(t *testing.T) {
	if err := TransportError("Backend", nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func assertKind(t *testing.T, err error, kind apperrors.Kind) {
	t.Helper()
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected apperrors.Error, got %T", err)
	}
	if appErr.Kind != kind {
		t.Fatalf("expected kind %s, got %s", kind, appErr.Kind)
	}
}
