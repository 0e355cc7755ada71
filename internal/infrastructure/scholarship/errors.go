package scholarship

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/bersekolah/beswanadmin/internal/core/domain"
	"github.com/bersekolah/beswanadmin/internal/infrastructure/resilience"
)

// StatusError is a non-2xx response, classified into a domain error kind
// so callers can branch on unauthorized vs not-found vs server failure
// instead of one generic message.
type StatusError struct {
	Operation  string
	StatusCode int
	Status     string
	Message    string
}

func (e *StatusError) Error() string {
	if e == nil {
		return "scholarship api status error"
	}
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("scholarship %s status: %s", e.Operation, e.Status)
	}
	return fmt.Sprintf("scholarship %s status: %s: %s", e.Operation, e.Status, strings.TrimSpace(e.Message))
}

func (e *StatusError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden:
		return domain.ErrUnauthorized
	case e.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case isRetryableHTTPStatus(e.StatusCode):
		return domain.ErrTemporary
	default:
		return domain.ErrServer
	}
}

func newStatusError(operation string, resp *http.Response) *StatusError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	message := strings.TrimSpace(string(body))
	// error bodies usually carry the envelope's message field
	var env struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &env); err == nil && strings.TrimSpace(env.Message) != "" {
		message = strings.TrimSpace(env.Message)
	}
	return &StatusError{
		Operation:  operation,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Message:    message,
	}
}

func isRetryableHTTPStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusRequestTimeout, http.StatusTooManyRequests,
		http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// classifyAPIError feeds the breaker. Cancellation never counts against
// the API; auth and not-found answers are the API working as intended.
func classifyAPIError(err error) resilience.ErrorClassification {
	if err == nil {
		return resilience.ErrorClassification{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{}
	}
	if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidInput) {
		return resilience.ErrorClassification{}
	}
	if resilience.IsCircuitOpen(err) {
		return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		if isRetryableHTTPStatus(statusErr.StatusCode) {
			return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
		}
		return resilience.ErrorClassification{RecordFailure: true}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
	}
	return resilience.ErrorClassification{RecordFailure: true}
}
