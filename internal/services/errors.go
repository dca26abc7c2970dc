package services

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUnknownSession marks operations that referenced a session id with no
	// matching row.
	ErrUnknownSession = errors.New("unknown session")
	// ErrNoTimelineData marks an analysis attempt against a session with zero
	// transcript segments.
	ErrNoTimelineData = errors.New("no timeline data")
	// ErrMalformedResponse marks a reasoning-service payload that failed
	// strict JSON or schema validation.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrStorageIO marks persistence failures, including write conflicts that
	// exhausted the store's busy timeout.
	ErrStorageIO = errors.New("storage io error")
	// ErrExternalService marks outbound reasoning-service failures (network,
	// auth, rate limit).
	ErrExternalService = errors.New("external service error")
	// ErrSessionNotReady marks an analysis request against a session that is
	// not in the completed state. The façade treats it as an idempotent no-op.
	ErrSessionNotReady = errors.New("session not ready for analysis")
	// ErrInvalidInput marks a write rejected before touching storage because
	// required fields were missing or out of range.
	ErrInvalidInput = errors.New("invalid input")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided sentinel for later branching. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrStorageIO
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// MalformedResponse builds an ErrMalformedResponse that retains the raw
// payload for diagnosis.
func MalformedResponse(operation string, raw string, err error) error {
	return &malformedResponseError{operation: operation, raw: raw, cause: err}
}

// RawResponse extracts the raw payload attached to a malformed-response
// error, if any.
func RawResponse(err error) (string, bool) {
	var malformed *malformedResponseError
	if errors.As(err, &malformed) {
		return malformed.raw, true
	}
	return "", false
}

type malformedResponseError struct {
	operation string
	raw       string
	cause     error
}

func (e *malformedResponseError) Error() string {
	snippet := summarizeSnippet(e.raw)
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v (raw: %s)", ErrMalformedResponse.Error(), e.operation, e.cause, snippet)
	}
	return fmt.Sprintf("%s: %s (raw: %s)", ErrMalformedResponse.Error(), e.operation, snippet)
}

func (e *malformedResponseError) Unwrap() error { return ErrMalformedResponse }

// HTTPStatus maps a taxonomy error to the status code the façade returns.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnknownSession):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrNoTimelineData):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrSessionNotReady):
		return http.StatusConflict
	case errors.Is(err, ErrMalformedResponse), errors.Is(err, ErrExternalService):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}

func summarizeSnippet(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "<empty>"
	}
	clean := strings.Join(strings.Fields(trimmed), " ")
	const limit = 160
	runes := []rune(clean)
	if len(runes) > limit {
		clean = string(runes[:limit]) + "..."
	}
	return clean
}
