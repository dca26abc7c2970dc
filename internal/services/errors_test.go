package services

import (
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestWrapTagsSentinel(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(ErrStorageIO, "store", "append segment", "insert failed", cause)
	if !errors.Is(err, ErrStorageIO) {
		t.Fatalf("expected ErrStorageIO, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	if !strings.Contains(err.Error(), "store: append segment") {
		t.Fatalf("expected component context in message, got %q", err.Error())
	}
}

func TestMalformedResponseRetainsRaw(t *testing.T) {
	raw := "this is not json at all"
	err := MalformedResponse("analyze", raw, errors.New("invalid character"))
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
	got, ok := RawResponse(err)
	if !ok {
		t.Fatal("expected raw payload to be attached")
	}
	if got != raw {
		t.Fatalf("expected raw %q, got %q", raw, got)
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"unknown session", ErrUnknownSession, http.StatusNotFound},
		{"invalid input", ErrInvalidInput, http.StatusBadRequest},
		{"no timeline data", ErrNoTimelineData, http.StatusUnprocessableEntity},
		{"session not ready", ErrSessionNotReady, http.StatusConflict},
		{"malformed response", MalformedResponse("analyze", "x", nil), http.StatusBadGateway},
		{"external service", ErrExternalService, http.StatusBadGateway},
		{"storage io", ErrStorageIO, http.StatusInternalServerError},
		{"untagged", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}
