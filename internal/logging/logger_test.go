package logging

import (
	"testing"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewBuildsTextAndJSON(t *testing.T) {
	for _, format := range []string{"text", "json", ""} {
		logger, err := New(Options{Format: format, Level: "debug", OutputPaths: []string{"stdout"}})
		if err != nil {
			t.Fatalf("New(%q) failed: %v", format, err)
		}
		if logger == nil {
			t.Fatalf("New(%q) returned nil logger", format)
		}
	}
}

func TestNewComponentLoggerNilBase(t *testing.T) {
	logger := NewComponentLogger(nil, "store")
	if logger == nil {
		t.Fatal("expected non-nil logger")
	}
	// Emitting through the no-op base must not panic.
	logger.Info("noop", String("key", "value"))
}
