package logs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeLogFile(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "saleslens.log")
	if err := os.WriteFile(path, []byte(lines), 0o644); err != nil {
		t.Fatalf("write log file: %v", err)
	}
	return path
}

func TestTailReturnsLastLines(t *testing.T) {
	path := writeLogFile(t, "one\ntwo\nthree\nfour\n")

	lines, offset, err := Tail(path, 2)
	if err != nil {
		t.Fatalf("tail: %v", err)
	}
	if len(lines) != 2 || lines[0] != "three" || lines[1] != "four" {
		t.Fatalf("unexpected lines: %#v", lines)
	}
	if offset == 0 {
		t.Fatal("expected non-zero resume offset")
	}
}

func TestTailShorterThanLimit(t *testing.T) {
	path := writeLogFile(t, "only\n")

	lines, _, err := Tail(path, 10)
	if err != nil {
		t.Fatalf("tail: %v", err)
	}
	if len(lines) != 1 || lines[0] != "only" {
		t.Fatalf("unexpected lines: %#v", lines)
	}
}

func TestTailMissingFile(t *testing.T) {
	lines, offset, err := Tail(filepath.Join(t.TempDir(), "absent.log"), 5)
	if err != nil {
		t.Fatalf("tail: %v", err)
	}
	if len(lines) != 0 || offset != 0 {
		t.Fatalf("expected empty result, got %#v offset %d", lines, offset)
	}
}

func TestFollowDeliversAppendedLines(t *testing.T) {
	path := writeLogFile(t, "existing\n")

	_, offset, err := Tail(path, 1)
	if err != nil {
		t.Fatalf("tail: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	received := make(chan string, 4)
	done := make(chan error, 1)
	go func() {
		done <- Follow(ctx, path, offset, func(line string) {
			received <- line
		})
	}()

	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open for append: %v", err)
	}
	if _, err := file.WriteString("appended\n"); err != nil {
		t.Fatalf("append: %v", err)
	}
	file.Close()

	select {
	case line := <-received:
		if line != "appended" {
			t.Fatalf("unexpected line %q", line)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for appended line")
	}

	cancel()
	if err := <-done; err != context.Canceled && err != context.DeadlineExceeded {
		t.Fatalf("unexpected follow error: %v", err)
	}
}
