package daemon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"saleslens/internal/logging"
	"saleslens/internal/testsupport"
)

func TestDaemonServesHealthAndEnforcesSingleInstance(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	d, err := New(cfg, st, logging.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer d.Stop()

	resp, err := http.Get(fmt.Sprintf("http://%s/health", d.Addr()))
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from /health, got %d", resp.StatusCode)
	}

	second, err := New(cfg, st, logging.NewNop())
	if err != nil {
		t.Fatalf("New second: %v", err)
	}
	if err := second.Start(ctx); err == nil {
		second.Stop()
		t.Fatal("expected second instance to fail the lock")
	}

	d.Stop()
	if err := second.Start(ctx); err != nil {
		t.Fatalf("expected lock to be free after stop, got %v", err)
	}
	second.Stop()
}

func TestDaemonRunsSessionEndToEnd(t *testing.T) {
	reasoningServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		content := `{
			"overall_score": 90,
			"summary": "Strong call.",
			"key_moments": [],
			"coaching_tips": ["Slow down the pricing walkthrough."],
			"unresolved_concerns": []
		}`
		payload := map[string]any{
			"choices": []any{
				map[string]any{"message": map[string]any{"content": content}},
			},
		}
		_ = json.NewEncoder(w).Encode(payload)
	}))
	defer reasoningServer.Close()

	cfg := testsupport.NewConfig(t, testsupport.WithReasoningEndpoint(reasoningServer.URL))
	st := testsupport.MustOpenStore(t, cfg)

	d, err := New(cfg, st, logging.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer d.Stop()
	base := "http://" + d.Addr()

	postJSON := func(path string, body map[string]any) map[string]any {
		t.Helper()
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		resp, err := http.Post(base+path, "application/json", bytes.NewReader(buf))
		if err != nil {
			t.Fatalf("POST %s: %v", path, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 400 {
			t.Fatalf("POST %s: status %d", path, resp.StatusCode)
		}
		var decoded map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			t.Fatalf("decode %s response: %v", path, err)
		}
		return decoded
	}

	created := postJSON("/sessions", map[string]any{"customer_name": "Acme Corp"})
	sessionID, _ := created["session_id"].(string)
	if sessionID == "" {
		t.Fatalf("missing session_id in %#v", created)
	}

	now := time.Now().UTC().UnixMilli()
	postJSON("/sessions/"+sessionID+"/transcript", map[string]any{
		"timestamp_start_ms": now + 1_000,
		"timestamp_end_ms":   now + 4_000,
		"speaker":            "seller",
		"text":               "Thanks for joining today.",
	})

	stopped := postJSON("/sessions/"+sessionID+"/stop", nil)
	if status, _ := stopped["status"].(string); status != "analyzed" {
		t.Fatalf("expected analyzed status, got %#v", stopped)
	}
	if score, _ := stopped["score"].(float64); score != 90 {
		t.Fatalf("expected score 90, got %#v", stopped["score"])
	}
}

func TestDaemonStartRejectsRepeatStart(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	d, err := New(cfg, st, logging.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer d.Stop()

	if err := d.Start(context.Background()); err == nil {
		t.Fatal("expected repeat start to fail")
	}
}
