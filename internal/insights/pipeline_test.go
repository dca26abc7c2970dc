package insights

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"saleslens/internal/logging"
	"saleslens/internal/services"
	"saleslens/internal/services/reasoning"
	"saleslens/internal/session"
	"saleslens/internal/store"
	"saleslens/internal/testsupport"
	"saleslens/internal/timeline"
)

const validAnalysisJSON = `{
  "overall_score": 85,
  "summary": "Strong discovery call with good rapport.",
  "key_moments": [
    {
      "timestamp_ms": 1000,
      "type": "concern",
      "what_happened": "Customer heart rate spiked when pricing came up.",
      "physiological_evidence": "heart_rate jumped from 72 to 95",
      "recommendation": "Pause and ask how the pricing lands before moving on."
    },
    {
      "timestamp_ms": 2000,
      "type": "positive",
      "what_happened": "Engagement peaked during the integration demo.",
      "physiological_evidence": "engagement rose to 0.9",
      "recommendation": "Lead with the integration story next time."
    }
  ],
  "coaching_tips": ["Slow down when presenting pricing."],
  "unresolved_concerns": ["Implementation timeline was never addressed."]
}`

func newReasoningServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func contentHandler(t *testing.T, content string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]any{
			"choices": []any{
				map[string]any{
					"message": map[string]any{"content": content},
				},
			},
		}
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}
}

func newPipeline(t *testing.T, st *store.Store, serverURL string) *Pipeline {
	t.Helper()
	client := reasoning.NewClient(
		reasoning.Config{APIKey: "test", BaseURL: serverURL, Model: "test-model"},
		reasoning.WithRetryMaxAttempts(1),
		reasoning.WithSleeper(func(time.Duration) {}),
	)
	logger := logging.NewNop()
	return NewPipeline(st, timeline.NewBuilder(st, logger), client, logger)
}

func completedSession(t *testing.T, st *store.Store, name string) *session.Session {
	t.Helper()
	sess := testsupport.NewSession(t, st, name)
	stopped, err := st.StopSession(context.Background(), sess.ID, sess.StartTimeMS+60_000)
	if err != nil {
		t.Fatalf("StopSession: %v", err)
	}
	if !stopped {
		t.Fatal("expected session to stop")
	}
	return sess
}

func mustStatus(t *testing.T, st *store.Store, sessionID string, want session.Status) {
	t.Helper()
	sess, err := st.GetSession(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if sess.Status != want {
		t.Fatalf("expected status %s, got %s", want, sess.Status)
	}
}

func TestAnalyzePersistsInsightsAndMarksAnalyzed(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	sess := completedSession(t, st, "Acme Corp")
	testsupport.SeedSegment(t, st, sess.ID, 0, 3000, session.SpeakerSeller, "Hi there")
	testsupport.SeedEvent(t, st, sess.ID, 1000, testsupport.Float(72), nil)
	testsupport.SeedEvent(t, st, sess.ID, 2000, testsupport.Float(78), nil)

	server := newReasoningServer(t, contentHandler(t, validAnalysisJSON))
	pipeline := newPipeline(t, st, server.URL)

	result, err := pipeline.Analyze(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if result.OverallScore != 85 {
		t.Fatalf("expected score 85, got %d", result.OverallScore)
	}
	mustStatus(t, st, sess.ID, session.StatusAnalyzed)

	insights, err := st.InsightsForSession(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("InsightsForSession: %v", err)
	}
	if len(insights) != 4 {
		t.Fatalf("expected 4 insights, got %d", len(insights))
	}

	summary := insights[0]
	if summary.Type != session.InsightSummary || summary.Title != "Score: 85/100" {
		t.Fatalf("unexpected summary insight %+v", summary)
	}
	if summary.Severity != session.SeverityPositive {
		t.Fatalf("expected positive summary severity, got %s", summary.Severity)
	}

	risk := insights[1]
	if risk.Type != session.InsightRisk || risk.Severity != session.SeverityConcern {
		t.Fatalf("expected concern moment to map to risk/concern, got %+v", risk)
	}
	if risk.TimestampRefMS == nil || *risk.TimestampRefMS != 1000 {
		t.Fatalf("expected risk timestamp_ref_ms 1000, got %+v", risk.TimestampRefMS)
	}
	if !strings.HasPrefix(risk.Title, "Customer heart rate spiked") {
		t.Fatalf("unexpected risk title %q", risk.Title)
	}

	highlight := insights[2]
	if highlight.Type != session.InsightHighlight || highlight.Severity != session.SeverityPositive {
		t.Fatalf("expected positive moment to map to highlight/positive, got %+v", highlight)
	}

	tip := insights[3]
	if tip.Type != session.InsightCoaching || tip.Severity != session.SeverityNeutral {
		t.Fatalf("expected coaching tip to be neutral, got %+v", tip)
	}
	if tip.Title != "" {
		t.Fatalf("expected coaching tip without title, got %q", tip.Title)
	}
}

func TestAnalyzeLowScoreSummaryIsConcern(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	sess := completedSession(t, st, "Low Score")
	testsupport.SeedSegment(t, st, sess.ID, 0, 3000, session.SpeakerSeller, "Hi")

	payload := `{"overall_score": 40, "summary": "Rough call.", "key_moments": [], "coaching_tips": [], "unresolved_concerns": []}`
	server := newReasoningServer(t, contentHandler(t, payload))
	pipeline := newPipeline(t, st, server.URL)

	if _, err := pipeline.Analyze(context.Background(), sess.ID); err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	insights, err := st.InsightsForSession(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("InsightsForSession: %v", err)
	}
	if len(insights) != 1 || insights[0].Severity != session.SeverityConcern {
		t.Fatalf("expected single concern summary, got %+v", insights)
	}
}

func TestAnalyzeUnknownSession(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	server := newReasoningServer(t, contentHandler(t, validAnalysisJSON))
	pipeline := newPipeline(t, st, server.URL)

	_, err := pipeline.Analyze(context.Background(), "missing1")
	if !errors.Is(err, services.ErrUnknownSession) {
		t.Fatalf("expected unknown session error, got %v", err)
	}
}

func TestAnalyzeRecordingSessionNotReady(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	sess := testsupport.NewSession(t, st, "Still Recording")

	server := newReasoningServer(t, contentHandler(t, validAnalysisJSON))
	pipeline := newPipeline(t, st, server.URL)

	_, err := pipeline.Analyze(context.Background(), sess.ID)
	if !errors.Is(err, services.ErrSessionNotReady) {
		t.Fatalf("expected session-not-ready error, got %v", err)
	}
	mustStatus(t, st, sess.ID, session.StatusRecording)
}

func TestAnalyzeSecondRunNotReady(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	sess := completedSession(t, st, "Twice")
	testsupport.SeedSegment(t, st, sess.ID, 0, 3000, session.SpeakerSeller, "Hi")

	server := newReasoningServer(t, contentHandler(t, validAnalysisJSON))
	pipeline := newPipeline(t, st, server.URL)

	if _, err := pipeline.Analyze(context.Background(), sess.ID); err != nil {
		t.Fatalf("first Analyze returned error: %v", err)
	}
	_, err := pipeline.Analyze(context.Background(), sess.ID)
	if !errors.Is(err, services.ErrSessionNotReady) {
		t.Fatalf("expected session-not-ready error, got %v", err)
	}
	mustStatus(t, st, sess.ID, session.StatusAnalyzed)
}

func TestAnalyzeEmptyTimeline(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	sess := completedSession(t, st, "No Data")

	server := newReasoningServer(t, contentHandler(t, validAnalysisJSON))
	pipeline := newPipeline(t, st, server.URL)

	_, err := pipeline.Analyze(context.Background(), sess.ID)
	if !errors.Is(err, services.ErrNoTimelineData) {
		t.Fatalf("expected no-timeline-data error, got %v", err)
	}
	mustStatus(t, st, sess.ID, session.StatusError)
}

func TestAnalyzeMalformedResponseKeepsRawAndWritesNothing(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	sess := completedSession(t, st, "Bad Payload")
	testsupport.SeedSegment(t, st, sess.ID, 0, 3000, session.SpeakerSeller, "Hi")

	raw := `{"overall_score": 150, "summary": "impossible score"}`
	server := newReasoningServer(t, contentHandler(t, raw))
	pipeline := newPipeline(t, st, server.URL)

	_, err := pipeline.Analyze(context.Background(), sess.ID)
	if !errors.Is(err, services.ErrMalformedResponse) {
		t.Fatalf("expected malformed response error, got %v", err)
	}
	gotRaw, ok := services.RawResponse(err)
	if !ok || gotRaw != raw {
		t.Fatalf("expected raw payload on error, got %q (ok=%v)", gotRaw, ok)
	}
	mustStatus(t, st, sess.ID, session.StatusError)

	insights, err := st.InsightsForSession(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("InsightsForSession: %v", err)
	}
	if len(insights) != 0 {
		t.Fatalf("expected no insights after malformed response, got %d", len(insights))
	}
}

func TestAnalyzeUnknownMomentTypeRejected(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	sess := completedSession(t, st, "Bad Moment")
	testsupport.SeedSegment(t, st, sess.ID, 0, 3000, session.SpeakerSeller, "Hi")

	raw := `{"overall_score": 80, "summary": "ok", "key_moments": [{"timestamp_ms": 1, "type": "surprise", "what_happened": "x"}]}`
	server := newReasoningServer(t, contentHandler(t, raw))
	pipeline := newPipeline(t, st, server.URL)

	_, err := pipeline.Analyze(context.Background(), sess.ID)
	if !errors.Is(err, services.ErrMalformedResponse) {
		t.Fatalf("expected malformed response error, got %v", err)
	}
	mustStatus(t, st, sess.ID, session.StatusError)
}

func TestAnalyzeExternalServiceFailure(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	sess := completedSession(t, st, "Down")
	testsupport.SeedSegment(t, st, sess.ID, 0, 3000, session.SpeakerSeller, "Hi")

	server := newReasoningServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	pipeline := newPipeline(t, st, server.URL)

	_, err := pipeline.Analyze(context.Background(), sess.ID)
	if !errors.Is(err, services.ErrExternalService) {
		t.Fatalf("expected external service error, got %v", err)
	}
	mustStatus(t, st, sess.ID, session.StatusError)
}

func TestAnalyzeFenceWrappedPayload(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	sess := completedSession(t, st, "Fenced")
	testsupport.SeedSegment(t, st, sess.ID, 0, 3000, session.SpeakerSeller, "Hi")

	fenced := "```json\n" + validAnalysisJSON + "\n```"
	server := newReasoningServer(t, contentHandler(t, fenced))
	pipeline := newPipeline(t, st, server.URL)

	result, err := pipeline.Analyze(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if result.OverallScore != 85 {
		t.Fatalf("expected score 85, got %d", result.OverallScore)
	}
	mustStatus(t, st, sess.ID, session.StatusAnalyzed)
}
