package testsupport

import (
	"context"
	"testing"

	"saleslens/internal/config"
	"saleslens/internal/session"
	"saleslens/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// NewSession creates a recording session for tests.
func NewSession(t testing.TB, st *store.Store, customerName string) *session.Session {
	t.Helper()

	sess, err := st.CreateSession(context.Background(), customerName, "")
	if err != nil {
		t.Fatalf("store.CreateSession: %v", err)
	}
	return sess
}

// SeedSegment appends a transcript segment for tests and returns it.
func SeedSegment(t testing.TB, st *store.Store, sessionID string, startMS, endMS int64, speaker session.Speaker, text string) *session.TranscriptSegment {
	t.Helper()

	seg := &session.TranscriptSegment{
		SessionID: sessionID,
		StartMS:   startMS,
		EndMS:     endMS,
		Speaker:   speaker,
		Text:      text,
	}
	if err := st.AppendSegment(context.Background(), seg); err != nil {
		t.Fatalf("store.AppendSegment: %v", err)
	}
	return seg
}

// SeedEvent appends a physiology event for tests and returns it. Channel
// values may be nil to simulate sensor dropout.
func SeedEvent(t testing.TB, st *store.Store, sessionID string, timestampMS int64, heartRate, engagement *float64) *session.PhysiologyEvent {
	t.Helper()

	ev := &session.PhysiologyEvent{
		SessionID:   sessionID,
		TimestampMS: timestampMS,
		HeartRate:   heartRate,
		Engagement:  engagement,
	}
	if err := st.AppendEvent(context.Background(), ev); err != nil {
		t.Fatalf("store.AppendEvent: %v", err)
	}
	return ev
}

// Float returns a pointer to the provided value.
func Float(value float64) *float64 {
	return &value
}
