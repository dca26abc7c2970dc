package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"saleslens/internal/session"
	"saleslens/internal/timeline"
)

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	entries, err := s.builder.Build(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if entries == nil {
		entries = []timeline.Entry{}
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if _, err := s.store.GetSession(r.Context(), sessionID); err != nil {
		s.writeError(w, r, err)
		return
	}
	insights, err := s.store.InsightsForSession(r.Context(), sessionID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if insights == nil {
		insights = []*session.Insight{}
	}
	s.writeJSON(w, http.StatusOK, insights)
}

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if _, err := s.store.GetSession(r.Context(), sessionID); err != nil {
		s.writeError(w, r, err)
		return
	}
	segments, err := s.store.SegmentsForSession(r.Context(), sessionID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if segments == nil {
		segments = []*session.TranscriptSegment{}
	}
	s.writeJSON(w, http.StatusOK, segments)
}

func (s *Server) handlePhysiology(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if _, err := s.store.GetSession(r.Context(), sessionID); err != nil {
		s.writeError(w, r, err)
		return
	}
	events, err := s.store.EventsForSession(r.Context(), sessionID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if events == nil {
		events = []*session.PhysiologyEvent{}
	}
	s.writeJSON(w, http.StatusOK, events)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health, err := s.store.CheckHealth(r.Context())
	payload := map[string]any{
		"status":  "ok",
		"service": "saleslens-api",
		"store":   health,
	}
	if err != nil {
		payload["status"] = "degraded"
		payload["error"] = err.Error()
		s.writeJSON(w, http.StatusServiceUnavailable, payload)
		return
	}
	s.writeJSON(w, http.StatusOK, payload)
}
