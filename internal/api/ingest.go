package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"saleslens/internal/session"
)

// Ingest endpoints let capture producers push rows over HTTP instead of
// linking the store directly. The session id in the URL wins over any id in
// the body.

func (s *Server) handleAppendSegment(w http.ResponseWriter, r *http.Request) {
	var seg session.TranscriptSegment
	if err := decodeBody(r, &seg); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	seg.SessionID = chi.URLParam(r, "sessionID")
	seg.Speaker = session.ParseSpeaker(string(seg.Speaker))

	if err := s.store.AppendSegment(r.Context(), &seg); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, seg)
}

func (s *Server) handleAppendEvent(w http.ResponseWriter, r *http.Request) {
	var ev session.PhysiologyEvent
	if err := decodeBody(r, &ev); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	ev.SessionID = chi.URLParam(r, "sessionID")

	if err := s.store.AppendEvent(r.Context(), &ev); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, ev)
}
