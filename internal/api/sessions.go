package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"saleslens/internal/logging"
	"saleslens/internal/services"
	"saleslens/internal/session"
)

type createSessionRequest struct {
	CustomerName string `json:"customer_name"`
	Notes        string `json:"notes"`
}

type createSessionResponse struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type stopSessionResponse struct {
	SessionID string         `json:"session_id"`
	Status    session.Status `json:"status"`
	Score     *int           `json:"score,omitempty"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	sess, err := s.store.CreateSession(r.Context(), req.CustomerName, req.Notes)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("session created",
		logging.String(logging.FieldSessionID, sess.ID),
		logging.String("customer_name", sess.CustomerName),
	)
	s.writeJSON(w, http.StatusCreated, createSessionResponse{
		SessionID: sess.ID,
		Message:   fmt.Sprintf("Session created. Start capture modules with --session-id %s", sess.ID),
	})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.store.ListSessions(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if sessions == nil {
		sessions = []*session.Session{}
	}
	s.writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sess)
}

// handleStopSession marks the session completed and runs analysis in the
// same request. Stopping an already stopped session does not re-run
// analysis; the caller gets the session's current state back.
func (s *Server) handleStopSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if _, err := s.store.StopSession(r.Context(), sessionID, time.Now().UTC().UnixMilli()); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.pipeline.Analyze(r.Context(), sessionID)
	if errors.Is(err, services.ErrSessionNotReady) {
		sess, getErr := s.store.GetSession(r.Context(), sessionID)
		if getErr != nil {
			s.writeError(w, r, getErr)
			return
		}
		s.writeJSON(w, http.StatusOK, stopSessionResponse{SessionID: sessionID, Status: sess.Status})
		return
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	score := result.OverallScore
	s.writeJSON(w, http.StatusOK, stopSessionResponse{
		SessionID: sessionID,
		Status:    session.StatusAnalyzed,
		Score:     &score,
	})
}
