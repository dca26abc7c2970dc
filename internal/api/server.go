package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"saleslens/internal/insights"
	"saleslens/internal/logging"
	"saleslens/internal/store"
	"saleslens/internal/timeline"
)

// Server wires the HTTP façade to the store, timeline builder, and insight
// pipeline.
type Server struct {
	store    *store.Store
	builder  *timeline.Builder
	pipeline *insights.Pipeline
	logger   *slog.Logger
}

// NewServer constructs the façade.
func NewServer(st *store.Store, builder *timeline.Builder, pipeline *insights.Pipeline, logger *slog.Logger) *Server {
	return &Server{
		store:    st,
		builder:  builder,
		pipeline: pipeline,
		logger:   logging.NewComponentLogger(logger, "api"),
	}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)
		r.Get("/", s.handleListSessions)

		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Post("/stop", s.handleStopSession)
			r.Get("/timeline", s.handleTimeline)
			r.Get("/insights", s.handleInsights)
			r.Get("/transcript", s.handleTranscript)
			r.Get("/physiology", s.handlePhysiology)
			r.Post("/transcript", s.handleAppendSegment)
			r.Post("/physiology", s.handleAppendEvent)
		})
	})

	return r
}
