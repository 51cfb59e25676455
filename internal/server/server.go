// Package server is the thin HTTP transport over the repositories and the
// query façade. Handlers are safe to run concurrently; the stores below own
// the append/scan discipline.
package server

import (
	"net/http"

	"github.com/julianstephens/mnemo/internal/config"
	"github.com/julianstephens/mnemo/internal/repo"
	"github.com/julianstephens/mnemo/internal/service"
)

type Server struct {
	cfg    *config.Config
	events *repo.EventRepo
	diary  *repo.DiaryRepo
	svc    *service.Service
}

func New(cfg *config.Config, events *repo.EventRepo, diary *repo.DiaryRepo, svc *service.Service) *Server {
	return &Server{
		cfg:    cfg,
		events: events,
		diary:  diary,
		svc:    svc,
	}
}

// Handler builds the route tree with auth and CORS applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /events", s.handleCreateEvent)
	mux.HandleFunc("GET /events", s.handleListEvents)
	mux.HandleFunc("POST /query", s.handleQuery)
	mux.HandleFunc("POST /diary", s.handleCreateDiary)
	mux.HandleFunc("GET /diary/{date}", s.handleGetDiary)
	mux.HandleFunc("GET /diary/{date}/summary", s.handleDiarySummary)
	mux.HandleFunc("POST /diary/parse", s.handleParseAnswers)

	return s.withCORS(s.withAuth(mux))
}
