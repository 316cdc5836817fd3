package web

import (
	"net/http"

	"shembeldon-league/internal/league"

	"github.com/go-chi/chi/v5"
	"github.com/unrolled/render"
)

type Server struct {
	league *league.League
	render *render.Render
}

func NewServer(l *league.League, r *render.Render) *Server {
	return &Server{league: l, render: r}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(WithRequestID, WithLogging, WithRecovery)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/", s.handleHome)

	r.Route("/api", func(r chi.Router) {
		r.Get("/players", s.handlePlayersList)
		r.Post("/players", s.handlePlayerAdd)
		r.Delete("/players/{name}", s.handlePlayerRemove)

		r.Get("/fixtures", s.handleFixturesList)
		r.Post("/fixtures", s.handleFixtureAdd)
		r.Get("/fixtures/unplayed", s.handleFixturesUnplayed)
		r.Post("/fixtures/generate", s.handleFixturesGenerate)
		r.Delete("/fixtures/{index}", s.handleFixtureRemove)

		r.Get("/schedule", s.handleSchedule)

		r.Get("/matches", s.handleMatchesList)
		r.Post("/matches", s.handleMatchCreate)
		r.Delete("/matches/{matchID}", s.handleMatchDelete)

		r.Get("/standings", s.handleStandings)

		r.Get("/export", s.handleExport)
		r.Post("/import", s.handleImport)
	})

	return r
}
