package web

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"shembeldon-league/internal/league"
	"shembeldon-league/internal/model"
	"shembeldon-league/internal/rules"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const maxImportBytes = 5 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	view := LeagueView{
		Title:     "Shembeldon Tennis League",
		Players:   s.league.Players(),
		Standings: standingViews(s.league.Standings()),
		Weeks:     s.league.Schedule(),
		Unplayed:  s.league.UnplayedFixtures(),
		Matches:   matchViews(s.league.Matches()),
		Notice:    r.URL.Query().Get("notice"),
		Error:     r.URL.Query().Get("error"),
	}
	if err := s.render.HTML(w, http.StatusOK, "league", view); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to render league page")
	}
}

func (s *Server) handlePlayersList(w http.ResponseWriter, r *http.Request) {
	s.render.JSON(w, http.StatusOK, s.league.Players())
}

func (s *Server) handlePlayerAdd(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name string `json:"name"`
	}
	if err := decodeInput(r, &in, func(form url.Values) {
		in.Name = form.Get("name")
	}); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.league.AddPlayer(in.Name); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusCreated, s.league.Players(), "Player added")
}

func (s *Server) handlePlayerRemove(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	// chi matches on RawPath when it is set, leaving the param escaped.
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(name)
		if err != nil {
			s.writeError(w, r, badRequest("invalid player name"))
			return
		}
		name = unescaped
	}
	if err := s.league.RemovePlayer(name); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFixturesList(w http.ResponseWriter, r *http.Request) {
	s.render.JSON(w, http.StatusOK, fixtureViews(s.league.Fixtures()))
}

func (s *Server) handleFixturesUnplayed(w http.ResponseWriter, r *http.Request) {
	s.render.JSON(w, http.StatusOK, s.league.UnplayedFixtures())
}

func (s *Server) handleFixtureAdd(w http.ResponseWriter, r *http.Request) {
	var in model.Fixture
	if err := decodeInput(r, &in, func(form url.Values) {
		in = model.Fixture{
			A:    form.Get("a"),
			B:    form.Get("b"),
			Date: form.Get("date"),
			Week: form.Get("week"),
		}
	}); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.league.AddFixture(in); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusCreated, fixtureViews(s.league.Fixtures()), "Fixture added")
}

func (s *Server) handleFixturesGenerate(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Start string `json:"start"`
	}
	if err := decodeInput(r, &in, func(form url.Values) {
		in.Start = form.Get("start")
	}); err != nil {
		s.writeError(w, r, err)
		return
	}
	start := time.Now()
	if value := strings.TrimSpace(in.Start); value != "" {
		parsed, err := time.Parse("2006-01-02", value)
		if err != nil {
			s.writeError(w, r, badRequest("start must be YYYY-MM-DD"))
			return
		}
		start = parsed
	}
	created, err := s.league.GenerateFixtures(start)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusCreated, created, "Fixtures generated")
}

func (s *Server) handleFixtureRemove(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		s.writeError(w, r, badRequest("fixture index must be a number"))
		return
	}
	if err := s.league.RemoveFixture(index); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	s.render.JSON(w, http.StatusOK, s.league.Schedule())
}

func (s *Server) handleMatchesList(w http.ResponseWriter, r *http.Request) {
	matches := s.league.Matches()
	if player := strings.TrimSpace(r.URL.Query().Get("player")); player != "" {
		filtered := matches[:0]
		for _, m := range matches {
			if m.Involves(player) {
				filtered = append(filtered, m)
			}
		}
		matches = filtered
	}
	s.render.JSON(w, http.StatusOK, matchViews(matches))
}

func (s *Server) handleMatchCreate(w http.ResponseWriter, r *http.Request) {
	var in league.MatchInput
	if err := decodeInput(r, &in, func(form url.Values) {
		in = league.MatchInput{
			Date:     form.Get("date"),
			A:        form.Get("a"),
			B:        form.Get("b"),
			SetsText: form.Get("sets"),
			Notes:    form.Get("notes"),
		}
	}); err != nil {
		s.writeError(w, r, err)
		return
	}
	match, err := s.league.SubmitMatch(in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	log.Ctx(r.Context()).Info().
		Str("match_id", match.ID).
		Str("a", match.A).
		Str("b", match.B).
		Str("winner", string(match.Winner)).
		Msg("Match recorded")
	s.respond(w, r, http.StatusCreated, matchView(match), "Match saved")
}

func (s *Server) handleMatchDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.league.DeleteMatch(chi.URLParam(r, "matchID")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStandings(w http.ResponseWriter, r *http.Request) {
	s.render.JSON(w, http.StatusOK, standingViews(s.league.Standings()))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	raw, err := s.league.Export()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	filename := "shembeldon-league-" + time.Now().Format("2006-01-02") + ".json"
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	s.render.Data(w, http.StatusOK, raw)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		s.writeError(w, r, badRequest("import body too large or unreadable"))
		return
	}
	if err := s.league.Import(raw); err != nil {
		s.writeError(w, r, err)
		return
	}
	log.Ctx(r.Context()).Info().
		Int("players", len(s.league.Players())).
		Int("matches", len(s.league.Matches())).
		Msg("League imported")
	s.render.JSON(w, http.StatusOK, s.league.Snapshot())
}

// respond sends JSON to API clients and redirects browser form posts back home.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int, body any, notice string) {
	if isFormPost(r) {
		http.Redirect(w, r, "/?notice="+url.QueryEscape(notice), http.StatusSeeOther)
		return
	}
	s.render.JSON(w, status, body)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.Ctx(r.Context()).Error().Err(err).Msg("Request failed")
	}
	if isFormPost(r) {
		http.Redirect(w, r, "/?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}
	s.render.JSON(w, status, errorResponse{Error: err.Error()})
}

type badRequestError string

func (e badRequestError) Error() string { return string(e) }

func badRequest(msg string) error { return badRequestError(msg) }

func errorStatus(err error) int {
	var (
		formatErr    *rules.FormatError
		schemaErr    *league.ImportSchemaError
		duplicateErr *league.DuplicatePlayerError
		badReq       badRequestError
	)
	switch {
	case errors.As(err, &duplicateErr):
		return http.StatusConflict
	case errors.Is(err, league.ErrPlayerNotFound),
		errors.Is(err, league.ErrMatchNotFound),
		errors.Is(err, league.ErrFixtureNotFound):
		return http.StatusNotFound
	case errors.As(err, &formatErr),
		errors.As(err, &schemaErr),
		errors.As(err, &badReq),
		errors.Is(err, league.ErrEmptyName),
		errors.Is(err, league.ErrSamePlayers),
		errors.Is(err, rules.ErrTooFewPlayers):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func isFormPost(r *http.Request) bool {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return mediaType == "application/x-www-form-urlencoded"
}

// decodeInput reads a JSON body, or falls back to fromForm for browser form posts.
func decodeInput(r *http.Request, dst any, fromForm func(url.Values)) error {
	if isFormPost(r) {
		if err := r.ParseForm(); err != nil {
			return badRequest("invalid form body")
		}
		fromForm(r.PostForm)
		return nil
	}
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return badRequest("invalid JSON body")
	}
	return nil
}
