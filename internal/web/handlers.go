package web

import (
	"net/http"

	"github.com/jortega/arcboard/internal/core"
	"github.com/jortega/arcboard/internal/web/templates"
)

// sessionCookie carries the session id between requests. The cookie is
// scoped to the host and dies with the browser session; there is nothing
// to steal in it beyond a random id for in-memory tables.
const sessionCookie = "arcboard_session"

// handleDashboard renders the full dashboard page and makes sure the
// visitor has a session to upload into.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.ensureSession(w, r)

	sources := make([]core.SourceInfo, 0, core.SourceCount())
	for _, def := range core.Sources() {
		sources = append(sources, def.Info)
	}

	filterColumns := []string{
		core.ColCategory,
		core.ColAgentStatus,
		"Sistema operativo",
		"Estado operativo",
		"Entorno",
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	templates.Dashboard(sources, filterColumns).Render(r.Context(), w)
}

// handleSummaryFragment renders the summary cards for the current filters.
func (s *Server) handleSummaryFragment(w http.ResponseWriter, r *http.Request) {
	id, err := s.sessionID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	summary, err := s.service.Summary(id, parseFilters(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	templates.SummaryCards(summary).Render(r.Context(), w)
}

// handleResultsFragment renders the filtered results table. Zero rows is
// not an error: the empty-state message renders with status 200.
func (s *Server) handleResultsFragment(w http.ResponseWriter, r *http.Request) {
	id, err := s.sessionID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	report, err := s.service.Report(id, parseFilters(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	templates.ResultsTable(report, s.service.DisplayColumns(report)).Render(r.Context(), w)
}

// ensureSession returns the request's session id, creating a session and
// setting the cookie when the visitor has none.
func (s *Server) ensureSession(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		if _, err := s.service.Session(c.Value); err == nil {
			return c.Value
		}
	}

	session := s.service.NewSession()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return session.ID
}

// sessionID resolves the request's session id without creating one.
func (s *Server) sessionID(r *http.Request) (string, error) {
	c, err := r.Cookie(sessionCookie)
	if err != nil || c.Value == "" {
		return "", core.ErrSessionNotFound
	}
	return c.Value, nil
}
