package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jortega/arcboard/internal/core"
)

// reportRow is the JSON projection of one joined record, restricted to the
// display columns.
type reportRow map[string]string

// handleListSources returns the registered source definitions so clients
// can discover expected columns and file kinds.
func (s *Server) handleListSources(w http.ResponseWriter, r *http.Request) {
	infos := make([]core.SourceInfo, 0, core.SourceCount())
	for _, def := range core.Sources() {
		infos = append(infos, def.Info)
	}
	writeJSON(w, infos)
}

// handleReport returns the filtered report as JSON.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
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

	cols := s.service.DisplayColumns(report)
	rows := make([]reportRow, len(report.Rows))
	for i, rec := range report.Rows {
		row := make(reportRow, len(cols))
		for _, col := range cols {
			row[col] = rec.Value(col)
		}
		rows[i] = row
	}

	writeJSON(w, map[string]interface{}{
		"columns": cols,
		"rows":    rows,
		"total":   len(rows),
	})
}

// handleSummary returns the headline metrics for the filtered report.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
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
	writeJSON(w, summary)
}

// handleFilterOptions returns the distinct values of a column, computed
// over the unfiltered report, for populating filter dropdowns.
func (s *Server) handleFilterOptions(w http.ResponseWriter, r *http.Request) {
	column := chi.URLParam(r, "column")
	if column == "" {
		s.respondError(w, r, errors.New("missing column"))
		return
	}
	id, err := s.sessionID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	opts, err := s.service.FilterOptions(id, column)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if opts == nil {
		opts = []string{}
	}
	writeJSON(w, opts)
}

// handleExport streams the filtered report as a download in the requested
// format (csv, zip or xlsx).
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	id, err := s.sessionID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}

	data, contentType, fileName, err := s.service.Export(id, format, parseFilters(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, fileName))
	w.Write(data)
}

// parseFilters builds a FilterSet from repeated "include.<col>" and
// "exclude.<col>" query parameters. Unknown parameters are ignored; an
// empty query means no restriction.
func parseFilters(r *http.Request) core.FilterSet {
	filters := core.FilterSet{
		Include: make(map[string][]string),
		Exclude: make(map[string][]string),
	}
	for key, vals := range r.URL.Query() {
		col, target := "", map[string][]string(nil)
		switch {
		case strings.HasPrefix(key, "include."):
			col, target = strings.TrimPrefix(key, "include."), filters.Include
		case strings.HasPrefix(key, "exclude."):
			col, target = strings.TrimPrefix(key, "exclude."), filters.Exclude
		default:
			continue
		}
		for _, v := range vals {
			if v = strings.TrimSpace(v); v != "" {
				target[col] = append(target[col], v)
			}
		}
	}
	return filters
}
