package web

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jortega/arcboard/internal/logging"
)

// handleUpload ingests one of the two source files into the session.
// The whole file is read into memory (these reports are a few MB at most,
// capped by MaxFileSize) and parsed synchronously; on success the session
// snapshot is swapped and the row count returned.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	sourceKey := chi.URLParam(r, "sourceKey")
	if sourceKey == "" {
		s.respondError(w, r, errors.New("missing source key"))
		return
	}

	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		s.respondError(w, r, errors.New("file too large or invalid form"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, errors.New("no file provided"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, r, errors.New("no file provided"))
		return
	}

	sessionID := s.ensureSession(w, r)

	session, rows, err := s.service.Ingest(r.Context(), sessionID, sourceKey, header.Filename, data)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Info("source loaded",
		"source", sourceKey,
		"file", header.Filename,
		"rows", rows,
		"ready", session.Ready(),
	)

	writeJSON(w, map[string]interface{}{
		"session_id": session.ID,
		"source":     sourceKey,
		"rows":       rows,
		"ready":      session.Ready(),
	})
}
