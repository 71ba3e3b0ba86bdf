package core

// service.go is the facade the web layer talks to. It owns the session
// store and the upload limiter and wires the loaders, matcher and filter
// layer together. Every caller-visible operation recomputes from the
// session's immutable snapshot; nothing here mutates loaded tables.

import (
	"context"
	"fmt"
	"time"
)

// Source registry keys for the two inputs.
const (
	SourceInventory = "inventory"
	SourceStatus    = "status"
)

// ServiceConfig carries the settings the service needs from the
// application configuration.
type ServiceConfig struct {
	InventorySheet   string            // Sheet name holding the inventory
	EligibilityRules []EligibilityRule // Scope rules for inventory rows
	DisplayColumns   []string          // Column set shown and exported
	MaxFileSize      int64             // Upload size cap in bytes
	MaxConcurrent    int               // Parallel upload parsing cap
	MaxWaitTime      time.Duration     // Wait for an upload slot
	SessionTTL       time.Duration     // Idle session lifetime
}

// Service provides the core operations for the compliance dashboard.
type Service struct {
	cfg      ServiceConfig
	sessions *SessionStore
	limiter  *UploadLimiter
}

// NewService creates a Service with its session store and upload limiter.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		cfg:      cfg,
		sessions: NewSessionStore(cfg.SessionTTL),
		limiter:  NewUploadLimiter(cfg.MaxConcurrent, cfg.MaxWaitTime),
	}
}

// NewSession registers a fresh empty session.
func (s *Service) NewSession() *Session {
	return s.sessions.Create()
}

// Session resolves a session id.
func (s *Service) Session(id string) (*Session, error) {
	return s.sessions.Get(id)
}

// ActiveUploads returns how many uploads are currently being parsed.
func (s *Service) ActiveUploads() int {
	return s.limiter.ActiveCount()
}

// WaitForUploads blocks until in-flight uploads drain; used on shutdown.
func (s *Service) WaitForUploads(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}

// Ingest parses an uploaded file for the given source key and swaps it
// into the session, returning the updated snapshot and the number of data
// rows loaded.
func (s *Service) Ingest(ctx context.Context, sessionID, sourceKey, fileName string, data []byte) (*Session, int, error) {
	if int64(len(data)) > s.cfg.MaxFileSize {
		return nil, 0, fmt.Errorf("file too large: %d bytes (limit %d)", len(data), s.cfg.MaxFileSize)
	}

	def, ok := GetSource(sourceKey)
	if !ok {
		return nil, 0, fmt.Errorf("unknown source %q", sourceKey)
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, 0, err
	}
	defer s.limiter.Release()

	label := fileName
	if label == "" {
		label = def.Info.Label
	}

	switch def.Info.Key {
	case SourceInventory:
		table, err := LoadInventoryXLSX(data, label, s.cfg.InventorySheet, def.FieldSpecs, s.cfg.EligibilityRules)
		if err != nil {
			return nil, 0, err
		}
		session, err := s.sessions.SetInventory(sessionID, table)
		if err != nil {
			return nil, 0, err
		}
		return session, len(table.Records), nil

	case SourceStatus:
		table, err := LoadStatusCSV(data, label, def.FieldSpecs)
		if err != nil {
			return nil, 0, err
		}
		session, err := s.sessions.SetStatus(sessionID, table)
		if err != nil {
			return nil, 0, err
		}
		return session, len(table.Records), nil
	}

	return nil, 0, fmt.Errorf("unknown source %q", sourceKey)
}

// Report returns the session's classified report filtered by filters.
// ErrNoData is returned until both sources are uploaded.
func (s *Service) Report(sessionID string, filters FilterSet) (Report, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return Report{}, err
	}
	if !session.Ready() {
		return Report{}, ErrNoData
	}
	return Apply(*session.Report, filters), nil
}

// Summary returns the headline metrics for the filtered report.
func (s *Service) Summary(sessionID string, filters FilterSet) (Summary, error) {
	report, err := s.Report(sessionID, filters)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(report), nil
}

// FilterOptions returns the distinct values of a column for dropdowns,
// computed over the unfiltered report.
func (s *Service) FilterOptions(sessionID, column string) ([]string, error) {
	report, err := s.Report(sessionID, FilterSet{})
	if err != nil {
		return nil, err
	}
	return Options(report, column), nil
}

// DisplayColumns returns the configured display column set, falling back
// to the report's own columns when unset.
func (s *Service) DisplayColumns(report Report) []string {
	if len(s.cfg.DisplayColumns) > 0 {
		return s.cfg.DisplayColumns
	}
	return report.Columns
}

// Export serializes the filtered report in the requested format:
// "csv", "zip" or "xlsx". The exported column set matches the display.
func (s *Service) Export(sessionID, format string, filters FilterSet) (data []byte, contentType, fileName string, err error) {
	report, err := s.Report(sessionID, filters)
	if err != nil {
		return nil, "", "", err
	}
	cols := s.DisplayColumns(report)

	switch format {
	case "csv":
		data, err = ExportCSV(report, cols)
		return data, "text/csv", "compliance_report.csv", err
	case "zip":
		data, err = ExportZip(report, cols)
		return data, "application/zip", "compliance_report.zip", err
	case "xlsx":
		data, err = ExportXLSX(report, cols)
		return data, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "compliance_report.xlsx", err
	}
	return nil, "", "", fmt.Errorf("unknown export format %q", format)
}
