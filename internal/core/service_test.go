package core

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

var registerSourcesOnce sync.Once

// registerTestSources mirrors the production source definitions for the
// service round-trip tests.
func registerTestSources() {
	registerSourcesOnce.Do(func() {
		Register(SourceDefinition{
			Info: SourceInfo{Key: SourceInventory, Label: "CMDB.xlsx", Kind: KindXLSX},
			FieldSpecs: []FieldSpec{
				{Name: "Hostname", Required: true},
				{Name: "Familia SO"},
				{Name: "Capacidad Primaria"},
			},
		})
		Register(SourceDefinition{
			Info: SourceInfo{Key: SourceStatus, Label: "AzureArc.csv", Kind: KindCSV},
			FieldSpecs: []FieldSpec{
				{Name: "HOST NAME", Required: true},
				{Name: "NAME", Required: true},
				{Name: ColAgentStatus, Required: true},
			},
		})
	})
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	registerTestSources()
	return NewService(ServiceConfig{
		InventorySheet:   "INFRAESTRUCTURA",
		EligibilityRules: windowsServerRules,
		MaxFileSize:      1 << 20,
		MaxConcurrent:    2,
		MaxWaitTime:      time.Second,
		SessionTTL:       time.Hour,
	})
}

func loadBoth(t *testing.T, svc *Service, sessionID string) {
	t.Helper()
	ctx := context.Background()

	workbook := buildWorkbook(t, "INFRAESTRUCTURA", [][]interface{}{
		{"Hostname", "Familia SO", "Capacidad Primaria"},
		{"SRV1", "Windows Server 2019", "Servidor"},
		{"srv2", "Windows Server 2022", "Servidor"},
		{"lnx1", "Linux", "Servidor"},
	})
	if _, _, err := svc.Ingest(ctx, sessionID, SourceInventory, "CMDB.xlsx", workbook); err != nil {
		t.Fatalf("Ingest(inventory) error = %v", err)
	}

	csvData := []byte("HOST NAME,NAME,ARC AGENT STATUS\nsrv1,srv1.corp,Connected\nsrv2,srv2.corp,Offline\n")
	if _, _, err := svc.Ingest(ctx, sessionID, SourceStatus, "AzureArc.csv", csvData); err != nil {
		t.Fatalf("Ingest(status) error = %v", err)
	}
}

func TestService_UploadReportRoundTrip(t *testing.T) {
	svc := newTestService(t)
	session := svc.NewSession()

	if _, err := svc.Report(session.ID, FilterSet{}); !errors.Is(err, ErrNoData) {
		t.Fatalf("Report() before uploads = %v, want ErrNoData", err)
	}

	loadBoth(t, svc, session.ID)

	report, err := svc.Report(session.ID, FilterSet{})
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if len(report.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(report.Rows))
	}

	wantCategories := map[string]Category{
		"srv1": Compliant,
		"srv2": Offline,
		"lnx1": Ineligible,
	}
	for _, row := range report.Rows {
		host := row.Inventory.Hostname
		if row.Category != wantCategories[host] {
			t.Errorf("category for %s = %v, want %v", host, row.Category, wantCategories[host])
		}
	}
}

func TestService_SummaryAndOptions(t *testing.T) {
	svc := newTestService(t)
	session := svc.NewSession()
	loadBoth(t, svc, session.ID)

	summary, err := svc.Summary(session.ID, FilterSet{})
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if summary.Total != 3 || summary.WithAgent != 2 {
		t.Errorf("summary = %d total / %d with agent, want 3/2", summary.Total, summary.WithAgent)
	}

	options, err := svc.FilterOptions(session.ID, ColCategory)
	if err != nil {
		t.Fatalf("FilterOptions() error = %v", err)
	}
	want := []string{"Compliant", "Ineligible", "Offline"}
	if len(options) != len(want) {
		t.Fatalf("options = %v, want %v", options, want)
	}
	for i := range want {
		if options[i] != want[i] {
			t.Errorf("options[%d] = %q, want %q", i, options[i], want[i])
		}
	}
}

func TestService_FilteredReport(t *testing.T) {
	svc := newTestService(t)
	session := svc.NewSession()
	loadBoth(t, svc, session.ID)

	filters := FilterSet{Include: map[string][]string{ColCategory: {"Compliant"}}}
	report, err := svc.Report(session.ID, filters)
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if len(report.Rows) != 1 || report.Rows[0].Inventory.Hostname != "srv1" {
		t.Errorf("filtered rows = %v, want only srv1", hostnames(report))
	}
}

func TestService_Export(t *testing.T) {
	svc := newTestService(t)
	session := svc.NewSession()
	loadBoth(t, svc, session.ID)

	for _, tt := range []struct {
		format   string
		wantType string
		wantName string
	}{
		{"csv", "text/csv", "compliance_report.csv"},
		{"zip", "application/zip", "compliance_report.zip"},
		{"xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "compliance_report.xlsx"},
	} {
		data, contentType, fileName, err := svc.Export(session.ID, tt.format, FilterSet{})
		if err != nil {
			t.Fatalf("Export(%s) error = %v", tt.format, err)
		}
		if len(data) == 0 {
			t.Errorf("Export(%s) produced no bytes", tt.format)
		}
		if contentType != tt.wantType || fileName != tt.wantName {
			t.Errorf("Export(%s) = %q %q, want %q %q", tt.format, contentType, fileName, tt.wantType, tt.wantName)
		}
	}

	if _, _, _, err := svc.Export(session.ID, "pdf", FilterSet{}); err == nil {
		t.Error("Export(pdf) should fail")
	}
}

func TestService_IngestErrors(t *testing.T) {
	svc := newTestService(t)
	session := svc.NewSession()
	ctx := context.Background()

	if _, _, err := svc.Ingest(ctx, session.ID, "nope", "x.csv", []byte("a")); err == nil {
		t.Error("Ingest with unknown source should fail")
	}

	big := make([]byte, (1<<20)+1)
	if _, _, err := svc.Ingest(ctx, session.ID, SourceStatus, "x.csv", big); err == nil ||
		!strings.Contains(err.Error(), "file too large") {
		t.Errorf("oversize Ingest error = %v, want file-too-large", err)
	}

	if _, _, err := svc.Ingest(ctx, "missing", SourceStatus, "x.csv",
		[]byte("HOST NAME,NAME,ARC AGENT STATUS\nsrv1,,Connected\n")); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Ingest into unknown session = %v, want ErrSessionNotFound", err)
	}
}

func TestService_DisplayColumnsFallback(t *testing.T) {
	registerTestSources()
	svc := NewService(ServiceConfig{MaxFileSize: 1 << 20})
	report := Report{Columns: []string{ColHostname, ColCategory}}

	got := svc.DisplayColumns(report)
	if len(got) != 2 || got[0] != ColHostname {
		t.Errorf("DisplayColumns() = %v, want report columns", got)
	}

	svc = NewService(ServiceConfig{DisplayColumns: []string{ColHostname}})
	if got := svc.DisplayColumns(report); len(got) != 1 {
		t.Errorf("DisplayColumns() = %v, want configured set", got)
	}
}
