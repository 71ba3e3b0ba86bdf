package core

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func exportReport() Report {
	connected := statusRecord("srv1", StatusConnected)
	return Report{
		Columns: []string{ColHostname, ColAgentStatus, ColCategory},
		Rows: []JoinedRecord{
			{Inventory: invRecord("srv1", true), Status: &connected, Category: Compliant},
			{Inventory: invRecord("srv2", true), Category: NotInstalled},
		},
	}
}

func TestExportCSV(t *testing.T) {
	data, err := ExportCSV(exportReport(), nil)
	if err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows", len(records))
	}
	if records[0][2] != ColCategory {
		t.Errorf("header = %v", records[0])
	}
	if records[1][2] != "Compliant" || records[2][2] != "Not Installed" {
		t.Errorf("categories = %q, %q", records[1][2], records[2][2])
	}
}

func TestExportCSV_RestrictsToDisplayColumns(t *testing.T) {
	data, err := ExportCSV(exportReport(), []string{ColHostname})
	if err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if len(records[0]) != 1 || records[0][0] != ColHostname {
		t.Errorf("header = %v, want [Hostname]", records[0])
	}
}

func TestExportZip_SplitsByAgentPresence(t *testing.T) {
	data, err := ExportZip(exportReport(), nil)
	if err != nil {
		t.Fatalf("ExportZip() error = %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip open: %v", err)
	}

	files := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		var buf bytes.Buffer
		buf.ReadFrom(rc)
		rc.Close()
		files[f.Name] = buf.String()
	}

	withAgent, ok := files[FileWithAgent]
	if !ok {
		t.Fatalf("zip lacks %s; has %v", FileWithAgent, zr.File)
	}
	if !strings.Contains(withAgent, "srv1") || strings.Contains(withAgent, "srv2") {
		t.Errorf("%s content wrong:\n%s", FileWithAgent, withAgent)
	}

	withoutAgent, ok := files[FileWithoutAgent]
	if !ok {
		t.Fatalf("zip lacks %s", FileWithoutAgent)
	}
	if !strings.Contains(withoutAgent, "srv2") || strings.Contains(withoutAgent, "srv1,") {
		t.Errorf("%s content wrong:\n%s", FileWithoutAgent, withoutAgent)
	}
}

func TestExportXLSX_TwoSheets(t *testing.T) {
	data, err := ExportXLSX(exportReport(), nil)
	if err != nil {
		t.Fatalf("ExportXLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("re-open workbook: %v", err)
	}
	defer f.Close()

	for _, sheet := range []string{SheetWithAgent, SheetWithoutAgent} {
		if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
			t.Fatalf("workbook lacks sheet %q", sheet)
		}
	}

	rows, err := f.GetRows(SheetWithAgent)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("%s has %d rows, want header + srv1", SheetWithAgent, len(rows))
	}
	if rows[1][0] != "srv1" {
		t.Errorf("row = %v, want srv1 first", rows[1])
	}
}
