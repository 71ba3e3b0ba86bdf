package core

// export.go serializes a filtered report back to downloadable files.
// Three formats are supported, matching the original report downloads:
// a single CSV, a ZIP with separate with/without-agent CSVs, and an XLSX
// workbook with one sheet per group.

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Sheet and file names used by the grouped exports. The Spanish sheet
// names are kept for continuity with the report consumers.
const (
	SheetWithAgent    = "Con Agente"
	SheetWithoutAgent = "Sin Agente"
	FileWithAgent     = "servers_with_agent.csv"
	FileWithoutAgent  = "servers_without_agent.csv"
)

// ExportCSV writes the report as a single CSV restricted to cols.
// When cols is empty the report's own column set is used.
func ExportCSV(report Report, cols []string) ([]byte, error) {
	if len(cols) == 0 {
		cols = report.Columns
	}
	var buf bytes.Buffer
	if err := writeCSV(&buf, report.Rows, cols); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportZip writes the report as a ZIP holding two CSVs: rows whose
// category implies an installed agent and rows without one.
func ExportZip(report Report, cols []string) ([]byte, error) {
	if len(cols) == 0 {
		cols = report.Columns
	}
	withAgent, withoutAgent := splitByAgent(report.Rows)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, part := range []struct {
		name string
		rows []JoinedRecord
	}{
		{FileWithAgent, withAgent},
		{FileWithoutAgent, withoutAgent},
	} {
		w, err := zw.Create(part.name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", part.name, err)
		}
		if err := writeCSV(w, part.rows, cols); err != nil {
			return nil, fmt.Errorf("write %s: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportXLSX writes the report as a workbook with one sheet per agent
// group, mirroring the ZIP layout.
func ExportXLSX(report Report, cols []string) ([]byte, error) {
	if len(cols) == 0 {
		cols = report.Columns
	}
	withAgent, withoutAgent := splitByAgent(report.Rows)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetWithAgent); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(SheetWithoutAgent); err != nil {
		return nil, err
	}

	for _, part := range []struct {
		sheet string
		rows  []JoinedRecord
	}{
		{SheetWithAgent, withAgent},
		{SheetWithoutAgent, withoutAgent},
	} {
		if err := writeSheet(f, part.sheet, part.rows, cols); err != nil {
			return nil, fmt.Errorf("write sheet %s: %w", part.sheet, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func splitByAgent(rows []JoinedRecord) (withAgent, withoutAgent []JoinedRecord) {
	for _, rec := range rows {
		if rec.Category.HasAgent() {
			withAgent = append(withAgent, rec)
		} else {
			withoutAgent = append(withoutAgent, rec)
		}
	}
	return withAgent, withoutAgent
}

func writeCSV(w io.Writer, rows []JoinedRecord, cols []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(cols); err != nil {
		return err
	}
	record := make([]string, len(cols))
	for _, rec := range rows {
		for i, col := range cols {
			record[i] = rec.Value(col)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeSheet(f *excelize.File, sheet string, rows []JoinedRecord, cols []string) error {
	headerCells := make([]interface{}, len(cols))
	for i, col := range cols {
		headerCells[i] = col
	}
	if err := setRow(f, sheet, 1, headerCells); err != nil {
		return err
	}
	for n, rec := range rows {
		cells := make([]interface{}, len(cols))
		for i, col := range cols {
			cells[i] = rec.Value(col)
		}
		if err := setRow(f, sheet, n+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &cells)
}
