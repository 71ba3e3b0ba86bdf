package core

// loader_xlsx.go reads the asset inventory workbook. The inventory lives in
// a sheet literally named INFRAESTRUCTURA (configurable); columns are read
// as-is with no schema inference beyond the required-column check.

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LoadInventoryXLSX parses the CMDB workbook into an InventoryTable.
// Eligibility is evaluated once per row against the given rules; the
// hostname is normalized at load so every later comparison is cheap.
// An inventory with zero data rows returns ErrEmptyInput wrapped in a
// ParseError: there is nothing to report on and silently rendering an
// empty dashboard would hide a broken export.
func LoadInventoryXLSX(data []byte, sourceLabel, sheet string, specs []FieldSpec, rules []EligibilityRule) (InventoryTable, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return InventoryTable{}, &ParseError{Source: sourceLabel, Err: err}
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		if strings.Contains(err.Error(), "does not exist") {
			return InventoryTable{}, &SchemaError{Source: sourceLabel, Missing: []string{fmt.Sprintf("sheet %q", sheet)}}
		}
		return InventoryTable{}, &ParseError{Source: sourceLabel, Err: err}
	}
	if len(rows) == 0 {
		return InventoryTable{}, &ParseError{Source: sourceLabel, Err: ErrEmptyInput}
	}

	headerRow := findHeaderInRecords(rows, requiredColumns(specs))
	if headerRow < 0 {
		return InventoryTable{}, &SchemaError{Source: sourceLabel, Missing: missingColumns(rows[0], specs)}
	}

	header := cleanHeader(rows[headerRow])
	idx, err := ValidateHeaders(header, specs, sourceLabel)
	if err != nil {
		return InventoryTable{}, err
	}
	hostPos := idx[strings.ToLower(ColHostname)]

	table := InventoryTable{Columns: header}
	for _, row := range rows[headerRow+1:] {
		if isEmptyRow(row) {
			continue
		}
		fields := rowFields(header, row)
		table.Records = append(table.Records, InventoryRecord{
			Hostname: NormalizeHostname(cellAt(row, hostPos)),
			Eligible: Eligible(fields, rules),
			Fields:   fields,
		})
	}

	if len(table.Records) == 0 {
		return InventoryTable{}, &ParseError{Source: sourceLabel, Err: ErrEmptyInput}
	}
	return table, nil
}
