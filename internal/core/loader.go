package core

// loader.go reads the agent-status CSV export and provides the shared
// helpers for header discovery and cell cleanup used by both loaders.
//
// Files exported from Excel or portal downloads are messy: BOMs, formula
// prefixes (="..."), stray blank rows above the header, inconsistent field
// counts. The loaders tolerate all of that and validate only what the
// report actually needs: the required columns.

import (
	"bytes"
	"encoding/csv"
	"strings"
	"unicode/utf8"
)

// MaxHeaderSearchRows is the maximum number of rows scanned for the header.
var MaxHeaderSearchRows = 20

// LoadStatusCSV parses the monitoring export into a StatusTable.
// Required columns are validated against the given specs; a missing column
// yields a SchemaError naming it, a malformed file yields a ParseError.
// A file with a valid header and zero data rows is legal: it just means no
// agents are installed anywhere.
func LoadStatusCSV(data []byte, sourceLabel string, specs []FieldSpec) (StatusTable, error) {
	data = sanitizeUTF8(data)

	records, err := parseCSV(data)
	if err != nil {
		return StatusTable{}, &ParseError{Source: sourceLabel, Err: err}
	}
	if len(records) == 0 {
		return StatusTable{}, &ParseError{Source: sourceLabel, Err: ErrEmptyInput}
	}

	headerRow := findHeaderInRecords(records, requiredColumns(specs))
	if headerRow < 0 {
		return StatusTable{}, &SchemaError{Source: sourceLabel, Missing: missingColumns(records[0], specs)}
	}

	header := cleanHeader(records[headerRow])
	idx, err := ValidateHeaders(header, specs, sourceLabel)
	if err != nil {
		return StatusTable{}, err
	}

	hostPos := idx["host name"]
	namePos := idx["name"]
	statusPos := idx[strings.ToLower(ColAgentStatus)]

	table := StatusTable{Columns: header}
	for _, row := range records[headerRow+1:] {
		if isEmptyRow(row) {
			continue
		}
		table.Records = append(table.Records, AgentStatusRecord{
			HostName: cellAt(row, hostPos),
			Name:     cellAt(row, namePos),
			Status:   cellAt(row, statusPos),
			Fields:   rowFields(header, row),
		})
	}
	return table, nil
}

// ValidateHeaders checks that every required column is present and returns
// a lowercase name -> position index. The error is a SchemaError listing
// all missing columns at once so the user can fix the file in one pass.
func ValidateHeaders(header []string, specs []FieldSpec, sourceLabel string) (HeaderIndex, error) {
	idx := MakeHeaderIndex(header)
	var missing []string
	for _, spec := range specs {
		if !spec.Required {
			continue
		}
		if _, ok := idx[strings.ToLower(spec.Name)]; !ok {
			missing = append(missing, spec.Name)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Source: sourceLabel, Missing: missing}
	}
	return idx, nil
}

// MakeHeaderIndex creates a HeaderIndex from a header row. Keys are
// lowercased for case-insensitive matching.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		idx[strings.ToLower(CleanCell(h))] = i
	}
	return idx
}

// CleanCell removes common export artifacts from a cell value:
// surrounding whitespace, Excel formula prefixes (="...") and stray quotes.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}
	return strings.Trim(s, `"'`)
}

// rowFields maps header names to cleaned cell values for one data row.
// Short rows leave trailing columns absent.
func rowFields(header []string, row []string) map[string]string {
	fields := make(map[string]string, len(header))
	for i, col := range header {
		if i >= len(row) {
			break
		}
		fields[col] = CleanCell(row[i])
	}
	return fields
}

// cellAt returns the cleaned cell at pos, or "" when the row is short.
func cellAt(row []string, pos int) string {
	if pos < 0 || pos >= len(row) {
		return ""
	}
	return CleanCell(row[pos])
}

func parseCSV(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.ReadAll()
}

func sanitizeUTF8(data []byte) []byte {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune('�')
			data = data[1:]
		} else {
			buf.WriteRune(r)
			data = data[size:]
		}
	}
	return buf.Bytes()
}

// findHeaderInRecords scans the first MaxHeaderSearchRows rows for one that
// contains every required column, returning its index or -1.
func findHeaderInRecords(records [][]string, required []string) int {
	maxRows := MaxHeaderSearchRows
	if len(records) < maxRows {
		maxRows = len(records)
	}
	for i := 0; i < maxRows; i++ {
		if containsHeaders(records[i], required) {
			return i
		}
	}
	return -1
}

// containsHeaders reports whether row contains every wanted column name,
// in any order, compared case-insensitively after cleanup.
func containsHeaders(row []string, wanted []string) bool {
	idx := MakeHeaderIndex(row)
	for _, w := range wanted {
		if _, ok := idx[strings.ToLower(w)]; !ok {
			return false
		}
	}
	return true
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func cleanHeader(row []string) []string {
	out := make([]string, len(row))
	for i, h := range row {
		out[i] = CleanCell(h)
	}
	return out
}

func requiredColumns(specs []FieldSpec) []string {
	var cols []string
	for _, spec := range specs {
		if spec.Required {
			cols = append(cols, spec.Name)
		}
	}
	return cols
}

func missingColumns(header []string, specs []FieldSpec) []string {
	idx := MakeHeaderIndex(header)
	var missing []string
	for _, spec := range specs {
		if !spec.Required {
			continue
		}
		if _, ok := idx[strings.ToLower(spec.Name)]; !ok {
			missing = append(missing, spec.Name)
		}
	}
	if len(missing) == 0 {
		// Header was never found within the search window; report all
		// required columns as missing rather than nothing.
		missing = requiredColumns(specs)
	}
	return missing
}
