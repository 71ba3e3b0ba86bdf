package core

// errors.go defines the error taxonomy for the loading and filtering
// boundary. All of these are converted to user-facing messages by MapError;
// none are fatal to the process, the user can re-upload and retry within
// the same session.

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyInput is returned when a source file contains a valid header but
// zero data rows where at least one is required.
var ErrEmptyInput = errors.New("file has no data rows")

// ErrSessionNotFound is returned when a session id does not resolve to a
// live session (expired or never created).
var ErrSessionNotFound = errors.New("session not found")

// ErrNoData is returned when a report is requested before both source
// files have been uploaded.
var ErrNoData = errors.New("no data loaded: upload both source files first")

// SchemaError reports a required column or sheet missing from a source
// file. The message names the missing pieces and the file they were
// expected in, so it can be surfaced to the user as-is.
type SchemaError struct {
	Source  string   // Source label: "CMDB.xlsx", "AzureArc.csv"
	Missing []string // Missing column names (or "sheet NAME")
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns in %s: %s", e.Source, strings.Join(e.Missing, ", "))
}

// ParseError reports an unreadable or malformed source file.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsSchemaError reports whether err is (or wraps) a SchemaError.
func IsSchemaError(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}

// IsParseError reports whether err is (or wraps) a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
