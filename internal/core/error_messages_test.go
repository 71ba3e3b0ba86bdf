package core

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{
			name:     "missing columns",
			err:      &SchemaError{Source: "AzureArc.csv", Missing: []string{"HOST NAME"}},
			wantCode: "SCH001",
		},
		{
			name:     "missing sheet",
			err:      &SchemaError{Source: "CMDB.xlsx", Missing: []string{`sheet "INFRAESTRUCTURA"`}},
			wantCode: "SCH001",
		},
		{
			name:     "empty file",
			err:      &ParseError{Source: "CMDB.xlsx", Err: fmt.Errorf("%w: no data rows", ErrEmptyInput)},
			wantCode: "PAR002",
		},
		{
			name:     "malformed file",
			err:      &ParseError{Source: "AzureArc.csv", Err: errors.New("record on line 3: wrong number of fields")},
			wantCode: "PAR001",
		},
		{
			name:     "file too large",
			err:      errors.New("file too large: 80000000 bytes"),
			wantCode: "FIL001",
		},
		{
			name:     "body limit hit",
			err:      errors.New("http: request body too large"),
			wantCode: "FIL001",
		},
		{
			name:     "no file attached",
			err:      errors.New("no file provided"),
			wantCode: "FIL002",
		},
		{
			name:     "expired session",
			err:      ErrSessionNotFound,
			wantCode: "SES001",
		},
		{
			name:     "report before uploads",
			err:      ErrNoData,
			wantCode: "SES002",
		},
		{
			name:     "upload limiter saturated",
			err:      ErrTooManyUploads,
			wantCode: "UPL001",
		},
		{
			name:     "rate limited",
			err:      errors.New("rate limit exceeded"),
			wantCode: "RATE001",
		},
		{
			name:     "unknown error",
			err:      errors.New("something odd"),
			wantCode: "ERR000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError(%v).Code = %s, want %s", tt.err, got.Code, tt.wantCode)
			}
			if got.Message == "" || got.Action == "" {
				t.Errorf("MapError(%v) has empty message or action: %+v", tt.err, got)
			}
		})
	}
}

func TestMapError_Nil(t *testing.T) {
	if got := MapError(nil); got != (UserMessage{}) {
		t.Errorf("MapError(nil) = %+v, want zero value", got)
	}
}

func TestFormatUserError(t *testing.T) {
	got := FormatUserError(ErrSessionNotFound)
	if !strings.Contains(got, "SES001") {
		t.Errorf("FormatUserError() = %q, want the support code included", got)
	}
	if FormatUserError(nil) != "" {
		t.Error("FormatUserError(nil) should be empty")
	}
}
