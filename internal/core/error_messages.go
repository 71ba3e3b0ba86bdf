package core

// error_messages.go maps technical errors to user-friendly messages with
// support codes. When users hit an error, the code lets support staff find
// the cause without seeing the raw error.
//
// Codes are grouped by category:
//
//	SCH001 - Missing column/sheet: a required column or sheet is absent
//	PAR001 - Malformed file: the file could not be parsed at all
//	PAR002 - Empty file: the file has no data rows
//	FIL001 - File too large: upload exceeds the configured size limit
//	FIL002 - No file: no file was attached to the upload
//	SES001 - Session expired: the session id no longer resolves
//	SES002 - No data: report requested before both sources were uploaded
//	UPL001 - System busy: too many concurrent uploads
//	RATE001 - Rate limited: too many requests from one client
//	ERR000 - Fallback when no pattern matches
//
// Patterns are matched case-insensitively with strings.Contains; the first
// match wins, so more specific patterns come before general ones.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	{
		pattern: "missing required columns",
		msg: UserMessage{
			Message: "The file is missing required columns",
			Action:  "Check the error detail for the column names and the file they belong to",
			Code:    "SCH001",
		},
	},
	{
		pattern: "sheet \"",
		msg: UserMessage{
			Message: "The workbook does not contain the expected sheet",
			Action:  "Make sure the inventory sheet is named INFRAESTRUCTURA",
			Code:    "SCH001",
		},
	},
	{
		pattern: "no data rows",
		msg: UserMessage{
			Message: "The file has a header but no data rows",
			Action:  "Re-export the file and upload it again",
			Code:    "PAR002",
		},
	},
	{
		pattern: "cannot parse",
		msg: UserMessage{
			Message: "The file could not be read",
			Action:  "Ensure the inventory is an .xlsx workbook and the status export is a comma-separated CSV",
			Code:    "PAR001",
		},
	},
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "The file exceeds the maximum upload size",
			Action:  "Remove unused columns or split the export",
			Code:    "FIL001",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "The file exceeds the maximum upload size",
			Action:  "Remove unused columns or split the export",
			Code:    "FIL001",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Choose a file before uploading",
			Code:    "FIL002",
		},
	},
	{
		pattern: "session not found",
		msg: UserMessage{
			Message: "Your session has expired",
			Action:  "Upload both files again to start a new session",
			Code:    "SES001",
		},
	},
	{
		pattern: "no data loaded",
		msg: UserMessage{
			Message: "Both source files are needed before a report can be built",
			Action:  "Upload the inventory workbook and the agent status export",
			Code:    "SES002",
		},
	},
	{
		pattern: "too many concurrent uploads",
		msg: UserMessage{
			Message: "The server is busy processing other uploads",
			Action:  "Wait a moment and try again",
			Code:    "UPL001",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again; quote code ERR000 if the problem persists",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Returns the zero UserMessage for a nil error.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}
	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// FormatUserError creates a formatted error string for display:
// "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}
