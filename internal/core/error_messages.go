package core

// error_messages.go maps technical errors to messages a user can act on.
//
// Codes by category:
//
//	FILE001  file too large          "file too large", "request body too large"
//	FILE002  invalid workbook        "invalid workbook"
//	FILE004  no file selected        "no file provided"
//	UPL002   system busy             "too many uploads"
//	UPL004   request cancelled       "context canceled"
//	UPL005   request timed out       "context deadline exceeded"
//	UPL006   upload superseded       "upload superseded"
//	SES001   session not found       "session not found"
//	REQ001   invalid input           "invalid input"
//	RATE001  rate limited            "rate limit"
//	AUTH001  unauthorized            "api key"
//	ERR000   anything else
//
// Known sentinels are matched with errors.Is first. Anything else falls back
// to the patterns, matched case-insensitively with strings.Contains; the
// first match wins, so specific patterns come before general ones.

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/JonMunkholm/ledgerview/internal/sheet"
)

// UserMessage is what the UI shows for an error.
type UserMessage struct {
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "The file exceeds the maximum upload size",
			Action:  "Remove unused sheets or rows and try again",
			Code:    "FILE001",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "The file exceeds the maximum upload size",
			Action:  "Remove unused sheets or rows and try again",
			Code:    "FILE001",
		},
	},
	{
		pattern: "invalid workbook",
		msg: UserMessage{
			Message: "The file could not be read as a spreadsheet",
			Action:  "Upload an .xlsx or .xls workbook saved by Excel or LibreOffice",
			Code:    "FILE002",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Choose an XLSX file to upload",
			Code:    "FILE004",
		},
	},
	{
		pattern: "too many uploads",
		msg: UserMessage{
			Message: "The server is busy reading other files",
			Action:  "Please wait a moment and try again",
			Code:    "UPL002",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "The upload was cancelled",
			Action:  "Please try again",
			Code:    "UPL004",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Reading the file took too long",
			Action:  "Try a smaller file or check your connection",
			Code:    "UPL005",
		},
	},
	{
		pattern: "upload superseded",
		msg: UserMessage{
			Message: "A newer upload replaced this one",
			Action:  "The most recently selected file is shown",
			Code:    "UPL006",
		},
	},
	{
		pattern: "session not found",
		msg: UserMessage{
			Message: "Your session has expired",
			Action:  "Reload the page and upload the file again",
			Code:    "SES001",
		},
	},
	{
		pattern: "invalid input",
		msg: UserMessage{
			Message: "The request contained an invalid value",
			Action:  "Pick a fund from the list or reset the filter",
			Code:    "REQ001",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
	{
		pattern: "api key",
		msg: UserMessage{
			Message: "Missing or invalid API key",
			Action:  "Send a valid key in the X-API-Key header",
			Code:    "AUTH001",
		},
	},
}

// sentinelCodes ties wrapped sentinels to their catalogue code, so text
// around them (a file name, say) cannot pick a different entry.
var sentinelCodes = []struct {
	err  error
	code string
}{
	{ErrFileTooLarge, "FILE001"},
	{sheet.ErrDecode, "FILE002"},
	{ErrNoFile, "FILE004"},
	{ErrTooManyUploads, "UPL002"},
	{ErrSuperseded, "UPL006"},
	{ErrSessionNotFound, "SES001"},
	{context.DeadlineExceeded, "UPL005"},
	{context.Canceled, "UPL004"},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError returns the catalogue entry for err: by sentinel if err wraps
// one, else the first entry whose pattern occurs in its text, else the
// ERR000 fallback. A nil error maps to the zero UserMessage.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, sc := range sentinelCodes {
		if errors.Is(err, sc.err) {
			return messageFor(sc.code)
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

func messageFor(code string) UserMessage {
	for _, ep := range errorPatterns {
		if ep.msg.Code == code {
			return ep.msg
		}
	}
	return defaultMessage
}

// FormatUserError renders "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// UserError carries the technical error for logs and the mapped message for display.
type UserError struct {
	Technical error
	User      UserMessage
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err; it returns nil for a nil err.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
