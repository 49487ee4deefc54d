package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/JonMunkholm/ledgerview/internal/sheet"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"nil error", nil, ""},
		{"file too large", errors.New("file too large: 12 MB"), "FILE001"},
		{"body too large", errors.New("http: request body too large"), "FILE001"},
		{"decode error", &sheet.DecodeError{Format: sheet.FormatXLSX, Err: errors.New("zip: not a valid zip file")}, "FILE002"},
		{"no file", ErrNoFile, "FILE004"},
		{"limiter", ErrTooManyUploads, "UPL002"},
		{"canceled", context.Canceled, "UPL004"},
		{"deadline", context.DeadlineExceeded, "UPL005"},
		{"superseded", ErrSuperseded, "UPL006"},
		{"session", ErrSessionNotFound, "SES001"},
		{"wrapped session", fmt.Errorf("filter: %w", ErrSessionNotFound), "SES001"},
		{"invalid input", errors.New("invalid input: fund"), "REQ001"},
		{"rate", errors.New("rate limit exceeded"), "RATE001"},
		{"case insensitive", errors.New("TOO MANY UPLOADS"), "UPL002"},
		{"unknown", errors.New("something odd"), "ERR000"},
		{"decode error named like a size error", fmt.Errorf("parse file too large.xlsx: %w", &sheet.DecodeError{Format: sheet.FormatXLSX, Err: errors.New("zip: not a valid zip file")}), "FILE002"},
		{"sentinel beats text", fmt.Errorf("session not found: %w", ErrTooManyUploads), "UPL002"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError(%v).Code = %q, want %q", tt.err, got.Code, tt.wantCode)
			}
			if tt.err != nil && got.Message == "" {
				t.Error("Message should not be empty")
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}

	got := FormatUserError(ErrTooManyUploads)
	if !strings.Contains(got, "(Code: UPL002)") {
		t.Errorf("FormatUserError missing code: %q", got)
	}
	if !strings.HasSuffix(got, "Please wait a moment and try again") {
		t.Errorf("FormatUserError missing action: %q", got)
	}
}

func TestUserError(t *testing.T) {
	if NewUserError(nil) != nil {
		t.Error("NewUserError(nil) should be nil")
	}

	tech := fmt.Errorf("parse: %w", &sheet.DecodeError{Format: sheet.FormatXLS, Err: errors.New("bad header")})
	ue := NewUserError(tech)

	if ue.User.Code != "FILE002" {
		t.Errorf("Code = %q, want FILE002", ue.User.Code)
	}
	if ue.Error() != ue.User.Message {
		t.Errorf("Error() = %q, want user message", ue.Error())
	}
	if !errors.Is(ue, sheet.ErrDecode) {
		t.Error("UserError should unwrap to the technical error")
	}
}
