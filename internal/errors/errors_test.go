package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	cause := errors.New("permission denied")

	err := New(ReadFailed, "locales/fr.json", "read locales/fr.json", cause)

	if err.Code != ReadFailed {
		t.Errorf("Code = %v, want %v", err.Code, ReadFailed)
	}
	if err.Path != "locales/fr.json" {
		t.Errorf("Path = %q, want %q", err.Path, "locales/fr.json")
	}
	if err.Message != "read locales/fr.json" {
		t.Errorf("Message = %q, want %q", err.Message, "read locales/fr.json")
	}
}

func TestAuditError_Error(t *testing.T) {
	tests := []struct {
		name    string
		code    ErrorCode
		message string
		cause   error
		want    string
	}{
		{
			name:    "with cause",
			code:    InvalidJSON,
			message: "invalid JSON",
			cause:   errors.New("unexpected end of JSON input"),
			want:    "invalid JSON: unexpected end of JSON input",
		},
		{
			name:    "without cause",
			code:    NotAnObject,
			message: "root is not an object",
			want:    "root is not an object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, "x.json", tt.message, tt.cause)
			if got := err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAuditError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := New(WriteFailed, "", "write failed", cause)

	if err.Unwrap() != cause {
		t.Errorf("Unwrap() = %v, want %v", err.Unwrap(), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}

	if New(WriteFailed, "", "write failed", nil).Unwrap() != nil {
		t.Error("Unwrap() on error without cause should return nil")
	}
}

func TestNewf(t *testing.T) {
	err := Newf(BaseNotFound, "locales/en.json", "Base file %s not found", "locales/en.json")

	if err.Code != BaseNotFound {
		t.Errorf("Code = %v, want %v", err.Code, BaseNotFound)
	}
	if !strings.Contains(err.Error(), "locales/en.json") {
		t.Errorf("Error() = %q, want to mention the path", err.Error())
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"direct", New(ExportFailed, "", "x", nil), ExportFailed},
		{"wrapped", fmt.Errorf("outer: %w", New(DirectoryNotFound, "", "x", nil)), DirectoryNotFound},
		{"plain error", errors.New("plain"), InternalError},
		{"nil", nil, InternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("wrap: %w", New(InvalidJSON, "a.json", "invalid JSON", nil))

	if !Is(err, InvalidJSON) {
		t.Error("Is(InvalidJSON) = false, want true")
	}
	if Is(err, ReadFailed) {
		t.Error("Is(ReadFailed) = true, want false")
	}
	if Is(nil, InternalError) {
		t.Error("Is(nil) should be false")
	}
}
