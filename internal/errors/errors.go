package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ReadFailed indicates a file could not be read
	ReadFailed ErrorCode = "READ_FAILED"
	// InvalidJSON indicates a file is not well-formed JSON
	InvalidJSON ErrorCode = "INVALID_JSON"
	// NotAnObject indicates the JSON root is not an object
	NotAnObject ErrorCode = "NOT_AN_OBJECT"
	// WriteFailed indicates a rewritten file or backup could not be written
	WriteFailed ErrorCode = "WRITE_FAILED"
	// ExportFailed indicates a missing-key export could not be written
	ExportFailed ErrorCode = "EXPORT_FAILED"
	// DirectoryNotFound indicates the working directory does not exist
	DirectoryNotFound ErrorCode = "DIRECTORY_NOT_FOUND"
	// BaseNotFound indicates the base locale file does not exist
	BaseNotFound ErrorCode = "BASE_NOT_FOUND"
	// InvalidArgument indicates a bad command line argument
	InvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ConfigInvalid indicates the configuration file could not be used
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// AuditError is a coded error tied to an optional file path
type AuditError struct {
	Code    ErrorCode `json:"code" yaml:"code"`
	Message string    `json:"message" yaml:"message"`
	Path    string    `json:"path,omitempty" yaml:"path,omitempty"`
	cause   error     // Underlying error (not exported to JSON)
}

// New creates a new AuditError
func New(code ErrorCode, path string, message string, cause error) *AuditError {
	return &AuditError{
		Code:    code,
		Message: message,
		Path:    path,
		cause:   cause,
	}
}

// Newf creates a new AuditError without a cause and with a formatted message
func Newf(code ErrorCode, path string, format string, args ...interface{}) *AuditError {
	return New(code, path, fmt.Sprintf(format, args...), nil)
}

// Error implements the error interface. The path is not part of the text
// because callers already print it in front of the message.
func (e *AuditError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *AuditError) Unwrap() error {
	return e.cause
}

// CodeOf returns the code of the first AuditError in err's chain,
// or InternalError when there is none.
func CodeOf(err error) ErrorCode {
	var ae *AuditError
	if stderrors.As(err, &ae) {
		return ae.Code
	}
	return InternalError
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}
