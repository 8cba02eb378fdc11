package errors

import (
	stderrors "errors"
	"fmt"
)

// DocrankError is the structured error type for docrank.
// It carries enough context for logging and for a remediation hint on the CLI.
type DocrankError struct {
	// Code is the unique error code (e.g., "ERR_207_INDEX_NOT_FOUND").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, IO, Validation, Internal).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *DocrankError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *DocrankError) Unwrap() error {
	return e.Cause
}

// Is matches another DocrankError by code, so sentinel errors work with errors.Is.
func (e *DocrankError) Is(target error) bool {
	if t, ok := target.(*DocrankError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
func (e *DocrankError) WithDetail(key, value string) *DocrankError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
func (e *DocrankError) WithSuggestion(suggestion string) *DocrankError {
	e.Suggestion = suggestion
	return e
}

// New creates a new DocrankError with the given code and message.
// Category and severity are derived from the code.
func New(code string, message string, cause error) *DocrankError {
	return &DocrankError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// Wrap creates a DocrankError from an existing error.
// The error's message becomes the DocrankError message.
func Wrap(code string, err error) *DocrankError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *DocrankError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// IOError creates an I/O-related error.
func IOError(message string, cause error) *DocrankError {
	return New(ErrCodeFileNotFound, message, cause)
}

// ValidationError creates a validation-related error.
func ValidationError(message string, cause error) *DocrankError {
	return New(ErrCodeInvalidInput, message, cause)
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *DocrankError {
	return New(ErrCodeInternal, message, cause)
}

// As finds the first DocrankError in err's chain.
func As(err error) (*DocrankError, bool) {
	var de *DocrankError
	if stderrors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// IsFatal checks if an error has fatal severity.
func IsFatal(err error) bool {
	if de, ok := As(err); ok {
		return de.Severity == SeverityFatal
	}
	return false
}

// GetCode extracts the error code from the chain. Empty if none.
func GetCode(err error) string {
	if de, ok := As(err); ok {
		return de.Code
	}
	return ""
}

// GetCategory extracts the category from the chain. Empty if none.
func GetCategory(err error) Category {
	if de, ok := As(err); ok {
		return de.Category
	}
	return ""
}
