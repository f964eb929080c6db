package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrTransient indicates a recoverable I/O failure against the remote store or
// the local key-value store. Stored data is left as it was.
var ErrTransient = errors.New("transient storage failure")

// ErrMalformedDraft indicates that a stored draft could not be decoded.
var ErrMalformedDraft = errors.New("malformed draft")

// ErrCommitFailed indicates that a commit did not reach the remote store.
// The draft for the committed section and period is kept.
var ErrCommitFailed = errors.New("commit failed")

// ErrReadOnlyField indicates an attempt to edit a derived field.
var ErrReadOnlyField = errors.New("field is derived and read-only")

// ErrRuleConfig indicates an invalid rule registry or ownership table.
var ErrRuleConfig = errors.New("invalid rule configuration")

// ErrUnknownSection indicates a section identifier with no registered rules.
var ErrUnknownSection = errors.New("unknown section")

// ErrStaleLoad indicates a baseline load that completed after a newer
// selection superseded it. Its result was discarded.
var ErrStaleLoad = errors.New("stale baseline load discarded")

// ErrPartialBaseline indicates a document whose stored data could not be read.
// Its state is never saved as a draft or committed.
var ErrPartialBaseline = errors.New("document loaded without its stored data")

// AppError carries a status-like code and a human readable message on top of
// one of the sentinel errors above.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps err with a code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an AppError wrapping ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewValidationFailedError returns an AppError wrapping ErrValidation.
func NewValidationFailedError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}

// NewTransientError marks cause as a recoverable storage failure. Both
// ErrTransient and cause stay reachable through errors.Is.
func NewTransientError(message string, cause error) *AppError {
	return &AppError{Code: 503, Message: message, Err: errors.Join(ErrTransient, cause)}
}

// NewCommitFailedError marks cause as a failed commit.
func NewCommitFailedError(message string, cause error) *AppError {
	return &AppError{Code: 502, Message: message, Err: errors.Join(ErrCommitFailed, cause)}
}

// IsTransient reports whether err is a recoverable storage failure.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}
