// Package errors defines the typed failures each pipeline stage reports to the
// orchestrator.
//
// Usage:
//
//	import apperrors "github.com/nguyentantai21042004/meeting-digest/internal/errors"
//
//	return apperrors.Extraction("ffmpeg exited non-zero", err)
//
//	if apperrors.IsKind(err, apperrors.KindDelivery) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a stage failure.
type Kind string

const (
	KindFetch         Kind = "fetch_error"
	KindExtraction    Kind = "extraction_error"
	KindTranscription Kind = "transcription_error"
	KindParse         Kind = "parse_error"
	KindSummary       Kind = "summary_error"
	KindDelivery      Kind = "delivery_error"
)

// Sentinel errors for conditions that are not stage failures.
var (
	// ErrValidation indicates user input was rejected before any stage ran.
	ErrValidation = errors.New("validation error")

	// ErrInvalidState indicates the action is not allowed in the current session state.
	ErrInvalidState = errors.New("invalid state")
)

// StageError is returned by every pipeline stage.
type StageError struct {
	Kind Kind
	// Op names the failing sub-step, e.g. the annotation task for summary errors.
	Op        string
	Message   string
	Retryable bool
	Cause     error
}

func (e *StageError) Error() string {
	s := string(e.Kind)
	if e.Op != "" {
		s += fmt.Sprintf(" [%s]", e.Op)
	}
	s += ": " + e.Message
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

func (e *StageError) Unwrap() error {
	return e.Cause
}

// Fetch reports a remote or local acquisition failure.
func Fetch(msg string, cause error, retryable bool) *StageError {
	return &StageError{Kind: KindFetch, Message: msg, Retryable: retryable, Cause: cause}
}

// Extraction reports a decode failure.
func Extraction(msg string, cause error) *StageError {
	return &StageError{Kind: KindExtraction, Message: msg, Cause: cause}
}

// Transcription reports a speech-to-text failure.
func Transcription(msg string, cause error) *StageError {
	return &StageError{Kind: KindTranscription, Message: msg, Cause: cause}
}

// Parse reports a malformed transcript document.
func Parse(msg string, cause error) *StageError {
	return &StageError{Kind: KindParse, Message: msg, Cause: cause}
}

// Summary reports a language-model failure for the named call.
func Summary(op, msg string, cause error) *StageError {
	return &StageError{Kind: KindSummary, Op: op, Message: msg, Cause: cause}
}

// Delivery reports a mail transport failure.
func Delivery(msg string, cause error) *StageError {
	return &StageError{Kind: KindDelivery, Message: msg, Cause: cause}
}

// Validationf wraps ErrValidation with a formatted message.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// InvalidStatef wraps ErrInvalidState with a formatted message.
func InvalidStatef(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, fmt.Sprintf(format, args...))
}

// KindOf returns the kind of the first StageError in err's chain.
func KindOf(err error) (Kind, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return "", false
}

// IsKind reports whether err's chain holds a StageError of the given kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// IsRetryable reports whether the caller may re-trigger the failed action as is.
func IsRetryable(err error) bool {
	var se *StageError
	if errors.As(err, &se) {
		return se.Retryable
	}
	return false
}

// IsValidation reports whether any error in err's chain is ErrValidation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsInvalidState reports whether any error in err's chain is ErrInvalidState.
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState)
}
