package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes
const (
	CodeEmptyQuery      = "EMPTY_QUERY"
	CodeNoResults       = "NO_RESULTS"
	CodeAmbiguousTitle  = "AMBIGUOUS_TITLE"
	CodePageNotFound    = "PAGE_NOT_FOUND"
	CodeBackendFailure  = "BACKEND_FAILURE"
	CodeNoRelevantMatch = "NO_RELEVANT_MATCH"
	CodeAPIError        = "API_ERROR"
	CodeValidation      = "VALIDATION_ERROR"
)

type AnswerError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *AnswerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AnswerError) Unwrap() error {
	return e.Cause
}

func NewAnswerError(message, code string, statusCode int, context map[string]any) *AnswerError {
	return &AnswerError{
		Message:    message,
		Code:       code,
		StatusCode: statusCode,
		Context:    context,
	}
}

func (e *AnswerError) WithCause(cause error) *AnswerError {
	e.Cause = cause
	return e
}

type APIError struct {
	*AnswerError
}

func NewAPIError(message string, statusCode int, context map[string]any) *APIError {
	return &APIError{
		AnswerError: &AnswerError{
			Message:    message,
			Code:       CodeAPIError,
			StatusCode: statusCode,
			Context:    context,
		},
	}
}

func (e *APIError) WithCause(cause error) *APIError {
	e.Cause = cause
	return e
}

// Retryable reports whether the request may succeed if sent again.
func (e *APIError) Retryable() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}

type NotFoundError struct {
	*AnswerError
	Title string
}

func NewPageNotFoundError(title string) *NotFoundError {
	return &NotFoundError{
		AnswerError: &AnswerError{
			Message:    fmt.Sprintf("page %q does not exist", title),
			Code:       CodePageNotFound,
			StatusCode: 404,
			Context: map[string]any{
				"title": title,
			},
		},
		Title: title,
	}
}

// AmbiguousError is returned when a title resolves to a disambiguation page.
type AmbiguousError struct {
	*AnswerError
	Title   string
	Options []string
}

func NewAmbiguousError(title string, options []string) *AmbiguousError {
	return &AmbiguousError{
		AnswerError: &AnswerError{
			Message:    fmt.Sprintf("%q may refer to %d articles", title, len(options)),
			Code:       CodeAmbiguousTitle,
			StatusCode: 300,
			Context: map[string]any{
				"title":   title,
				"options": len(options),
			},
		},
		Title:   title,
		Options: options,
	}
}

type ValidationError struct {
	*AnswerError
	Field string
	Value interface{}
}

func NewValidationError(message, field string, value interface{}) *ValidationError {
	return &ValidationError{
		AnswerError: &AnswerError{
			Message:    message,
			Code:       CodeValidation,
			StatusCode: 400,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

// IsNotFound reports whether err (or anything it wraps) is a missing-page failure.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return stderrors.As(err, &nf)
}

// AsAmbiguous unwraps err into an AmbiguousError when possible.
func AsAmbiguous(err error) (*AmbiguousError, bool) {
	var amb *AmbiguousError
	if stderrors.As(err, &amb) {
		return amb, true
	}
	return nil, false
}

// CodeOf returns the taxonomy code carried by err, or CodeBackendFailure for foreign errors.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	if _, ok := AsAmbiguous(err); ok {
		return CodeAmbiguousTitle
	}
	if IsNotFound(err) {
		return CodePageNotFound
	}
	var ve *ValidationError
	if stderrors.As(err, &ve) {
		return ve.Code
	}
	var ae *AnswerError
	if stderrors.As(err, &ae) && ae.Code != CodeAPIError {
		return ae.Code
	}
	return CodeBackendFailure
}
