// Package errors provides standardized error handling for the analyze pipeline.
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Surfaced to the caller before the 202 response commits.
	ErrCodeInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrCodeKIXAuthFailed  ErrorCode = "KIX_AUTH_FAILED"
	ErrCodeTicketNotFound ErrorCode = "TICKET_NOT_FOUND"

	// Post-response failures, observable only via logs and metrics.
	ErrCodeEmptyCompletion   ErrorCode = "EMPTY_COMPLETION"
	ErrCodePayloadTooLarge   ErrorCode = "PAYLOAD_TOO_LARGE"
	ErrCodeFieldUpdateFailed ErrorCode = "FIELD_UPDATE_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// HTTPStatus maps an error code to the outbound HTTP status. Codes that can
// only occur after the 202 response has committed map to 500; they never
// reach a caller.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidInput:
		return http.StatusBadRequest
	case ErrCodeTicketNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf extracts the error code from any error, defaulting to INTERNAL_ERROR.
func CodeOf(err error) ErrorCode {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr.Code
	}
	return ErrCodeInternal
}

// NewInvalidInputError creates a non-retryable validation error.
func NewInvalidInputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidInput,
		Message:   "Request validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewKIXAuthFailedError wraps any login failure. Transport errors and a
// missing token field are deliberately conflated into one externally visible
// kind.
func NewKIXAuthFailedError(err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &StandardError{
		Code:      ErrCodeKIXAuthFailed,
		Message:   "Authentication against the KIX API failed",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewTicketNotFoundError wraps any fetch failure. An absent ticket and a
// transport error are deliberately conflated into one externally visible
// kind.
func NewTicketNotFoundError(ticketID int64, err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &StandardError{
		Code:      ErrCodeTicketNotFound,
		Message:   fmt.Sprintf("Ticket with ID %d not found", ticketID),
		Details:   details,
		Retryable: false,
		Metadata:  map[string]interface{}{"ticketId": ticketID},
		Timestamp: time.Now().UTC(),
	}
}

// NewEmptyCompletionError signals that the completion endpoint returned no
// usable message content.
func NewEmptyCompletionError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmptyCompletion,
		Message:   "Completion API returned no content",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewPayloadTooLargeError signals that the serialized ticket payload exceeds
// the configured input token budget.
func NewPayloadTooLargeError(tokens, limit int) *StandardError {
	return &StandardError{
		Code:      ErrCodePayloadTooLarge,
		Message:   "Ticket payload exceeds the completion input limit",
		Details:   fmt.Sprintf("payload is %d tokens, limit is %d", tokens, limit),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewFieldUpdateFailedError wraps a dynamic field write-back failure.
func NewFieldUpdateFailedError(ticketID int64, err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &StandardError{
		Code:      ErrCodeFieldUpdateFailed,
		Message:   "Failed to write summary into ticket dynamic field",
		Details:   details,
		Retryable: true,
		Metadata:  map[string]interface{}{"ticketId": ticketID},
		Timestamp: time.Now().UTC(),
	}
}
