// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCodeParseError   ErrorCode = "PARSE_ERROR"

	ErrCodeScoringFailed ErrorCode = "SCORING_FAILED"
	ErrCodeRankingFailed ErrorCode = "RANKING_FAILED"
	ErrCodeSearchFailed  ErrorCode = "SEARCH_FAILED"

	ErrCodeCommandSendFailed ErrorCode = "COMMAND_SEND_FAILED"
	ErrCodeInternal          ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause, if any.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata returns e with k=v merged into its metadata. Metadata is
// forwarded to the broker as error variables.
func (e *StandardError) WithMetadata(k string, v interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = map[string]interface{}{}
	}
	e.Metadata[k] = v
	return e
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string, retryable bool, cause error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// NewInvalidInputError creates a non-retryable validation error.
func NewInvalidInputError(details string) *StandardError {
	return newError(ErrCodeInvalidInput, "Input validation failed", details, false, nil)
}

// NewParseError creates a non-retryable error for undecodable job variables.
func NewParseError(err error) *StandardError {
	return newError(ErrCodeParseError, "Failed to parse job variables", err.Error(), false, err)
}

func NewScoringFailedError(err error) *StandardError {
	return newError(ErrCodeScoringFailed, "Neptune score calculation failed", err.Error(), false, err)
}

func NewRankingFailedError(err error) *StandardError {
	return newError(ErrCodeRankingFailed, "Provider ranking failed", err.Error(), false, err)
}

// SearchFailedMessage is the user-facing text for any failed search.
const SearchFailedMessage = "Failed to search. Please try again."

// NewSearchFailedError wraps any failure surfaced by the search facade.
func NewSearchFailedError(err error) *StandardError {
	return newError(ErrCodeSearchFailed, SearchFailedMessage, err.Error(), false, err)
}

// NewCommandSendFailedError creates a retryable broker command error.
func NewCommandSendFailedError(command string, err error) *StandardError {
	return newError(ErrCodeCommandSendFailed, fmt.Sprintf("Failed to send %s command", command), err.Error(), true, err)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInvalidInput:      "INVALID_INPUT",
	ErrCodeParseError:        "PARSE_ERROR",
	ErrCodeScoringFailed:     "SCORING_FAILED",
	ErrCodeRankingFailed:     "RANKING_FAILED",
	ErrCodeSearchFailed:      "SEARCH_FAILED",
	ErrCodeCommandSendFailed: "COMMAND_SEND_FAILED",
	ErrCodeInternal:          "INTERNAL_ERROR",
}

// GetRetryCount returns the recommended retry count for a code.
// Everything in the search pipeline is deterministic, so only transport failures retry.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeCommandSendFailed:
		return 3
	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := make(map[string]interface{}, len(stdErr.Metadata)+2)
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}
	vars["originalErrorCode"] = string(stdErr.Code)
	vars["timestamp"] = stdErr.Timestamp.Format(time.RFC3339)

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// Normalize returns err as a StandardError, wrapping foreign errors as INTERNAL_ERROR.
func Normalize(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return newError(ErrCodeInternal, "Unexpected error", err.Error(), false, err)
}

// IsRetryable reports whether err, once normalized, should be retried.
func IsRetryable(err error) bool {
	stdErr := Normalize(err)
	return stdErr != nil && stdErr.Retryable && IsRetryableErrorCode(stdErr.Code)
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "PARSE"):
		return "VALIDATION"
	case strings.Contains(codeStr, "SCORING") || strings.Contains(codeStr, "RANKING"):
		return "RANKING"
	case strings.Contains(codeStr, "SEARCH"):
		return "SEARCH"
	case strings.Contains(codeStr, "COMMAND"):
		return "TRANSPORT"
	default:
		return "OTHER"
	}
}
