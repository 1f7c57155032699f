// Package errors provides standardized error handling for the scheme
// assistant workers and the eligibility engine.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Configuration errors, fatal at load time. The service refuses to start
	// rather than serve with a corrupt catalog or lexicon.
	ErrCodeCatalogInvalid   ErrorCode = "CATALOG_INVALID"
	ErrCodeLexiconInvalid   ErrorCode = "LEXICON_INVALID"
	ErrCodeHierarchyInvalid ErrorCode = "HIERARCHY_INVALID"

	ErrCodeProfileFetchFailed ErrorCode = "PROFILE_FETCH_FAILED"
	ErrCodeProfileNotFound    ErrorCode = "PROFILE_NOT_FOUND"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"

	ErrCodeSchemeSearchFailed  ErrorCode = "SCHEME_SEARCH_FAILED"
	ErrCodeSchemeSearchTimeout ErrorCode = "SCHEME_SEARCH_TIMEOUT"
	ErrCodeSchemeIndexNotFound ErrorCode = "SCHEME_INDEX_NOT_FOUND"

	ErrCodeReplyValidationFailed ErrorCode = "REPLY_VALIDATION_FAILED"
	ErrCodeNotificationFailed    ErrorCode = "NOTIFICATION_SEND_FAILED"
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

// ConfigError marks a fatal load-time configuration problem. Initialization
// must abort when one is returned; per-call paths never produce it.
type ConfigError struct {
	Code    ErrorCode `json:"code"`
	Source  string    `json:"source"`
	Message string    `json:"message"`
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("ConfigError[%s] %s: %s", e.Code, e.Source, e.Message)
}

// NewCatalogInvalidError reports a malformed program rule catalog.
func NewCatalogInvalidError(source, message string) *ConfigError {
	return &ConfigError{Code: ErrCodeCatalogInvalid, Source: source, Message: message}
}

// NewLexiconInvalidError reports a malformed intent lexicon.
func NewLexiconInvalidError(source, message string) *ConfigError {
	return &ConfigError{Code: ErrCodeLexiconInvalid, Source: source, Message: message}
}

// NewHierarchyInvalidError reports a malformed administrative hierarchy table.
func NewHierarchyInvalidError(source, message string) *ConfigError {
	return &ConfigError{Code: ErrCodeHierarchyInvalid, Source: source, Message: message}
}

// IsConfigError reports whether err is a fatal load-time configuration error.
func IsConfigError(err error) bool {
	_, ok := err.(*ConfigError)
	return ok
}

func NewProfileFetchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProfileFetchFailed,
		Message:   "Database error during profile fetch",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewProfileNotFoundError(citizenID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProfileNotFound,
		Message:   "Citizen profile not found",
		Details:   fmt.Sprintf("citizenId: %s", citizenID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewQueryTimeoutError(queryType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryTimeout,
		Message:   "Database query timeout",
		Details:   fmt.Sprintf("queryType: %s", queryType),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewSchemeSearchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSchemeSearchFailed,
		Message:   "Scheme search query error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewNotificationFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationFailed,
		Message:   "Eligibility report delivery failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// BPMNErrorMapping maps internal error codes to BPMN error codes thrown to
// the workflow engine. The codes are identical on both sides.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeProfileFetchFailed:       "PROFILE_FETCH_FAILED",
	ErrCodeProfileNotFound:          "PROFILE_NOT_FOUND",
	ErrCodeDatabaseConnectionFailed: "DATABASE_CONNECTION_FAILED",
	ErrCodeQueryExecutionFailed:     "QUERY_EXECUTION_FAILED",
	ErrCodeQueryTimeout:             "QUERY_TIMEOUT",
	ErrCodeSchemeSearchFailed:       "SCHEME_SEARCH_FAILED",
	ErrCodeSchemeSearchTimeout:      "SCHEME_SEARCH_TIMEOUT",
	ErrCodeSchemeIndexNotFound:      "SCHEME_INDEX_NOT_FOUND",
	ErrCodeReplyValidationFailed:    "REPLY_VALIDATION_FAILED",
	ErrCodeNotificationFailed:       "NOTIFICATION_SEND_FAILED",
}

// GetRetryCount returns the recommended retry count per error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeProfileFetchFailed,
		ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeSchemeSearchFailed,
		ErrCodeNotificationFailed:
		return 3

	case ErrCodeQueryTimeout,
		ErrCodeSchemeSearchTimeout:
		return 2

	default:
		return 0
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "CATALOG") || strings.Contains(codeStr, "LEXICON") || strings.Contains(codeStr, "HIERARCHY"):
		return "CONFIG"
	case strings.Contains(codeStr, "PROFILE"):
		return "PROFILE"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "SEARCH") || strings.Contains(codeStr, "INDEX"):
		return "SEARCH"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
