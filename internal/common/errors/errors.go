// internal/common/errors/errors.go
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type ErrorCode string

const (
	ErrCodeParseError        ErrorCode = "PARSE_ERROR"
	ErrCodeInvalidFeatures   ErrorCode = "INVALID_FEATURES"
	ErrCodeUnknownStrategy   ErrorCode = "UNKNOWN_STRATEGY"
	ErrCodeEstimationFailed  ErrorCode = "ESTIMATION_FAILED"
	ErrCodeEstimationTimeout ErrorCode = "ESTIMATION_TIMEOUT"

	ErrCodeArtifactLoadFailed ErrorCode = "MODEL_ARTIFACT_LOAD_FAILED"
	ErrCodeArtifactInvalid    ErrorCode = "MODEL_ARTIFACT_INVALID"

	ErrCodeInternal          ErrorCode = "INTERNAL_ERROR"
	ErrCodeExternalService   ErrorCode = "EXTERNAL_SERVICE_ERROR"
	ErrCodeTimeout           ErrorCode = "TIMEOUT_ERROR"
	ErrCodeResourceNotFound  ErrorCode = "RESOURCE_NOT_FOUND"
	ErrCodeAuthentication    ErrorCode = "AUTHENTICATION_ERROR"
	ErrCodeCompleteJobFailed ErrorCode = "COMPLETE_JOB_FAILED"
)

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

// WithMetadata returns e after merging fields into its metadata.
func (e *StandardError) WithMetadata(fields map[string]interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{}, len(fields))
	}
	for k, v := range fields {
		e.Metadata[k] = v
	}
	return e
}

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

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

func NewParseError(err error) *StandardError {
	return newError(ErrCodeParseError, "Job variables could not be decoded", err.Error(), false)
}

// NewInvalidFeaturesError carries one detail line per rejected field.
func NewInvalidFeaturesError(problems []string) *StandardError {
	return newError(ErrCodeInvalidFeatures, "Property features are out of range", strings.Join(problems, "; "), false)
}

func NewUnknownStrategyError(err error) *StandardError {
	return newError(ErrCodeUnknownStrategy, "Pricing strategy is unknown or not enabled", err.Error(), false)
}

func NewEstimationFailedError(err error) *StandardError {
	return newError(ErrCodeEstimationFailed, "Price estimation failed", err.Error(), false)
}

func NewEstimationTimeoutError(taskType string) *StandardError {
	return newError(ErrCodeEstimationTimeout, "Price estimation timed out", fmt.Sprintf("taskType: %s", taskType), true)
}

func NewArtifactLoadFailedError(uri string, err error) *StandardError {
	return newError(ErrCodeArtifactLoadFailed, "Model artifact could not be fetched",
		fmt.Sprintf("uri: %s, error: %s", uri, err.Error()), false)
}

func NewArtifactInvalidError(uri string, err error) *StandardError {
	return newError(ErrCodeArtifactInvalid, "Model artifact failed validation",
		fmt.Sprintf("uri: %s, error: %s", uri, err.Error()), false)
}

func NewCompleteJobFailedError(err error) *StandardError {
	return newError(ErrCodeCompleteJobFailed, "Job completion command failed", err.Error(), true)
}

func NewExternalServiceError(service string, err error) *StandardError {
	return newError(ErrCodeExternalService, fmt.Sprintf("External service '%s' error", service), err.Error(), true)
}

func NewTimeoutError(service string, err error) *StandardError {
	return newError(ErrCodeTimeout, fmt.Sprintf("Service '%s' timeout", service), err.Error(), true)
}

func NewResourceNotFoundError(service, details string) *StandardError {
	return newError(ErrCodeResourceNotFound, fmt.Sprintf("Resource not found in %s", service), details, false)
}

func NewAuthenticationError(details string) *StandardError {
	return newError(ErrCodeAuthentication, "Authentication failed", details, false)
}

// AsStandardError unwraps err to a *StandardError if one is in its chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeParseError:         "PARSE_ERROR",
	ErrCodeInvalidFeatures:    "INVALID_FEATURES",
	ErrCodeUnknownStrategy:    "UNKNOWN_STRATEGY",
	ErrCodeEstimationFailed:   "ESTIMATION_FAILED",
	ErrCodeEstimationTimeout:  "ESTIMATION_TIMEOUT",
	ErrCodeArtifactLoadFailed: "MODEL_UNAVAILABLE",
	ErrCodeArtifactInvalid:    "MODEL_UNAVAILABLE",
}

func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeExternalService,
		ErrCodeCompleteJobFailed:
		return 3

	case ErrCodeEstimationTimeout,
		ErrCodeTimeout:
		return 2

	default:
		return 0
	}
}

func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "ARTIFACT"):
		return "MODEL"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "PARSE") || strings.Contains(codeStr, "UNKNOWN"):
		return "VALIDATION"
	case strings.Contains(codeStr, "ESTIMATION"):
		return "ESTIMATION"
	case strings.Contains(codeStr, "EXTERNAL") || strings.Contains(codeStr, "TIMEOUT") || strings.Contains(codeStr, "JOB"):
		return "INFRASTRUCTURE"
	default:
		return "OTHER"
	}
}
