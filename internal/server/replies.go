// internal/server/replies.go
package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/render"

	"housing-workers/internal/common/errors"
	"housing-workers/internal/common/validation"
	"housing-workers/internal/estimator"
)

type EstimateRequest struct {
	Strategy string          `json:"strategy,omitempty"`
	Features json.RawMessage `json:"features,omitempty"`
}

type EstimateReply struct {
	RequestID  string                    `json:"requestId"`
	Prediction estimator.PricePrediction `json:"prediction"`
	Report     string                    `json:"report"`
}

type ClassifyReply struct {
	Strategy estimator.StrategyName `json:"strategy"`
	Location estimator.Location     `json:"location"`
}

type StrategiesReply struct {
	Default    estimator.StrategyName   `json:"default"`
	Strategies []estimator.StrategyInfo `json:"strategies"`
}

type StatusReply struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Checks  map[string]string `json:"checks,omitempty"`
}

type ErrorReply struct {
	HTTPStatusCode int                          `json:"-"`
	RequestID      string                       `json:"requestId,omitempty"`
	Code           string                       `json:"code"`
	Message        string                       `json:"message"`
	Details        string                       `json:"details,omitempty"`
	Errors         []validation.ValidationError `json:"errors,omitempty"`
}

func (EstimateReply) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (ClassifyReply) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (StrategiesReply) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (StatusReply) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (e ErrorReply) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

// errorReply maps a StandardError onto an HTTP status. Anything else is an internal error.
func errorReply(requestID string, err error) ErrorReply {
	stdErr, ok := errors.AsStandardError(err)
	if !ok {
		return ErrorReply{
			HTTPStatusCode: http.StatusInternalServerError,
			RequestID:      requestID,
			Code:           string(errors.ErrCodeInternal),
			Message:        "Unexpected error",
		}
	}

	reply := ErrorReply{
		HTTPStatusCode: statusFor(stdErr.Code),
		RequestID:      requestID,
		Code:           string(stdErr.Code),
		Message:        stdErr.Message,
		Details:        stdErr.Details,
	}
	if fieldErrs, ok := stdErr.Metadata["validationErrors"].([]validation.ValidationError); ok {
		reply.Errors = fieldErrs
	}
	return reply
}

func statusFor(code errors.ErrorCode) int {
	switch code {
	case errors.ErrCodeParseError, errors.ErrCodeInvalidFeatures, errors.ErrCodeUnknownStrategy:
		return http.StatusBadRequest
	case errors.ErrCodeEstimationTimeout, errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeArtifactLoadFailed, errors.ErrCodeArtifactInvalid:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
