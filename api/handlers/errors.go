// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to HTTP problem responses carrying an API error code

package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"bliki-feed-api/core/errors"
)

// CodeInternal is reported for errors without a code of their own
const CodeInternal = "internal"

// statusByCode maps domain error codes to HTTP statuses
var statusByCode = map[string]int{
	errors.CodeFeedUnavailable: http.StatusNotFound,
	errors.CodeFeedInvalid:     http.StatusBadRequest,
	errors.CodeBadParams:       http.StatusBadRequest,
}

// APIError is a problem+json body with a machine readable code
type APIError struct {
	huma.ErrorModel
	Code string `json:"code" doc:"Machine readable error code" example:"feed-invalid"`
}

func newAPIError(status int, code, detail string, errs ...error) *APIError {
	model, _ := huma.NewError(status, detail, errs...).(*huma.ErrorModel)
	if model == nil {
		model = &huma.ErrorModel{Status: status, Title: http.StatusText(status), Detail: detail}
	}
	return &APIError{ErrorModel: *model, Code: code}
}

// toHumaError converts domain errors to appropriate Huma HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	code := errors.CodeOf(err)
	if status, ok := statusByCode[code]; ok {
		return newAPIError(status, code, err.Error())
	}

	// Internal details stay in the logs
	return newAPIError(http.StatusInternalServerError, CodeInternal, "Internal server error", err)
}
