// Package respond installs the API's JSON error envelope and maps service
// errors onto it.
package respond

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/neofin-server/internal/logging"
	"github.com/carson-networks/neofin-server/internal/service"
)

const serverError = "Server Error"

func init() {
	huma.NewError = NewError
}

// ErrorBody is the envelope written for every failed request.
type ErrorBody struct {
	status  int
	Success bool     `json:"success"`
	Message string   `json:"error" doc:"Human readable error"`
	Details []string `json:"details,omitempty" doc:"Individual validation problems"`
}

func (e *ErrorBody) Error() string {
	return e.Message
}

func (e *ErrorBody) GetStatus() int {
	return e.status
}

// NewError builds the envelope. Schema violations are reported as 400 and
// server errors never expose their cause.
func NewError(status int, msg string, errs ...error) huma.StatusError {
	if status == http.StatusUnprocessableEntity {
		status = http.StatusBadRequest
	}
	body := &ErrorBody{status: status, Message: msg}
	if status >= http.StatusInternalServerError {
		body.Message = serverError
		return body
	}
	for _, err := range errs {
		if err != nil {
			body.Details = append(body.Details, err.Error())
		}
	}
	return body
}

// Envelope wraps successful payloads.
type Envelope[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

// ListEnvelope wraps successful list payloads.
type ListEnvelope[T any] struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
	Data    []T  `json:"data"`
}

// Empty serializes as {}.
type Empty struct{}

// FromService translates a service error into an HTTP error. The cause of
// unexpected failures is recorded on the request's LogData.
func FromService(ctx context.Context, err error, notFoundMsg string) error {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return &ErrorBody{
			status:  http.StatusBadRequest,
			Message: strings.Join(validationErr.Details, "; "),
			Details: validationErr.Details,
		}
	case errors.Is(err, service.ErrNotFound):
		return NewError(http.StatusNotFound, notFoundMsg)
	case errors.Is(err, service.ErrConflict):
		return NewError(http.StatusConflict, err.Error())
	case errors.Is(err, context.Canceled):
		return NewError(499, "request cancelled")
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("error", err.Error())
	}
	return NewError(http.StatusInternalServerError, serverError, err)
}
