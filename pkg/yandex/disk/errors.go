package yadisk

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNoResult is matched by every failure of a dispatched request: the
	// request could not be built or sent, the API answered with an unexpected
	// status or the payload could not be decoded.
	ErrNoResult = errors.New("yadisk: no usable result")

	// ErrUnsupportedMethod is returned for HTTP methods the API is never called with.
	ErrUnsupportedMethod = errors.New("yadisk: unsupported HTTP method")

	ErrOperationTimeout = errors.New("yadisk: operation did not complete in time")
	ErrOperationFailed  = errors.New("yadisk: operation failed")
)

// RequestError reports a request that could not be built, such as a link
// that is not an absolute URL. Repeating it cannot succeed.
type RequestError struct {
	Method   string
	Endpoint string
	Err      error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("failed to build %s request to %s: %v", e.Method, e.Endpoint, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

func (e *RequestError) Is(target error) bool { return target == ErrNoResult }

// TransportError reports a request that never produced a response.
type TransportError struct {
	Method   string
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("connection error while making %s request to %s: %v", e.Method, e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrNoResult }

// APIError is a response with a status other than 200, 201 or 202.
type APIError struct {
	Method      string
	Endpoint    string
	StatusCode  int
	Body        []byte
	Message     string
	Description string
	Code        string
}

func (e *APIError) Error() string {
	detail := e.Description
	if detail == "" {
		detail = string(e.Body)
	}
	if e.Code != "" {
		detail = e.Code + ": " + detail
	}
	return fmt.Sprintf("error while making %s request to %s: %s (error code %d)", e.Method, e.Endpoint, detail, e.StatusCode)
}

func (e *APIError) Is(target error) bool { return target == ErrNoResult }

// DecodeError is a successful response whose JSON body could not be decoded.
type DecodeError struct {
	Method   string
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s %s response: %v", e.Method, e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrNoResult }

func newAPIError(method, endpoint string, statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		Method:     method,
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Body:       body,
	}
	var payload ErrorResponse
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Message = payload.Message
		apiErr.Description = payload.Description
		apiErr.Code = payload.Error
	}
	return apiErr
}
