package client

import (
	"encoding/json"
	stderrors "errors"
	"fmt"

	"rental_frontend/domain"
)

type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindValidation
	KindServer
	KindNetwork
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	case KindNetwork:
		return "network"
	}
	return "unknown"
}

// APIError is the single error shape for every failed call. Status is 0 when
// no response was received.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
	Body    []byte
	Err     error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func (e *APIError) Kind() ErrorKind {
	if e.Status == 0 {
		return KindNetwork
	}
	return KindServer
}

// KindOf classifies err without inspecting its message.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}

	var validationErr *domain.ValidationError
	if stderrors.As(err, &validationErr) {
		return KindValidation
	}

	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.Kind()
	}

	return KindUnknown
}

// MessageOf prefers the server supplied message and falls back otherwise.
func MessageOf(err error, fallback string) string {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}

	var validationErr *domain.ValidationError
	if stderrors.As(err, &validationErr) && validationErr.Message != "" {
		return validationErr.Message
	}

	return fallback
}

// StatusOf returns the HTTP status of a server error, 0 otherwise.
func StatusOf(err error) int {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

type errorBody struct {
	Message string `json:"message"`
}

func messageFromBody(body []byte) string {
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	return parsed.Message
}
