package commons

import "strings"

type Response[T any] struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    *T       `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    &data,
	}
}

func ErrorResponse[T any](message string, errors ...string) Response[T] {
	return Response[T]{
		Success: false,
		Message: message,
		Errors:  errors,
	}
}

// ValidationResponse splits a "; " joined validation error into one entry per field.
func ValidationResponse[T any](err error) Response[T] {
	if err == nil {
		return ErrorResponse[T](MessageValidationFailed)
	}
	return ErrorResponse[T](MessageValidationFailed, strings.Split(err.Error(), "; ")...)
}
