// Package commons holds the JSON envelope every endpoint replies with.
package commons

// Response is the uniform reply body. Data is set only on success;
// Errors carries human-readable detail for the failure cases.
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

func ErrorResponse[T any](message string, details ...string) Response[T] {
	return Response[T]{
		Success: false,
		Message: message,
		Errors:  details,
	}
}
