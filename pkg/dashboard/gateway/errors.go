package gateway

import "fmt"

// APIError means the server was reached and answered with a non-2xx status.
// Message carries the server's human-readable explanation.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// TransportError means the request could not be completed at all: DNS
// failure, refused connection, interrupted body. Callers branch on the error
// kind with errors.As, never on message content.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ValidationError is a client-side field check failure raised before any
// request is sent.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
