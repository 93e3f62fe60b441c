package domain

import "errors"

// Error kinds. Service failures wrap one of these so callers can branch with errors.Is
// while still showing the human message.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrUnavailable  = errors.New("unavailable")
)

// ServiceError carries the message shown to the end user.
type ServiceError struct {
	Kind    error
	Message string
}

func (e *ServiceError) Error() string { return e.Message }

func (e *ServiceError) Unwrap() error { return e.Kind }

func Invalid(msg string) error     { return &ServiceError{Kind: ErrInvalidInput, Message: msg} }
func NotFound(msg string) error    { return &ServiceError{Kind: ErrNotFound, Message: msg} }
func Unavailable(msg string) error { return &ServiceError{Kind: ErrUnavailable, Message: msg} }
