package service

import (
	"errors"
	"fmt"
)

var (
	ErrUsernameTaken      = errors.New("username_taken")
	ErrEmailTaken         = errors.New("email_taken")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrForbidden          = errors.New("forbidden")
)

// NotFoundError names the resource that was looked up and missed, so the
// boundary can say "post 42 not found" instead of a bare 404.
type NotFoundError struct {
	Resource string
	Key      any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Resource, e.Key)
}

// Is makes errors.Is(err, &NotFoundError{}) match any NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}

func notFound(resource string, key any) error {
	return &NotFoundError{Resource: resource, Key: key}
}
