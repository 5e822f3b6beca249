package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUserNotFound means the referenced user document does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidArgument means a required request field is missing or empty.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnauthenticated means a callable was invoked without an identity.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// DeliveryError reports a sender rejection for a single token, e.g. an
// invalid or expired registration. Callers log it and move on; it never
// aborts the triggering pipeline.
type DeliveryError struct {
	Token  string
	Reason string
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery failed: %s", e.Reason)
}
