package remote

import (
	"errors"
	"fmt"
	"net/http"
)

// Class splits remote failures into the two retry policies.
type Class int

const (
	// ClassTransient failures may succeed on retry: network errors,
	// timeouts, server-side temporary failures.
	ClassTransient Class = iota

	// ClassPermanent failures are explicit rejections; retrying them is
	// never useful.
	ClassPermanent
)

func (c Class) String() string {
	if c == ClassPermanent {
		return "permanent"
	}
	return "transient"
}

// Error is a failure response from the remote service, carrying enough
// information to classify it.
type Error struct {
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// Transient reports whether the status indicates a temporary server-side
// condition.
func (e *Error) Transient() bool {
	switch {
	case e.StatusCode >= 500:
		return true
	case e.StatusCode == http.StatusRequestTimeout, e.StatusCode == http.StatusTooManyRequests:
		return true
	}
	return false
}

// Classify decides the retry policy for a remote call failure. Anything
// that is not an explicit server rejection (network error, timeout,
// canceled context) is treated as transient.
func Classify(err error) Class {
	var re *Error
	if errors.As(err, &re) && !re.Transient() {
		return ClassPermanent
	}
	return ClassTransient
}
