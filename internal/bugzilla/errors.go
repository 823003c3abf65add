// internal/bugzilla/errors.go
package bugzilla

import (
	"errors"
	"fmt"
)

// ErrNoBug is returned by GetBug when Bugzilla answers with an empty bug
// list for the requested id.
var ErrNoBug = errors.New("bugzilla: no such bug")

// StatusError is a non-2xx answer from Bugzilla. Handlers generally relay
// a 404 and treat everything else as an upstream failure.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("bugzilla: status %d: %s", e.Code, e.Body)
}

// DecodeError wraps a response body that could not be parsed as the
// expected JSON shape.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "bugzilla: decode response: " + e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }

// IsNotFound reports whether err means the bug does not exist upstream,
// either as an empty result set or an explicit 404.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNoBug) {
		return true
	}
	var se *StatusError
	return errors.As(err, &se) && se.Code == 404
}
