package archive

import "fmt"

// BackendError is a failed external archive operation. Op names the operation
// for the user-visible message; Err carries the underlying cause.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }
