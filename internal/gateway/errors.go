package gateway

import "fmt"

// TransientError is a network-layer failure or a non-2xx HTTP status.
// Quote fetches retry it exactly once; everything else surfaces it as-is.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *TransientError) Unwrap() error { return e.Err }

// ValidationError is a well-delivered but malformed or empty response body.
type ValidationError struct {
	Op     string
	Reason string
}

func (e *ValidationError) Error() string { return fmt.Sprintf("%s: %s", e.Op, e.Reason) }

// RejectionError carries the backend's message for a success:false response.
type RejectionError struct {
	Op      string
	Message string
}

func (e *RejectionError) Error() string { return fmt.Sprintf("%s: backend rejected: %s", e.Op, e.Message) }
