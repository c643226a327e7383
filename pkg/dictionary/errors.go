package dictionary

import "fmt"

// EncodingError means the configured charset cannot be used by this runtime.
// It is a configuration problem and is not expected at run time.
type EncodingError struct {
	Charset string
	Err     error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("charset %q: %v", e.Charset, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// NetworkError covers connection failures, non-2xx replies and unreadable bodies.
// Status is zero when no response was received.
type NetworkError struct {
	URL    string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: http %d: %v", e.URL, e.Status, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError means the response could not be turned into a document tree.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
