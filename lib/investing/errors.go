package investing

import "fmt"

// TransportError reports that the remote site could not be reached or
// answered with a non-2xx status.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("request to %s failed with status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError reports that an expected markup node or table was absent from
// the response, or that a numeric cell could not be converted.
type ParseError struct {
	What string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.What, e.Err)
	}
	return e.What
}

func (e *ParseError) Unwrap() error { return e.Err }

// StateError reports a misuse of the session: an operation invoked before
// its inputs were set (e.g. exporting before any historical fetch), or a
// setter handed a value outside its allowed set.
type StateError struct {
	What string
}

func (e *StateError) Error() string { return e.What }
