package emeritus

import "fmt"

// ValidationError reports caller input that is missing or malformed. It is
// raised before any network call is attempted.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UpstreamError reports a non-2xx HTTP status, a non-zero Emeritus response
// code, or an unparseable upstream body.
type UpstreamError struct {
	Status  int    // HTTP status returned by the upstream
	Code    int    // Emeritus response code, 0 when unavailable
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error (status=%d, code=%d): %s", e.Status, e.Code, e.Message)
}

// NetworkError reports a connection or timeout failure before a response was
// received.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "network error: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
