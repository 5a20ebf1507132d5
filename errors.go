package databridge

import (
	"errors"
	"fmt"
)

// ConnectionError covers failures that happen before an HTTP status is
// available: DNS resolution, connect timeouts, reset connections, and
// deadline expiry while reading the body.
type ConnectionError struct {
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error calling %s: %v", e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// ClientError is an upstream 4xx response. The request itself is wrong,
// so repeating it would produce the same answer.
type ClientError struct {
	StatusCode int
	URL        string
	Message    string
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("client error (HTTP %d) calling %s: %s", e.StatusCode, e.URL, e.Message)
}

// ServerError is an upstream 5xx response.
type ServerError struct {
	StatusCode int
	URL        string
	Message    string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error (HTTP %d) calling %s: %s", e.StatusCode, e.URL, e.Message)
}

// ProtocolError means the upstream answered HTTP 200 but the payload is
// unusable: an application-level result code other than success, truncated
// or non-JSON bodies, or an envelope without the expected structure.
type ProtocolError struct {
	Message    string
	ResultCode string
	URL        string
}

func (e *ProtocolError) Error() string {
	if e.ResultCode != "" {
		return fmt.Sprintf("protocol error (result code %s) calling %s: %s", e.ResultCode, e.URL, e.Message)
	}
	return fmt.Sprintf("protocol error calling %s: %s", e.URL, e.Message)
}

// IsTransient reports whether err belongs to a failure class worth retrying.
// Connection failures and 5xx responses qualify. 4xx responses and protocol
// errors do not: the upstream already processed the request and gave a
// deterministic answer.
func IsTransient(err error) bool {
	var connErr *ConnectionError
	var srvErr *ServerError
	return errors.As(err, &connErr) || errors.As(err, &srvErr)
}

// ClassifyStatus maps an HTTP error status to the matching error type.
func ClassifyStatus(status int, url, message string) error {
	if status >= 500 {
		return &ServerError{StatusCode: status, URL: url, Message: message}
	}
	return &ClientError{StatusCode: status, URL: url, Message: message}
}

// ClassifyTransport wraps a transport-level failure as a ConnectionError.
func ClassifyTransport(err error, url string) error {
	return &ConnectionError{URL: url, Err: err}
}
