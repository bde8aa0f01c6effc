package types

import (
	"fmt"
	"time"
)

// The SDK distinguishes four error kinds so callers can build retry policy
// on top of them: input rejected locally (SchemaError), relayer rejected the
// request (APIError), relayer did not answer in time (TimeoutError), and
// client misuse (ConfigurationError). None of these are retried internally.

// SchemaError reports a local input-validation failure. It is always
// returned before any signing or network work happens.
type SchemaError struct {
	Field  string
	Detail string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("schema error: %s", e.Detail)
	}
	return fmt.Sprintf("schema error: %s: %s", e.Field, e.Detail)
}

// NewSchemaError builds a SchemaError for a named request field.
func NewSchemaError(field, format string, args ...interface{}) error {
	return &SchemaError{Field: field, Detail: fmt.Sprintf(format, args...)}
}

// APIError reports a failure surfaced by the relayer: a non-2xx status, a
// non-success envelope, or a body that could not be parsed as JSON.
type APIError struct {
	StatusCode   int
	Reason       string
	Body         string
	ParseFailure bool
}

func (e *APIError) Error() string {
	if e.ParseFailure {
		return fmt.Sprintf("api error: can't parse relayer response (status %d): %s", e.StatusCode, e.Body)
	}
	if e.Reason != "" {
		return fmt.Sprintf("api error: relayer rejected request (status %d): %s", e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("api error: relayer rejected request (status %d)", e.StatusCode)
}

// TimeoutError reports a network, socket, or acknowledgement wait that
// exceeded its deadline. The operation is not retried.
type TimeoutError struct {
	Op      string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timeout: %s did not complete within %s", e.Op, e.Timeout)
}

// ConfigurationError reports constructor- or init-time misuse: unknown
// environment, missing or malformed credential, double initialization.
type ConfigurationError struct {
	Detail string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Detail)
}
