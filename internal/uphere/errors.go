package uphere

import (
	"errors"
	"fmt"
)

// ErrorKind classifies upstream request failures.
type ErrorKind string

const (
	KindTimeout      ErrorKind = "timeout"
	KindRateLimited  ErrorKind = "rate_limited"
	KindUnauthorized ErrorKind = "unauthorized"
	KindNotFound     ErrorKind = "not_found"
	KindHTTP         ErrorKind = "http"
	KindTransport    ErrorKind = "transport"
)

// RemoteError is a typed failure from the upstream API. Status and Body are
// populated for HTTP-level failures; Err wraps the underlying transport error
// when one exists.
type RemoteError struct {
	Kind     ErrorKind
	Endpoint string
	Status   int
	Body     string
	Message  string
	Err      error
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Endpoint, e.Kind, e.Err)
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s: HTTP %d: %s", e.Endpoint, e.Status, e.Body)
	}
	return fmt.Sprintf("%s: %s", e.Endpoint, e.Kind)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a RemoteError of the given kind anywhere in
// its chain.
func IsKind(err error, kind ErrorKind) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.Kind == kind
}

// ConfigError reports an invalid client configuration value. It is fatal to
// the operation that raised it and is never retried.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
