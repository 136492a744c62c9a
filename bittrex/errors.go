package bittrex

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrUnauthorized is returned when an authenticated endpoint is called on a
// client that was constructed without credentials. No request is sent.
var ErrUnauthorized = errors.New("bittrex: authenticated endpoint requires api credentials")

// TransportError wraps a network-level failure that survived the client's
// retry policy. The underlying error (including context cancellation) is
// reachable through Unwrap.
type TransportError struct {
	Attempts int
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("bittrex: request failed after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPStatusError is returned when the exchange answers with a non-2xx
// status. These are never retried.
type HTTPStatusError struct {
	StatusCode int
	Status     string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("bittrex: server responded with %s", e.Status)
}

// MalformedEnvelopeError is returned when a response body does not parse as
// the {success, message, result} envelope.
type MalformedEnvelopeError struct {
	Body []byte
	Err  error
}

func (e *MalformedEnvelopeError) Error() string {
	return fmt.Sprintf("bittrex: response is not a valid envelope: %v", e.Err)
}

func (e *MalformedEnvelopeError) Unwrap() error { return e.Err }

// ExchangeError carries the exchange's own rejection message verbatim, e.g.
// "INSUFFICIENT_FUNDS" or "APIKEY_INVALID". It means the request reached the
// exchange and was understood, but refused.
type ExchangeError struct {
	Message string
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("bittrex: exchange rejected request: %s", e.Message)
}

// ResultTypeError is returned when the envelope reports success but its
// result field cannot be decoded into the requested type. The raw result
// JSON and the target type name are retained for diagnosis.
type ResultTypeError struct {
	JSON       []byte
	TargetType string
	Err        error
}

func (e *ResultTypeError) Error() string {
	return fmt.Sprintf("bittrex: cannot decode result into %s: %v", e.TargetType, e.Err)
}

func (e *ResultTypeError) Unwrap() error { return e.Err }
