package bittrex

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// envelope is the exchange's uniform response wrapper. Result is kept raw so
// that decoding into the caller's type only happens once success is known.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

var jsonNull = []byte("null")

// decodeEnvelope parses body as the response envelope and projects its
// result into T. A success=false envelope surfaces as *ExchangeError; a
// result that does not fit T surfaces as *ResultTypeError, never as a
// partially filled value.
func decodeEnvelope[T any](body []byte) (T, error) {
	var out T

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return out, &MalformedEnvelopeError{Body: body, Err: err}
	}
	if !env.Success {
		return out, &ExchangeError{Message: env.Message}
	}
	if len(env.Result) == 0 || bytes.Equal(env.Result, jsonNull) {
		return out, nil
	}
	if err := json.Unmarshal(env.Result, &out); err != nil {
		// json.Unmarshal may have half-filled out before failing.
		var zero T
		return zero, &ResultTypeError{
			JSON:       append([]byte(nil), env.Result...),
			TargetType: fmt.Sprintf("%T", out),
			Err:        err,
		}
	}
	return out, nil
}
