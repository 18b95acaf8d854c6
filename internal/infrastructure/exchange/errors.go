package exchange

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ConnectionError means the transport failed (DNS, connect, timeout) before
// any HTTP response was obtained.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return "exchange: connection error: " + e.Err.Error()
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// APIError is a non-200 response from the exchange. Body keeps the raw
// response text for diagnostics; Code and Msg are filled in when the body is
// a Binance error payload.
type APIError struct {
	Status int
	Code   int
	Msg    string
	Body   string
}

func (e APIError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("binance api error %d (code %d): %s", e.Status, e.Code, e.Msg)
	}
	return fmt.Sprintf("binance http error %d: %s", e.Status, strings.TrimSpace(e.Body))
}

// ParseError means a 200 response whose body was not valid JSON or lacked an
// expected field.
type ParseError struct {
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("exchange: bad response for %q: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("exchange: response missing %q", e.Field)
}

func (e *ParseError) Unwrap() error { return e.Err }

func newAPIError(status int, body []byte) error {
	apiErr := APIError{Status: status, Body: string(body)}
	var payload struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Msg != "" {
		apiErr.Code = payload.Code
		apiErr.Msg = payload.Msg
	}
	return apiErr
}

func IsConnectionError(err error) bool {
	var connErr *ConnectionError
	return errors.As(err, &connErr)
}

func AsAPIError(err error) (APIError, bool) {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return APIError{}, false
}

func IsParseError(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}
