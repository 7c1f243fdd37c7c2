package apperr

import "fmt"

// ExternalAPIError reports an upstream HTTP or transport failure after
// the retry budget is spent. It is recoverable by the next scheduled
// run and never retried further within the same invocation.
type ExternalAPIError struct {
	Source     string
	StatusCode int
	Body       string
	Message    string
	Err        error
}

func (e *ExternalAPIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "external api request failed"
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s: status %d", e.Source, msg, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s", e.Source, msg, e.Err.Error())
	}
	return fmt.Sprintf("%s: %s", e.Source, msg)
}

func (e *ExternalAPIError) Unwrap() error {
	return e.Err
}

// NewExternalAPI builds an error from a non-2xx upstream response.
func NewExternalAPI(source string, statusCode int, body string) *ExternalAPIError {
	return &ExternalAPIError{Source: source, StatusCode: statusCode, Body: body}
}

// NewExternalAPIWrap builds an error from a transport-level failure.
func NewExternalAPIWrap(source, msg string, err error) *ExternalAPIError {
	return &ExternalAPIError{Source: source, Message: msg, Err: err}
}

// UnknownSourceError reports a caller-requested source identifier that
// is not registered. Fatal to that invocation.
type UnknownSourceError struct {
	Source string
}

func (e *UnknownSourceError) Error() string {
	return "unknown news source: " + e.Source
}

func NewUnknownSource(source string) *UnknownSourceError {
	return &UnknownSourceError{Source: source}
}
