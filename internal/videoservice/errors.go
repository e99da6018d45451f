package videoservice

import (
	"errors"
	"fmt"
)

var (
	ErrRequestFailed = errors.New("request failed")
	ErrTransport     = errors.New("transport error")
)

// RequestError reports a backend response outside the 2xx range.
type RequestError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: api error: %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: api error: %d - %s", e.Op, e.StatusCode, e.Body)
}

func (e *RequestError) Is(target error) bool {
	return target == ErrRequestFailed
}

// TransportError reports a failure to reach the backend or to read its reply.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// StatusCode extracts the HTTP status from a *RequestError anywhere in err's chain.
func StatusCode(err error) (int, bool) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode, true
	}
	return 0, false
}
