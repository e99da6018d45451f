package videoservice

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMatching(t *testing.T) {
	reqErr := &RequestError{Op: "upload video", StatusCode: 413}
	wrapped := fmt.Errorf("cli: %w", reqErr)

	if !errors.Is(wrapped, ErrRequestFailed) {
		t.Error("wrapped RequestError should match ErrRequestFailed")
	}
	if code, ok := StatusCode(wrapped); !ok || code != 413 {
		t.Errorf("StatusCode() = %d, %v, want 413", code, ok)
	}
	if reqErr.Error() != "upload video: api error: 413" {
		t.Errorf("Error() = %q", reqErr.Error())
	}

	cause := errors.New("connection refused")
	transportErr := &TransportError{Op: "check video status", Err: cause}
	if !errors.Is(transportErr, ErrTransport) {
		t.Error("TransportError should match ErrTransport")
	}
	if !errors.Is(transportErr, cause) {
		t.Error("TransportError should unwrap to its cause")
	}
	if errors.Is(transportErr, ErrRequestFailed) {
		t.Error("TransportError must not match ErrRequestFailed")
	}
	if _, ok := StatusCode(transportErr); ok {
		t.Error("StatusCode() should report false for transport errors")
	}
}
