package promptrelay

import (
	"errors"
	"fmt"
	"strings"

	"promptrelay/internal/slot"
)

var (
	// ErrNoPending indicates an answer was delivered while no request was
	// waiting for one.
	ErrNoPending = slot.ErrEmpty
	// ErrIDMismatch indicates an answer was delivered for an id other than
	// the pending request's. The pending request stays resolvable.
	ErrIDMismatch = slot.ErrIDMismatch
	// ErrConnectionClosed indicates the peer closed the connection before a
	// response line arrived.
	ErrConnectionClosed = errors.New("connection closed before response")
	// ErrProtocol indicates a line that could not be parsed as a protocol
	// message.
	ErrProtocol = errors.New("malformed protocol line")
	// ErrExchangeTimeout indicates the client gave up waiting for a response.
	ErrExchangeTimeout = errors.New("timed out waiting for response")
	// ErrResolverDropped indicates the pending request's resolver was dropped
	// before an answer was delivered through it.
	ErrResolverDropped = errors.New("response channel closed")
	// ErrUnsupportedPlatform indicates the local socket transport is not
	// available on this platform. It is distinct from "not running": it
	// means the question cannot even be asked over a socket here.
	ErrUnsupportedPlatform = errors.New("local socket transport not supported on this platform")
	// ErrFrontendNotFound indicates no front-end executable could be located
	// for the fallback launch.
	ErrFrontendNotFound = errors.New("front-end command not found")
	// ErrServerClosed indicates the server was shut down by the caller.
	ErrServerClosed = errors.New("server closed")
)

// ResponseError is returned when the front-end replies with success=false.
type ResponseError struct {
	RequestID string
	Message   string
}

func (err *ResponseError) Error() string {
	if err == nil {
		return ""
	}
	message := strings.TrimSpace(err.Message)
	if message == "" {
		message = "unknown error"
	}
	if err.RequestID == "" {
		return message
	}
	return fmt.Sprintf("request %s failed: %s", err.RequestID, message)
}

// ProcessError is returned when a launched front-end process exits nonzero.
type ProcessError struct {
	Command string
	Stderr  string
	Err     error
}

func (err *ProcessError) Error() string {
	if err == nil {
		return ""
	}
	stderr := strings.TrimSpace(err.Stderr)
	if stderr == "" {
		return fmt.Sprintf("front-end process failed: %v", err.Err)
	}
	return fmt.Sprintf("front-end process failed: %s", stderr)
}

func (err *ProcessError) Unwrap() error {
	if err == nil {
		return nil
	}
	return err.Err
}
