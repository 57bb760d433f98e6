package promptrelay

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"promptrelay/internal/wire"
)

// DefaultExchangeTimeout bounds one request/response exchange on the client
// side. Generous because a human is on the other end; the server itself
// never times out a waiting connection.
const DefaultExchangeTimeout = 600 * time.Second

// Client is used by the backend to reach a front-end that is already
// running. One connection carries exactly one request/response pair.
type Client struct {
	socketPath string
	timeout    time.Duration
	transport  Transport
}

type ClientOption func(*Client)

// WithExchangeTimeout overrides the per-exchange timeout.
func WithExchangeTimeout(timeout time.Duration) ClientOption {
	return func(client *Client) {
		if timeout > 0 {
			client.timeout = timeout
		}
	}
}

// WithClientTransport overrides the platform transport, mainly for tests.
func WithClientTransport(transport Transport) ClientOption {
	return func(client *Client) { client.transport = transport }
}

func NewClient(socketPath string, options ...ClientOption) *Client {
	if socketPath == "" {
		socketPath = DefaultSocketPath()
	}
	client := &Client{
		socketPath: socketPath,
		timeout:    DefaultExchangeTimeout,
		transport:  newPlatformTransport(),
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// Running reports whether a front-end is accepting connections on the
// socket. ErrUnsupportedPlatform means the question cannot be answered
// here, as opposed to a definite "not running".
func (client *Client) Running() (bool, error) {
	return client.transport.Probe(client.socketPath)
}

// IsRunning is Running with every failure, including an unsupported
// platform, read as false.
func (client *Client) IsRunning() bool {
	running, _ := client.Running()
	return running
}

// Send opens a fresh connection, writes the request line, and waits for the
// response line under the exchange timeout. A success=false reply comes back
// as a *ResponseError; transport-level failures keep their own error types
// so the orchestrator can treat them all as "try the fallback".
func (client *Client) Send(ctx context.Context, request Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, client.timeout)
	defer cancel()

	conn, err := client.transport.Dial(ctx, client.socketPath)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	if err := wire.WriteLine(conn, request); err != nil {
		return "", err
	}

	line, err := wire.ReadLine(bufio.NewReader(conn))
	if err != nil {
		switch {
		case errors.Is(err, io.EOF):
			return "", ErrConnectionClosed
		case isTimeout(err):
			return "", fmt.Errorf("%w after %s", ErrExchangeTimeout, client.timeout)
		default:
			return "", fmt.Errorf("read response: %w", err)
		}
	}

	var response Response
	if err := wire.Decode(line, &response); err != nil {
		return "", fmt.Errorf("%w: %v", ErrProtocol, err)
	}
	if !response.Success {
		return "", &ResponseError{RequestID: response.ID, Message: response.Error}
	}
	return response.Response, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
