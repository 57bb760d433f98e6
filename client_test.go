package promptrelay

import (
	"bufio"
	"context"
	"errors"
	"net"
	"path/filepath"
	"testing"
	"time"

	"promptrelay/internal/wire"
)

// fakeFrontend accepts one connection and hands it to handle, standing in
// for misbehaving front-ends the real server never produces.
func fakeFrontend(t *testing.T, handle func(conn net.Conn)) string {
	t.Helper()

	socketPath := filepath.Join(t.TempDir(), "ui.sock")
	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		t.Fatalf("listen failed: %v", err)
	}
	t.Cleanup(func() { _ = listener.Close() })

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			// Readiness probes (waitForSocket, Transport.Probe) connect and
			// close without sending anything; skip them and hand handle the
			// first connection that carries data.
			reader := bufio.NewReader(conn)
			if _, err := reader.Peek(1); err != nil {
				_ = conn.Close()
				continue
			}
			defer conn.Close()
			handle(&bufferedConn{Conn: conn, reader: reader})
			return
		}
	}()

	waitForSocket(t, socketPath)
	return socketPath
}

// bufferedConn lets handle read bytes already buffered while peeking for
// probe connections.
type bufferedConn struct {
	net.Conn
	reader *bufio.Reader
}

func (conn *bufferedConn) Read(p []byte) (int, error) { return conn.reader.Read(p) }

func readRequestLine(t *testing.T, conn net.Conn) Request {
	t.Helper()
	line, err := wire.ReadLine(bufio.NewReader(conn))
	if err != nil {
		t.Errorf("read request failed: %v", err)
		return Request{}
	}
	var request Request
	if err := wire.Decode(line, &request); err != nil {
		t.Errorf("decode request failed: %v", err)
	}
	return request
}

func TestIsRunningFalseWhenSocketAbsent(t *testing.T) {
	client := NewClient(filepath.Join(t.TempDir(), "missing.sock"))

	if client.IsRunning() {
		t.Fatal("expected IsRunning=false for an absent socket artifact")
	}
	if running, err := client.Running(); running || err != nil {
		t.Fatalf("expected (false, nil), got (%v, %v)", running, err)
	}
}

func TestSendTimesOutWhenNoResponseArrives(t *testing.T) {
	socketPath := fakeFrontend(t, func(conn net.Conn) {
		readRequestLine(t, conn)
		time.Sleep(5 * time.Second) // never answer
	})

	client := NewClient(socketPath, WithExchangeTimeout(100*time.Millisecond))
	_, err := client.Send(context.Background(), Request{ID: "r1", Message: "anyone?"})
	if !errors.Is(err, ErrExchangeTimeout) {
		t.Fatalf("expected ErrExchangeTimeout, got %v", err)
	}
}

func TestSendReportsConnectionClosedWithoutAnswer(t *testing.T) {
	socketPath := fakeFrontend(t, func(conn net.Conn) {
		readRequestLine(t, conn)
		// close without writing a response
	})

	client := NewClient(socketPath)
	_, err := client.Send(context.Background(), Request{ID: "r1", Message: "hello?"})
	if !errors.Is(err, ErrConnectionClosed) {
		t.Fatalf("expected ErrConnectionClosed, got %v", err)
	}
}

func TestSendMapsFailureResponseToResponseError(t *testing.T) {
	socketPath := fakeFrontend(t, func(conn net.Conn) {
		request := readRequestLine(t, conn)
		_ = wire.WriteLine(conn, Response{ID: request.ID, Success: false, Error: "response channel closed"})
	})

	client := NewClient(socketPath)
	_, err := client.Send(context.Background(), Request{ID: "r1", Message: "doomed"})

	var responseErr *ResponseError
	if !errors.As(err, &responseErr) {
		t.Fatalf("expected ResponseError, got %v", err)
	}
	if responseErr.Message != "response channel closed" {
		t.Fatalf("unexpected message: %q", responseErr.Message)
	}
}

func TestSendUsesGenericMessageWhenErrorTextAbsent(t *testing.T) {
	socketPath := fakeFrontend(t, func(conn net.Conn) {
		request := readRequestLine(t, conn)
		_ = wire.WriteLine(conn, Response{ID: request.ID, Success: false})
	})

	client := NewClient(socketPath)
	_, err := client.Send(context.Background(), Request{ID: "r1", Message: "doomed"})

	var responseErr *ResponseError
	if !errors.As(err, &responseErr) {
		t.Fatalf("expected ResponseError, got %v", err)
	}
	if got := responseErr.Error(); got != "request r1 failed: unknown error" {
		t.Fatalf("unexpected error text: %q", got)
	}
}

func TestSendRejectsMalformedResponseLine(t *testing.T) {
	socketPath := fakeFrontend(t, func(conn net.Conn) {
		readRequestLine(t, conn)
		_, _ = conn.Write([]byte("garbage\n"))
	})

	client := NewClient(socketPath)
	_, err := client.Send(context.Background(), Request{ID: "r1", Message: "hm"})
	if !errors.Is(err, ErrProtocol) {
		t.Fatalf("expected ErrProtocol, got %v", err)
	}
}

func TestSendFailsFastWhenNothingListens(t *testing.T) {
	client := NewClient(filepath.Join(t.TempDir(), "missing.sock"))

	started := time.Now()
	_, err := client.Send(context.Background(), Request{ID: "r1", Message: "void"})
	if err == nil {
		t.Fatal("expected connection error")
	}
	if elapsed := time.Since(started); elapsed > 5*time.Second {
		t.Fatalf("connect failure took too long: %s", elapsed)
	}
}
