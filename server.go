package promptrelay

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"net"
	"sync"

	"promptrelay/internal/wire"
)

// Server accepts local connections on the well-known socket path and runs a
// one-request-per-connection protocol: read one request line, hand it to the
// broker, wait for the answer, write one response line, close. It runs
// inside the front-end process.
type Server struct {
	socketPath string
	broker     *Broker
	transport  Transport
	logger     *slog.Logger

	listener  net.Listener
	wg        sync.WaitGroup
	closeOnce sync.Once
	closed    chan struct{}
}

type ServerOption func(*Server)

// WithServerLogger sets the server's logger. Nil discards log output.
func WithServerLogger(logger *slog.Logger) ServerOption {
	return func(server *Server) { server.logger = logger }
}

// WithServerTransport overrides the platform transport, mainly for tests.
func WithServerTransport(transport Transport) ServerOption {
	return func(server *Server) { server.transport = transport }
}

func NewServer(socketPath string, broker *Broker, options ...ServerOption) *Server {
	if socketPath == "" {
		socketPath = DefaultSocketPath()
	}
	server := &Server{
		socketPath: socketPath,
		broker:     broker,
		transport:  newPlatformTransport(),
		closed:     make(chan struct{}),
	}
	for _, option := range options {
		option(server)
	}
	if server.logger == nil {
		server.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	server.logger = server.logger.With("socket", server.socketPath)
	return server
}

// Broker returns the broker driven by this server.
func (server *Server) Broker() *Broker { return server.broker }

// Respond delivers the human's answer for requestID. This is the entry point
// the UI layer calls once the user has replied.
func (server *Server) Respond(requestID string, answer string) error {
	return server.broker.Resolve(requestID, answer)
}

// Start binds the socket (removing any stale artifact first) and begins
// accepting connections in the background.
func (server *Server) Start() error {
	listener, err := server.transport.Listen(server.socketPath)
	if err != nil {
		return err
	}
	server.listener = listener
	server.logger.Info("ipc server listening")

	server.wg.Add(1)
	go server.acceptLoop(listener)
	return nil
}

// Close stops accepting, fails connections still waiting for an answer, and
// removes the socket artifact. Safe to call more than once.
func (server *Server) Close() error {
	server.closeOnce.Do(func() {
		close(server.closed)
		if server.listener != nil {
			_ = server.listener.Close()
		}
		server.broker.Close()
		RemoveSocket(server.socketPath)
	})
	server.wg.Wait()
	return nil
}

func (server *Server) acceptLoop(listener net.Listener) {
	defer server.wg.Done()
	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-server.closed:
				return
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return
			}
			server.logger.Warn("accept failed", "error", err)
			continue
		}
		server.wg.Add(1)
		go func() {
			defer server.wg.Done()
			server.handleConn(conn)
		}()
	}
}

func (server *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	line, err := wire.ReadLine(bufio.NewReader(conn))
	if err != nil {
		// Immediate close by the peer is the liveness probe; not an error.
		if !errors.Is(err, io.EOF) {
			server.logger.Warn("read request line failed", "error", err)
		}
		return
	}

	var request Request
	if err := wire.Decode(line, &request); err != nil {
		// No trustworthy id to frame an error response with, so just drop
		// the connection.
		server.logger.Warn("malformed request line", "error", err)
		return
	}
	server.logger.Info("request received", "id", request.ID)

	answer := server.broker.SetPending(request)
	server.broker.Announce(request)

	// Wait for the answer with no deadline. Humans may take arbitrarily
	// long; only the client side bounds the exchange.
	response := Response{ID: request.ID}
	select {
	case text, delivered := <-answer:
		if delivered {
			response.Response = text
			response.Success = true
		} else {
			response.Error = ErrResolverDropped.Error()
		}
	case <-server.closed:
		response.Error = ErrServerClosed.Error()
	}

	if err := wire.WriteLine(conn, response); err != nil {
		server.logger.Warn("write response failed", "id", request.ID, "error", err)
		return
	}
	server.logger.Info("response sent", "id", request.ID, "success", response.Success)
}
