package promptrelay

import (
	"context"
	"net"
	"os"
	"path/filepath"
)

// Transport abstracts the platform's local stream socket facility. Platforms
// without one return ErrUnsupportedPlatform from every method so callers can
// tell "cannot check here" apart from "definitely not running".
type Transport interface {
	Listen(path string) (net.Listener, error)
	Dial(ctx context.Context, path string) (net.Conn, error)
	// Probe reports whether something is accepting connections at path.
	// It opens and immediately discards a connection; no protocol exchange.
	Probe(path string) (bool, error)
}

// DefaultSocketPath is the well-known path the front-end listens on.
func DefaultSocketPath() string {
	return filepath.Join(os.TempDir(), "promptrelay-ui.sock")
}

// RemoveSocket deletes the socket artifact at path. Best-effort, used on
// front-end shutdown so the next liveness probe fails fast.
func RemoveSocket(path string) {
	if path == "" {
		return
	}
	_ = os.Remove(path)
}
