//go:build !windows

package promptrelay

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"
)

type unixTransport struct{}

func newPlatformTransport() Transport { return unixTransport{} }

func (unixTransport) Listen(path string) (net.Listener, error) {
	// A stale artifact from a crashed front-end blocks the bind; remove it.
	// No advisory lock is taken, so two servers racing to start here is
	// unhandled.
	if _, err := os.Stat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return nil, fmt.Errorf("remove stale socket: %w", err)
		}
	}
	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", path, err)
	}
	return listener, nil
}

func (unixTransport) Dial(ctx context.Context, path string) (net.Conn, error) {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "unix", path)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", path, err)
	}
	return conn, nil
}

func (unixTransport) Probe(path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		return false, nil
	}
	conn, err := net.DialTimeout("unix", path, time.Second)
	if err != nil {
		return false, nil
	}
	_ = conn.Close()
	return true, nil
}
