//go:build windows

package promptrelay

import (
	"context"
	"net"
)

// Named pipes would be the natural transport here; not implemented yet.
type unsupportedTransport struct{}

func newPlatformTransport() Transport { return unsupportedTransport{} }

func (unsupportedTransport) Listen(string) (net.Listener, error) {
	return nil, ErrUnsupportedPlatform
}

func (unsupportedTransport) Dial(context.Context, string) (net.Conn, error) {
	return nil, ErrUnsupportedPlatform
}

func (unsupportedTransport) Probe(string) (bool, error) {
	return false, ErrUnsupportedPlatform
}
