package model

import (
	"context"
	"net"
)

// SecurityLayer opens the listener a Server accepts on: plain TCP or TLS.
type SecurityLayer interface {
	Listen(protocol, addr string) (net.Listener, error)
}

// Server is a long-running listener of the agent: the storefront gRPC API
// or the metrics endpoint. Start blocks until Stop is called.
type Server interface {
	Start(securityLayer SecurityLayer) error
	// Stop drains in-flight requests until ctx ends.
	Stop(ctx context.Context) error
	Address() string
}
