package server

import "context"

// Server defines the common lifecycle contract for transport servers managed
// by this package.
//
// Implementations block in [RunServer] until they stop serving and release
// resources in [Shutdown].
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	// Stopping through Shutdown is not an error.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops the server, waiting for in-flight requests
	// until ctx is done.
	Shutdown(ctx context.Context) error
}
