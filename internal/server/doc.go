// Package server wires and runs the application's transport servers.
//
// It provides orchestration for HTTP and gRPC server lifecycles: startup of
// all enabled transports and their graceful shutdown once the caller's
// context is cancelled.
package server
