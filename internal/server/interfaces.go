package server

import "context"

// Server defines the common lifecycle contract for transport servers managed
// by this package.
//
// Implementations block in [Server.RunServer] until they are stopped and
// release resources in [Server.Shutdown]. A stop requested through Shutdown
// is not an error for RunServer.
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer() error

	// Shutdown gracefully stops the server. When ctx expires first the
	// remaining connections are closed forcibly.
	Shutdown(ctx context.Context) error
}
