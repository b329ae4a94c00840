// Package server runs the remote store transports: the chi router over
// net/http and the gRPC health endpoint. Both start together, stop on
// SIGINT/SIGTERM and share one graceful shutdown deadline.
package server
