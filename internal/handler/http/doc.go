// Package http is the REST face of the remote vault store.
//
// Routes cover account auth, the single encrypted vault row per user, its
// bounded version history and the device registry. Requests pass the trace,
// logging, gzip and JWT middleware first; vault routes additionally go
// through the device guard, the per-account rate limit and, for uploads, the
// HMAC body check. Handlers only ever see ciphertext and the plaintext meta.
package http
