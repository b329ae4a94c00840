package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// Digest returns the unkeyed SHA-256 of data. It is the hash primitive of
// the audit chain and of export fingerprints and never sees key material.
func Digest(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}

// DigestHex returns [Digest] as 64 lowercase hex characters.
func DigestHex(data []byte) string {
	return hex.EncodeToString(Digest(data))
}

// hasherPool is a package-level pool of reusable HMAC-SHA256 hash instances.
// Must be initialized via InitHasherPool before use.
var hasherPool sync.Pool

// InitHasherPool initializes the pool of HMAC-SHA256 hashers used for
// transport integrity of upload bodies. Client and server must be
// configured with the same key.
//
//	utils.InitHasherPool(cfg.App.HashKey)
func InitHasherPool(hashKey string) {
	hasherPool = sync.Pool{
		New: func() any {
			return hmac.New(sha256.New, []byte(hashKey))
		},
	}
}

// Hash computes an HMAC-SHA256 over data using a hasher pulled from the
// pool initialized by [InitHasherPool].
func Hash(data []byte) []byte {
	h := hasherPool.Get().(hash.Hash)
	h.Reset()

	h.Write(data)
	sum := h.Sum(nil)

	h.Reset()
	hasherPool.Put(h)

	return sum
}

// HashHex is hex-encoded [Hash].
func HashHex(data []byte) string {
	return hex.EncodeToString(Hash(data))
}

// HashString computes a one-off HMAC-SHA256 of data with hashKey and returns
// it hex-encoded. The server uses it to store account auth hashes so that a
// leaked users table cannot be replayed at login.
func HashString(data string, hashKey string) string {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write([]byte(data))
	return hex.EncodeToString(hasher.Sum(nil))
}

// EqualHex compares two hex digests in constant time.
func EqualHex(a, b string) bool {
	return hmac.Equal([]byte(a), []byte(b))
}
