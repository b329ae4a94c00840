package models

import "time"

// User is an account. The same struct travels from the TUI through the
// client services to the server store, and each hop strips what the next
// one must not see: Password never leaves the client, and the stored
// AuthHash never leaves the server.
type User struct {
	UserID int64  `json:"-"`
	Login  string `json:"login"`
	Name   string `json:"name,omitempty"`

	// Password lives only in client memory, between the login form and
	// key derivation.
	Password string `json:"-"`

	// EncryptionSalt is the base64 Argon2id salt of the account key. It is
	// public: the server returns it to anyone who knows the login.
	EncryptionSalt string `json:"encryption_salt,omitempty"`

	// AuthHash is the base64 HKDF output of the account key. The server
	// keeps only an HMAC of it.
	AuthHash string `json:"auth_hash,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
