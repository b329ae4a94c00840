package crypto

import "github.com/pentagon14032008-ux/Life-OS/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// Vault is the passphrase-derived encryption layer of the local-first
// store. It is stateless: the passphrase is passed on every call and never
// retained.
//
//	key  = PBKDF2-HMAC-SHA256(passphrase, salt, iters)   (32 bytes)
//	blob = {v, iters, salt, iv, AES-256-GCM(key, iv, JCS(json(value)))}
type Vault interface {
	// DeriveKey stretches passphrase into a 256-bit key. A nil salt is
	// replaced with 16 fresh random bytes; iterations <= 0 selects the
	// configured default.
	DeriveKey(passphrase string, salt []byte, iterations int) (DerivedKey, error)

	// Encrypt seals value under passphrase. Every call uses a fresh nonce
	// and, unless params pins one, a fresh salt, so encrypting the same
	// value twice yields different blobs.
	Encrypt(passphrase string, value any, params *KeyParams) (models.EncryptedBlob, error)

	// Decrypt opens blob and unmarshals the plaintext into target.
	// Returns ErrAuthentication (or ErrMalformedBlob, which wraps it).
	Decrypt(passphrase string, blob models.EncryptedBlob, target any) error

	// Fingerprint is the non-secret SHA-256 hex of data, used for change
	// detection and export signatures.
	Fingerprint(data []byte) string
}

// KeyChainService derives the account credentials sent to the server.
// It knows nothing about the network, the database or the vault.
//
//	Salt     = GenerateEncryptionSalt()                (registration only)
//	KEK      = GenerateKEK(password, salt)             (Argon2id)
//	AuthHash = GenerateAuthHash(KEK, authSalt)         (HKDF-SHA256)
//
// The account password and the vault passphrase are separate secrets:
// logging in never unlocks the vault.
type KeyChainService interface {
	// GenerateEncryptionSalt returns 16 random bytes. The salt is not a
	// secret and is stored on the server in the clear.
	GenerateEncryptionSalt() ([]byte, error)

	// GenerateKEK derives the account key with Argon2id. It exists only in
	// client memory.
	GenerateKEK(password string, salt []byte) []byte

	// GenerateAuthHash expands the KEK with HKDF-SHA256, authSalt as the
	// info label. The result is the login credential; the server cannot
	// recover the KEK from it.
	GenerateAuthHash(KEK []byte, authSalt string) []byte
}
