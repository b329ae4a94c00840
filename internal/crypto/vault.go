// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"

	"github.com/pentagon14032008-ux/Life-OS/internal/utils"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

const (
	// DefaultIterations is the PBKDF2-HMAC-SHA256 work factor for new blobs.
	DefaultIterations = 210000
	// MaxIterations bounds the work factor accepted from a stored blob.
	MaxIterations = 10 * DefaultIterations

	saltSize  = 16
	nonceSize = 12
	keySize   = 32
)

// DerivedKey is an AES-256 key together with the parameters that produced it.
type DerivedKey struct {
	Key        []byte
	Salt       []byte
	Iterations int
}

// KeyParams pins the salt and iteration count of an encryption. Used when
// a caller needs to re-encrypt under an existing key.
type KeyParams struct {
	Salt       []byte
	Iterations int
}

// vault implements [Vault].
type vault struct {
	iterations int
	random     io.Reader
}

// VaultOption customizes [NewVault].
type VaultOption func(*vault)

// WithIterations overrides the PBKDF2 work factor for new blobs. Existing
// blobs always decrypt with the count stored inside them. Counts above
// [MaxIterations] are ignored, since such blobs would not decrypt.
func WithIterations(n int) VaultOption {
	return func(v *vault) {
		if n > 0 && n <= MaxIterations {
			v.iterations = n
		}
	}
}

// WithRandom replaces the CSPRNG. Only tests should use it.
func WithRandom(r io.Reader) VaultOption {
	return func(v *vault) {
		v.random = r
	}
}

// NewVault constructs the passphrase-based encryption layer.
func NewVault(opts ...VaultOption) Vault {
	v := &vault{
		iterations: DefaultIterations,
		random:     rand.Reader,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// DeriveKey implements [Vault]. A nil salt is replaced by a fresh random one.
func (v *vault) DeriveKey(passphrase string, salt []byte, iterations int) (DerivedKey, error) {
	if iterations <= 0 {
		iterations = v.iterations
	}
	if len(salt) == 0 {
		salt = make([]byte, saltSize)
		if _, err := io.ReadFull(v.random, salt); err != nil {
			return DerivedKey{}, fmt.Errorf("generate salt: %w", err)
		}
	}

	key := pbkdf2.Key([]byte(passphrase), salt, iterations, keySize, sha256.New)
	return DerivedKey{Key: key, Salt: salt, Iterations: iterations}, nil
}

// Encrypt implements [Vault]. The value is marshaled to JSON and
// canonicalized before sealing, so equal values always produce equal
// plaintexts regardless of map ordering.
func (v *vault) Encrypt(passphrase string, value any, params *KeyParams) (models.EncryptedBlob, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return models.EncryptedBlob{}, fmt.Errorf("marshal plaintext: %w", err)
	}
	plaintext, err := utils.CanonicalJSON(raw)
	if err != nil {
		return models.EncryptedBlob{}, fmt.Errorf("canonicalize plaintext: %w", err)
	}

	var (
		salt  []byte
		iters int
	)
	if params != nil {
		salt, iters = params.Salt, params.Iterations
	}
	dk, err := v.DeriveKey(passphrase, salt, iters)
	if err != nil {
		return models.EncryptedBlob{}, err
	}

	gcm, err := newGCM(dk.Key)
	if err != nil {
		return models.EncryptedBlob{}, err
	}

	nonce := make([]byte, nonceSize)
	if _, err = io.ReadFull(v.random, nonce); err != nil {
		return models.EncryptedBlob{}, fmt.Errorf("generate nonce: %w", err)
	}

	ct := gcm.Seal(nil, nonce, plaintext, nil)

	return models.EncryptedBlob{
		V:       models.BlobVersion,
		Iters:   dk.Iterations,
		SaltB64: base64.StdEncoding.EncodeToString(dk.Salt),
		IVB64:   base64.StdEncoding.EncodeToString(nonce),
		CtB64:   base64.StdEncoding.EncodeToString(ct),
	}, nil
}

// Decrypt implements [Vault]. Any failure after the blob has been parsed
// is reported as [ErrAuthentication]: a wrong passphrase and a tampered
// ciphertext both fail the GCM tag check.
func (v *vault) Decrypt(passphrase string, blob models.EncryptedBlob, target any) error {
	if blob.V != models.BlobVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrMalformedBlob, blob.V)
	}
	if blob.Iters <= 0 || blob.Iters > MaxIterations {
		return fmt.Errorf("%w: invalid iteration count %d", ErrMalformedBlob, blob.Iters)
	}
	salt, err := base64.StdEncoding.DecodeString(blob.SaltB64)
	if err != nil || len(salt) == 0 {
		return fmt.Errorf("%w: salt", ErrMalformedBlob)
	}
	nonce, err := base64.StdEncoding.DecodeString(blob.IVB64)
	if err != nil || len(nonce) != nonceSize {
		return fmt.Errorf("%w: iv", ErrMalformedBlob)
	}
	ct, err := base64.StdEncoding.DecodeString(blob.CtB64)
	if err != nil {
		return fmt.Errorf("%w: ciphertext", ErrMalformedBlob)
	}

	dk, err := v.DeriveKey(passphrase, salt, blob.Iters)
	if err != nil {
		return err
	}
	gcm, err := newGCM(dk.Key)
	if err != nil {
		return err
	}

	plaintext, err := gcm.Open(nil, nonce, ct, nil)
	if err != nil {
		return ErrAuthentication
	}

	if err = json.Unmarshal(plaintext, target); err != nil {
		return fmt.Errorf("%w: plaintext is not valid JSON", ErrAuthentication)
	}
	return nil
}

// Fingerprint implements [Vault].
func (v *vault) Fingerprint(data []byte) string {
	return utils.DigestHex(data)
}

// EncodeBlob packs a blob into the transport form: base64 of its JSON.
func EncodeBlob(blob models.EncryptedBlob) (string, error) {
	raw, err := json.Marshal(blob)
	if err != nil {
		return "", fmt.Errorf("marshal blob: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// DecodeBlob reverses [EncodeBlob].
func DecodeBlob(s string) (models.EncryptedBlob, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return models.EncryptedBlob{}, fmt.Errorf("%w: transport encoding", ErrMalformedBlob)
	}
	var blob models.EncryptedBlob
	if err = json.Unmarshal(raw, &blob); err != nil {
		return models.EncryptedBlob{}, fmt.Errorf("%w: %v", ErrMalformedBlob, err)
	}
	return blob, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}
