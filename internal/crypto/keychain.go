// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/hkdf"
)

const authHashSize = 32

// Argon2Params tunes the account key derivation.
type Argon2Params struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	KeyLen  uint32
}

// DefaultArgon2Params follow the OWASP recommendation for Argon2id:
// one pass over 64 MiB with four lanes, 256-bit key.
var DefaultArgon2Params = Argon2Params{Time: 1, Memory: 64 * 1024, Threads: 4, KeyLen: 32}

type keyChainService struct {
	params Argon2Params
}

// KeyChainOption adjusts a [KeyChainService] at construction.
type KeyChainOption func(*keyChainService)

// WithArgon2Params replaces [DefaultArgon2Params]. Every device of an
// account must use the same values or logins stop matching.
func WithArgon2Params(p Argon2Params) KeyChainOption {
	return func(k *keyChainService) { k.params = p }
}

func NewKeyChainService(opts ...KeyChainOption) KeyChainService {
	k := &keyChainService{params: DefaultArgon2Params}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

func (k *keyChainService) GenerateEncryptionSalt() ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	return salt, nil
}

func (k *keyChainService) GenerateKEK(password string, salt []byte) []byte {
	p := k.params
	return argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, p.KeyLen)
}

func (k *keyChainService) GenerateAuthHash(KEK []byte, authSalt string) []byte {
	out := make([]byte, authHashSize)
	// HKDF-Expand only fails past 255 blocks
	_, _ = io.ReadFull(hkdf.Expand(sha256.New, KEK, []byte(authSalt)), out)
	return out
}
