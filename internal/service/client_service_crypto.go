package service

import (
	"fmt"

	"github.com/pentagon14032008-ux/Life-OS/internal/crypto"
	"github.com/pentagon14032008-ux/Life-OS/internal/utils"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

type clientCryptoService struct {
	vault crypto.Vault
	clock utils.Clock
}

func NewClientCryptoService(vault crypto.Vault, clock utils.Clock) ClientCryptoService {
	if clock == nil {
		clock = utils.SystemClock
	}
	return &clientCryptoService{vault: vault, clock: clock}
}

func (c *clientCryptoService) Seal(sess *SyncSession, state *models.State) (models.EncryptedBlob, string, error) {
	pass, ok := sess.Passphrase()
	if !ok {
		return models.EncryptedBlob{}, "", ErrVaultLocked
	}

	blob, err := c.vault.Encrypt(pass, state, nil)
	if err != nil {
		return models.EncryptedBlob{}, "", fmt.Errorf("encrypt state: %w", err)
	}
	encoded, err := crypto.EncodeBlob(blob)
	if err != nil {
		return models.EncryptedBlob{}, "", fmt.Errorf("encode blob: %w", err)
	}
	return blob, encoded, nil
}

func (c *clientCryptoService) Open(sess *SyncSession, blob string) (*models.State, error) {
	if sess.Locked() {
		return nil, ErrVaultLocked
	}
	decoded, err := crypto.DecodeBlob(blob)
	if err != nil {
		return nil, err
	}
	return c.OpenBlob(sess, decoded)
}

func (c *clientCryptoService) OpenBlob(sess *SyncSession, blob models.EncryptedBlob) (*models.State, error) {
	pass, ok := sess.Passphrase()
	if !ok {
		return nil, ErrVaultLocked
	}

	var state models.State
	if err := c.vault.Decrypt(pass, blob, &state); err != nil {
		return nil, err
	}
	return models.EnsureState(&state, c.clock.NowMillis()), nil
}

func (c *clientCryptoService) Fingerprint(data []byte) string {
	return c.vault.Fingerprint(data)
}
