package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/pentagon14032008-ux/Life-OS/internal/adapter"
	"github.com/pentagon14032008-ux/Life-OS/internal/crypto"
	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
	"github.com/pentagon14032008-ux/Life-OS/internal/store"
	"github.com/pentagon14032008-ux/Life-OS/internal/utils"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

// authSalt is mixed into the auth hash so that it differs from any other
// use of the KEK.
const authSalt = "life-os-auth-v1"

type clientAuthService struct {
	kv      store.KVRepository
	adapter adapter.AuthAdapter
	crypto  crypto.KeyChainService
	clock   utils.Clock

	logger *logger.Logger
}

func NewClientAuthService(kv store.KVRepository, authAdapter adapter.AuthAdapter, keyChain crypto.KeyChainService, clock utils.Clock, logger *logger.Logger) ClientAuthService {
	if clock == nil {
		clock = utils.SystemClock
	}
	return &clientAuthService{
		kv:      kv,
		adapter: authAdapter,
		crypto:  keyChain,
		clock:   clock,
		logger:  logger,
	}
}

func (a *clientAuthService) Register(ctx context.Context, user models.User) (models.Session, error) {
	salt, err := a.crypto.GenerateEncryptionSalt()
	if err != nil {
		return models.Session{}, fmt.Errorf("error generating Salt: %w", err)
	}

	kek := a.crypto.GenerateKEK(user.Password, salt)
	authHashBytes := a.crypto.GenerateAuthHash(kek, authSalt)

	user.EncryptionSalt = base64.StdEncoding.EncodeToString(salt)
	user.AuthHash = base64.StdEncoding.EncodeToString(authHashBytes)
	user.Password = ""

	if _, err = a.adapter.Register(ctx, user); err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrRegisterOnServer, mapAdapterError(err))
	}

	return a.storeSession(ctx, user.Login)
}

func (a *clientAuthService) Login(ctx context.Context, user models.User) (models.Session, error) {
	// L2: получаем encryption_salt с сервера по логину
	userWithSalt, err := a.adapter.RequestSalt(ctx, models.User{Login: user.Login})
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrLoginOnServer, mapAdapterError(err))
	}

	// L3: декодируем соль и вычисляем KEK из пароля + соли
	saltBytes, err := base64.StdEncoding.DecodeString(userWithSalt.EncryptionSalt)
	if err != nil {
		return models.Session{}, fmt.Errorf("decode encryption salt: %w", err)
	}
	kek := a.crypto.GenerateKEK(user.Password, saltBytes)

	// L4: вычисляем AuthHash и отправляем login + auth_hash
	authHashBytes := a.crypto.GenerateAuthHash(kek, authSalt)
	request := models.User{
		Login:    user.Login,
		AuthHash: base64.StdEncoding.EncodeToString(authHashBytes),
	}

	if _, err = a.adapter.Login(ctx, request); err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrLoginOnServer, mapAdapterError(err))
	}

	return a.storeSession(ctx, user.Login)
}

func (a *clientAuthService) RestoreSession(ctx context.Context) (models.Session, bool) {
	raw, err := a.kv.Get(ctx, store.KeySession)
	if err != nil {
		return models.Session{}, false
	}

	var session models.Session
	if err = json.Unmarshal([]byte(raw), &session); err != nil || session.Token == "" {
		a.logger.Warn().Err(err).Msg("stored session is unreadable")
		return models.Session{}, false
	}

	_, expiresAt, err := utils.UnverifiedClaims(session.Token)
	if err != nil || !expiresAt.After(a.clock()) {
		return models.Session{}, false
	}

	a.adapter.SetToken(session.Token)
	return session, true
}

func (a *clientAuthService) Logout(ctx context.Context) error {
	a.adapter.SetToken("")
	if err := a.kv.Delete(ctx, store.KeySession); err != nil {
		return fmt.Errorf("forget session: %w", err)
	}
	return nil
}

func (a *clientAuthService) storeSession(ctx context.Context, login string) (models.Session, error) {
	token := a.adapter.Token()
	userID, _, err := utils.UnverifiedClaims(token)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrTokenIsExpiredOrInvalid, err)
	}

	session := models.Session{UserID: userID, Login: login, Token: token}
	raw, err := json.Marshal(session)
	if err != nil {
		return models.Session{}, fmt.Errorf("marshal session: %w", err)
	}
	if err = a.kv.Set(ctx, store.KeySession, string(raw)); err != nil {
		// не фатально: просто придётся войти заново после перезапуска
		a.logger.Warn().Err(err).Msg("session token was not persisted")
	}
	return session, nil
}
