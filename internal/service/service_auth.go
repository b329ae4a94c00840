package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pentagon14032008-ux/Life-OS/internal/config"
	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
	"github.com/pentagon14032008-ux/Life-OS/internal/store"
	"github.com/pentagon14032008-ux/Life-OS/internal/utils"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

// tokenSettings groups what is needed to sign and verify session tokens.
type tokenSettings struct {
	signKey  string
	issuer   string
	lifetime time.Duration
}

// authService keeps accounts and issues session tokens. The server never
// receives a password: clients send an auth hash derived from their key,
// and only a keyed HMAC of that hash is stored.
type authService struct {
	users   store.UserRepository
	hashKey string
	tokens  tokenSettings
	logger  *logger.Logger
}

func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		users:   userRepository,
		hashKey: cfg.PasswordHashKey,
		tokens: tokenSettings{
			signKey:  cfg.TokenSignKey,
			issuer:   cfg.TokenIssuer,
			lifetime: cfg.TokenDuration,
		},
		logger: logger,
	}
}

// RegisterUser stores a new account. Login, auth hash and encryption salt
// are all required; a taken login surfaces as store.ErrLoginAlreadyExists.
func (a *authService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	if err := requireFields(ctx, user.Login, user.AuthHash, user.EncryptionSalt); err != nil {
		return models.User{}, err
	}

	user.AuthHash = a.keyed(user.AuthHash)

	created, err := a.users.CreateUser(ctx, user)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("login", user.Login).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	created.AuthHash = ""
	return created, nil
}

// Login checks the auth hash of an existing account. The stored record is
// returned without its hash.
func (a *authService) Login(ctx context.Context, user models.User) (models.User, error) {
	if err := requireFields(ctx, user.Login, user.AuthHash); err != nil {
		return models.User{}, err
	}

	stored, err := a.lookup(ctx, user.Login)
	if err != nil {
		return models.User{}, err
	}

	if !utils.EqualHex(stored.AuthHash, a.keyed(user.AuthHash)) {
		logger.FromContext(ctx).Warn().
			Int64("id", stored.UserID).
			Str("login", stored.Login).
			Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	stored.AuthHash = ""
	return stored, nil
}

// Params hands out the encryption salt so the client can derive its key
// before it logs in.
func (a *authService) Params(ctx context.Context, user models.User) (models.User, error) {
	if err := requireFields(ctx, user.Login); err != nil {
		return models.User{}, err
	}

	stored, err := a.lookup(ctx, user.Login)
	if err != nil {
		return models.User{}, err
	}
	return models.User{Login: stored.Login, EncryptionSalt: stored.EncryptionSalt}, nil
}

func (a *authService) CreateToken(_ context.Context, user models.User) (models.Token, error) {
	t := a.tokens
	token, err := utils.GenerateJWTToken(t.issuer, user.UserID, t.lifetime, t.signKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}
	return token, nil
}

// ParseToken returns ErrTokenIsExpired for a well-formed token past its
// expiry and ErrTokenIsExpiredOrInvalid for anything else that fails.
func (a *authService) ParseToken(_ context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokens.signKey, a.tokens.issuer)
	switch {
	case err == nil:
		return token, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return models.Token{}, ErrTokenIsExpired
	default:
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}
}

func (a *authService) lookup(ctx context.Context, login string) (models.User, error) {
	stored, err := a.users.FindUserByLogin(ctx, models.User{Login: login})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("login", login).Msg("user search by login failed")
		return models.User{}, fmt.Errorf("user search by login failed: %w", err)
	}
	return stored, nil
}

func (a *authService) keyed(authHash string) string {
	return utils.HashString(authHash, a.hashKey)
}

// requireFields fails with ErrInvalidDataProvided when any value is empty.
// The first value is the login and goes to the log.
func requireFields(ctx context.Context, login string, rest ...string) error {
	missing := login == ""
	for _, v := range rest {
		missing = missing || v == ""
	}
	if missing {
		logger.FromContext(ctx).Error().Str("login", login).Msg("invalid user data provided")
		return ErrInvalidDataProvided
	}
	return nil
}
