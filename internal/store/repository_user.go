package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"

	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

// userRepository keeps accounts in the "users" table. Only the login, the
// auth hash and the public encryption salt are stored; nothing in it can
// open a vault.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser inserts the account and returns it with the id and creation
// time assigned by the database. A taken login is [ErrLoginAlreadyExists].
// Inserts are not retried: a lost reply could turn a retry into a false
// duplicate.
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx).With().Str("func", "*userRepository.CreateUser").Str("login", user.Login).Logger()

	created, err := scanUser(r.db.QueryRowContext(ctx, createUser, user.Login, user.AuthHash, user.Name, user.EncryptionSalt))
	switch {
	case err == nil:
		log.Debug().Int64("user_id", created.UserID).Msg("account created")
		return created, nil
	case postgresError(err) == pgerrcode.UniqueViolation:
		log.Info().Msg("login already taken")
		return models.User{}, ErrLoginAlreadyExists
	default:
		log.Err(err).Msg("error creating account")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}
}

// FindUserByLogin looks the account up by user.Login. A missing account is
// [ErrNoUserWasFound].
func (r *userRepository) FindUserByLogin(ctx context.Context, user models.User) (models.User, error) {
	var found models.User
	err := r.db.withRetry(ctx, func(ctx context.Context) error {
		var err error
		found, err = scanUser(r.db.QueryRowContext(ctx, findUserByLogin, user.Login))
		return err
	})

	switch {
	case err == nil:
		return found, nil
	case errors.Is(err, sql.ErrNoRows), postgresError(err) == pgerrcode.NoDataFound:
		return models.User{}, ErrNoUserWasFound
	default:
		logger.FromContext(ctx).Err(err).
			Str("func", "*userRepository.FindUserByLogin").
			Str("login", user.Login).
			Msg("error looking up account")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}
}

func scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.UserID, &u.Login, &u.AuthHash, &u.Name, &u.EncryptionSalt, &u.CreatedAt)
	return u, err
}
