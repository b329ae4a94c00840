package store

import (
	"context"
	"fmt"

	"github.com/pentagon14032008-ux/Life-OS/internal/config"
	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
)

// Storages groups the server-side repositories.
type Storages struct {
	UserRepository    UserRepository
	VaultRepository   VaultRepository
	VersionRepository VersionRepository
	DeviceRepository  DeviceRepository

	db *DB
}

// NewStorages connects to PostgreSQL, applies migrations and wires every
// repository to the same pool.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return newStoragesFromDB(db, logger), nil
}

func newStoragesFromDB(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository:    NewUserRepository(db, logger),
		VaultRepository:   NewVaultRepository(db, logger),
		VersionRepository: NewVersionRepository(db, logger),
		DeviceRepository:  NewDeviceRepository(db, logger),
		db:                db,
	}
}

// Ping reports whether the database is reachable. Used by health checks.
func (s *Storages) Ping(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return s.db.PingContext(ctx)
}

// Close releases the connection pool.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
