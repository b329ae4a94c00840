package store

import (
	"context"
	"fmt"

	"github.com/pentagon14032008-ux/Life-OS/internal/config"
	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
)

// ClientStorages is the client's local cache.
type ClientStorages struct {
	// StateRepository is the plaintext offline mirror of the current state.
	StateRepository LocalStateRepository
	// KVRepository holds the sync marker, the device id and the session.
	KVRepository KVRepository

	db *DB
}

// NewClientStorages opens (or creates) the SQLite file named by
// cfg.DB.DSN and brings its schema up to date.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		StateRepository: NewLocalStateRepository(db, logger),
		KVRepository:    NewKVRepository(db, logger),
		db:              db,
	}, nil
}

func (s *ClientStorages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
