package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

type localStateRepository struct {
	*DB
	logger *logger.Logger
}

func NewLocalStateRepository(db *DB, logger *logger.Logger) LocalStateRepository {
	return &localStateRepository{
		DB:     db,
		logger: logger,
	}
}

// LoadState returns the cached state or [ErrLocalStateNotFound].
// The state is returned as stored; callers normalize it.
func (l *localStateRepository) LoadState(ctx context.Context) (*models.State, error) {
	log := logger.FromContext(ctx)

	var (
		raw       string
		updatedAt int64
	)
	err := l.DB.QueryRowContext(ctx, loadLocalState).Scan(&raw, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLocalStateNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "localStateRepository.LoadState").Msg("failed to query local state")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	state := new(models.State)
	if err = json.Unmarshal([]byte(raw), state); err != nil {
		log.Err(err).Str("func", "localStateRepository.LoadState").Msg("local state is not valid JSON")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return state, nil
}

func (l *localStateRepository) SaveState(ctx context.Context, state *models.State) error {
	log := logger.FromContext(ctx)

	if state == nil {
		return errors.New("local state is nil")
	}

	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal local state: %w", err)
	}

	err = l.DB.withRetry(ctx, func(ctx context.Context) error {
		_, execErr := l.DB.ExecContext(ctx, saveLocalState, string(raw), state.UpdatedAt)
		return execErr
	})
	if err != nil {
		log.Err(err).
			Str("func", "localStateRepository.SaveState").
			Int64("updated_at", state.UpdatedAt).
			Msg("failed to save local state")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (l *localStateRepository) ClearState(ctx context.Context) error {
	if _, err := l.DB.ExecContext(ctx, clearLocalState); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "localStateRepository.ClearState").Msg("failed to clear local state")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
