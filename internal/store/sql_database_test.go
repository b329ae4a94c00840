package store

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRetry(t *testing.T) {
	t.Run("gives up after the retry budget", func(t *testing.T) {
		db := &DB{errorClassificator: NewPostgresErrorClassifier()}
		calls := 0
		err := db.withRetry(context.Background(), func(context.Context) error {
			calls++
			return pgError(pgerrcode.ConnectionFailure)
		})
		require.Error(t, err)
		assert.Equal(t, pgerrcode.ConnectionFailure, postgresError(err))
		assert.Equal(t, retryAttempts+1, calls)
	})

	t.Run("stops on cancelled context", func(t *testing.T) {
		db := &DB{errorClassificator: NewPostgresErrorClassifier()}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		err := db.withRetry(ctx, func(context.Context) error {
			return pgError(pgerrcode.SerializationFailure)
		})
		assert.Error(t, err)
	})

	t.Run("no classifier runs once", func(t *testing.T) {
		db := &DB{}
		calls := 0
		_ = db.withRetry(context.Background(), func(context.Context) error {
			calls++
			return pgError(pgerrcode.ConnectionFailure)
		})
		assert.Equal(t, 1, calls)
	})
}
