package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/pentagon14032008-ux/Life-OS/internal/config"
	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
	"github.com/pentagon14032008-ux/Life-OS/migrations"
)

// applicationName shows up in pg_stat_activity for vault server sessions.
const applicationName = "life-os-server"

// NewConnectPostgres opens the vault database through the pgx stdlib driver
// and checks that it answers.
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	connCfg, err := pgx.ParseConfig(cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("invalid database DSN")
		return nil, fmt.Errorf("parse database DSN: %w", err)
	}
	if _, set := connCfg.RuntimeParams["application_name"]; !set {
		connCfg.RuntimeParams["application_name"] = applicationName
	}

	conn := stdlib.OpenDB(*connCfg)
	if cfg.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		conn.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err = conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		log.Err(err).
			Str("func", "NewConnectPostgres").
			Str("host", connCfg.Host).
			Str("database", connCfg.Database).
			Msg("error connecting database (ping)")
		return nil, err
	}
	log.Info().
		Str("func", "NewConnectPostgres").
		Str("host", connCfg.Host).
		Str("database", connCfg.Database).
		Int("max_open_conns", cfg.MaxOpenConns).
		Msg("connected to vault database")

	return &DB{
		DB:                 conn,
		logger:             log,
		errorClassificator: NewPostgresErrorClassifier(),
		dialect:            migrations.Postgres,
	}, nil
}

// postgresError returns the SQLSTATE code of err, or "" when the error did
// not come from the server.
func postgresError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
