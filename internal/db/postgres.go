package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// ConnectPostgres opens a pool, pings it and applies the schema.
func ConnectPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, eris.New("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, eris.Wrap(err, "parse DATABASE_URL")
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, eris.Wrap(err, "create pool")
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "postgres connection failed")
	}

	zap.L().Info("connected to postgres")

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "initialize schema")
	}

	return db, nil
}

// initSchema creates or updates the database schema
func initSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	zap.L().Info("schema initialized")
	return nil
}

var schema = []string{
	// -------------------------------
	// FARMERS
	// -------------------------------
	`
		CREATE TABLE IF NOT EXISTS farmers (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			phone VARCHAR(20) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			language VARCHAR(8) NOT NULL DEFAULT 'en',
			state VARCHAR(255) NOT NULL DEFAULT '',
			district VARCHAR(255) NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`,

	// -------------------------------
	// RECOMMENDATION HISTORY
	// -------------------------------
	`
		CREATE TABLE IF NOT EXISTS recommendation_history (
			id UUID PRIMARY KEY,
			farmer_id UUID NULL REFERENCES farmers(id) ON DELETE SET NULL,
			state VARCHAR(255) NOT NULL DEFAULT '',
			district VARCHAR(255) NOT NULL DEFAULT '',
			lat DOUBLE PRECISION NULL,
			lon DOUBLE PRECISION NULL,
			soil_ph DOUBLE PRECISION NULL,
			climate VARCHAR(255) NOT NULL DEFAULT '',
			source VARCHAR(20) NOT NULL,
			fallback BOOLEAN NOT NULL DEFAULT FALSE,
			results JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`,
	`
		CREATE INDEX IF NOT EXISTS idx_recommendation_history_farmer
		ON recommendation_history (farmer_id, created_at DESC)
	`,
}
