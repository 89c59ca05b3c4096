package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/artie-labs/geosql/lib/retry"
)

const (
	maxAttempts  = 3
	jitterBaseMs = 500
	jitterMaxMs  = 5_000
)

type Store interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	Close() error
}

// storeWrapper retries statements that fail on a dropped connection.
type storeWrapper struct {
	*sql.DB
	retryCfg retry.Config
}

func (s *storeWrapper) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return retry.WithRetries(ctx, s.retryCfg, func(_ int) (sql.Result, error) {
		return s.DB.ExecContext(ctx, query, args...)
	})
}

func (s *storeWrapper) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return retry.WithRetries(ctx, s.retryCfg, func(_ int) (*sql.Rows, error) {
		return s.DB.QueryContext(ctx, query, args...)
	})
}

func NewStore(db *sql.DB) Store {
	return &storeWrapper{
		DB: db,
		retryCfg: retry.NewConfig(retry.NewConfigArgs{
			JitterBaseMs:   jitterBaseMs,
			JitterMaxMs:    jitterMaxMs,
			MaxAttempts:    maxAttempts,
			IsRetryableErr: isRetryableError,
		}),
	}
}

// Open connects to the database and makes sure it is reachable.
func Open(ctx context.Context, driverName, dsn string) (Store, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to start a SQL client for driver %q: %w", driverName, err)
	}

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to validate the DB connection for driver %q: %w", driverName, err)
	}

	return NewStore(db), nil
}
