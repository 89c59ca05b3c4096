package mssql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	mssql "github.com/microsoft/go-mssqldb"

	"github.com/artie-labs/geosql/clients/mssql/dialect"
	"github.com/artie-labs/geosql/lib/config"
	"github.com/artie-labs/geosql/lib/db"
	"github.com/artie-labs/geosql/lib/logger"
)

// Store keeps geography text in a SQL Server table with a GEOGRAPHY column.
type Store struct {
	store   db.Store
	tableID dialect.TableIdentifier
	srid    int
}

func NewStore(store db.Store, table string, srid int) *Store {
	return &Store{
		store:   store,
		tableID: dialect.NewTableIdentifier(dialect.DefaultSchema, table),
		srid:    srid,
	}
}

func (s *Store) dialect() dialect.MSSQLDialect {
	return dialect.MSSQLDialect{}
}

func (s *Store) TableID() dialect.TableIdentifier {
	return s.tableID
}

// CreateTable creates the geography table if it does not exist yet.
func (s *Store) CreateTable(ctx context.Context) error {
	query := s.dialect().BuildCreateTableQuery(s.tableID)
	logger.FromContext(ctx).Debug("Executing...", slog.String("query", query))
	if _, err := s.store.ExecContext(ctx, query, mssql.VarChar(s.tableID.ObjectName())); err != nil {
		return fmt.Errorf("failed to create table %s: %w", s.tableID.FullyQualifiedName(), err)
	}

	return nil
}

// Save inserts geography text and returns the id of the new row.
// SQL Server parses the text itself, so malformed text is rejected by the database.
func (s *Store) Save(ctx context.Context, text string) (uuid.UUID, error) {
	id := uuid.New()
	query := s.dialect().BuildInsertQuery(s.tableID)
	if _, err := s.store.ExecContext(ctx, query, mssql.VarChar(id.String()), mssql.NVarCharMax(text), s.srid); err != nil {
		return uuid.Nil, fmt.Errorf("failed to save geography: %w", err)
	}

	return id, nil
}

// Load returns the geography text stored under id.
func (s *Store) Load(ctx context.Context, id uuid.UUID) (string, error) {
	rows, err := s.store.QueryContext(ctx, s.dialect().BuildSelectQuery(s.tableID), mssql.VarChar(id.String()))
	if err != nil {
		return "", fmt.Errorf("failed to load geography %s: %w", id, err)
	}

	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return "", fmt.Errorf("failed to load geography %s: %w", id, err)
		}
		return "", fmt.Errorf("failed to load geography %s: %w", id, sql.ErrNoRows)
	}

	var text string
	if err = rows.Scan(&text); err != nil {
		return "", fmt.Errorf("failed to scan geography %s: %w", id, err)
	}

	return text, nil
}

func (s *Store) Close() error {
	return s.store.Close()
}

// IsNotFound returns true if [Store.Load] found no row for the id.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func LoadStore(ctx context.Context, cfg config.Config) (*Store, error) {
	if cfg.MSSQL == nil {
		return nil, fmt.Errorf("mssql config is nil")
	}

	store, err := db.Open(ctx, "sqlserver", cfg.MSSQL.DSN())
	if err != nil {
		return nil, err
	}

	return NewStore(store, cfg.MSSQL.Table, cfg.SRID), nil
}
