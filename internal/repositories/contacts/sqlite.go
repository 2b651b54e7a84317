package contacts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/ekazarova/rolodex/internal/dbx"
	"github.com/ekazarova/rolodex/internal/migrations"
	"github.com/ekazarova/rolodex/internal/models"
)

// SQLiteRepository stores the collection blob in a local sqlite database.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository returns a repository bound to an already-migrated DB.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// OpenSQLite opens (creating if needed) the sqlite database at dsn and runs
// the embedded migrations.
func OpenSQLite(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

func (r *SQLiteRepository) LoadAll(ctx context.Context) ([]models.Contact, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM collections WHERE name = ?`, CollectionName).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return []models.Contact{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}
	return decodeCollection(data)
}

func (r *SQLiteRepository) SaveAll(ctx context.Context, collection []models.Contact) error {
	data, err := encodeCollection(collection)
	if err != nil {
		return err
	}

	return dbx.InTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO collections (name, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
		`, CollectionName, data)
		if err != nil {
			return fmt.Errorf("failed to save collection: %w", err)
		}
		return nil
	})
}
