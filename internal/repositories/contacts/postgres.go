package contacts

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ekazarova/rolodex/internal/models"
)

// PostgresRepository stores the collection blob in a postgres table, for
// deployments where the rolodex is shared between machines.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// OpenPostgres connects to dsn and makes sure the collections table exists.
func OpenPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS collections (
			name       TEXT PRIMARY KEY,
			data       BYTEA NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure collections table: %w", err)
	}
	return pool, nil
}

func (r *PostgresRepository) LoadAll(ctx context.Context) ([]models.Contact, error) {
	var data []byte
	err := r.pool.QueryRow(ctx,
		`SELECT data FROM collections WHERE name = $1`, CollectionName).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return []models.Contact{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}
	return decodeCollection(data)
}

func (r *PostgresRepository) SaveAll(ctx context.Context, collection []models.Contact) error {
	data, err := encodeCollection(collection)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO collections (name, data, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, CollectionName, data)
	if err != nil {
		return fmt.Errorf("failed to save collection: %w", err)
	}
	return nil
}
