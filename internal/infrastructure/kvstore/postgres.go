package kvstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/config"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS webdesk_kv (
	collection VARCHAR(255) NOT NULL,
	key TEXT NOT NULL,
	value BYTEA NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (collection, key)
);
`

// Postgres stores every collection in one table keyed by (collection, key).
type Postgres struct {
	conn *sql.DB
}

// NewPostgres connects, verifies the connection and ensures the schema exists.
func NewPostgres(ctx context.Context, cfg config.PostgresConfig) (*Postgres, error) {
	if err := validatePostgres(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	conn, err := sql.Open("postgres", cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(5 * time.Minute)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := conn.ExecContext(ctx, postgresSchema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Postgres{conn: conn}, nil
}

func validatePostgres(cfg config.PostgresConfig) error {
	if cfg.Host == "" {
		return fmt.Errorf("host is required")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if cfg.User == "" {
		return fmt.Errorf("user is required")
	}
	if cfg.Database == "" {
		return fmt.Errorf("database is required")
	}
	return nil
}

// Open implements Driver.
func (p *Postgres) Open(_ context.Context, collection string) (Backend, error) {
	if err := validateCollection(collection); err != nil {
		return nil, err
	}
	if p.conn == nil {
		return nil, ErrClosed
	}
	return &postgresBackend{conn: p.conn, collection: collection}, nil
}

// Close implements Driver.
func (p *Postgres) Close() error {
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

type postgresBackend struct {
	conn       *sql.DB
	collection string
}

func (b *postgresBackend) Put(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	query := `
		INSERT INTO webdesk_kv (collection, key, value, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (collection, key) DO UPDATE
		SET value = $3, updated_at = $4
	`
	if _, err := b.conn.ExecContext(ctx, query, b.collection, key, value, time.Now()); err != nil {
		return fmt.Errorf("failed to put %s: %w", key, err)
	}
	return nil
}

func (b *postgresBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query := `SELECT value FROM webdesk_kv WHERE collection = $1 AND key = $2`

	var value []byte
	err := b.conn.QueryRowContext(ctx, query, b.collection, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, true, nil
}

func (b *postgresBackend) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM webdesk_kv WHERE collection = $1 AND key = $2`
	if _, err := b.conn.ExecContext(ctx, query, b.collection, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (b *postgresBackend) Keys(ctx context.Context) ([]string, error) {
	query := `SELECT key FROM webdesk_kv WHERE collection = $1 ORDER BY key`

	rows, err := b.conn.QueryContext(ctx, query, b.collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return keys, nil
}

func (b *postgresBackend) Destroy(ctx context.Context) error {
	query := `DELETE FROM webdesk_kv WHERE collection = $1`
	if _, err := b.conn.ExecContext(ctx, query, b.collection); err != nil {
		return fmt.Errorf("failed to destroy collection %s: %w", b.collection, err)
	}
	return nil
}
