package database

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/pawonbufatim/storefront-server/src/logging"
)

// Database holds the PostgreSQL connection pool
type Database struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// New creates a connection pool, applies the schema and seeds default rows
func New(ctx context.Context, databaseURL string) (*Database, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Bounded pool; excess demand queues on acquire
	config.MaxConns = 25
	config.MinConns = 5
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	db := &Database{pool: pool, logger: logging.NewLogger("database")}

	if err := db.initializeSchema(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if err := db.seedCategories(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to seed categories: %w", err)
	}

	return db, nil
}

// NewFromPool wraps an existing pool without running schema setup
func NewFromPool(pool *pgxpool.Pool) *Database {
	return &Database{pool: pool, logger: logging.NewLogger("database")}
}

// Close closes the database connection pool
func (db *Database) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// GetPool returns the connection pool
func (db *Database) GetPool() *pgxpool.Pool {
	return db.pool
}

// initializeSchema reads and executes schema.sql
func (db *Database) initializeSchema(ctx context.Context) error {
	content, err := os.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema.sql: %w", err)
	}

	if _, err := db.pool.Exec(ctx, string(content)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	db.logger.Info().Msg("database schema initialized")
	return nil
}

// seedCategories inserts the default storefront categories on first boot
func (db *Database) seedCategories(ctx context.Context) error {
	var count int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	_, err := db.pool.Exec(ctx, `
		INSERT INTO categories (name, description) VALUES
		('Pempek', 'Berbagai jenis pempek berkualitas tinggi dengan cita rasa tradisional'),
		('Tekwan', 'Tekwan segar dengan kuah gurih dan isian yang melimpah'),
		('Tepung Ikan', 'Tepung ikan berkualitas tinggi untuk bahan baku pempek')
	`)
	if err != nil {
		return fmt.Errorf("failed to insert default categories: %w", err)
	}

	db.logger.Info().Msg("default categories created")
	return nil
}

// Health checks if the database is reachable
func (db *Database) Health(ctx context.Context) error {
	if db == nil || db.pool == nil {
		return fmt.Errorf("database connection not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return db.pool.Ping(ctx)
}
