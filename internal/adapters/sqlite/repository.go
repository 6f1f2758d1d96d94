package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"bonusMarket/internal/domain"
	"bonusMarket/internal/ports"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Repository implements ports.PairRepository using SQLite.
type Repository struct {
	db     *sql.DB
	logger ports.Logger
}

// Config holds configuration for the SQLite repository.
type Config struct {
	DBPath string
	Logger ports.Logger
}

// NewRepository creates a new SQLite repository instance.
func NewRepository(cfg Config) (*Repository, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for SQLite repository")
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "./data/bonus_market.db"
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		err = fmt.Errorf("failed to create data directory '%s': %w", filepath.Dir(dbPath), err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		err = fmt.Errorf("failed to open database at '%s': %v: %w", dbPath, err, ports.ErrDBConnection)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		err = fmt.Errorf("failed to ping database at '%s': %v: %w", dbPath, err, ports.ErrDBConnection)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	// One writer connection; sqlite serializes writes anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	repo := &Repository{db: db, logger: cfg.Logger}
	if err := repo.initializeSchema(context.Background()); err != nil {
		db.Close()
		err = fmt.Errorf("failed to initialize database schema: %w", err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}
	cfg.Logger.Info(context.Background(), "Pair catalog database ready", map[string]interface{}{"path": dbPath})

	return repo, nil
}

func (r *Repository) initializeSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS pairs (
		id TEXT PRIMARY KEY,
		base TEXT NOT NULL,
		quote TEXT NOT NULL,
		base_name TEXT NOT NULL DEFAULT '',
		quote_name TEXT NOT NULL DEFAULT '',
		last_price REAL NOT NULL,
		change_24h REAL NOT NULL DEFAULT 0,
		volume_24h REAL NOT NULL DEFAULT 0,
		favorite INTEGER NOT NULL DEFAULT 0,
		updated_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_pairs_favorite ON pairs (favorite);
	`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to execute schema initialization: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	if r.db != nil {
		r.logger.Info(context.Background(), "Closing SQLite database connection")
		return r.db.Close()
	}
	return nil
}

// Upsert inserts new pairs and refreshes market figures of existing ones.
// The favorite column of an existing row is never touched.
func (r *Repository) Upsert(ctx context.Context, pairs []domain.Pair) error {
	const query = `
	INSERT INTO pairs (id, base, quote, base_name, quote_name, last_price, change_24h, volume_24h, favorite, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		base = excluded.base,
		quote = excluded.quote,
		base_name = excluded.base_name,
		quote_name = excluded.quote_name,
		last_price = excluded.last_price,
		change_24h = excluded.change_24h,
		volume_24h = excluded.volume_24h,
		updated_at = excluded.updated_at`

	for _, p := range pairs {
		if err := p.Validate(); err != nil {
			return err
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin upsert transaction: %v: %w", err, ports.ErrUpdateFailed)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare pair upsert: %v: %w", err, ports.ErrUpdateFailed)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, p := range pairs {
		if _, err := stmt.ExecContext(ctx,
			p.ID, p.Base, p.Quote, p.BaseName, p.QuoteName,
			p.LastPrice, p.Change24h, p.Volume24h, boolToInt(p.Favorite), now); err != nil {
			return fmt.Errorf("failed to upsert pair %s: %v: %w", p.ID, err, ports.ErrUpdateFailed)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit pair upsert: %v: %w", err, ports.ErrUpdateFailed)
	}
	r.logger.Debug(ctx, "Pairs upserted", map[string]interface{}{"count": len(pairs)})
	return nil
}

// FindByID retrieves a pair by its identifier.
func (r *Repository) FindByID(ctx context.Context, id string) (domain.Pair, error) {
	const query = `
	SELECT id, base, quote, base_name, quote_name, last_price, change_24h, volume_24h, favorite
	FROM pairs
	WHERE id = ?`

	p, err := scanPair(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Pair{}, fmt.Errorf("pair %q: %w", id, ports.ErrNotFound)
		}
		return domain.Pair{}, fmt.Errorf("failed to query pair %q: %v: %w", id, err, ports.ErrQueryFailed)
	}
	return p, nil
}

// FindAll retrieves all pairs, favorites first.
func (r *Repository) FindAll(ctx context.Context) ([]domain.Pair, error) {
	const query = `
	SELECT id, base, quote, base_name, quote_name, last_price, change_24h, volume_24h, favorite
	FROM pairs
	ORDER BY favorite DESC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query pairs: %v: %w", err, ports.ErrQueryFailed)
	}
	defer rows.Close()

	pairs := make([]domain.Pair, 0)
	for rows.Next() {
		p, err := scanPair(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pair during FindAll: %v: %w", err, ports.ErrQueryFailed)
		}
		pairs = append(pairs, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pair rows: %v: %w", err, ports.ErrQueryFailed)
	}
	return pairs, nil
}

// SetFavorite updates the favorite flag of a pair.
func (r *Repository) SetFavorite(ctx context.Context, id string, favorite bool) error {
	const query = `UPDATE pairs SET favorite = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, boolToInt(favorite), id)
	if err != nil {
		return fmt.Errorf("failed to update favorite for pair %q: %v: %w", id, err, ports.ErrUpdateFailed)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for pair %q: %v: %w", id, err, ports.ErrUpdateFailed)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("pair %q not found for update: %w", id, ports.ErrNotFound)
	}
	r.logger.Debug(ctx, "Pair favorite updated", map[string]interface{}{"pairID": id, "favorite": favorite})
	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPair(s scanner) (domain.Pair, error) {
	var p domain.Pair
	var favorite int
	err := s.Scan(&p.ID, &p.Base, &p.Quote, &p.BaseName, &p.QuoteName,
		&p.LastPrice, &p.Change24h, &p.Volume24h, &favorite)
	if err != nil {
		return domain.Pair{}, err
	}
	p.Favorite = favorite != 0
	return p, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ ports.PairRepository = (*Repository)(nil)
