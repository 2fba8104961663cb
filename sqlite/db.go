package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migration/*.sql
var migrationFS embed.FS

// queryTimeout bounds every single call into the store. The legacy system
// issued unbounded queries; new code always derives a deadline.
const queryTimeout = 5 * time.Second

// DB wraps the sqlite connection shared by the service implementations.
type DB struct {
	db  *sql.DB
	dsn string
}

// NewDB creates a database handle for the provided DSN. Call Open before
// handing it to the services.
func NewDB(dsn string) *DB {
	return &DB{dsn: dsn}
}

// Open opens the sqlite database, enforces foreign keys and runs any pending
// migrations from the embedded migration files.
func (db *DB) Open() (err error) {
	if db.dsn == "" {
		return fmt.Errorf("dsn required")
	}

	if db.db, err = sql.Open("sqlite3", db.dsn); err != nil {
		return err
	}
	if _, err := db.db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		return fmt.Errorf("enable foreign keys: %w", err)
	}

	return db.migrate()
}

func (db *DB) migrate() error {
	src, err := iofs.New(fs.FS(migrationFS), "migration")
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}

	driver, err := migratesqlite.WithInstance(db.db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// Close closes the underlying connection. no-op if never opened.
func (db *DB) Close() error {
	if db.db == nil {
		return nil
	}
	return db.db.Close()
}

// begin starts a transaction under the store deadline. The returned cancel
// must be deferred together with the rollback.
func (db *DB) begin(ctx context.Context) (*sql.Tx, context.CancelFunc, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	return tx, cancel, nil
}
