// Package sqlitestore keeps all collections in a single SQLite database.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/arcanaland/planeswalker/internal/store"
)

// Backend is a store.Backend over an SQLite database
type Backend struct {
	db *sql.DB
}

// New opens (or creates) the database at path
func New(path string) (*Backend, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	b := &Backend{db: db}
	if err := b.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error initializing tables: %w", err)
	}
	return b, nil
}

func (b *Backend) initTables() error {
	_, err := b.db.Exec(`
		CREATE TABLE IF NOT EXISTS collections (
			name TEXT PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS cards (
			user TEXT NOT NULL REFERENCES collections(name),
			id INTEGER NOT NULL,
			data BLOB NOT NULL,
			PRIMARY KEY (user, id)
		);
	`)
	return err
}

func (b *Backend) EnsureCollection(ctx context.Context, user string) error {
	_, err := b.db.ExecContext(ctx, "INSERT OR IGNORE INTO collections (name) VALUES (?)", user)
	return err
}

func (b *Backend) HasCollection(ctx context.Context, user string) (bool, error) {
	var exists bool
	err := b.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM collections WHERE name = ?)", user).Scan(&exists)
	return exists, err
}

func (b *Backend) Collections(ctx context.Context) ([]string, error) {
	rows, err := b.db.QueryContext(ctx, "SELECT name FROM collections")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		users = append(users, name)
	}
	return users, rows.Err()
}

func (b *Backend) Has(ctx context.Context, user string, id int) (bool, error) {
	var exists bool
	err := b.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM cards WHERE user = ? AND id = ?)", user, id).Scan(&exists)
	return exists, err
}

func (b *Backend) Get(ctx context.Context, user string, id int) ([]byte, error) {
	var data []byte
	err := b.db.QueryRowContext(ctx, "SELECT data FROM cards WHERE user = ? AND id = ?", user, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrCardNotFound
	}
	return data, err
}

func (b *Backend) Put(ctx context.Context, user string, id int, data []byte) error {
	_, err := b.db.ExecContext(ctx, `
		INSERT INTO cards (user, id, data) VALUES (?, ?, ?)
		ON CONFLICT (user, id) DO UPDATE SET data = excluded.data
	`, user, id, data)
	return err
}

func (b *Backend) Delete(ctx context.Context, user string, id int) error {
	res, err := b.db.ExecContext(ctx, "DELETE FROM cards WHERE user = ? AND id = ?", user, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrCardNotFound
	}
	return nil
}

// IDs returns the card ids of a collection in insertion order
func (b *Backend) IDs(ctx context.Context, user string) ([]int, error) {
	rows, err := b.db.QueryContext(ctx, "SELECT id FROM cards WHERE user = ? ORDER BY rowid", user)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (b *Backend) Close() error {
	return b.db.Close()
}
