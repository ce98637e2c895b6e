// Package filestore keeps each collection in its own directory and each card
// in its own <id>.toml file.
package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/arcanaland/planeswalker/internal/store"
)

// RecordExt is the file extension of card records
const RecordExt = ".toml"

// Backend is a store.Backend over a directory tree
type Backend struct {
	Root string
}

// New returns a backend rooted at root, creating the directory if needed
func New(root string) (*Backend, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("error creating data directory: %v", err)
	}
	return &Backend{Root: root}, nil
}

// CollectionPath returns the directory holding a user's records
func (b *Backend) CollectionPath(user string) string {
	return filepath.Join(b.Root, user)
}

// RecordPath returns the file holding one card record
func (b *Backend) RecordPath(user string, id int) string {
	return filepath.Join(b.CollectionPath(user), RecordName(id))
}

// RecordName returns the file name of the record for id
func RecordName(id int) string {
	return strconv.Itoa(id) + RecordExt
}

// ParseRecordName returns the card id encoded in a record file name
func ParseRecordName(name string) (int, bool) {
	base, ok := strings.CutSuffix(name, RecordExt)
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(base)
	if err != nil || id < 0 || strconv.Itoa(id) != base {
		return 0, false
	}
	return id, true
}

func (b *Backend) EnsureCollection(_ context.Context, user string) error {
	return os.MkdirAll(b.CollectionPath(user), 0755)
}

func (b *Backend) HasCollection(_ context.Context, user string) (bool, error) {
	info, err := os.Stat(b.CollectionPath(user))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

func (b *Backend) Collections(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(b.Root)
	if err != nil {
		return nil, err
	}

	var users []string
	for _, entry := range entries {
		if entry.IsDir() {
			users = append(users, entry.Name())
		}
	}
	return users, nil
}

func (b *Backend) Has(_ context.Context, user string, id int) (bool, error) {
	info, err := os.Stat(b.RecordPath(user, id))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

func (b *Backend) Get(ctx context.Context, user string, id int) ([]byte, error) {
	ok, err := b.Has(ctx, user, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, store.ErrCardNotFound
	}
	return os.ReadFile(b.RecordPath(user, id))
}

// Put replaces the record atomically through a temporary file in the same
// directory.
func (b *Backend) Put(_ context.Context, user string, id int, data []byte) error {
	dir := b.CollectionPath(user)
	tmp, err := os.CreateTemp(dir, ".card-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, b.RecordPath(user, id)); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

func (b *Backend) Delete(_ context.Context, user string, id int) error {
	err := os.Remove(b.RecordPath(user, id))
	if os.IsNotExist(err) {
		return store.ErrCardNotFound
	}
	return err
}

// IDs returns the ids of all record files in directory order. Other files
// are ignored.
func (b *Backend) IDs(_ context.Context, user string) ([]int, error) {
	entries, err := os.ReadDir(b.CollectionPath(user))
	if err != nil {
		return nil, err
	}

	var ids []int
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if id, ok := ParseRecordName(entry.Name()); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (b *Backend) Close() error { return nil }
