// Package store implements the card store: create, read, update, delete and
// list operations over per-user card collections.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/arcanaland/planeswalker/internal/card"
)

// Backend persists opaque card records keyed by username and card id.
// Get must return ErrCardNotFound when the record does not exist.
type Backend interface {
	EnsureCollection(ctx context.Context, user string) error
	HasCollection(ctx context.Context, user string) (bool, error)
	Collections(ctx context.Context) ([]string, error)
	Has(ctx context.Context, user string, id int) (bool, error)
	Get(ctx context.Context, user string, id int) ([]byte, error)
	Put(ctx context.Context, user string, id int, data []byte) error
	Delete(ctx context.Context, user string, id int) error
	IDs(ctx context.Context, user string) ([]int, error)
	Close() error
}

// CollectionInfo summarizes one user's collection
type CollectionInfo struct {
	User  string
	Cards int
}

// Store owns all persisted card data
type Store struct {
	backend Backend
	log     *slog.Logger
}

// New returns a store on top of the given backend
func New(backend Backend, log *slog.Logger) *Store {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Store{backend: backend, log: log}
}

// Close releases the backend
func (s *Store) Close() error {
	return s.backend.Close()
}

// Add stores a new card in the user's collection. The collection is created
// first, even when the card turns out to exist already.
func (s *Store) Add(ctx context.Context, user string, c card.Card) error {
	if err := validate(user, c); err != nil {
		return err
	}

	if err := s.backend.EnsureCollection(ctx, user); err != nil {
		return s.fail(user, c.ID, "ensure collection", err)
	}

	exists, err := s.backend.Has(ctx, user, c.ID)
	if err != nil {
		return s.fail(user, c.ID, "check card", err)
	}
	if exists {
		return &Error{User: user, ID: c.ID, Kind: ErrCardExists}
	}

	if err := s.put(ctx, user, c); err != nil {
		return err
	}
	s.log.Debug("card added", "user", user, "id", c.ID)
	return nil
}

// Update replaces an existing card in the user's collection
func (s *Store) Update(ctx context.Context, user string, c card.Card) error {
	if err := validate(user, c); err != nil {
		return err
	}

	if err := s.requireCard(ctx, user, c.ID); err != nil {
		return err
	}

	if err := s.put(ctx, user, c); err != nil {
		return err
	}
	s.log.Debug("card updated", "user", user, "id", c.ID)
	return nil
}

// Remove deletes one card. The collection itself is kept even when empty.
func (s *Store) Remove(ctx context.Context, user string, id int) error {
	if err := ValidateUser(user); err != nil {
		return err
	}

	if err := s.requireCard(ctx, user, id); err != nil {
		return err
	}

	if err := s.backend.Delete(ctx, user, id); err != nil {
		if errors.Is(err, ErrCardNotFound) {
			return &Error{User: user, ID: id, Kind: ErrCardNotFound}
		}
		return s.fail(user, id, "delete card", err)
	}
	s.log.Debug("card removed", "user", user, "id", id)
	return nil
}

// List returns every card of the user's collection ordered by id
func (s *Store) List(ctx context.Context, user string) ([]card.Card, error) {
	if err := s.requireCollection(ctx, user); err != nil {
		return nil, err
	}

	ids, err := s.backend.IDs(ctx, user)
	if err != nil {
		return nil, s.fail(user, 0, "list cards", err)
	}
	sort.Ints(ids)

	cards := make([]card.Card, 0, len(ids))
	for _, id := range ids {
		c, err := s.ReadRecord(ctx, user, id)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	s.log.Debug("cards listed", "user", user, "count", len(cards))
	return cards, nil
}

// Read returns one card, failing with ErrUserNotFound when the user has no
// collection at all.
func (s *Store) Read(ctx context.Context, user string, id int) (card.Card, error) {
	if err := s.requireCollection(ctx, user); err != nil {
		return card.Card{}, err
	}
	return s.ReadRecord(ctx, user, id)
}

// ReadRecord loads and decodes a single record without checking the
// collection first. A record that does not parse, holds another id or breaks
// the card invariants is reported as ErrCorruptRecord.
func (s *Store) ReadRecord(ctx context.Context, user string, id int) (card.Card, error) {
	if err := ValidateUser(user); err != nil {
		return card.Card{}, err
	}

	data, err := s.backend.Get(ctx, user, id)
	if errors.Is(err, ErrCardNotFound) {
		return card.Card{}, &Error{User: user, ID: id, Kind: ErrCardNotFound}
	}
	if err != nil {
		return card.Card{}, s.fail(user, id, "read card", err)
	}

	c, err := decode(data, id)
	if err != nil {
		s.log.Warn("corrupt card record", "user", user, "id", id, "error", err)
		return card.Card{}, &Error{User: user, ID: id, Kind: ErrCorruptRecord, Cause: err}
	}
	return c, nil
}

// decode parses a record and checks it against the id it is stored under
func decode(data []byte, id int) (card.Card, error) {
	c, err := card.Unmarshal(data)
	if err != nil {
		return card.Card{}, err
	}
	if c.ID != id {
		return card.Card{}, fmt.Errorf("record %d holds card id %d", id, c.ID)
	}
	if err := c.Validate(); err != nil {
		return card.Card{}, err
	}
	return c, nil
}

// Collections returns every collection with its card count, ordered by user
func (s *Store) Collections(ctx context.Context) ([]CollectionInfo, error) {
	users, err := s.backend.Collections(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing collections: %w", err)
	}
	sort.Strings(users)

	infos := make([]CollectionInfo, 0, len(users))
	for _, user := range users {
		ids, err := s.backend.IDs(ctx, user)
		if err != nil {
			return nil, s.fail(user, 0, "list cards", err)
		}
		infos = append(infos, CollectionInfo{User: user, Cards: len(ids)})
	}
	return infos, nil
}

// ValidateUser rejects usernames that cannot name a collection
func ValidateUser(user string) error {
	switch {
	case strings.TrimSpace(user) == "":
		return fmt.Errorf("%w: username is required", card.ErrInvalid)
	case user == "." || user == "..":
		return fmt.Errorf("%w: invalid username %q", card.ErrInvalid, user)
	case strings.ContainsAny(user, "/\\\x00"):
		return fmt.Errorf("%w: username %q must not contain path separators", card.ErrInvalid, user)
	}
	return nil
}

func validate(user string, c card.Card) error {
	if err := ValidateUser(user); err != nil {
		return err
	}
	return c.Validate()
}

func (s *Store) put(ctx context.Context, user string, c card.Card) error {
	data, err := card.Marshal(c)
	if err != nil {
		return s.fail(user, c.ID, "encode card", err)
	}
	if err := s.backend.Put(ctx, user, c.ID, data); err != nil {
		return s.fail(user, c.ID, "write card", err)
	}
	return nil
}

func (s *Store) requireCollection(ctx context.Context, user string) error {
	if err := ValidateUser(user); err != nil {
		return err
	}
	ok, err := s.backend.HasCollection(ctx, user)
	if err != nil {
		return s.fail(user, 0, "check collection", err)
	}
	if !ok {
		return &Error{User: user, Kind: ErrUserNotFound}
	}
	return nil
}

// requireCard reports a missing collection as a missing card.
func (s *Store) requireCard(ctx context.Context, user string, id int) error {
	ok, err := s.backend.HasCollection(ctx, user)
	if err != nil {
		return s.fail(user, id, "check collection", err)
	}
	if ok {
		ok, err = s.backend.Has(ctx, user, id)
		if err != nil {
			return s.fail(user, id, "check card", err)
		}
	}
	if !ok {
		return &Error{User: user, ID: id, Kind: ErrCardNotFound}
	}
	return nil
}

func (s *Store) fail(user string, id int, op string, err error) error {
	s.log.Error("storage failure", "op", op, "user", user, "id", id, "error", err)
	return fmt.Errorf("error trying to %s for %s: %w", op, user, err)
}
