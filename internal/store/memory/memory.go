// Package memory implements the record store as plain in-process slices.
//
// It is the session-scoped backend: seeded on construction, mutated in
// place by CRUD calls and discarded with the process. Every read hands out
// an independent copy so callers can never alias internal state.
package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"financas/internal/core"
)

// collection is one entity kind: insertion-ordered records plus an id
// accessor. All locking lives in Store; collection assumes the caller
// holds the lock.
type collection[T any] struct {
	items []T
	getID func(T) string
}

func (c *collection[T]) list() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *collection[T]) indexOf(id string) int {
	for i, item := range c.items {
		if c.getID(item) == id {
			return i
		}
	}
	return -1
}

func (c *collection[T]) get(id string) (T, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

func (c *collection[T]) delete(id string) bool {
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return true
}

type Store struct {
	mu     sync.Mutex
	lastID int64

	transactions collection[core.Transaction]
	cards        collection[core.Card]
	categories   collection[core.Category]
}

// New returns an empty store. Most callers want NewSeeded.
func New() *Store {
	return &Store{
		transactions: collection[core.Transaction]{getID: func(t core.Transaction) string { return t.ID }},
		cards:        collection[core.Card]{getID: func(c core.Card) string { return c.ID }},
		categories:   collection[core.Category]{getID: func(c core.Category) string { return c.ID }},
	}
}

// NewSeeded returns a store preloaded with the default category taxonomy,
// two cards and a few sample transactions.
func NewSeeded() *Store {
	s := New()
	s.categories.items = SeedCategories()
	s.cards.items = SeedCards()
	s.transactions.items = SeedTransactions()
	return s
}

// newID produces a session-unique opaque identifier. Nanosecond timestamps
// are enough here; the counter guards against two calls landing on the
// same tick.
func (s *Store) newID() string {
	id := time.Now().UnixNano()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}

// Transactions

func (s *Store) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transactions.list(), nil
}

func (s *Store) GetTransaction(_ context.Context, id string) (core.Transaction, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.transactions.get(id)
	return t, ok, nil
}

func (s *Store) AddTransaction(_ context.Context, t core.Transaction) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.newID()
	s.transactions.items = append(s.transactions.items, t)
	return t, nil
}

func (s *Store) UpdateTransaction(_ context.Context, id string, p core.TransactionPatch) (core.Transaction, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.transactions.indexOf(id)
	if i < 0 {
		return core.Transaction{}, false, nil
	}
	s.transactions.items[i] = p.Apply(s.transactions.items[i])
	return s.transactions.items[i], true, nil
}

func (s *Store) DeleteTransaction(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transactions.delete(id), nil
}

// Credit cards

func (s *Store) ListCards(_ context.Context) ([]core.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cards.list(), nil
}

func (s *Store) GetCard(_ context.Context, id string) (core.Card, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cards.get(id)
	return c, ok, nil
}

func (s *Store) AddCard(_ context.Context, c core.Card) (core.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.newID()
	s.cards.items = append(s.cards.items, c)
	return c, nil
}

func (s *Store) UpdateCard(_ context.Context, id string, p core.CardPatch) (core.Card, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.cards.indexOf(id)
	if i < 0 {
		return core.Card{}, false, nil
	}
	s.cards.items[i] = p.Apply(s.cards.items[i])
	return s.cards.items[i], true, nil
}

// DeleteCard removes the card only. Transactions referencing it keep their
// credit_card_id; the reference is not ownership and is left dangling.
func (s *Store) DeleteCard(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cards.delete(id), nil
}

// Categories

func (s *Store) ListCategories(_ context.Context) ([]core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categories.list(), nil
}

func (s *Store) GetCategory(_ context.Context, id string) (core.Category, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories.get(id)
	return c, ok, nil
}
