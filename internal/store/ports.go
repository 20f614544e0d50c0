package store

import (
	"context"

	"financas/internal/core"
)

// Ports for the record store backends. Absence is a normal outcome and is
// reported through the found/deleted booleans; the error return is reserved
// for infrastructure failure (always nil for the memory backend).
type (
	TransactionStore interface {
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
		GetTransaction(ctx context.Context, id string) (core.Transaction, bool, error)
		AddTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
		UpdateTransaction(ctx context.Context, id string, p core.TransactionPatch) (core.Transaction, bool, error)
		DeleteTransaction(ctx context.Context, id string) (bool, error)
	}

	CardStore interface {
		ListCards(ctx context.Context) ([]core.Card, error)
		GetCard(ctx context.Context, id string) (core.Card, bool, error)
		AddCard(ctx context.Context, c core.Card) (core.Card, error)
		UpdateCard(ctx context.Context, id string, p core.CardPatch) (core.Card, bool, error)
		DeleteCard(ctx context.Context, id string) (bool, error)
	}

	// CategoryStore is read-only: categories are seeded, not managed.
	CategoryStore interface {
		ListCategories(ctx context.Context) ([]core.Category, error)
		GetCategory(ctx context.Context, id string) (core.Category, bool, error)
	}
)
