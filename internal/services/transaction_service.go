// Package services orchestrates record store writes with validation,
// installment expansion and best-effort sync publishing.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"financas/internal/amqp"
	"financas/internal/core"
	"financas/internal/store"
)

// SyncPublisher is the slice of the AMQP client the service needs.
type SyncPublisher interface {
	PublishTransactionSync(ctx context.Context, id, action string) error
}

// TransactionService sits between the HTTP layer and the record store.
// Sync publishing is best effort: a failed publish never fails the write,
// the periodic worker sweep picks the record up later.
type TransactionService struct {
	transactions store.TransactionStore
	cards        store.CardStore
	categories   store.CategoryStore
	publisher    SyncPublisher
}

func NewTransactionService(tx store.TransactionStore, cards store.CardStore, cats store.CategoryStore, publisher SyncPublisher) *TransactionService {
	return &TransactionService{
		transactions: tx,
		cards:        cards,
		categories:   cats,
		publisher:    publisher,
	}
}

// CreateTransaction validates t and persists it. When installments > 1 the
// request fans out into one record per installment: the amount is divided
// evenly, dates step one calendar month apart and only the first record
// keeps the requested status.
func (s *TransactionService) CreateTransaction(ctx context.Context, t core.Transaction, installments int) ([]core.Transaction, error) {
	if t.Status == "" {
		t.Status = core.Pending
	}
	if t.PaymentMethod != core.CreditCard {
		t.CreditCardID = ""
	}

	if installments < 1 {
		installments = 1
	}
	t.IsInstallment = installments > 1
	t.InstallmentCount = installments
	t.CurrentInstallment = 1

	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("validate transaction: %w", err)
	}

	created := make([]core.Transaction, 0, installments)
	for _, part := range core.ExpandInstallments(t, installments) {
		saved, err := s.transactions.AddTransaction(ctx, part)
		if err != nil {
			return created, fmt.Errorf("save transaction: %w", err)
		}
		s.publish(ctx, saved.ID, amqp.ActionCreate)
		created = append(created, saved)
	}
	return created, nil
}

func (s *TransactionService) ListTransactions(ctx context.Context) ([]core.EnrichedTransaction, error) {
	txs, err := s.transactions.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}
	cats, err := s.categories.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	cards, err := s.cards.ListCards(ctx)
	if err != nil {
		return nil, err
	}
	return core.EnrichTransactions(txs, cats, cards), nil
}

func (s *TransactionService) GetTransaction(ctx context.Context, id string) (core.Transaction, bool, error) {
	return s.transactions.GetTransaction(ctx, id)
}

// UpdateTransaction applies a partial update. The merged record is
// validated before it is written back.
func (s *TransactionService) UpdateTransaction(ctx context.Context, id string, p core.TransactionPatch) (core.Transaction, bool, error) {
	current, ok, err := s.transactions.GetTransaction(ctx, id)
	if err != nil || !ok {
		return core.Transaction{}, ok, err
	}

	if err := p.Apply(current).Validate(); err != nil {
		return core.Transaction{}, false, fmt.Errorf("validate transaction: %w", err)
	}

	updated, ok, err := s.transactions.UpdateTransaction(ctx, id, p)
	if err != nil || !ok {
		return core.Transaction{}, ok, err
	}
	s.publish(ctx, id, amqp.ActionUpdate)
	return updated, true, nil
}

func (s *TransactionService) DeleteTransaction(ctx context.Context, id string) (bool, error) {
	deleted, err := s.transactions.DeleteTransaction(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.publish(ctx, id, amqp.ActionDelete)
	}
	return deleted, nil
}

// Cards

func (s *TransactionService) ListCardUsage(ctx context.Context) ([]core.CardUsage, error) {
	cards, err := s.cards.ListCards(ctx)
	if err != nil {
		return nil, err
	}
	txs, err := s.transactions.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]core.CardUsage, 0, len(cards))
	for _, c := range cards {
		out = append(out, core.ComputeCardUsage(c, txs))
	}
	return out, nil
}

func (s *TransactionService) CreateCard(ctx context.Context, c core.Card) (core.Card, error) {
	if err := c.Validate(); err != nil {
		return core.Card{}, fmt.Errorf("validate card: %w", err)
	}
	return s.cards.AddCard(ctx, c)
}

func (s *TransactionService) UpdateCard(ctx context.Context, id string, p core.CardPatch) (core.Card, bool, error) {
	current, ok, err := s.cards.GetCard(ctx, id)
	if err != nil || !ok {
		return core.Card{}, ok, err
	}
	if err := p.Apply(current).Validate(); err != nil {
		return core.Card{}, false, fmt.Errorf("validate card: %w", err)
	}
	return s.cards.UpdateCard(ctx, id, p)
}

func (s *TransactionService) DeleteCard(ctx context.Context, id string) (bool, error) {
	return s.cards.DeleteCard(ctx, id)
}

// Reports

func (s *TransactionService) ListCategories(ctx context.Context) ([]core.Category, error) {
	return s.categories.ListCategories(ctx)
}

func (s *TransactionService) GetCategory(ctx context.Context, id string) (core.Category, bool, error) {
	return s.categories.GetCategory(ctx, id)
}

func (s *TransactionService) Dashboard(ctx context.Context) (core.DashboardStats, error) {
	txs, err := s.transactions.ListTransactions(ctx)
	if err != nil {
		return core.DashboardStats{}, err
	}
	cards, err := s.cards.ListCards(ctx)
	if err != nil {
		return core.DashboardStats{}, err
	}
	return core.ComputeDashboard(txs, len(cards)), nil
}

func (s *TransactionService) MonthlySummary(ctx context.Context, month string) (core.MonthlySummary, error) {
	txs, err := s.transactions.ListTransactions(ctx)
	if err != nil {
		return core.MonthlySummary{}, err
	}
	cats, err := s.categories.ListCategories(ctx)
	if err != nil {
		return core.MonthlySummary{}, err
	}
	return core.ComputeMonthlySummary(month, txs, cats), nil
}

func (s *TransactionService) publish(ctx context.Context, id, action string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishTransactionSync(ctx, id, action); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"id", id, "action", action, "error", err)
	}
}
