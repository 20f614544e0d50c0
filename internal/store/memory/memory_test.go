package memory

import (
	"context"
	"reflect"
	"testing"

	"financas/internal/core"
)

func TestAddAndGetTransaction(t *testing.T) {
	s := New()
	ctx := context.Background()

	in := core.Transaction{
		Date:               "2024-01-15",
		Description:        "Supermercado",
		Amount:             250.50,
		Type:               core.Expense,
		PaymentMethod:      core.CreditCard,
		Status:             core.Paid,
		InstallmentCount:   1,
		CurrentInstallment: 1,
		CreditCardID:       "1",
	}

	saved, err := s.AddTransaction(ctx, in)
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("AddTransaction did not assign an id")
	}

	got, ok, err := s.GetTransaction(ctx, saved.ID)
	if err != nil || !ok {
		t.Fatalf("GetTransaction: ok=%v err=%v", ok, err)
	}
	if !reflect.DeepEqual(got, saved) {
		t.Errorf("got %+v, want %+v", got, saved)
	}
}

func TestGetTransactionAbsent(t *testing.T) {
	s := New()

	_, ok, err := s.GetTransaction(context.Background(), "nope")
	if err != nil {
		t.Fatalf("GetTransaction: %v", err)
	}
	if ok {
		t.Error("GetTransaction reported a record that does not exist")
	}
}

func TestUniqueIDs(t *testing.T) {
	s := New()
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		saved, err := s.AddTransaction(ctx, core.Transaction{Description: "x"})
		if err != nil {
			t.Fatalf("AddTransaction: %v", err)
		}
		if seen[saved.ID] {
			t.Fatalf("duplicate id %s", saved.ID)
		}
		seen[saved.ID] = true
	}
}

func TestUpdateTransaction(t *testing.T) {
	s := New()
	ctx := context.Background()

	saved, _ := s.AddTransaction(ctx, core.Transaction{
		Description:   "Luz",
		Amount:        180,
		PaymentMethod: core.Pix,
		Status:        core.Pending,
	})

	status := core.Paid
	updated, ok, err := s.UpdateTransaction(ctx, saved.ID, core.TransactionPatch{Status: &status})
	if err != nil || !ok {
		t.Fatalf("UpdateTransaction: ok=%v err=%v", ok, err)
	}
	if updated.Status != core.Paid {
		t.Errorf("Status = %s, want paid", updated.Status)
	}
	if updated.Description != "Luz" || updated.Amount != 180 {
		t.Errorf("unpatched fields changed: %+v", updated)
	}

	_, ok, err = s.UpdateTransaction(ctx, "nope", core.TransactionPatch{Status: &status})
	if err != nil || ok {
		t.Errorf("update of missing record: ok=%v err=%v, want false nil", ok, err)
	}
}

func TestDeleteTransaction(t *testing.T) {
	s := New()
	ctx := context.Background()

	saved, _ := s.AddTransaction(ctx, core.Transaction{Description: "x"})

	deleted, err := s.DeleteTransaction(ctx, saved.ID)
	if err != nil || !deleted {
		t.Fatalf("DeleteTransaction: deleted=%v err=%v", deleted, err)
	}

	// Deleting again reports absence without shrinking anything.
	deleted, err = s.DeleteTransaction(ctx, saved.ID)
	if err != nil || deleted {
		t.Errorf("second delete: deleted=%v err=%v, want false nil", deleted, err)
	}

	txs, _ := s.ListTransactions(ctx)
	if len(txs) != 0 {
		t.Errorf("len = %d after delete, want 0", len(txs))
	}
}

// Mutating a listed slice must not leak into the store.
func TestListReturnsCopies(t *testing.T) {
	s := NewSeeded()
	ctx := context.Background()

	txs, _ := s.ListTransactions(ctx)
	if len(txs) == 0 {
		t.Fatal("seeded store is empty")
	}
	txs[0].Description = "mutated"

	again, _ := s.ListTransactions(ctx)
	if again[0].Description == "mutated" {
		t.Error("list result aliases store internals")
	}
}

func TestSeededStore(t *testing.T) {
	s := NewSeeded()
	ctx := context.Background()

	cats, _ := s.ListCategories(ctx)
	if len(cats) != 12 {
		t.Errorf("categories = %d, want 12", len(cats))
	}
	cards, _ := s.ListCards(ctx)
	if len(cards) != 2 {
		t.Errorf("cards = %d, want 2", len(cards))
	}
	txs, _ := s.ListTransactions(ctx)
	if len(txs) != 3 {
		t.Errorf("transactions = %d, want 3", len(txs))
	}

	cat, ok, err := s.GetCategory(ctx, "9")
	if err != nil || !ok {
		t.Fatalf("GetCategory: ok=%v err=%v", ok, err)
	}
	if cat.Name != "Salário" || cat.Type != core.Income {
		t.Errorf("category 9 = %+v", cat)
	}
}

func TestCardCRUD(t *testing.T) {
	s := New()
	ctx := context.Background()

	saved, err := s.AddCard(ctx, core.Card{Name: "C6", LimitTotal: 2000, ClosingDay: 5, DueDay: 12})
	if err != nil {
		t.Fatalf("AddCard: %v", err)
	}

	limit := 2500.0
	updated, ok, err := s.UpdateCard(ctx, saved.ID, core.CardPatch{LimitTotal: &limit})
	if err != nil || !ok {
		t.Fatalf("UpdateCard: ok=%v err=%v", ok, err)
	}
	if updated.LimitTotal != 2500 {
		t.Errorf("LimitTotal = %v, want 2500", updated.LimitTotal)
	}

	deleted, err := s.DeleteCard(ctx, saved.ID)
	if err != nil || !deleted {
		t.Fatalf("DeleteCard: deleted=%v err=%v", deleted, err)
	}
}

// Deleting a card leaves transactions referencing it untouched.
func TestDeleteCardKeepsTransactions(t *testing.T) {
	s := NewSeeded()
	ctx := context.Background()

	if _, err := s.DeleteCard(ctx, "1"); err != nil {
		t.Fatalf("DeleteCard: %v", err)
	}

	got, ok, _ := s.GetTransaction(ctx, "1")
	if !ok {
		t.Fatal("transaction 1 gone after card delete")
	}
	if got.CreditCardID != "1" {
		t.Errorf("CreditCardID = %q, want dangling \"1\"", got.CreditCardID)
	}
}
