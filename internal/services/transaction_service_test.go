package services

import (
	"context"
	"testing"

	"financas/internal/core"
	"financas/internal/store/memory"
)

type fakePublisher struct {
	published []string // "id:action"
	err       error
}

func (f *fakePublisher) PublishTransactionSync(_ context.Context, id, action string) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, id+":"+action)
	return nil
}

func newTestService(pub *fakePublisher) (*TransactionService, *memory.Store) {
	s := memory.New()
	var p SyncPublisher
	if pub != nil {
		p = pub
	}
	return NewTransactionService(s, s, s, p), s
}

func TestCreateTransaction(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	created, err := svc.CreateTransaction(ctx, core.Transaction{
		Date:          "2024-01-15",
		Description:   "Supermercado",
		Amount:        250.50,
		Type:          core.Expense,
		PaymentMethod: core.CreditCard,
		Status:        core.Paid,
		CreditCardID:  "1",
	}, 1)
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("created %d records, want 1", len(created))
	}
	if created[0].ID == "" {
		t.Error("created record has no id")
	}
	if created[0].IsInstallment {
		t.Error("single payment flagged as installment")
	}
}

func TestCreateTransactionDefaultsStatus(t *testing.T) {
	svc, _ := newTestService(nil)

	created, err := svc.CreateTransaction(context.Background(), core.Transaction{
		Date:          "2024-01-15",
		Description:   "Internet",
		Amount:        100,
		Type:          core.Expense,
		PaymentMethod: core.Pix,
	}, 1)
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if created[0].Status != core.Pending {
		t.Errorf("Status = %s, want pending default", created[0].Status)
	}
}

func TestCreateTransactionClearsCardForNonCardPayment(t *testing.T) {
	svc, _ := newTestService(nil)

	created, err := svc.CreateTransaction(context.Background(), core.Transaction{
		Date:          "2024-01-15",
		Description:   "Aluguel",
		Amount:        1500,
		Type:          core.Expense,
		PaymentMethod: core.Transfer,
		Status:        core.Paid,
		CreditCardID:  "1",
	}, 1)
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if created[0].CreditCardID != "" {
		t.Errorf("CreditCardID = %q, want empty for transfer", created[0].CreditCardID)
	}
}

func TestCreateTransactionInstallments(t *testing.T) {
	pub := &fakePublisher{}
	svc, store := newTestService(pub)
	ctx := context.Background()

	created, err := svc.CreateTransaction(ctx, core.Transaction{
		Date:          "2024-01-15",
		Description:   "Notebook",
		Amount:        1200,
		Type:          core.Expense,
		PaymentMethod: core.CreditCard,
		Status:        core.Paid,
		CreditCardID:  "1",
	}, 3)
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if len(created) != 3 {
		t.Fatalf("created %d records, want 3", len(created))
	}

	stored, _ := store.ListTransactions(ctx)
	if len(stored) != 3 {
		t.Fatalf("store holds %d records, want 3", len(stored))
	}
	for i, tx := range created {
		if tx.Amount != 400 {
			t.Errorf("installment %d amount = %v, want 400", i+1, tx.Amount)
		}
		if tx.ID == "" {
			t.Errorf("installment %d missing id", i+1)
		}
	}
	if created[0].Status != core.Paid || created[1].Status != core.Pending {
		t.Errorf("statuses = %s/%s, want paid/pending", created[0].Status, created[1].Status)
	}
	if len(pub.published) != 3 {
		t.Errorf("published %d sync messages, want 3", len(pub.published))
	}
}

func TestCreateTransactionInvalid(t *testing.T) {
	svc, store := newTestService(nil)
	ctx := context.Background()

	_, err := svc.CreateTransaction(ctx, core.Transaction{
		Date:          "2024-01-15",
		Description:   "",
		Amount:        10,
		Type:          core.Expense,
		PaymentMethod: core.Cash,
	}, 1)
	if err == nil {
		t.Fatal("expected validation error")
	}

	stored, _ := store.ListTransactions(ctx)
	if len(stored) != 0 {
		t.Errorf("invalid transaction reached the store: %d records", len(stored))
	}
}

func TestUpdateTransactionValidatesMergedRecord(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	created, _ := svc.CreateTransaction(ctx, core.Transaction{
		Date:          "2024-01-15",
		Description:   "Luz",
		Amount:        180,
		Type:          core.Expense,
		PaymentMethod: core.Pix,
		Status:        core.Pending,
	}, 1)
	id := created[0].ID

	bad := -5.0
	if _, _, err := svc.UpdateTransaction(ctx, id, core.TransactionPatch{Amount: &bad}); err == nil {
		t.Error("expected validation error for negative amount")
	}

	status := core.Paid
	updated, ok, err := svc.UpdateTransaction(ctx, id, core.TransactionPatch{Status: &status})
	if err != nil || !ok {
		t.Fatalf("UpdateTransaction: ok=%v err=%v", ok, err)
	}
	if updated.Status != core.Paid {
		t.Errorf("Status = %s, want paid", updated.Status)
	}
}

func TestDeleteTransactionPublishes(t *testing.T) {
	pub := &fakePublisher{}
	svc, _ := newTestService(pub)
	ctx := context.Background()

	created, _ := svc.CreateTransaction(ctx, core.Transaction{
		Date:          "2024-01-15",
		Description:   "x",
		Amount:        1,
		Type:          core.Expense,
		PaymentMethod: core.Cash,
		Status:        core.Paid,
	}, 1)
	pub.published = nil

	deleted, err := svc.DeleteTransaction(ctx, created[0].ID)
	if err != nil || !deleted {
		t.Fatalf("DeleteTransaction: deleted=%v err=%v", deleted, err)
	}
	if len(pub.published) != 1 || pub.published[0] != created[0].ID+":delete" {
		t.Errorf("published = %v, want one delete message", pub.published)
	}

	deleted, err = svc.DeleteTransaction(ctx, "nope")
	if err != nil || deleted {
		t.Errorf("delete of missing record: deleted=%v err=%v", deleted, err)
	}
}

// A failing publisher must never fail the write.
func TestPublishFailureDoesNotFailWrite(t *testing.T) {
	pub := &fakePublisher{err: context.DeadlineExceeded}
	svc, store := newTestService(pub)
	ctx := context.Background()

	created, err := svc.CreateTransaction(ctx, core.Transaction{
		Date:          "2024-01-15",
		Description:   "x",
		Amount:        1,
		Type:          core.Expense,
		PaymentMethod: core.Cash,
		Status:        core.Paid,
	}, 1)
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("created %d records, want 1", len(created))
	}

	stored, _ := store.ListTransactions(ctx)
	if len(stored) != 1 {
		t.Errorf("store holds %d records, want 1", len(stored))
	}
}

func TestListCardUsage(t *testing.T) {
	svc, store := newTestService(nil)
	ctx := context.Background()

	card, _ := store.AddCard(ctx, core.Card{Name: "Nubank", LimitTotal: 500, ClosingDay: 15, DueDay: 22})

	_, err := svc.CreateTransaction(ctx, core.Transaction{
		Date:          "2024-01-15",
		Description:   "Mercado",
		Amount:        150,
		Type:          core.Expense,
		PaymentMethod: core.CreditCard,
		Status:        core.Paid,
		CreditCardID:  card.ID,
	}, 1)
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	usage, err := svc.ListCardUsage(ctx)
	if err != nil {
		t.Fatalf("ListCardUsage: %v", err)
	}
	if len(usage) != 1 {
		t.Fatalf("usage len = %d, want 1", len(usage))
	}
	if usage[0].UsedAmount != 150 || usage[0].AvailableAmount != 350 {
		t.Errorf("usage = %v/%v, want 150/350", usage[0].UsedAmount, usage[0].AvailableAmount)
	}
}

func TestDashboardAndMonthlySummary(t *testing.T) {
	svc, store := newTestService(nil)
	ctx := context.Background()

	_, _ = store.AddCard(ctx, core.Card{Name: "Nubank", LimitTotal: 500, ClosingDay: 15, DueDay: 22})
	seed := []core.Transaction{
		{Date: "2024-03-01", Description: "Salário", Amount: 5000, Type: core.Income, PaymentMethod: core.Transfer, Status: core.Paid, InstallmentCount: 1, CurrentInstallment: 1},
		{Date: "2024-03-05", Description: "Mercado", Amount: 300, Type: core.Expense, PaymentMethod: core.Pix, Status: core.Paid, InstallmentCount: 1, CurrentInstallment: 1},
	}
	for _, tx := range seed {
		if _, err := store.AddTransaction(ctx, tx); err != nil {
			t.Fatalf("AddTransaction: %v", err)
		}
	}

	stats, err := svc.Dashboard(ctx)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if stats.TotalIncome != 5000 || stats.TotalExpense != 300 || stats.Balance != 4700 || stats.TotalCards != 1 {
		t.Errorf("stats = %+v", stats)
	}

	sum, err := svc.MonthlySummary(ctx, "2024-03")
	if err != nil {
		t.Fatalf("MonthlySummary: %v", err)
	}
	if sum.TotalIncome != 5000 || sum.TotalExpense != 300 {
		t.Errorf("summary = %+v", sum)
	}
}
