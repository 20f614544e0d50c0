package core

import "testing"

func TestExpandInstallments(t *testing.T) {
	base := Transaction{
		Date:          "2024-01-15",
		Description:   "Notebook",
		Amount:        1200,
		Type:          Expense,
		PaymentMethod: CreditCard,
		Status:        Paid,
		CreditCardID:  "1",
	}

	got := ExpandInstallments(base, 3)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}

	wantDates := []string{"2024-01-15", "2024-02-15", "2024-03-15"}
	wantDescs := []string{"Notebook (1/3)", "Notebook (2/3)", "Notebook (3/3)"}
	wantStatus := []Status{Paid, Pending, Pending}

	for i, tx := range got {
		if tx.Amount != 400 {
			t.Errorf("installment %d amount = %v, want 400", i+1, tx.Amount)
		}
		if tx.Date != wantDates[i] {
			t.Errorf("installment %d date = %s, want %s", i+1, tx.Date, wantDates[i])
		}
		if tx.Description != wantDescs[i] {
			t.Errorf("installment %d description = %q, want %q", i+1, tx.Description, wantDescs[i])
		}
		if tx.Status != wantStatus[i] {
			t.Errorf("installment %d status = %s, want %s", i+1, tx.Status, wantStatus[i])
		}
		if !tx.IsInstallment || tx.InstallmentCount != 3 || tx.CurrentInstallment != i+1 {
			t.Errorf("installment %d bookkeeping wrong: %+v", i+1, tx)
		}
		if tx.ID != "" {
			t.Errorf("installment %d carries an id: %q", i+1, tx.ID)
		}
	}
}

func TestExpandInstallmentsSingle(t *testing.T) {
	base := Transaction{
		Date:          "2024-01-15",
		Description:   "Jantar",
		Amount:        80,
		Type:          Expense,
		PaymentMethod: Cash,
		Status:        Paid,
	}

	for _, n := range []int{0, 1} {
		got := ExpandInstallments(base, n)
		if len(got) != 1 {
			t.Fatalf("n=%d: len = %d, want 1", n, len(got))
		}
		tx := got[0]
		if tx.Amount != 80 || tx.Description != "Jantar" || tx.Date != "2024-01-15" {
			t.Errorf("n=%d: base transaction changed: %+v", n, tx)
		}
		if tx.IsInstallment || tx.InstallmentCount != 1 || tx.CurrentInstallment != 1 {
			t.Errorf("n=%d: not normalized to single installment: %+v", n, tx)
		}
	}
}

// Month stepping follows the calendar: Jan 31 + 1 month normalizes into
// early March on non-leap years.
func TestExpandInstallmentsMonthOverflow(t *testing.T) {
	base := Transaction{
		Date:          "2025-01-31",
		Description:   "Sofá",
		Amount:        300,
		Type:          Expense,
		PaymentMethod: CreditCard,
		Status:        Pending,
	}

	got := ExpandInstallments(base, 3)
	wantDates := []string{"2025-01-31", "2025-03-03", "2025-03-31"}
	for i, tx := range got {
		if tx.Date != wantDates[i] {
			t.Errorf("installment %d date = %s, want %s", i+1, tx.Date, wantDates[i])
		}
	}
}

func TestExpandInstallmentsUnevenAmount(t *testing.T) {
	base := Transaction{
		Date:          "2024-06-01",
		Description:   "Curso",
		Amount:        100,
		Type:          Expense,
		PaymentMethod: CreditCard,
		Status:        Pending,
	}

	got := ExpandInstallments(base, 3)
	for i, tx := range got {
		if tx.Amount != 100.0/3.0 {
			t.Errorf("installment %d amount = %v, want %v", i+1, tx.Amount, 100.0/3.0)
		}
	}
}
