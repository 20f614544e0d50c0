package core

import (
	"errors"
	"testing"
)

func validTransaction() Transaction {
	return Transaction{
		Date:               "2024-01-15",
		Description:        "Supermercado",
		Amount:             250.50,
		Type:               Expense,
		PaymentMethod:      CreditCard,
		Status:             Paid,
		InstallmentCount:   1,
		CurrentInstallment: 1,
		CategoryID:         "1",
		CreditCardID:       "1",
	}
}

func TestTransactionValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr error
	}{
		{"valid", func(*Transaction) {}, nil},
		{"bad date", func(tx *Transaction) { tx.Date = "15/01/2024" }, ErrInvalidDate},
		{"empty description", func(tx *Transaction) { tx.Description = "  " }, ErrEmptyDescription},
		{"negative amount", func(tx *Transaction) { tx.Amount = -1 }, ErrInvalidAmount},
		{"bad type", func(tx *Transaction) { tx.Type = "transfer" }, ErrInvalidType},
		{"bad payment method", func(tx *Transaction) { tx.PaymentMethod = "check" }, ErrInvalidPaymentMethod},
		{"bad status", func(tx *Transaction) { tx.Status = "overdue" }, ErrInvalidStatus},
		{"current above count", func(tx *Transaction) {
			tx.IsInstallment = true
			tx.InstallmentCount = 3
			tx.CurrentInstallment = 4
		}, ErrInvalidInstallments},
		{"non installment with count", func(tx *Transaction) { tx.InstallmentCount = 3 }, ErrInvalidInstallments},
		{"bad due date", func(tx *Transaction) { tx.DueDate = "soon" }, ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTransaction()
			tt.mutate(&tx)
			err := tx.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCardValidate(t *testing.T) {
	tests := []struct {
		name    string
		card    Card
		wantErr bool
	}{
		{"valid", Card{Name: "Nubank", LimitTotal: 5000, ClosingDay: 15, DueDay: 22}, false},
		{"empty name", Card{Name: "", LimitTotal: 5000, ClosingDay: 15, DueDay: 22}, true},
		{"zero limit", Card{Name: "Nubank", LimitTotal: 0, ClosingDay: 15, DueDay: 22}, true},
		{"closing day too high", Card{Name: "Nubank", LimitTotal: 5000, ClosingDay: 32, DueDay: 22}, true},
		{"due day zero", Card{Name: "Nubank", LimitTotal: 5000, ClosingDay: 15, DueDay: 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.card.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTransactionPatchApply(t *testing.T) {
	base := validTransaction()

	newDesc := "Feira"
	newAmount := 99.90
	got := TransactionPatch{Description: &newDesc, Amount: &newAmount}.Apply(base)

	if got.Description != "Feira" || got.Amount != 99.90 {
		t.Errorf("patched fields not applied: %+v", got)
	}
	if got.Date != base.Date || got.Status != base.Status || got.CreditCardID != base.CreditCardID {
		t.Errorf("unpatched fields changed: %+v", got)
	}
}

// Moving away from credit card payment must drop the card reference.
func TestTransactionPatchClearsCardReference(t *testing.T) {
	base := validTransaction()

	pm := Pix
	got := TransactionPatch{PaymentMethod: &pm}.Apply(base)
	if got.CreditCardID != "" {
		t.Errorf("CreditCardID = %q, want empty after switching to pix", got.CreditCardID)
	}

	// Setting a card id while the method is not credit_card is a no-op too.
	cardID := "2"
	base.PaymentMethod = Pix
	base.CreditCardID = ""
	got = TransactionPatch{CreditCardID: &cardID}.Apply(base)
	if got.CreditCardID != "" {
		t.Errorf("CreditCardID = %q, want empty for non-card payment", got.CreditCardID)
	}
}

func TestCardPatchApply(t *testing.T) {
	base := Card{ID: "1", Name: "Nubank", LimitTotal: 5000, ClosingDay: 15, DueDay: 22}

	limit := 8000.0
	got := CardPatch{LimitTotal: &limit}.Apply(base)
	if got.LimitTotal != 8000 {
		t.Errorf("LimitTotal = %v, want 8000", got.LimitTotal)
	}
	if got.Name != "Nubank" || got.ClosingDay != 15 || got.DueDay != 22 {
		t.Errorf("unpatched fields changed: %+v", got)
	}
}
