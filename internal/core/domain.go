package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	Cash       PaymentMethod = "cash"
	CreditCard PaymentMethod = "credit_card"
	DebitCard  PaymentMethod = "debit_card"
	Pix        PaymentMethod = "pix"
	Transfer   PaymentMethod = "transfer"
)

const (
	Paid    Status = "paid"
	Pending Status = "pending"
)

// DateLayout is the wire format for transaction dates.
const DateLayout = "2006-01-02"

type (
	TransactionType string
	PaymentMethod   string
	Status          string

	// Transaction is a single income or expense record. Amount is always
	// non-negative; the direction is carried by Type.
	Transaction struct {
		ID                 string          `json:"id"`
		Date               string          `json:"date"`
		Description        string          `json:"description"`
		Amount             float64         `json:"amount"`
		Type               TransactionType `json:"type"`
		PaymentMethod      PaymentMethod   `json:"payment_method"`
		Status             Status          `json:"status"`
		IsInstallment      bool            `json:"is_installment"`
		InstallmentCount   int             `json:"installment_count"`
		CurrentInstallment int             `json:"current_installment"`
		CategoryID         string          `json:"category_id,omitempty"`
		CreditCardID       string          `json:"credit_card_id,omitempty"`
		DueDate            string          `json:"due_date,omitempty"`
		Notes              string          `json:"notes,omitempty"`
	}

	Card struct {
		ID         string  `json:"id"`
		Name       string  `json:"name"`
		LimitTotal float64 `json:"limit_total"`
		ClosingDay int     `json:"closing_day"`
		DueDay     int     `json:"due_day"`
	}

	Category struct {
		ID    string          `json:"id"`
		Name  string          `json:"name"`
		Type  TransactionType `json:"type"`
		Color string          `json:"color"`
		Icon  string          `json:"icon,omitempty"`
	}

	// TransactionPatch carries a partial update; nil fields are left as-is.
	TransactionPatch struct {
		Date          *string          `json:"date,omitempty"`
		Description   *string          `json:"description,omitempty"`
		Amount        *float64         `json:"amount,omitempty"`
		Type          *TransactionType `json:"type,omitempty"`
		PaymentMethod *PaymentMethod   `json:"payment_method,omitempty"`
		Status        *Status          `json:"status,omitempty"`
		CategoryID    *string          `json:"category_id,omitempty"`
		CreditCardID  *string          `json:"credit_card_id,omitempty"`
		DueDate       *string          `json:"due_date,omitempty"`
		Notes         *string          `json:"notes,omitempty"`
	}

	CardPatch struct {
		Name       *string  `json:"name,omitempty"`
		LimitTotal *float64 `json:"limit_total,omitempty"`
		ClosingDay *int     `json:"closing_day,omitempty"`
		DueDay     *int     `json:"due_day,omitempty"`
	}
)

var (
	ErrInvalidDate          = errors.New("invalid date")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrEmptyDescription     = errors.New("empty description")
	ErrDescriptionTooLong   = errors.New("description too long (max 200 characters)")
	ErrEmptyName            = errors.New("empty name")
	ErrInvalidType          = errors.New("invalid transaction type")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrInvalidDay           = errors.New("invalid day of month")
	ErrInvalidInstallments  = errors.New("invalid installment count")
)

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case Cash, CreditCard, DebitCard, Pix, Transfer:
		return true
	}
	return false
}

func (s Status) Valid() bool {
	return s == Paid || s == Pending
}

func (t Transaction) Validate() error {
	if _, err := time.Parse(DateLayout, t.Date); err != nil {
		return ErrInvalidDate
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return ErrDescriptionTooLong
	}
	if t.Amount < 0 {
		return ErrInvalidAmount
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if !t.PaymentMethod.Valid() {
		return ErrInvalidPaymentMethod
	}
	if !t.Status.Valid() {
		return ErrInvalidStatus
	}
	if t.InstallmentCount < 1 || t.CurrentInstallment < 1 {
		return ErrInvalidInstallments
	}
	if t.CurrentInstallment > t.InstallmentCount {
		return ErrInvalidInstallments
	}
	if !t.IsInstallment && (t.InstallmentCount != 1 || t.CurrentInstallment != 1) {
		return ErrInvalidInstallments
	}
	if t.DueDate != "" {
		if _, err := time.Parse(DateLayout, t.DueDate); err != nil {
			return ErrInvalidDate
		}
	}
	return nil
}

func (c Card) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if c.LimitTotal <= 0 {
		return ErrInvalidAmount
	}
	if c.ClosingDay < 1 || c.ClosingDay > 31 {
		return ErrInvalidDay
	}
	if c.DueDay < 1 || c.DueDay > 31 {
		return ErrInvalidDay
	}
	return nil
}

// Apply merges the non-nil fields of p onto t and returns the result.
// Changing the payment method away from credit_card clears the card
// reference, since that reference only makes sense for card payments.
func (p TransactionPatch) Apply(t Transaction) Transaction {
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.PaymentMethod != nil {
		t.PaymentMethod = *p.PaymentMethod
	}
	if p.CreditCardID != nil {
		t.CreditCardID = *p.CreditCardID
	}
	if t.PaymentMethod != CreditCard {
		t.CreditCardID = ""
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.CategoryID != nil {
		t.CategoryID = *p.CategoryID
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
	return t
}

func (p CardPatch) Apply(c Card) Card {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.LimitTotal != nil {
		c.LimitTotal = *p.LimitTotal
	}
	if p.ClosingDay != nil {
		c.ClosingDay = *p.ClosingDay
	}
	if p.DueDay != nil {
		c.DueDay = *p.DueDay
	}
	return c
}
