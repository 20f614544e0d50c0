package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"financas/internal/core"
)

// Amount fields are json.RawMessage so clients can send either a number or
// a user-typed currency string; see parseAmount.
type createTransactionRequest struct {
	Date          string          `json:"date"`
	Description   string          `json:"description"`
	Amount        json.RawMessage `json:"amount"`
	Type          string          `json:"type"`
	PaymentMethod string          `json:"payment_method"`
	Status        string          `json:"status"`
	Installments  int             `json:"installments"`
	CategoryID    string          `json:"category_id"`
	CreditCardID  string          `json:"credit_card_id"`
	DueDate       string          `json:"due_date"`
	Notes         string          `json:"notes"`
}

// parseAmount accepts either a JSON number or a formatted currency string
// ("R$ 1.234,56"). Strings go through the lenient parser, which never fails
// and falls back to zero; zero is then caught by validation where it matters.
func parseAmount(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return core.ParseCurrency(s)
	}
	return 0
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.service.ListTransactions(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List transactions error", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}
	respondJSON(w, http.StatusOK, txs)
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	t, ok, err := s.service.GetTransaction(r.Context(), id)
	if err != nil {
		slog.ErrorContext(r.Context(), "Get transaction error", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "failed to get transaction")
		return
	}
	if !ok {
		respondError(w, http.StatusNotFound, "transaction not found")
		return
	}
	respondJSON(w, http.StatusOK, t)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t := core.Transaction{
		Date:          req.Date,
		Description:   sanitizeInput(req.Description),
		Amount:        parseAmount(req.Amount),
		Type:          core.TransactionType(req.Type),
		PaymentMethod: core.PaymentMethod(req.PaymentMethod),
		Status:        core.Status(req.Status),
		CategoryID:    req.CategoryID,
		CreditCardID:  req.CreditCardID,
		DueDate:       req.DueDate,
		Notes:         sanitizeInput(req.Notes),
	}

	created, err := s.service.CreateTransaction(r.Context(), t, req.Installments)
	if err != nil {
		slog.ErrorContext(r.Context(), "Create transaction error", "error", err,
			"description", t.Description, "amount", t.Amount)
		respondWriteError(w, err, "failed to save transaction")
		return
	}

	s.invalidateDerived()
	respondJSON(w, http.StatusCreated, created)
}

type updateTransactionRequest struct {
	Date          *string               `json:"date"`
	Description   *string               `json:"description"`
	Amount        json.RawMessage       `json:"amount"`
	Type          *core.TransactionType `json:"type"`
	PaymentMethod *core.PaymentMethod   `json:"payment_method"`
	Status        *core.Status          `json:"status"`
	CategoryID    *string               `json:"category_id"`
	CreditCardID  *string               `json:"credit_card_id"`
	DueDate       *string               `json:"due_date"`
	Notes         *string               `json:"notes"`
}

func (r updateTransactionRequest) toPatch() core.TransactionPatch {
	p := core.TransactionPatch{
		Date:          r.Date,
		Description:   r.Description,
		Type:          r.Type,
		PaymentMethod: r.PaymentMethod,
		Status:        r.Status,
		CategoryID:    r.CategoryID,
		CreditCardID:  r.CreditCardID,
		DueDate:       r.DueDate,
		Notes:         r.Notes,
	}
	if len(r.Amount) > 0 && string(r.Amount) != "null" {
		amount := parseAmount(r.Amount)
		p.Amount = &amount
	}
	return p
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req updateTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, ok, err := s.service.UpdateTransaction(r.Context(), id, req.toPatch())
	if err != nil {
		slog.ErrorContext(r.Context(), "Update transaction error", "error", err, "id", id)
		respondWriteError(w, err, "failed to update transaction")
		return
	}
	if !ok {
		respondError(w, http.StatusNotFound, "transaction not found")
		return
	}

	s.invalidateDerived()
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	deleted, err := s.service.DeleteTransaction(r.Context(), id)
	if err != nil {
		slog.ErrorContext(r.Context(), "Delete transaction error", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "failed to delete transaction")
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "transaction not found")
		return
	}

	s.invalidateDerived()
	respondJSON(w, http.StatusNoContent, nil)
}

// sanitizeInput trims whitespace and strips control characters.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
