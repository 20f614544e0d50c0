package http

import (
	"log/slog"
	"net/http"

	"financas/internal/core"
)

type createCardRequest struct {
	Name       string  `json:"name"`
	LimitTotal float64 `json:"limit_total"`
	ClosingDay int     `json:"closing_day"`
	DueDay     int     `json:"due_day"`
}

// handleListCards returns all cards with derived usage figures.
func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := s.service.ListCardUsage(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List cards error", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list cards")
		return
	}
	respondJSON(w, http.StatusOK, cards)
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	var req createCardRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	card := core.Card{
		Name:       sanitizeInput(req.Name),
		LimitTotal: req.LimitTotal,
		ClosingDay: req.ClosingDay,
		DueDay:     req.DueDay,
	}

	created, err := s.service.CreateCard(r.Context(), card)
	if err != nil {
		slog.ErrorContext(r.Context(), "Create card error", "error", err, "name", card.Name)
		respondWriteError(w, err, "failed to save card")
		return
	}

	s.invalidateDerived()
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var patch core.CardPatch
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, ok, err := s.service.UpdateCard(r.Context(), id, patch)
	if err != nil {
		slog.ErrorContext(r.Context(), "Update card error", "error", err, "id", id)
		respondWriteError(w, err, "failed to update card")
		return
	}
	if !ok {
		respondError(w, http.StatusNotFound, "card not found")
		return
	}

	s.invalidateDerived()
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	deleted, err := s.service.DeleteCard(r.Context(), id)
	if err != nil {
		slog.ErrorContext(r.Context(), "Delete card error", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "failed to delete card")
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "card not found")
		return
	}

	s.invalidateDerived()
	respondJSON(w, http.StatusNoContent, nil)
}
