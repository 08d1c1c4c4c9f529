package http

import (
	"errors"
	"log/slog"
	"net/http"

	"cardbook/internal/core"
	"cardbook/internal/storage"
)

type cardFormData struct {
	Error string
	Name  string
	Type  string
}

func (s *Server) handleNewCard(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.render(w, r, http.StatusOK, "add_card.html", cardFormData{})
	case http.MethodPost:
		s.createCard(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) createCard(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	name := sanitizeInput(r.Form.Get("name"))
	rawType := r.Form.Get("card_type")
	rawBalance := r.Form.Get("balance")

	fail := func(msg string) {
		s.render(w, r, http.StatusUnprocessableEntity, "add_card.html", cardFormData{
			Error: msg,
			Name:  name,
			Type:  rawType,
		})
	}

	cardType, err := core.ParseCardType(rawType)
	if err != nil {
		fail("Card type must be debit or credit")
		return
	}

	// Starting balance is optional; blank means zero.
	var balanceCents int64
	if rawBalance != "" {
		balanceCents, err = core.ParseDecimalToCents(rawBalance)
		if err != nil {
			fail("Starting balance must be a positive amount or empty")
			return
		}
	}

	candidate := core.Card{
		Name:    name,
		Type:    cardType,
		Balance: core.Money{Cents: balanceCents},
	}
	if err := candidate.Validate(); err != nil {
		fail("Invalid card: " + err.Error())
		return
	}

	card, err := s.ledger.CreateCard(r.Context(), candidate)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to create card",
			"error", err, "card_name", name, "card_type", cardType)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	slog.InfoContext(r.Context(), "Card created",
		"card_id", card.ID, "card_name", card.Name, "card_type", card.Type)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	id, err := parseID(r.Form.Get("id"))
	if err != nil {
		http.Error(w, "invalid card id", http.StatusBadRequest)
		return
	}

	if err := s.ledger.DeleteCard(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrCardNotFound) {
			http.NotFound(w, r)
			return
		}
		slog.ErrorContext(r.Context(), "Failed to delete card", "error", err, "card_id", id)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.invalidateStats()

	slog.InfoContext(r.Context(), "Card deleted", "card_id", id)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
