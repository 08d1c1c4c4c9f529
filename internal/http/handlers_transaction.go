package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"cardbook/internal/core"
	"cardbook/internal/storage"
)

// Suggestions for the category datalist on the transaction form.
var categorySuggestions = []string{
	"Groceries",
	"Rent",
	"Salary",
	"Transport",
	"Utilities",
	"Dining",
	"Health",
	"Entertainment",
	"Other",
}

type transactionFormData struct {
	Error       string
	Cards       []CardView
	Categories  []string
	Today       string
	CardID      string
	Type        string
	Amount      string
	Description string
	Category    string
	Date        string
}

type transactionView struct {
	ID          int64
	CardName    string
	Type        core.TransactionType
	Amount      string
	Description string
	Category    string
	Date        string
	IsExpense   bool
}

type transactionsPageData struct {
	Transactions []transactionView
}

func (s *Server) handleNewTransaction(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.renderTransactionForm(w, r, http.StatusOK, transactionFormData{})
	case http.MethodPost:
		s.createTransaction(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) renderTransactionForm(w http.ResponseWriter, r *http.Request, status int, data transactionFormData) {
	cards, err := s.ledger.ListCards(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list cards for form", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	data.Cards = buildCardViews(cards)
	data.Categories = categorySuggestions
	data.Today = time.Now().Format("2006-01-02")
	s.render(w, r, status, "add_transaction.html", data)
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	rawCardID := r.Form.Get("card_id")
	rawType := r.Form.Get("transaction_type")
	rawAmount := r.Form.Get("amount")
	description := sanitizeInput(r.Form.Get("description"))
	category := sanitizeInput(r.Form.Get("category"))
	rawDate := r.Form.Get("date")

	fail := func(msg string) {
		s.renderTransactionForm(w, r, http.StatusUnprocessableEntity, transactionFormData{
			Error:       msg,
			CardID:      rawCardID,
			Type:        rawType,
			Amount:      rawAmount,
			Description: description,
			Category:    category,
			Date:        rawDate,
		})
	}

	cardID, err := parseID(rawCardID)
	if err != nil {
		fail("Select a card")
		return
	}

	txType, err := core.ParseTransactionType(rawType)
	if err != nil {
		fail("Transaction type must be income or expense")
		return
	}

	amountCents, err := core.ParseDecimalToCents(rawAmount)
	if err != nil {
		fail("Amount must be a positive number")
		return
	}

	// Date is optional; blank means today.
	var date time.Time
	if rawDate != "" {
		date, err = parseDate(rawDate)
		if err != nil {
			fail("Date must be in YYYY-MM-DD format")
			return
		}
	}

	candidate := core.Transaction{
		CardID:      cardID,
		Type:        txType,
		Amount:      core.Money{Cents: amountCents},
		Description: description,
		Category:    category,
		Date:        date,
	}
	if candidate.Date.IsZero() {
		candidate.Date = time.Now()
	}
	if err := candidate.Validate(); err != nil {
		fail("Invalid transaction: " + err.Error())
		return
	}

	tx, card, err := s.ledger.RecordTransaction(r.Context(), candidate)
	if err != nil {
		if errors.Is(err, storage.ErrCardNotFound) {
			fail("Card no longer exists")
			return
		}
		slog.ErrorContext(r.Context(), "Failed to record transaction",
			"error", err, "card_id", cardID, "transaction_type", txType)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.invalidateStats()

	slog.InfoContext(r.Context(), "Transaction recorded",
		"transaction_id", tx.ID, "card_id", card.ID,
		"transaction_type", tx.Type, "amount_cents", tx.Amount.Cents,
		"balance_cents", card.Balance.Cents)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	transactions, err := s.ledger.ListTransactions(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list transactions", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	cards, err := s.ledger.ListCards(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list cards", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	names := make(map[int64]string, len(cards))
	for _, c := range cards {
		names[c.ID] = c.Name
	}

	views := make([]transactionView, 0, len(transactions))
	for _, t := range transactions {
		views = append(views, transactionView{
			ID:          t.ID,
			CardName:    names[t.CardID],
			Type:        t.Type,
			Amount:      formatCents(t.Amount.Cents),
			Description: t.Description,
			Category:    t.Category,
			Date:        t.Date.Format("2006-01-02"),
			IsExpense:   t.Type == core.Expense,
		})
	}

	s.render(w, r, http.StatusOK, "transactions.html", transactionsPageData{Transactions: views})
}
