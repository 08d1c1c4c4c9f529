package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"cardbook/internal/core"
	"cardbook/internal/storage"
)

// fakeLedger implements the Ledger interface in memory so handler tests do
// not need a database.
type fakeLedger struct {
	cards        []core.Card
	transactions []core.Transaction
	stats        map[core.MonthKey]core.MonthlySummary

	createdCards []core.Card
	recorded     []core.Transaction
	deleted      []int64

	nextID int64
}

func (f *fakeLedger) CreateCard(_ context.Context, c core.Card) (core.Card, error) {
	f.nextID++
	c.ID = f.nextID
	f.cards = append(f.cards, c)
	f.createdCards = append(f.createdCards, c)
	return c, nil
}

func (f *fakeLedger) ListCards(_ context.Context) ([]core.Card, error) {
	return f.cards, nil
}

func (f *fakeLedger) DeleteCard(_ context.Context, id int64) error {
	for i, c := range f.cards {
		if c.ID == id {
			f.cards = append(f.cards[:i], f.cards[i+1:]...)
			f.deleted = append(f.deleted, id)
			return nil
		}
	}
	return storage.ErrCardNotFound
}

func (f *fakeLedger) RecordTransaction(_ context.Context, t core.Transaction) (core.Transaction, core.Card, error) {
	for _, c := range f.cards {
		if c.ID == t.CardID {
			f.nextID++
			t.ID = f.nextID
			f.transactions = append(f.transactions, t)
			f.recorded = append(f.recorded, t)
			return t, c, nil
		}
	}
	return core.Transaction{}, core.Card{}, storage.ErrCardNotFound
}

func (f *fakeLedger) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	return f.transactions, nil
}

func (f *fakeLedger) MonthlyStats(_ context.Context) (map[core.MonthKey]core.MonthlySummary, error) {
	if f.stats == nil {
		return map[core.MonthKey]core.MonthlySummary{}, nil
	}
	return f.stats, nil
}

func newTestServer(t *testing.T, ldg Ledger) *Server {
	t.Helper()
	s := NewServer("127.0.0.1:0", ldg, Options{})
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		s.Shutdown(ctx)
	})
	return s
}

func doRequest(s *Server, method, target string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestDashboard(t *testing.T) {
	ldg := &fakeLedger{
		cards: []core.Card{
			{ID: 1, Name: "Everyday", Type: core.Debit, Balance: core.Money{Cents: 123450}},
			{ID: 2, Name: "Rewards", Type: core.Credit, Balance: core.Money{Cents: -5000}},
		},
		stats: map[core.MonthKey]core.MonthlySummary{
			{Year: 2024, Month: 1}: {IncomeCents: 100000, ExpenseCents: 20000},
		},
		nextID: 2,
	}
	s := newTestServer(t, ldg)

	rec := doRequest(s, http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	for _, want := range []string{"Everyday", "Rewards", "$1234.50", "2024-01", "$800.00"} {
		if !strings.Contains(body, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}
}

func TestDashboardUnknownPath(t *testing.T) {
	s := newTestServer(t, &fakeLedger{})

	rec := doRequest(s, http.MethodGet, "/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCreateCard(t *testing.T) {
	ldg := &fakeLedger{}
	s := newTestServer(t, ldg)

	rec := doRequest(s, http.MethodPost, "/cards/new", url.Values{
		"name":      {"Everyday"},
		"card_type": {"debit"},
		"balance":   {"100.00"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/" {
		t.Errorf("expected redirect to /, got %q", got)
	}

	if len(ldg.createdCards) != 1 {
		t.Fatalf("expected 1 card created, got %d", len(ldg.createdCards))
	}
	card := ldg.createdCards[0]
	if card.Name != "Everyday" || card.Type != core.Debit || card.Balance.Cents != 10000 {
		t.Errorf("unexpected card: %+v", card)
	}
}

func TestCreateCardInvalidType(t *testing.T) {
	ldg := &fakeLedger{}
	s := newTestServer(t, ldg)

	rec := doRequest(s, http.MethodPost, "/cards/new", url.Values{
		"name":      {"Everyday"},
		"card_type": {"prepaid"},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if len(ldg.createdCards) != 0 {
		t.Errorf("card should not have been created")
	}
}

func TestCreateCardEmptyBalanceDefaultsToZero(t *testing.T) {
	ldg := &fakeLedger{}
	s := newTestServer(t, ldg)

	rec := doRequest(s, http.MethodPost, "/cards/new", url.Values{
		"name":      {"Rewards"},
		"card_type": {"credit"},
		"balance":   {""},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if ldg.createdCards[0].Balance.Cents != 0 {
		t.Errorf("expected zero balance, got %d", ldg.createdCards[0].Balance.Cents)
	}
}

func TestDeleteCard(t *testing.T) {
	ldg := &fakeLedger{
		cards:  []core.Card{{ID: 7, Name: "Old", Type: core.Debit}},
		nextID: 7,
	}
	s := newTestServer(t, ldg)

	rec := doRequest(s, http.MethodPost, "/cards/delete", url.Values{"id": {"7"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if len(ldg.deleted) != 1 || ldg.deleted[0] != 7 {
		t.Errorf("expected card 7 deleted, got %v", ldg.deleted)
	}
}

func TestDeleteUnknownCard(t *testing.T) {
	s := newTestServer(t, &fakeLedger{})

	rec := doRequest(s, http.MethodPost, "/cards/delete", url.Values{"id": {"99"}})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDeleteCardRequiresPost(t *testing.T) {
	s := newTestServer(t, &fakeLedger{})

	rec := doRequest(s, http.MethodGet, "/cards/delete?id=1", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestRecordTransaction(t *testing.T) {
	ldg := &fakeLedger{
		cards:  []core.Card{{ID: 1, Name: "Everyday", Type: core.Debit, Balance: core.Money{Cents: 50000}}},
		nextID: 1,
	}
	s := newTestServer(t, ldg)

	rec := doRequest(s, http.MethodPost, "/transactions/new", url.Values{
		"card_id":          {"1"},
		"transaction_type": {"expense"},
		"amount":           {"12.34"},
		"description":      {"Groceries"},
		"category":         {"Food"},
		"date":             {"2024-01-15"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d; body: %s", rec.Code, rec.Body.String())
	}

	if len(ldg.recorded) != 1 {
		t.Fatalf("expected 1 transaction recorded, got %d", len(ldg.recorded))
	}
	tx := ldg.recorded[0]
	if tx.Amount.Cents != 1234 || tx.Type != core.Expense || tx.Description != "Groceries" {
		t.Errorf("unexpected transaction: %+v", tx)
	}
	if tx.Date.Format("2006-01-02") != "2024-01-15" {
		t.Errorf("unexpected date: %v", tx.Date)
	}
}

func TestRecordTransactionZeroAmount(t *testing.T) {
	ldg := &fakeLedger{
		cards:  []core.Card{{ID: 1, Name: "Everyday", Type: core.Debit}},
		nextID: 1,
	}
	s := newTestServer(t, ldg)

	rec := doRequest(s, http.MethodPost, "/transactions/new", url.Values{
		"card_id":          {"1"},
		"transaction_type": {"expense"},
		"amount":           {"0"},
		"description":      {"Nothing"},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if len(ldg.recorded) != 0 {
		t.Errorf("transaction should not have been recorded")
	}
}

func TestRecordTransactionMissingCard(t *testing.T) {
	s := newTestServer(t, &fakeLedger{})

	rec := doRequest(s, http.MethodPost, "/transactions/new", url.Values{
		"card_id":          {"42"},
		"transaction_type": {"income"},
		"amount":           {"10.00"},
		"description":      {"Refund"},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestRecordTransactionBlankDateDefaultsToToday(t *testing.T) {
	ldg := &fakeLedger{
		cards:  []core.Card{{ID: 1, Name: "Everyday", Type: core.Debit}},
		nextID: 1,
	}
	s := newTestServer(t, ldg)

	rec := doRequest(s, http.MethodPost, "/transactions/new", url.Values{
		"card_id":          {"1"},
		"transaction_type": {"income"},
		"amount":           {"5.00"},
		"description":      {"Found money"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if time.Since(ldg.recorded[0].Date) > time.Minute {
		t.Errorf("expected date near now, got %v", ldg.recorded[0].Date)
	}
}

func TestTransactionsPage(t *testing.T) {
	ldg := &fakeLedger{
		cards: []core.Card{{ID: 1, Name: "Everyday", Type: core.Debit}},
		transactions: []core.Transaction{
			{ID: 10, CardID: 1, Type: core.Expense, Amount: core.Money{Cents: 2599},
				Description: "Dinner", Category: "Dining",
				Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)},
		},
		nextID: 10,
	}
	s := newTestServer(t, ldg)

	rec := doRequest(s, http.MethodGet, "/transactions", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Dinner", "Everyday", "$25.99", "2024-03-02"} {
		if !strings.Contains(body, want) {
			t.Errorf("transactions page missing %q", want)
		}
	}
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, &fakeLedger{})

	rec := doRequest(s, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("unexpected health body: %s", rec.Body.String())
	}
}

func TestSecurityHeaders(t *testing.T) {
	s := newTestServer(t, &fakeLedger{})

	rec := doRequest(s, http.MethodGet, "/", nil)
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("expected X-Frame-Options DENY, got %q", got)
	}
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("expected nosniff, got %q", got)
	}
}
