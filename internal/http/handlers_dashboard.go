package http

import (
	"log/slog"
	"net/http"

	"cardbook/internal/core"
)

const statsCacheKey = "monthly"

// CardView is a card row prepared for templates.
type CardView struct {
	ID          int64
	Name        string
	Type        string
	Balance     string
	IsCredit    bool
	BalanceNeg  bool
}

// MonthStat is one dashboard row: a month with its totals.
type MonthStat struct {
	Label      string
	Income     string
	Expense    string
	Savings    string
	SavingsNeg bool
}

type dashboardData struct {
	Cards  []CardView
	Months []MonthStat
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	cards, err := s.ledger.ListCards(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list cards", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	months, ok := s.statsCache.Get(statsCacheKey)
	if !ok {
		stats, err := s.ledger.MonthlyStats(r.Context())
		if err != nil {
			slog.ErrorContext(r.Context(), "Failed to aggregate monthly stats", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		months = buildMonthStats(stats)
		s.statsCache.Set(statsCacheKey, months)
	}

	s.render(w, r, http.StatusOK, "index.html", dashboardData{
		Cards:  buildCardViews(cards),
		Months: months,
	})
}

func buildCardViews(cards []core.Card) []CardView {
	views := make([]CardView, len(cards))
	for i, c := range cards {
		views[i] = CardView{
			ID:         c.ID,
			Name:       c.Name,
			Type:       string(c.Type),
			Balance:    formatCents(c.Balance.Cents),
			IsCredit:   c.Type == core.Credit,
			BalanceNeg: c.Balance.Cents < 0,
		}
	}
	return views
}

// buildMonthStats orders months newest-first, the order the dashboard shows.
func buildMonthStats(stats map[core.MonthKey]core.MonthlySummary) []MonthStat {
	keys := core.SortMonthsDesc(stats)
	rows := make([]MonthStat, len(keys))
	for i, k := range keys {
		sum := stats[k]
		rows[i] = MonthStat{
			Label:      monthLabel(k.Year, k.Month),
			Income:     formatCents(sum.IncomeCents),
			Expense:    formatCents(sum.ExpenseCents),
			Savings:    formatCents(sum.SavingsCents()),
			SavingsNeg: sum.SavingsCents() < 0,
		}
	}
	return rows
}
