package ledger

import (
	"context"

	"cardbook/internal/core"
)

// Ports consumed by the HTTP layer. The Service implements all of them;
// handlers depend on these so tests can swap in fakes.
type (
	CardCreator interface {
		CreateCard(ctx context.Context, c core.Card) (core.Card, error)
	}

	CardLister interface {
		ListCards(ctx context.Context) ([]core.Card, error)
	}

	CardDeleter interface {
		DeleteCard(ctx context.Context, id int64) error
	}

	// TransactionRecorder persists a transaction and the balance update it
	// implies as one unit. It returns the stored transaction and the owning
	// card with its new balance.
	TransactionRecorder interface {
		RecordTransaction(ctx context.Context, t core.Transaction) (core.Transaction, core.Card, error)
	}

	TransactionLister interface {
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
	}

	// StatsReader produces the per-month income/expense/savings aggregate.
	StatsReader interface {
		MonthlyStats(ctx context.Context) (map[core.MonthKey]core.MonthlySummary, error)
	}
)

// Store is the persistence surface the service needs. *storage.SQLiteRepository
// satisfies it.
type Store interface {
	CreateCard(ctx context.Context, c core.Card) (core.Card, error)
	GetCard(ctx context.Context, id int64) (core.Card, error)
	ListCards(ctx context.Context) ([]core.Card, error)
	DeleteCard(ctx context.Context, id int64) error
	CreateTransaction(ctx context.Context, t core.Transaction, deltaCents int64) (core.Transaction, error)
	ListTransactions(ctx context.Context) ([]core.Transaction, error)
	ListTransactionsByCard(ctx context.Context, cardID int64) ([]core.Transaction, error)
}

// Publisher notifies downstream consumers of ledger changes. Publishing is
// best-effort; the service never fails a request over it.
type Publisher interface {
	PublishTransactionRecorded(ctx context.Context, id, cardID int64) error
	PublishCardDeleted(ctx context.Context, cardID, transactions int64) error
}
