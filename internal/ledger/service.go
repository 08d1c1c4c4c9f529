// Package ledger orchestrates card and transaction operations: validation,
// the balance rule, atomic persistence and change notifications.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cardbook/internal/core"
)

// Service wires the store and the optional event publisher together.
type Service struct {
	store     Store
	publisher Publisher
}

// NewService creates a ledger service. publisher may be nil; events are then
// skipped.
func NewService(store Store, publisher Publisher) *Service {
	return &Service{
		store:     store,
		publisher: publisher,
	}
}

// CreateCard validates and persists a new card.
func (s *Service) CreateCard(ctx context.Context, c core.Card) (core.Card, error) {
	if err := c.Validate(); err != nil {
		return core.Card{}, fmt.Errorf("validate card: %w", err)
	}
	created, err := s.store.CreateCard(ctx, c)
	if err != nil {
		return core.Card{}, fmt.Errorf("create card: %w", err)
	}
	return created, nil
}

// ListCards returns all cards.
func (s *Service) ListCards(ctx context.Context) ([]core.Card, error) {
	return s.store.ListCards(ctx)
}

// RecordTransaction validates the transaction, computes the balance delta
// from the owning card's type, and persists row and balance update in one
// unit. A missing date defaults to now.
func (s *Service) RecordTransaction(ctx context.Context, t core.Transaction) (core.Transaction, core.Card, error) {
	if t.Date.IsZero() {
		t.Date = time.Now()
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, core.Card{}, fmt.Errorf("validate transaction: %w", err)
	}

	card, err := s.store.GetCard(ctx, t.CardID)
	if err != nil {
		return core.Transaction{}, core.Card{}, fmt.Errorf("load card: %w", err)
	}

	delta, err := core.BalanceDelta(card.Type, t.Type, t.Amount.Cents)
	if err != nil {
		return core.Transaction{}, core.Card{}, fmt.Errorf("balance delta: %w", err)
	}

	stored, err := s.store.CreateTransaction(ctx, t, delta)
	if err != nil {
		return core.Transaction{}, core.Card{}, fmt.Errorf("record transaction: %w", err)
	}
	card.Balance.Cents += delta

	if s.publisher != nil {
		if err := s.publisher.PublishTransactionRecorded(ctx, stored.ID, stored.CardID); err != nil {
			// The transaction is persisted; a lost notification must not fail
			// the request.
			slog.ErrorContext(ctx, "Failed to publish transaction recorded event",
				"id", stored.ID, "card_id", stored.CardID, "error", err)
		}
	}

	return stored, card, nil
}

// DeleteCard removes a card and all its transactions.
func (s *Service) DeleteCard(ctx context.Context, id int64) error {
	owned, err := s.store.ListTransactionsByCard(ctx, id)
	if err != nil {
		return fmt.Errorf("list card transactions: %w", err)
	}

	if err := s.store.DeleteCard(ctx, id); err != nil {
		return fmt.Errorf("delete card: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishCardDeleted(ctx, id, int64(len(owned))); err != nil {
			slog.ErrorContext(ctx, "Failed to publish card deleted event",
				"card_id", id, "error", err)
		}
	}

	return nil
}

// ListTransactions returns every transaction, newest first.
func (s *Service) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	return s.store.ListTransactions(ctx)
}

// MonthlyStats folds the full transaction set into per-month summaries.
// Transactions of deleted cards are gone from the store, so they never
// contribute.
func (s *Service) MonthlyStats(ctx context.Context) (map[core.MonthKey]core.MonthlySummary, error) {
	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return core.AggregateByMonth(txs), nil
}
