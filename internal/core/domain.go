package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Debit  CardType = "debit"
	Credit CardType = "credit"

	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

type (
	// CardType distinguishes instruments where the balance is funds held
	// (debit) from instruments where it is debt owed (credit).
	CardType string

	// TransactionType marks a transaction as increasing (income) or
	// decreasing (expense) the owner's net worth.
	TransactionType string

	Money struct {
		Cents int64
	}

	Card struct {
		ID      int64
		Name    string
		Type    CardType
		Balance Money // signed; overdraft and overpayment are allowed
	}

	Transaction struct {
		ID          int64
		CardID      int64
		Type        TransactionType
		Amount      Money // always positive; direction comes from the types
		Description string
		Category    string
		Date        time.Time
	}
)

var (
	ErrInvalidCardType        = errors.New("invalid card type")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrEmptyName              = errors.New("empty card name")
	ErrEmptyDescription       = errors.New("empty description")
	ErrMissingCard            = errors.New("transaction has no card")
)

func (t CardType) Valid() bool {
	return t == Debit || t == Credit
}

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// ParseCardType converts a raw string into a CardType, rejecting anything
// outside the closed set.
func ParseCardType(s string) (CardType, error) {
	switch CardType(strings.TrimSpace(s)) {
	case Debit:
		return Debit, nil
	case Credit:
		return Credit, nil
	default:
		return "", ErrInvalidCardType
	}
}

// ParseTransactionType converts a raw string into a TransactionType,
// rejecting anything outside the closed set.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(strings.TrimSpace(s)) {
	case Income:
		return Income, nil
	case Expense:
		return Expense, nil
	default:
		return "", ErrInvalidTransactionType
	}
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (c Card) Validate() error {
	if len(strings.TrimSpace(c.Name)) == 0 {
		return ErrEmptyName
	}
	if len(c.Name) > 100 {
		return errors.New("card name too long (max 100 characters)")
	}
	if !c.Type.Valid() {
		return ErrInvalidCardType
	}
	return nil
}

func (t Transaction) Validate() error {
	if t.CardID <= 0 {
		return ErrMissingCard
	}
	if !t.Type.Valid() {
		return ErrInvalidTransactionType
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if len(t.Category) > 50 {
		return errors.New("category too long (max 50 characters)")
	}
	if t.Date.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}
