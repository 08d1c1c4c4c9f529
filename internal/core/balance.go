package core

// BalanceDelta returns the signed change to a card's balance for one
// transaction, in cents.
//
// For a debit card the balance is funds held: income adds, expense subtracts.
// For a credit card the balance is debt owed: expense adds, income (a payment
// toward the card) subtracts. Unknown types are rejected rather than defaulted
// to a direction.
func BalanceDelta(cardType CardType, txType TransactionType, amountCents int64) (int64, error) {
	if amountCents <= 0 {
		return 0, ErrInvalidAmount
	}
	switch cardType {
	case Debit:
		switch txType {
		case Income:
			return amountCents, nil
		case Expense:
			return -amountCents, nil
		}
		return 0, ErrInvalidTransactionType
	case Credit:
		switch txType {
		case Income:
			return -amountCents, nil
		case Expense:
			return amountCents, nil
		}
		return 0, ErrInvalidTransactionType
	}
	return 0, ErrInvalidCardType
}

// ApplyTransaction computes a card's new balance after one transaction. The
// result is never clamped: a debit card may go overdrawn and a credit card may
// go negative when overpaid.
func ApplyTransaction(balanceCents int64, cardType CardType, txType TransactionType, amountCents int64) (int64, error) {
	delta, err := BalanceDelta(cardType, txType, amountCents)
	if err != nil {
		return 0, err
	}
	return balanceCents + delta, nil
}
