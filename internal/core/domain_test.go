package core

import (
	"strings"
	"testing"
	"time"
)

func TestParseCardType(t *testing.T) {
	cases := []struct {
		in   string
		want CardType
		ok   bool
	}{
		{"debit", Debit, true},
		{"credit", Credit, true},
		{" debit ", Debit, true},
		{"DEBIT", "", false},
		{"prepaid", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseCardType(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("%q: expected %q, got %q (err=%v)", tc.in, tc.want, got, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%q: expected error", tc.in)
		}
	}
}

func TestParseTransactionType(t *testing.T) {
	if got, err := ParseTransactionType("income"); err != nil || got != Income {
		t.Fatalf("income: got %q err=%v", got, err)
	}
	if got, err := ParseTransactionType("expense"); err != nil || got != Expense {
		t.Fatalf("expense: got %q err=%v", got, err)
	}
	if _, err := ParseTransactionType("transfer"); err == nil {
		t.Fatal("expected error for unknown type")
	}
}

func TestCardValidate(t *testing.T) {
	good := Card{Name: "Everyday", Type: Debit}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Card{
		{Name: "", Type: Debit},
		{Name: "   ", Type: Credit},
		{Name: strings.Repeat("x", 101), Type: Debit},
		{Name: "Everyday", Type: CardType("prepaid")},
	}
	for i, c := range bads {
		if err := c.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		CardID:      1,
		Type:        Expense,
		Amount:      Money{Cents: 100},
		Description: "groceries",
		Category:    "Food",
		Date:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		{CardID: 0, Type: Expense, Amount: Money{Cents: 1}, Description: "a", Date: good.Date},
		{CardID: 1, Type: TransactionType("transfer"), Amount: Money{Cents: 1}, Description: "a", Date: good.Date},
		{CardID: 1, Type: Income, Amount: Money{Cents: 0}, Description: "a", Date: good.Date},
		{CardID: 1, Type: Income, Amount: Money{Cents: 1}, Description: "", Date: good.Date},
		{CardID: 1, Type: Income, Amount: Money{Cents: 1}, Description: strings.Repeat("x", 201), Date: good.Date},
		{CardID: 1, Type: Income, Amount: Money{Cents: 1}, Description: "a", Category: strings.Repeat("x", 51), Date: good.Date},
		{CardID: 1, Type: Income, Amount: Money{Cents: 1}, Description: "a", Date: time.Time{}},
	}
	for i, tc := range bads {
		if err := tc.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}
