package http

import "testing"

func TestFormatCents(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{1234, "$12.34"},
		{123450, "$1234.50"},
		{-50, "-$0.50"},
		{-100000, "-$1000.00"},
	}

	for _, tt := range tests {
		if got := formatCents(tt.cents); got != tt.want {
			t.Errorf("formatCents(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2024-01-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year() != 2024 || int(d.Month()) != 1 || d.Day() != 15 {
		t.Errorf("unexpected date: %v", d)
	}

	if _, err := parseDate("15/01/2024"); err == nil {
		t.Error("expected error for non-ISO date")
	}
	if _, err := parseDate(""); err == nil {
		t.Error("expected error for empty date")
	}
}

func TestMonthLabel(t *testing.T) {
	if got := monthLabel(2024, 3); got != "2024-03" {
		t.Errorf("monthLabel(2024, 3) = %q", got)
	}
	if got := monthLabel(2024, 12); got != "2024-12" {
		t.Errorf("monthLabel(2024, 12) = %q", got)
	}
}

func TestParseID(t *testing.T) {
	if id, err := parseID(" 42 "); err != nil || id != 42 {
		t.Errorf("parseID(\" 42 \") = %d, %v", id, err)
	}
	for _, bad := range []string{"", "0", "-1", "abc", "1.5"} {
		if _, err := parseID(bad); err == nil {
			t.Errorf("parseID(%q) should fail", bad)
		}
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := sanitizeInput("  hello\x00world  "); got != "helloworld" {
		t.Errorf("sanitizeInput = %q", got)
	}
	if got := sanitizeInput("plain"); got != "plain" {
		t.Errorf("sanitizeInput = %q", got)
	}
}
