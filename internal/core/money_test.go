package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1", "1", true},
		{"1.23", "1.23", true},
		{"1,23", "1.23", true},
		{"0", "0", true},
		{"0.005", "0.005", true}, // precision kept, no early rounding
		{" 2.50 ", "2.5", true},
		{"-1", "", false},
		{"+1", "", false},
		{"abc", "", false},
		{"1.2.3", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("%q unexpected error %v", tc.in, err)
			}
			want, _ := decimal.NewFromString(tc.out)
			if !got.Equal(want) {
				t.Fatalf("%q expected %s, got %s", tc.in, want, got)
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestFormatEUR(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"30.5", "30,50€"},
		{"0", "0,00€"},
		{"100", "100,00€"},
		{"1234.5", "1.234,50€"},
		{"1234567.891", "1.234.567,89€"},
		{"69.5", "69,50€"},
		{"-12.3", "-12,30€"},
		{"0.005", "0,01€"}, // half-up only at display time
	}
	for _, tc := range cases {
		d, err := decimal.NewFromString(tc.in)
		if err != nil {
			t.Fatalf("bad case %q: %v", tc.in, err)
		}
		if got := FormatEUR(d); got != tc.out {
			t.Fatalf("FormatEUR(%s) = %q, want %q", tc.in, got, tc.out)
		}
	}
}

func TestSummarize(t *testing.T) {
	invs := []Invoice{
		{Type: Fahrkosten, Amount: decimal.RequireFromString("10.50")},
		{Type: Verpflegung, Amount: decimal.RequireFromString("20.00")},
		{Type: Vorschuss, Amount: decimal.RequireFromString("100")},
	}
	s := Summarize(invs)

	if !s.Expenditure.Equal(decimal.RequireFromString("30.50")) {
		t.Fatalf("expenditure = %s", s.Expenditure)
	}
	if !s.Income.Equal(decimal.RequireFromString("100")) {
		t.Fatalf("income = %s", s.Income)
	}
	if !s.Balance.Equal(decimal.RequireFromString("69.50")) {
		t.Fatalf("balance = %s", s.Balance)
	}

	if len(s.ByType) != len(InvoiceTypes) {
		t.Fatalf("expected %d type rows, got %d", len(InvoiceTypes), len(s.ByType))
	}
	for i, row := range s.ByType {
		if row.Type != InvoiceTypes[i] {
			t.Fatalf("row %d out of order: %s", i, row.Type)
		}
	}
	if !s.ByType[0].Amount.Equal(decimal.RequireFromString("100")) {
		t.Fatalf("Vorschuss sum = %s", s.ByType[0].Amount)
	}
	if !s.ByType[5].Amount.IsZero() {
		t.Fatalf("unused type should sum to zero, got %s", s.ByType[5].Amount)
	}
}
