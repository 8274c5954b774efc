package core

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func validInvoice() Invoice {
	return Invoice{
		ManualID: "B-001",
		Amount:   decimal.NewFromFloat(12.50),
		Type:     Fahrkosten,
		Date:     NewDate(2025, 1, 15),
	}
}

func validBill() Bill {
	return Bill{
		Name:              "Sommerfahrt",
		ResponsiblePerson: "Erika Mustermann",
		IBAN:              "DE89370400440532013000",
		Date:              NewDate(2025, 2, 1),
	}
}

func TestIBANValidation(t *testing.T) {
	cases := []struct {
		iban string
		ok   bool
	}{
		{"DE89370400440532013000", true},
		{"FR1420041010050500013M02606", false},
		{"DE123", false},
		{"", false},
		{"DE8937040044053201300012", false}, // too long
		{"de89370400440532013000", false},   // lowercase country code
	}
	for _, tc := range cases {
		b := validBill()
		b.IBAN = tc.iban
		err := b.Validate()
		if tc.ok && err != nil {
			t.Fatalf("%q expected ok, got %v", tc.iban, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidIBAN) {
			t.Fatalf("%q expected ErrInvalidIBAN, got %v", tc.iban, err)
		}
	}
}

func TestInvoiceValidate(t *testing.T) {
	if err := validInvoice().Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Invoice)
		want   error
	}{
		{"empty manual id", func(i *Invoice) { i.ManualID = "  " }, ErrEmptyManualID},
		{"negative amount", func(i *Invoice) { i.Amount = decimal.NewFromInt(-1) }, ErrNegativeAmount},
		{"unknown type", func(i *Invoice) { i.Type = "Steuern" }, ErrUnknownInvoiceType},
		{"zero date", func(i *Invoice) { i.Date = Date{} }, ErrInvalidDate},
		{"future date", func(i *Invoice) { i.Date = NewDate(2999, 1, 1) }, ErrFutureDate},
		{"duplicate file names", func(i *Invoice) {
			i.Files = []Attachment{
				{Name: "a.jpg", Kind: KindImage, Data: "data:image/jpeg;base64,"},
				{Name: "a.jpg", Kind: KindImage, Data: "data:image/jpeg;base64,"},
			}
		}, ErrDuplicateFileName},
	}
	for _, tc := range cases {
		inv := validInvoice()
		tc.mutate(&inv)
		if err := inv.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestInvoiceValidateAllowsZeroAmountAndEmptyDescription(t *testing.T) {
	inv := validInvoice()
	inv.Amount = decimal.Zero
	inv.Description = ""
	if err := inv.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
}

func TestBillValidate(t *testing.T) {
	if err := validBill().Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Bill)
		want   error
	}{
		{"empty name", func(b *Bill) { b.Name = "" }, ErrEmptyName},
		{"empty responsible", func(b *Bill) { b.ResponsiblePerson = " " }, ErrEmptyResponsible},
		{"bad invoice", func(b *Bill) {
			inv := validInvoice()
			inv.ManualID = ""
			b.Invoices = []Invoice{inv}
		}, ErrEmptyManualID},
		{"unnamed attachment", func(b *Bill) {
			b.Files = []Attachment{{Name: "", Kind: KindPDF}}
		}, ErrEmptyFileName},
	}
	for _, tc := range cases {
		b := validBill()
		tc.mutate(&b)
		if err := b.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestInvoiceTypeClassification(t *testing.T) {
	for _, tc := range []struct {
		t      InvoiceType
		income bool
	}{
		{Vorschuss, true},
		{Einahme, true},
		{Fahrkosten, false},
		{Unterkunft, false},
		{Verpflegung, false},
		{Material, false},
		{Sonstiges, false},
	} {
		if tc.t.IsIncome() != tc.income {
			t.Fatalf("%s: IsIncome expected %v", tc.t, tc.income)
		}
		if !tc.t.IsValid() {
			t.Fatalf("%s should be valid", tc.t)
		}
	}
	if InvoiceType("Essen").IsValid() {
		t.Fatal("unexpected valid type")
	}
}
