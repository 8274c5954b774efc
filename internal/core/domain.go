package core

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	Vorschuss   InvoiceType = "Vorschuss"
	Einahme     InvoiceType = "Einahme"
	Fahrkosten  InvoiceType = "Fahrkosten"
	Unterkunft  InvoiceType = "Unterkunft"
	Verpflegung InvoiceType = "Verpflegung"
	Material    InvoiceType = "Material"
	Sonstiges   InvoiceType = "Sonstiges"
)

// InvoiceTypes lists all categories in report order.
var InvoiceTypes = []InvoiceType{
	Vorschuss, Einahme, Fahrkosten, Unterkunft, Verpflegung, Material, Sonstiges,
}

const (
	KindImage AttachmentKind = "image"
	KindPDF   AttachmentKind = "pdf"
)

type (
	InvoiceType string

	AttachmentKind string

	// Attachment is a scanned receipt file. Data carries the original bytes
	// as a data-URL (base64 with embedded MIME type); bytes are immutable
	// once attached.
	Attachment struct {
		Name string         `json:"name"`
		Kind AttachmentKind `json:"kind"`
		Data string         `json:"data"`
	}

	// Invoice is one reimbursable line item inside a Bill.
	Invoice struct {
		ID          string          `json:"id"`
		ManualID    string          `json:"manual_id"`
		Amount      decimal.Decimal `json:"amount"`
		Type        InvoiceType     `json:"type"`
		Description string          `json:"description"`
		Date        Date            `json:"date"`
		Files       []Attachment    `json:"files,omitempty"`
	}

	// Bill is one reimbursement claim with its nested invoices.
	Bill struct {
		ID                string       `json:"id"`
		Name              string       `json:"name"`
		ResponsiblePerson string       `json:"responsiblePerson"`
		IBAN              string       `json:"iban"`
		Date              Date         `json:"date"`
		Invoices          []Invoice    `json:"invoices"`
		Files             []Attachment `json:"files,omitempty"`
	}
)

var (
	ErrEmptyName          = errors.New("empty name")
	ErrEmptyResponsible   = errors.New("empty responsible person")
	ErrInvalidIBAN        = errors.New("invalid IBAN: must be DE followed by 20 digits")
	ErrEmptyManualID      = errors.New("empty invoice number")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrNegativeAmount     = errors.New("amount must not be negative")
	ErrUnknownInvoiceType = errors.New("unknown invoice type")
	ErrInvalidDate        = errors.New("invalid date")
	ErrFutureDate         = errors.New("date must not be in the future")
	ErrDuplicateFileName  = errors.New("duplicate attachment name")
	ErrEmptyFileName      = errors.New("empty attachment name")
)

// German IBAN only: DE plus 20 digits.
var ibanPattern = regexp.MustCompile(`^DE\d{20}$`)

// IsValid returns true if the type belongs to the fixed category set.
func (t InvoiceType) IsValid() bool {
	for _, known := range InvoiceTypes {
		if t == known {
			return true
		}
	}
	return false
}

// IsIncome reports whether amounts of this type count toward income rather
// than spend. Vorschuss and Einahme are stored positive but treated as income.
func (t InvoiceType) IsIncome() bool {
	return t == Vorschuss || t == Einahme
}

func (a Attachment) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyFileName
	}
	if a.Kind != KindImage && a.Kind != KindPDF {
		return errors.New("attachment kind must be image or pdf")
	}
	return nil
}

func (i Invoice) Validate() error {
	if len(strings.TrimSpace(i.ManualID)) == 0 {
		return ErrEmptyManualID
	}
	if i.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if !i.Type.IsValid() {
		return ErrUnknownInvoiceType
	}
	if err := i.Date.Validate(); err != nil {
		return err
	}
	return validateFiles(i.Files)
}

func (b Bill) Validate() error {
	if len(strings.TrimSpace(b.Name)) == 0 {
		return ErrEmptyName
	}
	if len(strings.TrimSpace(b.ResponsiblePerson)) == 0 {
		return ErrEmptyResponsible
	}
	if !ibanPattern.MatchString(b.IBAN) {
		return ErrInvalidIBAN
	}
	if err := b.Date.Validate(); err != nil {
		return err
	}
	if err := validateFiles(b.Files); err != nil {
		return err
	}
	for _, inv := range b.Invoices {
		if err := inv.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// validateFiles checks every attachment and rejects name collisions within
// one file set; names become zip entry names on export.
func validateFiles(files []Attachment) error {
	seen := make(map[string]struct{}, len(files))
	for _, f := range files {
		if err := f.Validate(); err != nil {
			return err
		}
		if _, dup := seen[f.Name]; dup {
			return ErrDuplicateFileName
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}
