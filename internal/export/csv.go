package export

import (
	"strings"

	"abrechnung/internal/core"
)

// Separator is the field separator of the exported CSV reports.
const Separator = ";"

const (
	ledgerHeader = "Belegnummer;Betrag;Typ;Beschreibung;Datum;Dateien"
	totalsHeader = "Kategorie;Betrag"

	rowExpenditure = "Gesamtausgaben"
	rowIncome      = "Gesamteinnahmen"
	rowBalance     = "Endbestand"
)

// EscapeField backslash-escapes literal separators inside a value so the
// joined record stays unambiguous to parse.
func EscapeField(v string) string {
	return strings.ReplaceAll(v, Separator, `\`+Separator)
}

// UnescapeField reverses EscapeField.
func UnescapeField(v string) string {
	return strings.ReplaceAll(v, `\`+Separator, Separator)
}

func joinRecord(fields ...string) string {
	escaped := make([]string, len(fields))
	for i, f := range fields {
		escaped[i] = EscapeField(f)
	}
	return strings.Join(escaped, Separator)
}

// ledgerCSV renders one record per invoice: manual id, money-formatted
// amount, type, description, date, comma-joined attachment names.
func ledgerCSV(invoices []core.Invoice) string {
	lines := []string{ledgerHeader}
	for _, inv := range invoices {
		names := make([]string, len(inv.Files))
		for i, f := range inv.Files {
			names[i] = f.Name
		}
		lines = append(lines, joinRecord(
			inv.ManualID,
			core.FormatEUR(inv.Amount),
			string(inv.Type),
			inv.Description,
			inv.Date.ISO(),
			strings.Join(names, ","),
		))
	}
	return strings.Join(lines, "\n") + "\n"
}

// totalsCSV renders one row per invoice type plus the three closing rows.
// Sums arrive in full precision; FormatEUR rounds for display only.
func totalsCSV(s core.Summary) string {
	lines := []string{totalsHeader}
	for _, row := range s.ByType {
		lines = append(lines, joinRecord(string(row.Type), core.FormatEUR(row.Amount)))
	}
	lines = append(lines,
		joinRecord(rowExpenditure, core.FormatEUR(s.Expenditure)),
		joinRecord(rowIncome, core.FormatEUR(s.Income)),
		joinRecord(rowBalance, core.FormatEUR(s.Balance)),
	)
	return strings.Join(lines, "\n") + "\n"
}
