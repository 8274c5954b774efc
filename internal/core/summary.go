package core

import "github.com/shopspring/decimal"

// TypeAmount is an amount aggregated per invoice type.
type TypeAmount struct {
	Type   InvoiceType
	Amount decimal.Decimal
}

// Summary holds the per-type sums of a bill plus the three closing figures
// of the totals report. Sums carry full precision; formatting rounds later.
type Summary struct {
	ByType      []TypeAmount // one entry per type, in InvoiceTypes order
	Expenditure decimal.Decimal
	Income      decimal.Decimal
	Balance     decimal.Decimal // Income - Expenditure
}

// Summarize folds a bill's invoices into per-type sums. Every one of the
// fixed types appears in the result, zero when unused. Vorschuss and Einahme
// count as income, everything else as expenditure.
func Summarize(invoices []Invoice) Summary {
	sums := make(map[InvoiceType]decimal.Decimal, len(InvoiceTypes))
	for _, t := range InvoiceTypes {
		sums[t] = decimal.Zero
	}
	for _, inv := range invoices {
		sums[inv.Type] = sums[inv.Type].Add(inv.Amount)
	}

	s := Summary{
		Expenditure: decimal.Zero,
		Income:      decimal.Zero,
	}
	for _, t := range InvoiceTypes {
		s.ByType = append(s.ByType, TypeAmount{Type: t, Amount: sums[t]})
		if t.IsIncome() {
			s.Income = s.Income.Add(sums[t])
		} else {
			s.Expenditure = s.Expenditure.Add(sums[t])
		}
	}
	s.Balance = s.Income.Sub(s.Expenditure)
	return s
}
