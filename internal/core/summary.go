package core

import "github.com/shopspring/decimal"

// Summary aggregates a list of transactions for the dashboard header.
type Summary struct {
	Count   int
	Credits decimal.Decimal
	Debits  decimal.Decimal // sum of debit amounts, negative or zero
}

// Net returns credits plus debits.
func (s Summary) Net() decimal.Decimal {
	return s.Credits.Add(s.Debits)
}

func Summarize(txs []Transaction) Summary {
	s := Summary{Count: len(txs), Credits: decimal.Zero, Debits: decimal.Zero}
	for _, t := range txs {
		if t.IsCredit() {
			s.Credits = s.Credits.Add(t.Amount)
		} else {
			s.Debits = s.Debits.Add(t.Amount)
		}
	}
	return s
}
