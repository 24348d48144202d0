package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindExpense Kind = "expense"
	KindSavings Kind = "savings"
)

func (k Kind) IsValid() bool {
	return k == KindExpense || k == KindSavings
}

// Transaction is one recorded money movement. Transactions are created by
// Service.AddTransaction only and are never updated or deleted afterwards.
type Transaction struct {
	ID         int64
	Amount     decimal.Decimal
	Kind       Kind
	Category   string
	OccurredAt time.Time
}

// Ledger is the whole persisted state. MonthlyBalance never goes below zero;
// Transactions is append-only and kept in creation order. Month and Year form
// the display-only period marker, recomputed on every load and never used to
// filter or archive transactions.
type Ledger struct {
	MonthlyBalance decimal.Decimal
	Transactions   []Transaction
	Month          time.Month
	Year           int
}

// NewLedger returns a fresh empty ledger with the period taken from now.
func NewLedger(now time.Time) Ledger {
	return Ledger{
		MonthlyBalance: decimal.Zero,
		Month:          now.Month(),
		Year:           now.Year(),
	}
}
