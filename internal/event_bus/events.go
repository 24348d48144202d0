package event_bus

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// TransactionAdded fires after a transaction has been appended and persisted.
	TransactionAdded EventType = "ledger.transaction.added"
	// BalanceSet fires after the monthly balance has been replaced and persisted.
	BalanceSet EventType = "ledger.balance.set"
	// BalanceDecreased fires after the monthly balance has been reduced and persisted.
	BalanceDecreased EventType = "ledger.balance.decreased"
)

type TransactionAddedPayload struct {
	ID         int64
	Amount     decimal.Decimal
	Kind       string
	Category   string
	OccurredAt time.Time
}

type BalanceChangedPayload struct {
	Amount     decimal.Decimal
	NewBalance decimal.Decimal
}
