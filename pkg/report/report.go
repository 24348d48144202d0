// Package report computes derived views over the ledger's transaction list.
// All functions are pure and total: they never mutate their input and cannot
// fail on a well-formed ledger.
package report

import (
	"sort"
	"time"

	"github.com/fintrack/fintrack/pkg/ledger"
	"github.com/shopspring/decimal"
)

// TotalByKind sums the amounts of all transactions of the given kind.
func TotalByKind(txs []ledger.Transaction, kind ledger.Kind) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		if tx.Kind == kind {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// RemainingBalance is the monthly balance minus all expenses. It may go
// negative: overspending is surfaced, not prevented.
func RemainingBalance(l ledger.Ledger) decimal.Decimal {
	return l.MonthlyBalance.Sub(TotalByKind(l.Transactions, ledger.KindExpense))
}

type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// TotalsByCategory sums amounts per category for the given kind. The result
// keeps categories in order of first occurrence, which is the order the
// category chart legends expect.
func TotalsByCategory(txs []ledger.Transaction, kind ledger.Kind) []CategoryTotal {
	index := map[string]int{}
	totals := []CategoryTotal{}
	for _, tx := range txs {
		if tx.Kind != kind {
			continue
		}
		i, seen := index[tx.Category]
		if !seen {
			totals = append(totals, CategoryTotal{Category: tx.Category, Total: decimal.Zero})
			i = len(totals) - 1
			index[tx.Category] = i
		}
		totals[i].Total = totals[i].Total.Add(tx.Amount)
	}
	return totals
}

// DayGroup is one calendar day of history: a display label plus that day's
// transactions in their original insertion order.
type DayGroup struct {
	Date         time.Time
	Label        string
	Transactions []ledger.Transaction
}

// GroupByDay partitions transactions by calendar date, time of day discarded.
// Groups come back most recent day first; inside a group the insertion order
// is preserved.
func GroupByDay(txs []ledger.Transaction) []DayGroup {
	index := map[string]int{}
	var groups []DayGroup
	for _, tx := range txs {
		key := tx.OccurredAt.Format("2006-01-02")
		i, seen := index[key]
		if !seen {
			day := time.Date(tx.OccurredAt.Year(), tx.OccurredAt.Month(), tx.OccurredAt.Day(), 0, 0, 0, 0, tx.OccurredAt.Location())
			groups = append(groups, DayGroup{Date: day, Label: day.Format("2 January 2006")})
			i = len(groups) - 1
			index[key] = i
		}
		groups[i].Transactions = append(groups[i].Transactions, tx)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Date.After(groups[j].Date)
	})
	return groups
}

// Overview carries the four balance chart bars.
type Overview struct {
	MonthlyBalance decimal.Decimal
	TotalExpenses  decimal.Decimal
	TotalSavings   decimal.Decimal
	Remaining      decimal.Decimal
}

// BalanceOverview computes the balance chart data for a ledger snapshot.
func BalanceOverview(l ledger.Ledger) Overview {
	return Overview{
		MonthlyBalance: l.MonthlyBalance,
		TotalExpenses:  TotalByKind(l.Transactions, ledger.KindExpense),
		TotalSavings:   TotalByKind(l.Transactions, ledger.KindSavings),
		Remaining:      RemainingBalance(l),
	}
}
