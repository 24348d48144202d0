package report

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fintrack/fintrack/pkg/ledger"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// SnapshotProvider is the slice of the ledger service the reports need.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) ledger.Ledger
}

type SummaryDTO struct {
	MonthlyBalance   decimal.Decimal `json:"monthlyBalance"`
	TotalExpenses    decimal.Decimal `json:"totalExpenses"`
	TotalSavings     decimal.Decimal `json:"totalSavings"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
}

type DayGroupDTO struct {
	Date         string                  `json:"date"`
	Label        string                  `json:"label"`
	Transactions []ledger.TransactionDTO `json:"transactions"`
}

type CategoryTotalDTO struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

type BarDTO struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

type Handler struct {
	ledgerService SnapshotProvider
}

func NewHandler(ledgerService SnapshotProvider) *Handler {
	return &Handler{ledgerService}
}

// GetSummary serves the four headline figures of the summary panel.
func (handler *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	overview := BalanceOverview(handler.ledgerService.Snapshot(r.Context()))
	dto := SummaryDTO{
		MonthlyBalance:   overview.MonthlyBalance,
		TotalExpenses:    overview.TotalExpenses,
		TotalSavings:     overview.TotalSavings,
		RemainingBalance: overview.Remaining,
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetHistory serves the transaction history grouped by day, newest day first.
func (handler *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	l := handler.ledgerService.Snapshot(r.Context())
	groups := GroupByDay(l.Transactions)

	dtos := make([]DayGroupDTO, 0, len(groups))
	for _, group := range groups {
		txs := make([]ledger.TransactionDTO, 0, len(group.Transactions))
		for _, tx := range group.Transactions {
			txs = append(txs, ledger.TransactionToDTO(tx))
		}
		dtos = append(dtos, DayGroupDTO{
			Date:         group.Date.Format("2006-01-02"),
			Label:        group.Label,
			Transactions: txs,
		})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetCategoryTotals serves the per-category totals the category chart plots,
// in first-seen order.
func (handler *Handler) GetCategoryTotals(w http.ResponseWriter, r *http.Request) {
	log.Debug("Computing category totals")
	w.Header().Set("Content-Type", "application/json")

	kind := ledger.Kind(r.URL.Query().Get("type"))
	if !kind.IsValid() {
		http.Error(w, "unknown transaction type", http.StatusBadRequest)
		return
	}

	l := handler.ledgerService.Snapshot(r.Context())
	totals := TotalsByCategory(l.Transactions, kind)

	dtos := make([]CategoryTotalDTO, 0, len(totals))
	for _, total := range totals {
		dtos = append(dtos, CategoryTotalDTO{Category: total.Category, Total: total.Total})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetBalanceOverview serves the four bars of the balance chart.
func (handler *Handler) GetBalanceOverview(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	overview := BalanceOverview(handler.ledgerService.Snapshot(r.Context()))
	bars := []BarDTO{
		{Label: "Balance", Value: overview.MonthlyBalance},
		{Label: "Expenses", Value: overview.TotalExpenses},
		{Label: "Savings", Value: overview.TotalSavings},
		{Label: "Remaining", Value: overview.Remaining},
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(bars); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
