package ledger

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type TransactionDTO struct {
	ID       int64           `json:"id"`
	Amount   decimal.Decimal `json:"amount"`
	Type     string          `json:"type"`
	Category string          `json:"category"`
	Date     time.Time       `json:"date"`
}

type LedgerDTO struct {
	MonthlyBalance decimal.Decimal  `json:"monthlyBalance"`
	Transactions   []TransactionDTO `json:"transactions"`
	CurrentMonth   int              `json:"currentMonth"`
	CurrentYear    int              `json:"currentYear"`
}

type Handler struct {
	ledgerService Service
}

func NewHandler(ledgerService Service) *Handler {
	return &Handler{ledgerService}
}

func (handler *Handler) GetLedger(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	l := handler.ledgerService.Snapshot(r.Context())

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(LedgerToDTO(l)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) AddTransaction(w http.ResponseWriter, r *http.Request) {
	log.Debug("Registering new transaction")
	w.Header().Set("Content-Type", "application/json")

	var req struct {
		Amount   decimal.Decimal `json:"amount"`
		Type     string          `json:"type"`
		Category string          `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := handler.ledgerService.AddTransaction(r.Context(), req.Amount, Kind(req.Type), req.Category)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(TransactionToDTO(tx)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) SetBalance(w http.ResponseWriter, r *http.Request) {
	log.Debug("Setting monthly balance")
	w.Header().Set("Content-Type", "application/json")

	amount, ok := decodeAmount(w, r)
	if !ok {
		return
	}
	if err := handler.ledgerService.SetBalance(r.Context(), amount); err != nil {
		writeServiceError(w, err)
		return
	}
	handler.writeBalance(w, r)
}

func (handler *Handler) DecreaseBalance(w http.ResponseWriter, r *http.Request) {
	log.Debug("Decreasing monthly balance")
	w.Header().Set("Content-Type", "application/json")

	amount, ok := decodeAmount(w, r)
	if !ok {
		return
	}
	if err := handler.ledgerService.DecreaseBalance(r.Context(), amount); err != nil {
		writeServiceError(w, err)
		return
	}
	handler.writeBalance(w, r)
}

func (handler *Handler) writeBalance(w http.ResponseWriter, r *http.Request) {
	l := handler.ledgerService.Snapshot(r.Context())
	response := struct {
		MonthlyBalance decimal.Decimal `json:"monthlyBalance"`
	}{l.MonthlyBalance}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func decodeAmount(w http.ResponseWriter, r *http.Request) (decimal.Decimal, bool) {
	var req struct {
		Amount decimal.Decimal `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return decimal.Decimal{}, false
	}
	return req.Amount, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	var invalidTx *InvalidTransactionError
	switch {
	case errors.As(err, &invalidTx):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrInvalidAmount):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrInsufficientBalance):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func TransactionToDTO(tx Transaction) TransactionDTO {
	return TransactionDTO{
		ID:       tx.ID,
		Amount:   tx.Amount,
		Type:     string(tx.Kind),
		Category: tx.Category,
		Date:     tx.OccurredAt,
	}
}

func LedgerToDTO(l Ledger) LedgerDTO {
	txs := make([]TransactionDTO, 0, len(l.Transactions))
	for _, tx := range l.Transactions {
		txs = append(txs, TransactionToDTO(tx))
	}
	return LedgerDTO{
		MonthlyBalance: l.MonthlyBalance,
		Transactions:   txs,
		CurrentMonth:   int(l.Month) - 1,
		CurrentYear:    l.Year,
	}
}
