package ledger

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Wire format of the persisted snapshot. Field names and the 0-based
// currentMonth are kept byte-compatible with snapshots written by earlier
// versions of the tracker, so existing data keeps loading.
type transactionDoc struct {
	ID       *int64           `json:"id"`
	Amount   *decimal.Decimal `json:"amount"`
	Type     *string          `json:"type"`
	Category *string          `json:"category"`
	Date     *string          `json:"date"`
}

type ledgerDoc struct {
	MonthlyBalance *decimal.Decimal  `json:"monthlyBalance"`
	Transactions   *[]transactionDoc `json:"transactions"`
	CurrentMonth   *int              `json:"currentMonth"`
	CurrentYear    *int              `json:"currentYear"`
}

// Encode serializes the full ledger to its wire format.
func Encode(l Ledger) ([]byte, error) {
	txDocs := make([]transactionDoc, 0, len(l.Transactions))
	for i := range l.Transactions {
		tx := l.Transactions[i]
		kind := string(tx.Kind)
		date := tx.OccurredAt.Format(time.RFC3339Nano)
		txDocs = append(txDocs, transactionDoc{
			ID:       &tx.ID,
			Amount:   &tx.Amount,
			Type:     &kind,
			Category: &tx.Category,
			Date:     &date,
		})
	}
	month := int(l.Month) - 1
	doc := ledgerDoc{
		MonthlyBalance: &l.MonthlyBalance,
		Transactions:   &txDocs,
		CurrentMonth:   &month,
		CurrentYear:    &l.Year,
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("could not encode ledger: %w", err)
	}
	return data, nil
}

// Decode parses a persisted snapshot, enumerating every required field and
// failing fast with a CorruptStateError on any mismatch instead of trusting
// the stored shape.
func Decode(data []byte) (Ledger, error) {
	var doc ledgerDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return Ledger{}, &CorruptStateError{Reason: "not valid JSON", Err: err}
	}
	if doc.MonthlyBalance == nil {
		return Ledger{}, &CorruptStateError{Reason: "missing monthlyBalance"}
	}
	if doc.MonthlyBalance.Sign() < 0 {
		return Ledger{}, &CorruptStateError{Reason: "monthlyBalance is negative"}
	}
	if doc.Transactions == nil {
		return Ledger{}, &CorruptStateError{Reason: "missing transactions"}
	}
	if doc.CurrentMonth == nil {
		return Ledger{}, &CorruptStateError{Reason: "missing currentMonth"}
	}
	if doc.CurrentYear == nil {
		return Ledger{}, &CorruptStateError{Reason: "missing currentYear"}
	}

	l := Ledger{
		MonthlyBalance: *doc.MonthlyBalance,
		Month:          time.Month(*doc.CurrentMonth + 1),
		Year:           *doc.CurrentYear,
	}
	l.Transactions = make([]Transaction, 0, len(*doc.Transactions))
	for i, txDoc := range *doc.Transactions {
		tx, err := decodeTransaction(txDoc)
		if err != nil {
			return Ledger{}, &CorruptStateError{Reason: fmt.Sprintf("transaction %d", i), Err: err}
		}
		l.Transactions = append(l.Transactions, tx)
	}
	return l, nil
}

func decodeTransaction(doc transactionDoc) (Transaction, error) {
	if doc.ID == nil {
		return Transaction{}, fmt.Errorf("missing id")
	}
	if doc.Amount == nil {
		return Transaction{}, fmt.Errorf("missing amount")
	}
	if doc.Type == nil {
		return Transaction{}, fmt.Errorf("missing type")
	}
	kind := Kind(*doc.Type)
	if !kind.IsValid() {
		return Transaction{}, fmt.Errorf("unknown type %q", *doc.Type)
	}
	if doc.Category == nil {
		return Transaction{}, fmt.Errorf("missing category")
	}
	if doc.Date == nil {
		return Transaction{}, fmt.Errorf("missing date")
	}
	occurredAt, err := time.Parse(time.RFC3339Nano, *doc.Date)
	if err != nil {
		return Transaction{}, fmt.Errorf("could not parse date %q: %w", *doc.Date, err)
	}
	return Transaction{
		ID:         *doc.ID,
		Amount:     *doc.Amount,
		Kind:       kind,
		Category:   *doc.Category,
		OccurredAt: occurredAt,
	}, nil
}
