package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/fintrack/fintrack/internal/event_bus"
	"github.com/fintrack/fintrack/internal/utils"
	"github.com/fintrack/fintrack/pkg/category"
	"github.com/shopspring/decimal"
)

// Service owns the in-memory ledger and guards its invariants: every mutation
// validates first, persists the whole snapshot, and only then commits to
// memory, so memory and storage never diverge.
type Service interface {
	Snapshot(ctx context.Context) Ledger
	AddTransaction(ctx context.Context, amount decimal.Decimal, kind Kind, cat string) (Transaction, error)
	SetBalance(ctx context.Context, amount decimal.Decimal) error
	DecreaseBalance(ctx context.Context, amount decimal.Decimal) error
}

type ServiceImpl struct {
	mu         sync.Mutex
	repo       Repository
	vocabulary category.Vocabulary
	clock      utils.Clock
	bus        *event_bus.EventBus
	ledger     Ledger
	lastID     int64
}

// NewService loads the persisted ledger and returns a ready service. A
// corrupt snapshot surfaces here as a CorruptStateError.
func NewService(ctx context.Context, repo Repository, vocabulary category.Vocabulary, clock utils.Clock, bus *event_bus.EventBus) (*ServiceImpl, error) {
	l, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	s := &ServiceImpl{
		repo:       repo,
		vocabulary: vocabulary,
		clock:      clock,
		bus:        bus,
		ledger:     l,
	}
	for _, tx := range l.Transactions {
		if tx.ID > s.lastID {
			s.lastID = tx.ID
		}
	}
	return s, nil
}

// Snapshot returns a copy of the current ledger for rendering. Callers must
// not retain it across mutations.
func (s *ServiceImpl) Snapshot(ctx context.Context) Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := s.ledger
	l.Transactions = make([]Transaction, len(s.ledger.Transactions))
	copy(l.Transactions, s.ledger.Transactions)
	return l
}

func (s *ServiceImpl) AddTransaction(ctx context.Context, amount decimal.Decimal, kind Kind, cat string) (Transaction, error) {
	if amount.Sign() <= 0 {
		return Transaction{}, &InvalidTransactionError{Field: "amount", Reason: "must be greater than zero"}
	}
	if !kind.IsValid() {
		return Transaction{}, &InvalidTransactionError{Field: "type", Reason: fmt.Sprintf("must be %q or %q", KindExpense, KindSavings)}
	}
	if cat == "" {
		return Transaction{}, &InvalidTransactionError{Field: "category", Reason: "must not be empty"}
	}
	if !s.vocabulary.Contains(string(kind), cat) {
		return Transaction{}, &InvalidTransactionError{Field: "category", Reason: fmt.Sprintf("%q is not a known %s category", cat, kind)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := Transaction{
		ID:         s.nextID(),
		Amount:     amount,
		Kind:       kind,
		Category:   cat,
		OccurredAt: s.clock.Now(),
	}
	next := s.ledger
	next.Transactions = make([]Transaction, 0, len(s.ledger.Transactions)+1)
	next.Transactions = append(next.Transactions, s.ledger.Transactions...)
	next.Transactions = append(next.Transactions, tx)

	if err := s.repo.Save(ctx, next); err != nil {
		return Transaction{}, err
	}
	s.ledger = next

	s.bus.Publish(event_bus.NewEvent(ctx, event_bus.TransactionAdded, event_bus.TransactionAddedPayload{
		ID:         tx.ID,
		Amount:     tx.Amount,
		Kind:       string(tx.Kind),
		Category:   tx.Category,
		OccurredAt: tx.OccurredAt,
	}))
	return tx, nil
}

func (s *ServiceImpl) SetBalance(ctx context.Context, amount decimal.Decimal) error {
	if amount.Sign() < 0 {
		return ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.ledger
	next.MonthlyBalance = amount
	if err := s.repo.Save(ctx, next); err != nil {
		return err
	}
	s.ledger = next

	s.bus.Publish(event_bus.NewEvent(ctx, event_bus.BalanceSet, event_bus.BalanceChangedPayload{
		Amount:     amount,
		NewBalance: next.MonthlyBalance,
	}))
	return nil
}

func (s *ServiceImpl) DecreaseBalance(ctx context.Context, amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if amount.GreaterThan(s.ledger.MonthlyBalance) {
		return ErrInsufficientBalance
	}
	next := s.ledger
	next.MonthlyBalance = s.ledger.MonthlyBalance.Sub(amount)
	if err := s.repo.Save(ctx, next); err != nil {
		return err
	}
	s.ledger = next

	s.bus.Publish(event_bus.NewEvent(ctx, event_bus.BalanceDecreased, event_bus.BalanceChangedPayload{
		Amount:     amount,
		NewBalance: next.MonthlyBalance,
	}))
	return nil
}

// nextID derives IDs from the clock in Unix milliseconds, bumped past the
// last issued ID so two transactions in the same millisecond stay distinct.
// Callers must hold s.mu.
func (s *ServiceImpl) nextID() int64 {
	id := s.clock.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}
