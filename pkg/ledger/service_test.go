package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fintrack/fintrack/internal/event_bus"
	"github.com/fintrack/fintrack/internal/storage"
	"github.com/fintrack/fintrack/internal/utils"
	"github.com/fintrack/fintrack/pkg/category"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

var store = storage.NewMemoryStore()
var clock = &utils.MockClock{FixedNow: time.Date(2025, time.March, 10, 14, 30, 0, 0, time.UTC)}

var service *ServiceImpl

func setup(t *testing.T) func() {
	repo := NewStoreRepository(store, clock)
	var err error
	service, err = NewService(ctx, repo, category.Default(), clock, event_bus.NewEventBus())
	require.NoError(t, err)
	return func() {
		t.Log("Teardown after test")
		store.Cleanup()
	}
}

func TestServiceImpl_AddTransaction(t *testing.T) {
	t.Run("should append a transaction and persist it", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		tx, err := service.AddTransaction(ctx, decimal.NewFromInt(200), KindExpense, "Groceries")

		// then
		require.NoError(t, err)
		assert.Equal(t, clock.FixedNow.UnixMilli(), tx.ID)
		assert.Equal(t, clock.FixedNow, tx.OccurredAt)
		l := service.Snapshot(ctx)
		require.Len(t, l.Transactions, 1)
		assert.Equal(t, tx, l.Transactions[0])
	})

	t.Run("should issue distinct increasing ids within one millisecond", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		first, err := service.AddTransaction(ctx, decimal.NewFromInt(10), KindExpense, "Transport")
		require.NoError(t, err)
		second, err := service.AddTransaction(ctx, decimal.NewFromInt(20), KindExpense, "Transport")
		require.NoError(t, err)

		// then
		assert.Greater(t, second.ID, first.ID)
	})

	t.Run("should reject a non-positive amount without mutating", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.AddTransaction(ctx, decimal.NewFromInt(-5), KindExpense, "Groceries")

		// then
		var invalidTx *InvalidTransactionError
		require.ErrorAs(t, err, &invalidTx)
		assert.Equal(t, "amount", invalidTx.Field)
		assert.Empty(t, service.Snapshot(ctx).Transactions)
	})

	t.Run("should reject a zero amount", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.AddTransaction(ctx, decimal.Zero, KindExpense, "Groceries")

		// then
		var invalidTx *InvalidTransactionError
		require.ErrorAs(t, err, &invalidTx)
		assert.Equal(t, "amount", invalidTx.Field)
	})

	t.Run("should reject an unknown kind", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.AddTransaction(ctx, decimal.NewFromInt(5), Kind("income"), "Groceries")

		// then
		var invalidTx *InvalidTransactionError
		require.ErrorAs(t, err, &invalidTx)
		assert.Equal(t, "type", invalidTx.Field)
	})

	t.Run("should reject a category outside the vocabulary for its kind", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when: Car is a savings category, not an expense one
		_, err := service.AddTransaction(ctx, decimal.NewFromInt(5), KindExpense, "Car")

		// then
		var invalidTx *InvalidTransactionError
		require.ErrorAs(t, err, &invalidTx)
		assert.Equal(t, "category", invalidTx.Field)
		assert.Empty(t, service.Snapshot(ctx).Transactions)
	})

	t.Run("should reject an empty category", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.AddTransaction(ctx, decimal.NewFromInt(5), KindSavings, "")

		// then
		var invalidTx *InvalidTransactionError
		require.ErrorAs(t, err, &invalidTx)
		assert.Equal(t, "category", invalidTx.Field)
	})
}

func TestServiceImpl_SetBalance(t *testing.T) {
	t.Run("should replace the monthly balance", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		err := service.SetBalance(ctx, decimal.NewFromInt(1000))

		// then
		require.NoError(t, err)
		assert.True(t, service.Snapshot(ctx).MonthlyBalance.Equal(decimal.NewFromInt(1000)))
	})

	t.Run("should accept zero", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		require.NoError(t, service.SetBalance(ctx, decimal.NewFromInt(500)))

		// when
		err := service.SetBalance(ctx, decimal.Zero)

		// then
		require.NoError(t, err)
		assert.True(t, service.Snapshot(ctx).MonthlyBalance.IsZero())
	})

	t.Run("should reject a negative amount", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		err := service.SetBalance(ctx, decimal.NewFromInt(-1))

		// then
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}

func TestServiceImpl_DecreaseBalance(t *testing.T) {
	t.Run("should subtract exactly the given amount", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		require.NoError(t, service.SetBalance(ctx, decimal.NewFromInt(1000)))

		// when
		err := service.DecreaseBalance(ctx, decimal.NewFromInt(300))

		// then
		require.NoError(t, err)
		assert.True(t, service.Snapshot(ctx).MonthlyBalance.Equal(decimal.NewFromInt(700)))
	})

	t.Run("should fail when the amount exceeds the balance and leave it unchanged", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		require.NoError(t, service.SetBalance(ctx, decimal.NewFromInt(100)))

		// when
		err := service.DecreaseBalance(ctx, decimal.NewFromInt(150))

		// then
		assert.ErrorIs(t, err, ErrInsufficientBalance)
		assert.True(t, service.Snapshot(ctx).MonthlyBalance.Equal(decimal.NewFromInt(100)))
	})

	t.Run("should reject zero", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		require.NoError(t, service.SetBalance(ctx, decimal.NewFromInt(100)))

		// when
		err := service.DecreaseBalance(ctx, decimal.Zero)

		// then
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("should allow decreasing to exactly zero", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		require.NoError(t, service.SetBalance(ctx, decimal.NewFromInt(100)))

		// when
		err := service.DecreaseBalance(ctx, decimal.NewFromInt(100))

		// then
		require.NoError(t, err)
		assert.True(t, service.Snapshot(ctx).MonthlyBalance.IsZero())
	})
}

func TestServiceImpl_PersistenceFailure(t *testing.T) {
	t.Run("should not commit in memory when the snapshot write fails", func(t *testing.T) {
		repo := &failingRepository{}
		s, err := NewService(ctx, repo, category.Default(), clock, event_bus.NewEventBus())
		require.NoError(t, err)

		// when
		_, addErr := s.AddTransaction(ctx, decimal.NewFromInt(10), KindExpense, "Groceries")
		setErr := s.SetBalance(ctx, decimal.NewFromInt(10))

		// then
		assert.Error(t, addErr)
		assert.Error(t, setErr)
		assert.Empty(t, s.Snapshot(ctx).Transactions)
		assert.True(t, s.Snapshot(ctx).MonthlyBalance.IsZero())
	})
}

func TestServiceImpl_Reload(t *testing.T) {
	t.Run("should survive a restart with state intact", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		require.NoError(t, service.SetBalance(ctx, decimal.NewFromInt(1000)))
		_, err := service.AddTransaction(ctx, decimal.NewFromInt(200), KindExpense, "Groceries")
		require.NoError(t, err)

		// when: a second service loads from the same store
		repo := NewStoreRepository(store, clock)
		reloaded, err := NewService(ctx, repo, category.Default(), clock, event_bus.NewEventBus())

		// then
		require.NoError(t, err)
		l := reloaded.Snapshot(ctx)
		assert.True(t, l.MonthlyBalance.Equal(decimal.NewFromInt(1000)))
		require.Len(t, l.Transactions, 1)
		assert.Equal(t, "Groceries", l.Transactions[0].Category)
	})
}

type failingRepository struct{}

func (r *failingRepository) Load(ctx context.Context) (Ledger, error) {
	return NewLedger(time.Now()), nil
}

func (r *failingRepository) Save(ctx context.Context, l Ledger) error {
	return errors.New("disk full")
}
