package ledger

import (
	"context"
	"fmt"

	"github.com/fintrack/fintrack/internal/storage"
	"github.com/fintrack/fintrack/internal/utils"
	log "github.com/sirupsen/logrus"
)

// storageKey is the fixed identifier the snapshot lives under, unchanged from
// the original tracker so existing data keeps loading.
const storageKey = "financialTracker"

type Repository interface {
	// Load reads the persisted ledger. A missing snapshot yields a fresh
	// empty ledger; an unparseable one yields a CorruptStateError. The
	// period marker is always overwritten with the current month and year.
	Load(ctx context.Context) (Ledger, error)
	// Save writes the full serialized ledger to the storage boundary.
	Save(ctx context.Context, l Ledger) error
}

type StoreRepository struct {
	store storage.Store
	clock utils.Clock
}

func NewStoreRepository(store storage.Store, clock utils.Clock) *StoreRepository {
	return &StoreRepository{store: store, clock: clock}
}

func (r *StoreRepository) Load(ctx context.Context) (Ledger, error) {
	value, found, err := r.store.Get(ctx, storageKey)
	if err != nil {
		return Ledger{}, fmt.Errorf("could not read ledger snapshot: %w", err)
	}
	now := r.clock.Now()
	if !found {
		log.Info("No persisted ledger found, starting fresh")
		return NewLedger(now), nil
	}
	l, err := Decode(value)
	if err != nil {
		log.Error(err)
		return Ledger{}, err
	}
	// The period marker is a display label only; stored transactions are
	// never cleared on a month change.
	l.Month = now.Month()
	l.Year = now.Year()
	return l, nil
}

func (r *StoreRepository) Save(ctx context.Context, l Ledger) error {
	data, err := Encode(l)
	if err != nil {
		return err
	}
	if err := r.store.Put(ctx, storageKey, data); err != nil {
		return fmt.Errorf("could not write ledger snapshot: %w", err)
	}
	return nil
}
