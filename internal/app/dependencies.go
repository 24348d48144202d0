package app

import (
	"context"

	"github.com/fintrack/fintrack/internal/config"
	"github.com/fintrack/fintrack/internal/event_bus"
	"github.com/fintrack/fintrack/internal/storage"
	"github.com/fintrack/fintrack/internal/utils"
	"github.com/fintrack/fintrack/pkg/category"
	"github.com/fintrack/fintrack/pkg/ledger"
	"github.com/fintrack/fintrack/pkg/report"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Store      storage.Store
	StoreClose func() error

	Bus   *event_bus.EventBus
	Clock utils.Clock

	Vocabulary      category.Vocabulary
	CategoryHandler *category.Handler

	LedgerRepo    ledger.Repository
	LedgerService *ledger.ServiceImpl
	LedgerHandler *ledger.Handler

	ReportHandler *report.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(ctx context.Context, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	store, closeStore, err := storage.Open(cfg.Storage)
	if err != nil {
		return nil, err
	}
	deps.Store = store
	deps.StoreClose = closeStore

	deps.Bus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.Vocabulary = category.NewVocabulary(cfg.Categories.Expense, cfg.Categories.Savings)
	deps.CategoryHandler = category.NewHandler(deps.Vocabulary)

	deps.LedgerRepo = ledger.NewStoreRepository(deps.Store, deps.Clock)
	deps.LedgerService, err = ledger.NewService(ctx, deps.LedgerRepo, deps.Vocabulary, deps.Clock, deps.Bus)
	if err != nil {
		closeStore()
		return nil, err
	}
	deps.LedgerHandler = ledger.NewHandler(deps.LedgerService)

	deps.ReportHandler = report.NewHandler(deps.LedgerService)

	subscribeNotifications(deps.Bus)

	return deps, nil
}

// subscribeNotifications logs user-facing confirmations for each successful
// mutation, the server-side counterpart of the original pop-up notices.
func subscribeNotifications(bus *event_bus.EventBus) {
	bus.Subscribe(event_bus.TransactionAdded, func(e event_bus.Event) error {
		if p, ok := e.Data.(event_bus.TransactionAddedPayload); ok {
			log.Infof("Transaction added: %s %s %s", p.Kind, p.Category, p.Amount)
		}
		return nil
	})
	bus.Subscribe(event_bus.BalanceSet, func(e event_bus.Event) error {
		if p, ok := e.Data.(event_bus.BalanceChangedPayload); ok {
			log.Infof("Monthly balance set to %s", p.NewBalance)
		}
		return nil
	})
	bus.Subscribe(event_bus.BalanceDecreased, func(e event_bus.Event) error {
		if p, ok := e.Data.(event_bus.BalanceChangedPayload); ok {
			log.Infof("Monthly balance decreased by %s to %s", p.Amount, p.NewBalance)
		}
		return nil
	})
}
