package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Ledger
	r.HandleFunc("/api/ledger", deps.LedgerHandler.GetLedger).Methods("GET")
	r.HandleFunc("/api/transaction", deps.LedgerHandler.AddTransaction).Methods("POST")
	r.HandleFunc("/api/balance", deps.LedgerHandler.SetBalance).Methods("PUT")
	r.HandleFunc("/api/balance/decrease", deps.LedgerHandler.DecreaseBalance).Methods("POST")

	// Categories
	r.HandleFunc("/api/categories", deps.CategoryHandler.GetCategories).Queries("type", "{type}").Methods("GET")

	// Reports
	r.HandleFunc("/api/summary", deps.ReportHandler.GetSummary).Methods("GET")
	r.HandleFunc("/api/history", deps.ReportHandler.GetHistory).Methods("GET")
	r.HandleFunc("/api/report/categories", deps.ReportHandler.GetCategoryTotals).Queries("type", "{type}").Methods("GET")
	r.HandleFunc("/api/report/balance", deps.ReportHandler.GetBalanceOverview).Methods("GET")
}
