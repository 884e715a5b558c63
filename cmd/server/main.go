package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"splitledger/internal/config"
	httpapi "splitledger/internal/http"
	"splitledger/internal/http/expense"
	"splitledger/internal/http/group"
	"splitledger/internal/http/settlement"
	"splitledger/internal/metrics"
	"splitledger/internal/service"
	"splitledger/internal/storage/sqlite"
	"splitledger/pkg/logging"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DB.Path)

	metrics.RegisterDBGauges(store.DB())

	groupsV1 := group.NewHandler(service.NewGroupService(store))
	expensesV1 := expense.NewHandler(service.NewExpenseService(store))
	settlementsV1 := settlement.NewHandler(service.NewLedgerService(store))

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      httpapi.New(groupsV1, expensesV1, settlementsV1),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	slog.Info("Server starting", "app", cfg.App.Name, "address", cfg.Addr())
	if err := server.ListenAndServe(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
