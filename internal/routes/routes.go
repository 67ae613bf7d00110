// Package routes wires repositories, the rule engine and services into the
// HTTP surface.
package routes

import (
	"fraudwatch/internal/handlers"
	"fraudwatch/internal/repositories"
	"fraudwatch/internal/repositories/cache"
	"fraudwatch/internal/services/rules"
	"fraudwatch/internal/services/transaction"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes builds the dependency graph and registers all routes.
func SetupRoutes(app *fiber.App, db *gorm.DB, flags *cache.FlagService, collector rules.MetricsCollector) {
	txRepo := repositories.NewTransactionRepository(db)

	// The breaker wrapper makes the flag cache advisory: redis outages turn
	// into cache misses, never failed ingests.
	resilientFlags := cache.NewResilientFlags(flags)

	engine := rules.NewEngine(txRepo, resilientFlags, collector)
	txService := transaction.NewService(txRepo, engine)

	txHandler := handlers.NewTransactionHandler(txService)
	healthHandler := handlers.NewHealthHandler(db, flags)

	app.Post("/transactions", txHandler.CreateTransaction)
	app.Get("/transactions/suspicious/:user_id", txHandler.GetSuspiciousTransactions)
	app.Get("/health", healthHandler.Check)
}
