package repositories

import (
	"context"
	"time"

	"fraudwatch/internal/models"
)

// TransactionRepository is the contract for the transaction store.
type TransactionRepository interface {
	// Create persists a transaction as a single atomic insert and fills in
	// the store-assigned ID.
	Create(ctx context.Context, tx *models.Transaction) error

	// GetByID returns a single transaction or ErrRecordNotFound.
	GetByID(ctx context.Context, id uint) (*models.Transaction, error)

	// RecentForUser returns every transaction for the user with a timestamp
	// inside the lookback window ending now, optionally restricted to a set
	// of types and/or an inclusive maximum amount. No ordering guarantee;
	// callers that only count must not rely on order.
	RecentForUser(ctx context.Context, userID string, lookback time.Duration, types []models.TransactionType, maxAmount *float64) ([]models.Transaction, error)

	// SuspiciousForUser returns the user's suspicious transactions ordered
	// by timestamp ascending.
	SuspiciousForUser(ctx context.Context, userID string) ([]models.Transaction, error)
}
