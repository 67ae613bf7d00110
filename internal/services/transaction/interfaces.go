package transaction

import (
	"context"

	"fraudwatch/internal/models"
)

// RuleEvaluator screens a not-yet-persisted transaction and returns the fired
// rule reasons.
type RuleEvaluator interface {
	Evaluate(ctx context.Context, tx *models.Transaction) (models.ReasonList, error)
}

// Repository is the slice of the transaction store the service needs.
type Repository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	SuspiciousForUser(ctx context.Context, userID string) ([]models.Transaction, error)
}

// Service ingests transactions and serves the suspicious listing.
type Service interface {
	Ingest(ctx context.Context, payload *models.NewTransactionPayload) (*models.Transaction, error)
	SuspiciousForUser(ctx context.Context, userID string) ([]models.Transaction, error)
}
