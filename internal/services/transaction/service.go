// Package transaction orchestrates ingest: rule evaluation followed by a
// single atomic insert of the screened record.
package transaction

import (
	"context"
	"fmt"

	"fraudwatch/internal/models"

	"github.com/google/uuid"
)

type service struct {
	repo   Repository
	engine RuleEvaluator
}

// NewService creates the ingest service.
func NewService(repo Repository, engine RuleEvaluator) Service {
	if repo == nil {
		panic("repository is required")
	}
	if engine == nil {
		panic("rule evaluator is required")
	}
	return &service{repo: repo, engine: engine}
}

// Ingest evaluates the payload against the rule set, then persists the record
// with its computed verdict. If either step fails nothing is written, so a
// suspicious flag without a persisted record is never observable.
func (s *service) Ingest(ctx context.Context, payload *models.NewTransactionPayload) (*models.Transaction, error) {
	tx := &models.Transaction{
		Reference: uuid.NewString(),
		UserID:    payload.UserID,
		Amount:    payload.Amount,
		Currency:  payload.Currency,
		Timestamp: payload.Timestamp,
		Type:      payload.Type,
	}

	reasons, err := s.engine.Evaluate(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEvaluationFailed, err)
	}

	tx.IsSuspicious = len(reasons) > 0
	tx.SuspiciousReasons = reasons

	if err := s.repo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	return tx, nil
}

func (s *service) SuspiciousForUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	transactions, err := s.repo.SuspiciousForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list suspicious transactions: %w", err)
	}
	return transactions, nil
}
