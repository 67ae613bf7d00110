package repositories

import (
	"context"
	"time"

	"fraudwatch/internal/models"

	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a GORM-backed TransactionRepository.
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *transactionRepository) GetByID(ctx context.Context, id uint) (*models.Transaction, error) {
	var tx models.Transaction
	if err := r.db.WithContext(ctx).First(&tx, id).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *transactionRepository) RecentForUser(ctx context.Context, userID string, lookback time.Duration, types []models.TransactionType, maxAmount *float64) ([]models.Transaction, error) {
	// Windows anchor to evaluation wall-clock time, not the payload timestamp.
	since := time.Now().UTC().Add(-lookback)

	query := r.db.WithContext(ctx).
		Where("user_id = ? AND timestamp >= ?", userID, since)
	if len(types) > 0 {
		query = query.Where("type IN ?", types)
	}
	if maxAmount != nil {
		query = query.Where("amount <= ?", *maxAmount)
	}

	var transactions []models.Transaction
	if err := query.Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

func (r *transactionRepository) SuspiciousForUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_suspicious = ?", userID, true).
		Order("timestamp ASC").
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}
	return transactions, nil
}
