package models

import (
	"time"
)

// TransactionType is the kind of transaction being ingested.
type TransactionType string

// Transaction types
const (
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
	TransactionTypeTransfer   TransactionType = "TRANSFER"
	TransactionTypeOther      TransactionType = "OTHER"
)

// ValidTransactionType reports whether t is one of the known types.
func ValidTransactionType(t TransactionType) bool {
	switch t {
	case TransactionTypeDeposit, TransactionTypeWithdrawal, TransactionTypeTransfer, TransactionTypeOther:
		return true
	}
	return false
}

// Transaction is the persisted record. The suspicious flag and reason list are
// computed once at ingest time and never recomputed.
type Transaction struct {
	ID        uint    `gorm:"primarykey" json:"id"`
	Reference string  `gorm:"uniqueIndex;not null" json:"-"` // external correlation ID
	UserID    string  `gorm:"index:idx_transactions_user_time,priority:1;not null" json:"user_id"`
	Amount    float64 `gorm:"not null;index" json:"amount"`
	Currency  string  `gorm:"not null;default:'USD'" json:"currency"`
	// Timestamp is caller-supplied and may differ from ingest time.
	Timestamp         time.Time       `gorm:"index:idx_transactions_user_time,priority:2,sort:desc;not null" json:"timestamp"`
	Type              TransactionType `gorm:"not null;index" json:"type"`
	IsSuspicious      bool            `gorm:"index;not null" json:"is_suspicious"`
	SuspiciousReasons ReasonList      `gorm:"type:jsonb" json:"suspicious_reasons"`
	CreatedAt         time.Time       `json:"-"`
}
