package models

import "time"

// NewTransactionPayload is the POST /transactions request body.
type NewTransactionPayload struct {
	UserID    string          `json:"user_id" validate:"required"`
	Amount    float64         `json:"amount" validate:"gte=0"`
	Currency  string          `json:"currency" validate:"required"`
	Timestamp time.Time       `json:"timestamp" validate:"required"`
	Type      TransactionType `json:"type" validate:"required"`
}
