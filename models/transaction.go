package models

import (
	"time"

	"github.com/google/uuid"
)

type TransactionLog struct {
	ID            uuid.UUID `json:"id" db:"id"`
	TransactionID int64     `json:"transaction_id" db:"transaction_id"`
	AccountID     string    `json:"account_id" db:"account_id"`
	AmountCents   int64     `json:"amount_cents" db:"amount"`
	Category      string    `json:"category" db:"category"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

type TransactionExecuteRequest struct {
	AccountID          string            `json:"account_id" binding:"required"`
	AmountCents        int64             `json:"amount_cents" binding:"required"`
	TransactionType    string            `json:"transaction_type"`
	RecipientAccountID string            `json:"recipient_account_id"`
	Description        string            `json:"description,omitempty"`
	Metadata           map[string]string `json:"metadata"`
}

type TransactionExecuteResponse struct {
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id,omitempty"`
	NewBalance    int64  `json:"new_balance_cents,omitempty"`
	Category      string `json:"category,omitempty"`
	Message       string `json:"message,omitempty"`
}

type CategorySummary struct {
	Category   string `json:"category"`
	TotalSpent int64  `json:"total_spent"`
}
