package models

import (
	"time"

	"github.com/google/uuid"
)

type AnomalyLog struct {
	LogID         uuid.UUID `json:"log_id" db:"log_id"`
	TransactionID int64     `json:"transaction_id" db:"transaction_id"`
	AccountID     string    `json:"account_id" db:"account_id"`
	RiskScore     float64   `json:"risk_score" db:"risk_score"`
	Status        string    `json:"status" db:"status"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

type AnomalyCheckRequest struct {
	AccountID          string            `json:"account_id" binding:"required"`
	AmountCents        int64             `json:"amount_cents" binding:"required"`
	TransactionType    string            `json:"transaction_type"`
	RecipientAccountID string            `json:"recipient_account_id"`
	Description        string            `json:"description,omitempty"`
	Timestamp          *time.Time        `json:"timestamp,omitempty"`
	Metadata           map[string]string `json:"metadata,omitempty"`
}

type AnomalyCheckResponse struct {
	Status                 string   `json:"status"`
	RiskScore              float64  `json:"risk_score"`
	Reasons                []string `json:"reasons"`
	Action                 string   `json:"action"`
	LogID                  string   `json:"log_id"`
	ConfirmationID         string   `json:"confirmation_id,omitempty"`
	ConfirmationTTLSeconds int      `json:"confirmation_ttl_seconds,omitempty"`
}

type ConfirmationResponse struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	TransactionID string `json:"transaction_id,omitempty"`
}
