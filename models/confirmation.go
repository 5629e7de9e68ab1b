package models

import (
	"time"

	"github.com/google/uuid"
)

// Отложенная транзакция, ожидающая подтверждения пользователем.
// Payload — сериализованный TransactionExecuteRequest.
type PendingConfirmation struct {
	ConfirmationID     uuid.UUID `json:"confirmation_id" db:"confirmation_id"`
	AccountID          string    `json:"account_id" db:"account_id"`
	Payload            []byte    `json:"payload" db:"payload"`
	RequestedAt        time.Time `json:"requested_at" db:"requested_at"`
	ExpiresAt          time.Time `json:"expires_at" db:"expires_at"`
	Status             string    `json:"status" db:"status"`
	ConfirmationMethod string    `json:"confirmation_method" db:"confirmation_method"`
}
