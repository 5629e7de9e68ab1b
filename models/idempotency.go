package models

import "time"

type IdempotencyKey struct {
	ID              string    `json:"id" db:"id"`
	Key             string    `json:"key" db:"key"`
	AccountID       string    `json:"account_id" db:"account_id"`
	Status          string    `json:"status" db:"status"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	ResponsePayload []byte    `json:"response_payload,omitempty" db:"response_payload"`
}

const (
	IdempotencyInProgress = "in_progress"
	IdempotencyCompleted  = "completed"
	IdempotencyFailed     = "failed"
)
