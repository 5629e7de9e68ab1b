package models

import (
	"time"

	"github.com/google/uuid"
)

type LlmEnvelope struct {
	EnvelopeID        uuid.UUID `json:"envelope_id" db:"envelope_id"`
	SessionID         string    `json:"session_id" db:"session_id"`
	RawLlm            []byte    `json:"raw_llm" db:"raw_llm"`
	ValidatedEnvelope []byte    `json:"validated_envelope" db:"validated_envelope"`
	CorrelationID     string    `json:"correlation_id" db:"correlation_id"`
	IdempotencyKey    string    `json:"idempotency_key" db:"idempotency_key"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

type EnvelopeCorrelation struct {
	ID             uuid.UUID `json:"id" db:"id"`
	EnvelopeID     uuid.UUID `json:"envelope_id" db:"envelope_id"`
	AnomalyLogID   string    `json:"anomaly_log_id" db:"anomaly_log_id"`
	ConfirmationID string    `json:"confirmation_id" db:"confirmation_id"`
	TransactionID  string    `json:"transaction_id" db:"transaction_id"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
