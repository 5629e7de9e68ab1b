package models

import (
	"time"

	"github.com/google/uuid"
)

// Запись памяти агента: контекст разговора с TTL (ожидающие подтверждения,
// закэшированные резолюции контактов и т.п.).
type AgentMemory struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	SessionID string     `json:"session_id" db:"session_id"`
	Key       string     `json:"key" db:"key"`
	Value     []byte     `json:"value" db:"value"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty" db:"expires_at"`
}

const (
	MemoryKeyPendingConfirmation = "pending_confirmation"
	MemoryKeyContactResolution   = "contact_resolution"
)
