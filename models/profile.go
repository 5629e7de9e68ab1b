package models

import (
	"time"

	"github.com/google/uuid"
)

// Поведенческий профиль счёта для оценки риска транзакций.
type UserProfile struct {
	ProfileID            uuid.UUID `json:"profile_id" db:"profile_id"`
	AccountID            string    `json:"account_id" db:"account_id"`
	MeanTxnAmountCents   int64     `json:"mean_txn_amount_cents" db:"mean_txn_amount_cents"`
	StddevTxnAmountCents int64     `json:"stddev_txn_amount_cents" db:"stddev_txn_amount_cents"`
	ActiveHours          []int     `json:"active_hours" db:"active_hours"`
	EmailForAlerts       string    `json:"email_for_alerts,omitempty" db:"email_for_alerts"`
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
}
