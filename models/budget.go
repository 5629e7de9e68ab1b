package models

import (
	"time"

	"github.com/google/uuid"
)

type Budget struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	AccountID   string     `json:"account_id" db:"account_id"`
	Category    string     `json:"category" db:"category"`
	LimitCents  int64      `json:"budget_limit" db:"budget_limit"`
	PeriodStart time.Time  `json:"period_start" db:"period_start"`
	PeriodEnd   *time.Time `json:"period_end,omitempty" db:"period_end"`
}

type BudgetUsage struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	AccountID   string     `json:"account_id" db:"account_id"`
	Category    string     `json:"category" db:"category"`
	UsedCents   int64      `json:"used_amount" db:"used_amount"`
	PeriodStart time.Time  `json:"period_start" db:"period_start"`
	PeriodEnd   *time.Time `json:"period_end,omitempty" db:"period_end"`
	LastUpdated time.Time  `json:"last_updated" db:"last_updated"`
}

// Строка отчёта "бюджет против фактических трат" за текущий период.
type BudgetOverview struct {
	Category       string `json:"category"`
	LimitCents     int64  `json:"budget_limit"`
	UsedCents      int64  `json:"used_amount"`
	RemainingCents int64  `json:"remaining"`
}
