package models

import "fmt"

// Интенты, которые распознаёт LLM-парсер оркестратора.
const (
	IntentTransfer           = "transfer"
	IntentDeposit            = "deposit"
	IntentBalance            = "balance"
	IntentTransactionHistory = "transaction_history"
	IntentSpendingSummary    = "spending_summary"
	IntentViewContacts       = "view_contacts"
	IntentAddContact         = "add_contact"
	IntentUpdateContact      = "update_contact"
	IntentDeleteContact      = "delete_contact"
	IntentViewBudgets        = "view_budgets"
	IntentCreateBudget       = "create_budget"
	IntentUpdateBudget       = "update_budget"
	IntentDeleteBudget       = "delete_budget"
	IntentConfirm            = "confirm_transaction"
	IntentCancel             = "cancel_transaction"
	IntentOther              = "other"
)

var KnownIntents = []string{
	IntentTransfer, IntentDeposit, IntentBalance, IntentTransactionHistory,
	IntentSpendingSummary, IntentViewContacts, IntentAddContact,
	IntentUpdateContact, IntentDeleteContact, IntentViewBudgets,
	IntentCreateBudget, IntentUpdateBudget, IntentDeleteBudget,
	IntentConfirm, IntentCancel, IntentOther,
}

type Amount struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency,omitempty"`
}

type Entities struct {
	Amount             *Amount `json:"amount,omitempty"`
	RecipientName      string  `json:"recipient_name,omitempty"`
	RecipientAccountID string  `json:"recipient_account_id,omitempty"`
	RecipientRoutingID string  `json:"recipient_routing_id,omitempty"`
	ContactLabel       string  `json:"contact_label,omitempty"`
	BudgetCategory     string  `json:"budget_category,omitempty"`
	TimePeriod         string  `json:"time_period,omitempty"`
	Description        string  `json:"description,omitempty"`
}

type IntentEnvelope struct {
	Intent     string   `json:"intent"`
	Entities   Entities `json:"entities"`
	Confidence float64  `json:"confidence"`
	RawLlm     []byte   `json:"-"`
}

// Validate проверяет конверт после разбора ответа LLM.
func (e *IntentEnvelope) Validate() error {
	known := false
	for _, it := range KnownIntents {
		if e.Intent == it {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("неизвестный интент: %q", e.Intent)
	}
	if e.Confidence < 0 || e.Confidence > 1 {
		return fmt.Errorf("confidence вне диапазона [0,1]: %f", e.Confidence)
	}
	switch e.Entities.TimePeriod {
	case "", "daily", "weekly", "monthly":
	default:
		return fmt.Errorf("недопустимый период: %q", e.Entities.TimePeriod)
	}
	return nil
}
