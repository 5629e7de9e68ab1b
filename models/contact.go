package models

type Contact struct {
	Label      string `json:"label"`
	AccountNum string `json:"account_num"`
	RoutingNum string `json:"routing_num"`
	IsExternal bool   `json:"is_external"`
}

type ContactResolveRequest struct {
	Recipient string `json:"recipient" binding:"required"`
	AccountID string `json:"account_id"`
}

type ContactResolveResponse struct {
	Status      string    `json:"status"`
	AccountID   string    `json:"account_id,omitempty"`
	ContactName string    `json:"contact_name,omitempty"`
	Confidence  float64   `json:"confidence,omitempty"`
	Matches     []Contact `json:"matches,omitempty"`
}

type ContactSuggestion struct {
	AccountNum       string `json:"account_num"`
	TransactionCount int    `json:"transaction_count"`
}
