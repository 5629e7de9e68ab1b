package models

type QueryRequest struct {
	Query     string `json:"query" binding:"required"`
	SessionID string `json:"session_id"`
}

type QueryResponse struct {
	Status          string      `json:"status"`
	Message         string      `json:"message,omitempty"`
	TransactionID   string      `json:"transaction_id,omitempty"`
	ConfirmationID  string      `json:"confirmation_id,omitempty"`
	ConfirmationTTL int         `json:"confirmation_ttl,omitempty"`
	Data            interface{} `json:"data,omitempty"`
}

type ClarifyResponse struct {
	Status            string    `json:"status"`
	Message           string    `json:"message"`
	MissingFields     []string  `json:"missing_fields,omitempty"`
	ContactCandidates []Contact `json:"contact_candidates,omitempty"`
}

func NewClarify(message string) *ClarifyResponse {
	return &ClarifyResponse{Status: "clarify", Message: message}
}
