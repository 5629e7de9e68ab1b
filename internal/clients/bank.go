package clients

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/models"
)

// Клиенты базовых сервисов Bank-of-Anthos (ledger-writer, balance-reader,
// transaction-history, contacts). Агентский слой только вызывает их.

type HistoryTransaction struct {
	Timestamp   string `json:"timestamp"`
	FromAcct    string `json:"from_acct"`
	ToAcct      string `json:"to_acct"`
	AmountCents int64  `json:"amount_cents"`
	Description string `json:"description"`
}

// ParsedTimestamp разбирает метку времени транзакции; вторая компонента —
// признак успешного разбора.
func (t HistoryTransaction) ParsedTimestamp() (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if ts, err := time.Parse(layout, t.Timestamp); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

type HistoryResponse struct {
	Transactions []HistoryTransaction `json:"transactions"`
}

type TransactionHistoryClient struct {
	base   string
	client *Client
}

func NewTransactionHistoryClient(baseURL string) *TransactionHistoryClient {
	return &TransactionHistoryClient{base: baseURL, client: New()}
}

func (c *TransactionHistoryClient) GetTransactions(accountID string, headers Headers) ([]HistoryTransaction, error) {
	var resp HistoryResponse
	url := fmt.Sprintf("%s/transactions/%s", c.base, accountID)
	if err := c.client.DoJSON(http.MethodGet, url, headers, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Transactions, nil
}

type BalanceReaderClient struct {
	base   string
	client *Client
}

func NewBalanceReaderClient(baseURL string) *BalanceReaderClient {
	return &BalanceReaderClient{base: baseURL, client: New()}
}

type BalanceResponse struct {
	AccountID string `json:"account_id"`
	Balance   int64  `json:"balance"`
}

func (c *BalanceReaderClient) GetBalance(accountID string, headers Headers) (*BalanceResponse, error) {
	var resp BalanceResponse
	url := fmt.Sprintf("%s/balances/%s", c.base, accountID)
	if err := c.client.DoJSON(http.MethodGet, url, headers, nil, &resp); err != nil {
		return nil, err
	}
	resp.AccountID = accountID
	return &resp, nil
}

type LedgerWriterClient struct {
	base   string
	client *Client
}

func NewLedgerWriterClient(baseURL string) *LedgerWriterClient {
	return &LedgerWriterClient{base: baseURL, client: New()}
}

type LedgerTransaction struct {
	FromAccountID string `json:"fromAccountId"`
	ToAccountID   string `json:"toAccountId"`
	Amount        int64  `json:"amount"`
	Description   string `json:"description"`
}

type LedgerResponse struct {
	TransactionID int64 `json:"transaction_id"`
	NewBalance    int64 `json:"new_balance"`
}

func (c *LedgerWriterClient) PostTransaction(txn *LedgerTransaction, headers Headers) (*LedgerResponse, error) {
	var resp LedgerResponse
	url := fmt.Sprintf("%s/transactions", c.base)
	if err := c.client.DoJSON(http.MethodPost, url, headers, txn, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type ContactsClient struct {
	base   string
	client *Client
}

func NewContactsClient(baseURL string) *ContactsClient {
	return &ContactsClient{base: baseURL, client: New()}
}

func (c *ContactsClient) GetContacts(username string, headers Headers) ([]models.Contact, error) {
	var contacts []models.Contact
	url := fmt.Sprintf("%s/contacts/%s", c.base, username)
	if err := c.client.DoJSON(http.MethodGet, url, headers, nil, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

func (c *ContactsClient) AddContact(username string, contact *models.Contact, headers Headers) error {
	url := fmt.Sprintf("%s/contacts/%s", c.base, username)
	return c.client.DoJSON(http.MethodPost, url, headers, contact, nil)
}

func (c *ContactsClient) UpdateContact(username, label string, contact *models.Contact, headers Headers) error {
	url := fmt.Sprintf("%s/contacts/%s/%s", c.base, username, label)
	return c.client.DoJSON(http.MethodPut, url, headers, contact, nil)
}

func (c *ContactsClient) DeleteContact(username, label string, headers Headers) error {
	url := fmt.Sprintf("%s/contacts/%s/%s", c.base, username, label)
	return c.client.DoJSON(http.MethodDelete, url, headers, nil, nil)
}
