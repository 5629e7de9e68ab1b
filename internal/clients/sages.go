package clients

import (
	"fmt"
	"net/http"

	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/models"
)

// Типизированные клиенты Sage-сервисов для оркестратора.

type AnomalySageClient struct {
	base   string
	client *Client
}

func NewAnomalySageClient(baseURL string) *AnomalySageClient {
	return &AnomalySageClient{base: baseURL, client: New()}
}

func (c *AnomalySageClient) CheckRisk(req *models.AnomalyCheckRequest, headers Headers) (*models.AnomalyCheckResponse, error) {
	var resp models.AnomalyCheckResponse
	url := fmt.Sprintf("%s/v1/anomaly/check", c.base)
	if err := c.client.DoJSON(http.MethodPost, url, headers, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *AnomalySageClient) ConfirmTransaction(confirmationID string, headers Headers) (*models.ConfirmationResponse, error) {
	var resp models.ConfirmationResponse
	url := fmt.Sprintf("%s/v1/anomaly/confirm/%s", c.base, confirmationID)
	if err := c.client.DoJSON(http.MethodPost, url, headers, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type TransactionSageClient struct {
	base   string
	client *Client
}

func NewTransactionSageClient(baseURL string) *TransactionSageClient {
	return &TransactionSageClient{base: baseURL, client: New()}
}

func (c *TransactionSageClient) ExecuteTransaction(req *models.TransactionExecuteRequest, headers Headers) (*models.TransactionExecuteResponse, error) {
	var resp models.TransactionExecuteResponse
	url := fmt.Sprintf("%s/v1/transactions/execute", c.base)
	if err := c.client.DoJSON(http.MethodPost, url, headers, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type ContactSageClient struct {
	base   string
	client *Client
}

func NewContactSageClient(baseURL string) *ContactSageClient {
	return &ContactSageClient{base: baseURL, client: New()}
}

func (c *ContactSageClient) ResolveContact(req *models.ContactResolveRequest, headers Headers) (*models.ContactResolveResponse, error) {
	var resp models.ContactResolveResponse
	url := fmt.Sprintf("%s/v1/resolve", c.base)
	if err := c.client.DoJSON(http.MethodPost, url, headers, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *ContactSageClient) GetContacts(accountID string, headers Headers) ([]models.Contact, error) {
	var contacts []models.Contact
	url := fmt.Sprintf("%s/v1/contacts/%s", c.base, accountID)
	if err := c.client.DoJSON(http.MethodGet, url, headers, nil, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

func (c *ContactSageClient) AddContact(accountID string, contact *models.Contact, headers Headers) (*models.Contact, error) {
	var added models.Contact
	url := fmt.Sprintf("%s/v1/contacts/%s", c.base, accountID)
	if err := c.client.DoJSON(http.MethodPost, url, headers, contact, &added); err != nil {
		return nil, err
	}
	return &added, nil
}

func (c *ContactSageClient) UpdateContact(accountID, label string, contact *models.Contact, headers Headers) error {
	url := fmt.Sprintf("%s/v1/contacts/%s/%s", c.base, accountID, label)
	return c.client.DoJSON(http.MethodPut, url, headers, contact, nil)
}

func (c *ContactSageClient) DeleteContact(accountID, label string, headers Headers) error {
	url := fmt.Sprintf("%s/v1/contacts/%s/%s", c.base, accountID, label)
	return c.client.DoJSON(http.MethodDelete, url, headers, nil, nil)
}

type MoneySageClient struct {
	base   string
	client *Client
}

func NewMoneySageClient(baseURL string) *MoneySageClient {
	return &MoneySageClient{base: baseURL, client: New()}
}

func (c *MoneySageClient) GetBalance(accountID string, headers Headers) (*BalanceResponse, error) {
	var resp BalanceResponse
	url := fmt.Sprintf("%s/v1/balance/%s", c.base, accountID)
	if err := c.client.DoJSON(http.MethodGet, url, headers, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *MoneySageClient) GetHistory(accountID string, headers Headers) (*HistoryResponse, error) {
	var resp HistoryResponse
	url := fmt.Sprintf("%s/v1/history/%s", c.base, accountID)
	if err := c.client.DoJSON(http.MethodGet, url, headers, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *MoneySageClient) GetSummary(accountID, period string, headers Headers) ([]models.CategorySummary, error) {
	var summary []models.CategorySummary
	url := fmt.Sprintf("%s/v1/summary/%s?period=%s", c.base, accountID, period)
	if err := c.client.DoJSON(http.MethodGet, url, headers, nil, &summary); err != nil {
		return nil, err
	}
	return summary, nil
}

func (c *MoneySageClient) GetBudgets(accountID string, headers Headers) ([]models.Budget, error) {
	var budgets []models.Budget
	url := fmt.Sprintf("%s/v1/budgets/%s", c.base, accountID)
	if err := c.client.DoJSON(http.MethodGet, url, headers, nil, &budgets); err != nil {
		return nil, err
	}
	return budgets, nil
}

func (c *MoneySageClient) CreateBudget(accountID string, budget *models.Budget, headers Headers) (*models.Budget, error) {
	var created models.Budget
	url := fmt.Sprintf("%s/v1/budgets/%s", c.base, accountID)
	if err := c.client.DoJSON(http.MethodPost, url, headers, budget, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *MoneySageClient) UpdateBudget(accountID, budgetID string, budget *models.Budget, headers Headers) (*models.Budget, error) {
	var updated models.Budget
	url := fmt.Sprintf("%s/v1/budgets/%s/%s", c.base, accountID, budgetID)
	if err := c.client.DoJSON(http.MethodPut, url, headers, budget, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *MoneySageClient) DeleteBudget(accountID, budgetID string, headers Headers) error {
	url := fmt.Sprintf("%s/v1/budgets/%s/%s", c.base, accountID, budgetID)
	return c.client.DoJSON(http.MethodDelete, url, headers, nil, nil)
}

func (c *MoneySageClient) GetOverview(accountID string, headers Headers) ([]models.BudgetOverview, error) {
	var overview []models.BudgetOverview
	url := fmt.Sprintf("%s/v1/overview/%s", c.base, accountID)
	if err := c.client.DoJSON(http.MethodGet, url, headers, nil, &overview); err != nil {
		return nil, err
	}
	return overview, nil
}
