package flow

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/auth"
	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/clients"
	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/database"
	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/intent"
	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/middleware"
	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/models"
	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/utils"
)

// TTL кэша резолюции контакта в памяти агента.
const contactMemoryTTL = 10 * time.Minute

// Orchestrator связывает парсер интентов и Sage-сервисы в единый
// диалоговый сценарий.
type Orchestrator struct {
	pool     *pgxpool.Pool
	parser   intent.Parser
	anomaly  *clients.AnomalySageClient
	txn      *clients.TransactionSageClient
	contacts *clients.ContactSageClient
	money    *clients.MoneySageClient
}

func New(pool *pgxpool.Pool, parser intent.Parser, anomaly *clients.AnomalySageClient, txn *clients.TransactionSageClient, contacts *clients.ContactSageClient, money *clients.MoneySageClient) *Orchestrator {
	return &Orchestrator{
		pool:     pool,
		parser:   parser,
		anomaly:  anomaly,
		txn:      txn,
		contacts: contacts,
		money:    money,
	}
}

type pendingMemory struct {
	ConfirmationID string `json:"confirmation_id"`
}

type contactMemory struct {
	Name        string `json:"name"`
	AccountID   string `json:"account_id"`
	ContactName string `json:"contact_name"`
}

func requestHeaders(c *gin.Context) clients.Headers {
	return clients.Headers{
		CorrelationID:  middleware.CorrelationIDFrom(c),
		Token:          auth.TokenFrom(c),
		IdempotencyKey: middleware.IdempotencyKeyFrom(c),
	}
}

// HandleQuery — точка входа POST /v1/query: запрос на естественном языке
// превращается в действие над банковскими сервисами.
func (o *Orchestrator) HandleQuery(c *gin.Context) {
	var req models.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат запроса", "details": err.Error()})
		return
	}

	claims := auth.ClaimsFrom(c)
	if claims.AccountID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "В токене отсутствует идентификатор счёта"})
		return
	}
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = claims.AccountID
	}

	// Если разговор ждёт подтверждения, ответ пользователя трактуем
	// как да/нет, а не как новый интент.
	if handled := o.resumePendingConfirmation(c, sessionID, req.Query); handled {
		return
	}

	envelope, err := o.parser.Parse(c.Request.Context(), req.Query)
	if err != nil {
		log.Printf("Ошибка разбора интента: %v", err)
		c.JSON(http.StatusOK, models.NewClarify("Не удалось понять запрос, переформулируйте его"))
		return
	}

	envelopeRow := o.persistEnvelope(c, sessionID, envelope)

	switch envelope.Intent {
	case models.IntentBalance:
		o.handleBalance(c, claims.AccountID)
	case models.IntentTransactionHistory:
		o.handleHistory(c, claims.AccountID)
	case models.IntentSpendingSummary:
		o.handleSummary(c, claims.AccountID, envelope.Entities.TimePeriod)
	case models.IntentViewContacts:
		o.handleViewContacts(c, claims.AccountID)
	case models.IntentAddContact:
		o.handleAddContact(c, claims.AccountID, envelope)
	case models.IntentUpdateContact:
		o.handleUpdateContact(c, claims.AccountID, envelope)
	case models.IntentDeleteContact:
		o.handleDeleteContact(c, claims.AccountID, envelope)
	case models.IntentViewBudgets:
		o.handleViewBudgets(c, claims.AccountID)
	case models.IntentCreateBudget:
		o.handleCreateBudget(c, claims.AccountID, envelope)
	case models.IntentUpdateBudget:
		o.handleUpdateBudget(c, claims.AccountID, envelope)
	case models.IntentDeleteBudget:
		o.handleDeleteBudget(c, claims.AccountID, envelope)
	case models.IntentTransfer:
		o.handleTransfer(c, sessionID, claims.AccountID, envelope, envelopeRow)
	case models.IntentDeposit:
		o.handleDeposit(c, claims.AccountID, envelope, envelopeRow)
	case models.IntentConfirm, models.IntentCancel:
		c.JSON(http.StatusOK, models.QueryResponse{
			Status:  "no_pending",
			Message: "Сейчас нет транзакций, ожидающих подтверждения",
		})
	default:
		c.JSON(http.StatusOK, models.QueryResponse{
			Status:  "unsupported",
			Message: "Запрос не относится к банковским операциям",
		})
	}
}

// resumePendingConfirmation обрабатывает ответ на ожидающее подтверждение.
// Возвращает true, если запрос был ответом да/нет и уже обработан.
func (o *Orchestrator) resumePendingConfirmation(c *gin.Context, sessionID, query string) bool {
	mem, err := database.GetAgentMemory(o.pool, sessionID, models.MemoryKeyPendingConfirmation)
	if err != nil {
		log.Printf("Ошибка чтения памяти агента: %v", err)
		return false
	}
	if mem == nil {
		return false
	}

	var pending pendingMemory
	if err := json.Unmarshal(mem.Value, &pending); err != nil {
		log.Printf("Ошибка разбора памяти подтверждения: %v", err)
		_ = database.DeleteAgentMemory(o.pool, mem.ID.String())
		return false
	}

	if isAffirmative(query) {
		resp, err := o.anomaly.ConfirmTransaction(pending.ConfirmationID, requestHeaders(c))
		_ = database.DeleteAgentMemory(o.pool, mem.ID.String())
		if err != nil {
			log.Printf("Ошибка подтверждения транзакции: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Не удалось подтвердить транзакцию"})
			return true
		}
		if resp.TransactionID != "" {
			if err := database.SetCorrelationTransactionByConfirmation(o.pool, pending.ConfirmationID, resp.TransactionID); err != nil {
				log.Printf("Ошибка обновления корреляции: %v", err)
			}
		}
		c.JSON(http.StatusOK, models.QueryResponse{
			Status:        "confirmed",
			Message:       "Транзакция подтверждена и исполнена",
			TransactionID: resp.TransactionID,
		})
		return true
	}

	// Любой не-утвердительный ответ отменяет отложенную транзакцию
	_ = database.DeleteAgentMemory(o.pool, mem.ID.String())
	if err := database.MarkConfirmationStatus(o.pool, pending.ConfirmationID, "cancelled"); err != nil {
		log.Printf("Ошибка отмены подтверждения: %v", err)
	}
	c.JSON(http.StatusOK, models.QueryResponse{
		Status:  "cancelled",
		Message: "Транзакция отменена",
	})
	return true
}

var affirmativeWords = []string{"yes", "confirm", "approve", "sure", "ok", "okay", "proceed", "да", "подтвер"}

func isAffirmative(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	for _, w := range affirmativeWords {
		if strings.Contains(q, w) {
			return true
		}
	}
	return false
}

// persistEnvelope сохраняет разобранный конверт LLM для аудита.
// Ошибка не прерывает обработку запроса.
func (o *Orchestrator) persistEnvelope(c *gin.Context, sessionID string, envelope *models.IntentEnvelope) *models.LlmEnvelope {
	validated, err := json.Marshal(envelope)
	if err != nil {
		log.Printf("Ошибка сериализации конверта: %v", err)
		return nil
	}
	row := &models.LlmEnvelope{
		SessionID:         sessionID,
		RawLlm:            envelope.RawLlm,
		ValidatedEnvelope: validated,
		CorrelationID:     middleware.CorrelationIDFrom(c),
		IdempotencyKey:    middleware.IdempotencyKeyFrom(c),
	}
	if err := database.CreateLlmEnvelope(o.pool, row); err != nil {
		log.Printf("Ошибка сохранения конверта LLM: %v", err)
		return nil
	}
	return row
}

func (o *Orchestrator) correlate(envelopeRow *models.LlmEnvelope, anomalyLogID, confirmationID, transactionID string) {
	if envelopeRow == nil {
		return
	}
	corr := &models.EnvelopeCorrelation{
		EnvelopeID:     envelopeRow.EnvelopeID,
		AnomalyLogID:   anomalyLogID,
		ConfirmationID: confirmationID,
		TransactionID:  transactionID,
	}
	if err := database.CreateEnvelopeCorrelation(o.pool, corr); err != nil {
		log.Printf("Ошибка сохранения корреляции: %v", err)
	}
}

func (o *Orchestrator) handleBalance(c *gin.Context, accountID string) {
	resp, err := o.money.GetBalance(accountID, requestHeaders(c))
	if err != nil {
		gatewayError(c, "Не удалось получить баланс", err)
		return
	}
	c.JSON(http.StatusOK, models.QueryResponse{Status: "success", Data: resp})
}

func (o *Orchestrator) handleHistory(c *gin.Context, accountID string) {
	resp, err := o.money.GetHistory(accountID, requestHeaders(c))
	if err != nil {
		gatewayError(c, "Не удалось получить историю транзакций", err)
		return
	}
	c.JSON(http.StatusOK, models.QueryResponse{Status: "success", Data: resp})
}

func (o *Orchestrator) handleSummary(c *gin.Context, accountID, period string) {
	if period == "" {
		period = "monthly"
	}
	summary, err := o.money.GetSummary(accountID, period, requestHeaders(c))
	if err != nil {
		gatewayError(c, "Не удалось получить сводку трат", err)
		return
	}
	c.JSON(http.StatusOK, models.QueryResponse{Status: "success", Data: summary})
}

func (o *Orchestrator) handleViewContacts(c *gin.Context, accountID string) {
	contacts, err := o.contacts.GetContacts(accountID, requestHeaders(c))
	if err != nil {
		gatewayError(c, "Не удалось получить контакты", err)
		return
	}
	c.JSON(http.StatusOK, models.QueryResponse{Status: "success", Data: contacts})
}

func (o *Orchestrator) handleAddContact(c *gin.Context, accountID string, envelope *models.IntentEnvelope) {
	label := envelope.Entities.ContactLabel
	if label == "" {
		label = envelope.Entities.RecipientName
	}
	var missing []string
	if label == "" {
		missing = append(missing, "contact_label")
	}
	if envelope.Entities.RecipientAccountID == "" {
		missing = append(missing, "recipient_account_id")
	}
	if len(missing) > 0 {
		clarify := models.NewClarify("Укажите имя контакта и номер счёта")
		clarify.MissingFields = missing
		c.JSON(http.StatusOK, clarify)
		return
	}

	contact := &models.Contact{
		Label:      label,
		AccountNum: envelope.Entities.RecipientAccountID,
		RoutingNum: envelope.Entities.RecipientRoutingID,
		IsExternal: envelope.Entities.RecipientRoutingID != "",
	}
	added, err := o.contacts.AddContact(accountID, contact, requestHeaders(c))
	if err != nil {
		gatewayError(c, "Не удалось добавить контакт", err)
		return
	}
	c.JSON(http.StatusOK, models.QueryResponse{Status: "success", Message: "Контакт добавлен", Data: added})
}

func (o *Orchestrator) handleUpdateContact(c *gin.Context, accountID string, envelope *models.IntentEnvelope) {
	label := envelope.Entities.ContactLabel
	if label == "" || envelope.Entities.RecipientAccountID == "" {
		clarify := models.NewClarify("Укажите контакт и новый номер счёта")
		clarify.MissingFields = []string{"contact_label", "recipient_account_id"}
		c.JSON(http.StatusOK, clarify)
		return
	}
	contact := &models.Contact{
		Label:      label,
		AccountNum: envelope.Entities.RecipientAccountID,
		RoutingNum: envelope.Entities.RecipientRoutingID,
	}
	if err := o.contacts.UpdateContact(accountID, label, contact, requestHeaders(c)); err != nil {
		gatewayError(c, "Не удалось обновить контакт", err)
		return
	}
	c.JSON(http.StatusOK, models.QueryResponse{Status: "success", Message: "Контакт обновлён"})
}

func (o *Orchestrator) handleDeleteContact(c *gin.Context, accountID string, envelope *models.IntentEnvelope) {
	label := envelope.Entities.ContactLabel
	if label == "" {
		label = envelope.Entities.RecipientName
	}
	if label == "" {
		clarify := models.NewClarify("Укажите, какой контакт удалить")
		clarify.MissingFields = []string{"contact_label"}
		c.JSON(http.StatusOK, clarify)
		return
	}
	if err := o.contacts.DeleteContact(accountID, label, requestHeaders(c)); err != nil {
		gatewayError(c, "Не удалось удалить контакт", err)
		return
	}
	c.JSON(http.StatusOK, models.QueryResponse{Status: "success", Message: "Контакт удалён"})
}

func (o *Orchestrator) handleViewBudgets(c *gin.Context, accountID string) {
	overview, err := o.money.GetOverview(accountID, requestHeaders(c))
	if err != nil {
		gatewayError(c, "Не удалось получить бюджеты", err)
		return
	}
	c.JSON(http.StatusOK, models.QueryResponse{Status: "success", Data: overview})
}

func (o *Orchestrator) handleCreateBudget(c *gin.Context, accountID string, envelope *models.IntentEnvelope) {
	var missing []string
	if envelope.Entities.BudgetCategory == "" {
		missing = append(missing, "budget_category")
	}
	if envelope.Entities.Amount == nil || envelope.Entities.Amount.Value <= 0 {
		missing = append(missing, "amount")
	}
	if len(missing) > 0 {
		clarify := models.NewClarify("Укажите категорию и лимит бюджета")
		clarify.MissingFields = missing
		c.JSON(http.StatusOK, clarify)
		return
	}

	limitCents, err := utils.NormalizeToUSDCents(o.pool, envelope.Entities.Amount.Value, envelope.Entities.Amount.Currency)
	if err != nil {
		log.Printf("Ошибка конвертации валюты: %v", err)
		c.JSON(http.StatusOK, models.NewClarify("Не удалось распознать валюту суммы"))
		return
	}

	budget := &models.Budget{
		Category:    envelope.Entities.BudgetCategory,
		LimitCents:  limitCents,
		PeriodStart: time.Now().UTC().Truncate(24 * time.Hour),
	}
	created, err := o.money.CreateBudget(accountID, budget, requestHeaders(c))
	if err != nil {
		gatewayError(c, "Не удалось создать бюджет", err)
		return
	}
	c.JSON(http.StatusOK, models.QueryResponse{Status: "success", Message: "Бюджет создан", Data: created})
}

// findBudgetByCategory ищет бюджет счёта по категории через money-sage.
func (o *Orchestrator) findBudgetByCategory(c *gin.Context, accountID, category string) (*models.Budget, error) {
	budgets, err := o.money.GetBudgets(accountID, requestHeaders(c))
	if err != nil {
		return nil, err
	}
	for i := range budgets {
		if strings.EqualFold(budgets[i].Category, category) {
			return &budgets[i], nil
		}
	}
	return nil, nil
}

func (o *Orchestrator) handleUpdateBudget(c *gin.Context, accountID string, envelope *models.IntentEnvelope) {
	if envelope.Entities.BudgetCategory == "" || envelope.Entities.Amount == nil || envelope.Entities.Amount.Value <= 0 {
		clarify := models.NewClarify("Укажите категорию бюджета и новый лимит")
		clarify.MissingFields = []string{"budget_category", "amount"}
		c.JSON(http.StatusOK, clarify)
		return
	}

	budget, err := o.findBudgetByCategory(c, accountID, envelope.Entities.BudgetCategory)
	if err != nil {
		gatewayError(c, "Не удалось получить бюджеты", err)
		return
	}
	if budget == nil {
		c.JSON(http.StatusOK, models.QueryResponse{
			Status:  "not_found",
			Message: "Бюджет для категории " + envelope.Entities.BudgetCategory + " не найден",
		})
		return
	}

	limitCents, err := utils.NormalizeToUSDCents(o.pool, envelope.Entities.Amount.Value, envelope.Entities.Amount.Currency)
	if err != nil {
		c.JSON(http.StatusOK, models.NewClarify("Не удалось распознать валюту суммы"))
		return
	}
	budget.LimitCents = limitCents

	updated, err := o.money.UpdateBudget(accountID, budget.ID.String(), budget, requestHeaders(c))
	if err != nil {
		gatewayError(c, "Не удалось обновить бюджет", err)
		return
	}
	c.JSON(http.StatusOK, models.QueryResponse{Status: "success", Message: "Бюджет обновлён", Data: updated})
}

func (o *Orchestrator) handleDeleteBudget(c *gin.Context, accountID string, envelope *models.IntentEnvelope) {
	if envelope.Entities.BudgetCategory == "" {
		clarify := models.NewClarify("Укажите, бюджет какой категории удалить")
		clarify.MissingFields = []string{"budget_category"}
		c.JSON(http.StatusOK, clarify)
		return
	}

	budget, err := o.findBudgetByCategory(c, accountID, envelope.Entities.BudgetCategory)
	if err != nil {
		gatewayError(c, "Не удалось получить бюджеты", err)
		return
	}
	if budget == nil {
		c.JSON(http.StatusOK, models.QueryResponse{
			Status:  "not_found",
			Message: "Бюджет для категории " + envelope.Entities.BudgetCategory + " не найден",
		})
		return
	}

	if err := o.money.DeleteBudget(accountID, budget.ID.String(), requestHeaders(c)); err != nil {
		gatewayError(c, "Не удалось удалить бюджет", err)
		return
	}
	c.JSON(http.StatusOK, models.QueryResponse{Status: "success", Message: "Бюджет удалён"})
}

// resolveRecipient определяет счёт получателя: явный номер счёта,
// затем кэш резолюций в памяти агента, затем contact-sage.
// Возвращает (accountID, handled): handled=true значит ответ уже отправлен.
func (o *Orchestrator) resolveRecipient(c *gin.Context, sessionID, accountID string, envelope *models.IntentEnvelope) (string, bool) {
	if envelope.Entities.RecipientAccountID != "" {
		return envelope.Entities.RecipientAccountID, false
	}

	name := envelope.Entities.RecipientName
	if name == "" {
		name = envelope.Entities.ContactLabel
	}
	if name == "" {
		clarify := models.NewClarify("Укажите получателя перевода")
		clarify.MissingFields = []string{"recipient_name"}
		c.JSON(http.StatusOK, clarify)
		return "", true
	}

	if mem, err := database.GetAgentMemory(o.pool, sessionID, models.MemoryKeyContactResolution); err == nil && mem != nil {
		var cached contactMemory
		if json.Unmarshal(mem.Value, &cached) == nil && strings.EqualFold(cached.Name, name) {
			return cached.AccountID, false
		}
	}

	resolved, err := o.contacts.ResolveContact(&models.ContactResolveRequest{
		Recipient: name,
		AccountID: accountID,
	}, requestHeaders(c))
	if err != nil {
		gatewayError(c, "Не удалось распознать получателя", err)
		return "", true
	}

	switch resolved.Status {
	case "success":
		value, _ := json.Marshal(contactMemory{
			Name:        name,
			AccountID:   resolved.AccountID,
			ContactName: resolved.ContactName,
		})
		expires := time.Now().UTC().Add(contactMemoryTTL)
		mem := &models.AgentMemory{
			SessionID: sessionID,
			Key:       models.MemoryKeyContactResolution,
			Value:     value,
			ExpiresAt: &expires,
		}
		if err := database.CreateAgentMemory(o.pool, mem); err != nil {
			log.Printf("Ошибка кэширования резолюции контакта: %v", err)
		}
		return resolved.AccountID, false
	case "multiple_matches":
		clarify := models.NewClarify("Найдено несколько похожих контактов, уточните получателя")
		clarify.ContactCandidates = resolved.Matches
		c.JSON(http.StatusOK, clarify)
		return "", true
	default:
		c.JSON(http.StatusOK, models.NewClarify("Контакт "+name+" не найден, укажите номер счёта"))
		return "", true
	}
}

func (o *Orchestrator) handleTransfer(c *gin.Context, sessionID, accountID string, envelope *models.IntentEnvelope, envelopeRow *models.LlmEnvelope) {
	if envelope.Entities.Amount == nil || envelope.Entities.Amount.Value <= 0 {
		clarify := models.NewClarify("Укажите сумму перевода")
		clarify.MissingFields = []string{"amount"}
		c.JSON(http.StatusOK, clarify)
		return
	}

	recipient, handled := o.resolveRecipient(c, sessionID, accountID, envelope)
	if handled {
		return
	}

	amountCents, err := utils.NormalizeToUSDCents(o.pool, envelope.Entities.Amount.Value, envelope.Entities.Amount.Currency)
	if err != nil {
		log.Printf("Ошибка конвертации валюты: %v", err)
		c.JSON(http.StatusOK, models.NewClarify("Не удалось распознать валюту суммы"))
		return
	}

	headers := requestHeaders(c)
	if headers.IdempotencyKey == "" {
		headers.IdempotencyKey = uuid.NewString()
	}

	check, err := o.anomaly.CheckRisk(&models.AnomalyCheckRequest{
		AccountID:          accountID,
		AmountCents:        amountCents,
		TransactionType:    "transfer",
		RecipientAccountID: recipient,
		Description:        envelope.Entities.Description,
		Metadata:           map[string]string{"session_id": sessionID},
	}, headers)
	if err != nil {
		gatewayError(c, "Не удалось проверить транзакцию", err)
		return
	}

	switch check.Action {
	case "block":
		o.correlate(envelopeRow, check.LogID, "", "")
		c.JSON(http.StatusOK, models.QueryResponse{
			Status:  "blocked",
			Message: "Транзакция заблокирована как мошенническая",
		})
	case "confirm":
		value, _ := json.Marshal(pendingMemory{ConfirmationID: check.ConfirmationID})
		expires := time.Now().UTC().Add(time.Duration(check.ConfirmationTTLSeconds) * time.Second)
		mem := &models.AgentMemory{
			SessionID: sessionID,
			Key:       models.MemoryKeyPendingConfirmation,
			Value:     value,
			ExpiresAt: &expires,
		}
		if err := database.CreateAgentMemory(o.pool, mem); err != nil {
			log.Printf("Ошибка сохранения памяти подтверждения: %v", err)
		}
		o.correlate(envelopeRow, check.LogID, check.ConfirmationID, "")
		c.JSON(http.StatusOK, models.QueryResponse{
			Status:          "requires_confirmation",
			Message:         "Транзакция выглядит подозрительно, ответьте «да» для подтверждения",
			ConfirmationID:  check.ConfirmationID,
			ConfirmationTTL: check.ConfirmationTTLSeconds,
		})
	default:
		resp, err := o.txn.ExecuteTransaction(&models.TransactionExecuteRequest{
			AccountID:          accountID,
			AmountCents:        amountCents,
			TransactionType:    "transfer",
			RecipientAccountID: recipient,
			Description:        envelope.Entities.Description,
		}, headers)
		if err != nil {
			gatewayError(c, "Не удалось исполнить перевод", err)
			return
		}
		o.correlate(envelopeRow, check.LogID, "", resp.TransactionID)
		c.JSON(http.StatusOK, models.QueryResponse{
			Status:        "success",
			Message:       "Перевод выполнен",
			TransactionID: resp.TransactionID,
			Data:          resp,
		})
	}
}

func (o *Orchestrator) handleDeposit(c *gin.Context, accountID string, envelope *models.IntentEnvelope, envelopeRow *models.LlmEnvelope) {
	if envelope.Entities.Amount == nil || envelope.Entities.Amount.Value <= 0 {
		clarify := models.NewClarify("Укажите сумму пополнения")
		clarify.MissingFields = []string{"amount"}
		c.JSON(http.StatusOK, clarify)
		return
	}

	amountCents, err := utils.NormalizeToUSDCents(o.pool, envelope.Entities.Amount.Value, envelope.Entities.Amount.Currency)
	if err != nil {
		c.JSON(http.StatusOK, models.NewClarify("Не удалось распознать валюту суммы"))
		return
	}

	headers := requestHeaders(c)
	if headers.IdempotencyKey == "" {
		headers.IdempotencyKey = uuid.NewString()
	}

	resp, err := o.txn.ExecuteTransaction(&models.TransactionExecuteRequest{
		AccountID:          accountID,
		AmountCents:        amountCents,
		TransactionType:    "deposit",
		RecipientAccountID: envelope.Entities.RecipientAccountID,
		Description:        envelope.Entities.Description,
	}, headers)
	if err != nil {
		gatewayError(c, "Не удалось пополнить счёт", err)
		return
	}
	o.correlate(envelopeRow, "", "", resp.TransactionID)
	c.JSON(http.StatusOK, models.QueryResponse{
		Status:        "success",
		Message:       "Счёт пополнен",
		TransactionID: resp.TransactionID,
		Data:          resp,
	})
}

// HandleConfirm — прямое подтверждение по идентификатору (POST /v1/confirm/:confirmation_id).
func (o *Orchestrator) HandleConfirm(c *gin.Context) {
	confirmationID := c.Param("confirmation_id")

	resp, err := o.anomaly.ConfirmTransaction(confirmationID, requestHeaders(c))
	if err != nil {
		gatewayError(c, "Не удалось подтвердить транзакцию", err)
		return
	}
	if resp.TransactionID != "" {
		if err := database.SetCorrelationTransactionByConfirmation(o.pool, confirmationID, resp.TransactionID); err != nil {
			log.Printf("Ошибка обновления корреляции: %v", err)
		}
	}
	c.JSON(http.StatusOK, resp)
}

func gatewayError(c *gin.Context, message string, err error) {
	log.Printf("%s: %v", message, err)
	if apiErr, ok := err.(*clients.APIError); ok {
		c.JSON(apiErr.StatusCode, gin.H{"error": message, "details": apiErr.Body})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": message})
}
