package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/categorize"
	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/clients"
	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/database"
	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/middleware"
	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/models"
)

// ExecuteTransactionHandler проводит транзакцию через ledger-writer,
// записывает её в журнал и обновляет использование бюджета.
// Заголовок Idempotency-Key защищает от повторного исполнения.
func ExecuteTransactionHandler(pool *pgxpool.Pool, ledger *clients.LedgerWriterClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("X-Correlation-ID") == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Отсутствует заголовок X-Correlation-ID"})
			return
		}

		var req models.TransactionExecuteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат данных", "details": err.Error()})
			return
		}
		if req.AmountCents <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Сумма должна быть положительной"})
			return
		}
		if req.TransactionType == "" {
			req.TransactionType = "transfer"
		}
		if req.TransactionType == "transfer" && req.RecipientAccountID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Не указан счёт получателя"})
			return
		}

		idemKey := middleware.IdempotencyKeyFrom(c)
		if idemKey != "" {
			existing, claimed, err := database.ClaimIdempotencyKey(pool, idemKey, req.AccountID)
			if err != nil {
				log.Printf("Ошибка проверки ключа идемпотентности: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при проверке идемпотентности"})
				return
			}
			if !claimed {
				switch existing.Status {
				case models.IdempotencyCompleted:
					// Повтор завершённого запроса: отдаём сохранённый ответ
					var stored models.TransactionExecuteResponse
					if err := json.Unmarshal(existing.ResponsePayload, &stored); err != nil {
						log.Printf("Ошибка разбора сохранённого ответа для ключа %s: %v", idemKey, err)
						c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка разбора сохранённого ответа"})
						return
					}
					c.JSON(http.StatusOK, stored)
					return
				case models.IdempotencyInProgress:
					c.JSON(http.StatusAccepted, models.TransactionExecuteResponse{
						Status:  models.IdempotencyInProgress,
						Message: "Транзакция уже выполняется",
					})
					return
				}
			}
		}

		ledgerTxn := &clients.LedgerTransaction{
			FromAccountID: req.AccountID,
			ToAccountID:   req.RecipientAccountID,
			Amount:        req.AmountCents,
			Description:   req.Description,
		}
		if req.TransactionType == "deposit" {
			// Депозит — зачисление с внешнего счёта на счёт пользователя
			ledgerTxn.FromAccountID = req.RecipientAccountID
			ledgerTxn.ToAccountID = req.AccountID
		}

		headers := clients.Headers{
			CorrelationID: middleware.CorrelationIDFrom(c),
			Token:         c.GetString("token"),
		}
		ledgerResp, err := ledger.PostTransaction(ledgerTxn, headers)
		if err != nil {
			log.Printf("Ошибка записи транзакции в ledger-writer: %v", err)
			proxyError(c, err)
			return
		}

		category := categorize.Categorize(req.Description)
		tlog := &models.TransactionLog{
			TransactionID: ledgerResp.TransactionID,
			AccountID:     req.AccountID,
			AmountCents:   req.AmountCents,
			Category:      category,
		}
		if err := database.CreateTransactionLog(pool, tlog); err != nil {
			log.Printf("Ошибка записи в журнал транзакций: %v", err)
		}

		if req.TransactionType == "transfer" {
			applyBudgetUsage(pool, req.AccountID, category, req.AmountCents)
		}

		resp := models.TransactionExecuteResponse{
			Status:        "success",
			TransactionID: strconv.FormatInt(ledgerResp.TransactionID, 10),
			NewBalance:    ledgerResp.NewBalance,
			Category:      category,
		}

		if idemKey != "" {
			payload, _ := json.Marshal(resp)
			if err := database.CompleteIdempotencyKey(pool, idemKey, payload); err != nil {
				log.Printf("Ошибка завершения ключа идемпотентности: %v", err)
			}
		}

		c.JSON(http.StatusOK, resp)
	}
}

// applyBudgetUsage прибавляет трату к бюджетам категории, чей период
// покрывает текущий момент. Ошибки только логируются.
func applyBudgetUsage(pool *pgxpool.Pool, accountID, category string, amountCents int64) {
	budgets, err := database.GetBudgetsByCategory(pool, accountID, category)
	if err != nil {
		log.Printf("Ошибка получения бюджетов категории %s: %v", category, err)
		return
	}

	now := time.Now().UTC()
	for _, b := range budgets {
		if b.PeriodStart.After(now) {
			continue
		}
		if b.PeriodEnd != nil && b.PeriodEnd.Before(now) {
			continue
		}
		if err := database.AddBudgetUsage(pool, accountID, category, amountCents, b.PeriodStart, b.PeriodEnd); err != nil {
			log.Printf("Ошибка обновления использования бюджета: %v", err)
		}
	}
}
