package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/clients"
	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/database"
	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/models"
)

// GetBalanceHandler проксирует баланс из balance-reader.
func GetBalanceHandler(balance *clients.BalanceReaderClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := balance.GetBalance(c.Param("account_id"), downstreamHeaders(c))
		if err != nil {
			proxyError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GetHistoryHandler проксирует историю транзакций из transaction-history.
func GetHistoryHandler(history *clients.TransactionHistoryClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		txns, err := history.GetTransactions(c.Param("account_id"), downstreamHeaders(c))
		if err != nil {
			proxyError(c, err)
			return
		}
		c.JSON(http.StatusOK, clients.HistoryResponse{Transactions: txns})
	}
}

// periodStart возвращает начало календарного периода: сегодняшняя полночь,
// понедельник текущей недели или первое число месяца.
func periodStart(period string, now time.Time) (time.Time, bool) {
	year, month, day := now.Date()
	today := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	switch period {
	case "daily":
		return today, true
	case "weekly":
		return today.AddDate(0, 0, -((int(today.Weekday()) + 6) % 7)), true
	case "", "monthly":
		return time.Date(year, month, 1, 0, 0, 0, 0, now.Location()), true
	}
	return time.Time{}, false
}

// GetSummaryHandler агрегирует траты по категориям за период.
func GetSummaryHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		period := c.DefaultQuery("period", "monthly")
		start, ok := periodStart(period, time.Now().UTC())
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Недопустимый период: допустимы daily, weekly, monthly"})
			return
		}

		summary, err := database.GetSpendingSummary(pool, c.Param("account_id"), start)
		if err != nil {
			log.Printf("Ошибка расчёта сводки трат: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при расчёте сводки трат"})
			return
		}
		if summary == nil {
			summary = []models.CategorySummary{}
		}
		c.JSON(http.StatusOK, summary)
	}
}

func GetBudgetsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		budgets, err := database.GetBudgetsByAccountID(pool, c.Param("account_id"))
		if err != nil {
			log.Printf("Ошибка получения бюджетов: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении списка бюджетов"})
			return
		}
		if budgets == nil {
			budgets = []models.Budget{}
		}
		c.JSON(http.StatusOK, budgets)
	}
}

func CreateBudgetHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var budget models.Budget
		if err := c.ShouldBindJSON(&budget); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат бюджета", "details": err.Error()})
			return
		}
		budget.AccountID = c.Param("account_id")
		if budget.Category == "" || budget.LimitCents <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Категория и положительный лимит обязательны"})
			return
		}
		if budget.PeriodStart.IsZero() {
			budget.PeriodStart = time.Now().UTC().Truncate(24 * time.Hour)
		}

		if err := database.CreateBudget(pool, &budget); err != nil {
			log.Printf("Ошибка создания бюджета: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при создании бюджета"})
			return
		}
		c.JSON(http.StatusCreated, budget)
	}
}

func UpdateBudgetHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		existing, err := database.GetBudgetByID(pool, c.Param("budget_id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Бюджет не найден"})
			return
		}
		if existing.AccountID != c.Param("account_id") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Бюджет не найден"})
			return
		}

		var patch models.Budget
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат бюджета", "details": err.Error()})
			return
		}
		if patch.Category != "" {
			existing.Category = patch.Category
		}
		if patch.LimitCents > 0 {
			existing.LimitCents = patch.LimitCents
		}
		if !patch.PeriodStart.IsZero() {
			existing.PeriodStart = patch.PeriodStart
		}
		if patch.PeriodEnd != nil {
			existing.PeriodEnd = patch.PeriodEnd
		}

		if err := database.UpdateBudget(pool, existing); err != nil {
			log.Printf("Ошибка обновления бюджета: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при обновлении бюджета"})
			return
		}
		c.JSON(http.StatusOK, existing)
	}
}

func DeleteBudgetHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := database.DeleteBudget(pool, c.Param("account_id"), c.Param("budget_id")); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Бюджет не найден"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Бюджет успешно удалён"})
	}
}

// GetBudgetOverviewHandler отдаёт отчёт лимит/потрачено/остаток за текущий период.
func GetBudgetOverviewHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		overview, err := database.GetBudgetOverview(pool, c.Param("account_id"))
		if err != nil {
			log.Printf("Ошибка построения отчёта по бюджетам: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при построении отчёта по бюджетам"})
			return
		}
		if overview == nil {
			overview = []models.BudgetOverview{}
		}
		c.JSON(http.StatusOK, overview)
	}
}

// DepositHandler пересылает депозит в transaction-sage.
// Счёт берётся из пути, тело содержит только сумму и источник.
func DepositHandler(txnSage *clients.TransactionSageClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			AmountCents     int64  `json:"amount_cents" binding:"required"`
			SourceAccountID string `json:"source_account_id"`
			Description     string `json:"description"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат данных", "details": err.Error()})
			return
		}

		req := models.TransactionExecuteRequest{
			AccountID:          c.Param("account_id"),
			AmountCents:        body.AmountCents,
			TransactionType:    "deposit",
			RecipientAccountID: body.SourceAccountID,
			Description:        body.Description,
		}

		headers := downstreamHeaders(c)
		headers.IdempotencyKey = c.GetHeader("Idempotency-Key")
		resp, err := txnSage.ExecuteTransaction(&req, headers)
		if err != nil {
			proxyError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}
