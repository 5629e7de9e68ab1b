package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/auth"
	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/clients"
	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/database"
	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/handlers"
	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/middleware"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	pool, err := database.ConnectDB()
	if err != nil {
		log.Fatalf("Ошибка подключения к БД: %v", err)
	}
	defer pool.Close()

	pubKey, err := auth.LoadPublicKey()
	if err != nil {
		log.Fatalf("Ошибка загрузки публичного ключа: %v", err)
	}

	balance := clients.NewBalanceReaderClient(envOr("BALANCE_READER_URL", "http://balancereader:8080"))
	history := clients.NewTransactionHistoryClient(envOr("TRANSACTION_HISTORY_URL", "http://transactionhistory:8080"))
	txnSage := clients.NewTransactionSageClient(envOr("TRANSACTION_SAGE_URL", "http://localhost:8084"))

	r := gin.Default()
	r.Use(middleware.CorrelationID())
	r.Use(middleware.ProcessTime())

	r.GET("/v1/health", handlers.HealthHandler("money-sage"))

	authorized := r.Group("/v1", auth.Middleware(pubKey))
	authorized.GET("/balance/:account_id", handlers.GetBalanceHandler(balance))
	authorized.GET("/history/:account_id", handlers.GetHistoryHandler(history))
	authorized.GET("/summary/:account_id", handlers.GetSummaryHandler(pool))
	authorized.GET("/budgets/:account_id", handlers.GetBudgetsHandler(pool))
	authorized.POST("/budgets/:account_id", handlers.CreateBudgetHandler(pool))
	authorized.PUT("/budgets/:account_id/:budget_id", handlers.UpdateBudgetHandler(pool))
	authorized.DELETE("/budgets/:account_id/:budget_id", handlers.DeleteBudgetHandler(pool))
	authorized.GET("/overview/:account_id", handlers.GetBudgetOverviewHandler(pool))
	authorized.POST("/deposit/:account_id", handlers.DepositHandler(txnSage))

	port := envOr("PORT", "8083")
	log.Printf("Money-sage запущен на порту %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
