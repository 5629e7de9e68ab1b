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

	ledger := clients.NewLedgerWriterClient(envOr("LEDGER_WRITER_URL", "http://ledgerwriter:8080"))

	r := gin.Default()
	r.Use(middleware.CorrelationID())
	r.Use(middleware.ProcessTime())
	r.Use(middleware.IdempotencyKey())

	r.GET("/v1/health", handlers.HealthHandler("transaction-sage"))

	authorized := r.Group("/v1/transactions", auth.Middleware(pubKey))
	authorized.POST("/execute", handlers.ExecuteTransactionHandler(pool, ledger))

	port := envOr("PORT", "8084")
	log.Printf("Transaction-sage запущен на порту %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
