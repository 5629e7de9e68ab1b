package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"

	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/alert"
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

// ScheduleConfirmationExpiry закрывает просроченные подтверждения раз в час.
func ScheduleConfirmationExpiry(pool *pgxpool.Pool) {
	c := cron.New()
	if _, err := c.AddFunc("@hourly", func() {
		n, err := database.ExpireStaleConfirmations(pool)
		if err != nil {
			log.Printf("Ошибка закрытия просроченных подтверждений: %v", err)
			return
		}
		if n > 0 {
			log.Printf("Закрыто просроченных подтверждений: %d", n)
		}
	}); err != nil {
		log.Fatalf("Ошибка настройки CRON-задачи подтверждений: %v", err)
	}
	c.Start()
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

	history := clients.NewTransactionHistoryClient(envOr("TRANSACTION_HISTORY_URL", "http://transactionhistory:8080"))
	txnSage := clients.NewTransactionSageClient(envOr("TRANSACTION_SAGE_URL", "http://localhost:8084"))
	mailer := alert.NewMailerFromEnv()

	ScheduleConfirmationExpiry(pool)

	r := gin.Default()
	r.Use(middleware.CorrelationID())
	r.Use(middleware.ProcessTime())

	r.GET("/v1/health", handlers.HealthHandler("anomaly-sage"))

	authorized := r.Group("/v1/anomaly", auth.Middleware(pubKey))
	authorized.POST("/check", handlers.CheckAnomalyHandler(pool, history, mailer))
	authorized.POST("/confirm/:confirmation_id", handlers.ConfirmAnomalyHandler(pool, txnSage))

	port := envOr("PORT", "8081")
	log.Printf("Anomaly-sage запущен на порту %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
