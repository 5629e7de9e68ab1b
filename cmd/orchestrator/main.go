package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"

	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/auth"
	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/clients"
	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/database"
	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/flow"
	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/handlers"
	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/intent"
	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/middleware"
	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/utils"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ScheduleMaintenance настраивает фоновые задачи оркестратора:
// очистку истёкшей памяти, старых конвертов и обновление курсов валют.
func ScheduleMaintenance(pool *pgxpool.Pool) {
	c := cron.New()

	if _, err := c.AddFunc("@hourly", func() {
		n, err := database.PurgeExpiredMemory(pool)
		if err != nil {
			log.Printf("Ошибка очистки памяти агента: %v", err)
			return
		}
		if n > 0 {
			log.Printf("Удалено истёкших записей памяти: %d", n)
		}
	}); err != nil {
		log.Fatalf("Ошибка настройки CRON-задачи очистки памяти: %v", err)
	}

	if _, err := c.AddFunc("@daily", func() {
		n, err := database.PurgeOldEnvelopes(pool, 30*24*time.Hour)
		if err != nil {
			log.Printf("Ошибка очистки конвертов LLM: %v", err)
			return
		}
		if n > 0 {
			log.Printf("Удалено старых конвертов LLM: %d", n)
		}
	}); err != nil {
		log.Fatalf("Ошибка настройки CRON-задачи очистки конвертов: %v", err)
	}

	if _, err := c.AddFunc("@hourly", func() {
		if err := utils.RefreshRates(pool); err != nil {
			log.Printf("Ошибка обновления курсов валют: %v", err)
		}
	}); err != nil {
		log.Fatalf("Ошибка настройки CRON-задачи курсов валют: %v", err)
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

	parser, err := intent.NewGeminiParser(context.Background())
	if err != nil {
		log.Fatalf("Ошибка инициализации парсера интентов: %v", err)
	}

	orch := flow.New(pool, parser,
		clients.NewAnomalySageClient(envOr("ANOMALY_SAGE_URL", "http://localhost:8081")),
		clients.NewTransactionSageClient(envOr("TRANSACTION_SAGE_URL", "http://localhost:8084")),
		clients.NewContactSageClient(envOr("CONTACT_SAGE_URL", "http://localhost:8082")),
		clients.NewMoneySageClient(envOr("MONEY_SAGE_URL", "http://localhost:8083")),
	)

	if err := utils.FetchExchangeRates(); err != nil {
		log.Printf("Не удалось получить курсы валют при старте: %v", err)
	}
	ScheduleMaintenance(pool)

	r := gin.Default()
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.CorrelationID())
	r.Use(middleware.ProcessTime())
	r.Use(middleware.IdempotencyKey())

	r.GET("/v1/health", handlers.HealthHandler("orchestrator"))

	authorized := r.Group("/v1", auth.Middleware(pubKey))
	authorized.POST("/query", orch.HandleQuery)
	authorized.POST("/confirm/:confirmation_id", orch.HandleConfirm)

	port := envOr("PORT", "8080")
	log.Printf("Оркестратор запущен на порту %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
