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

	contacts := clients.NewContactsClient(envOr("CONTACTS_URL", "http://contacts:8080"))
	history := clients.NewTransactionHistoryClient(envOr("TRANSACTION_HISTORY_URL", "http://transactionhistory:8080"))

	r := gin.Default()
	r.Use(middleware.CorrelationID())
	r.Use(middleware.ProcessTime())

	r.GET("/v1/health", handlers.HealthHandler("contact-sage"))

	authorized := r.Group("/v1", auth.Middleware(pubKey))
	authorized.POST("/resolve", handlers.ResolveContactHandler(contacts))
	authorized.GET("/suggestions/:account_id", handlers.SuggestContactsHandler(contacts, history))
	authorized.GET("/contacts/:account_id", handlers.GetContactsHandler(contacts))
	authorized.POST("/contacts/:account_id", handlers.AddContactHandler(contacts))
	authorized.PUT("/contacts/:account_id/:label", handlers.UpdateContactHandler(contacts))
	authorized.DELETE("/contacts/:account_id/:label", handlers.DeleteContactHandler(contacts))

	port := envOr("PORT", "8082")
	log.Printf("Contact-sage запущен на порту %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
