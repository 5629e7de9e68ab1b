package main

import (
	"flag"
	"log"

	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/database"
	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/utils"
)

// Наполняет ai-meta-db тестовыми профилями, бюджетами и журналом транзакций.
func main() {
	profiles := flag.Int("profiles", 10, "сколько профилей создать")
	budgets := flag.Int("budgets", 3, "бюджетов на профиль")
	txns := flag.Int("transactions", 25, "записей журнала на профиль")
	flag.Parse()

	pool, err := database.ConnectDB()
	if err != nil {
		log.Fatalf("Ошибка подключения к БД: %v", err)
	}
	defer pool.Close()

	accountIDs := utils.GenerateTestProfiles(pool, *profiles)
	log.Printf("Создано профилей: %d", len(accountIDs))

	utils.GenerateTestBudgets(pool, accountIDs, *budgets)
	log.Printf("Создано бюджетов: %d", len(accountIDs)*(*budgets))

	utils.GenerateTestTransactionLogs(pool, accountIDs, *txns)
	log.Printf("Создано записей журнала: %d", len(accountIDs)*(*txns))

	log.Println("Генерация тестовых данных завершена")
}
