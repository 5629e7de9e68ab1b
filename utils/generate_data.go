package utils

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/categorize"
	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/database"
	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/models"
)

func randomAccountID() string {
	return fmt.Sprintf("%010d", rand.Intn(1000000000))
}

func GenerateTestProfiles(pool *pgxpool.Pool, numProfiles int) []string {
	accountIDs := make([]string, 0, numProfiles)
	for i := 0; i < numProfiles; i++ {
		hours := make([]int, 0, 15)
		for h := 8; h < 23; h++ {
			hours = append(hours, h)
		}
		profile := &models.UserProfile{
			AccountID:            randomAccountID(),
			MeanTxnAmountCents:   int64(gofakeit.Number(2000, 20000)),
			StddevTxnAmountCents: int64(gofakeit.Number(500, 5000)),
			ActiveHours:          hours,
			EmailForAlerts:       gofakeit.Email(),
		}
		if err := database.CreateUserProfile(pool, profile); err != nil {
			log.Fatalf("ошибка при добавлении профиля: %v", err)
		}
		accountIDs = append(accountIDs, profile.AccountID)
	}
	return accountIDs
}

func GenerateTestBudgets(pool *pgxpool.Pool, accountIDs []string, perAccount int) {
	categories := categorize.Categories()
	for _, accountID := range accountIDs {
		for i := 0; i < perAccount; i++ {
			start := time.Now().UTC().AddDate(0, 0, -time.Now().UTC().Day()+1).Truncate(24 * time.Hour)
			end := start.AddDate(0, 1, 0).Add(-time.Second)
			budget := &models.Budget{
				AccountID:   accountID,
				Category:    categories[rand.Intn(len(categories))],
				LimitCents:  int64(gofakeit.Number(10000, 100000)),
				PeriodStart: start,
				PeriodEnd:   &end,
			}
			if err := database.CreateBudget(pool, budget); err != nil {
				log.Fatalf("ошибка при добавлении бюджета: %v", err)
			}
		}
	}
}

func GenerateTestTransactionLogs(pool *pgxpool.Pool, accountIDs []string, perAccount int) {
	for _, accountID := range accountIDs {
		for i := 0; i < perAccount; i++ {
			description := gofakeit.Company()
			tlog := &models.TransactionLog{
				TransactionID: int64(gofakeit.Number(1000000, 999999999)),
				AccountID:     accountID,
				AmountCents:   int64(gofakeit.Number(100, 100000)),
				Category:      categorize.Categorize(description),
			}
			if err := database.CreateTransactionLog(pool, tlog); err != nil {
				log.Fatalf("ошибка при добавлении транзакции: %v", err)
			}
		}
	}
}
