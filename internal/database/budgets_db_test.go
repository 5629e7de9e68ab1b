package database_test

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/database"
	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/models"
)

func testAccountID() string {
	return fmt.Sprintf("%010d", rand.Intn(1000000000))
}

func TestCreateBudget(t *testing.T) {
	pool, err := database.ConnectDB()
	if err != nil {
		t.Skipf("БД недоступна: %v", err)
	}
	defer pool.Close()

	end := time.Now().UTC().AddDate(0, 1, 0)
	budget := &models.Budget{
		AccountID:   testAccountID(),
		Category:    "groceries",
		LimitCents:  50000,
		PeriodStart: time.Now().UTC().Truncate(24 * time.Hour),
		PeriodEnd:   &end,
	}

	if err := database.CreateBudget(pool, budget); err != nil {
		t.Fatalf("ошибка создания бюджета: %v", err)
	}

	created, err := database.GetBudgetByID(pool, budget.ID.String())
	if err != nil {
		t.Fatalf("ошибка получения бюджета по ID: %v", err)
	}
	if created.LimitCents != budget.LimitCents || created.Category != budget.Category {
		t.Errorf("данные бюджета не совпадают: получили %+v, хотели %+v", created, budget)
	}
}

func TestUpdateBudget(t *testing.T) {
	pool, err := database.ConnectDB()
	if err != nil {
		t.Skipf("БД недоступна: %v", err)
	}
	defer pool.Close()

	budget := &models.Budget{
		AccountID:   testAccountID(),
		Category:    "dining",
		LimitCents:  20000,
		PeriodStart: time.Now().UTC().Truncate(24 * time.Hour),
	}
	if err := database.CreateBudget(pool, budget); err != nil {
		t.Fatalf("ошибка создания бюджета: %v", err)
	}

	budget.LimitCents = 30000
	if err := database.UpdateBudget(pool, budget); err != nil {
		t.Fatalf("ошибка обновления бюджета: %v", err)
	}

	updated, err := database.GetBudgetByID(pool, budget.ID.String())
	if err != nil {
		t.Fatalf("ошибка получения бюджета: %v", err)
	}
	if updated.LimitCents != 30000 {
		t.Errorf("лимит не обновился: %d", updated.LimitCents)
	}
}

func TestDeleteBudget(t *testing.T) {
	pool, err := database.ConnectDB()
	if err != nil {
		t.Skipf("БД недоступна: %v", err)
	}
	defer pool.Close()

	budget := &models.Budget{
		AccountID:   testAccountID(),
		Category:    "travel",
		LimitCents:  10000,
		PeriodStart: time.Now().UTC().Truncate(24 * time.Hour),
	}
	if err := database.CreateBudget(pool, budget); err != nil {
		t.Fatalf("ошибка создания бюджета: %v", err)
	}

	if err := database.DeleteBudget(pool, budget.AccountID, budget.ID.String()); err != nil {
		t.Fatalf("ошибка удаления бюджета: %v", err)
	}
	if _, err := database.GetBudgetByID(pool, budget.ID.String()); err == nil {
		t.Error("бюджет должен быть удалён")
	}
}

func TestBudgetUsageUpsert(t *testing.T) {
	pool, err := database.ConnectDB()
	if err != nil {
		t.Skipf("БД недоступна: %v", err)
	}
	defer pool.Close()

	accountID := testAccountID()
	start := time.Now().UTC().Truncate(24 * time.Hour)
	end := start.AddDate(0, 1, 0)

	if err := database.AddBudgetUsage(pool, accountID, "groceries", 1000, start, &end); err != nil {
		t.Fatalf("ошибка первого обновления: %v", err)
	}
	if err := database.AddBudgetUsage(pool, accountID, "groceries", 500, start, &end); err != nil {
		t.Fatalf("ошибка второго обновления: %v", err)
	}

	used, err := database.GetBudgetUsage(pool, accountID, "groceries", start)
	if err != nil {
		t.Fatalf("ошибка чтения использования: %v", err)
	}
	if used != 1500 {
		t.Errorf("использование должно суммироваться: получили %d, ожидали 1500", used)
	}
}

// Бессрочный бюджет (period_end IS NULL) должен накапливать траты в одной
// строке: ключом периода служит только period_start.
func TestBudgetUsageAccumulatesWithoutPeriodEnd(t *testing.T) {
	pool, err := database.ConnectDB()
	if err != nil {
		t.Skipf("БД недоступна: %v", err)
	}
	defer pool.Close()

	accountID := testAccountID()
	start := time.Now().UTC().Truncate(24 * time.Hour)

	if err := database.AddBudgetUsage(pool, accountID, "dining", 700, start, nil); err != nil {
		t.Fatalf("ошибка первого обновления: %v", err)
	}
	if err := database.AddBudgetUsage(pool, accountID, "dining", 300, start, nil); err != nil {
		t.Fatalf("ошибка второго обновления: %v", err)
	}

	used, err := database.GetBudgetUsage(pool, accountID, "dining", start)
	if err != nil {
		t.Fatalf("ошибка чтения использования: %v", err)
	}
	if used != 1000 {
		t.Errorf("использование должно суммироваться: получили %d, ожидали 1000", used)
	}
}
