package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/models"
)

// AddBudgetUsage прибавляет сумму к использованию бюджета за период.
// UPSERT опирается на уникальный индекс (account_id, category, period_start);
// period_end хранится как есть (NULL для бессрочного бюджета) и в ключ не входит.
func AddBudgetUsage(pool *pgxpool.Pool, accountID, category string, amountCents int64, periodStart time.Time, periodEnd *time.Time) error {
	query := `
		INSERT INTO budget_usage (account_id, category, used_amount, period_start, period_end, last_updated)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (account_id, category, period_start)
		DO UPDATE SET used_amount = budget_usage.used_amount + EXCLUDED.used_amount, last_updated = now()`

	_, err := pool.Exec(context.Background(), query, accountID, category, amountCents, periodStart, periodEnd)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении использования бюджета: %v", err)
	}
	return nil
}

func GetBudgetUsage(pool *pgxpool.Pool, accountID, category string, periodStart time.Time) (int64, error) {
	query := `
		SELECT COALESCE(used_amount, 0)
		FROM budget_usage
		WHERE account_id = $1 AND category = $2 AND period_start = $3`

	var used int64
	err := pool.QueryRow(context.Background(), query, accountID, category, periodStart).Scan(&used)
	if err != nil {
		// Нет строки — значит трат за период ещё не было
		return 0, nil
	}
	return used, nil
}

// GetBudgetOverview собирает отчёт лимит/потрачено/остаток по бюджетам счёта
// за периоды, в которые попадает сегодняшняя дата.
func GetBudgetOverview(pool *pgxpool.Pool, accountID string) ([]models.BudgetOverview, error) {
	query := `
		SELECT b.category, b.budget_limit, COALESCE(u.used_amount, 0)
		FROM budgets b
		LEFT JOIN budget_usage u
			ON u.account_id = b.account_id
			AND u.category = b.category
			AND u.period_start = b.period_start
		WHERE b.account_id = $1
			AND b.period_start <= now()
			AND (b.period_end IS NULL OR b.period_end >= now())
		ORDER BY b.category`

	rows, err := pool.Query(context.Background(), query, accountID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при построении отчёта по бюджетам: %v", err)
	}
	defer rows.Close()

	var overview []models.BudgetOverview
	for rows.Next() {
		var o models.BudgetOverview
		if err := rows.Scan(&o.Category, &o.LimitCents, &o.UsedCents); err != nil {
			return nil, fmt.Errorf("ошибка чтения строки отчёта: %v", err)
		}
		o.RemainingCents = o.LimitCents - o.UsedCents
		overview = append(overview, o)
	}
	return overview, nil
}
