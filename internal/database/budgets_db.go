package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/models"
)

func CreateBudget(pool *pgxpool.Pool, budget *models.Budget) error {
	query := `
		INSERT INTO budgets (account_id, category, budget_limit, period_start, period_end)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := pool.QueryRow(context.Background(), query,
		budget.AccountID,
		budget.Category,
		budget.LimitCents,
		budget.PeriodStart,
		budget.PeriodEnd).Scan(&budget.ID)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении бюджета: %v", err)
	}
	return nil
}

func GetBudgetByID(pool *pgxpool.Pool, budgetID string) (*models.Budget, error) {
	query := `
		SELECT id, account_id, category, budget_limit, period_start, period_end
		FROM budgets
		WHERE id = $1`

	budget := &models.Budget{}
	err := pool.QueryRow(context.Background(), query, budgetID).Scan(
		&budget.ID,
		&budget.AccountID,
		&budget.Category,
		&budget.LimitCents,
		&budget.PeriodStart,
		&budget.PeriodEnd,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("бюджет с ID %s не найден", budgetID)
		}
		return nil, fmt.Errorf("ошибка при получении бюджета: %v", err)
	}

	return budget, nil
}

func GetBudgetsByAccountID(pool *pgxpool.Pool, accountID string) ([]models.Budget, error) {
	query := `
		SELECT id, account_id, category, budget_limit, period_start, period_end
		FROM budgets
		WHERE account_id = $1
		ORDER BY category`

	rows, err := pool.Query(context.Background(), query, accountID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка бюджетов: %v", err)
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(&b.ID, &b.AccountID, &b.Category, &b.LimitCents, &b.PeriodStart, &b.PeriodEnd); err != nil {
			return nil, fmt.Errorf("ошибка чтения строки бюджета: %v", err)
		}
		budgets = append(budgets, b)
	}
	return budgets, nil
}

func GetBudgetsByCategory(pool *pgxpool.Pool, accountID, category string) ([]models.Budget, error) {
	query := `
		SELECT id, account_id, category, budget_limit, period_start, period_end
		FROM budgets
		WHERE account_id = $1 AND category = $2`

	rows, err := pool.Query(context.Background(), query, accountID, category)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении бюджетов категории: %v", err)
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(&b.ID, &b.AccountID, &b.Category, &b.LimitCents, &b.PeriodStart, &b.PeriodEnd); err != nil {
			return nil, fmt.Errorf("ошибка чтения строки бюджета: %v", err)
		}
		budgets = append(budgets, b)
	}
	return budgets, nil
}

func UpdateBudget(pool *pgxpool.Pool, budget *models.Budget) error {
	query := `
		UPDATE budgets
		SET category = $1, budget_limit = $2, period_start = $3, period_end = $4
		WHERE id = $5 AND account_id = $6`

	result, err := pool.Exec(context.Background(), query,
		budget.Category,
		budget.LimitCents,
		budget.PeriodStart,
		budget.PeriodEnd,
		budget.ID,
		budget.AccountID)
	if err != nil {
		return fmt.Errorf("ошибка обновления бюджета: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("бюджет с ID %s не найден", budget.ID)
	}
	return nil
}

func DeleteBudget(pool *pgxpool.Pool, accountID, budgetID string) error {
	query := `
		DELETE FROM budgets
		WHERE id = $1 AND account_id = $2`

	result, err := pool.Exec(context.Background(), query, budgetID, accountID)
	if err != nil {
		return fmt.Errorf("ошибка удаления бюджета: %v", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("бюджет с ID %s не найден", budgetID)
	}
	return nil
}
