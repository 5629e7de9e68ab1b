package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/models"
)

func CreateTransactionLog(pool *pgxpool.Pool, tlog *models.TransactionLog) error {
	query := `
		INSERT INTO transaction_logs (transaction_id, account_id, amount, category)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := pool.QueryRow(context.Background(), query,
		tlog.TransactionID,
		tlog.AccountID,
		tlog.AmountCents,
		tlog.Category).Scan(&tlog.ID, &tlog.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при записи транзакции в журнал: %v", err)
	}
	return nil
}

func GetTransactionLogsByAccountID(pool *pgxpool.Pool, accountID string, limit int) ([]models.TransactionLog, error) {
	query := `
		SELECT id, transaction_id, account_id, amount, category, created_at
		FROM transaction_logs
		WHERE account_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := pool.Query(context.Background(), query, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении журнала транзакций: %v", err)
	}
	defer rows.Close()

	var logs []models.TransactionLog
	for rows.Next() {
		var l models.TransactionLog
		if err := rows.Scan(&l.ID, &l.TransactionID, &l.AccountID, &l.AmountCents, &l.Category, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка чтения строки журнала: %v", err)
		}
		logs = append(logs, l)
	}
	return logs, nil
}

// GetSpendingSummary агрегирует траты по категориям начиная с startDate.
func GetSpendingSummary(pool *pgxpool.Pool, accountID string, startDate time.Time) ([]models.CategorySummary, error) {
	query := `
		SELECT category, COALESCE(SUM(amount), 0)
		FROM transaction_logs
		WHERE account_id = $1 AND created_at >= $2
		GROUP BY category
		ORDER BY 2 DESC`

	rows, err := pool.Query(context.Background(), query, accountID, startDate)
	if err != nil {
		return nil, fmt.Errorf("ошибка при расчёте сводки трат: %v", err)
	}
	defer rows.Close()

	var summary []models.CategorySummary
	for rows.Next() {
		var s models.CategorySummary
		if err := rows.Scan(&s.Category, &s.TotalSpent); err != nil {
			return nil, fmt.Errorf("ошибка чтения строки сводки: %v", err)
		}
		summary = append(summary, s)
	}
	return summary, nil
}
