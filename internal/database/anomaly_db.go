package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/models"
)

func CreateAnomalyLog(pool *pgxpool.Pool, log *models.AnomalyLog) error {
	query := `
		INSERT INTO anomaly_logs (transaction_id, account_id, risk_score, status)
		VALUES ($1, $2, $3, $4)
		RETURNING log_id, created_at`

	err := pool.QueryRow(context.Background(), query,
		log.TransactionID,
		log.AccountID,
		log.RiskScore,
		log.Status).Scan(&log.LogID, &log.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при записи результата проверки: %v", err)
	}
	return nil
}

func GetAnomalyLogByID(pool *pgxpool.Pool, logID string) (*models.AnomalyLog, error) {
	query := `
		SELECT log_id, transaction_id, account_id, risk_score, status, created_at
		FROM anomaly_logs
		WHERE log_id = $1`

	log := &models.AnomalyLog{}
	err := pool.QueryRow(context.Background(), query, logID).Scan(
		&log.LogID,
		&log.TransactionID,
		&log.AccountID,
		&log.RiskScore,
		&log.Status,
		&log.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("запись проверки с ID %s не найдена", logID)
		}
		return nil, fmt.Errorf("ошибка при получении записи проверки: %v", err)
	}

	return log, nil
}

func GetAnomalyLogsByAccountID(pool *pgxpool.Pool, accountID string) ([]models.AnomalyLog, error) {
	query := `
		SELECT log_id, transaction_id, account_id, risk_score, status, created_at
		FROM anomaly_logs
		WHERE account_id = $1
		ORDER BY created_at DESC`

	rows, err := pool.Query(context.Background(), query, accountID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении записей проверок: %v", err)
	}
	defer rows.Close()

	var logs []models.AnomalyLog
	for rows.Next() {
		var l models.AnomalyLog
		if err := rows.Scan(&l.LogID, &l.TransactionID, &l.AccountID, &l.RiskScore, &l.Status, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка чтения строки: %v", err)
		}
		logs = append(logs, l)
	}
	return logs, nil
}
