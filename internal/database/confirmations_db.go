package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/models"
)

func CreatePendingConfirmation(pool *pgxpool.Pool, pc *models.PendingConfirmation) error {
	query := `
		INSERT INTO pending_confirmations (account_id, payload, requested_at, expires_at, status, confirmation_method)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING confirmation_id`

	err := pool.QueryRow(context.Background(), query,
		pc.AccountID,
		pc.Payload,
		pc.RequestedAt,
		pc.ExpiresAt,
		pc.Status,
		pc.ConfirmationMethod).Scan(&pc.ConfirmationID)
	if err != nil {
		return fmt.Errorf("ошибка при создании подтверждения: %v", err)
	}
	return nil
}

// GetPendingConfirmation возвращает только неистёкшие подтверждения в статусе pending.
func GetPendingConfirmation(pool *pgxpool.Pool, confirmationID string) (*models.PendingConfirmation, error) {
	query := `
		SELECT confirmation_id, account_id, payload, requested_at, expires_at, status, confirmation_method
		FROM pending_confirmations
		WHERE confirmation_id = $1 AND status = 'pending' AND expires_at > now()`

	pc := &models.PendingConfirmation{}
	err := pool.QueryRow(context.Background(), query, confirmationID).Scan(
		&pc.ConfirmationID,
		&pc.AccountID,
		&pc.Payload,
		&pc.RequestedAt,
		&pc.ExpiresAt,
		&pc.Status,
		&pc.ConfirmationMethod,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("подтверждение %s не найдено или истекло", confirmationID)
		}
		return nil, fmt.Errorf("ошибка при получении подтверждения: %v", err)
	}

	return pc, nil
}

func MarkConfirmationStatus(pool *pgxpool.Pool, confirmationID, status string) error {
	query := `
		UPDATE pending_confirmations
		SET status = $1
		WHERE confirmation_id = $2`

	result, err := pool.Exec(context.Background(), query, status, confirmationID)
	if err != nil {
		return fmt.Errorf("ошибка обновления подтверждения: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("подтверждение %s не найдено", confirmationID)
	}
	return nil
}

// ExpireStaleConfirmations переводит просроченные pending-подтверждения в
// статус expired. Вызывается CRON-задачей.
func ExpireStaleConfirmations(pool *pgxpool.Pool) (int64, error) {
	query := `
		UPDATE pending_confirmations
		SET status = 'expired'
		WHERE status = 'pending' AND expires_at <= $1`

	result, err := pool.Exec(context.Background(), query, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("ошибка при закрытии просроченных подтверждений: %v", err)
	}
	return result.RowsAffected(), nil
}
