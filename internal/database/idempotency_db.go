package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/models"
)

func GetIdempotencyKey(pool *pgxpool.Pool, key string) (*models.IdempotencyKey, error) {
	query := `
		SELECT id, key, account_id, status, created_at, response_payload
		FROM idempotency_keys
		WHERE key = $1`

	row := &models.IdempotencyKey{}
	err := pool.QueryRow(context.Background(), query, key).Scan(
		&row.ID,
		&row.Key,
		&row.AccountID,
		&row.Status,
		&row.CreatedAt,
		&row.ResponsePayload,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при получении ключа идемпотентности: %v", err)
	}
	return row, nil
}

// ClaimIdempotencyKey атомарно занимает ключ. Возвращает claimed=true и новую
// строку in_progress, либо claimed=false и уже существующую строку — в том
// числе когда конкурирующий запрос вставил её между нашими обращениями.
func ClaimIdempotencyKey(pool *pgxpool.Pool, key, accountID string) (*models.IdempotencyKey, bool, error) {
	query := `
		INSERT INTO idempotency_keys (id, key, account_id, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO NOTHING
		RETURNING created_at`

	row := &models.IdempotencyKey{
		ID:        uuid.NewString(),
		Key:       key,
		AccountID: accountID,
		Status:    models.IdempotencyInProgress,
	}
	err := pool.QueryRow(context.Background(), query, row.ID, row.Key, row.AccountID, row.Status).Scan(&row.CreatedAt)
	if err == nil {
		return row, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("ошибка при создании ключа идемпотентности: %v", err)
	}

	existing, err := GetIdempotencyKey(pool, key)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, fmt.Errorf("ключ идемпотентности %s исчез после конфликта", key)
	}
	return existing, false, nil
}

func CompleteIdempotencyKey(pool *pgxpool.Pool, key string, responsePayload []byte) error {
	query := `
		UPDATE idempotency_keys
		SET status = $1, response_payload = $2
		WHERE key = $3`

	result, err := pool.Exec(context.Background(), query, models.IdempotencyCompleted, responsePayload, key)
	if err != nil {
		return fmt.Errorf("ошибка при завершении ключа идемпотентности: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("ключ идемпотентности %s не найден", key)
	}
	return nil
}
