package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/models"
)

func CreateLlmEnvelope(pool *pgxpool.Pool, env *models.LlmEnvelope) error {
	query := `
		INSERT INTO llm_envelopes (session_id, raw_llm, validated_envelope, correlation_id, idempotency_key)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING envelope_id, created_at`

	err := pool.QueryRow(context.Background(), query,
		env.SessionID,
		env.RawLlm,
		env.ValidatedEnvelope,
		env.CorrelationID,
		env.IdempotencyKey).Scan(&env.EnvelopeID, &env.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при сохранении конверта LLM: %v", err)
	}
	return nil
}

// PurgeOldEnvelopes удаляет конверты старше retention (очистка сессий CRON-задачей).
func PurgeOldEnvelopes(pool *pgxpool.Pool, retention time.Duration) (int64, error) {
	query := `
		DELETE FROM llm_envelopes
		WHERE created_at < $1`

	result, err := pool.Exec(context.Background(), query, time.Now().UTC().Add(-retention))
	if err != nil {
		return 0, fmt.Errorf("ошибка при очистке старых конвертов: %v", err)
	}
	return result.RowsAffected(), nil
}

func CreateEnvelopeCorrelation(pool *pgxpool.Pool, corr *models.EnvelopeCorrelation) error {
	query := `
		INSERT INTO envelope_correlations (envelope_id, anomaly_log_id, confirmation_id, transaction_id)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''))
		RETURNING id, created_at`

	err := pool.QueryRow(context.Background(), query,
		corr.EnvelopeID,
		corr.AnomalyLogID,
		corr.ConfirmationID,
		corr.TransactionID).Scan(&corr.ID, &corr.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при сохранении корреляции: %v", err)
	}
	return nil
}

func SetCorrelationTransaction(pool *pgxpool.Pool, correlationID, transactionID string) error {
	query := `
		UPDATE envelope_correlations
		SET transaction_id = $1
		WHERE id = $2`

	result, err := pool.Exec(context.Background(), query, transactionID, correlationID)
	if err != nil {
		return fmt.Errorf("ошибка обновления корреляции: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("корреляция %s не найдена", correlationID)
	}
	return nil
}

// SetCorrelationTransactionByConfirmation проставляет transaction_id по
// известному confirmation_id (после подтверждения пользователем).
func SetCorrelationTransactionByConfirmation(pool *pgxpool.Pool, confirmationID, transactionID string) error {
	query := `
		UPDATE envelope_correlations
		SET transaction_id = $1
		WHERE confirmation_id = $2`

	_, err := pool.Exec(context.Background(), query, transactionID, confirmationID)
	if err != nil {
		return fmt.Errorf("ошибка обновления корреляции по подтверждению: %v", err)
	}
	return nil
}
