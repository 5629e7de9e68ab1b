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

func CreateAgentMemory(pool *pgxpool.Pool, mem *models.AgentMemory) error {
	query := `
		INSERT INTO agent_memory (session_id, key, value, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := pool.QueryRow(context.Background(), query,
		mem.SessionID,
		mem.Key,
		mem.Value,
		mem.ExpiresAt).Scan(&mem.ID, &mem.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при сохранении памяти агента: %v", err)
	}
	return nil
}

// GetAgentMemory возвращает неистёкшую запись по сессии и ключу, nil если её нет.
func GetAgentMemory(pool *pgxpool.Pool, sessionID, key string) (*models.AgentMemory, error) {
	query := `
		SELECT id, session_id, key, value, created_at, expires_at
		FROM agent_memory
		WHERE session_id = $1 AND key = $2 AND (expires_at IS NULL OR expires_at > now())
		ORDER BY created_at DESC
		LIMIT 1`

	mem := &models.AgentMemory{}
	err := pool.QueryRow(context.Background(), query, sessionID, key).Scan(
		&mem.ID,
		&mem.SessionID,
		&mem.Key,
		&mem.Value,
		&mem.CreatedAt,
		&mem.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при чтении памяти агента: %v", err)
	}
	return mem, nil
}

func DeleteAgentMemory(pool *pgxpool.Pool, id string) error {
	query := `
		DELETE FROM agent_memory
		WHERE id = $1`

	_, err := pool.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("ошибка при удалении памяти агента: %v", err)
	}
	return nil
}

// PurgeExpiredMemory удаляет истёкшие записи. Вызывается CRON-задачей.
func PurgeExpiredMemory(pool *pgxpool.Pool) (int64, error) {
	query := `
		DELETE FROM agent_memory
		WHERE expires_at IS NOT NULL AND expires_at <= $1`

	result, err := pool.Exec(context.Background(), query, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("ошибка при очистке памяти агента: %v", err)
	}
	return result.RowsAffected(), nil
}
