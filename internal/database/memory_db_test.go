package database_test

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/database"
	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/models"
)

func TestAgentMemoryLifecycle(t *testing.T) {
	pool, err := database.ConnectDB()
	if err != nil {
		t.Skipf("БД недоступна: %v", err)
	}
	defer pool.Close()

	sessionID := uuid.NewString()
	expires := time.Now().UTC().Add(time.Hour)
	mem := &models.AgentMemory{
		SessionID: sessionID,
		Key:       models.MemoryKeyPendingConfirmation,
		Value:     []byte(`{"confirmation_id":"abc"}`),
		ExpiresAt: &expires,
	}

	if err := database.CreateAgentMemory(pool, mem); err != nil {
		t.Fatalf("ошибка сохранения памяти: %v", err)
	}

	got, err := database.GetAgentMemory(pool, sessionID, models.MemoryKeyPendingConfirmation)
	if err != nil {
		t.Fatalf("ошибка чтения памяти: %v", err)
	}
	if got == nil {
		t.Fatal("запись памяти не найдена")
	}
	if string(got.Value) != `{"confirmation_id": "abc"}` && string(got.Value) != `{"confirmation_id":"abc"}` {
		t.Errorf("значение не совпадает: %s", got.Value)
	}

	if err := database.DeleteAgentMemory(pool, got.ID.String()); err != nil {
		t.Fatalf("ошибка удаления памяти: %v", err)
	}
	got, err = database.GetAgentMemory(pool, sessionID, models.MemoryKeyPendingConfirmation)
	if err != nil {
		t.Fatalf("ошибка повторного чтения: %v", err)
	}
	if got != nil {
		t.Error("запись должна быть удалена")
	}
}

func TestAgentMemoryExpired(t *testing.T) {
	pool, err := database.ConnectDB()
	if err != nil {
		t.Skipf("БД недоступна: %v", err)
	}
	defer pool.Close()

	sessionID := uuid.NewString()
	expires := time.Now().UTC().Add(-time.Minute)
	mem := &models.AgentMemory{
		SessionID: sessionID,
		Key:       models.MemoryKeyContactResolution,
		Value:     []byte(`{"name":"alice"}`),
		ExpiresAt: &expires,
	}
	if err := database.CreateAgentMemory(pool, mem); err != nil {
		t.Fatalf("ошибка сохранения памяти: %v", err)
	}

	got, err := database.GetAgentMemory(pool, sessionID, models.MemoryKeyContactResolution)
	if err != nil {
		t.Fatalf("ошибка чтения памяти: %v", err)
	}
	if got != nil {
		t.Error("истёкшая запись не должна возвращаться")
	}

	n, err := database.PurgeExpiredMemory(pool)
	if err != nil {
		t.Fatalf("ошибка очистки памяти: %v", err)
	}
	if n < 1 {
		t.Errorf("очистка должна была удалить хотя бы одну запись, удалено %d", n)
	}
}
