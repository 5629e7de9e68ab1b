package database_test

import (
	"testing"

	"github.com/google/uuid"

	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/database"
	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/models"
)

func TestIdempotencyKeyLifecycle(t *testing.T) {
	pool, err := database.ConnectDB()
	if err != nil {
		t.Skipf("БД недоступна: %v", err)
	}
	defer pool.Close()

	key := uuid.NewString()

	got, err := database.GetIdempotencyKey(pool, key)
	if err != nil {
		t.Fatalf("ошибка чтения ключа: %v", err)
	}
	if got != nil {
		t.Fatal("несуществующий ключ должен возвращать nil")
	}

	created, claimed, err := database.ClaimIdempotencyKey(pool, key, testAccountID())
	if err != nil {
		t.Fatalf("ошибка создания ключа: %v", err)
	}
	if !claimed {
		t.Fatal("первый захват ключа должен пройти")
	}
	if created.Status != models.IdempotencyInProgress {
		t.Errorf("новый ключ должен быть in_progress, получили %s", created.Status)
	}

	payload := []byte(`{"status":"success","transaction_id":"42"}`)
	if err := database.CompleteIdempotencyKey(pool, key, payload); err != nil {
		t.Fatalf("ошибка завершения ключа: %v", err)
	}

	got, err = database.GetIdempotencyKey(pool, key)
	if err != nil {
		t.Fatalf("ошибка повторного чтения ключа: %v", err)
	}
	if got == nil || got.Status != models.IdempotencyCompleted {
		t.Fatalf("ключ должен быть completed: %+v", got)
	}
	if len(got.ResponsePayload) == 0 {
		t.Error("сохранённый ответ пуст")
	}

	// Повторный захват не ошибка: возвращается существующая строка,
	// чтобы проигравший гонку запрос увидел её статус
	existing, claimed, err := database.ClaimIdempotencyKey(pool, key, testAccountID())
	if err != nil {
		t.Fatalf("повторный захват не должен падать: %v", err)
	}
	if claimed {
		t.Error("повторный захват не должен считаться новым ключом")
	}
	if existing == nil || existing.Status != models.IdempotencyCompleted {
		t.Fatalf("повторный захват должен вернуть существующую строку: %+v", existing)
	}
}

// Два последовательных захвата одного ключа: второй получает строку первого,
// а не ошибку уникальности.
func TestClaimIdempotencyKeyConcurrentDuplicate(t *testing.T) {
	pool, err := database.ConnectDB()
	if err != nil {
		t.Skipf("БД недоступна: %v", err)
	}
	defer pool.Close()

	key := uuid.NewString()
	accountID := testAccountID()

	first, claimed, err := database.ClaimIdempotencyKey(pool, key, accountID)
	if err != nil || !claimed {
		t.Fatalf("первый захват: claimed=%v, err=%v", claimed, err)
	}

	second, claimed, err := database.ClaimIdempotencyKey(pool, key, accountID)
	if err != nil {
		t.Fatalf("второй захват: %v", err)
	}
	if claimed {
		t.Error("второй захват не должен создавать новую строку")
	}
	if second == nil || second.ID != first.ID {
		t.Errorf("второй захват должен вернуть строку первого: %+v", second)
	}
	if second != nil && second.Status != models.IdempotencyInProgress {
		t.Errorf("строка должна оставаться in_progress: %s", second.Status)
	}
}
