package clients

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"
)

// APIError — ошибка нижестоящего сервиса с его HTTP-статусом.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("нижестоящий сервис вернул статус %d: %s", e.StatusCode, e.Body)
}

// Client — HTTP-клиент с повторами и экспоненциальной паузой.
// Повторяются только 5xx/429 и транспортные ошибки, 4xx отдаются сразу.
type Client struct {
	httpClient  *http.Client
	maxRetries  int
	backoffBase time.Duration
}

func New() *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: 20 * time.Second},
		maxRetries:  3,
		backoffBase: 200 * time.Millisecond,
	}
}

// Заголовки запроса: корреляция, авторизация, ключ идемпотентности.
type Headers struct {
	CorrelationID  string
	Token          string
	IdempotencyKey string
}

func (h Headers) apply(req *http.Request) {
	if h.CorrelationID != "" {
		req.Header.Set("X-Correlation-ID", h.CorrelationID)
	}
	if h.Token != "" {
		req.Header.Set("Authorization", "Bearer "+strings.TrimPrefix(h.Token, "Bearer "))
	}
	if h.IdempotencyKey != "" {
		req.Header.Set("Idempotency-Key", h.IdempotencyKey)
	}
}

// DoJSON выполняет запрос с JSON-телом и разбирает JSON-ответ в out (если out != nil).
func (c *Client) DoJSON(method, url string, headers Headers, body interface{}, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("ошибка сериализации запроса: %v", err)
		}
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequest(method, url, reader)
		if err != nil {
			return fmt.Errorf("ошибка создания запроса: %v", err)
		}
		req.Header.Set("Content-Type", "application/json")
		headers.apply(req)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			log.Printf("Ошибка запроса %s %s (попытка %d): %v", method, url, attempt, err)
			c.sleep(attempt)
			continue
		}

		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			c.sleep(attempt)
			continue
		}

		// 5xx и 429 повторяем, остальное отдаём
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			lastErr = &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
			log.Printf("Сервис %s вернул %d (попытка %d)", url, resp.StatusCode, attempt)
			c.sleep(attempt)
			continue
		}

		if resp.StatusCode >= 400 {
			return &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
		}

		if out != nil && len(respBody) > 0 {
			if err := json.Unmarshal(respBody, out); err != nil {
				return fmt.Errorf("ошибка разбора ответа %s: %v", url, err)
			}
		}
		return nil
	}

	return lastErr
}

func (c *Client) sleep(attempt int) {
	backoff := c.backoffBase * time.Duration(1<<(attempt-1))
	jitter := time.Duration(rand.Int63n(int64(50 * time.Millisecond)))
	time.Sleep(backoff + jitter)
}
