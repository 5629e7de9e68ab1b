package middleware

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CorrelationID принимает X-Correlation-ID или генерирует новый,
// кладёт его в контекст и возвращает в ответе.
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationID := c.GetHeader("X-Correlation-ID")
		if correlationID == "" {
			correlationID = uuid.NewString()
		}
		c.Set("correlation_id", correlationID)
		c.Writer.Header().Set("X-Correlation-ID", correlationID)

		log.Printf("[%s] Запрос: %s %s", correlationID, c.Request.Method, c.Request.URL.Path)
		c.Next()
	}
}

func CorrelationIDFrom(c *gin.Context) string {
	return c.GetString("correlation_id")
}

// timedWriter проставляет X-Process-Time до отправки заголовков:
// после записи тела менять их уже поздно.
type timedWriter struct {
	gin.ResponseWriter
	start time.Time
}

func (w *timedWriter) WriteHeader(code int) {
	if !w.Written() {
		w.Header().Set("X-Process-Time", fmt.Sprintf("%.6f", time.Since(w.start).Seconds()))
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *timedWriter) Write(b []byte) (int, error) {
	if !w.Written() {
		w.Header().Set("X-Process-Time", fmt.Sprintf("%.6f", time.Since(w.start).Seconds()))
	}
	return w.ResponseWriter.Write(b)
}

// ProcessTime добавляет в ответ длительность обработки запроса.
func ProcessTime() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer = &timedWriter{ResponseWriter: c.Writer, start: time.Now()}
		c.Next()
	}
}

// IdempotencyKey извлекает заголовок Idempotency-Key в контекст.
func IdempotencyKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("idempotency_key", c.GetHeader("Idempotency-Key"))
		c.Next()
	}
}

func IdempotencyKeyFrom(c *gin.Context) string {
	return c.GetString("idempotency_key")
}

// CORSMiddleware — доступ для локального фронтенда.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "http://localhost:3000" || origin == "http://localhost:3001" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Correlation-ID, Idempotency-Key")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}

		c.Next()
	}
}
