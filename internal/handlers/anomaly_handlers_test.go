package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

// Оба эндпоинта аномалий требуют X-Correlation-ID и отклоняют запрос
// до обращения к базе.
func TestAnomalyEndpointsRequireCorrelationID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/v1/anomaly/check", CheckAnomalyHandler(nil, nil, nil))
	r.POST("/v1/anomaly/confirm/:confirmation_id", ConfirmAnomalyHandler(nil, nil))

	paths := []string{
		"/v1/anomaly/check",
		"/v1/anomaly/confirm/11111111-1111-1111-1111-111111111111",
	}
	for _, path := range paths {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("%s без X-Correlation-ID: статус %d, ожидали 400", path, w.Code)
		}
	}
}
