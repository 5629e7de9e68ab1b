package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/alert"
	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/auth"
	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/clients"
	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/database"
	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/middleware"
	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/risk"
	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/models"
)

func confirmationTTL() time.Duration {
	if v := os.Getenv("CONFIRMATION_TTL_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return time.Hour
}

// CheckAnomalyHandler оценивает риск предлагаемой транзакции.
func CheckAnomalyHandler(pool *pgxpool.Pool, history *clients.TransactionHistoryClient, mailer *alert.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("X-Correlation-ID") == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Отсутствует заголовок X-Correlation-ID"})
			return
		}

		var req models.AnomalyCheckRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Printf("Ошибка привязки JSON: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат данных", "details": err.Error()})
			return
		}

		profile, err := database.GetOrCreateUserProfile(pool, req.AccountID)
		if err != nil {
			log.Printf("Ошибка получения профиля: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении профиля счёта"})
			return
		}

		// История транзакций нужна только для частотного сигнала,
		// её недоступность проверку не останавливает.
		var recentTxns []time.Time
		headers := clients.Headers{
			CorrelationID: middleware.CorrelationIDFrom(c),
			Token:         auth.TokenFrom(c),
		}
		txns, err := history.GetTransactions(req.AccountID, headers)
		if err != nil {
			log.Printf("Не удалось получить историю транзакций: %v", err)
		} else {
			for _, t := range txns {
				if ts, ok := t.ParsedTimestamp(); ok {
					recentTxns = append(recentTxns, ts)
				}
			}
		}

		score, reasons := risk.Score(profile, &req, recentTxns, time.Now().UTC())
		status, action := risk.Decide(score)

		var txnID int64
		if v, ok := req.Metadata["transaction_id"]; ok {
			txnID, _ = strconv.ParseInt(v, 10, 64)
		}
		anomalyLog := &models.AnomalyLog{
			TransactionID: txnID,
			AccountID:     req.AccountID,
			RiskScore:     score,
			Status:        status,
		}
		if err := database.CreateAnomalyLog(pool, anomalyLog); err != nil {
			log.Printf("Ошибка записи результата проверки: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при сохранении результата проверки"})
			return
		}

		resp := models.AnomalyCheckResponse{
			Status:    status,
			RiskScore: score,
			Reasons:   reasons,
			Action:    action,
			LogID:     anomalyLog.LogID.String(),
		}

		if status == risk.StatusSuspicious {
			execPayload := models.TransactionExecuteRequest{
				AccountID:          req.AccountID,
				AmountCents:        req.AmountCents,
				TransactionType:    req.TransactionType,
				RecipientAccountID: req.RecipientAccountID,
				Description:        req.Description,
				Metadata:           req.Metadata,
			}
			payload, err := json.Marshal(execPayload)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка сериализации подтверждения"})
				return
			}

			ttl := confirmationTTL()
			pc := &models.PendingConfirmation{
				AccountID:          req.AccountID,
				Payload:            payload,
				RequestedAt:        time.Now().UTC(),
				ExpiresAt:          time.Now().UTC().Add(ttl),
				Status:             "pending",
				ConfirmationMethod: "email",
			}
			if err := database.CreatePendingConfirmation(pool, pc); err != nil {
				log.Printf("Ошибка создания подтверждения: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при создании подтверждения"})
				return
			}
			resp.ConfirmationID = pc.ConfirmationID.String()
			resp.ConfirmationTTLSeconds = int(ttl.Seconds())

			go mailer.SendSuspiciousAlert(profile.EmailForAlerts, &req, score, reasons)
		} else if status == risk.StatusFraud {
			go mailer.SendSuspiciousAlert(profile.EmailForAlerts, &req, score, reasons)
		}

		c.JSON(http.StatusOK, resp)
	}
}

// ConfirmAnomalyHandler подтверждает отложенную транзакцию и передаёт её на исполнение.
func ConfirmAnomalyHandler(pool *pgxpool.Pool, txnSage *clients.TransactionSageClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("X-Correlation-ID") == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Отсутствует заголовок X-Correlation-ID"})
			return
		}

		confirmationID := c.Param("confirmation_id")

		pc, err := database.GetPendingConfirmation(pool, confirmationID)
		if err != nil {
			c.JSON(http.StatusNotFound, models.ConfirmationResponse{
				Status:  "not_found",
				Message: "Подтверждение не найдено или истекло",
			})
			return
		}

		if err := database.MarkConfirmationStatus(pool, confirmationID, "confirmed"); err != nil {
			log.Printf("Ошибка обновления статуса подтверждения: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при обновлении подтверждения"})
			return
		}

		var execReq models.TransactionExecuteRequest
		if err := json.Unmarshal(pc.Payload, &execReq); err != nil {
			log.Printf("Ошибка разбора сохранённой транзакции: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка разбора сохранённой транзакции"})
			return
		}

		headers := clients.Headers{
			CorrelationID:  middleware.CorrelationIDFrom(c),
			Token:          auth.TokenFrom(c),
			IdempotencyKey: "confirm-" + confirmationID,
		}
		execResp, err := txnSage.ExecuteTransaction(&execReq, headers)
		if err != nil {
			log.Printf("Ошибка исполнения подтверждённой транзакции: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Не удалось исполнить подтверждённую транзакцию"})
			return
		}

		c.JSON(http.StatusOK, models.ConfirmationResponse{
			Status:        "confirmed",
			Message:       "Транзакция подтверждена и передана на исполнение",
			TransactionID: execResp.TransactionID,
		})
	}
}
